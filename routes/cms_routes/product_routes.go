package cms_routes

import (
	"github.com/Treadle-Controls/treadle-cms-backend/controllers/cms/product_controller"
	"github.com/Treadle-Controls/treadle-cms-backend/middleware"
	"github.com/gin-gonic/gin"
)

func SetupProductRoutes(rg *gin.RouterGroup) {
	product := rg.Group("/products")

	// ════════════════════════════════════════════════════════════
	// Public Routes (No Auth Required)
	// ════════════════════════════════════════════════════════════
	product.GET("", product_controller.GetProducts)
	product.GET("/stats", product_controller.GetProductStats)
	product.GET("/search", product_controller.SearchProducts)
	product.GET("/export", product_controller.ExportProductsCSV)
	product.GET("/:id", product_controller.GetProductByID)

	// ════════════════════════════════════════════════════════════
	// Protected Routes (Auth + Activity Logging)
	// ════════════════════════════════════════════════════════════
	protected := product.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	protected.Use(middleware.ActivityLoggingMiddleware())
	{
		// Create
		protected.POST("", product_controller.CreateProduct)

		// Bulk
		protected.POST("/import", product_controller.ImportProductsCSV)

		// Update
		protected.PATCH("/:id", product_controller.UpdateProduct)
		protected.POST("/:id/image", product_controller.UploadProductImage)

		// Delete
		protected.DELETE("/:id", product_controller.DeleteProduct)
	}
}
