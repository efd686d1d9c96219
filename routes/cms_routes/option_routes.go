package cms_routes

import (
	"github.com/Treadle-Controls/treadle-cms-backend/controllers/cms/option_controller"
	"github.com/Treadle-Controls/treadle-cms-backend/middleware"
	"github.com/gin-gonic/gin"
)

func SetupOptionRoutes(rg *gin.RouterGroup) {
	option := rg.Group("/options")

	option.GET("", option_controller.GetOptions)

	protected := option.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	protected.Use(middleware.ActivityLoggingMiddleware())
	{
		protected.POST("", option_controller.CreateOption)
		protected.PATCH("/:id", option_controller.UpdateOption)
		protected.DELETE("/:id", option_controller.DeleteOption)
	}
}
