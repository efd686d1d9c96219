package store_routes

import (
	"github.com/Treadle-Controls/treadle-cms-backend/controllers/store/wizard_controller"
	"github.com/gin-gonic/gin"
)

// SetupWizardRoutes registers the public product-selection wizard
func SetupWizardRoutes(router *gin.RouterGroup) {
	wizard := router.Group("/store/wizard")
	{
		wizard.GET("/steps", wizard_controller.GetSteps)
		wizard.POST("/options", wizard_controller.GetStepOptions) // Live counts for one step
		wizard.POST("/choose", wizard_controller.ChooseOption)    // Apply an answer and prune
		wizard.POST("/results", wizard_controller.GetResults)
		wizard.POST("/results/pdf", wizard_controller.DownloadResultsPDF)
		wizard.GET("/products/:id", wizard_controller.GetProduct)
	}
}
