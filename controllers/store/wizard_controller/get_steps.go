package wizard_controller

import (
	"net/http"

	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/gin-gonic/gin"
)

// GetSteps godoc
// @Summary Get wizard steps
// @Description Ordered wizard steps with the options each one offers. application and technology narrow the eligibility rules the same way a live selection does.
// @Tags Store - Wizard
// @Produce json
// @Param application query string false "Selected application"
// @Param technology query string false "Selected technology"
// @Success 200 {object} models.ApiResponse{data=[]models.WizardStepResponse}
// @Failure 503 {object} models.ApiResponse
// @Router /api/v1/store/wizard/steps [get]
func GetSteps(c *gin.Context) {
	snap, ok := loadSnapshot(c)
	if !ok {
		return
	}

	sel := selector.Selection{
		Application: c.Query("application"),
		Technology:  c.Query("technology"),
	}.Normalize()

	steps := make([]models.WizardStepResponse, 0, len(selector.Steps))
	for _, step := range selector.Steps {
		steps = append(steps, models.WizardStepResponse{
			ID:      step.ID,
			Facet:   step.Facet,
			Multi:   step.Multi,
			Options: selector.Offered(snap.Catalog, sel, step.Facet),
		})
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Wizard steps fetched successfully", steps))
}
