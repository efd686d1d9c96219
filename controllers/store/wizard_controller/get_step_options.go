package wizard_controller

import (
	"net/http"

	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/gin-gonic/gin"
)

// GetStepOptions godoc
// @Summary Get live options for a step
// @Description Offered options of one step with the number of products each would leave. Options leaving nothing are disabled unless currently selected.
// @Tags Store - Wizard
// @Accept json
// @Produce json
// @Param request body models.WizardOptionsRequest true "Current selection and step"
// @Success 200 {object} models.ApiResponse{data=models.WizardOptionsResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /api/v1/store/wizard/options [post]
func GetStepOptions(c *gin.Context) {
	var req models.WizardOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	step, ok := stepOrFail(c, req.Step)
	if !ok {
		return
	}

	snap, ok := loadSnapshot(c)
	if !ok {
		return
	}

	sel := req.Selection.Normalize()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Step options fetched successfully", models.WizardOptionsResponse{
		Step:      step.ID,
		Facet:     step.Facet,
		Multi:     step.Multi,
		Options:   selector.StepOptions(snap.Catalog, sel, step.Facet),
		Selection: sel,
	}))
}
