package wizard_controller

import (
	"net/http"

	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/gin-gonic/gin"
)

// ChooseOption godoc
// @Summary Answer a wizard step
// @Description Applies one answer to the selection. Choosing the current value again clears it; features toggle. Later answers that are no longer offered are dropped. Returns the step's refreshed options and the new selection.
// @Tags Store - Wizard
// @Accept json
// @Produce json
// @Param request body models.WizardChooseRequest true "Selection, step and value"
// @Success 200 {object} models.ApiResponse{data=models.WizardOptionsResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /api/v1/store/wizard/choose [post]
func ChooseOption(c *gin.Context) {
	var req models.WizardChooseRequest
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
	value := optionValue(step.Facet, req.Value)

	// Deselecting is always allowed; anything else must be on offer
	selected := sel.Get(step.Facet) == value
	if step.Facet == selector.FacetFeatures {
		selected = containsString(sel.Features, value)
	}
	if !selected && !isOffered(selector.Offered(snap.Catalog, sel, step.Facet), value) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Option "+value+" is not offered for step "+step.ID))
		return
	}

	next := selector.Choose(snap.Catalog, sel, step.Facet, value)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Selection updated", models.WizardOptionsResponse{
		Step:      step.ID,
		Facet:     step.Facet,
		Multi:     step.Multi,
		Options:   selector.StepOptions(snap.Catalog, next, step.Facet),
		Selection: next,
	}))
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
