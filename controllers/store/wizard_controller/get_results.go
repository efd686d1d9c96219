package wizard_controller

import (
	"net/http"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/gin-gonic/gin"
)

// GetResults godoc
// @Summary Resolve a selection into products
// @Description Exact matches when there are any; otherwise constraints are dropped in a fixed order until something matches and relaxed_facet names the last one dropped. Choosing a custom feature skips matching and asks for a custom solution.
// @Tags Store - Wizard
// @Accept json
// @Produce json
// @Param request body models.WizardResultsRequest true "Selection and sort mode (relevance, duty, ip)"
// @Success 200 {object} models.ApiResponse{data=models.WizardResultsResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /api/v1/store/wizard/results [post]
func GetResults(c *gin.Context) {
	var req models.WizardResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	snap, ok := loadSnapshot(c)
	if !ok {
		return
	}

	sel := req.Selection.Normalize()
	res := buildResults(snap, sel, req.Sort)

	config.Log.Debugf("[wizard.results] outcome=%s total=%d relaxed=%s", res.Outcome, res.Total, res.RelaxedFacet)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Results fetched successfully", res))
}
