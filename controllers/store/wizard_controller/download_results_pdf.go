package wizard_controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
)

// DownloadResultsPDF godoc
// @Summary Download results as PDF
// @Description Same resolution as /results rendered as a one-page recommendation sheet
// @Tags Store - Wizard
// @Accept json
// @Produce application/pdf
// @Param request body models.WizardResultsRequest true "Selection and sort mode"
// @Success 200 {file} file
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/wizard/results/pdf [post]
func DownloadResultsPDF(c *gin.Context) {
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

	now := time.Now()
	pdf, err := services.GenerateResultsPDF(sel, res, now)
	if err != nil {
		config.Log.Errorf("[wizard.pdf] %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate PDF"))
		return
	}

	filename := fmt.Sprintf("footswitch-recommendation-%s.pdf", now.Format("20060102-1504"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}
