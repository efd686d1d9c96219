package option_controller

import (
	"net/http"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeleteOption godoc
// @Summary Delete a wizard option
// @Description Removes the option. Products keep their facet values; the value simply stops being offered.
// @Tags CMS - Options
// @Produce json
// @Param id path string true "Option ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/options/{id} [delete]
func DeleteOption(c *gin.Context) {
	optionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid option ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	result := config.CmsGorm.WithContext(ctx).Delete(&models.Option{}, "id = ?", optionID)
	if result.Error != nil {
		config.Log.Errorf("[option.delete] %s: %v", optionID, result.Error)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete option"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Option not found"))
		return
	}

	services.InvalidateCatalog(ctx)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Option deleted successfully", map[string]string{
		"id": optionID.String(),
	}))
}
