package option_controller

import (
	"errors"
	"net/http"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateOption godoc
// @Summary Update a wizard option
// @Description Partial update. The category cannot be changed.
// @Tags CMS - Options
// @Accept json
// @Produce json
// @Param id path string true "Option ID (UUID)"
// @Param option body models.UpdateOptionRequest true "Fields to update"
// @Success 200 {object} models.ApiResponse{data=models.Option}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/options/{id} [patch]
func UpdateOption(c *gin.Context) {
	// Step 1: Parse and validate option ID
	optionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid option ID"))
		return
	}

	var req models.UpdateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Load current row
	var option models.Option
	if err := config.CmsGorm.WithContext(ctx).First(&option, "id = ?", optionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Option not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	// Step 3: Apply changes
	if err := req.Apply(&option); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}
	if req.Value != nil {
		taken, err := valueTaken(ctx, option.Category, option.Value, option.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
			return
		}
		if taken {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "An option with this value already exists in "+option.Category))
			return
		}
	}

	// Step 4: Save
	if err := config.CmsGorm.WithContext(ctx).Save(&option).Error; err != nil {
		config.Log.Errorf("[option.update] %s: %v", optionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update option"))
		return
	}

	services.InvalidateCatalog(ctx)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Option updated successfully", option))
}
