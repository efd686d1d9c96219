package option_controller

import (
	"net/http"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateOption godoc
// @Summary Create a wizard option
// @Description Adds an answer to a wizard step. rules restrict when it is offered.
// @Tags CMS - Options
// @Accept json
// @Produce json
// @Param option body models.OptionRequest true "Option"
// @Success 201 {object} models.ApiResponse{data=models.Option}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/options [post]
func CreateOption(c *gin.Context) {
	var req models.OptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	option, err := req.ToModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}
	if option.Value == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Option value is required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	taken, err := valueTaken(ctx, option.Category, option.Value, uuid.Nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}
	if taken {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "An option with this value already exists in "+option.Category))
		return
	}

	if err := config.CmsGorm.WithContext(ctx).Create(&option).Error; err != nil {
		config.Log.Errorf("[option.create] %s/%s: %v", option.Category, option.Value, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create option"))
		return
	}

	services.InvalidateCatalog(ctx)
	c.Set("activityResourceID", option.ID.String())

	config.Log.Infof("[option.create] %s/%s", option.Category, option.Value)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Option created successfully", option))
}
