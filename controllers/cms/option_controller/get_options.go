package option_controller

import (
	"net/http"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/gin-gonic/gin"
)

// GetOptions godoc
// @Summary List wizard options
// @Description All options, inactive ones included, ordered by category and sort order
// @Tags CMS - Options
// @Produce json
// @Param category query string false "Filter by facet" Enums(application, technology, action, environment, duty, material, connection, guard, features)
// @Success 200 {object} models.ApiResponse{data=[]models.Option}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/options [get]
func GetOptions(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.CmsGorm.WithContext(ctx).Model(&models.Option{})
	if raw := c.Query("category"); raw != "" {
		f, ok := selector.ParseFacet(raw)
		if !ok || f == selector.FacetSearch {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Unknown category: "+raw))
			return
		}
		query = query.Where("category = ?", string(f))
	}

	options := make([]models.Option, 0)
	if err := query.
		Order("category ASC, sort_order ASC, label ASC").
		Find(&options).Error; err != nil {
		config.Log.Errorf("[option.list] %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch options"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Options fetched successfully", options))
}
