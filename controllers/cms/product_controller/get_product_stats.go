package product_controller

import (
	"net/http"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/gin-gonic/gin"
)

type statRow struct {
	Key   string
	Count int
}

// GetProductStats godoc
// @Summary Get product statistics
// @Description Returns totals plus counts per technology, duty and application
// @Tags CMS - Products
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/products/stats [get]
func GetProductStats(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 1: Count total products
	var totalProducts int64
	if err := config.CmsGorm.WithContext(ctx).
		Model(&models.Product{}).
		Count(&totalProducts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count total products"))
		return
	}

	// Step 2: Count flagship products
	var flagshipProducts int64
	if err := config.CmsGorm.WithContext(ctx).
		Model(&models.Product{}).
		Where("flagship = ?", true).
		Count(&flagshipProducts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count flagship products"))
		return
	}

	breakdown := make([]models.ProductStatsResponseItem, 0)

	// Step 3: Group by the single-valued facets
	for _, column := range []string{"technology", "duty"} {
		var rows []statRow
		if err := config.CmsGorm.WithContext(ctx).
			Model(&models.Product{}).
			Select(column + " AS key, COUNT(*) AS count").
			Group(column).
			Order("count DESC").
			Scan(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to group products by "+column))
			return
		}
		breakdown = appendStats(breakdown, column, rows)
	}

	// Step 4: Applications is a jsonb list, so unnest it
	var appRows []statRow
	if err := config.CmsGorm.WithContext(ctx).
		Raw(`
			SELECT app AS key, COUNT(*) AS count
			FROM products, jsonb_array_elements_text(applications) AS app
			GROUP BY app
			ORDER BY count DESC
		`).
		Scan(&appRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to group products by application"))
		return
	}
	breakdown = appendStats(breakdown, "application", appRows)

	stats := models.ProductStatsResponse{
		TotalProducts:    int(totalProducts),
		FlagshipProducts: int(flagshipProducts),
		Breakdown:        breakdown,
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product stats fetched successfully", stats))
}

func appendStats(out []models.ProductStatsResponseItem, kind string, rows []statRow) []models.ProductStatsResponseItem {
	for _, r := range rows {
		out = append(out, models.ProductStatsResponseItem{Type: kind, Key: r.Key, Count: r.Count})
	}
	return out
}
