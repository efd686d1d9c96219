package product_controller

import (
	"encoding/json"
	"net/http"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/gin-gonic/gin"
)

// GetProducts godoc
// @Summary Get paginated products
// @Description Retrieve catalog products with pagination and optional filtering
// @Tags CMS - Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param technology query string false "Filter by technology" Enums(electrical, pneumatic, wireless)
// @Param duty query string false "Filter by duty" Enums(heavy, medium, light)
// @Param application query string false "Filter by application token"
// @Param flagship query bool false "Only flagship products"
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/products [get]
func GetProducts(c *gin.Context) {
	// Step 1: Parse and validate pagination params
	page, limit, offset := parsePagination(c)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Build query with optional filters
	query := config.CmsGorm.WithContext(ctx).Model(&models.Product{})

	if technology := selector.NormalizeToken(c.Query("technology")); technology != "" {
		query = query.Where("technology = ?", technology)
	}
	if duty := selector.NormalizeToken(c.Query("duty")); duty != "" {
		query = query.Where("duty = ?", duty)
	}
	if application := selector.NormalizeToken(c.Query("application")); application != "" {
		contains, _ := json.Marshal([]string{application})
		query = query.Where("applications @> ?::jsonb", string(contains))
	}
	if c.Query("flagship") == "true" {
		query = query.Where("flagship = ?", true)
	}

	// Step 3: Count total products
	var total int64
	if err := query.Count(&total).Error; err != nil {
		config.Log.Errorf("[product.list] count failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count products"))
		return
	}

	// Step 4: Fetch the page in catalog order
	products := make([]models.Product, 0)
	if err := query.
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error; err != nil {
		config.Log.Errorf("[product.list] fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", products, models.NewPagination(page, limit, total)))
}
