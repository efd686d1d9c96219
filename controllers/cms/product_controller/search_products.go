package product_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
)

// SearchProducts godoc
// @Summary Search products
// @Description Case-insensitive substring search over series, description, material, IP rating, part number, id and features. Uses the same predicate as the wizard search box.
// @Tags CMS - Products
// @Produce json
// @Param q query string true "Search keyword"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /api/v1/admin/products/search [get]
func SearchProducts(c *gin.Context) {
	// Step 1: Parse query parameter
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Query parameter 'q' is required"))
		return
	}

	page, limit, offset := parsePagination(c)

	// Step 2: Search the catalog snapshot
	snap, err := services.LoadCatalog(c.Request.Context())
	if err != nil {
		config.Log.Errorf("[product.search] %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrCatalogUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, models.ErrorResponse(c, "Catalog unavailable"))
		return
	}

	matches := make([]selector.Product, 0)
	for _, p := range snap.Catalog.Products {
		if selector.MatchSearch(p, q) {
			matches = append(matches, p)
		}
	}

	// Step 3: Page through the matches
	rows := snap.Rows(paginate(matches, offset, limit))
	meta := models.NewPagination(page, limit, int64(len(matches)))

	message := "Search results"
	if len(matches) == 0 {
		message = "No results found"
	}
	c.JSON(http.StatusOK, models.PaginatedResponse(c, message, rows, meta))
}
