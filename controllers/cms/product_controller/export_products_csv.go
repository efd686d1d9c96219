package product_controller

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
)

// ExportProductsCSV godoc
// @Summary Export products as CSV
// @Description Downloads the whole catalog in the import format
// @Tags CMS - Products
// @Produce text/csv
// @Success 200 {file} file
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/products/export [get]
func ExportProductsCSV(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	products := make([]models.Product, 0)
	if err := config.CmsGorm.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	var buf bytes.Buffer
	if err := services.WriteProductsCSV(&buf, products); err != nil {
		config.Log.Errorf("[product.export] %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to write CSV"))
		return
	}

	filename := fmt.Sprintf("products-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
