package product_controller

import (
	"errors"
	"net/http"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateProduct godoc
// @Summary Update a product
// @Description Partially update a product. Omitted fields are left unchanged; the id cannot be changed.
// @Tags CMS - Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/products/{id} [patch]
func UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	// Step 1: Parse request
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Load current row
	var product models.Product
	if err := config.CmsGorm.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	// Step 3: Apply and validate
	req.Apply(&product)
	if len(product.Applications) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "A product needs at least one application"))
		return
	}

	// Step 4: Save every column so cleared lists are persisted
	if err := config.CmsGorm.WithContext(ctx).Save(&product).Error; err != nil {
		config.Log.Errorf("[product.update] failed to save %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update product"))
		return
	}

	services.InvalidateCatalog(ctx)

	config.Log.Infof("[product.update] updated %s", id)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product updated successfully", product))
}
