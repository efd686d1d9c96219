package product_controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DeleteProduct godoc
// @Summary Delete a product
// @Description Delete a product by ID and its Cloudinary image
// @Tags CMS - Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/products/{id} [delete]
func DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 1: Find product
	var product models.Product
	if err := config.CmsGorm.WithContext(ctx).
		Select("id", "image").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}

	// Step 2: Delete from database
	if err := config.CmsGorm.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		config.Log.Errorf("[product.delete] failed to delete %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete product"))
		return
	}

	services.InvalidateCatalog(ctx)

	// Step 3: Delete the Cloudinary image in background (don't block response)
	if store, err := services.GetImageStore(); err == nil && product.Image != "" {
		go func(productID string) {
			deleteCtx, deleteCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer deleteCancel()

			if err := store.DeleteImage(deleteCtx, services.ProductImagePublicID(productID)); err != nil {
				config.Log.Warnf("[product.delete] failed to delete image for %s: %v", productID, err)
			}
		}(id)
	}

	config.Log.Infof("[product.delete] deleted %s", id)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product deleted successfully", map[string]string{
		"id": id,
	}))
}
