package product_controller

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxImageSize = 10 << 20

// UploadProductImage godoc
// @Summary Upload product image
// @Description Uploads the image to Cloudinary and stores its URL on the product. Replaces any previous image.
// @Tags CMS - Products
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param image formData file true "Image file"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/products/{id}/image [post]
func UploadProductImage(c *gin.Context) {
	id := c.Param("id")

	// Step 1: Image uploads need Cloudinary
	store, err := services.GetImageStore()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Image upload is not configured"))
		return
	}

	// Step 2: Validate the file
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "An image is required in the 'image' field"))
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Image is too large (max 10MB)"))
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "File must be an image"))
		return
	}

	dbCtx, cancel := config.WithTimeout()
	defer cancel()

	// Step 3: Product must exist
	var product models.Product
	if err := config.CmsGorm.WithContext(dbCtx).Select("id").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Failed to read uploaded image"))
		return
	}
	defer file.Close()

	// Step 4: Upload
	uploadCtx, uploadCancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer uploadCancel()

	start := time.Now()
	url, err := store.UploadProductImage(uploadCtx, file, id)
	if err != nil {
		config.Log.Errorf("[product.image] upload for %s failed: %v", id, err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to upload image"))
		return
	}
	config.Log.Infof("[product.image] uploaded %s in %v", id, time.Since(start))

	// Step 5: Store the URL
	if err := config.CmsGorm.WithContext(dbCtx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("image", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to save image URL"))
		return
	}

	services.InvalidateCatalog(dbCtx)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Image uploaded successfully", map[string]string{
		"id":    id,
		"image": url,
	}))
}
