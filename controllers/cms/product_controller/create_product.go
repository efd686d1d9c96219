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

// CreateProduct godoc
// @Summary Create a new product
// @Description Add a foot switch to the catalog. The id is chosen by the caller and must be unique.
// @Tags CMS - Products
// @Accept json
// @Produce json
// @Param product body models.ProductRequest true "Product details"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/products [post]
func CreateProduct(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 1: Parse JSON request
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		config.Log.Infof("[product.create] invalid request: %v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	product := req.ToModel()
	if product.ID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Product id is required"))
		return
	}

	// Step 2: Reject duplicate ids
	var existing models.Product
	err := config.CmsGorm.WithContext(ctx).Select("id").First(&existing, "id = ?", product.ID).Error
	if err == nil {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "A product with this id already exists"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		config.Log.Errorf("[product.create] lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	// Step 3: Save to database
	if err := config.CmsGorm.WithContext(ctx).Create(&product).Error; err != nil {
		config.Log.Errorf("[product.create] failed to create %s: %v", product.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create product"))
		return
	}

	// Step 4: Drop the wizard snapshot
	services.InvalidateCatalog(ctx)
	c.Set("activityResourceID", product.ID)

	config.Log.Infof("[product.create] created %s", product.ID)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Product created successfully", product))
}
