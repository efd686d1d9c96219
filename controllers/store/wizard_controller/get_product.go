package wizard_controller

import (
	"net/http"

	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/gin-gonic/gin"
)

// GetProduct godoc
// @Summary Get single product details for the wizard
// @Tags Store - Wizard
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 404 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /api/v1/store/wizard/products/{id} [get]
func GetProduct(c *gin.Context) {
	snap, ok := loadSnapshot(c)
	if !ok {
		return
	}

	product, found := snap.Product(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched successfully", product))
}
