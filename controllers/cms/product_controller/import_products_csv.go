package product_controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
)

// maxImportSize caps the uploaded CSV.
const maxImportSize = 5 << 20

// ImportProductsCSV godoc
// @Summary Import products from CSV
// @Description Upserts every row of the uploaded CSV in one transaction. mode=replace first removes products missing from the file. Any row error rejects the whole file.
// @Tags CMS - Products
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Product CSV"
// @Param mode formData string false "Import mode" Enums(merge, replace) default(merge)
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/products/import [post]
func ImportProductsCSV(c *gin.Context) {
	// Step 1: Validate mode
	mode, ok := services.ParseImportMode(c.PostForm("mode"))
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "mode must be merge or replace"))
		return
	}

	// Step 2: Open the uploaded file
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "A CSV file is required in the 'file' field"))
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "CSV file is too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Failed to read uploaded file"))
		return
	}
	defer file.Close()

	// Step 3: Parse and validate every row
	products, err := services.ParseProductsCSV(file)
	if err != nil {
		var importErr *services.CSVImportError
		if errors.As(err, &importErr) {
			c.JSON(http.StatusBadRequest, models.ErrorResponseWithData(c, "CSV validation failed", importErr.Errors))
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	// Step 4: Write in one transaction
	ctx, cancel := config.WithCustomTimeout(60 * time.Second)
	defer cancel()

	result, err := services.ImportProducts(ctx, products, mode)
	if err != nil {
		config.Log.Errorf("[product.import] %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to import products"))
		return
	}

	config.Log.Infof("[product.import] %s: %d imported, %d deleted by %s",
		result.Mode, result.Imported, result.Deleted, c.GetString("adminEmail"))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Products imported successfully", result))
}
