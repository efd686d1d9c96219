package admin_controller

import (
	"net/http"
	"strconv"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetAllAdminActivityLogs godoc
// @Summary Get all admin activities
// @Description Get catalog activity logs for all admins with pagination
// @Tags Admin - Management
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 20, max: 100)"
// @Param admin_id query string false "Filter by admin ID"
// @Param action query string false "Filter by action (e.g., created_product, imported_catalog)"
// @Param resource_type query string false "Filter by resource type" Enums(product, option, catalog)
// @Success 200 {object} models.ApiResponse{data=[]models.ActivityLogResponse}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Router /api/v1/admin/activity-logs [get]
func GetAllAdminActivityLogs(c *gin.Context) {
	// Pagination
	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	limit := 20
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			if parsed > 100 {
				parsed = 100 // Max 100 items per page
			}
			limit = parsed
		}
	}

	offset := (page - 1) * limit

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Build base query
	baseQuery := config.CmsGorm.WithContext(ctx).Model(&models.ActivityLog{})

	// Optional filters
	if adminID := c.Query("admin_id"); adminID != "" {
		baseQuery = baseQuery.Where("admin_id = ?", adminID)
	}
	if action := c.Query("action"); action != "" {
		baseQuery = baseQuery.Where("action = ?", action)
	}
	if resourceType := c.Query("resource_type"); resourceType != "" {
		baseQuery = baseQuery.Where("resource_type = ?", resourceType)
	}

	var total int64
	if err := baseQuery.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		config.Log.Errorf("[admin.activity] failed to count logs: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	var activityLogs []models.ActivityLog
	if err := baseQuery.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&activityLogs).Error; err != nil {
		config.Log.Errorf("[admin.activity] failed to fetch logs: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	responses := make([]models.ActivityLogResponse, len(activityLogs))
	for i := range activityLogs {
		responses[i] = activityLogs[i].ToResponse()
	}

	meta := models.NewPagination(page, limit, total)
	config.Log.Debugf("[admin.activity] retrieved %d logs (page %d/%d, total: %d)", len(responses), page, meta.TotalPages, total)
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Activity logs retrieved", responses, meta))
}
