package services

import (
	"encoding/json"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActivityLogService handles activity logging
type ActivityLogService struct{}

// NewActivityLogService creates a new activity log service
func NewActivityLogService() *ActivityLogService {
	return &ActivityLogService{}
}

// LogActivityRequest contains the parameters for logging an activity
type LogActivityRequest struct {
	AdminID      uuid.UUID
	AdminEmail   string
	Action       string // models.ActionCreateProduct, models.ActionImportCatalog, ...
	ResourceType string // models.ResourceTypeProduct, models.ResourceTypeOption, ...
	ResourceID   string
	ResourceName string
	Changes      map[string]interface{} // {before: {...}, after: {...}}
	Status       string
	ErrorMessage string
	Context      *gin.Context // For IP and User-Agent extraction
}

// BuildActivityLog turns a request into the row that will be stored.
func BuildActivityLog(req LogActivityRequest) models.ActivityLog {
	userAgent := ""
	if req.Context != nil && req.Context.Request != nil {
		userAgent = req.Context.GetHeader("User-Agent")
	}

	var changesJSON []byte
	if req.Changes != nil {
		data, err := json.Marshal(req.Changes)
		if err != nil {
			config.Log.Warnf("[activity-log] failed to marshal changes: %v", err)
			changesJSON = []byte("{}")
		} else {
			changesJSON = data
		}
	}

	status := req.Status
	if status == "" {
		status = models.StatusSuccess
	}

	return models.ActivityLog{
		AdminID:      req.AdminID,
		AdminEmail:   req.AdminEmail,
		Action:       req.Action,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		ResourceName: req.ResourceName,
		Changes:      changesJSON,
		Status:       status,
		ErrorMessage: req.ErrorMessage,
		IPAddress:    utils.ClientIP(req.Context),
		UserAgent:    userAgent,
	}
}

// LogActivity stores an admin action. Logging never fails the request, so
// errors are logged and swallowed.
func (s *ActivityLogService) LogActivity(req LogActivityRequest) {
	if req.AdminID == uuid.Nil {
		config.Log.Warnf("[activity-log] AdminID is nil for action %s", req.Action)
		return
	}
	if config.CmsGorm == nil {
		return
	}

	activityLog := BuildActivityLog(req)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := config.CmsGorm.WithContext(ctx).Create(&activityLog).Error; err != nil {
		config.Log.Errorf("[activity-log] failed to create activity log: %v", err)
		return
	}

	config.Log.Infof("[activity-log] %s: %s/%s by %s", req.Action, req.ResourceType, req.ResourceID, req.AdminEmail)
}

// Global instance
var activityLogService *ActivityLogService

// GetActivityLogService returns the global activity log service
func GetActivityLogService() *ActivityLogService {
	if activityLogService == nil {
		activityLogService = NewActivityLogService()
	}
	return activityLogService
}

// LogActivity logs an activity using the global service
func LogActivity(req LogActivityRequest) {
	GetActivityLogService().LogActivity(req)
}

// CreateChanges builds the before/after changes map
func CreateChanges(before, after interface{}) map[string]interface{} {
	return map[string]interface{}{
		"before": before,
		"after":  after,
	}
}
