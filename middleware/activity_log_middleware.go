package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ════════════════════════════════════════════════════════════
// Configuration Maps
// ════════════════════════════════════════════════════════════

// pathToResourceType maps URL segments to resource types
var pathToResourceType = map[string]string{
	"products": models.ResourceTypeProduct,
	"options":  models.ResourceTypeOption,
	"import":   models.ResourceTypeCatalog,
}

// resourceTypeToNameField maps resource types to their name field
var resourceTypeToNameField = map[string]string{
	models.ResourceTypeProduct: "series",
	models.ResourceTypeOption:  "label",
}

// methodToActionVerb maps HTTP methods to action verbs
var methodToActionVerb = map[string]string{
	"POST":   "created",
	"PATCH":  "updated",
	"PUT":    "updated",
	"DELETE": "deleted",
}

// subresourceActions names actions on routes that are not plain CRUD
var subresourceActions = map[string]string{
	"image":  models.ActionUploadProductImage,
	"import": models.ActionImportCatalog,
}

// ════════════════════════════════════════════════════════════
// Activity Logging Middleware
// ════════════════════════════════════════════════════════════

// ActivityLoggingMiddleware logs admin writes against the catalog.
// Must be used AFTER AdminAuthMiddleware (which sets adminID and adminEmail).
// Handlers that create a resource set "activityResourceID" so the log row
// can reference it.
func ActivityLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		adminID, adminEmail, ok := adminFromContext(c)
		if !ok {
			config.Log.Warn("[activity-logging] admin info not in context")
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		action, resourceType := actionFor(c.Request.Method, route)
		if action == "" {
			config.Log.Warnf("[activity-logging] could not determine action for %s %s", c.Request.Method, route)
			c.Next()
			return
		}

		resourceID := c.Param("id")

		// Snapshot the row before updates and deletes
		var beforeObject interface{}
		if c.Request.Method != http.MethodPost && resourceID != "" {
			beforeObject = fetchResourceFromDB(resourceType, resourceID)
		}
		resourceName := extractResourceName(resourceType, beforeObject)

		c.Next()

		if resourceID == "" {
			resourceID = c.GetString("activityResourceID")
		}

		statusCode := c.Writer.Status()
		if statusCode >= 200 && statusCode < 300 {
			var afterObject interface{}
			if resourceID != "" && c.Request.Method != http.MethodDelete {
				afterObject = fetchResourceFromDB(resourceType, resourceID)
			}
			if name := extractResourceName(resourceType, afterObject); name != "" {
				resourceName = name
			}

			services.LogActivity(services.LogActivityRequest{
				AdminID:      adminID,
				AdminEmail:   adminEmail,
				Action:       action,
				ResourceType: resourceType,
				ResourceID:   resourceID,
				ResourceName: resourceName,
				Changes:      services.CreateChanges(beforeObject, afterObject),
				Status:       models.StatusSuccess,
				Context:      c,
			})
			return
		}

		services.LogActivity(services.LogActivityRequest{
			AdminID:      adminID,
			AdminEmail:   adminEmail,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			ResourceName: resourceName,
			Status:       models.StatusFailed,
			ErrorMessage: "Request failed with status " + http.StatusText(statusCode),
			Context:      c,
		})
		config.Log.Infof("[activity-logging] failed: %s by %s - status %d", action, adminEmail, statusCode)
	}
}

// ════════════════════════════════════════════════════════════
// Helper Functions
// ════════════════════════════════════════════════════════════

func adminFromContext(c *gin.Context) (uuid.UUID, string, bool) {
	raw, exists := c.Get("adminID")
	if !exists {
		return uuid.Nil, "", false
	}

	var adminID uuid.UUID
	switch v := raw.(type) {
	case uuid.UUID:
		adminID = v
	case string:
		parsed, err := uuid.Parse(v)
		if err != nil {
			config.Log.Warnf("[activity-logging] failed to parse admin ID: %v", err)
			return uuid.Nil, "", false
		}
		adminID = parsed
	default:
		return uuid.Nil, "", false
	}

	email := c.GetString("adminEmail")
	return adminID, email, email != ""
}

// actionFor derives the action and resource type from a route template,
// e.g. "POST /api/v1/admin/products/:id/image" → uploaded_product_image.
func actionFor(method, route string) (action, resourceType string) {
	parts := strings.Split(strings.Trim(route, "/"), "/")
	if len(parts) == 0 {
		return "", ""
	}

	last := parts[len(parts)-1]
	if a, ok := subresourceActions[last]; ok && method == http.MethodPost {
		return a, extractResourceType(route)
	}

	resourceType = extractResourceType(route)
	verb := methodToActionVerb[method]
	if resourceType == "" || verb == "" {
		return "", ""
	}
	return verb + "_" + resourceType, resourceType
}

// extractResourceType finds the innermost known segment of a path
// e.g., "/api/v1/admin/options/:id" → "option"
func extractResourceType(path string) string {
	parts := strings.Split(path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if isIDParam(parts[i]) {
			continue
		}
		if resourceType, exists := pathToResourceType[parts[i]]; exists {
			return resourceType
		}
	}
	return ""
}

// isIDParam checks if a path segment is a route parameter or an id
func isIDParam(segment string) bool {
	if segment == "" || strings.HasPrefix(segment, ":") {
		return true
	}
	_, err := uuid.Parse(segment)
	return err == nil
}

// fetchResourceFromDB fetches a resource from the database
func fetchResourceFromDB(resourceType, resourceID string) interface{} {
	if config.CmsGorm == nil {
		return nil
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	switch resourceType {
	case models.ResourceTypeProduct:
		var product models.Product
		if err := config.CmsGorm.WithContext(ctx).First(&product, "id = ?", resourceID).Error; err != nil {
			config.Log.Debugf("[activity-logging] failed to fetch product %s: %v", resourceID, err)
			return nil
		}
		return product

	case models.ResourceTypeOption:
		id, err := uuid.Parse(resourceID)
		if err != nil {
			return nil
		}
		var option models.Option
		if err := config.CmsGorm.WithContext(ctx).First(&option, "id = ?", id).Error; err != nil {
			config.Log.Debugf("[activity-logging] failed to fetch option %s: %v", resourceID, err)
			return nil
		}
		return option

	default:
		return nil
	}
}

// extractResourceName extracts the name/identifier from a resource object
func extractResourceName(resourceType string, obj interface{}) string {
	if obj == nil {
		return ""
	}

	fieldName := resourceTypeToNameField[resourceType]
	if fieldName == "" {
		return ""
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return ""
	}

	var resourceMap map[string]interface{}
	if err := json.Unmarshal(data, &resourceMap); err != nil {
		return ""
	}

	if value, exists := resourceMap[fieldName]; exists {
		return toString(value)
	}
	return ""
}

// toString converts any value to string
func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
