package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
)

// AdminTokenCookie carries the admin JWT for the CMS frontend.
const AdminTokenCookie = "admin_token"

// AdminAuthMiddleware validates JWT token and checks admin authorization
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerOrCookie(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - no token provided"))
			c.Abort()
			return
		}

		// Validate and parse JWT
		claims, err := services.VerifyAdminJWT(token)
		if err != nil {
			config.Log.Infof("[auth] invalid token: %v", err)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - invalid token"))
			c.Abort()
			return
		}

		ctx, cancel := config.WithTimeout()
		defer cancel()

		tokenHash := services.GetAdminAuthService().HashToken(token)
		if err := services.GetAdminSessionService().TouchSession(ctx, tokenHash); err != nil {
			if errors.Is(err, services.ErrSessionRevoked) {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - session expired"))
				c.Abort()
				return
			}
			// A database hiccup on the session row should not lock admins out
			config.Log.Warnf("[auth] failed to update session activity: %v", err)
		}

		// Role and status come from the database so suspensions apply immediately
		var admin models.Admin
		if err := config.CmsGorm.WithContext(ctx).
			Select("role", "status").
			Where("id = ?", claims.AdminID).
			First(&admin).Error; err != nil {
			config.Log.Warnf("[auth] failed to fetch admin %s: %v", claims.AdminID, err)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - admin not found"))
			c.Abort()
			return
		}
		if admin.Status == models.AdminStatusSuspended {
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - account suspended"))
			c.Abort()
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("adminEmail", claims.Email)
		c.Set("adminRole", admin.Role)
		c.Set("adminTokenHash", tokenHash)

		c.Next()
	}
}

// bearerOrCookie reads the admin token from the cookie, then the
// Authorization header.
func bearerOrCookie(c *gin.Context) (string, bool) {
	if token, err := c.Cookie(AdminTokenCookie); err == nil && token != "" {
		return token, true
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireSuperAdminMiddleware checks if the admin is a super admin
func RequireSuperAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminRole, exists := c.Get("adminRole")
		if !exists {
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - role not found"))
			c.Abort()
			return
		}

		if adminRole != models.RoleSuperAdmin {
			config.Log.Infof("[auth] non-super-admin %v attempted restricted action", c.GetString("adminEmail"))
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - super admin access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
