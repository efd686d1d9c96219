package admin_auth_controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/middleware"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/Treadle-Controls/treadle-cms-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// tokenCookieMaxAge matches the JWT lifetime.
const tokenCookieMaxAge = int(models.SessionLifetime / time.Second)

// AdminLogin godoc
// @Summary Login as admin
// @Description Authenticate admin with email and password. Returns JWT token and creates session
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Param loginRequest body models.AdminLoginRequest true "Email and password"
// @Success 200 {object} models.ApiResponse{data=models.AdminLoginResponse}
// @Failure 400 {object} models.ApiResponse "Invalid credentials"
// @Failure 403 {object} models.ApiResponse "Account suspended"
// @Failure 500 {object} models.ApiResponse "Server error"
// @Router /api/v1/admin/login [post]
func AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request"))
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Find admin by email
	var admin models.Admin
	if err := config.CmsGorm.WithContext(ctx).
		Where("email = ?", email).
		First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			config.Log.Infof("[admin.login] unknown email: %s", email)
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid email or password"))
		} else {
			config.Log.Errorf("[admin.login] database error: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		}
		return
	}

	if admin.Status == models.AdminStatusSuspended {
		config.Log.Warnf("[admin.login] suspended account attempt: %s", email)
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Account is suspended"))
		return
	}

	authService := services.GetAdminAuthService()
	if !authService.VerifyPassword(admin.PasswordHash, req.Password) {
		config.Log.Infof("[admin.login] invalid password: %s", email)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid email or password"))
		return
	}

	// Update last login
	now := time.Now()
	if err := config.CmsGorm.WithContext(ctx).
		Model(&admin).
		Updates(map[string]any{"last_login_at": now, "status": models.AdminStatusActive}).Error; err != nil {
		config.Log.Errorf("[admin.login] failed to update last login: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}
	admin.LastLoginAt = &now
	admin.Status = authService.GetAdminStatus(models.AdminStatusActive, admin.LastLoginAt, now)

	token, err := services.GenerateAdminJWT(admin.ID.String(), admin.Email, admin.Role)
	if err != nil {
		config.Log.Errorf("[admin.login] failed to generate token: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	if _, err := services.GetAdminSessionService().CreateSession(
		ctx,
		admin.ID,
		token,
		utils.ClientIP(c),
		c.Request.UserAgent(),
	); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AdminTokenCookie,
		token,
		tokenCookieMaxAge,
		"/",
		"",
		secureCookie(),
		true,
	)

	config.Log.Infof("[admin.login] success: %s (%s)", admin.Email, admin.ID)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Login successful", models.AdminLoginResponse{
		Admin: admin.ToResponse(),
		Token: token,
	}))
}
