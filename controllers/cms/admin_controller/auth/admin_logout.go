package admin_auth_controller

import (
	"net/http"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/middleware"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
)

// AdminLogout godoc
// @Summary Logout admin
// @Description Ends the session of the presented token and clears the cookie. Other sessions of the same admin stay valid.
// @Tags Admin - Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse
// @Router /api/v1/admin/logout [post]
func AdminLogout(c *gin.Context) {
	if tokenHash := c.GetString("adminTokenHash"); tokenHash != "" {
		ctx, cancel := config.WithTimeout()
		defer cancel()

		if err := services.GetAdminSessionService().DeactivateSession(ctx, tokenHash); err != nil {
			// Don't fail the logout even if session deactivation fails
			config.Log.Warnf("[admin.logout] failed to deactivate session: %v", err)
		}
		config.Log.Infof("[admin.logout] %s logged out", c.GetString("adminEmail"))
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AdminTokenCookie,
		"",
		-1,
		"/",
		"",
		secureCookie(),
		true,
	)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logout successful", nil))
}

// secureCookie marks the token cookie Secure outside development.
func secureCookie() bool {
	return config.Cfg != nil && config.Cfg.IsProduction()
}
