package cms_routes

import (
	admin_controller "github.com/Treadle-Controls/treadle-cms-backend/controllers/cms/admin_controller"
	admin_auth "github.com/Treadle-Controls/treadle-cms-backend/controllers/cms/admin_controller/auth"
	"github.com/Treadle-Controls/treadle-cms-backend/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up the admin auth and audit routes
func SetupAdminRoutes(rg *gin.RouterGroup) {
	// ════════════════════════════════════════════════════════════
	// Base Admin Group
	// ════════════════════════════════════════════════════════════

	admin := rg.Group("/admin")

	// ════════════════════════════════════════════════════════════
	// Public Routes (No Auth Required)
	// ════════════════════════════════════════════════════════════

	admin.POST("/login", admin_auth.AdminLogin)

	// ════════════════════════════════════════════════════════════
	// Protected Routes (Auth Required)
	// ════════════════════════════════════════════════════════════

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		// Auth
		protected.POST("/logout", admin_auth.AdminLogout)
		protected.GET("/me", admin_auth.GetAdminMe)
	}

	// ════════════════════════════════════════════════════════════
	// Super Admin Only Routes
	// ════════════════════════════════════════════════════════════

	superAdmin := admin.Group("")
	superAdmin.Use(
		middleware.AdminAuthMiddleware(),
		middleware.RequireSuperAdminMiddleware(),
	)
	{
		superAdmin.GET("/activity-logs", admin_controller.GetAllAdminActivityLogs)
	}
}
