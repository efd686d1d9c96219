package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestActionFor(t *testing.T) {
	cases := []struct {
		method, route        string
		action, resourceType string
	}{
		{"POST", "/api/v1/admin/products", models.ActionCreateProduct, models.ResourceTypeProduct},
		{"PATCH", "/api/v1/admin/products/:id", models.ActionUpdateProduct, models.ResourceTypeProduct},
		{"DELETE", "/api/v1/admin/products/:id", models.ActionDeleteProduct, models.ResourceTypeProduct},
		{"POST", "/api/v1/admin/products/:id/image", models.ActionUploadProductImage, models.ResourceTypeProduct},
		{"POST", "/api/v1/admin/products/import", models.ActionImportCatalog, models.ResourceTypeCatalog},
		{"PATCH", "/api/v1/admin/options/:id", models.ActionUpdateOption, models.ResourceTypeOption},
		{"POST", "/api/v1/admin/auth/logout", "", ""},
	}
	for _, tc := range cases {
		action, rt := actionFor(tc.method, tc.route)
		assert.Equal(t, tc.action, action, tc.method+" "+tc.route)
		assert.Equal(t, tc.resourceType, rt, tc.method+" "+tc.route)
	}
}

func TestExtractResourceType(t *testing.T) {
	assert.Equal(t, models.ResourceTypeOption, extractResourceType("/api/v1/admin/options/018f3a7e-9c1d-7b2a-8e4f-1a2b3c4d5e6f"))
	assert.Equal(t, models.ResourceTypeProduct, extractResourceType("/api/v1/admin/products/:id"))
	assert.Equal(t, "", extractResourceType("/api/v1/wizard/steps"))
}

func TestExtractResourceName(t *testing.T) {
	assert.Equal(t, "GKD", extractResourceName(models.ResourceTypeProduct, models.Product{Series: "GKD"}))
	assert.Equal(t, "Wireless", extractResourceName(models.ResourceTypeOption, models.Option{Label: "Wireless"}))
	assert.Equal(t, "", extractResourceName(models.ResourceTypeCatalog, map[string]string{"series": "x"}))
	assert.Equal(t, "", extractResourceName(models.ResourceTypeProduct, nil))
}

func TestAdminAuthMiddleware_RejectsMissingAndInvalidTokens(t *testing.T) {
	require.NoError(t, services.InitJWTService("test-secret"))

	r := gin.New()
	r.GET("/admin", AdminAuthMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: AdminTokenCookie, Value: "garbage"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestRequireSuperAdminMiddleware(t *testing.T) {
	run := func(role string) int {
		r := gin.New()
		r.GET("/x", func(c *gin.Context) {
			if role != "" {
				c.Set("adminRole", role)
			}
			c.Next()
		}, RequireSuperAdminMiddleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, run(models.RoleSuperAdmin))
	assert.Equal(t, http.StatusForbidden, run(models.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, run(""))
}

func TestRateLimiter_PassesWithoutRedis(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(1, time.Minute))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateInfo(t *testing.T) {
	now := time.Unix(1000, 0)
	rate := rateInfo(10, 12, now.Add(30*time.Second), now)
	assert.Equal(t, 0, rate.Remaining)
	assert.Equal(t, 30, rate.ResetInSeconds)

	rate = rateInfo(10, 3, now.Add(-time.Second), now)
	assert.Equal(t, 7, rate.Remaining)
	assert.Equal(t, 0, rate.ResetInSeconds)
}
