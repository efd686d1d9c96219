package admin_auth_controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Treadle-Controls/treadle-cms-backend/middleware"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/Treadle-Controls/treadle-cms-backend/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "pedal-power-2024"

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.UseSQLite(t)
	require.NoError(t, services.InitJWTService("test-secret"))

	r := gin.New()
	admin := r.Group("/api/v1/admin")
	admin.POST("/login", AdminLogin)
	protected := admin.Group("", middleware.AdminAuthMiddleware())
	protected.POST("/logout", AdminLogout)
	protected.GET("/me", GetAdminMe)
	return r, db
}

func seedAdmin(t *testing.T, db *gorm.DB, email, status string) models.Admin {
	t.Helper()
	hash, err := services.GetAdminAuthService().HashPassword(testPassword)
	require.NoError(t, err)
	a := models.Admin{
		Email:        email,
		Name:         "Catalog Ops",
		PasswordHash: hash,
		Role:         models.RoleSuperAdmin,
		Status:       status,
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, r, http.MethodPost, "/api/v1/admin/login", "", models.AdminLoginRequest{
		Email:    email,
		Password: password,
	})
}

func TestAdminLogin(t *testing.T) {
	r, db := setupRouter(t)
	a := seedAdmin(t, db, "ops@treadle.example", models.AdminStatusInactive)

	w := login(t, r, "OPS@treadle.example", testPassword)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data models.AdminLoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.Token)
	assert.Equal(t, a.ID, envelope.Data.Admin.ID)
	assert.Equal(t, models.AdminStatusActive, envelope.Data.Admin.Status)

	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.AdminTokenCookie {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, envelope.Data.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	var session models.AdminSession
	require.NoError(t, db.Where("admin_id = ?", a.ID).First(&session).Error)
	assert.Equal(t, services.GetAdminAuthService().HashToken(envelope.Data.Token), session.TokenHash)
	assert.Equal(t, "Firefox", session.Browser)
	assert.Equal(t, "Linux", session.OS)
	assert.True(t, session.IsActive)

	var stored models.Admin
	require.NoError(t, db.First(&stored, "id = ?", a.ID).Error)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestAdminLogin_Rejections(t *testing.T) {
	r, db := setupRouter(t)
	seedAdmin(t, db, "ops@treadle.example", models.AdminStatusActive)
	seedAdmin(t, db, "gone@treadle.example", models.AdminStatusSuspended)

	tests := []struct {
		name     string
		email    string
		password string
		want     int
	}{
		{"wrong password", "ops@treadle.example", "not-the-password", http.StatusBadRequest},
		{"unknown email", "nobody@treadle.example", testPassword, http.StatusBadRequest},
		{"suspended", "gone@treadle.example", testPassword, http.StatusForbidden},
		{"malformed email", "ops", testPassword, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := login(t, r, tt.email, tt.password)
			assert.Equal(t, tt.want, w.Code)
			assert.Empty(t, w.Result().Cookies())
		})
	}

	var sessions int64
	require.NoError(t, db.Model(&models.AdminSession{}).Count(&sessions).Error)
	assert.Zero(t, sessions)
}

func TestAdminMe_AndLogoutRevokesToken(t *testing.T) {
	r, db := setupRouter(t)
	seedAdmin(t, db, "ops@treadle.example", models.AdminStatusActive)

	w := login(t, r, "ops@treadle.example", testPassword)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var envelope struct {
		Data models.AdminLoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	token := envelope.Data.Token

	w = do(t, r, http.MethodGet, "/api/v1/admin/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me struct {
		Data models.AdminResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "ops@treadle.example", me.Data.Email)
	assert.Equal(t, models.RoleSuperAdmin, me.Data.Role)

	w = do(t, r, http.MethodPost, "/api/v1/admin/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/admin/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
