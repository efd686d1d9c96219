package option_controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.UseSQLite(t)

	r := gin.New()
	g := r.Group("/api/v1/admin/options")
	g.GET("", GetOptions)
	g.POST("", CreateOption)
	g.PATCH("/:id", UpdateOption)
	g.DELETE("/:id", DeleteOption)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeOption(t *testing.T, w *httptest.ResponseRecorder) models.Option {
	t.Helper()
	var envelope struct {
		Data models.Option `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	return envelope.Data
}

func seedOption(t *testing.T, db *gorm.DB, category, value, label string) models.Option {
	t.Helper()
	o := models.Option{Category: category, Value: value, Label: label, Active: true}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func TestCreateOption(t *testing.T) {
	r, db := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/options", map[string]any{
		"category": "features",
		"value":    "Feature-Multi-Stage",
		"label":    " Multi-stage ",
		"rules":    map[string]any{"technologies": []string{"electrical"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decodeOption(t, w)
	assert.Equal(t, "multi_stage", created.Value)
	assert.Equal(t, "Multi-stage", created.Label)

	var stored models.Option
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	rules, err := stored.Eligibility()
	require.NoError(t, err)
	assert.Equal(t, []string{"electrical"}, rules.Technologies)
}

func TestCreateOption_DuplicateValue(t *testing.T) {
	r, db := setupRouter(t)
	seedOption(t, db, "technology", "wireless", "Wireless")

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/options", map[string]any{
		"category": "technology",
		"value":    "Wireless",
		"label":    "Cordless",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Option{}).Where("category = ?", "technology").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateOption_SameValueOtherCategory(t *testing.T) {
	r, db := setupRouter(t)
	seedOption(t, db, "guard", "yes", "With guard")

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/options", map[string]any{
		"category": "features",
		"value":    "yes",
		"label":    "Yes",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateOption_UnknownCategory(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/options", map[string]any{
		"category": "colour",
		"value":    "red",
		"label":    "Red",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOption(t *testing.T) {
	r, db := setupRouter(t)
	o := seedOption(t, db, "duty", "heavy", "Heavy")

	w := doJSON(t, r, http.MethodPatch, "/api/v1/admin/options/"+o.ID.String(), map[string]any{
		"label":      "Heavy duty",
		"sort_order": 3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Option
	require.NoError(t, db.First(&stored, "id = ?", o.ID).Error)
	assert.Equal(t, "Heavy duty", stored.Label)
	assert.Equal(t, 3, stored.SortOrder)
	assert.Equal(t, "heavy", stored.Value)
}

func TestUpdateOption_DuplicateValue(t *testing.T) {
	r, db := setupRouter(t)
	seedOption(t, db, "duty", "heavy", "Heavy")
	light := seedOption(t, db, "duty", "light", "Light")

	w := doJSON(t, r, http.MethodPatch, "/api/v1/admin/options/"+light.ID.String(), map[string]any{
		"value": "Heavy",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	var stored models.Option
	require.NoError(t, db.First(&stored, "id = ?", light.ID).Error)
	assert.Equal(t, "light", stored.Value)
}

func TestUpdateOption_KeepOwnValue(t *testing.T) {
	r, db := setupRouter(t)
	o := seedOption(t, db, "duty", "heavy", "Heavy")

	w := doJSON(t, r, http.MethodPatch, "/api/v1/admin/options/"+o.ID.String(), map[string]any{
		"value": "heavy",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestUpdateOption_NotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPatch, "/api/v1/admin/options/0191e4d2-7a4b-7c3e-9f00-000000000001", map[string]any{
		"label": "Ghost",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/v1/admin/options/not-a-uuid", map[string]any{"label": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOptions_FilterByCategory(t *testing.T) {
	r, db := setupRouter(t)
	seedOption(t, db, "duty", "heavy", "Heavy")
	seedOption(t, db, "guard", "yes", "With guard")

	w := doJSON(t, r, http.MethodGet, "/api/v1/admin/options?category=duty", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data []models.Option `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "heavy", envelope.Data[0].Value)

	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/options?category=search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOption(t *testing.T) {
	r, db := setupRouter(t)
	o := seedOption(t, db, "duty", "heavy", "Heavy")

	w := doJSON(t, r, http.MethodDelete, "/api/v1/admin/options/"+o.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/admin/options/"+o.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
