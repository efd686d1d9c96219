package services

import (
	"context"
	"testing"

	catalog_cache "github.com/Treadle-Controls/treadle-cms-backend/cache"
	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestBuildSnapshot(t *testing.T) {
	products := []models.Product{
		{ID: "FS-1", Technology: "electrical", Duty: "heavy", Applications: models.StringList{"industrial"}},
		{ID: "FS-2", Technology: "wireless", Duty: "light"},
	}
	options := []models.Option{
		{Category: "technology", Value: "wireless", Label: "Wireless", Active: true,
			Rules: datatypes.JSON(`{"applications":["medical"]}`)},
		{Category: "technology", Value: "pneumatic", Label: "Pneumatic", Active: false},
		{Category: "technology", Value: "broken", Label: "Broken", Active: true, Rules: datatypes.JSON(`{"applications":`)},
	}

	snap := BuildSnapshot(products, options, 7)
	assert.Equal(t, int64(7), snap.Version)
	require.Len(t, snap.Catalog.Products, 2)
	assert.Equal(t, "FS-1", snap.Catalog.Products[0].ID)
	assert.NotNil(t, snap.Catalog.Products[1].Applications)

	require.Len(t, snap.Catalog.Options, 1)
	assert.Equal(t, "wireless", snap.Catalog.Options[0].ID)
	assert.Equal(t, []string{"medical"}, snap.Catalog.Options[0].Rules.Applications)
	require.Len(t, snap.Options, 1)

	row, ok := snap.Product("FS-2")
	require.True(t, ok)
	assert.Equal(t, "wireless", row.Technology)

	assert.Equal(t, []string{"FS-1"}, ids(selector.Match(snap.Catalog.Products, selector.Selection{Application: "industrial"})))
}

func ids(ps []selector.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestLoadCatalog_ServesCachedSnapshot(t *testing.T) {
	t.Cleanup(catalog_cache.Invalidate)
	require.Nil(t, config.RedisClient)

	want := BuildSnapshot([]models.Product{{ID: "FS-1"}}, nil, 0)
	catalog_cache.Set(want)

	got, err := LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestLoadCatalog_UnavailableWithoutDatabase(t *testing.T) {
	catalog_cache.Invalidate()
	require.Nil(t, config.CmsGorm)

	_, err := LoadCatalog(context.Background())
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestInvalidateCatalog(t *testing.T) {
	catalog_cache.Set(BuildSnapshot(nil, nil, 0))
	InvalidateCatalog(context.Background())
	_, ok := catalog_cache.Get()
	assert.False(t, ok)
}
