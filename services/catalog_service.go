package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalog_cache "github.com/Treadle-Controls/treadle-cms-backend/cache"
	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/redis/go-redis/v9"
)

// ErrCatalogUnavailable is returned when no snapshot is cached and the
// database cannot be read.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// catalogVersionKey is bumped on every catalog write so other instances drop
// their snapshot before the TTL runs out.
const catalogVersionKey = "catalog:version"

// BuildSnapshot turns database rows into a wizard snapshot. Inactive options
// and options with unreadable rules are left out.
func BuildSnapshot(products []models.Product, options []models.Option, version int64) *catalog_cache.Snapshot {
	byID := make(map[string]models.Product, len(products))
	sp := make([]selector.Product, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		sp = append(sp, p.ToSelector())
	}

	so := make([]selector.Option, 0, len(options))
	kept := make([]models.Option, 0, len(options))
	for _, o := range options {
		if !o.Active {
			continue
		}
		opt, err := o.ToSelector()
		if err != nil {
			config.Log.Warnf("[catalog.load] skipping option: %v", err)
			continue
		}
		so = append(so, opt)
		kept = append(kept, o)
	}

	return &catalog_cache.Snapshot{
		Catalog:  selector.NewCatalog(sp, so),
		Products: byID,
		Options:  kept,
		Version:  version,
	}
}

// LoadCatalog returns the current snapshot, reading the database when the
// cached one is missing, expired or older than the shared version.
func LoadCatalog(ctx context.Context) (*catalog_cache.Snapshot, error) {
	version, known := catalogVersion(ctx)
	if snap, ok := catalog_cache.Get(); ok && (!known || snap.Version == version) {
		return snap, nil
	}

	if config.CmsGorm == nil {
		return nil, ErrCatalogUnavailable
	}

	start := time.Now()
	products, err := listProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	options, err := listOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	snap := BuildSnapshot(products, options, version)
	catalog_cache.Set(snap)
	config.Log.Infof("[catalog.load] %d products, %d options in %v (version %d)",
		len(snap.Catalog.Products), len(snap.Catalog.Options), time.Since(start), version)
	return snap, nil
}

// InvalidateCatalog drops the local snapshot and bumps the shared version.
func InvalidateCatalog(ctx context.Context) {
	catalog_cache.Invalidate()
	if config.RedisClient == nil {
		return
	}
	if err := config.RedisClient.Incr(ctx, catalogVersionKey).Err(); err != nil {
		config.Log.Warnf("[catalog.invalidate] failed to bump version: %v", err)
	}
}

// catalogVersion reads the shared version. known is false without Redis or on
// a Redis error, in which case the local TTL alone decides freshness.
func catalogVersion(ctx context.Context) (int64, bool) {
	if config.RedisClient == nil {
		return 0, false
	}
	v, err := config.RedisClient.Get(ctx, catalogVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		config.Log.Warnf("[catalog.version] redis error: %v", err)
		return 0, false
	}
	return v, true
}

// listProducts keeps insertion order stable so "catalog order" means
// something to the ranker.
func listProducts(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := config.CmsGorm.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&products).Error
	return products, err
}

func listOptions(ctx context.Context) ([]models.Option, error) {
	options := make([]models.Option, 0)
	err := config.CmsGorm.WithContext(ctx).
		Where("active = ?", true).
		Order("category ASC, sort_order ASC, label ASC").
		Find(&options).Error
	return options, err
}
