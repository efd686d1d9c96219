package catalog_cache

import (
	"sync"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
)

const DefaultTTL = 5 * time.Minute

// Snapshot is one read-only view of the catalog: the matching engine's
// catalog plus the full rows for presentation, keyed by product id.
// Snapshots are never mutated after Set; wizard requests share them freely.
type Snapshot struct {
	Catalog  selector.Catalog
	Products map[string]models.Product
	Options  []models.Option
	// Version is the shared catalog version the snapshot was loaded at.
	Version  int64
	LoadedAt time.Time
}

// Product returns the full row for id.
func (s *Snapshot) Product(id string) (models.Product, bool) {
	p, ok := s.Products[id]
	return p, ok
}

// Rows returns the full rows for ps, in the order given.
func (s *Snapshot) Rows(ps []selector.Product) []models.Product {
	out := make([]models.Product, 0, len(ps))
	for _, p := range ps {
		if row, ok := s.Products[p.ID]; ok {
			out = append(out, row)
		}
	}
	return out
}

var (
	mu      sync.RWMutex
	current *Snapshot
	ttl     = DefaultTTL
	nowFunc = time.Now
)

// SetTTL changes how long a snapshot is served before a reload.
func SetTTL(d time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if d > 0 {
		ttl = d
	}
}

// Get returns the cached snapshot if it is younger than the TTL.
func Get() (*Snapshot, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if current != nil && nowFunc().Sub(current.LoadedAt) < ttl {
		return current, true
	}
	return nil, false
}

// Set stores s, stamping LoadedAt when it is zero.
func Set(s *Snapshot) {
	if s == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if s.LoadedAt.IsZero() {
		s.LoadedAt = nowFunc()
	}
	current = s
}

// Invalidate drops the snapshot (call on any product or option write).
func Invalidate() {
	mu.Lock()
	current = nil
	mu.Unlock()
}
