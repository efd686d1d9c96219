package catalog_cache

import (
	"testing"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withClock(t *testing.T, start time.Time) *time.Time {
	t.Helper()
	now := start
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() {
		nowFunc = time.Now
		ttl = DefaultTTL
		Invalidate()
	})
	return &now
}

func TestGetSet_TTL(t *testing.T) {
	now := withClock(t, time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))

	_, ok := Get()
	assert.False(t, ok)

	Set(&Snapshot{Version: 3})
	s, ok := Get()
	require.True(t, ok)
	assert.Equal(t, int64(3), s.Version)
	assert.Equal(t, *now, s.LoadedAt)

	*now = now.Add(DefaultTTL - time.Second)
	_, ok = Get()
	assert.True(t, ok)

	*now = now.Add(time.Second)
	_, ok = Get()
	assert.False(t, ok)
}

func TestSetTTL(t *testing.T) {
	now := withClock(t, time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	SetTTL(time.Second)
	SetTTL(0)

	Set(&Snapshot{})
	*now = now.Add(2 * time.Second)
	_, ok := Get()
	assert.False(t, ok)
}

func TestInvalidate(t *testing.T) {
	withClock(t, time.Now())
	Set(&Snapshot{})
	Invalidate()
	_, ok := Get()
	assert.False(t, ok)
}

func TestSnapshot_Rows(t *testing.T) {
	s := &Snapshot{Products: map[string]models.Product{
		"a": {ID: "a", Series: "A"},
		"b": {ID: "b", Series: "B"},
	}}
	rows := s.Rows([]selector.Product{{ID: "b"}, {ID: "missing"}, {ID: "a"}})
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].Series)
	assert.Equal(t, "A", rows[1].Series)

	p, ok := s.Product("a")
	assert.True(t, ok)
	assert.Equal(t, "A", p.Series)
}
