package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	type stats struct {
		Total int     `json:"total"`
		Mean  float64 `json:"mean"`
	}

	err := c.Set(ctx, Key("mood_stats", 1), stats{Total: 3, Mean: 3.67}, time.Minute)
	require.NoError(t, err)

	var got stats
	err = c.Get(ctx, Key("mood_stats", 1), &got)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Total)
	assert.InDelta(t, 3.67, got.Mean, 0.001)
}

func TestMemoryCacheMiss(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var dest string
	err := c.Get(ctx, "absent", &dest)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", 10*time.Minute))

	var dest string
	require.NoError(t, c.Get(ctx, "k", &dest))
	assert.Equal(t, "v", dest)

	// Past the TTL the entry is lazily removed on lookup
	now = now.Add(11 * time.Minute)
	err := c.Get(ctx, "k", &dest)
	assert.ErrorIs(t, err, ErrCacheMiss)

	s := c.Stats()
	assert.Equal(t, 0, s.TotalEntries)
}

func TestMemoryCacheInvalidateUser(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.SetForUser(ctx, 1, Key("mood_stats", 1), "a", time.Minute))
	require.NoError(t, c.SetForUser(ctx, 1, Key("mood_recent", 1, 10), "b", time.Minute))
	require.NoError(t, c.SetForUser(ctx, 2, Key("mood_stats", 2), "c", time.Minute))

	require.NoError(t, c.InvalidateUser(ctx, 1))

	var dest string
	assert.ErrorIs(t, c.Get(ctx, Key("mood_stats", 1), &dest), ErrCacheMiss)
	assert.ErrorIs(t, c.Get(ctx, Key("mood_recent", 1, 10), &dest), ErrCacheMiss)

	// Other users' keys are untouched
	require.NoError(t, c.Get(ctx, Key("mood_stats", 2), &dest))
	assert.Equal(t, "c", dest)
}

func TestMemoryCacheStats(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "short", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "long", 2, time.Hour))

	now = now.Add(2 * time.Minute)

	s := c.Stats()
	assert.Equal(t, 2, s.TotalEntries)
	assert.Equal(t, 1, s.ValidEntries)
	assert.Equal(t, 1, s.ExpiredEntries)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "mood_stats:42", Key("mood_stats", uint(42)))
	assert.Equal(t, "mood_recent:42:10", Key("mood_recent", uint(42), 10))
	assert.Equal(t, "correlations", Key("correlations"))
}
