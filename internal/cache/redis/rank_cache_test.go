package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/rank"
	"keeper-ledger/internal/storage"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RankCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := New(context.Background(), ClientConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewRankCache(client, ttl), mr
}

func TestRankCache_SetAndGet(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	table := rank.NewTable([]domain.RankEntry{
		{Name: "Shohei Ohtani", Rank: 1},
		{Name: "Aaron Judge", Rank: 2},
		{Name: "José Ramírez", Rank: 5},
	})
	require.NoError(t, cache.Set(ctx, 2025, table))

	got, err := cache.Get(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())

	r, ok := got.Get("jose ramirez")
	assert.True(t, ok)
	assert.Equal(t, 5, r)
}

func TestRankCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)

	_, err := cache.Get(context.Background(), 2024)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRankCache_TTLExpiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 2025, rank.NewTable([]domain.RankEntry{{Name: "Mookie Betts", Rank: 9}})))
	assert.Equal(t, time.Minute, mr.TTL("rank:2025"))

	mr.FastForward(2 * time.Minute)
	_, err := cache.Get(ctx, 2025)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRankCache_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t, 0)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 2025, rank.NewTable(nil)))
	require.NoError(t, cache.Invalidate(ctx, 2025))

	_, err := cache.Get(ctx, 2025)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, cache.Set(ctx, 2025, nil), storage.ErrInvalidInput)
}

func TestNew_PingFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), ClientConfig{Addr: addr})
	assert.Error(t, err)
}
