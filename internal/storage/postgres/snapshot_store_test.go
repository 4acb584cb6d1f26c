package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

func sampleSnapshot() *domain.LedgerSnapshot {
	return &domain.LedgerSnapshot{
		DraftOrder: []string{"Alice", "Bob"},
		Rounds:     2,
		NARounds:   []int{2},
		Picks: map[string][]domain.SnapshotPick{
			"1": {
				{Slot: 2, OriginalOwner: "Bob", CurrentOwner: "Alice", Traded: true, Path: []string{"Bob", "Alice"}},
				{Slot: 1, OriginalOwner: "Alice", CurrentOwner: "Alice"},
			},
			"2": {
				{Slot: 1, OriginalOwner: "Bob", CurrentOwner: "Bob"},
				{Slot: 2, OriginalOwner: "Alice", CurrentOwner: "Alice"},
			},
		},
	}
}

func TestSnapshotStore_PutAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSnapshotStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, 2025, storage.SnapshotPersisted, sampleSnapshot()))

	got, err := store.Get(ctx, 2025, storage.SnapshotPersisted)
	require.NoError(t, err)

	assert.Equal(t, []string{"Alice", "Bob"}, got.DraftOrder)
	assert.Equal(t, 2, got.Rounds)
	assert.Equal(t, []int{2}, got.NARounds)
	require.Len(t, got.Round(1), 2)

	// Picks come back ordered by slot.
	assert.Equal(t, 1, got.Round(1)[0].Slot)
	traded, ok := got.Lookup(1, 2)
	require.True(t, ok)
	assert.Equal(t, "Alice", traded.CurrentOwner)
	assert.True(t, traded.Traded)
	assert.Equal(t, []string{"Bob", "Alice"}, traded.Path)

	plain, ok := got.Lookup(1, 1)
	require.True(t, ok)
	assert.Empty(t, plain.Path)
}

func TestSnapshotStore_PutReplaces(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSnapshotStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, 2025, storage.SnapshotVerified, sampleSnapshot()))

	smaller := &domain.LedgerSnapshot{
		DraftOrder: []string{"Alice", "Bob"},
		Rounds:     1,
		Picks: map[string][]domain.SnapshotPick{
			"1": {{Slot: 1, OriginalOwner: "Alice", CurrentOwner: "Bob", Traded: true, Path: []string{"Alice", "Bob"}}},
		},
	}
	require.NoError(t, store.Put(ctx, 2025, storage.SnapshotVerified, smaller))

	got, err := store.Get(ctx, 2025, storage.SnapshotVerified)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Rounds)
	assert.Empty(t, got.NARounds)
	assert.Len(t, got.Round(1), 1)
	assert.Nil(t, got.Round(2))

	// Labels are independent.
	_, err = store.Get(ctx, 2025, storage.SnapshotPersisted)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSnapshotStore_PutInvalid(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSnapshotStore(pool)
	ctx := context.Background()

	assert.ErrorIs(t, store.Put(ctx, 2025, storage.SnapshotPersisted, nil), storage.ErrInvalidInput)

	bad := sampleSnapshot()
	bad.Picks["one"] = bad.Picks["1"]
	assert.ErrorIs(t, store.Put(ctx, 2025, storage.SnapshotPersisted, bad), storage.ErrInvalidInput)

	// Failed put leaves nothing behind.
	_, err := store.Get(ctx, 2025, storage.SnapshotPersisted)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
