package memory

import (
	"context"
	"errors"
	"testing"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

func sampleSnapshot() *domain.LedgerSnapshot {
	return &domain.LedgerSnapshot{
		DraftOrder: []string{"Pudge", "Alex"},
		Rounds:     1,
		NARounds:   []int{},
		Picks: map[string][]domain.SnapshotPick{
			"1": {
				{Slot: 1, OriginalOwner: "Pudge", CurrentOwner: "Alex", Traded: true, Path: []string{"Pudge", "Alex"}},
				{Slot: 2, OriginalOwner: "Alex", CurrentOwner: "Alex", Path: []string{"Alex"}},
			},
		},
	}
}

func TestSnapshotStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()

	snap := sampleSnapshot()
	if err := store.Put(ctx, 2026, storage.SnapshotPersisted, snap); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Mutating the input must not affect the stored copy.
	snap.Picks["1"][0].Path[1] = "Changed"

	got, err := store.Get(ctx, 2026, storage.SnapshotPersisted)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Picks["1"][0].Path[1] != "Alex" {
		t.Errorf("Stored snapshot was mutated through caller reference")
	}

	// Replace
	replacement := sampleSnapshot()
	replacement.Picks["1"][0].CurrentOwner = "Pudge"
	if err := store.Put(ctx, 2026, storage.SnapshotPersisted, replacement); err != nil {
		t.Fatalf("Put replacement failed: %v", err)
	}
	got, _ = store.Get(ctx, 2026, storage.SnapshotPersisted)
	if got.Picks["1"][0].CurrentOwner != "Pudge" {
		t.Errorf("Expected replacement snapshot")
	}
}

func TestSnapshotStore_NotFound(t *testing.T) {
	store := NewSnapshotStore()
	_, err := store.Get(context.Background(), 2026, storage.SnapshotVerified)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := store.Put(context.Background(), 2026, "", sampleSnapshot()); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}
