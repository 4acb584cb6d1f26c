package memory

import (
	"context"
	"errors"
	"testing"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

func intPtr(v int) *int { return &v }

func TestKeeperStore_InsertBulk(t *testing.T) {
	ctx := context.Background()
	store := NewKeeperStore()

	records := []domain.KeeperRecord{
		{PlayerID: "200", PlayerName: "B", TeamKey: "t.2", Status: domain.StatusKeeping, PersistedCost: intPtr(4)},
		{PlayerID: "100", PlayerName: "A", TeamKey: "t.2", Status: domain.StatusKeeping7th},
		{PlayerID: "300", PlayerName: "C", TeamKey: "t.1", Status: domain.StatusKeepingNA},
	}
	if err := store.InsertBulk(ctx, 2026, records); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetKeepers(ctx, 2026)
	if err != nil {
		t.Fatalf("GetKeepers failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(got))
	}
	if got[0].PlayerID != "300" || got[1].PlayerID != "100" || got[2].PlayerID != "200" {
		t.Errorf("Unexpected order: %v", got)
	}

	*got[2].PersistedCost = 99
	again, _ := store.GetKeepers(ctx, 2026)
	if *again[2].PersistedCost != 4 {
		t.Errorf("Stored record mutated through returned pointer")
	}

	if other, _ := store.GetKeepers(ctx, 2025); len(other) != 0 {
		t.Errorf("Expected empty season, got %d", len(other))
	}
}

func TestKeeperStore_InsertBulkDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewKeeperStore()

	rec := domain.KeeperRecord{PlayerID: "1", TeamKey: "t.1", Status: domain.StatusKeeping}
	err := store.InsertBulk(ctx, 2026, []domain.KeeperRecord{rec, rec})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey for intra-batch duplicate, got %v", err)
	}

	// Failed batch leaves the store empty.
	if got, _ := store.GetKeepers(ctx, 2026); len(got) != 0 {
		t.Errorf("Expected no records after failed batch, got %d", len(got))
	}

	bad := domain.KeeperRecord{PlayerID: "1", TeamKey: "t.1", Status: "keeping-forever"}
	if err := store.InsertBulk(ctx, 2026, []domain.KeeperRecord{bad}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}
