package memory

import (
	"context"
	"errors"
	"testing"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

func TestDraftResultStore(t *testing.T) {
	ctx := context.Background()
	store := NewDraftResultStore()

	if _, err := store.GetDraftResults(ctx, 2026); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	results := []domain.DraftResult{
		{PlayerID: "1", Round: 1, Pick: 1, TeamKey: "t.1"},
		{PlayerID: "2", Round: 1, Pick: 2, TeamKey: "t.2"},
	}
	if err := store.InsertBulk(ctx, 2026, results); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}
	if err := store.InsertBulk(ctx, 2026, results[:1]); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}

	got, err := store.GetDraftResults(ctx, 2026)
	if err != nil {
		t.Fatalf("GetDraftResults failed: %v", err)
	}
	if len(got) != 2 || got["2"].TeamKey != "t.2" {
		t.Errorf("Unexpected results: %v", got)
	}
}

func TestTransactionStore(t *testing.T) {
	ctx := context.Background()
	store := NewTransactionStore()

	txns := []domain.TransactionEvent{
		{TransactionID: "9", Type: domain.TransactionAdd, Timestamp: 200,
			Players: []domain.PlayerMovement{{PlayerID: "1", Action: domain.ActionAdd}}},
		{TransactionID: "3", Type: domain.TransactionDrop, Timestamp: 100},
	}
	if err := store.InsertBulk(ctx, 2026, txns); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}
	if err := store.InsertBulk(ctx, 2026, txns[1:]); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}

	got, _ := store.GetTransactions(ctx, 2026)
	if len(got) != 2 || got[0].TransactionID != "9" {
		t.Fatalf("Expected insertion order, got %v", got)
	}
	got[0].Players[0].PlayerID = "x"
	again, _ := store.GetTransactions(ctx, 2026)
	if again[0].Players[0].PlayerID != "1" {
		t.Errorf("Stored transaction mutated through returned slice")
	}
}

func TestRosterStore(t *testing.T) {
	ctx := context.Background()
	store := NewRosterStore()

	if _, err := store.GetEndOfSeason(ctx, 2025); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := store.Put(ctx, 2025, domain.Rosters{"t.1": {"1", "2"}}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := store.GetEndOfSeason(ctx, 2025)
	if err != nil {
		t.Fatalf("GetEndOfSeason failed: %v", err)
	}
	if len(got["t.1"]) != 2 {
		t.Errorf("Unexpected rosters: %v", got)
	}
}
