package clickhouse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

func TestRunStore_InsertAndGetRun(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRunStore(conn)
	ctx := context.Background()

	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	run := &domain.RunSummary{
		RunID:             "run-001",
		Season:            2025,
		Mode:              "all",
		Status:            domain.RunStatusSucceeded,
		StartedAt:         started,
		FinishedAt:        started.Add(1500 * time.Millisecond),
		TradesApplied:     41,
		TradesSkipped:     2,
		MovesApplied:      57,
		Discrepancies:     1,
		KeepersChecked:    72,
		Matches:           64,
		Mismatches:        5,
		Skipped:           3,
		LedgerFingerprint: "abc123",
	}
	require.NoError(t, store.InsertRun(ctx, run))

	got, err := store.GetRun(ctx, "run-001")
	require.NoError(t, err)
	assert.Equal(t, run.Season, got.Season)
	assert.Equal(t, run.MovesApplied, got.MovesApplied)
	assert.Equal(t, run.Mismatches, got.Mismatches)
	assert.Equal(t, run.LedgerFingerprint, got.LedgerFingerprint)
	assert.True(t, run.FinishedAt.Equal(got.FinishedAt))

	assert.ErrorIs(t, store.InsertRun(ctx, run), storage.ErrDuplicateKey)

	_, err = store.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRunStore_Discrepancies(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRunStore(conn)
	ctx := context.Background()

	discrepancies := []domain.Discrepancy{
		{Round: 5, Slot: 2, OriginalOwner: "Bob", ComputedOwner: "Alice", ComputedPath: []string{"Bob", "Alice"}, PersistedOwner: "Bob"},
		{Round: 1, Slot: 7, OriginalOwner: "Carl", ComputedOwner: "Dana", ComputedPath: []string{"Carl", "Dana"}},
	}
	require.NoError(t, store.InsertDiscrepancies(ctx, "run-002", discrepancies))

	got, err := store.GetDiscrepancies(ctx, "run-002")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Round)
	assert.Equal(t, "", got[0].PersistedOwner)
	assert.Empty(t, got[0].PersistedPath)
	assert.Equal(t, []string{"Bob", "Alice"}, got[1].ComputedPath)

	none, err := store.GetDiscrepancies(ctx, "run-003")
	require.NoError(t, err)
	assert.Empty(t, none)
}
