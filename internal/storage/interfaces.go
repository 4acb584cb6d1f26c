package storage

import (
	"context"

	"keeper-ledger/internal/domain"
)

// Snapshot labels.
const (
	// SnapshotPersisted is the board maintained by hand, treated as the source of truth.
	SnapshotPersisted = "persisted"
	// SnapshotVerified is the board rebuilt by a reconciliation run.
	SnapshotVerified = "verified"
)

// SnapshotStore provides access to draft board snapshots.
type SnapshotStore interface {
	// Get retrieves the snapshot for (season, label). Returns ErrNotFound if not exists.
	Get(ctx context.Context, season int, label string) (*domain.LedgerSnapshot, error)

	// Put stores a snapshot, replacing any previous one for (season, label).
	Put(ctx context.Context, season int, label string, snap *domain.LedgerSnapshot) error
}

// KeeperStore provides access to keeper designations.
type KeeperStore interface {
	// GetKeepers retrieves all keeper records for a season, ordered by team key then player id.
	GetKeepers(ctx context.Context, season int) ([]domain.KeeperRecord, error)
}

// DraftResultStore provides access to completed draft results.
type DraftResultStore interface {
	// GetDraftResults retrieves the draft results for a season keyed by player id.
	// Returns ErrNotFound if the season has no draft.
	GetDraftResults(ctx context.Context, season int) (domain.DraftResults, error)
}

// TransactionStore provides access to league transaction logs.
type TransactionStore interface {
	// GetTransactions retrieves every transaction for a season in storage order.
	// Callers sort with history.SortTransactions before use.
	GetTransactions(ctx context.Context, season int) ([]domain.TransactionEvent, error)
}

// RosterStore provides access to end-of-season rosters.
type RosterStore interface {
	// GetEndOfSeason retrieves the final rosters of a season keyed by team key.
	// Returns ErrNotFound if none recorded.
	GetEndOfSeason(ctx context.Context, season int) (domain.Rosters, error)
}

// CorrectionStore records proposed keeper-cost corrections. Append-only.
type CorrectionStore interface {
	// InsertBulk adds all corrections of a run atomically. Fails entire batch on any duplicate (run_id, id).
	InsertBulk(ctx context.Context, runID string, season int, corrections []domain.Correction) error

	// GetByRun retrieves the corrections proposed by a run, ordered by team then player.
	GetByRun(ctx context.Context, runID string) ([]domain.Correction, error)
}

// RunStore records reconciliation run audits. Append-only.
type RunStore interface {
	// InsertRun adds a run summary. Returns ErrDuplicateKey if run_id exists.
	InsertRun(ctx context.Context, run *domain.RunSummary) error

	// InsertDiscrepancies adds the discrepancies found by a run.
	InsertDiscrepancies(ctx context.Context, runID string, discrepancies []domain.Discrepancy) error

	// GetRun retrieves a run summary. Returns ErrNotFound if not exists.
	GetRun(ctx context.Context, runID string) (*domain.RunSummary, error)

	// GetDiscrepancies retrieves a run's discrepancies ordered by (round, slot).
	GetDiscrepancies(ctx context.Context, runID string) ([]domain.Discrepancy, error)
}
