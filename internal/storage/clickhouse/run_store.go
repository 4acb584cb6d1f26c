package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

// RunStore implements storage.RunStore using ClickHouse.
// MergeTree does not enforce uniqueness, so InsertRun checks for the run id first.
type RunStore struct {
	conn *Conn
}

// NewRunStore creates a new RunStore.
func NewRunStore(conn *Conn) *RunStore {
	return &RunStore{conn: conn}
}

// Compile-time interface check.
var _ storage.RunStore = (*RunStore)(nil)

// InsertRun adds a run summary. Returns ErrDuplicateKey if run_id exists.
func (s *RunStore) InsertRun(ctx context.Context, run *domain.RunSummary) error {
	if run == nil || run.RunID == "" {
		return storage.ErrInvalidInput
	}

	exists, err := s.exists(ctx, run.RunID)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	query := `
		INSERT INTO reconciliation_runs (
			run_id, season, mode, status, started_at, finished_at,
			trades_applied, trades_skipped, moves_applied, discrepancies,
			keepers_checked, matches, mismatches, skipped,
			ledger_fingerprint, error
		) VALUES (
			?, ?, ?, ?, ?, ?,
			?, ?, ?, ?,
			?, ?, ?, ?,
			?, ?
		)
	`

	err = s.conn.Exec(ctx, query,
		run.RunID, int32(run.Season), run.Mode, run.Status, run.StartedAt.UTC(), run.FinishedAt.UTC(),
		int32(run.TradesApplied), int32(run.TradesSkipped), int32(run.MovesApplied), int32(run.Discrepancies),
		int32(run.KeepersChecked), int32(run.Matches), int32(run.Mismatches), int32(run.Skipped),
		run.LedgerFingerprint, run.Error,
	)
	if err != nil {
		return fmt.Errorf("insert reconciliation run: %w", err)
	}
	return nil
}

// InsertDiscrepancies adds the discrepancies found by a run in one batch.
func (s *RunStore) InsertDiscrepancies(ctx context.Context, runID string, discrepancies []domain.Discrepancy) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(discrepancies) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO pick_discrepancies (
			run_id, round, slot, original_owner, computed_owner,
			computed_path, persisted_owner, persisted_path
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, d := range discrepancies {
		err = batch.Append(
			runID, int32(d.Round), int32(d.Slot), d.OriginalOwner, d.ComputedOwner,
			nonNil(d.ComputedPath), d.PersistedOwner, nonNil(d.PersistedPath),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetRun retrieves a run summary. Returns ErrNotFound if not exists.
func (s *RunStore) GetRun(ctx context.Context, runID string) (*domain.RunSummary, error) {
	query := `
		SELECT
			run_id, season, mode, status, started_at, finished_at,
			trades_applied, trades_skipped, moves_applied, discrepancies,
			keepers_checked, matches, mismatches, skipped,
			ledger_fingerprint, error
		FROM reconciliation_runs
		WHERE run_id = ?
		LIMIT 1
	`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate runs: %w", err)
		}
		return nil, storage.ErrNotFound
	}

	var (
		r                                           domain.RunSummary
		season                                      int32
		applied, skippedTrades, moves, discrepancy  int32
		checked, matches, mismatches, skippedKeeper int32
	)
	err = rows.Scan(
		&r.RunID, &season, &r.Mode, &r.Status, &r.StartedAt, &r.FinishedAt,
		&applied, &skippedTrades, &moves, &discrepancy,
		&checked, &matches, &mismatches, &skippedKeeper,
		&r.LedgerFingerprint, &r.Error,
	)
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	r.Season = int(season)
	r.TradesApplied = int(applied)
	r.TradesSkipped = int(skippedTrades)
	r.MovesApplied = int(moves)
	r.Discrepancies = int(discrepancy)
	r.KeepersChecked = int(checked)
	r.Matches = int(matches)
	r.Mismatches = int(mismatches)
	r.Skipped = int(skippedKeeper)
	return &r, nil
}

// GetDiscrepancies retrieves a run's discrepancies ordered by (round, slot).
func (s *RunStore) GetDiscrepancies(ctx context.Context, runID string) ([]domain.Discrepancy, error) {
	query := `
		SELECT round, slot, original_owner, computed_owner, computed_path, persisted_owner, persisted_path
		FROM pick_discrepancies
		WHERE run_id = ?
		ORDER BY round ASC, slot ASC
	`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query discrepancies: %w", err)
	}
	defer rows.Close()

	return scanDiscrepancies(rows)
}

func (s *RunStore) exists(ctx context.Context, runID string) (bool, error) {
	var count uint64
	row := s.conn.QueryRow(ctx, `SELECT count() FROM reconciliation_runs WHERE run_id = ?`, runID)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func scanDiscrepancies(rows driver.Rows) ([]domain.Discrepancy, error) {
	result := make([]domain.Discrepancy, 0)
	for rows.Next() {
		var (
			d           domain.Discrepancy
			round, slot int32
		)
		if err := rows.Scan(
			&round, &slot, &d.OriginalOwner, &d.ComputedOwner,
			&d.ComputedPath, &d.PersistedOwner, &d.PersistedPath,
		); err != nil {
			return nil, fmt.Errorf("scan discrepancy: %w", err)
		}
		d.Round = int(round)
		d.Slot = int(slot)
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate discrepancies: %w", err)
	}
	return result, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
