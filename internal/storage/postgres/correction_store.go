package postgres

import (
	"context"
	"fmt"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

// CorrectionStore implements storage.CorrectionStore using PostgreSQL.
// Rows are history only; keeper_records is never updated from them.
type CorrectionStore struct {
	pool *Pool
}

// NewCorrectionStore creates a new CorrectionStore.
func NewCorrectionStore(pool *Pool) *CorrectionStore {
	return &CorrectionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CorrectionStore = (*CorrectionStore)(nil)

// InsertBulk adds all corrections of a run atomically. Fails entire batch on any duplicate (run_id, id).
func (s *CorrectionStore) InsertBulk(ctx context.Context, runID string, season int, corrections []domain.Correction) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(corrections) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO keeper_cost_corrections (
			run_id, id, season, player_id, player, team, current_cost, correct_cost, rationale
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, c := range corrections {
		if c.ID == "" || c.PlayerID == "" {
			return storage.ErrInvalidInput
		}
		rationale := c.Rationale
		if rationale == nil {
			rationale = []string{}
		}
		_, err := tx.Exec(ctx, query,
			runID,
			c.ID,
			season,
			c.PlayerID,
			c.Player,
			c.Team,
			c.CurrentCost,
			c.CorrectCost,
			rationale,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert correction: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByRun retrieves the corrections proposed by a run, ordered by team then player.
func (s *CorrectionStore) GetByRun(ctx context.Context, runID string) ([]domain.Correction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, player_id, player, team, current_cost, correct_cost, rationale
		FROM keeper_cost_corrections
		WHERE run_id = $1
		ORDER BY team ASC, player ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("get corrections by run: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Correction, 0)
	for rows.Next() {
		var (
			c       domain.Correction
			current *int32
			correct int32
		)
		if err := rows.Scan(&c.ID, &c.PlayerID, &c.Player, &c.Team, &current, &correct, &c.Rationale); err != nil {
			return nil, fmt.Errorf("scan correction: %w", err)
		}
		c.CurrentCost = intPtr(current)
		c.CorrectCost = int(correct)
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate corrections: %w", err)
	}
	return result, nil
}
