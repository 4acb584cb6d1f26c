package postgres

import (
	"context"
	"fmt"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

// DraftResultStore implements storage.DraftResultStore using PostgreSQL.
type DraftResultStore struct {
	pool *Pool
}

// NewDraftResultStore creates a new DraftResultStore.
func NewDraftResultStore(pool *Pool) *DraftResultStore {
	return &DraftResultStore{pool: pool}
}

// Compile-time interface check.
var _ storage.DraftResultStore = (*DraftResultStore)(nil)

// InsertBulk adds draft selections atomically. Fails entire batch on any duplicate (season, player_id).
func (s *DraftResultStore) InsertBulk(ctx context.Context, season int, results []domain.DraftResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO draft_results (season, player_id, round, pick, team_key)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, r := range results {
		if r.PlayerID == "" || r.Round <= 0 {
			return storage.ErrInvalidInput
		}
		if _, err := tx.Exec(ctx, query, season, r.PlayerID, r.Round, r.Pick, r.TeamKey); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert draft result: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetDraftResults retrieves the draft results for a season keyed by player id.
// Returns ErrNotFound if the season has no draft.
func (s *DraftResultStore) GetDraftResults(ctx context.Context, season int) (domain.DraftResults, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT player_id, round, pick, team_key
		FROM draft_results
		WHERE season = $1
	`, season)
	if err != nil {
		return nil, fmt.Errorf("get draft results: %w", err)
	}
	defer rows.Close()

	results := make(domain.DraftResults)
	for rows.Next() {
		var (
			r           domain.DraftResult
			round, pick int32
		)
		if err := rows.Scan(&r.PlayerID, &round, &pick, &r.TeamKey); err != nil {
			return nil, fmt.Errorf("scan draft result: %w", err)
		}
		r.Round = int(round)
		r.Pick = int(pick)
		results[r.PlayerID] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate draft results: %w", err)
	}
	if len(results) == 0 {
		return nil, storage.ErrNotFound
	}
	return results, nil
}
