package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

// KeeperStore implements storage.KeeperStore using PostgreSQL.
type KeeperStore struct {
	pool *Pool
}

// NewKeeperStore creates a new KeeperStore.
func NewKeeperStore(pool *Pool) *KeeperStore {
	return &KeeperStore{pool: pool}
}

// Compile-time interface check.
var _ storage.KeeperStore = (*KeeperStore)(nil)

// InsertBulk adds keeper records atomically. Fails entire batch on any
// duplicate (season, team_key, player_id).
func (s *KeeperStore) InsertBulk(ctx context.Context, season int, records []domain.KeeperRecord) error {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if r.PlayerID == "" || r.TeamKey == "" || !r.Status.IsValid() {
			return storage.ErrInvalidInput
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO keeper_records (
			season, team_key, player_id, player_name, status, persisted_cost_round, secondary_rank
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, r := range records {
		_, err := tx.Exec(ctx, query,
			season,
			r.TeamKey,
			r.PlayerID,
			r.PlayerName,
			string(r.Status),
			r.PersistedCost,
			r.SecondaryRank,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert keeper record: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetKeepers retrieves all keeper records for a season, ordered by team key then player id.
func (s *KeeperStore) GetKeepers(ctx context.Context, season int) ([]domain.KeeperRecord, error) {
	query := `
		SELECT team_key, player_id, player_name, status, persisted_cost_round, secondary_rank
		FROM keeper_records
		WHERE season = $1
		ORDER BY team_key ASC, player_id ASC
	`

	rows, err := s.pool.Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("get keepers: %w", err)
	}
	defer rows.Close()

	return scanKeepers(rows)
}

func scanKeepers(rows pgx.Rows) ([]domain.KeeperRecord, error) {
	result := make([]domain.KeeperRecord, 0)
	for rows.Next() {
		var (
			r      domain.KeeperRecord
			status string
			cost   *int32
			rank   *int32
		)
		if err := rows.Scan(&r.TeamKey, &r.PlayerID, &r.PlayerName, &status, &cost, &rank); err != nil {
			return nil, fmt.Errorf("scan keeper record: %w", err)
		}
		r.Status = domain.KeeperStatus(status)
		r.PersistedCost = intPtr(cost)
		r.SecondaryRank = intPtr(rank)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keeper records: %w", err)
	}
	return result, nil
}
