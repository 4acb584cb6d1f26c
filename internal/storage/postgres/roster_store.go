package postgres

import (
	"context"
	"fmt"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

// RosterStore implements storage.RosterStore using PostgreSQL.
// A team with an empty roster has no rows and is absent on read.
type RosterStore struct {
	pool *Pool
}

// NewRosterStore creates a new RosterStore.
func NewRosterStore(pool *Pool) *RosterStore {
	return &RosterStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RosterStore = (*RosterStore)(nil)

// Put replaces the end-of-season rosters for a season.
func (s *RosterStore) Put(ctx context.Context, season int, rosters domain.Rosters) error {
	if rosters == nil {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM season_rosters WHERE season = $1`, season); err != nil {
		return fmt.Errorf("clear rosters: %w", err)
	}

	for team, players := range rosters {
		for _, playerID := range players {
			_, err := tx.Exec(ctx, `
				INSERT INTO season_rosters (season, team_key, player_id)
				VALUES ($1, $2, $3)
				ON CONFLICT DO NOTHING
			`, season, team, playerID)
			if err != nil {
				return fmt.Errorf("insert roster entry: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

// GetEndOfSeason retrieves the final rosters of a season. Returns ErrNotFound if none recorded.
func (s *RosterStore) GetEndOfSeason(ctx context.Context, season int) (domain.Rosters, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT team_key, player_id
		FROM season_rosters
		WHERE season = $1
		ORDER BY team_key ASC, player_id ASC
	`, season)
	if err != nil {
		return nil, fmt.Errorf("get rosters: %w", err)
	}
	defer rows.Close()

	rosters := make(domain.Rosters)
	for rows.Next() {
		var team, playerID string
		if err := rows.Scan(&team, &playerID); err != nil {
			return nil, fmt.Errorf("scan roster entry: %w", err)
		}
		rosters[team] = append(rosters[team], playerID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rosters: %w", err)
	}
	if len(rosters) == 0 {
		return nil, storage.ErrNotFound
	}
	return rosters, nil
}
