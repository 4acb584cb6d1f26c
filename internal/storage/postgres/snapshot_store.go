package postgres

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/jackc/pgx/v5"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

// SnapshotStore implements storage.SnapshotStore using PostgreSQL.
// A board row in draft_boards owns its picks in draft_board_picks.
type SnapshotStore struct {
	pool *Pool
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(pool *Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// Put stores a snapshot, replacing any previous one for (season, label).
// The board and its picks are written in one transaction.
func (s *SnapshotStore) Put(ctx context.Context, season int, label string, snap *domain.LedgerSnapshot) error {
	if snap == nil || label == "" || snap.Rounds <= 0 {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	boardQuery := `
		INSERT INTO draft_boards (season, label, draft_order, rounds, na_rounds, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (season, label) DO UPDATE SET
			draft_order = EXCLUDED.draft_order,
			rounds = EXCLUDED.rounds,
			na_rounds = EXCLUDED.na_rounds,
			updated_at = now()
	`
	if _, err := tx.Exec(ctx, boardQuery,
		season, label, snap.DraftOrder, snap.Rounds, toInt32s(snap.NARounds),
	); err != nil {
		if isCheckViolation(err) {
			return storage.ErrInvalidInput
		}
		return fmt.Errorf("upsert draft board: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM draft_board_picks WHERE season = $1 AND label = $2`,
		season, label,
	); err != nil {
		return fmt.Errorf("clear draft board picks: %w", err)
	}

	pickQuery := `
		INSERT INTO draft_board_picks (
			season, label, round, slot, original_owner, current_owner, traded, path
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for key, picks := range snap.Picks {
		round, err := strconv.Atoi(key)
		if err != nil {
			return storage.ErrInvalidInput
		}
		for _, p := range picks {
			path := p.Path
			if path == nil {
				path = []string{}
			}
			_, err := tx.Exec(ctx, pickQuery,
				season, label, round, p.Slot, p.OriginalOwner, p.CurrentOwner, p.Traded, path,
			)
			if err != nil {
				if isDuplicateKeyError(err) {
					return storage.ErrDuplicateKey
				}
				if isCheckViolation(err) {
					return storage.ErrInvalidInput
				}
				return fmt.Errorf("insert draft board pick: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

// Get retrieves the snapshot for (season, label). Returns ErrNotFound if not exists.
func (s *SnapshotStore) Get(ctx context.Context, season int, label string) (*domain.LedgerSnapshot, error) {
	var (
		order    []string
		rounds   int32
		naRounds []int32
	)
	err := s.pool.QueryRow(ctx, `
		SELECT draft_order, rounds, na_rounds
		FROM draft_boards
		WHERE season = $1 AND label = $2
	`, season, label).Scan(&order, &rounds, &naRounds)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get draft board: %w", err)
	}

	snap := &domain.LedgerSnapshot{
		DraftOrder: order,
		Rounds:     int(rounds),
		NARounds:   fromInt32s(naRounds),
		Picks:      make(map[string][]domain.SnapshotPick),
	}

	rows, err := s.pool.Query(ctx, `
		SELECT round, slot, original_owner, current_owner, traded, path
		FROM draft_board_picks
		WHERE season = $1 AND label = $2
		ORDER BY round ASC, slot ASC
	`, season, label)
	if err != nil {
		return nil, fmt.Errorf("get draft board picks: %w", err)
	}
	defer rows.Close()

	if err := scanSnapshotPicks(rows, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func scanSnapshotPicks(rows pgx.Rows, snap *domain.LedgerSnapshot) error {
	for rows.Next() {
		var (
			round int32
			slot  int32
			p     domain.SnapshotPick
		)
		if err := rows.Scan(&round, &slot, &p.OriginalOwner, &p.CurrentOwner, &p.Traded, &p.Path); err != nil {
			return fmt.Errorf("scan draft board pick: %w", err)
		}
		p.Slot = int(slot)
		key := domain.RoundKey(int(round))
		snap.Picks[key] = append(snap.Picks[key], p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate draft board picks: %w", err)
	}
	for _, picks := range snap.Picks {
		sort.Slice(picks, func(i, j int) bool { return picks[i].Slot < picks[j].Slot })
	}
	return nil
}

func toInt32s(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

func fromInt32s(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
