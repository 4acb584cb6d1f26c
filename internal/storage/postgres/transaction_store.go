package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

// TransactionStore implements storage.TransactionStore using PostgreSQL.
// Player movements are stored as a JSONB array; seq preserves insertion order.
type TransactionStore struct {
	pool *Pool
}

// NewTransactionStore creates a new TransactionStore.
func NewTransactionStore(pool *Pool) *TransactionStore {
	return &TransactionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

// InsertBulk adds transactions atomically. Fails entire batch on any duplicate (season, transaction_id).
func (s *TransactionStore) InsertBulk(ctx context.Context, season int, events []domain.TransactionEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO league_transactions (season, transaction_id, type, timestamp, players)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, e := range events {
		if e.TransactionID == "" {
			return storage.ErrInvalidInput
		}
		players := e.Players
		if players == nil {
			players = []domain.PlayerMovement{}
		}
		payload, err := json.Marshal(players)
		if err != nil {
			return fmt.Errorf("encode players of %s: %w", e.TransactionID, err)
		}
		if _, err := tx.Exec(ctx, query, season, e.TransactionID, string(e.Type), e.Timestamp, payload); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetTransactions retrieves every transaction for a season in storage order.
func (s *TransactionStore) GetTransactions(ctx context.Context, season int) ([]domain.TransactionEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT transaction_id, type, timestamp, players
		FROM league_transactions
		WHERE season = $1
		ORDER BY seq ASC
	`, season)
	if err != nil {
		return nil, fmt.Errorf("get transactions: %w", err)
	}
	defer rows.Close()

	result := make([]domain.TransactionEvent, 0)
	for rows.Next() {
		var (
			e       domain.TransactionEvent
			typ     string
			payload []byte
		)
		if err := rows.Scan(&e.TransactionID, &typ, &e.Timestamp, &payload); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		e.Type = domain.TransactionType(typ)
		if err := json.Unmarshal(payload, &e.Players); err != nil {
			return nil, fmt.Errorf("decode players of %s: %w", e.TransactionID, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return result, nil
}
