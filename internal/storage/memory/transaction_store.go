package memory

import (
	"context"
	"sync"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

// TransactionStore is an in-memory implementation of storage.TransactionStore.
type TransactionStore struct {
	mu   sync.RWMutex
	data map[int][]domain.TransactionEvent // keyed by season, insertion order
}

// NewTransactionStore creates a new in-memory transaction store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		data: make(map[int][]domain.TransactionEvent),
	}
}

var _ storage.TransactionStore = (*TransactionStore)(nil)

// InsertBulk adds transactions atomically. Fails entire batch on any duplicate (season, transaction_id).
func (s *TransactionStore) InsertBulk(_ context.Context, season int, txns []domain.TransactionEvent) error {
	if len(txns) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.data[season])+len(txns))
	for _, t := range s.data[season] {
		seen[t.TransactionID] = struct{}{}
	}

	for _, t := range txns {
		if t.TransactionID == "" {
			return storage.ErrInvalidInput
		}
		if _, dup := seen[t.TransactionID]; dup {
			return storage.ErrDuplicateKey
		}
		seen[t.TransactionID] = struct{}{}
	}

	for _, t := range txns {
		s.data[season] = append(s.data[season], copyTransaction(t))
	}
	return nil
}

// GetTransactions retrieves every transaction for a season in insertion order.
func (s *TransactionStore) GetTransactions(_ context.Context, season int) ([]domain.TransactionEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.TransactionEvent, 0, len(s.data[season]))
	for _, t := range s.data[season] {
		result = append(result, copyTransaction(t))
	}
	return result, nil
}

func copyTransaction(t domain.TransactionEvent) domain.TransactionEvent {
	t.Players = append([]domain.PlayerMovement(nil), t.Players...)
	return t
}
