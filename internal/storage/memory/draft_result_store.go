package memory

import (
	"context"
	"sync"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

// DraftResultStore is an in-memory implementation of storage.DraftResultStore.
type DraftResultStore struct {
	mu   sync.RWMutex
	data map[int]domain.DraftResults // keyed by season
}

// NewDraftResultStore creates a new in-memory draft result store.
func NewDraftResultStore() *DraftResultStore {
	return &DraftResultStore{
		data: make(map[int]domain.DraftResults),
	}
}

var _ storage.DraftResultStore = (*DraftResultStore)(nil)

// InsertBulk adds draft results atomically. Fails entire batch on any duplicate (season, player_id).
func (s *DraftResultStore) InsertBulk(_ context.Context, season int, results []domain.DraftResult) error {
	if len(results) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.data[season]
	batchKeys := make(map[string]struct{}, len(results))

	for _, r := range results {
		if r.PlayerID == "" || r.Round < 1 {
			return storage.ErrInvalidInput
		}
		if _, exists := current[r.PlayerID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[r.PlayerID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[r.PlayerID] = struct{}{}
	}

	if current == nil {
		current = make(domain.DraftResults, len(results))
		s.data[season] = current
	}
	for _, r := range results {
		current[r.PlayerID] = r
	}
	return nil
}

// GetDraftResults retrieves the draft results for a season keyed by player id.
// Returns ErrNotFound if the season has no draft.
func (s *DraftResultStore) GetDraftResults(_ context.Context, season int) (domain.DraftResults, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current, exists := s.data[season]
	if !exists {
		return nil, storage.ErrNotFound
	}

	result := make(domain.DraftResults, len(current))
	for k, v := range current {
		result[k] = v
	}
	return result, nil
}
