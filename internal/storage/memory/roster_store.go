package memory

import (
	"context"
	"sync"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

// RosterStore is an in-memory implementation of storage.RosterStore.
type RosterStore struct {
	mu   sync.RWMutex
	data map[int]domain.Rosters // keyed by season
}

// NewRosterStore creates a new in-memory roster store.
func NewRosterStore() *RosterStore {
	return &RosterStore{
		data: make(map[int]domain.Rosters),
	}
}

var _ storage.RosterStore = (*RosterStore)(nil)

// Put replaces the end-of-season rosters for a season.
func (s *RosterStore) Put(_ context.Context, season int, rosters domain.Rosters) error {
	if rosters == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[season] = copyRosters(rosters)
	return nil
}

// GetEndOfSeason retrieves the final rosters of a season. Returns ErrNotFound if none recorded.
func (s *RosterStore) GetEndOfSeason(_ context.Context, season int) (domain.Rosters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rosters, exists := s.data[season]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copyRosters(rosters), nil
}

func copyRosters(in domain.Rosters) domain.Rosters {
	out := make(domain.Rosters, len(in))
	for team, players := range in {
		out[team] = append([]string(nil), players...)
	}
	return out
}
