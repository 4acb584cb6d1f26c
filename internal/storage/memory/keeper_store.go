package memory

import (
	"context"
	"sort"
	"sync"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

// KeeperStore is an in-memory implementation of storage.KeeperStore.
type KeeperStore struct {
	mu   sync.RWMutex
	data map[int][]domain.KeeperRecord // keyed by season
}

// NewKeeperStore creates a new in-memory keeper store.
func NewKeeperStore() *KeeperStore {
	return &KeeperStore{
		data: make(map[int][]domain.KeeperRecord),
	}
}

var _ storage.KeeperStore = (*KeeperStore)(nil)

// InsertBulk adds keeper records atomically. Fails entire batch on any
// duplicate (season, team_key, player_id).
func (s *KeeperStore) InsertBulk(_ context.Context, season int, records []domain.KeeperRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[[2]string]struct{}, len(s.data[season]))
	for _, r := range s.data[season] {
		existing[[2]string{r.TeamKey, r.PlayerID}] = struct{}{}
	}

	// First pass: validate and check duplicates (existing + intra-batch)
	for _, r := range records {
		if r.PlayerID == "" || r.TeamKey == "" || !r.Status.IsValid() {
			return storage.ErrInvalidInput
		}
		key := [2]string{r.TeamKey, r.PlayerID}
		if _, dup := existing[key]; dup {
			return storage.ErrDuplicateKey
		}
		existing[key] = struct{}{}
	}

	// Second pass: insert all
	for _, r := range records {
		s.data[season] = append(s.data[season], copyKeeper(r))
	}
	return nil
}

// GetKeepers retrieves all keeper records for a season, ordered by team key then player id.
func (s *KeeperStore) GetKeepers(_ context.Context, season int) ([]domain.KeeperRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.KeeperRecord, 0, len(s.data[season]))
	for _, r := range s.data[season] {
		result = append(result, copyKeeper(r))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TeamKey != result[j].TeamKey {
			return result[i].TeamKey < result[j].TeamKey
		}
		return result[i].PlayerID < result[j].PlayerID
	})
	return result, nil
}

func copyKeeper(r domain.KeeperRecord) domain.KeeperRecord {
	if r.PersistedCost != nil {
		v := *r.PersistedCost
		r.PersistedCost = &v
	}
	if r.SecondaryRank != nil {
		v := *r.SecondaryRank
		r.SecondaryRank = &v
	}
	return r
}
