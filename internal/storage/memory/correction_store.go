package memory

import (
	"context"
	"sort"
	"sync"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

// CorrectionStore is an in-memory implementation of storage.CorrectionStore.
type CorrectionStore struct {
	mu   sync.RWMutex
	data map[string][]domain.Correction // keyed by run_id
}

// NewCorrectionStore creates a new in-memory correction store.
func NewCorrectionStore() *CorrectionStore {
	return &CorrectionStore{
		data: make(map[string][]domain.Correction),
	}
}

var _ storage.CorrectionStore = (*CorrectionStore)(nil)

// InsertBulk adds all corrections of a run atomically. Fails entire batch on any duplicate (run_id, id).
func (s *CorrectionStore) InsertBulk(_ context.Context, runID string, _ int, corrections []domain.Correction) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(corrections) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.data[runID])+len(corrections))
	for _, c := range s.data[runID] {
		seen[c.ID] = struct{}{}
	}

	// First pass: check for duplicates (existing + intra-batch)
	for _, c := range corrections {
		if c.ID == "" || c.PlayerID == "" {
			return storage.ErrInvalidInput
		}
		if _, dup := seen[c.ID]; dup {
			return storage.ErrDuplicateKey
		}
		seen[c.ID] = struct{}{}
	}

	// Second pass: insert all
	for _, c := range corrections {
		s.data[runID] = append(s.data[runID], copyCorrection(c))
	}
	return nil
}

// GetByRun retrieves the corrections proposed by a run, ordered by team then player.
func (s *CorrectionStore) GetByRun(_ context.Context, runID string) ([]domain.Correction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Correction, 0, len(s.data[runID]))
	for _, c := range s.data[runID] {
		result = append(result, copyCorrection(c))
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Team != result[j].Team {
			return result[i].Team < result[j].Team
		}
		return result[i].Player < result[j].Player
	})
	return result, nil
}

func copyCorrection(c domain.Correction) domain.Correction {
	if c.CurrentCost != nil {
		v := *c.CurrentCost
		c.CurrentCost = &v
	}
	c.Rationale = append([]string(nil), c.Rationale...)
	return c
}
