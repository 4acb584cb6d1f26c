package memory

import (
	"context"
	"sort"
	"sync"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

// RunStore is an in-memory implementation of storage.RunStore.
type RunStore struct {
	mu            sync.RWMutex
	runs          map[string]*domain.RunSummary
	discrepancies map[string][]domain.Discrepancy
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs:          make(map[string]*domain.RunSummary),
		discrepancies: make(map[string][]domain.Discrepancy),
	}
}

var _ storage.RunStore = (*RunStore)(nil)

// InsertRun adds a run summary. Returns ErrDuplicateKey if run_id exists.
func (s *RunStore) InsertRun(_ context.Context, run *domain.RunSummary) error {
	if run == nil || run.RunID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.RunID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *run
	s.runs[run.RunID] = &copy
	return nil
}

// InsertDiscrepancies adds the discrepancies found by a run.
func (s *RunStore) InsertDiscrepancies(_ context.Context, runID string, discrepancies []domain.Discrepancy) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range discrepancies {
		s.discrepancies[runID] = append(s.discrepancies[runID], copyDiscrepancy(d))
	}
	return nil
}

// GetRun retrieves a run summary. Returns ErrNotFound if not exists.
func (s *RunStore) GetRun(_ context.Context, runID string) (*domain.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.runs[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *run
	return &copy, nil
}

// GetDiscrepancies retrieves a run's discrepancies ordered by (round, slot).
func (s *RunStore) GetDiscrepancies(_ context.Context, runID string) ([]domain.Discrepancy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Discrepancy, 0, len(s.discrepancies[runID]))
	for _, d := range s.discrepancies[runID] {
		result = append(result, copyDiscrepancy(d))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Round != result[j].Round {
			return result[i].Round < result[j].Round
		}
		return result[i].Slot < result[j].Slot
	})
	return result, nil
}

func copyDiscrepancy(d domain.Discrepancy) domain.Discrepancy {
	d.ComputedPath = append([]string(nil), d.ComputedPath...)
	d.PersistedPath = append([]string(nil), d.PersistedPath...)
	return d
}
