package memory

import (
	"context"
	"sync"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

type snapshotKey struct {
	season int
	label  string
}

// SnapshotStore is an in-memory implementation of storage.SnapshotStore.
type SnapshotStore struct {
	mu   sync.RWMutex
	data map[snapshotKey]*domain.LedgerSnapshot
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		data: make(map[snapshotKey]*domain.LedgerSnapshot),
	}
}

var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// Get retrieves the snapshot for (season, label). Returns ErrNotFound if not exists.
func (s *SnapshotStore) Get(_ context.Context, season int, label string) (*domain.LedgerSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, exists := s.data[snapshotKey{season, label}]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return snap.Clone(), nil
}

// Put stores a snapshot, replacing any previous one for (season, label).
func (s *SnapshotStore) Put(_ context.Context, season int, label string, snap *domain.LedgerSnapshot) error {
	if snap == nil || label == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[snapshotKey{season, label}] = snap.Clone()
	return nil
}
