// Package jsonfile reads league data exported as JSON files, one directory
// per season:
//
//	<root>/<season>/draft-board.json           persisted board
//	<root>/<season>/draft-board-verified.json  board written by reconciliation runs
//	<root>/<season>/keepers.json
//	<root>/<season>/draft-results.json
//	<root>/<season>/transactions.json
//	<root>/<season>/rosters.json               end-of-season rosters
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/storage"
)

// File names inside a season directory.
const (
	BoardFile         = "draft-board.json"
	VerifiedBoardFile = "draft-board-verified.json"
	KeepersFile       = "keepers.json"
	DraftResultsFile  = "draft-results.json"
	TransactionsFile  = "transactions.json"
	RostersFile       = "rosters.json"
)

// Store serves every read-side store interface from a data directory.
type Store struct {
	root string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Compile-time interface checks.
var (
	_ storage.SnapshotStore    = (*Store)(nil)
	_ storage.KeeperStore      = (*Store)(nil)
	_ storage.DraftResultStore = (*Store)(nil)
	_ storage.TransactionStore = (*Store)(nil)
	_ storage.RosterStore      = (*Store)(nil)
)

// Get reads the snapshot for (season, label). Returns ErrNotFound if the file is absent.
func (s *Store) Get(_ context.Context, season int, label string) (*domain.LedgerSnapshot, error) {
	name, err := boardFile(label)
	if err != nil {
		return nil, err
	}
	var snap domain.LedgerSnapshot
	if err := s.read(season, name, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Put writes a snapshot, replacing the file atomically.
func (s *Store) Put(_ context.Context, season int, label string, snap *domain.LedgerSnapshot) error {
	if snap == nil {
		return storage.ErrInvalidInput
	}
	name, err := boardFile(label)
	if err != nil {
		return err
	}
	return s.write(season, name, snap)
}

// GetKeepers reads keepers.json, ordered by team key then player id.
// A missing file yields an empty list.
func (s *Store) GetKeepers(_ context.Context, season int) ([]domain.KeeperRecord, error) {
	var records []domain.KeeperRecord
	if err := s.read(season, KeepersFile, &records); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []domain.KeeperRecord{}, nil
		}
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].TeamKey != records[j].TeamKey {
			return records[i].TeamKey < records[j].TeamKey
		}
		return records[i].PlayerID < records[j].PlayerID
	})
	return records, nil
}

// GetDraftResults reads draft-results.json. Returns ErrNotFound if absent.
// Entries without a playerId take it from their key.
func (s *Store) GetDraftResults(_ context.Context, season int) (domain.DraftResults, error) {
	var results domain.DraftResults
	if err := s.read(season, DraftResultsFile, &results); err != nil {
		return nil, err
	}
	for pid, r := range results {
		if r.PlayerID == "" {
			r.PlayerID = pid
			results[pid] = r
		}
	}
	return results, nil
}

// GetTransactions reads transactions.json in file order. A missing file yields an empty log.
func (s *Store) GetTransactions(_ context.Context, season int) ([]domain.TransactionEvent, error) {
	var txns []domain.TransactionEvent
	if err := s.read(season, TransactionsFile, &txns); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []domain.TransactionEvent{}, nil
		}
		return nil, err
	}
	return txns, nil
}

// GetEndOfSeason reads rosters.json. Returns ErrNotFound if absent.
func (s *Store) GetEndOfSeason(_ context.Context, season int) (domain.Rosters, error) {
	var rosters domain.Rosters
	if err := s.read(season, RostersFile, &rosters); err != nil {
		return nil, err
	}
	return rosters, nil
}

// PutKeepers writes keepers.json. Used to seed a data directory.
func (s *Store) PutKeepers(_ context.Context, season int, records []domain.KeeperRecord) error {
	return s.write(season, KeepersFile, records)
}

// PutDraftResults writes draft-results.json.
func (s *Store) PutDraftResults(_ context.Context, season int, results domain.DraftResults) error {
	return s.write(season, DraftResultsFile, results)
}

// PutTransactions writes transactions.json.
func (s *Store) PutTransactions(_ context.Context, season int, txns []domain.TransactionEvent) error {
	return s.write(season, TransactionsFile, txns)
}

// PutRosters writes rosters.json.
func (s *Store) PutRosters(_ context.Context, season int, rosters domain.Rosters) error {
	return s.write(season, RostersFile, rosters)
}

func boardFile(label string) (string, error) {
	switch label {
	case storage.SnapshotPersisted:
		return BoardFile, nil
	case storage.SnapshotVerified:
		return VerifiedBoardFile, nil
	default:
		return "", fmt.Errorf("%w: unknown snapshot label %q", storage.ErrInvalidInput, label)
	}
}

func (s *Store) path(season int, name string) string {
	return filepath.Join(s.root, strconv.Itoa(season), name)
}

func (s *Store) read(season int, name string, v any) error {
	data, err := os.ReadFile(s.path(season, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) write(season int, name string, v any) error {
	dir := filepath.Join(s.root, strconv.Itoa(season))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create season dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(season, name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
