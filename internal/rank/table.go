package rank

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"keeper-ledger/internal/domain"
)

// CSV header names of the consensus ranking export.
const (
	ColumnRank = "RK"
	ColumnName = "PLAYER NAME"
)

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("rank csv: missing column")

// Table maps normalised player names to ordinal rank.
type Table struct {
	byName  map[string]int
	entries []domain.RankEntry
}

// NewTable builds a table. When two entries normalise to the same name the
// better (lower) rank wins. Non-positive ranks are dropped.
func NewTable(entries []domain.RankEntry) *Table {
	t := &Table{byName: make(map[string]int, len(entries))}
	for _, e := range entries {
		if e.Rank <= 0 {
			continue
		}
		key := e.NormalizedName
		if key == "" {
			key = NormalizeName(e.Name)
		}
		if key == "" {
			continue
		}
		if existing, ok := t.byName[key]; ok && existing <= e.Rank {
			continue
		}
		t.byName[key] = e.Rank
	}

	t.entries = make([]domain.RankEntry, 0, len(entries))
	for _, e := range entries {
		key := e.NormalizedName
		if key == "" {
			key = NormalizeName(e.Name)
		}
		if r, ok := t.byName[key]; ok && r == e.Rank {
			t.entries = append(t.entries, domain.RankEntry{Name: e.Name, NormalizedName: key, Rank: e.Rank})
		}
	}
	sort.SliceStable(t.entries, func(i, j int) bool { return t.entries[i].Rank < t.entries[j].Rank })
	return t
}

// LoadCSV reads a ranking export. Rows with an empty or non-numeric rank are skipped.
func LoadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read rank csv header: %w", err)
	}
	rankCol, nameCol := -1, -1
	for i, h := range header {
		switch strings.ToUpper(strings.Trim(strings.TrimSpace(h), "\ufeff\"")) {
		case ColumnRank:
			rankCol = i
		case ColumnName:
			nameCol = i
		}
	}
	if rankCol < 0 {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, ColumnRank)
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, ColumnName)
	}

	var entries []domain.RankEntry
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read rank csv: %w", err)
		}
		if rankCol >= len(record) || nameCol >= len(record) {
			continue
		}
		rk, err := strconv.Atoi(strings.TrimSpace(record[rankCol]))
		if err != nil {
			continue
		}
		name := strings.TrimSpace(record[nameCol])
		entries = append(entries, domain.RankEntry{Name: name, NormalizedName: NormalizeName(name), Rank: rk})
	}

	return NewTable(entries), nil
}

// LoadCSVFile opens path and calls LoadCSV.
func LoadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rank csv: %w", err)
	}
	defer f.Close()
	return LoadCSV(f)
}

// Len returns the number of ranked names.
func (t *Table) Len() int { return len(t.byName) }

// Get returns the rank for an already normalised name.
func (t *Table) Get(normalized string) (int, bool) {
	r, ok := t.byName[normalized]
	return r, ok
}

// Entries returns the table rows ordered by rank.
func (t *Table) Entries() []domain.RankEntry {
	return append([]domain.RankEntry(nil), t.entries...)
}
