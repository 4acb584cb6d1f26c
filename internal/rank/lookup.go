package rank

import "strings"

// Source names the step of the lookup chain that produced a rank.
type Source string

const (
	SourceExact       Source = "exact"
	SourceAbbreviated Source = "abbreviated"
	SourceLastName    Source = "last_name"
	SourceSecondary   Source = "secondary"
	SourceNone        Source = "none"
)

// Match is the outcome of a lookup. Rank is nil when every source missed.
type Match struct {
	Rank   *int
	Source Source
}

// Lookup resolves player names through a fallback chain:
// exact normalised name, abbreviated first name, unique last name, then the
// caller-supplied secondary rank.
type Lookup struct {
	table      *Table
	abbrev     map[string]int
	byLastName map[string][]int
}

// NewLookup indexes t. A nil table behaves as empty.
func NewLookup(t *Table) *Lookup {
	if t == nil {
		t = NewTable(nil)
	}
	l := &Lookup{
		table:      t,
		abbrev:     make(map[string]int),
		byLastName: make(map[string][]int),
	}
	for name, r := range t.byName {
		parts := strings.Fields(name)
		// Index names already written as "s ohtani" or "jt realmuto".
		if len(parts) >= 2 && len([]rune(parts[0])) <= 2 {
			key := abbreviate(name)
			if existing, ok := l.abbrev[key]; !ok || r < existing {
				l.abbrev[key] = r
			}
		}
		last := lastName(name)
		l.byLastName[last] = append(l.byLastName[last], r)
	}
	return l
}

// Find resolves name, falling back to secondary when the table has no match.
func (l *Lookup) Find(name string, secondary *int) Match {
	normalized := NormalizeName(name)

	if r, ok := l.table.Get(normalized); ok {
		return match(r, SourceExact)
	}

	if strings.Contains(normalized, " ") {
		short := abbreviate(normalized)
		if r, ok := l.table.Get(short); ok {
			return match(r, SourceAbbreviated)
		}
		if r, ok := l.abbrev[short]; ok {
			return match(r, SourceAbbreviated)
		}
		if ranks := l.byLastName[lastName(normalized)]; len(ranks) == 1 {
			return match(ranks[0], SourceLastName)
		}
	}

	if secondary != nil && *secondary > 0 {
		return match(*secondary, SourceSecondary)
	}
	return Match{Source: SourceNone}
}

func match(r int, src Source) Match {
	return Match{Rank: &r, Source: src}
}
