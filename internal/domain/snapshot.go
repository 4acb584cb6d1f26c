package domain

import "strconv"

// LedgerSnapshot is the persisted draft board format.
// Picks is keyed by the decimal round number.
type LedgerSnapshot struct {
	DraftOrder []string                  `json:"draftOrder"`
	Rounds     int                       `json:"rounds"`
	NARounds   []int                     `json:"naRounds"`
	Picks      map[string][]SnapshotPick `json:"picks"`
}

// SnapshotPick is one pick inside a LedgerSnapshot round.
type SnapshotPick struct {
	Slot          int      `json:"slot"`
	OriginalOwner string   `json:"originalOwner"`
	CurrentOwner  string   `json:"currentOwner"`
	Traded        bool     `json:"traded"`
	Path          []string `json:"path"`
}

// RoundKey returns the Picks map key for a round.
func RoundKey(round int) string {
	return strconv.Itoa(round)
}

// Round returns the picks recorded for a round, or nil if the round is absent.
func (s *LedgerSnapshot) Round(round int) []SnapshotPick {
	if s == nil || s.Picks == nil {
		return nil
	}
	return s.Picks[RoundKey(round)]
}

// Lookup finds the recorded pick at (round, slot).
func (s *LedgerSnapshot) Lookup(round, slot int) (SnapshotPick, bool) {
	for _, p := range s.Round(round) {
		if p.Slot == slot {
			return p, true
		}
	}
	return SnapshotPick{}, false
}

// Clone returns a deep copy of the snapshot.
func (s *LedgerSnapshot) Clone() *LedgerSnapshot {
	if s == nil {
		return nil
	}
	out := &LedgerSnapshot{
		DraftOrder: append([]string(nil), s.DraftOrder...),
		Rounds:     s.Rounds,
		NARounds:   append([]int(nil), s.NARounds...),
		Picks:      make(map[string][]SnapshotPick, len(s.Picks)),
	}
	for k, picks := range s.Picks {
		cp := make([]SnapshotPick, len(picks))
		for i, p := range picks {
			p.Path = append([]string(nil), p.Path...)
			cp[i] = p
		}
		out.Picks[k] = cp
	}
	return out
}
