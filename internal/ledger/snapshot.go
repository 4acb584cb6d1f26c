package ledger

import (
	"fmt"

	"keeper-ledger/internal/domain"
)

// Snapshot exports the ledger in the persisted draft board format.
func (l *Ledger) Snapshot(naRounds []int) *domain.LedgerSnapshot {
	snap := &domain.LedgerSnapshot{
		DraftOrder: l.DraftOrder(),
		Rounds:     len(l.picks),
		NARounds:   append([]int{}, naRounds...),
		Picks:      make(map[string][]domain.SnapshotPick, len(l.picks)),
	}
	for _, row := range l.picks {
		out := make([]domain.SnapshotPick, len(row))
		for i, p := range row {
			c := p.Clone()
			out[i] = domain.SnapshotPick{
				Slot:          c.Slot,
				OriginalOwner: c.OriginalOwner,
				CurrentOwner:  c.CurrentOwner,
				Traded:        c.Traded(),
				Path:          c.Path,
			}
		}
		snap.Picks[domain.RoundKey(row[0].Round)] = out
	}
	return snap
}

// FromSnapshot rebuilds a ledger from a snapshot. Every round must list each
// slot exactly once with the original owner seated at that slot. A pick with
// an empty path gets the shortest path consistent with its owners.
func FromSnapshot(s *domain.LedgerSnapshot) (*Ledger, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrInvalidSnapshot)
	}
	l, err := New(s.DraftOrder, s.Rounds)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	for r := 1; r <= s.Rounds; r++ {
		recorded := s.Round(r)
		if len(recorded) != l.Size() {
			return nil, fmt.Errorf("%w: round %d has %d picks, want %d", ErrInvalidSnapshot, r, len(recorded), l.Size())
		}
		seen := make(map[int]struct{}, len(recorded))
		for _, sp := range recorded {
			p, ok := l.ref(r, sp.Slot)
			if !ok {
				return nil, fmt.Errorf("%w: round %d slot %d out of range", ErrInvalidSnapshot, r, sp.Slot)
			}
			if _, dup := seen[sp.Slot]; dup {
				return nil, fmt.Errorf("%w: round %d slot %d listed twice", ErrInvalidSnapshot, r, sp.Slot)
			}
			seen[sp.Slot] = struct{}{}

			if sp.OriginalOwner != p.OriginalOwner {
				return nil, fmt.Errorf("%w: round %d slot %d original owner %s, draft order seats %s",
					ErrInvalidSnapshot, r, sp.Slot, sp.OriginalOwner, p.OriginalOwner)
			}
			if _, known := l.managers[sp.CurrentOwner]; !known {
				return nil, fmt.Errorf("%w: round %d slot %d owned by unknown manager %q",
					ErrInvalidSnapshot, r, sp.Slot, sp.CurrentOwner)
			}

			path := append([]string(nil), sp.Path...)
			if len(path) == 0 {
				path = []string{sp.OriginalOwner}
				if sp.CurrentOwner != sp.OriginalOwner {
					path = append(path, sp.CurrentOwner)
				}
			}
			p.CurrentOwner = sp.CurrentOwner
			p.Path = path
		}
	}

	if err := l.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return l, nil
}
