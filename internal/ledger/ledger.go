// Package ledger implements the draft pick custody grid for a snake draft.
//
// A Ledger is created once per reconciliation run and mutated only through
// its transfer methods. It is not safe for concurrent mutation.
package ledger

import (
	"fmt"
	"sort"

	"keeper-ledger/internal/domain"
)

// Ledger is an R-round by N-slot grid of picks.
type Ledger struct {
	draftOrder []string
	managers   map[string]struct{}
	picks      [][]domain.Pick // picks[round-1][slot-1]
}

// New creates a base ledger where every manager owns their seat in every round.
func New(draftOrder []string, rounds int) (*Ledger, error) {
	if len(draftOrder) == 0 {
		return nil, fmt.Errorf("new ledger: draft order is empty")
	}
	if rounds <= 0 {
		return nil, fmt.Errorf("new ledger: rounds must be positive, got %d", rounds)
	}

	managers := make(map[string]struct{}, len(draftOrder))
	for _, m := range draftOrder {
		if _, dup := managers[m]; dup {
			return nil, fmt.Errorf("new ledger: manager %q appears twice in draft order", m)
		}
		managers[m] = struct{}{}
	}

	picks := make([][]domain.Pick, rounds)
	for r := range picks {
		row := make([]domain.Pick, len(draftOrder))
		for i, m := range draftOrder {
			row[i] = domain.Pick{
				Round:         r + 1,
				Slot:          i + 1,
				OriginalOwner: m,
				CurrentOwner:  m,
				Path:          []string{m},
			}
		}
		picks[r] = row
	}

	return &Ledger{
		draftOrder: append([]string(nil), draftOrder...),
		managers:   managers,
		picks:      picks,
	}, nil
}

// Rounds returns the number of rounds.
func (l *Ledger) Rounds() int { return len(l.picks) }

// Size returns the number of slots per round.
func (l *Ledger) Size() int { return len(l.draftOrder) }

// DraftOrder returns a copy of the seating order.
func (l *Ledger) DraftOrder() []string { return append([]string(nil), l.draftOrder...) }

// Pick returns a copy of the pick at (round, slot).
func (l *Ledger) Pick(round, slot int) (domain.Pick, error) {
	p, ok := l.at(round, slot)
	if !ok {
		return domain.Pick{}, &TransferError{Kind: ErrUnknownPick, Round: round, Slot: slot}
	}
	return p.Clone(), nil
}

// Picks returns copies of every pick ordered by (round, slot).
func (l *Ledger) Picks() []domain.Pick {
	out := make([]domain.Pick, 0, len(l.picks)*len(l.draftOrder))
	for _, row := range l.picks {
		for _, p := range row {
			out = append(out, p.Clone())
		}
	}
	return out
}

// PicksOwnedBy returns the slots manager currently holds in round, ascending.
// An out-of-range round yields nil.
func (l *Ledger) PicksOwnedBy(manager string, round int) []int {
	if round < 1 || round > len(l.picks) {
		return nil
	}
	var slots []int
	for _, p := range l.picks[round-1] {
		if p.CurrentOwner == manager {
			slots = append(slots, p.Slot)
		}
	}
	sort.Ints(slots)
	return slots
}

// WorstPick returns the latest-called slot manager holds in round.
// Odd rounds are called 1..N so the highest slot is worst; even rounds are
// called N..1 so the lowest slot is worst.
func (l *Ledger) WorstPick(manager string, round int) (int, error) {
	if round < 1 || round > len(l.picks) {
		return 0, &TransferError{Kind: ErrUnknownPick, Round: round, Expected: manager}
	}
	slots := l.PicksOwnedBy(manager, round)
	if len(slots) == 0 {
		return 0, &TransferError{Kind: ErrNoPicksHeld, Round: round, Expected: manager}
	}
	if round%2 == 1 {
		return slots[len(slots)-1], nil
	}
	return slots[0], nil
}

// Transfer moves (round, slot) from one manager to another. The ledger is
// left untouched unless from currently holds the pick.
func (l *Ledger) Transfer(round, slot int, from, to string) error {
	p, ok := l.ref(round, slot)
	if !ok {
		return &TransferError{Kind: ErrUnknownPick, Round: round, Slot: slot, Expected: from, To: to}
	}
	if p.CurrentOwner != from {
		return &TransferError{
			Kind:          ErrOwnershipConflict,
			Round:         round,
			Slot:          slot,
			OriginalOwner: p.OriginalOwner,
			ActualOwner:   p.CurrentOwner,
			Expected:      from,
			To:            to,
		}
	}
	if _, known := l.managers[to]; !known {
		return &TransferError{Kind: ErrUnknownManager, Round: round, Slot: slot, Expected: from, To: to}
	}

	p.CurrentOwner = to
	p.Path = append(p.Path, to)
	return nil
}

// TransferWorst transfers from's worst pick in round and returns its slot.
func (l *Ledger) TransferWorst(round int, from, to string) (int, error) {
	slot, err := l.WorstPick(from, round)
	if err != nil {
		return 0, err
	}
	if err := l.Transfer(round, slot, from, to); err != nil {
		return 0, err
	}
	return slot, nil
}

// TransferByOriginalOwner transfers the single pick in round that from holds
// and originalOwner started with. Zero matches and multiple matches are errors.
func (l *Ledger) TransferByOriginalOwner(round int, originalOwner, from, to string) (int, error) {
	if round < 1 || round > len(l.picks) {
		return 0, &TransferError{Kind: ErrUnknownPick, Round: round, OriginalOwner: originalOwner, Expected: from, To: to}
	}

	var matches []int
	for _, p := range l.picks[round-1] {
		if p.OriginalOwner == originalOwner && p.CurrentOwner == from {
			matches = append(matches, p.Slot)
		}
	}

	switch len(matches) {
	case 0:
		return 0, &TransferError{Kind: ErrNoMatchingPick, Round: round, OriginalOwner: originalOwner, Expected: from, To: to}
	case 1:
		if err := l.Transfer(round, matches[0], from, to); err != nil {
			return 0, err
		}
		return matches[0], nil
	default:
		return 0, &TransferError{
			Kind:          ErrAmbiguousPickReference,
			Round:         round,
			OriginalOwner: originalOwner,
			Expected:      from,
			To:            to,
			Candidates:    matches,
		}
	}
}

// OwnerCounts returns how many picks each manager holds across all rounds.
// Managers holding nothing are reported with zero.
func (l *Ledger) OwnerCounts() map[string]int {
	counts := make(map[string]int, len(l.draftOrder))
	for _, m := range l.draftOrder {
		counts[m] = 0
	}
	for _, row := range l.picks {
		for _, p := range row {
			counts[p.CurrentOwner]++
		}
	}
	return counts
}

// CheckInvariants verifies the grid shape and custody paths.
func (l *Ledger) CheckInvariants() error {
	for r, row := range l.picks {
		if len(row) != len(l.draftOrder) {
			return fmt.Errorf("round %d has %d picks, want %d", r+1, len(row), len(l.draftOrder))
		}
		for i, p := range row {
			if p.Round != r+1 || p.Slot != i+1 {
				return fmt.Errorf("round %d index %d holds pick (%d, %d)", r+1, i, p.Round, p.Slot)
			}
			if p.OriginalOwner != l.draftOrder[i] {
				return fmt.Errorf("round %d slot %d original owner %s, want %s", p.Round, p.Slot, p.OriginalOwner, l.draftOrder[i])
			}
			if len(p.Path) == 0 || p.Path[0] != p.OriginalOwner {
				return fmt.Errorf("round %d slot %d path does not start with original owner", p.Round, p.Slot)
			}
			if p.Path[len(p.Path)-1] != p.CurrentOwner {
				return fmt.Errorf("round %d slot %d path ends with %s, current owner is %s",
					p.Round, p.Slot, p.Path[len(p.Path)-1], p.CurrentOwner)
			}
		}
	}
	return nil
}

func (l *Ledger) at(round, slot int) (domain.Pick, bool) {
	p, ok := l.ref(round, slot)
	if !ok {
		return domain.Pick{}, false
	}
	return *p, true
}

func (l *Ledger) ref(round, slot int) (*domain.Pick, bool) {
	if round < 1 || round > len(l.picks) {
		return nil, false
	}
	row := l.picks[round-1]
	if slot < 1 || slot > len(row) {
		return nil, false
	}
	return &row[slot-1], true
}
