package domain

import "fmt"

// MoveKind selects how a move identifies the pick it transfers.
type MoveKind string

const (
	// MoveWorst transfers the sender's least valuable pick in the round.
	MoveWorst MoveKind = "worst"
	// MoveExactSlot transfers the pick at an explicit (round, slot).
	MoveExactSlot MoveKind = "exact_slot"
	// MoveExactOriginalOwner transfers the sender's pick that originally belonged to OriginalOwner.
	MoveExactOriginalOwner MoveKind = "exact_original_owner"
)

// String returns the string representation of MoveKind.
func (k MoveKind) String() string {
	return string(k)
}

// IsValid checks if the kind is a known value.
func (k MoveKind) IsValid() bool {
	return k == MoveWorst || k == MoveExactSlot || k == MoveExactOriginalOwner
}

// Move is one pick transfer inside a trade.
// Slot is only meaningful for MoveExactSlot and OriginalOwner only for MoveExactOriginalOwner.
type Move struct {
	Kind          MoveKind `yaml:"kind" json:"kind"`
	Round         int      `yaml:"round" json:"round"`
	Slot          int      `yaml:"slot,omitempty" json:"slot,omitempty"`
	OriginalOwner string   `yaml:"original_owner,omitempty" json:"originalOwner,omitempty"`
	From          string   `yaml:"from" json:"from"`
	To            string   `yaml:"to" json:"to"`
}

// WorstMove builds a MoveWorst.
func WorstMove(round int, from, to string) Move {
	return Move{Kind: MoveWorst, Round: round, From: from, To: to}
}

// ExactSlotMove builds a MoveExactSlot.
func ExactSlotMove(round, slot int, from, to string) Move {
	return Move{Kind: MoveExactSlot, Round: round, Slot: slot, From: from, To: to}
}

// ExactOriginalOwnerMove builds a MoveExactOriginalOwner.
func ExactOriginalOwnerMove(round int, originalOwner, from, to string) Move {
	return Move{Kind: MoveExactOriginalOwner, Round: round, OriginalOwner: originalOwner, From: from, To: to}
}

func (m Move) String() string {
	switch m.Kind {
	case MoveExactSlot:
		return fmt.Sprintf("Rd %d slot %d: %s -> %s", m.Round, m.Slot, m.From, m.To)
	case MoveExactOriginalOwner:
		return fmt.Sprintf("Rd %d (orig %s): %s -> %s", m.Round, m.OriginalOwner, m.From, m.To)
	default:
		return fmt.Sprintf("Rd %d worst: %s -> %s", m.Round, m.From, m.To)
	}
}

// Trade is an ordered group of moves applied as one chronological event.
type Trade struct {
	ID          string `yaml:"id" json:"id"`
	Description string `yaml:"description" json:"description"`
	Phase       string `yaml:"phase,omitempty" json:"phase,omitempty"` // e.g. "in-season", "offseason"
	Moves       []Move `yaml:"moves" json:"moves"`
	Skip        bool   `yaml:"skip,omitempty" json:"skip,omitempty"`
	SkipReason  string `yaml:"skip_reason,omitempty" json:"skipReason,omitempty"`
}

// AppliedMove records the concrete pick a move resolved to.
type AppliedMove struct {
	TradeID       string   `json:"tradeId"`
	Kind          MoveKind `json:"kind"`
	Round         int      `json:"round"`
	Slot          int      `json:"slot"`
	OriginalOwner string   `json:"originalOwner"`
	From          string   `json:"from"`
	To            string   `json:"to"`
}
