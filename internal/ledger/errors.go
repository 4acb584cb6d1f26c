package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// Ledger error kinds. Every failed transfer returns a *TransferError whose
// Unwrap yields one of these, so callers can match with errors.Is.
var (
	// ErrOwnershipConflict is returned when the expected sender does not hold the pick.
	ErrOwnershipConflict = errors.New("ownership conflict")

	// ErrNoPicksHeld is returned when a worst-pick transfer targets a manager
	// with no picks in the round.
	ErrNoPicksHeld = errors.New("no picks held")

	// ErrNoMatchingPick is returned when no pick in the round matches an
	// original-owner reference.
	ErrNoMatchingPick = errors.New("no matching pick")

	// ErrAmbiguousPickReference is returned when more than one pick matches an
	// original-owner reference.
	ErrAmbiguousPickReference = errors.New("ambiguous pick reference")

	// ErrUnknownPick is returned for a (round, slot) outside the grid.
	ErrUnknownPick = errors.New("unknown pick")

	// ErrUnknownManager is returned when a transfer names a manager outside the draft order.
	ErrUnknownManager = errors.New("unknown manager")

	// ErrInvalidSnapshot is returned when a snapshot cannot be loaded into a ledger.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// TransferError describes a rejected transfer. Slot is 0 when the failing
// reference never resolved to a slot.
type TransferError struct {
	Kind          error
	Round         int
	Slot          int
	OriginalOwner string
	ActualOwner   string
	Expected      string
	To            string
	Candidates    []int // matching slots for an ambiguous reference
}

func (e *TransferError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	sb.WriteString(fmt.Sprintf(": round %d", e.Round))
	if e.Slot > 0 {
		sb.WriteString(fmt.Sprintf(" slot %d", e.Slot))
	}

	switch {
	case errors.Is(e.Kind, ErrOwnershipConflict):
		sb.WriteString(fmt.Sprintf(" (orig %s) is owned by %s, not %s", e.OriginalOwner, e.ActualOwner, e.Expected))
	case errors.Is(e.Kind, ErrNoPicksHeld):
		sb.WriteString(fmt.Sprintf(": %s holds no picks", e.Expected))
	case errors.Is(e.Kind, ErrNoMatchingPick):
		sb.WriteString(fmt.Sprintf(": no pick originally from %s is held by %s", e.OriginalOwner, e.Expected))
	case errors.Is(e.Kind, ErrAmbiguousPickReference):
		sb.WriteString(fmt.Sprintf(": %s holds %d picks originally from %s (slots %v)",
			e.Expected, len(e.Candidates), e.OriginalOwner, e.Candidates))
	case errors.Is(e.Kind, ErrUnknownManager):
		sb.WriteString(fmt.Sprintf(": %s -> %s", e.Expected, e.To))
	}
	return sb.String()
}

func (e *TransferError) Unwrap() error {
	return e.Kind
}
