package replay

import (
	"errors"
	"testing"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/ledger"
)

var testOrder = []string{"Pudge", "Nick", "Web", "Tom", "Tyler", "Thomas", "Chris", "Alex", "Greasy", "Bob", "Mike", "Sean"}

func newLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l, err := ledger.New(testOrder, 27)
	if err != nil {
		t.Fatalf("ledger.New: %v", err)
	}
	return l
}

func TestResolve_Dispatch(t *testing.T) {
	tests := []struct {
		name     string
		move     domain.Move
		wantSlot int
		wantOrig string
	}{
		{"worst odd round", domain.WorstMove(3, "Bob", "Tom"), 10, "Bob"},
		{"exact slot", domain.ExactSlotMove(7, 11, "Mike", "Pudge"), 11, "Mike"},
		{"exact original owner", domain.ExactOriginalOwnerMove(6, "Alex", "Alex", "Mike"), 8, "Alex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger(t)
			got, err := Resolve(l, tt.move)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got.Slot != tt.wantSlot || got.OriginalOwner != tt.wantOrig {
				t.Errorf("expected slot %d orig %s, got slot %d orig %s", tt.wantSlot, tt.wantOrig, got.Slot, got.OriginalOwner)
			}
			p, _ := l.Pick(tt.move.Round, got.Slot)
			if p.CurrentOwner != tt.move.To {
				t.Errorf("expected %s to own pick, got %s", tt.move.To, p.CurrentOwner)
			}
		})
	}
}

func TestResolve_UnknownKind(t *testing.T) {
	l := newLedger(t)
	_, err := Resolve(l, domain.Move{Kind: "best", Round: 1, From: "Pudge", To: "Nick"})
	if !errors.Is(err, ErrInvalidMove) {
		t.Errorf("expected ErrInvalidMove, got %v", err)
	}
}

func TestResolve_PropagatesLedgerErrors(t *testing.T) {
	l := newLedger(t)
	_, err := Resolve(l, domain.ExactSlotMove(1, 1, "Nick", "Tom"))
	if !errors.Is(err, ledger.ErrOwnershipConflict) {
		t.Errorf("expected ErrOwnershipConflict, got %v", err)
	}
}
