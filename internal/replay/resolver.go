package replay

import (
	"fmt"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/ledger"
)

// Resolve dispatches a move to the matching ledger transfer and reports the
// concrete pick that changed hands.
func Resolve(l *ledger.Ledger, m domain.Move) (domain.AppliedMove, error) {
	var (
		slot int
		err  error
	)

	switch m.Kind {
	case domain.MoveWorst:
		slot, err = l.TransferWorst(m.Round, m.From, m.To)
	case domain.MoveExactSlot:
		slot = m.Slot
		err = l.Transfer(m.Round, m.Slot, m.From, m.To)
	case domain.MoveExactOriginalOwner:
		slot, err = l.TransferByOriginalOwner(m.Round, m.OriginalOwner, m.From, m.To)
	default:
		return domain.AppliedMove{}, fmt.Errorf("%w: kind %q", ErrInvalidMove, m.Kind)
	}
	if err != nil {
		return domain.AppliedMove{}, err
	}

	p, err := l.Pick(m.Round, slot)
	if err != nil {
		return domain.AppliedMove{}, err
	}
	return domain.AppliedMove{
		Kind:          m.Kind,
		Round:         m.Round,
		Slot:          slot,
		OriginalOwner: p.OriginalOwner,
		From:          m.From,
		To:            m.To,
	}, nil
}
