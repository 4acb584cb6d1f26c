package replay

import (
	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/ledger"
)

// Result summarises a completed replay.
type Result struct {
	TradesApplied int
	MovesApplied  int
	Skipped       []domain.Trade
	Applied       []domain.AppliedMove // in application order
}

// Sequencer applies trades to a ledger strictly in the given order.
type Sequencer struct {
	ledger   *ledger.Ledger
	observer Observer
}

// NewSequencer creates a sequencer over l. A nil observer is replaced by NopObserver.
func NewSequencer(l *ledger.Ledger, observer Observer) *Sequencer {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Sequencer{ledger: l, observer: observer}
}

// Apply replays trades in order, each trade's moves in order. The first
// failing move aborts the whole replay with a *TradeError; moves already
// applied, including earlier moves of the failing trade, are not rolled back.
func (s *Sequencer) Apply(trades []domain.Trade) (*Result, error) {
	result := &Result{}

	for _, trade := range trades {
		if trade.Skip {
			result.Skipped = append(result.Skipped, trade)
			s.observer.TradeSkipped(trade)
			continue
		}

		applied := make([]domain.AppliedMove, 0, len(trade.Moves))
		for i, move := range trade.Moves {
			am, err := Resolve(s.ledger, move)
			if err != nil {
				return result, &TradeError{
					TradeID:     trade.ID,
					Description: trade.Description,
					MoveIndex:   i,
					Move:        move,
					Err:         err,
				}
			}
			am.TradeID = trade.ID
			applied = append(applied, am)
			result.MovesApplied++
		}

		result.TradesApplied++
		result.Applied = append(result.Applied, applied...)
		s.observer.TradeApplied(trade, applied)
	}

	return result, nil
}
