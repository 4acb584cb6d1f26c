package replay

import "keeper-ledger/internal/domain"

// Observer is notified as the sequencer walks the trade list.
// Callbacks run synchronously, in trade order, after the ledger changed.
type Observer interface {
	// TradeApplied is called once every move of the trade succeeded.
	TradeApplied(trade domain.Trade, moves []domain.AppliedMove)

	// TradeSkipped is called for trades marked skip.
	TradeSkipped(trade domain.Trade)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) TradeApplied(domain.Trade, []domain.AppliedMove) {}
func (NopObserver) TradeSkipped(domain.Trade)                       {}

var _ Observer = NopObserver{}
