package replay

import (
	"fmt"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/ledger"
)

// Runner rebuilds a ledger from first principles: a fresh base grid followed
// by the full ordered trade list.
type Runner struct {
	draftOrder []string
	rounds     int
}

// NewRunner creates a runner for the given seating order and draft length.
func NewRunner(draftOrder []string, rounds int) *Runner {
	return &Runner{
		draftOrder: append([]string(nil), draftOrder...),
		rounds:     rounds,
	}
}

// Run builds a base ledger and replays trades against it. On a trade failure
// the partially replayed ledger is returned alongside the error for diagnostics.
func (r *Runner) Run(trades []domain.Trade, observer Observer) (*ledger.Ledger, *Result, error) {
	l, err := ledger.New(r.draftOrder, r.rounds)
	if err != nil {
		return nil, nil, fmt.Errorf("build base ledger: %w", err)
	}

	result, err := NewSequencer(l, observer).Apply(trades)
	if err != nil {
		return l, result, err
	}
	if err := l.CheckInvariants(); err != nil {
		return l, result, fmt.Errorf("ledger invariant violated after replay: %w", err)
	}
	return l, result, nil
}
