package orchestrator

import (
	"sort"

	"go.uber.org/zap"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/idhash"
	"keeper-ledger/internal/replay"
	"keeper-ledger/internal/verification"
)

// tradeLogger reports replay progress.
type tradeLogger struct {
	log *zap.Logger
}

var _ replay.Observer = tradeLogger{}

func (t tradeLogger) TradeApplied(trade domain.Trade, moves []domain.AppliedMove) {
	for _, m := range moves {
		t.log.Debug("move applied",
			zap.String("trade", trade.ID),
			zap.String("kind", string(m.Kind)),
			zap.Int("round", m.Round),
			zap.Int("slot", m.Slot),
			zap.String("from", m.From),
			zap.String("to", m.To),
		)
	}
}

func (t tradeLogger) TradeSkipped(trade domain.Trade) {
	t.log.Warn("trade skipped", zap.String("trade", trade.ID), zap.String("reason", trade.SkipReason))
}

// reconcileBoard replays the trade list on a fresh ledger and diffs it
// against the persisted board. A failed replay leaves the partial ledger on
// result for diagnostics.
func (o *Orchestrator) reconcileBoard(log *zap.Logger, in *inputs, result *Result) error {
	lg := o.opts.League
	runner := replay.NewRunner(lg.DraftOrder(), lg.Rounds())

	l, res, err := runner.Run(o.opts.Trades, tradeLogger{log: log})
	result.Ledger = l
	result.Replay = res
	if res != nil {
		result.Summary.TradesApplied = res.TradesApplied
		result.Summary.TradesSkipped = len(res.Skipped)
		result.Summary.MovesApplied = res.MovesApplied
	}
	if err != nil {
		return err
	}

	result.Summary.LedgerFingerprint = idhash.LedgerFingerprint(l.Picks())
	result.Discrepancies = verification.CompareLedger(l, in.persisted)
	result.Summary.Discrepancies = len(result.Discrepancies)

	counts := l.OwnerCounts()
	managers := make([]string, 0, len(counts))
	for m := range counts {
		managers = append(managers, m)
	}
	sort.Strings(managers)
	for _, m := range managers {
		log.Debug("picks held", zap.String("manager", m), zap.Int("picks", counts[m]))
	}

	log.Info("board replayed",
		zap.Int("trades_applied", res.TradesApplied),
		zap.Int("trades_skipped", len(res.Skipped)),
		zap.Int("moves_applied", res.MovesApplied),
		zap.Int("discrepancies", len(result.Discrepancies)),
		zap.String("fingerprint", result.Summary.LedgerFingerprint),
	)
	return nil
}
