package reporting

import (
	"time"

	"keeper-ledger/internal/domain"
)

// Report is the reconciliation report structure.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	RunID       string
	Season      int
	Mode        string

	// Board is nil when the run did not reconcile the draft board.
	Board *BoardSection

	// Keepers is nil when the run did not audit keeper costs.
	Keepers *KeeperSection
}

// BoardSection describes the replayed draft board against the persisted snapshot.
type BoardSection struct {
	TradesApplied int
	MovesApplied  int
	Fingerprint   string
	Skipped       []SkippedTradeRow
	Moves         []domain.AppliedMove // application order
	Owners        []OwnerCountRow      // sorted by manager
	Discrepancies []domain.Discrepancy // (round, slot) order
}

// SkippedTradeRow is a listed trade that was not applied.
type SkippedTradeRow struct {
	TradeID     string
	Description string
	Reason      string
}

// OwnerCountRow is the number of picks a manager holds across all rounds.
type OwnerCountRow struct {
	Manager string
	Picks   int
}

// KeeperSection summarises a keeper-cost audit.
type KeeperSection struct {
	Total       int
	Matches     int
	Mismatches  int
	Skipped     int
	Results     []domain.KeeperResult
	Corrections []domain.Correction
}
