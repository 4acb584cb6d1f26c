package reporting

import (
	"sort"
	"time"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/replay"
	"keeper-ledger/internal/verification"
)

// Input carries the outputs of one run. Nil parts produce nil sections.
type Input struct {
	RunID         string
	Season        int
	Mode          string
	Replay        *replay.Result
	OwnerCounts   map[string]int
	Fingerprint   string
	Discrepancies []domain.Discrepancy
	Keepers       *verification.KeeperReport
}

// Generator assembles reports from run outputs.
type Generator struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a report.
func (g *Generator) Generate(in Input) *Report {
	r := &Report{
		GeneratedAt: g.now(),
		RunID:       in.RunID,
		Season:      in.Season,
		Mode:        in.Mode,
	}

	if in.Replay != nil {
		r.Board = g.generateBoard(in)
	}
	if in.Keepers != nil {
		r.Keepers = &KeeperSection{
			Total:       in.Keepers.Total,
			Matches:     in.Keepers.Matches,
			Mismatches:  in.Keepers.Mismatches,
			Skipped:     in.Keepers.Skipped,
			Results:     in.Keepers.Results,
			Corrections: in.Keepers.Corrections,
		}
	}

	return r
}

func (g *Generator) generateBoard(in Input) *BoardSection {
	board := &BoardSection{
		TradesApplied: in.Replay.TradesApplied,
		MovesApplied:  in.Replay.MovesApplied,
		Fingerprint:   in.Fingerprint,
		Moves:         in.Replay.Applied,
		Discrepancies: in.Discrepancies,
	}

	for _, t := range in.Replay.Skipped {
		board.Skipped = append(board.Skipped, SkippedTradeRow{
			TradeID:     t.ID,
			Description: t.Description,
			Reason:      t.SkipReason,
		})
	}

	for manager, n := range in.OwnerCounts {
		board.Owners = append(board.Owners, OwnerCountRow{Manager: manager, Picks: n})
	}
	sort.Slice(board.Owners, func(i, j int) bool {
		return board.Owners[i].Manager < board.Owners[j].Manager
	})

	return board
}
