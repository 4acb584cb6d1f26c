package orchestrator

import (
	"go.uber.org/zap"

	"keeper-ledger/internal/acquisition"
	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/history"
	"keeper-ledger/internal/keeper"
	"keeper-ledger/internal/league"
	"keeper-ledger/internal/rank"
	"keeper-ledger/internal/verification"
)

// auditKeepers prices every keeper record and classifies it against the
// persisted cost.
func (o *Orchestrator) auditKeepers(log *zap.Logger, in *inputs) *verification.KeeperReport {
	lg := o.opts.League
	chains := history.Build(in.draft, in.txns)
	continuing := history.IdentifyContinuingKeepers(in.prevDraft, in.draft, in.prevRosters)
	lookup := rank.NewLookup(in.ranks)
	calc := keeper.NewCalculator(lg)

	log.Debug("history built",
		zap.Int("chains", len(chains)),
		zap.Int("continuing_keepers", len(continuing)),
	)

	results := make([]domain.KeeperResult, 0, len(in.keepers))
	for _, rec := range in.keepers {
		trace := acquisition.Trace(chains[rec.PlayerID], league.TeamNumber(rec.TeamKey))
		match := lookup.Find(rec.PlayerName, rec.SecondaryRank)
		var kept *domain.ContinuingKeeper
		if k, ok := continuing[rec.PlayerID]; ok {
			kept = &k
		}

		var drafted *domain.DraftResult
		if d, ok := in.draft[rec.PlayerID]; ok {
			drafted = &d
		}

		priced := calc.Calculate(keeper.Input{
			Record:     rec,
			Trace:      &trace,
			Rank:       match,
			Continuing: kept,
			Drafted:    drafted,
		})

		if match.Source == rank.SourceNone && rec.Status != domain.StatusKeepingNA {
			log.Debug("no rank for player", zap.String("player", rec.PlayerName), zap.String("player_id", rec.PlayerID))
		}

		results = append(results, domain.KeeperResult{
			Record:          rec,
			Team:            lg.ManagerForTeam(rec.TeamKey),
			Trace:           &trace,
			Rank:            match.Rank,
			RankSource:      string(match.Source),
			Continuing:      priced.Continuing,
			TradedOffseason: priced.TradedOffseason,
			Cost:            priced.Cost,
			Rationale:       priced.Rationale,
		})
	}

	report := verification.AuditKeepers(o.opts.Season, results)
	log.Info("keeper audit complete",
		zap.Int("total", report.Total),
		zap.Int("matches", report.Matches),
		zap.Int("mismatches", report.Mismatches),
		zap.Int("skipped", report.Skipped),
	)
	return report
}
