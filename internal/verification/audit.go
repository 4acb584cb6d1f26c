package verification

import (
	"sort"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/idhash"
)

// KeeperReport contains results for a batch keeper-cost audit.
type KeeperReport struct {
	Total       int                   // records audited
	Matches     int                   // computed cost equals persisted cost
	Mismatches  int                   // computed cost differs, one correction each
	Skipped     int                   // no computed cost (keeping-na)
	Results     []domain.KeeperResult // grouped by team, then persisted cost
	Corrections []domain.Correction
}

// AuditKeepers classifies computed keeper costs against persisted ones and
// proposes a correction for every mismatch. Results are returned with
// Outcome set. Corrections are proposals only.
func AuditKeepers(season int, results []domain.KeeperResult) *KeeperReport {
	report := &KeeperReport{
		Results:     make([]domain.KeeperResult, len(results)),
		Corrections: []domain.Correction{},
	}
	copy(report.Results, results)
	sortResults(report.Results)

	for i := range report.Results {
		r := &report.Results[i]
		report.Total++

		switch {
		case r.Cost == nil:
			r.Outcome = domain.OutcomeSkipped
			report.Skipped++
		case r.Record.PersistedCost != nil && *r.Record.PersistedCost == *r.Cost:
			r.Outcome = domain.OutcomeMatch
			report.Matches++
		default:
			r.Outcome = domain.OutcomeMismatch
			report.Mismatches++
			report.Corrections = append(report.Corrections, domain.Correction{
				ID:          idhash.CorrectionID(season, r.Record.PlayerID, r.Record.TeamKey, *r.Cost),
				PlayerID:    r.Record.PlayerID,
				Player:      r.Record.PlayerName,
				Team:        r.Team,
				CurrentCost: r.Record.PersistedCost,
				CorrectCost: *r.Cost,
				Rationale:   append([]string(nil), r.Rationale...),
			})
		}
	}

	return report
}

// sortResults orders by team, then persisted cost (unset last), then player name.
func sortResults(results []domain.KeeperResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Team != b.Team {
			return a.Team < b.Team
		}
		ac, bc := a.Record.PersistedCost, b.Record.PersistedCost
		switch {
		case ac == nil && bc != nil:
			return false
		case ac != nil && bc == nil:
			return true
		case ac != nil && bc != nil && *ac != *bc:
			return *ac < *bc
		}
		return a.Record.PlayerName < b.Record.PlayerName
	})
}
