package history

import (
	"sort"
	"strconv"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/league"
)

// IdentifyContinuingKeepers finds players kept from the previous cycle.
//
// A player on team T's end-of-previous-season roster who appears in the
// current draft for T was kept by T. A player rostered by one team at season
// end and drafted by another is treated as a keeper moved in an offseason
// trade. When a player shows up on several previous rosters, the roster of
// the drafting team wins; otherwise the lowest team number is used.
func IdentifyContinuingKeepers(
	previousDraft domain.DraftResults,
	currentDraft domain.DraftResults,
	previousRosters domain.Rosters,
) map[string]domain.ContinuingKeeper {
	keepers := make(map[string]domain.ContinuingKeeper)

	previousTeams := make(map[string][]string)
	for team, pids := range previousRosters {
		num := league.TeamNumber(team)
		for _, pid := range pids {
			previousTeams[pid] = append(previousTeams[pid], num)
		}
	}

	for pid, teams := range previousTeams {
		cur, drafted := currentDraft[pid]
		if !drafted {
			continue
		}
		newTeam := league.TeamNumber(cur.TeamKey)
		oldTeam := pickPreviousTeam(teams, newTeam)
		_, wasDrafted := previousDraft[pid]

		keepers[pid] = domain.ContinuingKeeper{
			PlayerID:          pid,
			PreviousTeam:      oldTeam,
			CurrentTeam:       newTeam,
			DraftRound:        cur.Round,
			PreviouslyDrafted: wasDrafted,
			TradedOffseason:   oldTeam != newTeam,
		}
	}

	return keepers
}

// pickPreviousTeam prefers the drafting team, then the lowest team number.
func pickPreviousTeam(teams []string, draftingTeam string) string {
	for _, t := range teams {
		if t == draftingTeam {
			return t
		}
	}
	sorted := append([]string(nil), teams...)
	sort.Slice(sorted, func(i, j int) bool { return teamLess(sorted[i], sorted[j]) })
	return sorted[0]
}

// teamLess orders team numbers numerically, falling back to string order.
func teamLess(a, b string) bool {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return x < y
	}
	return a < b
}
