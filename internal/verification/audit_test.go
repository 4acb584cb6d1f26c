package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keeper-ledger/internal/domain"
)

func ptrInt(v int) *int { return &v }

func result(team, player string, persisted, cost *int) domain.KeeperResult {
	return domain.KeeperResult{
		Record: domain.KeeperRecord{
			PlayerID:      player + "-id",
			PlayerName:    player,
			TeamKey:       "458.l.5221.t.1",
			Status:        domain.StatusKeeping,
			PersistedCost: persisted,
		},
		Team:      team,
		Cost:      cost,
		Rationale: []string{"first year, drafted -> round 5"},
	}
}

func TestAuditKeepers(t *testing.T) {
	na := result("Pudge", "Prospect", nil, nil)
	na.Record.Status = domain.StatusKeepingNA

	results := []domain.KeeperResult{
		result("Pudge", "Slugger", ptrInt(9), ptrInt(5)),
		result("Alex", "Closer", ptrInt(23), ptrInt(23)),
		na,
		result("Pudge", "Ace", ptrInt(3), ptrInt(3)),
		result("Alex", "Rookie", nil, ptrInt(12)),
	}

	report := AuditKeepers(2026, results)

	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 2, report.Matches)
	assert.Equal(t, 2, report.Mismatches)
	assert.Equal(t, 1, report.Skipped)

	// Grouped by team, then persisted cost with unset last.
	var order []string
	for _, r := range report.Results {
		order = append(order, r.Record.PlayerName)
	}
	assert.Equal(t, []string{"Closer", "Rookie", "Ace", "Slugger", "Prospect"}, order)

	require.Len(t, report.Corrections, 2)
	rookie := report.Corrections[0]
	assert.Equal(t, "Rookie", rookie.Player)
	assert.Nil(t, rookie.CurrentCost)
	assert.Equal(t, 12, rookie.CorrectCost)
	assert.Len(t, rookie.ID, 64)

	slugger := report.Corrections[1]
	assert.Equal(t, 9, *slugger.CurrentCost)
	assert.Equal(t, 5, slugger.CorrectCost)
	assert.Equal(t, []string{"first year, drafted -> round 5"}, slugger.Rationale)

	// Input is not mutated.
	assert.Equal(t, domain.KeeperOutcome(""), results[0].Outcome)
}

func TestAuditKeepers_Empty(t *testing.T) {
	report := AuditKeepers(2026, nil)
	assert.Equal(t, 0, report.Total)
	assert.NotNil(t, report.Corrections)
	assert.Empty(t, report.Results)
}
