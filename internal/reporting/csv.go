package reporting

import (
	"encoding/csv"
	"strconv"
	"strings"

	"keeper-ledger/internal/domain"
)

// RenderCorrectionsCSV renders proposed keeper-cost corrections as CSV string.
// Rationale steps are joined with " | ".
func RenderCorrectionsCSV(corrections []domain.Correction) (string, error) {
	rows := [][]string{{"id", "player_id", "player", "team", "current_cost", "correct_cost", "rationale"}}
	for _, c := range corrections {
		current := ""
		if c.CurrentCost != nil {
			current = strconv.Itoa(*c.CurrentCost)
		}
		rows = append(rows, []string{
			c.ID,
			c.PlayerID,
			c.Player,
			c.Team,
			current,
			strconv.Itoa(c.CorrectCost),
			strings.Join(c.Rationale, " | "),
		})
	}
	return writeCSV(rows)
}

// RenderDiscrepanciesCSV renders board discrepancies as CSV string.
// Paths are joined with ">".
func RenderDiscrepanciesCSV(discrepancies []domain.Discrepancy) (string, error) {
	rows := [][]string{{"round", "slot", "original_owner", "computed_owner", "persisted_owner", "computed_path", "persisted_path"}}
	for _, d := range discrepancies {
		rows = append(rows, []string{
			strconv.Itoa(d.Round),
			strconv.Itoa(d.Slot),
			d.OriginalOwner,
			d.ComputedOwner,
			d.PersistedOwner,
			strings.Join(d.ComputedPath, ">"),
			strings.Join(d.PersistedPath, ">"),
		})
	}
	return writeCSV(rows)
}

func writeCSV(rows [][]string) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return sb.String(), nil
}
