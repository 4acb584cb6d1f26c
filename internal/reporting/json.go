package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"keeper-ledger/internal/domain"
)

// JSONReport is the machine-readable form of a Report.
type JSONReport struct {
	GeneratedAt   string                `json:"generatedAt"`
	RunID         string                `json:"runId"`
	Season        int                   `json:"season"`
	Mode          string                `json:"mode"`
	Discrepancies []domain.Discrepancy  `json:"discrepancies,omitempty"`
	Corrections   []domain.Correction   `json:"corrections,omitempty"`
	Keepers       []domain.KeeperResult `json:"keepers,omitempty"`
	Summary       map[string]int        `json:"summary"`
}

// ToJSON converts r to its JSON shape.
func ToJSON(r *Report) JSONReport {
	out := JSONReport{
		GeneratedAt: r.GeneratedAt.Format(time.RFC3339),
		RunID:       r.RunID,
		Season:      r.Season,
		Mode:        r.Mode,
		Summary:     map[string]int{},
	}
	if r.Board != nil {
		out.Discrepancies = r.Board.Discrepancies
		out.Summary["tradesApplied"] = r.Board.TradesApplied
		out.Summary["tradesSkipped"] = len(r.Board.Skipped)
		out.Summary["movesApplied"] = r.Board.MovesApplied
		out.Summary["discrepancies"] = len(r.Board.Discrepancies)
	}
	if r.Keepers != nil {
		out.Corrections = r.Keepers.Corrections
		out.Keepers = r.Keepers.Results
		out.Summary["keepers"] = r.Keepers.Total
		out.Summary["matches"] = r.Keepers.Matches
		out.Summary["mismatches"] = r.Keepers.Mismatches
		out.Summary["skipped"] = r.Keepers.Skipped
	}
	return out
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
