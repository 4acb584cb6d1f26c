package reporting

import (
	"fmt"
	"strings"
	"time"

	"keeper-ledger/internal/domain"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Keeper League Reconciliation\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Run: %s | Season: %d | Mode: %s\n\n", r.RunID, r.Season, r.Mode))

	if r.Board != nil {
		renderBoard(&sb, r.Board)
	}
	if r.Keepers != nil {
		renderKeepers(&sb, r.Keepers)
	}

	return sb.String()
}

func renderBoard(sb *strings.Builder, b *BoardSection) {
	sb.WriteString("## Draft Board\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Trades Applied | %d |\n", b.TradesApplied))
	sb.WriteString(fmt.Sprintf("| Trades Skipped | %d |\n", len(b.Skipped)))
	sb.WriteString(fmt.Sprintf("| Moves Applied | %d |\n", b.MovesApplied))
	sb.WriteString(fmt.Sprintf("| Discrepancies | %d |\n", len(b.Discrepancies)))
	sb.WriteString(fmt.Sprintf("| Fingerprint | `%s` |\n", b.Fingerprint))
	sb.WriteString("\n")

	// Discrepancies
	sb.WriteString("### Discrepancies\n\n")
	if len(b.Discrepancies) > 0 {
		sb.WriteString("| Round | Slot | Original | Computed | Persisted | Computed Path | Persisted Path |\n")
		sb.WriteString("|-------|------|----------|----------|-----------|---------------|----------------|\n")
		for _, d := range b.Discrepancies {
			persisted := d.PersistedOwner
			if persisted == "" {
				persisted = "(missing)"
			}
			sb.WriteString(fmt.Sprintf("| %d | %d | %s | %s | %s | %s | %s |\n",
				d.Round, d.Slot, d.OriginalOwner, d.ComputedOwner, persisted,
				strings.Join(d.ComputedPath, " → "), strings.Join(d.PersistedPath, " → ")))
		}
	} else {
		sb.WriteString("Draft board matches the persisted snapshot.\n")
	}
	sb.WriteString("\n")

	// Skipped trades
	if len(b.Skipped) > 0 {
		sb.WriteString("### Skipped Trades\n\n")
		for _, s := range b.Skipped {
			sb.WriteString(fmt.Sprintf("- %s: %s (%s)\n", s.TradeID, s.Description, s.Reason))
		}
		sb.WriteString("\n")
	}

	// Owner summary
	sb.WriteString("### Picks Per Manager\n\n")
	if len(b.Owners) > 0 {
		sb.WriteString("| Manager | Picks |\n")
		sb.WriteString("|---------|-------|\n")
		for _, o := range b.Owners {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", o.Manager, o.Picks))
		}
	} else {
		sb.WriteString("No owner counts available.\n")
	}
	sb.WriteString("\n")

	// Applied moves
	sb.WriteString("### Applied Moves\n\n")
	if len(b.Moves) > 0 {
		sb.WriteString("| Trade | Kind | Round | Slot | Original | From | To |\n")
		sb.WriteString("|-------|------|-------|------|----------|------|----|\n")
		for _, m := range b.Moves {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %s | %s | %s |\n",
				m.TradeID, m.Kind, m.Round, m.Slot, m.OriginalOwner, m.From, m.To))
		}
	} else {
		sb.WriteString("No moves applied.\n")
	}
	sb.WriteString("\n")
}

func renderKeepers(sb *strings.Builder, k *KeeperSection) {
	sb.WriteString("## Keeper Costs\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Keepers Checked | %d |\n", k.Total))
	sb.WriteString(fmt.Sprintf("| Matches | %d |\n", k.Matches))
	sb.WriteString(fmt.Sprintf("| Mismatches | %d |\n", k.Mismatches))
	sb.WriteString(fmt.Sprintf("| Skipped | %d |\n", k.Skipped))
	sb.WriteString("\n")

	sb.WriteString("### Corrections\n\n")
	if len(k.Corrections) > 0 {
		sb.WriteString("| Team | Player | Current | Correct | Rationale |\n")
		sb.WriteString("|------|--------|---------|---------|-----------|\n")
		for _, c := range k.Corrections {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %s |\n",
				c.Team, c.Player, costText(c.CurrentCost), c.CorrectCost, strings.Join(c.Rationale, "; ")))
		}
	} else {
		sb.WriteString("All keeper costs match.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("### All Keepers\n\n")
	if len(k.Results) > 0 {
		sb.WriteString("| Team | Player | Status | Continuing | Persisted | Computed | Outcome |\n")
		sb.WriteString("|------|--------|--------|------------|-----------|----------|---------|\n")
		for _, r := range k.Results {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
				r.Team, r.Record.PlayerName, r.Record.Status, continuingText(r),
				costText(r.Record.PersistedCost), costText(r.Cost), r.Outcome))
		}
	} else {
		sb.WriteString("No keeper records available.\n")
	}
	sb.WriteString("\n")
}

func continuingText(r domain.KeeperResult) string {
	switch {
	case r.TradedOffseason:
		return "yes (offseason trade)"
	case r.Continuing:
		return "yes"
	default:
		return "-"
	}
}

func costText(c *int) string {
	if c == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *c)
}
