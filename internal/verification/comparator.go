// Package verification compares reconstructed state against persisted data:
// draft board ownership and keeper costs.
package verification

import (
	"slices"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/ledger"
)

// FieldDivergence represents a mismatch between persisted and computed values.
type FieldDivergence struct {
	Field    string      // field name
	Expected interface{} // persisted value
	Actual   interface{} // computed value
}

// ComparePick compares a computed pick against its persisted record.
// A nil persisted record diverges on every field.
func ComparePick(computed domain.Pick, persisted *domain.SnapshotPick) []FieldDivergence {
	if persisted == nil {
		return []FieldDivergence{
			{Field: "CurrentOwner", Expected: nil, Actual: computed.CurrentOwner},
			{Field: "OriginalOwner", Expected: nil, Actual: computed.OriginalOwner},
			{Field: "Path", Expected: nil, Actual: computed.Path},
		}
	}

	var divergences []FieldDivergence

	if persisted.CurrentOwner != computed.CurrentOwner {
		divergences = append(divergences, FieldDivergence{
			Field:    "CurrentOwner",
			Expected: persisted.CurrentOwner,
			Actual:   computed.CurrentOwner,
		})
	}

	if persisted.OriginalOwner != computed.OriginalOwner {
		divergences = append(divergences, FieldDivergence{
			Field:    "OriginalOwner",
			Expected: persisted.OriginalOwner,
			Actual:   computed.OriginalOwner,
		})
	}

	if !slices.Equal(persisted.Path, computed.Path) {
		divergences = append(divergences, FieldDivergence{
			Field:    "Path",
			Expected: persisted.Path,
			Actual:   computed.Path,
		})
	}

	return divergences
}

// CompareLedger reports every pick whose computed current owner differs from
// the persisted snapshot, in (round, slot) order. An empty result is a
// perfect match. Picks missing from the snapshot are reported with an empty
// persisted owner.
func CompareLedger(l *ledger.Ledger, persisted *domain.LedgerSnapshot) []domain.Discrepancy {
	discrepancies := []domain.Discrepancy{}

	for _, pick := range l.Picks() {
		var stored *domain.SnapshotPick
		if sp, ok := persisted.Lookup(pick.Round, pick.Slot); ok {
			stored = &sp
		}

		if !ownerDiverges(ComparePick(pick, stored)) {
			continue
		}

		d := domain.Discrepancy{
			Round:         pick.Round,
			Slot:          pick.Slot,
			OriginalOwner: pick.OriginalOwner,
			ComputedOwner: pick.CurrentOwner,
			ComputedPath:  pick.Path,
		}
		if stored != nil {
			d.PersistedOwner = stored.CurrentOwner
			d.PersistedPath = append([]string(nil), stored.Path...)
		}
		discrepancies = append(discrepancies, d)
	}

	return discrepancies
}

func ownerDiverges(divergences []FieldDivergence) bool {
	for _, d := range divergences {
		if d.Field == "CurrentOwner" {
			return true
		}
	}
	return false
}
