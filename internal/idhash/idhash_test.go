package idhash

import (
	"testing"

	"keeper-ledger/internal/domain"
)

func TestLedgerFingerprint(t *testing.T) {
	picks := []domain.Pick{
		{Round: 1, Slot: 1, OriginalOwner: "Pudge", CurrentOwner: "Pudge", Path: []string{"Pudge"}},
		{Round: 1, Slot: 2, OriginalOwner: "Alex", CurrentOwner: "Nick", Path: []string{"Alex", "Nick"}},
		{Round: 2, Slot: 1, OriginalOwner: "Alex", CurrentOwner: "Alex", Path: []string{"Alex"}},
	}

	got := LedgerFingerprint(picks)
	if len(got) != 64 {
		t.Fatalf("LedgerFingerprint() length = %d, want 64", len(got))
	}

	// Input order must not matter.
	shuffled := []domain.Pick{picks[2], picks[0], picks[1]}
	if got2 := LedgerFingerprint(shuffled); got2 != got {
		t.Errorf("LedgerFingerprint() order dependent: %s != %s", got, got2)
	}

	// A different path must change the fingerprint even with the same owner.
	changed := []domain.Pick{picks[0], picks[1], picks[2]}
	changed[1] = domain.Pick{Round: 1, Slot: 2, OriginalOwner: "Alex", CurrentOwner: "Nick", Path: []string{"Alex", "Tim", "Nick"}}
	if LedgerFingerprint(changed) == got {
		t.Error("LedgerFingerprint() ignored path change")
	}
}

func TestCorrectionID(t *testing.T) {
	tests := []struct {
		name     string
		season   int
		playerID string
		teamKey  string
		cost     int
	}{
		{"drafted keeper", 2026, "12345", "458.l.5221.t.3", 5},
		{"waiver keeper", 2026, "67890", "458.l.5221.t.11", 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CorrectionID(tt.season, tt.playerID, tt.teamKey, tt.cost)
			if len(got) != 64 {
				t.Errorf("CorrectionID() length = %d, want 64", len(got))
			}
			if got2 := CorrectionID(tt.season, tt.playerID, tt.teamKey, tt.cost); got != got2 {
				t.Errorf("CorrectionID() not deterministic: %s != %s", got, got2)
			}
			if other := CorrectionID(tt.season, tt.playerID, tt.teamKey, tt.cost+1); other == got {
				t.Error("CorrectionID() ignored cost")
			}
		})
	}
}
