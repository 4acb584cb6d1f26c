package acquisition

import (
	"testing"

	"keeper-ledger/internal/domain"
)

func TestContract_Transitions(t *testing.T) {
	tests := []struct {
		name      string
		events    []domain.AcquisitionEvent
		wantState ContractState
		wantRound int
		wantEvent int
	}{
		{
			name:      "no events",
			wantState: NoContract,
			wantEvent: -1,
		},
		{
			name:      "draft establishes",
			events:    []domain.AcquisitionEvent{{Type: domain.EventDraft, Team: "1", Round: 4}},
			wantState: DraftContract,
			wantRound: 4,
			wantEvent: 0,
		},
		{
			name: "trade carries draft contract",
			events: []domain.AcquisitionEvent{
				{Type: domain.EventDraft, Team: "1", Round: 4},
				{Type: domain.EventTrade, FromTeam: "1", ToTeam: "2"},
				{Type: domain.EventTrade, FromTeam: "2", ToTeam: "3"},
			},
			wantState: DraftContract,
			wantRound: 4,
			wantEvent: 0,
		},
		{
			name: "drop clears",
			events: []domain.AcquisitionEvent{
				{Type: domain.EventDraft, Team: "1", Round: 4},
				{Type: domain.EventDrop, Team: "1"},
			},
			wantState: NoContract,
			wantEvent: -1,
		},
		{
			name: "pickup after drop re-establishes",
			events: []domain.AcquisitionEvent{
				{Type: domain.EventDraft, Team: "1", Round: 4},
				{Type: domain.EventDrop, Team: "1"},
				{Type: domain.EventFAPickup, Team: "5"},
				{Type: domain.EventTrade, FromTeam: "5", ToTeam: "6"},
			},
			wantState: FreeAgentContract,
			wantEvent: 2,
		},
		{
			name: "unknown event type is ignored",
			events: []domain.AcquisitionEvent{
				{Type: domain.EventDraft, Team: "1", Round: 2},
				{Type: "commish"},
			},
			wantState: DraftContract,
			wantRound: 2,
			wantEvent: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContract()
			for i, e := range tt.events {
				c.Apply(i, e)
			}
			if c.State != tt.wantState {
				t.Errorf("expected state %s, got %s", tt.wantState, c.State)
			}
			if c.Round != tt.wantRound {
				t.Errorf("expected round %d, got %d", tt.wantRound, c.Round)
			}
			if c.Event != tt.wantEvent {
				t.Errorf("expected event %d, got %d", tt.wantEvent, c.Event)
			}
		})
	}
}

func TestContract_Origin(t *testing.T) {
	if got := (&Contract{State: DraftContract}).Origin(); got != domain.OriginDrafted {
		t.Errorf("expected drafted, got %s", got)
	}
	if got := (&Contract{State: FreeAgentContract}).Origin(); got != domain.OriginFAPickup {
		t.Errorf("expected fa_pickup, got %s", got)
	}
	if got := NewContract().Origin(); got != domain.OriginUnknown {
		t.Errorf("expected unknown, got %s", got)
	}
}
