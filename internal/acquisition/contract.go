// Package acquisition derives how a player's current holder acquired them
// and which contract sets the player's keeper cost.
package acquisition

import (
	"fmt"

	"keeper-ledger/internal/domain"
)

// ContractState is the state of a player's cost basis.
type ContractState int

const (
	// NoContract: never established, or cleared by a drop.
	NoContract ContractState = iota
	// DraftContract: established by the season's draft at Contract.Round.
	DraftContract
	// FreeAgentContract: established by a free-agent or waiver pickup.
	FreeAgentContract
)

func (s ContractState) String() string {
	switch s {
	case DraftContract:
		return "draft"
	case FreeAgentContract:
		return "free_agent"
	default:
		return "none"
	}
}

// Contract is the cost-basis state machine for one player.
type Contract struct {
	State ContractState
	Round int    // draft round, DraftContract only
	Team  string // team that established the contract
	Event int    // chain index of the establishing event, -1 when none
}

// transition computes the next contract for one chain event.
type transition func(c Contract, index int, e domain.AcquisitionEvent) Contract

// transitions are keyed by event type. A trade carries the contract through
// unchanged; event types without an entry leave the contract as is.
var transitions = map[domain.AcquisitionEventType]transition{
	domain.EventDraft: func(_ Contract, i int, e domain.AcquisitionEvent) Contract {
		return Contract{State: DraftContract, Round: e.Round, Team: e.Team, Event: i}
	},
	domain.EventFAPickup: func(_ Contract, i int, e domain.AcquisitionEvent) Contract {
		return Contract{State: FreeAgentContract, Team: e.Team, Event: i}
	},
	domain.EventDrop: func(Contract, int, domain.AcquisitionEvent) Contract {
		return Contract{State: NoContract, Event: -1}
	},
	domain.EventTrade: func(c Contract, _ int, _ domain.AcquisitionEvent) Contract {
		return c
	},
}

// NewContract returns a contract in the NoContract state.
func NewContract() *Contract {
	return &Contract{State: NoContract, Event: -1}
}

// Apply advances the state machine by the event at chain index i.
func (c *Contract) Apply(i int, e domain.AcquisitionEvent) {
	if next, ok := transitions[e.Type]; ok {
		*c = next(*c, i, e)
	}
}

// Origin maps the state to the reported contract origin kind.
func (c *Contract) Origin() domain.ContractOriginKind {
	switch c.State {
	case DraftContract:
		return domain.OriginDrafted
	case FreeAgentContract:
		return domain.OriginFAPickup
	default:
		return domain.OriginUnknown
	}
}

func (c *Contract) String() string {
	if c.State == DraftContract {
		return fmt.Sprintf("%s(round %d)", c.State, c.Round)
	}
	return c.State.String()
}
