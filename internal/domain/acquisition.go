package domain

// AcquisitionEventType is the kind of custody change in a player's chain.
type AcquisitionEventType string

const (
	EventDraft    AcquisitionEventType = "draft"
	EventFAPickup AcquisitionEventType = "fa_pickup"
	EventDrop     AcquisitionEventType = "drop"
	EventTrade    AcquisitionEventType = "trade"
)

// AcquisitionEvent is one custody change. Teams are team numbers.
// Draft, fa_pickup and drop use Team; trade uses FromTeam and ToTeam.
type AcquisitionEvent struct {
	Type      AcquisitionEventType `json:"type"`
	Team      string               `json:"team,omitempty"`
	FromTeam  string               `json:"fromTeam,omitempty"`
	ToTeam    string               `json:"toTeam,omitempty"`
	Round     int                  `json:"round,omitempty"`  // draft only
	Source    SourceKind           `json:"source,omitempty"` // fa_pickup only
	Timestamp int64                `json:"timestamp"`
}

// Destination returns the team holding the player after the event,
// or "" when the event leaves the player unrostered.
func (e AcquisitionEvent) Destination() string {
	switch e.Type {
	case EventDraft, EventFAPickup:
		return e.Team
	case EventTrade:
		return e.ToTeam
	default:
		return ""
	}
}

// AcquisitionChain is a player's chronological custody history for a season.
type AcquisitionChain struct {
	PlayerID  string             `json:"playerId"`
	DraftedBy string             `json:"draftedBy,omitempty"`
	Events    []AcquisitionEvent `json:"events"`
	LastTeam  string             `json:"lastTeam,omitempty"`
}

// DraftRound returns the round of the seeded draft event, if any.
func (c *AcquisitionChain) DraftRound() (int, bool) {
	if c == nil {
		return 0, false
	}
	for _, e := range c.Events {
		if e.Type == EventDraft {
			return e.Round, true
		}
	}
	return 0, false
}

// AcquisitionMethod is how the current holder most recently got the player.
type AcquisitionMethod string

const (
	MethodDrafted  AcquisitionMethod = "drafted"
	MethodFAPickup AcquisitionMethod = "fa_pickup"
	MethodTraded   AcquisitionMethod = "traded"
	MethodUnknown  AcquisitionMethod = "unknown"
)

// ContractOriginKind is the cost basis in force for a player.
type ContractOriginKind string

const (
	OriginDrafted  ContractOriginKind = "drafted"
	OriginFAPickup ContractOriginKind = "fa_pickup"
	OriginUnknown  ContractOriginKind = "unknown"
)

// AcquisitionTrace summarises a chain from the perspective of one holder.
type AcquisitionTrace struct {
	PlayerID                string             `json:"playerId"`
	Holder                  string             `json:"holder"`
	Method                  AcquisitionMethod  `json:"method"`
	ContractOrigin          ContractOriginKind `json:"contractOrigin"`
	DraftRound              *int               `json:"draftRound,omitempty"`         // set when ContractOrigin is drafted
	OriginalDraftRound      *int               `json:"originalDraftRound,omitempty"` // round of the season's draft event, if any
	WasDroppedAndReacquired bool               `json:"wasDroppedAndReacquired"`
	OriginalDraftingTeam    string             `json:"originalDraftingTeam,omitempty"`
}
