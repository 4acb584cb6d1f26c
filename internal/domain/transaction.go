package domain

// TransactionType is the league-level type of a transaction.
type TransactionType string

const (
	TransactionDraft   TransactionType = "draft"
	TransactionAdd     TransactionType = "add"
	TransactionDrop    TransactionType = "drop"
	TransactionAddDrop TransactionType = "add/drop"
	TransactionTrade   TransactionType = "trade"
	TransactionCommish TransactionType = "commish"
)

// MovementAction is what happened to one player inside a transaction.
type MovementAction string

const (
	ActionAdd   MovementAction = "add"
	ActionDrop  MovementAction = "drop"
	ActionTrade MovementAction = "trade"
)

// SourceKind describes where a player came from or went to.
// Values match the league feed ("freeagents", "team").
type SourceKind string

const (
	SourceKindDraft     SourceKind = "draft"
	SourceKindFreeAgent SourceKind = "freeagents"
	SourceKindWaivers   SourceKind = "waivers"
	SourceKindRoster    SourceKind = "team"
)

// IsPool reports whether the kind is the unowned player pool.
func (k SourceKind) IsPool() bool {
	return k == SourceKindFreeAgent || k == SourceKindWaivers
}

// TransactionEvent is one entry of the league transaction log.
type TransactionEvent struct {
	TransactionID string           `json:"transactionId"`
	Type          TransactionType  `json:"type"`
	Timestamp     int64            `json:"timestamp"` // unix seconds
	Players       []PlayerMovement `json:"players"`
}

// PlayerMovement is the per-player part of a transaction.
// Team fields hold full team keys and are empty for pool sides.
type PlayerMovement struct {
	PlayerID   string         `json:"playerId"`
	PlayerName string         `json:"playerName,omitempty"`
	Action     MovementAction `json:"action"`
	SourceKind SourceKind     `json:"sourceType"`
	SourceTeam string         `json:"sourceTeamKey,omitempty"`
	DestKind   SourceKind     `json:"destType"`
	DestTeam   string         `json:"destTeamKey,omitempty"`
}

// DraftResult is one player's selection in a season's draft.
type DraftResult struct {
	PlayerID string `json:"playerId"`
	Round    int    `json:"round"`
	Pick     int    `json:"pick"`
	TeamKey  string `json:"teamKey"`
}

// DraftResults maps player ID to the player's draft selection.
type DraftResults map[string]DraftResult

// Rosters maps a team key or team number to the player IDs it rostered at a point in time.
type Rosters map[string][]string
