package domain

// KeeperStatus is the designation a manager placed on a rostered player.
type KeeperStatus string

const (
	StatusKeeping    KeeperStatus = "keeping"
	StatusKeeping7th KeeperStatus = "keeping-7th"
	StatusKeepingNA  KeeperStatus = "keeping-na"
)

// IsValid checks if the status is a known value.
func (s KeeperStatus) IsValid() bool {
	return s == StatusKeeping || s == StatusKeeping7th || s == StatusKeepingNA
}

// KeeperRecord is a persisted keeper designation.
type KeeperRecord struct {
	PlayerID      string       `json:"playerId"`
	PlayerName    string       `json:"playerName"`
	TeamKey       string       `json:"teamKey"`
	Status        KeeperStatus `json:"status"`
	PersistedCost *int         `json:"persistedCostRound,omitempty"`
	SecondaryRank *int         `json:"secondaryRank,omitempty"` // rank stored alongside the record, used when the rank table misses
}

// KeeperOutcome classifies a recomputed keeper cost against the persisted one.
type KeeperOutcome string

const (
	OutcomeMatch    KeeperOutcome = "match"
	OutcomeMismatch KeeperOutcome = "mismatch"
	OutcomeSkipped  KeeperOutcome = "skipped"
)

// KeeperResult is the full audit of one keeper record.
type KeeperResult struct {
	Record          KeeperRecord      `json:"record"`
	Team            string            `json:"team"` // manager name
	Trace           *AcquisitionTrace `json:"trace,omitempty"`
	Rank            *int              `json:"rank,omitempty"`
	RankSource      string            `json:"rankSource,omitempty"`
	Continuing      bool              `json:"continuing"`
	TradedOffseason bool              `json:"tradedOffseason,omitempty"` // kept last season by another team
	Cost            *int              `json:"cost,omitempty"`
	Rationale       []string          `json:"rationale"`
	Outcome         KeeperOutcome     `json:"outcome"`
}

// Correction is a proposed change to a persisted keeper cost. Never auto-applied.
type Correction struct {
	ID          string   `json:"id"`
	PlayerID    string   `json:"playerId"`
	Player      string   `json:"player"`
	Team        string   `json:"team"`
	CurrentCost *int     `json:"currentCost"`
	CorrectCost int      `json:"correctCost"`
	Rationale   []string `json:"rationale"`
}

// ContinuingKeeper is a player kept from the previous cycle.
type ContinuingKeeper struct {
	PlayerID          string `json:"playerId"`
	PreviousTeam      string `json:"previousTeam"`
	CurrentTeam       string `json:"currentTeam"`
	DraftRound        int    `json:"draftRound"`
	PreviouslyDrafted bool   `json:"previouslyDrafted"` // appeared in the previous season's draft
	TradedOffseason   bool   `json:"tradedOffseason"`
}
