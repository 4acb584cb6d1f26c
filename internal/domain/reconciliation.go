package domain

import "time"

// RankEntry is one row of an external consensus ranking.
type RankEntry struct {
	Name           string `json:"name"`
	NormalizedName string `json:"normalizedName"`
	Rank           int    `json:"rank"`
}

// Discrepancy is a pick whose computed owner differs from the persisted one.
// PersistedOwner is empty when the snapshot has no entry for the pick.
type Discrepancy struct {
	Round          int      `json:"round"`
	Slot           int      `json:"slot"`
	OriginalOwner  string   `json:"originalOwner"`
	ComputedOwner  string   `json:"computedOwner"`
	ComputedPath   []string `json:"computedPath"`
	PersistedOwner string   `json:"persistedOwner"`
	PersistedPath  []string `json:"persistedPath"`
}

// Run status values.
const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// RunSummary is the audit record of one reconciliation run.
type RunSummary struct {
	RunID             string    `json:"runId"`
	Season            int       `json:"season"`
	Mode              string    `json:"mode"`
	Status            string    `json:"status"`
	StartedAt         time.Time `json:"startedAt"`
	FinishedAt        time.Time `json:"finishedAt"`
	TradesApplied     int       `json:"tradesApplied"`
	TradesSkipped     int       `json:"tradesSkipped"`
	MovesApplied      int       `json:"movesApplied"`
	Discrepancies     int       `json:"discrepancies"`
	KeepersChecked    int       `json:"keepersChecked"`
	Matches           int       `json:"matches"`
	Mismatches        int       `json:"mismatches"`
	Skipped           int       `json:"skipped"`
	LedgerFingerprint string    `json:"ledgerFingerprint"`
	Error             string    `json:"error,omitempty"`
}
