package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// CorrectionID computes a deterministic correction id using SHA256.
// Formula: SHA256(season|player_id|team_key|correct_cost)
// The same proposed correction in a later run keeps its id.
func CorrectionID(season int, playerID, teamKey string, correctCost int) string {
	data := fmt.Sprintf("%d|%s|%s|%d", season, playerID, teamKey, correctCost)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
