package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"keeper-ledger/internal/domain"
)

// LedgerFingerprint computes a deterministic fingerprint of ledger state.
// Formula: SHA256 over "round|slot|current_owner|path" lines in (round, slot) order.
// Returns hex-encoded hash (64 characters).
func LedgerFingerprint(picks []domain.Pick) string {
	sorted := make([]domain.Pick, len(picks))
	copy(sorted, picks)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Round != sorted[j].Round {
			return sorted[i].Round < sorted[j].Round
		}
		return sorted[i].Slot < sorted[j].Slot
	})

	h := sha256.New()
	for _, p := range sorted {
		fmt.Fprintf(h, "%d|%d|%s|%s\n", p.Round, p.Slot, p.CurrentOwner, strings.Join(p.Path, ">"))
	}
	return hex.EncodeToString(h.Sum(nil))
}
