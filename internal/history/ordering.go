package history

import (
	"sort"
	"strconv"

	"keeper-ledger/internal/domain"
)

// SortTransactions orders transactions by (timestamp ASC, transaction_id ASC).
// Numeric ids compare numerically so "99" sorts before "100"; otherwise ids
// compare as strings. The sort is stable, so full duplicates keep input order.
func SortTransactions(txns []domain.TransactionEvent) {
	sort.SliceStable(txns, func(i, j int) bool {
		return compareTransactions(&txns[i], &txns[j]) < 0
	})
}

// compareTransactions returns:
//   - negative if a < b
//   - zero if a == b
//   - positive if a > b
func compareTransactions(a, b *domain.TransactionEvent) int {
	if a.Timestamp != b.Timestamp {
		if a.Timestamp < b.Timestamp {
			return -1
		}
		return 1
	}
	return compareIDs(a.TransactionID, b.TransactionID)
}

func compareIDs(a, b string) int {
	if a == b {
		return 0
	}
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		if ai < bi {
			return -1
		}
		return 1
	}
	if a < b {
		return -1
	}
	return 1
}

// IsSorted reports whether txns already satisfy SortTransactions' order.
func IsSorted(txns []domain.TransactionEvent) bool {
	for i := 1; i < len(txns); i++ {
		if compareTransactions(&txns[i-1], &txns[i]) > 0 {
			return false
		}
	}
	return true
}
