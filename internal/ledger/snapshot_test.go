package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keeper-ledger/internal/domain"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Transfer(6, 8, "Alex", "Mike"))
	require.NoError(t, l.Transfer(6, 8, "Mike", "Bob"))
	_, err := l.TransferWorst(23, "Mike", "Alex")
	require.NoError(t, err)

	snap := l.Snapshot([]int{24, 25, 26, 27})
	assert.Equal(t, 27, snap.Rounds)
	assert.Equal(t, []int{24, 25, 26, 27}, snap.NARounds)
	require.Len(t, snap.Round(6), 12)

	sp, ok := snap.Lookup(6, 8)
	require.True(t, ok)
	assert.True(t, sp.Traded)
	assert.Equal(t, []string{"Alex", "Mike", "Bob"}, sp.Path)

	rebuilt, err := FromSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, l.Picks(), rebuilt.Picks())
}

func TestSnapshot_IsDetached(t *testing.T) {
	l := newTestLedger(t)
	snap := l.Snapshot(nil)

	snap.Picks["1"][0].Path[0] = "mutated"
	p, err := l.Pick(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Pudge", p.Path[0])
}

func TestFromSnapshot_FillsEmptyPath(t *testing.T) {
	l := newTestLedger(t)
	snap := l.Snapshot(nil)
	round := snap.Picks["2"]
	round[4].CurrentOwner = "Sean"
	round[4].Path = nil

	rebuilt, err := FromSnapshot(snap)
	require.NoError(t, err)
	p, err := rebuilt.Pick(2, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tyler", "Sean"}, p.Path)
}

func TestFromSnapshot_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *domain.LedgerSnapshot)
	}{
		{"missing round", func(s *domain.LedgerSnapshot) { delete(s.Picks, "3") }},
		{"duplicate slot", func(s *domain.LedgerSnapshot) { s.Picks["1"][1].Slot = 1 }},
		{"wrong original owner", func(s *domain.LedgerSnapshot) { s.Picks["1"][0].OriginalOwner = "Nick" }},
		{"unknown owner", func(s *domain.LedgerSnapshot) { s.Picks["4"][3].CurrentOwner = "Ghost" }},
		{"path tail mismatch", func(s *domain.LedgerSnapshot) { s.Picks["5"][0].CurrentOwner = "Nick" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := newTestLedger(t).Snapshot(nil)
			tt.mutate(snap)

			_, err := FromSnapshot(snap)
			assert.True(t, errors.Is(err, ErrInvalidSnapshot), "expected ErrInvalidSnapshot, got %v", err)
		})
	}
}
