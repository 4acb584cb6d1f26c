package league

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOrder = []string{
	"Pudge", "Alex", "Nick", "Tim", "Jason", "Ryan",
	"Matt", "Dave", "Chris", "Mike", "Josh", "Ben",
}

func TestNew_Defaults(t *testing.T) {
	l, err := New(Options{DraftOrder: testOrder, NARounds: []int{27, 26}})
	require.NoError(t, err)

	assert.Equal(t, 12, l.Size())
	assert.Equal(t, DefaultRounds, l.Rounds())
	assert.Equal(t, []int{26, 27}, l.NARounds())
	assert.Equal(t, 25, l.MaxKeeperRound())
	assert.Equal(t, DefaultProtectionRounds, l.ProtectionRounds())

	slot, ok := l.Slot("Nick")
	assert.True(t, ok)
	assert.Equal(t, 3, slot)
	assert.False(t, l.IsManager("Nobody"))
}

func TestNew_NoNARounds(t *testing.T) {
	l, err := New(Options{DraftOrder: testOrder, Rounds: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, l.MaxKeeperRound())
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(Options{
		DraftOrder: []string{"Pudge", "Pudge", " "},
		NARounds:   []int{40},
		Teams:      map[string]string{"3": "Ghost"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLeague))
	assert.Contains(t, err.Error(), "appears twice")
	assert.Contains(t, err.Error(), "position 3 is blank")
	assert.Contains(t, err.Error(), "na round 40")
	assert.Contains(t, err.Error(), "unknown manager")
}

func TestDraftOrder_IsCopy(t *testing.T) {
	l, err := New(Options{DraftOrder: testOrder})
	require.NoError(t, err)
	order := l.DraftOrder()
	order[0] = "Changed"
	assert.Equal(t, "Pudge", l.DraftOrder()[0])
}

func TestManagerForTeam(t *testing.T) {
	l, err := New(Options{
		DraftOrder: testOrder,
		Teams:      map[string]string{"1": "Pudge", "7": "Matt"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Matt", l.ManagerForTeam("458.l.5221.t.7"))
	assert.Equal(t, "Pudge", l.ManagerForTeam("1"))
	assert.Equal(t, "Team 9", l.ManagerForTeam("458.l.5221.t.9"))
	assert.Equal(t, "unknown team", l.ManagerForTeam(""))
	assert.Equal(t, "12", TeamNumber("458.l.5221.t.12"))
}
