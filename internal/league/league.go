// Package league holds the static description of a keeper league: seating
// order, draft length, reserved rounds and the team-key directory.
package league

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Defaults for the reference league.
const (
	DefaultRounds           = 27
	DefaultProtectionRounds = 5
)

// ErrInvalidLeague is returned when a league definition is inconsistent.
var ErrInvalidLeague = errors.New("invalid league")

// League is injected into every component that needs manager or team lookups.
type League struct {
	draftOrder       []string
	rounds           int
	naRounds         []int
	maxKeeperRound   int
	protectionRounds int
	teams            map[string]string // team number -> manager
	position         map[string]int    // manager -> 1-based slot
}

// Options configures New.
type Options struct {
	DraftOrder       []string
	Rounds           int
	NARounds         []int
	MaxKeeperRound   int // 0 derives min(NARounds)-1, or Rounds when there are none
	ProtectionRounds int
	Teams            map[string]string // team number -> manager
}

// New validates opts and builds a League.
func New(opts Options) (*League, error) {
	var problems []string

	if len(opts.DraftOrder) == 0 {
		problems = append(problems, "draft order is empty")
	}
	position := make(map[string]int, len(opts.DraftOrder))
	for i, m := range opts.DraftOrder {
		if strings.TrimSpace(m) == "" {
			problems = append(problems, fmt.Sprintf("draft order position %d is blank", i+1))
			continue
		}
		if _, dup := position[m]; dup {
			problems = append(problems, fmt.Sprintf("manager %q appears twice in draft order", m))
			continue
		}
		position[m] = i + 1
	}

	rounds := opts.Rounds
	if rounds == 0 {
		rounds = DefaultRounds
	}
	if rounds < 0 {
		problems = append(problems, "rounds must be positive")
	}

	na := append([]int(nil), opts.NARounds...)
	sort.Ints(na)
	for _, r := range na {
		if r < 1 || r > rounds {
			problems = append(problems, fmt.Sprintf("na round %d outside 1..%d", r, rounds))
		}
	}

	maxKeeper := opts.MaxKeeperRound
	if maxKeeper == 0 {
		maxKeeper = rounds
		if len(na) > 0 {
			maxKeeper = na[0] - 1
		}
	}
	if maxKeeper < 1 || maxKeeper > rounds {
		problems = append(problems, fmt.Sprintf("max keeper round %d outside 1..%d", maxKeeper, rounds))
	}

	protection := opts.ProtectionRounds
	if protection == 0 {
		protection = DefaultProtectionRounds
	}

	teams := make(map[string]string, len(opts.Teams))
	for num, manager := range opts.Teams {
		if _, ok := position[manager]; !ok {
			problems = append(problems, fmt.Sprintf("team %s maps to unknown manager %q", num, manager))
		}
		teams[num] = manager
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLeague, strings.Join(problems, "; "))
	}

	return &League{
		draftOrder:       append([]string(nil), opts.DraftOrder...),
		rounds:           rounds,
		naRounds:         na,
		maxKeeperRound:   maxKeeper,
		protectionRounds: protection,
		teams:            teams,
		position:         position,
	}, nil
}

// DraftOrder returns a copy of the seating order; index i holds slot i+1.
func (l *League) DraftOrder() []string {
	return append([]string(nil), l.draftOrder...)
}

// Size is the number of managers (slots per round).
func (l *League) Size() int { return len(l.draftOrder) }

// Rounds is the draft length.
func (l *League) Rounds() int { return l.rounds }

// NARounds returns the reserved rounds in ascending order.
func (l *League) NARounds() []int { return append([]int(nil), l.naRounds...) }

// MaxKeeperRound is the latest round a keeper can cost (waiver-tier price).
func (l *League) MaxKeeperRound() int { return l.maxKeeperRound }

// ProtectionRounds is the number of top rounds covered by drop protection.
func (l *League) ProtectionRounds() int { return l.protectionRounds }

// IsManager reports whether name sits in the draft order.
func (l *League) IsManager(name string) bool {
	_, ok := l.position[name]
	return ok
}

// Slot returns the 1-based draft position of a manager.
func (l *League) Slot(manager string) (int, bool) {
	s, ok := l.position[manager]
	return s, ok
}

// TeamNumber extracts the team number from a team key such as "458.l.5221.t.7".
// A bare number is returned unchanged.
func TeamNumber(teamKey string) string {
	if i := strings.LastIndex(teamKey, ".t."); i >= 0 {
		return teamKey[i+3:]
	}
	return teamKey
}

// ManagerForTeam resolves a team key or team number to a manager name.
// Unknown teams render as "Team <n>".
func (l *League) ManagerForTeam(teamKey string) string {
	num := TeamNumber(teamKey)
	if m, ok := l.teams[num]; ok {
		return m
	}
	if num == "" {
		return "unknown team"
	}
	return "Team " + num
}
