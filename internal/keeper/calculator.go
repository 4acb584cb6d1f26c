// Package keeper prices kept players from their acquisition trace, rank and
// keeper-year status.
package keeper

import (
	"fmt"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/league"
	"keeper-ledger/internal/rank"
)

// Input is everything needed to price one keeper record.
type Input struct {
	Record domain.KeeperRecord
	// Trace is the acquisition trace for the record's team. Nil means no chain was found.
	Trace *domain.AcquisitionTrace
	Rank  rank.Match
	// Continuing describes how the player was kept in the previous cycle.
	// Nil means the player was not a keeper last season.
	Continuing *domain.ContinuingKeeper
	// Drafted is the player's entry in this season's draft results, if any.
	// It backs the cost when the trace cannot determine an origin.
	Drafted *domain.DraftResult
}

// Result is a computed cost and the reasoning that produced it.
// Cost is nil when the record is excluded from pricing.
type Result struct {
	Cost            *int
	Rationale       []string
	Continuing      bool // continuing keeper whose contract is still unbroken
	TradedOffseason bool // kept last season by a different team
}

// Calculator applies the league's keeper pricing rules.
type Calculator struct {
	size             int
	maxRound         int
	protectionRounds int
	teamName         func(string) string
}

// NewCalculator builds a calculator from a league definition.
func NewCalculator(l *league.League) *Calculator {
	return &Calculator{
		size:             l.Size(),
		maxRound:         l.MaxKeeperRound(),
		protectionRounds: l.ProtectionRounds(),
		teamName:         l.ManagerForTeam,
	}
}

// MaxRound is the waiver-tier cost.
func (c *Calculator) MaxRound() int { return c.maxRound }

// RankToRound converts an ordinal rank to a market-value round:
// ceil(rank / league size), capped at the max keeper round. A nil or
// non-positive rank costs the max keeper round.
func (c *Calculator) RankToRound(r *int) int {
	if r == nil || *r <= 0 || c.size <= 0 {
		return c.maxRound
	}
	round := (*r + c.size - 1) / c.size
	if round > c.maxRound {
		return c.maxRound
	}
	return round
}

// Calculate prices a keeper record. The rationale lists each step in the
// order it was applied.
func (c *Calculator) Calculate(in Input) Result {
	var res Result
	why := func(format string, args ...any) {
		res.Rationale = append(res.Rationale, fmt.Sprintf(format, args...))
	}

	if in.Record.Status == domain.StatusKeepingNA {
		why("keeping-na: excluded from cost computation")
		return res
	}

	market := c.RankToRound(in.Rank.Rank)

	if in.Record.Status == domain.StatusKeeping7th {
		if in.Rank.Rank == nil {
			why("keeping-7th: priced at market value, no rank found, round %d", market)
		} else {
			why("keeping-7th: priced at market value, rank %d (%s) -> round %d", *in.Rank.Rank, in.Rank.Source, market)
		}
		res.Cost = intPtr(market)
		return res
	}

	trace := in.Trace
	if trace == nil {
		trace = &domain.AcquisitionTrace{Method: domain.MethodUnknown, ContractOrigin: domain.OriginUnknown}
	}
	holder := c.teamName(in.Record.TeamKey)

	origin := trace.ContractOrigin
	draftRound := trace.DraftRound
	originalDraftRound := trace.OriginalDraftRound

	switch trace.Method {
	case domain.MethodDrafted:
		why("drafted round %s by %s", roundText(draftRound), c.teamName(trace.OriginalDraftingTeam))
	case domain.MethodFAPickup:
		why("free-agent pickup by %s", holder)
	case domain.MethodTraded:
		switch origin {
		case domain.OriginDrafted:
			why("traded to %s (originally drafted round %s)", holder, roundText(draftRound))
		case domain.OriginFAPickup:
			why("traded to %s (originally a free-agent pickup)", holder)
		default:
			why("traded to %s", holder)
		}
	default:
		if in.Drafted != nil && origin == domain.OriginUnknown {
			why("acquisition unknown; found in draft results round %d by %s",
				in.Drafted.Round, c.teamName(in.Drafted.TeamKey))
			origin = domain.OriginDrafted
			draftRound = intPtr(in.Drafted.Round)
			if originalDraftRound == nil {
				originalDraftRound = intPtr(in.Drafted.Round)
			}
		} else {
			why("acquisition unknown for %s", holder)
		}
	}

	wasKept := in.Continuing != nil
	if k := in.Continuing; wasKept {
		switch {
		case k.TradedOffseason:
			why("continuing keeper: kept by %s last season, moved to %s in an offseason trade",
				c.teamName(k.PreviousTeam), c.teamName(k.CurrentTeam))
		case !k.PreviouslyDrafted:
			why("continuing keeper: kept by %s last season after going undrafted", c.teamName(k.PreviousTeam))
		default:
			why("continuing keeper: kept by %s from the previous cycle", c.teamName(k.PreviousTeam))
		}
		res.TradedOffseason = k.TradedOffseason
	} else {
		why("first year under current contract")
	}

	res.Continuing = wasKept &&
		origin != domain.OriginFAPickup &&
		!trace.WasDroppedAndReacquired
	if wasKept && !res.Continuing {
		why("contract reset by drop and re-acquisition")
	}

	var cost int
	switch {
	case res.Continuing:
		cost = market
		if in.Rank.Rank == nil {
			why("continuing: no rank found -> round %d", cost)
		} else {
			why("continuing: market value, rank %d (%s) -> round %d", *in.Rank.Rank, in.Rank.Source, cost)
		}
	case origin == domain.OriginDrafted && draftRound != nil:
		cost = *draftRound
		why("first year, drafted -> round %d", cost)
	case origin == domain.OriginFAPickup:
		cost = c.maxRound
		why("first year, free-agent pickup -> round %d", cost)
	default:
		cost = c.maxRound
		why("contract origin unknown -> round %d, needs manual review", cost)
	}

	if trace.WasDroppedAndReacquired && in.Rank.Rank != nil && *in.Rank.Rank <= c.protectionRounds*c.size {
		protected := market
		if originalDraftRound != nil && *originalDraftRound < protected {
			protected = *originalDraftRound
		}
		if cost == c.maxRound && protected < c.maxRound {
			why("drop protection: rank %d is within the top %d rounds, cannot keep at round %d -> round %d",
				*in.Rank.Rank, c.protectionRounds, c.maxRound, protected)
			cost = protected
		}
	}

	res.Cost = intPtr(cost)
	return res
}

func roundText(r *int) string {
	if r == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *r)
}

func intPtr(v int) *int {
	return &v
}
