// Package history turns a season's draft results and transaction log into
// per-player acquisition chains.
package history

import (
	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/league"
)

// Chains maps player ID to the player's acquisition chain.
type Chains map[string]*domain.AcquisitionChain

// Build seeds a draft event at timestamp 0 for every drafted player and then
// appends one event per player movement, in transaction order. The input
// slice is not modified.
func Build(draft domain.DraftResults, txns []domain.TransactionEvent) Chains {
	chains := make(Chains, len(draft))

	for pid, d := range draft {
		team := league.TeamNumber(d.TeamKey)
		chains[pid] = &domain.AcquisitionChain{
			PlayerID:  pid,
			DraftedBy: team,
			LastTeam:  team,
			Events: []domain.AcquisitionEvent{{
				Type:      domain.EventDraft,
				Team:      team,
				Round:     d.Round,
				Timestamp: 0,
			}},
		}
	}

	ordered := txns
	if !IsSorted(txns) {
		ordered = make([]domain.TransactionEvent, len(txns))
		copy(ordered, txns)
		SortTransactions(ordered)
	}

	for _, txn := range ordered {
		for _, mv := range txn.Players {
			if mv.PlayerID == "" {
				continue
			}
			chain, ok := chains[mv.PlayerID]
			if !ok {
				chain = &domain.AcquisitionChain{PlayerID: mv.PlayerID}
				chains[mv.PlayerID] = chain
			}
			apply(chain, mv, txn.Timestamp)
		}
	}

	return chains
}

func apply(chain *domain.AcquisitionChain, mv domain.PlayerMovement, ts int64) {
	switch mv.Action {
	case domain.ActionAdd:
		if !mv.SourceKind.IsPool() {
			return
		}
		dest := teamOf(mv.DestTeam)
		chain.Events = append(chain.Events, domain.AcquisitionEvent{
			Type:      domain.EventFAPickup,
			Team:      dest,
			Source:    mv.SourceKind,
			Timestamp: ts,
		})
		chain.LastTeam = dest

	case domain.ActionDrop:
		source := teamOf(mv.SourceTeam)
		if source == "" {
			source = chain.LastTeam
		}
		chain.Events = append(chain.Events, domain.AcquisitionEvent{
			Type:      domain.EventDrop,
			Team:      source,
			Timestamp: ts,
		})

	case domain.ActionTrade:
		dest := teamOf(mv.DestTeam)
		chain.Events = append(chain.Events, domain.AcquisitionEvent{
			Type:      domain.EventTrade,
			FromTeam:  teamOf(mv.SourceTeam),
			ToTeam:    dest,
			Timestamp: ts,
		})
		chain.LastTeam = dest
	}
}

func teamOf(teamKey string) string {
	if teamKey == "" {
		return ""
	}
	return league.TeamNumber(teamKey)
}
