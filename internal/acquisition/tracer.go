package acquisition

import "keeper-ledger/internal/domain"

// Trace walks a chain from the perspective of holder (a team number).
//
// Method is taken from the last event whose destination is holder. The
// contract origin is the state machine's final state. A player counts as
// dropped and reacquired when any drop precedes the holder's acquisition.
func Trace(chain *domain.AcquisitionChain, holder string) domain.AcquisitionTrace {
	trace := domain.AcquisitionTrace{
		Holder:         holder,
		Method:         domain.MethodUnknown,
		ContractOrigin: domain.OriginUnknown,
	}
	if chain == nil {
		return trace
	}
	trace.PlayerID = chain.PlayerID
	trace.OriginalDraftingTeam = chain.DraftedBy
	if round, ok := chain.DraftRound(); ok {
		trace.OriginalDraftRound = intPtr(round)
	}
	if len(chain.Events) == 0 {
		return trace
	}

	contract := NewContract()
	for i, e := range chain.Events {
		contract.Apply(i, e)
	}
	trace.ContractOrigin = contract.Origin()
	if contract.State == DraftContract {
		trace.DraftRound = intPtr(contract.Round)
	}

	acquired := -1
	for i := len(chain.Events) - 1; i >= 0; i-- {
		if chain.Events[i].Destination() == holder {
			acquired = i
			break
		}
	}
	if acquired < 0 {
		return trace
	}
	trace.Method = methodFor(chain.Events[acquired].Type)

	for i := 0; i < acquired; i++ {
		if chain.Events[i].Type == domain.EventDrop {
			trace.WasDroppedAndReacquired = true
			break
		}
	}

	return trace
}

func methodFor(t domain.AcquisitionEventType) domain.AcquisitionMethod {
	switch t {
	case domain.EventDraft:
		return domain.MethodDrafted
	case domain.EventFAPickup:
		return domain.MethodFAPickup
	case domain.EventTrade:
		return domain.MethodTraded
	default:
		return domain.MethodUnknown
	}
}

func intPtr(v int) *int {
	return &v
}
