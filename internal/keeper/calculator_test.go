package keeper

import (
	"strings"
	"testing"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/league"
	"keeper-ledger/internal/rank"
)

func newCalculator(t *testing.T) *Calculator {
	t.Helper()
	l, err := league.New(league.Options{
		DraftOrder: []string{
			"Pudge", "Alex", "Nick", "Tim", "Jason", "Ryan",
			"Matt", "Dave", "Chris", "Mike", "Josh", "Ben",
		},
		NARounds: []int{24, 25, 26, 27},
		Teams:    map[string]string{"1": "Pudge", "2": "Alex", "7": "Matt"},
	})
	if err != nil {
		t.Fatalf("league.New: %v", err)
	}
	return NewCalculator(l)
}

func ranked(r int) rank.Match {
	return rank.Match{Rank: &r, Source: rank.SourceExact}
}

func ptr(v int) *int { return &v }

func record(status domain.KeeperStatus) domain.KeeperRecord {
	return domain.KeeperRecord{PlayerID: "p1", PlayerName: "Test Player", TeamKey: "458.l.5221.t.1", Status: status}
}

func TestRankToRound(t *testing.T) {
	c := newCalculator(t)

	tests := []struct {
		rank *int
		want int
	}{
		{ptr(1), 1},
		{ptr(12), 1},
		{ptr(13), 2},
		{ptr(30), 3},
		{ptr(276), 23},
		{ptr(500), 23},
		{ptr(0), 23},
		{nil, 23},
	}
	for _, tt := range tests {
		if got := c.RankToRound(tt.rank); got != tt.want {
			t.Errorf("RankToRound(%v) = %d, want %d", tt.rank, got, tt.want)
		}
	}
}

func TestCalculate_DraftedFirstYear(t *testing.T) {
	c := newCalculator(t)
	res := c.Calculate(Input{
		Record: record(domain.StatusKeeping),
		Trace: &domain.AcquisitionTrace{
			Holder:               "1",
			Method:               domain.MethodDrafted,
			ContractOrigin:       domain.OriginDrafted,
			DraftRound:           ptr(5),
			OriginalDraftRound:   ptr(5),
			OriginalDraftingTeam: "1",
		},
		Rank: ranked(8),
	})

	if res.Cost == nil || *res.Cost != 5 {
		t.Fatalf("cost = %v, want 5", res.Cost)
	}
	if res.Continuing {
		t.Error("expected first-year keeper")
	}
	if !strings.Contains(res.Rationale[0], "drafted round 5 by Pudge") {
		t.Errorf("rationale[0] = %q", res.Rationale[0])
	}
}

func TestCalculate_Keeping7thUsesMarketValue(t *testing.T) {
	c := newCalculator(t)
	res := c.Calculate(Input{
		Record: record(domain.StatusKeeping7th),
		Trace: &domain.AcquisitionTrace{
			Method:         domain.MethodDrafted,
			ContractOrigin: domain.OriginDrafted,
			DraftRound:     ptr(15),
		},
		Rank: ranked(30),
	})

	if res.Cost == nil || *res.Cost != 3 {
		t.Fatalf("cost = %v, want 3", res.Cost)
	}
	if len(res.Rationale) != 1 {
		t.Errorf("rationale = %v", res.Rationale)
	}
}

func TestCalculate_Keeping7thWithoutRank(t *testing.T) {
	c := newCalculator(t)
	res := c.Calculate(Input{Record: record(domain.StatusKeeping7th), Rank: rank.Match{Source: rank.SourceNone}})
	if res.Cost == nil || *res.Cost != 23 {
		t.Fatalf("cost = %v, want 23", res.Cost)
	}
}

func TestCalculate_DropProtection(t *testing.T) {
	c := newCalculator(t)

	tests := []struct {
		name          string
		originalRound *int
		rank          int
		want          int
	}{
		{"capped by market value", ptr(4), 20, 2},
		{"capped by original draft round", ptr(1), 20, 1},
		{"no original draft round", nil, 20, 2},
		{"outside protected ranks", ptr(3), 61, 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Calculate(Input{
				Record: record(domain.StatusKeeping),
				Trace: &domain.AcquisitionTrace{
					Holder:                  "1",
					Method:                  domain.MethodFAPickup,
					ContractOrigin:          domain.OriginFAPickup,
					OriginalDraftRound:      tt.originalRound,
					WasDroppedAndReacquired: true,
				},
				Rank: ranked(tt.rank),
			})
			if res.Cost == nil || *res.Cost != tt.want {
				t.Fatalf("cost = %v, want %d (rationale %v)", res.Cost, tt.want, res.Rationale)
			}
		})
	}
}

func TestCalculate_DropProtectionOnlyLowersWaiverTier(t *testing.T) {
	c := newCalculator(t)
	// Drafted round 3, traded, dropped and re-added by the drafter: the
	// contract restarts as a pickup, then protection applies.
	res := c.Calculate(Input{
		Record: record(domain.StatusKeeping),
		Trace: &domain.AcquisitionTrace{
			Method:                  domain.MethodFAPickup,
			ContractOrigin:          domain.OriginFAPickup,
			OriginalDraftRound:      ptr(3),
			WasDroppedAndReacquired: true,
		},
		Rank: ranked(50),
	})
	if *res.Cost != 3 {
		t.Fatalf("cost = %d, want 3", *res.Cost)
	}
	last := res.Rationale[len(res.Rationale)-1]
	if !strings.HasPrefix(last, "drop protection") {
		t.Errorf("last rationale = %q", last)
	}
}

func TestCalculate_KeepingNAExcluded(t *testing.T) {
	c := newCalculator(t)
	res := c.Calculate(Input{Record: record(domain.StatusKeepingNA), Rank: ranked(5)})
	if res.Cost != nil {
		t.Fatalf("cost = %d, want nil", *res.Cost)
	}
	if len(res.Rationale) != 1 {
		t.Errorf("rationale = %v", res.Rationale)
	}
}

func keptBy(team string) *domain.ContinuingKeeper {
	return &domain.ContinuingKeeper{PlayerID: "p1", PreviousTeam: team, CurrentTeam: "1", DraftRound: 2, PreviouslyDrafted: true}
}

func TestCalculate_Continuing(t *testing.T) {
	c := newCalculator(t)
	trace := &domain.AcquisitionTrace{
		Method:         domain.MethodDrafted,
		ContractOrigin: domain.OriginDrafted,
		DraftRound:     ptr(2),
	}

	res := c.Calculate(Input{Record: record(domain.StatusKeeping), Trace: trace, Rank: ranked(100), Continuing: keptBy("1")})
	if !res.Continuing || *res.Cost != 9 {
		t.Fatalf("continuing=%v cost=%d, want true/9", res.Continuing, *res.Cost)
	}

	res = c.Calculate(Input{Record: record(domain.StatusKeeping), Trace: trace, Continuing: keptBy("1")})
	if *res.Cost != 23 {
		t.Fatalf("continuing without rank cost = %d, want 23", *res.Cost)
	}
}

func TestCalculate_ContinuingResetByDrop(t *testing.T) {
	c := newCalculator(t)
	res := c.Calculate(Input{
		Record: record(domain.StatusKeeping),
		Trace: &domain.AcquisitionTrace{
			Method:                  domain.MethodFAPickup,
			ContractOrigin:          domain.OriginFAPickup,
			WasDroppedAndReacquired: true,
		},
		Rank:       ranked(200),
		Continuing: keptBy("1"),
	})
	if res.Continuing {
		t.Fatal("drop should reset continuing status")
	}
	if *res.Cost != 23 {
		t.Fatalf("cost = %d, want 23", *res.Cost)
	}
}

func TestCalculate_ContinuingTradedOffseason(t *testing.T) {
	c := newCalculator(t)
	kept := keptBy("7")
	kept.TradedOffseason = true

	res := c.Calculate(Input{
		Record: record(domain.StatusKeeping),
		Trace: &domain.AcquisitionTrace{
			Method:         domain.MethodDrafted,
			ContractOrigin: domain.OriginDrafted,
			DraftRound:     ptr(2),
		},
		Rank:       ranked(30),
		Continuing: kept,
	})
	if !res.Continuing || !res.TradedOffseason {
		t.Fatalf("continuing=%v traded=%v, want both true", res.Continuing, res.TradedOffseason)
	}
	if *res.Cost != 3 {
		t.Errorf("cost = %d, want 3", *res.Cost)
	}
	want := "continuing keeper: kept by Matt last season, moved to Pudge in an offseason trade"
	found := false
	for _, step := range res.Rationale {
		if step == want {
			found = true
		}
	}
	if !found {
		t.Errorf("rationale %v missing %q", res.Rationale, want)
	}
}

func TestCalculate_ContinuingUndrafted(t *testing.T) {
	c := newCalculator(t)
	kept := keptBy("1")
	kept.PreviouslyDrafted = false

	res := c.Calculate(Input{
		Record:     record(domain.StatusKeeping),
		Trace:      &domain.AcquisitionTrace{Method: domain.MethodDrafted, ContractOrigin: domain.OriginDrafted, DraftRound: ptr(20)},
		Rank:       ranked(50),
		Continuing: kept,
	})
	if res.TradedOffseason {
		t.Error("same team keeper must not be flagged as traded")
	}
	if !strings.Contains(strings.Join(res.Rationale, "|"), "kept by Pudge last season after going undrafted") {
		t.Errorf("unexpected rationale: %v", res.Rationale)
	}
}

func TestCalculate_UnknownOrigin(t *testing.T) {
	c := newCalculator(t)

	res := c.Calculate(Input{Record: record(domain.StatusKeeping), Rank: ranked(40)})
	if *res.Cost != 23 {
		t.Fatalf("cost = %d, want 23", *res.Cost)
	}
	if !strings.Contains(res.Rationale[len(res.Rationale)-1], "manual review") {
		t.Errorf("rationale = %v", res.Rationale)
	}

	res = c.Calculate(Input{
		Record:  record(domain.StatusKeeping),
		Rank:    ranked(40),
		Drafted: &domain.DraftResult{PlayerID: "p1", Round: 11, Pick: 130, TeamKey: "458.l.5221.t.7"},
	})
	if *res.Cost != 11 {
		t.Fatalf("cost with draft fallback = %d, want 11", *res.Cost)
	}
	if !strings.Contains(res.Rationale[0], "round 11 by Matt") {
		t.Errorf("rationale[0] = %q", res.Rationale[0])
	}
}
