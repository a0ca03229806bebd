package scoring

import (
	"testing"
	"time"

	"conectaleads_backend/internal/leads/domain"
)

var evalTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func interactionsOf(types ...string) []domain.Interaction {
	items := make([]domain.Interaction, 0, len(types))
	for _, t := range types {
		items = append(items, domain.Interaction{Type: t})
	}
	return items
}

func TestCompute_UrgentSpecificInterest(t *testing.T) {
	qual := &domain.Qualification{
		Urgency:      domain.UrgencyBuyToday,
		InterestType: domain.InterestSpecific,
	}

	score := Compute(domain.Lead{}, qual, nil, evalTime)
	if score != 65 {
		t.Fatalf("expected 40+25=65, got %d", score)
	}
}

func TestCompute_DefinedInterestRequiresBothFields(t *testing.T) {
	qual := &domain.Qualification{
		Urgency:          domain.UrgencyBuyToday,
		InterestType:     domain.InterestSpecific,
		CategoryInterest: "eletrônicos",
		BudgetRange:      "500-1000",
	}

	if score := Compute(domain.Lead{}, qual, nil, evalTime); score != 80 {
		t.Fatalf("expected 65+15=80, got %d", score)
	}

	qual.BudgetRange = ""
	if score := Compute(domain.Lead{}, qual, nil, evalTime); score != 65 {
		t.Fatalf("expected no defined-interest bonus without budget, got %d", score)
	}
}

func TestCompute_ClicksOutweighStaleness(t *testing.T) {
	stale := evalTime.Add(-25 * time.Hour)
	lead := domain.Lead{LastContactAt: &stale}
	interactions := interactionsOf(
		domain.InteractionOfferClick,
		domain.InteractionOfferClick,
		domain.InteractionWhatsAppClick,
	)

	if score := Compute(lead, nil, interactions, evalTime); score != 25 {
		t.Fatalf("expected -10+20+15=25, got %d", score)
	}
}

func TestCompute_ClampsAtZero(t *testing.T) {
	stale := evalTime.Add(-25 * time.Hour)
	lead := domain.Lead{LastContactAt: &stale}

	if score := Compute(lead, nil, nil, evalTime); score != 0 {
		t.Fatalf("expected clamp to 0, got %d", score)
	}
}

func TestCompute_NoPenaltyWithoutContactRecord(t *testing.T) {
	if score := Compute(domain.Lead{}, nil, nil, evalTime); score != 0 {
		t.Fatalf("expected 0 for empty inputs, got %d", score)
	}

	recent := evalTime.Add(-1 * time.Hour)
	if score := Compute(domain.Lead{LastContactAt: &recent}, nil, nil, evalTime); score != 0 {
		t.Fatalf("expected no penalty for recent contact, got %d", score)
	}
}

func TestCompute_PriceInquiryIntentCountsAsSpecificInterest(t *testing.T) {
	intent := domain.IntentPriceInquiry
	lead := domain.Lead{LastMessageIntent: &intent}

	if score := Compute(lead, nil, nil, evalTime); score != 25 {
		t.Fatalf("expected 25 for price inquiry intent, got %d", score)
	}

	// Intent and specific interest do not stack.
	qual := &domain.Qualification{InterestType: domain.InterestSpecific}
	if score := Compute(lead, qual, nil, evalTime); score != 25 {
		t.Fatalf("expected 25, intent and interest must not stack, got %d", score)
	}
}

func TestCompute_OfferClickMonotonicity(t *testing.T) {
	interactions := []domain.Interaction{}
	prev := Compute(domain.Lead{}, nil, interactions, evalTime)
	for i := 0; i < 5; i++ {
		interactions = append(interactions, domain.Interaction{Type: domain.InteractionOfferClick})
		next := Compute(domain.Lead{}, nil, interactions, evalTime)
		if next != prev+10 {
			t.Fatalf("click %d: expected %d, got %d", i+1, prev+10, next)
		}
		prev = next
	}
}

func TestCompute_Deterministic(t *testing.T) {
	stale := evalTime.Add(-48 * time.Hour)
	lead := domain.Lead{LastContactAt: &stale}
	qual := &domain.Qualification{Urgency: domain.UrgencyHigh}
	interactions := interactionsOf(domain.InteractionWhatsAppClick, domain.InteractionCall)

	first := Compute(lead, qual, interactions, evalTime)
	second := Compute(lead, qual, interactions, evalTime)
	if first != second {
		t.Fatalf("expected identical results, got %d then %d", first, second)
	}
}

func TestCompute_NeverNegative(t *testing.T) {
	stale := evalTime.Add(-1000 * time.Hour)
	leads := []domain.Lead{
		{},
		{LastContactAt: &stale},
	}
	quals := []*domain.Qualification{nil, {}, {Urgency: domain.UrgencyNone}}

	for _, lead := range leads {
		for _, qual := range quals {
			if score := Compute(lead, qual, nil, evalTime); score < 0 {
				t.Fatalf("score must never be negative, got %d", score)
			}
		}
	}
}

func TestCompute_ScoreCanExceedHundred(t *testing.T) {
	interactions := make([]domain.Interaction, 0, 12)
	for i := 0; i < 12; i++ {
		interactions = append(interactions, domain.Interaction{Type: domain.InteractionWhatsAppClick})
	}

	if score := Compute(domain.Lead{}, nil, interactions, evalTime); score != 180 {
		t.Fatalf("expected uncapped 180, got %d", score)
	}
}

func TestClassify_CanonicalThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  Temperature
	}{
		{0, TemperatureCold},
		{39, TemperatureCold},
		{40, TemperatureWarm},
		{79, TemperatureWarm},
		{80, TemperatureHot},
		{180, TemperatureHot},
	}

	for _, tc := range cases {
		if got := Classify(tc.score); got != tc.want {
			t.Fatalf("Classify(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
