// Package scoring computes a lead's temperature score from its qualification
// answers and recorded interaction history. The engine is a pure function:
// callers fetch the inputs, pass the evaluation time explicitly, and persist
// the result themselves.
package scoring

import (
	"time"

	"conectaleads_backend/internal/leads/domain"
)

const (
	// scoreVersion tracks the scoring model for debugging and analysis.
	// Bump this when changing scoring rules.
	scoreVersion = "2026-v1"

	// Fixed-point additive bonuses and penalties. Scores start at zero;
	// each rule adds its contribution and the sum is clamped at zero.
	urgencyBonus          = 40
	specificInterestBonus = 25
	definedInterestBonus  = 15
	stalenessPenalty      = 10
	offerClickBonus       = 10
	whatsAppClickBonus    = 15

	// staleAfter is how long a lead may go without contact before the
	// staleness penalty applies. Leads with no contact record at all are
	// not penalized.
	staleAfter = 24 * time.Hour
)

// Version returns the current scoring model version string.
func Version() string { return scoreVersion }

// Compute returns the lead's score given its qualification (nil when the lead
// was never qualified) and full interaction history, evaluated at now.
// Interaction order is irrelevant; only per-type counts matter. The result is
// never negative and has no upper bound.
func Compute(lead domain.Lead, qual *domain.Qualification, interactions []domain.Interaction, now time.Time) int {
	score := 0

	if qual != nil && qual.HighUrgency() {
		score += urgencyBonus
	}

	if (qual != nil && qual.InterestType == domain.InterestSpecific) || priceInquiry(lead) {
		score += specificInterestBonus
	}

	if qual != nil && qual.CategoryInterest != "" && qual.BudgetRange != "" {
		score += definedInterestBonus
	}

	if lead.LastContactAt != nil && now.Sub(*lead.LastContactAt) > staleAfter {
		score -= stalenessPenalty
	}

	for _, interaction := range interactions {
		switch interaction.Type {
		case domain.InteractionOfferClick:
			score += offerClickBonus
		case domain.InteractionWhatsAppClick:
			score += whatsAppClickBonus
		}
	}

	if score < 0 {
		return 0
	}
	return score
}

func priceInquiry(lead domain.Lead) bool {
	return lead.LastMessageIntent != nil && *lead.LastMessageIntent == domain.IntentPriceInquiry
}
