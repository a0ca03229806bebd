// Package intent classifies inbound message text into coarse intents used by
// the scoring engine. Detection is keyword-based; messages are short chat
// turns, not documents.
package intent

import "strings"

// Intents this detector can produce.
const (
	PriceInquiry = "price_inquiry"
	None         = ""
)

// Portuguese storefront audience; keep ASCII-folded variants since mobile
// keyboards drop accents.
var priceKeywords = []string{
	"preço", "preco", "quanto custa", "quanto fica", "quanto sai",
	"valor", "cupom", "desconto", "promoção", "promocao",
	"price", "how much",
}

// Detect returns the intent of a message body, or None when no rule matches.
func Detect(body string) string {
	normalized := strings.ToLower(body)
	for _, keyword := range priceKeywords {
		if strings.Contains(normalized, keyword) {
			return PriceInquiry
		}
	}
	return None
}
