package intent

import "testing"

func TestDetect_PriceInquiry(t *testing.T) {
	cases := []string{
		"Qual o preço desse produto?",
		"qual o preco?",
		"Quanto custa o kit completo",
		"Tem cupom de desconto?",
		"oi, qual o VALOR do frete",
		"how much is it?",
	}
	for _, body := range cases {
		if got := Detect(body); got != PriceInquiry {
			t.Fatalf("Detect(%q) = %q, expected price_inquiry", body, got)
		}
	}
}

func TestDetect_NoIntent(t *testing.T) {
	cases := []string{
		"",
		"Olá, tudo bem?",
		"Pode me mandar mais fotos?",
		"Obrigado!",
	}
	for _, body := range cases {
		if got := Detect(body); got != None {
			t.Fatalf("Detect(%q) = %q, expected no intent", body, got)
		}
	}
}

func TestDetect_CaseInsensitive(t *testing.T) {
	if Detect("QUANTO CUSTA?") != PriceInquiry {
		t.Fatal("detection must be case-insensitive")
	}
}
