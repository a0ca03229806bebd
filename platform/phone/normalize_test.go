package phone

import "testing"

func TestNormalizeE164_BrazilianLandlineAndMobile(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"(11) 91234-5678", "+5511912345678"},
		{"11 91234 5678", "+5511912345678"},
		{"+55 11 91234-5678", "+5511912345678"},
	}

	for _, tc := range cases {
		if got := NormalizeE164(tc.input); got != tc.want {
			t.Fatalf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeE164_InvalidInputReturnsTrimmed(t *testing.T) {
	if got := NormalizeE164("  not-a-number  "); got != "not-a-number" {
		t.Fatalf("expected trimmed passthrough, got %q", got)
	}
	if got := NormalizeE164("   "); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
