package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPreviewOf(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "short body unchanged",
			body: "oi, quanto custa?",
			want: "oi, quanto custa?",
		},
		{
			name: "ascii body cut at the limit",
			body: strings.Repeat("a", 200),
			want: strings.Repeat("a", 120),
		},
		{
			// "çã" is 2 bytes per rune: byte 120 falls inside the rune
			// starting at byte 119, so the cut backs up to 119.
			name: "multi-byte rune not split",
			body: strings.Repeat("a", 119) + strings.Repeat("ç", 40),
			want: strings.Repeat("a", 119),
		},
		{
			name: "limit on rune boundary keeps full rune",
			body: strings.Repeat("ç", 60) + strings.Repeat("x", 60),
			want: strings.Repeat("ç", 60),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := previewOf(tt.body)
			if got != tt.want {
				t.Fatalf("previewOf: got %d bytes %q, want %d bytes", len(got), got, len(tt.want))
			}
			if !utf8.ValidString(got) {
				t.Fatalf("preview is not valid UTF-8: %q", got)
			}
		})
	}
}
