package report

import "testing"

func TestResolveLanguageDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     string
		fallback string
		want     string
	}{
		{"english", "en", "raw", "English"},
		{"spanish", "es", "raw", "Spanish"},
		{"unknown sentinel", "unknown", "Detected Language", "Detected Language"},
		{"unknown sentinel case-insensitive", "UNKNOWN", "raw", "raw"},
		{"empty code", "", "raw", "raw"},
		{"garbage code", "not a code!!", "raw", "raw"},
		{"whitespace code", "   ", "raw", "raw"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveLanguageDisplayName(tt.code, tt.fallback); got != tt.want {
				t.Fatalf("ResolveLanguageDisplayName(%q, %q) = %q, want %q", tt.code, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestTitleFirstOnlyUppercasesLeadingRune(t *testing.T) {
	t.Parallel()

	if got := titleFirst("norwegian bokmål"); got != "Norwegian bokmål" {
		t.Fatalf("titleFirst = %q", got)
	}
	if got := titleFirst(""); got != "" {
		t.Fatalf("titleFirst(\"\") = %q", got)
	}
}
