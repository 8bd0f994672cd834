package report

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/csheth/prismscan/internal/analysis"
)

// ResolveLanguageDisplayName maps an ISO-like language code to its display
// name, title-casing only the first character. Empty or unknown codes, parse
// failures, and codes the display tables cannot name all fall back silently
// to the fallback string.
func ResolveLanguageDisplayName(code, fallback string) string {
	code = strings.TrimSpace(code)
	if code == "" || strings.EqualFold(code, analysis.LanguageUnknown) {
		return fallback
	}
	tag, err := language.Parse(code)
	if err != nil {
		return fallback
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return fallback
	}
	return titleFirst(name)
}

func titleFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
