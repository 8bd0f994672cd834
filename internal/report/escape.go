package report

import "strings"

var entityReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeText entity-escapes every character that could smuggle markup into a
// rendered report. All user-supplied strings (keywords, URLs, phone numbers,
// explanations, extracted text, scan warnings) pass through here before they
// reach any view surface.
func EscapeText(s string) string {
	return entityReplacer.Replace(s)
}
