package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/prismscan/internal/analysis"
	"github.com/csheth/prismscan/internal/report"
)

// EmptyPlaceholder is shown when the service has no scans on record yet.
const EmptyPlaceholder = "No recent scans yet."

// Timestamp layouts the service has been seen emitting.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

var (
	dangerIconStyle  = lipgloss.NewStyle().Bold(true).Blink(true).Foreground(lipgloss.Color("9"))
	warningIconStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	safeIconStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sourceStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

// Render formats the recent-scans feed, one row per entry in the order the
// service returned them (newest first).
func Render(entries []analysis.HistoryEntry) string {
	if len(entries) == 0 {
		return placeholderStyle.Render(EmptyPlaceholder)
	}
	rows := make([]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, renderRow(entry))
	}
	return strings.Join(rows, "\n")
}

func renderRow(entry analysis.HistoryEntry) string {
	language := report.EscapeText(report.ResolveLanguageDisplayName(entry.LanguageCode, entry.Language))
	return fmt.Sprintf("%s %s %-12s %-10s %s",
		riskIcon(entry.RiskLevel),
		sourceStyle.Render(sourceMarker(entry.Source)),
		language,
		report.EscapeText(entry.RiskLevel),
		shortTime(entry.Timestamp),
	)
}

// riskIcon picks the feed icon for a risk level; the danger icon carries a
// pulsing treatment.
func riskIcon(riskLevel string) string {
	switch strings.ToUpper(strings.TrimSpace(riskLevel)) {
	case "SCAM", analysis.RiskHigh:
		return dangerIconStyle.Render("●")
	case "SUSPICIOUS", analysis.RiskMedium:
		return warningIconStyle.Render("▲")
	default:
		return safeIconStyle.Render("✔")
	}
}

func sourceMarker(source string) string {
	switch source {
	case analysis.SourceImage:
		return "IMG"
	case "url":
		return "URL"
	default:
		return "TXT"
	}
}

// shortTime renders a local short time string, falling back to the raw wire
// value when no known layout matches.
func shortTime(timestamp string) string {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, timestamp); err == nil {
			return parsed.Local().Format("15:04")
		}
	}
	return timestamp
}
