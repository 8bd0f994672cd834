package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/prismscan/internal/analysis"
)

const (
	badgeMarker = "⚑ "
	barWidth    = 30
	maxKeywords = 10
	maxWarnings = 3
	maxOCRLangs = 3
	imageNoLang = "Undetermined"
	yesLabel    = "Yes"
	noLabel     = "No"
)

var (
	dangerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	safeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	scamFill     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	safeFill     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Project maps a normalized analysis result onto the ordered set of view
// regions. It is pure: no network, no mutation of the result, and projecting
// the same result twice yields identical regions. Hidden regions are emitted
// with Visible=false so callers replace rather than accumulate sections.
func Project(res analysis.Result) []Region {
	return []Region{
		extractedTextRegion(res),
		badgeRegion(res),
		gaugeRegion(res),
		confidenceRegion(res),
		languageRegion(res),
		statsRegion(res),
		explanationRegion(res),
		indicatorsRegion(res),
		urlScansRegion(res),
		keywordsRegion(res),
		urlsRegion(res),
		phonesRegion(res),
	}
}

// extractedTextRegion leads the report for image submissions whose OCR pass
// produced text.
func extractedTextRegion(res analysis.Result) Region {
	region := Region{ID: RegionExtractedText, Title: "Extracted Text"}
	if res.ExtractedText == "" {
		return region
	}
	var b strings.Builder
	b.WriteString(EscapeText(res.ExtractedText))
	if meta := res.OCRMetadata; meta != nil {
		langs := meta.LanguagesChecked
		if len(langs) > maxOCRLangs {
			langs = langs[:maxOCRLangs]
		}
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf(
			"OCR: %d words · %.0f%% confidence · languages: %s",
			meta.WordsDetected, meta.AverageConfidence, EscapeText(strings.Join(langs, ", ")),
		)))
	}
	region.Visible = true
	region.Content = b.String()
	return region
}

func badgeRegion(res analysis.Result) Region {
	style := dangerStyle
	switch res.Prediction {
	case analysis.PredictionSafe:
		style = safeStyle
	case analysis.PredictionSuspicious:
		style = warningStyle
	}
	return Region{
		ID:      RegionBadge,
		Visible: true,
		Content: style.Render(badgeMarker + EscapeText(res.Prediction)),
	}
}

func gaugeRegion(res analysis.Result) Region {
	score := analysis.ClampScore(res.RiskScore)
	style := safeStyle
	switch {
	case score >= 70:
		style = dangerStyle
	case score >= 40:
		style = warningStyle
	}
	filled := score * barWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return Region{
		ID:      RegionGauge,
		Title:   "Risk Score",
		Visible: true,
		Content: fmt.Sprintf("%s %s", style.Render(bar), style.Render(fmt.Sprintf("%d/100", score))),
	}
}

// confidenceRegion splits a fixed-width bar at the scam percentage. The two
// confidence values need not sum to 100; whatever the scam share leaves over
// is drawn in the safe color.
func confidenceRegion(res analysis.Result) Region {
	boundary := int(res.Confidence.Scam * barWidth / 100)
	if boundary < 0 {
		boundary = 0
	}
	if boundary > barWidth {
		boundary = barWidth
	}
	bar := scamFill.Render(strings.Repeat("▰", boundary)) + safeFill.Render(strings.Repeat("▰", barWidth-boundary))
	return Region{
		ID:      RegionConfidence,
		Title:   "Confidence",
		Visible: true,
		Content: fmt.Sprintf("%s  Scam %.1f%% / Safe %.1f%%", bar, res.Confidence.Scam, res.Confidence.Safe),
	}
}

func languageRegion(res analysis.Result) Region {
	fallback := res.Language
	if fallback == "" && res.Source == analysis.SourceImage {
		fallback = imageNoLang
	}
	return Region{
		ID:      RegionLanguage,
		Title:   "Language",
		Visible: true,
		Content: EscapeText(ResolveLanguageDisplayName(res.LanguageCode, fallback)),
	}
}

func statsRegion(res analysis.Result) Region {
	return Region{
		ID:      RegionStats,
		Title:   "Message Stats",
		Visible: true,
		Content: fmt.Sprintf("Characters %d · Words %d · URLs %d · Phones %d",
			res.Stats.Characters, res.Stats.Words, res.Stats.URLs, res.Stats.Phones),
	}
}

func explanationRegion(res analysis.Result) Region {
	return Region{
		ID:      RegionExplanation,
		Title:   "Why",
		Visible: true,
		Content: EscapeText(res.Explanation),
	}
}

// indicatorsRegion renders the six flags independently; no indicator's
// display depends on another.
func indicatorsRegion(res analysis.Result) Region {
	flags := []struct {
		label string
		set   bool
	}{
		{"Urgency", res.Indicators.Urgency},
		{"Financial terms", res.Indicators.FinancialTerms},
		{"Action required", res.Indicators.ActionRequired},
		{"Threats", res.Indicators.Threats},
		{"Personal info request", res.Indicators.PersonalInfoRequest},
		{"Contains URLs", res.Indicators.ContainsURLs},
	}
	lines := make([]string, 0, len(flags))
	for _, flag := range flags {
		value := successStyle.Render(noLabel)
		if flag.set {
			value = dangerStyle.Render(yesLabel)
		}
		lines = append(lines, fmt.Sprintf("%-22s %s", flag.label, value))
	}
	return Region{
		ID:      RegionIndicators,
		Title:   "Indicators",
		Visible: true,
		Content: strings.Join(lines, "\n"),
	}
}

func urlScansRegion(res analysis.Result) Region {
	region := Region{ID: RegionURLScans, Title: "URL Scans"}
	if len(res.URLScans) == 0 {
		return region
	}
	var b strings.Builder
	for i, scan := range res.URLScans {
		if i > 0 {
			b.WriteString("\n")
		}
		style := successStyle
		switch scan.RiskLevel {
		case analysis.RiskHigh:
			style = dangerStyle
		case analysis.RiskMedium:
			style = warningStyle
		}
		score := analysis.ClampScore(scan.RiskScore)
		filled := score * barWidth / 100
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		b.WriteString(fmt.Sprintf("%s %s\n", style.Render(scan.RiskLevel), codeStyle.Render(EscapeText(scan.URL))))
		b.WriteString(fmt.Sprintf("  %s %d/100\n", style.Render(bar), score))
		warnings := scan.Warnings
		if len(warnings) > maxWarnings {
			warnings = warnings[:maxWarnings]
		}
		for _, warning := range warnings {
			b.WriteString(mutedStyle.Render("  ⚠ " + EscapeText(warning)))
			b.WriteString("\n")
		}
	}
	region.Visible = true
	region.Content = strings.TrimRight(b.String(), "\n")
	return region
}

func keywordsRegion(res analysis.Result) Region {
	region := Region{ID: RegionKeywords, Title: "Suspicious Keywords"}
	if len(res.SuspiciousKeywords) == 0 {
		return region
	}
	keywords := res.SuspiciousKeywords
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	escaped := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		escaped = append(escaped, EscapeText(keyword))
	}
	region.Visible = true
	region.Content = strings.Join(escaped, " · ")
	return region
}

func urlsRegion(res analysis.Result) Region {
	return tokenListRegion(RegionURLs, "URLs Found", res.URLsFound)
}

func phonesRegion(res analysis.Result) Region {
	return tokenListRegion(RegionPhones, "Phone Numbers Found", res.PhoneNumbersFound)
}

// tokenListRegion renders each value as a literal, non-clickable token, one
// per line, with no truncation.
func tokenListRegion(id RegionID, title string, values []string) Region {
	region := Region{ID: id, Title: title}
	if len(values) == 0 {
		return region
	}
	lines := make([]string, 0, len(values))
	for _, value := range values {
		lines = append(lines, codeStyle.Render(EscapeText(value)))
	}
	region.Visible = true
	region.Content = strings.Join(lines, "\n")
	return region
}
