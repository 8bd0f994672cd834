package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/prismscan/internal/history"
	"github.com/csheth/prismscan/internal/report"
)

func (m *model) View() string {
	parts := []string{m.heroView()}
	if m.phase == phaseRendered {
		parts = append(parts, m.viewport.View())
	}
	parts = append(parts, m.composerPanel())
	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		message := m.infoMessage
		if m.phase == phaseLoading {
			message = fmt.Sprintf("%s %s", m.spinner.View(), message)
		}
		parts = append(parts, helperStyle.Render(message))
	}
	parts = append(parts, m.feedPanel(), m.keyLegendView())
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderLogo(),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) composerPanel() string {
	var active textinput.Model
	label := "Composer · text"
	if m.mode == modeImage {
		active = m.pathInput
		label = "Composer · image"
	} else {
		active = m.messageInput
	}
	lines := []string{
		sectionHeaderStyle.Render(label),
		active.View(),
	}
	if m.staged != nil {
		lines = append(lines, helperStyle.Render("Staged: "+m.staged.Describe()))
	}
	return joinNonEmpty(lines)
}

// buildReportContent assembles the viewport body from the projected regions.
// Hidden regions are skipped entirely; the region order is fixed upstream.
func (m *model) buildReportContent() string {
	wrap := m.wrapWidth(2)
	var b strings.Builder
	first := true
	for _, region := range m.regions {
		if !region.Visible {
			continue
		}
		if !first {
			b.WriteString("\n\n")
		}
		first = false
		if region.Title != "" {
			b.WriteString(sectionHeaderStyle.Render(region.Title))
			b.WriteRune('\n')
		}
		content := region.Content
		switch region.ID {
		case report.RegionExplanation, report.RegionExtractedText:
			content = wordwrap.String(content, wrap)
		}
		b.WriteString(content)
	}
	return b.String()
}

func (m *model) feedPanel() string {
	return joinNonEmpty([]string{
		sectionHeaderStyle.Render("Recent Scans"),
		history.Render(m.feed),
	})
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"Enter", "Scan"},
		{"Tab", "Text/image mode"},
		{"Ctrl+R", "Rescan staged"},
		{"↑/↓", "Scroll report"},
		{"Ctrl+C", "Quit"},
	}
	var cells []string
	for _, hint := range hints {
		key := keyStyle.Render(hint.Key)
		desc := keyDescStyle.Render(" " + hint.Description)
		cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *model) wrapWidth(padding int) int {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	heroAccentColor        = lipgloss.Color("#27c3b0")
	heroInkColor           = lipgloss.Color("#03201c")
	heroTextColor          = lipgloss.Color("#e6fffa")
	heroSecondaryTextColor = lipgloss.Color("#7fe0d0")

	taglineStyle       = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	keyStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(heroAccentColor).Padding(0, 1)
	keyDescStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4")).PaddingRight(2)
	logoFaceStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroInkColor)
	logoContainerStyle = lipgloss.NewStyle().Padding(0, 1)

	logoArtLines = []string{
		"██████╗   ██████╗   ██╗  ███████╗  ███╗   ███╗",
		"██╔══██╗  ██╔══██╗  ██║  ██╔════╝  ████╗ ████║",
		"██████╔╝  ██████╔╝  ██║  ███████╗  ██╔████╔██║",
		"██╔═══╝   ██╔══██╗  ██║  ╚════██║  ██║╚██╔╝██║",
		"██║       ██║  ██║  ██║  ███████║  ██║ ╚═╝ ██║",
		"╚═╝       ╚═╝  ╚═╝  ╚═╝  ╚══════╝  ╚═╝     ╚═╝",
	}
)

func renderLogo() string {
	lines := make([]string, len(logoArtLines))
	for i, line := range logoArtLines {
		lines[i] = logoFaceStyle.Render(line)
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}
