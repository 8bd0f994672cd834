package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/prismscan/internal/input"
)

func (m *model) submitTextCmd(staged *input.StagedInput) tea.Cmd {
	client := m.config.Client
	message := staged.Text
	return m.bus.Start(jobKindAnalyzeText, func(ctx context.Context) (tea.Msg, error) {
		result, err := client.SubmitText(ctx, message)
		return analysisResultMsg{result: result, err: err}, err
	})
}

func (m *model) submitImageCmd(staged *input.StagedInput) tea.Cmd {
	client := m.config.Client
	filename := staged.Filename
	data := staged.Data
	return m.bus.Start(jobKindAnalyzeImage, func(ctx context.Context) (tea.Msg, error) {
		result, err := client.SubmitImage(ctx, filename, data)
		return analysisResultMsg{result: result, err: err}, err
	})
}

// dispatchHistoryFetch starts one feed fetch. The sequence number it stamps
// on the response lets the model drop anything staler than the newest
// dispatched fetch, so a slow timer fetch cannot overwrite the post-submit
// refresh.
func (m *model) dispatchHistoryFetch() tea.Cmd {
	m.lastFetchSeq++
	seq := m.lastFetchSeq
	client := m.config.Client
	limit := m.config.HistoryLimit
	return m.bus.Start(jobKindHistory, func(ctx context.Context) (tea.Msg, error) {
		entries, err := client.RecentReports(ctx, limit)
		if err != nil {
			return historyResultMsg{seq: seq, err: err}, err
		}
		return historyResultMsg{seq: seq, entries: entries}, nil
	})
}

func (m *model) scheduleHistoryTick() tea.Cmd {
	return tea.Tick(m.config.PollInterval, func(time.Time) tea.Msg {
		return historyTickMsg{}
	})
}

func (m *model) scheduleHistoryRefresh() tea.Cmd {
	return tea.Tick(m.config.RefreshDelay, func(time.Time) tea.Msg {
		return historyRefreshMsg{}
	})
}
