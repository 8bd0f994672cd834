package tui

import (
	"errors"
	"fmt"

	"github.com/csheth/prismscan/internal/analysis"
)

// phase is the orchestrator's submission state. Only one submission may be
// in flight at a time; loading gates new submissions.
type phase int

const (
	phaseIdle phase = iota
	phaseLoading
	phaseRendered
	phaseError
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseLoading:
		return "loading"
	case phaseRendered:
		return "rendered"
	case phaseError:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// errBusy rejects submissions attempted while another scan is in flight.
var errBusy = errors.New("a scan is already in flight")

var allowedTransitions = map[phase][]phase{
	phaseIdle:     {phaseLoading},
	phaseLoading:  {phaseRendered, phaseError},
	phaseRendered: {phaseIdle},
	phaseError:    {phaseIdle},
}

// transition is the single place submission-state moves are validated.
func transition(from, to phase) (phase, error) {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return to, nil
		}
	}
	return from, fmt.Errorf("invalid phase transition %s → %s", from, to)
}

// inputMode selects which of the two staging modalities the composer feeds.
type inputMode int

const (
	modeText inputMode = iota
	modeImage
)

type analysisResultMsg struct {
	result *analysis.Result
	err    error
}

type historyResultMsg struct {
	seq     int
	entries []analysis.HistoryEntry
	err     error
}

// historyTickMsg drives the steady polling cadence.
type historyTickMsg struct{}

// historyRefreshMsg is the one-shot fetch scheduled shortly after a
// successful submission.
type historyRefreshMsg struct{}

const heroTagline = "Scan messages and screenshots for scam signals."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
)
