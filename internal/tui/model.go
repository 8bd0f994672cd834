package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/prismscan/internal/analysis"
	"github.com/csheth/prismscan/internal/input"
	"github.com/csheth/prismscan/internal/report"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Client       *analysis.Client
	HistoryLimit int
	PollInterval time.Duration
	RefreshDelay time.Duration
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	messageInput := textinput.New()
	messageInput.Placeholder = "Paste a suspicious message…"
	messageInput.Focus()
	messageInput.CharLimit = 2000
	messageInput.Width = 70

	pathInput := textinput.New()
	pathInput.Placeholder = "Path to a screenshot (png, jpg, …)"
	pathInput.CharLimit = 500
	pathInput.Width = 70

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	return &model{
		config:       config,
		phase:        phaseIdle,
		mode:         modeText,
		messageInput: messageInput,
		pathInput:    pathInput,
		spinner:      spin,
		viewport:     vp,
		infoMessage:  "Paste a message and press Enter to scan it.",
	}
}

type model struct {
	config Config
	phase  phase
	mode   inputMode

	messageInput textinput.Model
	pathInput    textinput.Model
	spinner      spinner.Model
	viewport     viewport.Model

	staged  *input.StagedInput
	regions []report.Region

	feed         []analysis.HistoryEntry
	lastFetchSeq int

	bus *jobBus

	infoMessage  string
	errorMessage string
}

func (m *model) Init() tea.Cmd {
	m.bus = newJobBus()
	return tea.Batch(
		textinput.Blink,
		m.dispatchHistoryFetch(),
		m.scheduleHistoryTick(),
	)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.phase == phaseLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.phase == phaseRendered {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case jobSignalMsg:
		return m, nil

	case jobResultEnvelope:
		return m.Update(msg.Payload)

	case analysisResultMsg:
		return m.handleAnalysisResult(msg)

	case historyResultMsg:
		return m.handleHistoryResult(msg)

	case historyTickMsg:
		return m, tea.Batch(m.dispatchHistoryFetch(), m.scheduleHistoryTick())

	case historyRefreshMsg:
		return m, m.dispatchHistoryFetch()

	case tea.WindowSizeMsg:
		newWidth := msg.Width - viewportHorizontalPadding
		if newWidth < minViewportWidth {
			newWidth = minViewportWidth
		}
		m.viewport.Width = newWidth
		height := msg.Height - 16
		if height < 5 {
			height = 5
		}
		m.viewport.Height = height
		m.syncViewport()
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab:
		m.toggleMode()
		return m, nil
	case tea.KeyCtrlR:
		return m.resubmitStaged()
	case tea.KeyEnter:
		return m.stageAndSubmit()
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		if m.phase == phaseRendered {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(key)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.mode == modeText {
		m.messageInput, cmd = m.messageInput.Update(key)
	} else {
		m.pathInput, cmd = m.pathInput.Update(key)
	}
	return m, cmd
}

func (m *model) toggleMode() {
	if m.mode == modeText {
		m.mode = modeImage
		m.messageInput.Blur()
		m.pathInput.Focus()
		m.infoMessage = "Image mode: enter a screenshot path and press Enter."
	} else {
		m.mode = modeText
		m.pathInput.Blur()
		m.messageInput.Focus()
		m.infoMessage = "Text mode: paste a message and press Enter."
	}
}

// stageAndSubmit validates the composer value, stages it (replacing any
// previous staged input), and dispatches the scan. Validation failures are
// surfaced immediately and cause no phase transition.
func (m *model) stageAndSubmit() (tea.Model, tea.Cmd) {
	if m.phase == phaseLoading {
		m.infoMessage = errBusy.Error() + " — wait for it to finish."
		return m, nil
	}

	var staged *input.StagedInput
	var err error
	if m.mode == modeText {
		staged, err = input.StageText(m.messageInput.Value())
	} else {
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			m.errorMessage = "Enter the path of an image to scan."
			return m, nil
		}
		staged, err = input.StageImage(path)
	}
	if err != nil {
		m.errorMessage = err.Error()
		return m, nil
	}

	m.staged = staged
	return m, m.beginSubmission()
}

// resubmitStaged re-sends whatever is currently staged. The affordance is
// purely a function of "is something staged".
func (m *model) resubmitStaged() (tea.Model, tea.Cmd) {
	if m.staged == nil {
		m.infoMessage = "Nothing staged yet. Press Enter to stage and scan."
		return m, nil
	}
	if m.phase == phaseLoading {
		m.infoMessage = errBusy.Error() + " — wait for it to finish."
		return m, nil
	}
	return m, m.beginSubmission()
}

func (m *model) beginSubmission() tea.Cmd {
	// A rendered or error phase first settles back to idle; loading is
	// entered synchronously before the request is dispatched.
	if m.phase == phaseRendered || m.phase == phaseError {
		m.phase, _ = transition(m.phase, phaseIdle)
	}
	next, err := transition(m.phase, phaseLoading)
	if err != nil {
		m.infoMessage = errBusy.Error() + " — wait for it to finish."
		return nil
	}
	m.phase = next
	m.errorMessage = ""
	m.infoMessage = "Scanning " + m.staged.Describe() + "…"

	var submit tea.Cmd
	if m.staged.Kind == input.KindText {
		submit = m.submitTextCmd(m.staged)
	} else {
		submit = m.submitImageCmd(m.staged)
	}
	return tea.Batch(m.spinner.Tick, submit)
}

func (m *model) handleAnalysisResult(msg analysisResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.phase, _ = transition(m.phase, phaseError)
		m.errorMessage = msg.err.Error()
		m.infoMessage = "Scan failed. Previous results are untouched."
		// The error is terminal for this attempt only; settle back to idle
		// so the next submission is accepted.
		m.phase, _ = transition(m.phase, phaseIdle)
		return m, nil
	}

	m.phase, _ = transition(m.phase, phaseRendered)
	m.regions = report.Project(*msg.result)
	m.errorMessage = ""
	m.infoMessage = "Scan complete. Tab switches input mode, Ctrl+R rescans."
	m.viewport.SetYOffset(0)
	m.syncViewport()
	return m, m.scheduleHistoryRefresh()
}

func (m *model) handleHistoryResult(msg historyResultMsg) (tea.Model, tea.Cmd) {
	// Drop anything staler than the newest dispatched fetch. Failures were
	// already logged by the job bus; the previous feed stays in place.
	if msg.seq != m.lastFetchSeq || msg.err != nil {
		return m, nil
	}
	m.feed = msg.entries
	return m, nil
}

func (m *model) syncViewport() {
	if m.regions == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(m.buildReportContent())
}
