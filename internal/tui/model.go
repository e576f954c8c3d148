package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nakhudarahma/AccessNX/internal/announce"
	"github.com/nakhudarahma/AccessNX/internal/models"
	"github.com/nakhudarahma/AccessNX/internal/workflow"
)

const defaultTableHeight = 10

// scanDoneMsg delivers the scan outcome back to the update loop. The
// token lets the controller drop completions a newer scan superseded.
type scanDoneMsg struct {
	token  uint64
	result *models.ScanResult
	err    error
}

// Model is the top-level Bubble Tea model for the scanner TUI. All
// workflow state lives in the controller; the model holds only
// presentation state plus the applied announcement cue.
type Model struct {
	ctrl    *workflow.Controller
	coord   *announce.Coordinator
	timeout time.Duration

	input textinput.Model
	spin  spinner.Model
	table table.Model

	// ranked is the derived display order of the current result's
	// issues, rebuilt once per successful scan.
	ranked []models.Issue

	// applied cue state (the AT-visible surface)
	focus        announce.FocusTarget
	announcement string
	assertive    bool
	busy         bool
	inputInvalid bool
	resultsLabel string

	width  int
	height int
}

// New creates the TUI model and applies the mount cue: the primary
// input holds initial keyboard focus.
func New(ctrl *workflow.Controller, timeout time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "example.com"
	ti.CharLimit = 256
	ti.Width = 48

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	m := Model{
		ctrl:    ctrl,
		coord:   announce.New(),
		timeout: timeout,
		input:   ti,
		spin:    sp,
		table:   newTable(nil, defaultTableHeight),
		width:   80,
		height:  24,
	}
	m.applyCue(announce.Mount())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		if h := msg.Height - headerHeight - detailHeight - 8; h >= 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case scanDoneMsg:
		return m.handleScanDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleScanDone(msg scanDoneMsg) (tea.Model, tea.Cmd) {
	transition, ok := m.ctrl.Complete(msg.token, msg.result, msg.err)
	if !ok {
		// Stale or unexpected completion: nothing changes, nothing
		// is announced.
		return m, nil
	}

	snap := m.ctrl.Snapshot()
	if cue, ok := m.coord.Plan(transition, snap.Target, snap.Err); ok {
		m.applyCue(cue)
	}

	if snap.Result != nil {
		m.ranked = models.RankIssues(snap.Result.Issues)
		m.table.SetRows(buildRows(m.ranked))
		m.table.SetCursor(0)
	} else {
		m.ranked = nil
		m.table.SetRows(nil)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Submit):
		if m.focus == announce.FocusResults {
			return m, nil
		}
		return m.submit()

	case key.Matches(msg, keys.Results):
		if len(m.ranked) > 0 {
			m.focus = announce.FocusResults
			m.input.Blur()
			m.table.Focus()
		}
		return m, nil

	case key.Matches(msg, keys.Back):
		if m.focus == announce.FocusResults {
			m.focus = announce.FocusInput
			m.table.Blur()
			m.input.Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == announce.FocusResults {
		m.table, cmd = m.table.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// submit dispatches the raw input to the workflow controller and
// applies one cue per resulting transition.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		// The scan control is deactivated while Scanning.
		return m, nil
	}

	transitions, req := m.ctrl.Submit(m.input.Value())
	if len(transitions) == 0 {
		return m, nil
	}

	snap := m.ctrl.Snapshot()
	for _, tr := range transitions {
		if cue, ok := m.coord.Plan(tr, snap.Target, snap.Err); ok {
			m.applyCue(cue)
		}
	}

	if req == nil {
		return m, nil
	}
	m.ranked = nil
	m.table.SetRows(nil)
	return m, tea.Batch(m.spin.Tick, m.scanCmd(req))
}

// scanCmd runs the scan collaborator off the update loop and reports
// back with the request token.
func (m Model) scanCmd(req *workflow.ScanRequest) tea.Cmd {
	ctrl := m.ctrl
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		result, err := ctrl.Scanner().Scan(ctx, req.Target)
		return scanDoneMsg{token: req.Token, result: result, err: err}
	}
}

// applyCue turns a planned announcement into model state. Each cue is
// applied exactly once because the coordinator plans it exactly once.
func (m *Model) applyCue(cue announce.Cue) {
	if cue.Message != "" {
		m.announcement = cue.Message
	}
	m.assertive = cue.Politeness == announce.Assertive
	m.busy = cue.Busy
	m.inputInvalid = cue.MarkInputInvalid
	if cue.RegionLabel != "" {
		m.resultsLabel = cue.RegionLabel
	}

	switch cue.Focus {
	case announce.FocusInput:
		m.focus = announce.FocusInput
		m.table.Blur()
		m.input.Focus()
	case announce.FocusResults:
		m.focus = announce.FocusResults
		m.input.Blur()
		m.table.Focus()
	case announce.FocusError:
		// Keyboard stays on the input so the user can correct and
		// resubmit, but the perceived focus is the error region.
		m.focus = announce.FocusError
		m.table.Blur()
		m.input.Focus()
	}
}

func (m *Model) selectedIssue() *models.Issue {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.ranked) {
		return nil
	}
	return &m.ranked[cursor]
}

// View implements tea.Model.
func (m Model) View() string {
	snap := m.ctrl.Snapshot()
	var b strings.Builder

	b.WriteString(styleHeader.Width(m.width).Render("AccessNX — Website Accessibility Scanner"))
	b.WriteString("\n\n")

	// Input row with the submit control.
	b.WriteString(stylePrompt.Render("Website URL: "))
	if m.inputInvalid {
		b.WriteString(styleInputInvalid.Render(m.input.View()))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("  ")
	b.WriteString(m.renderScanButton())
	b.WriteString("\n")

	// Error region, rendered under the input it describes.
	if snap.Err != nil {
		style := styleError
		if m.focus == announce.FocusError {
			style = styleErrorFocused
		}
		b.WriteString(style.Render("✗ " + snap.Err.Error()))
		b.WriteString("\n")
	}

	// Status live region.
	if m.busy {
		b.WriteString(styleStatus.Render(m.spin.View() + " " + m.announcement))
		b.WriteString("\n")
	}

	// Results region, labeled with the scanned URL.
	if snap.Result != nil {
		b.WriteString("\n")
		b.WriteString(renderResultsHeader(snap.Result, m.width))
		b.WriteString("\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(renderDetail(m.selectedIssue(), m.width))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter(snap))
	return b.String()
}

func (m *Model) renderScanButton() string {
	if m.busy {
		return styleStatus.Render("[ scanning… ]")
	}
	return stylePrompt.Render("[ enter: scan ]")
}

func (m *Model) renderFooter(snap workflow.Snapshot) string {
	left := "ctrl+c:quit  enter:scan"
	if len(m.ranked) > 0 {
		left += "  tab:results  esc:input"
	}
	right := fmt.Sprintf("state: %s", snap.State)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return styleFooter.Render(left + strings.Repeat(" ", gap) + right)
}

// Run starts the Bubble Tea program.
func Run(ctrl *workflow.Controller, timeout time.Duration) error {
	m := New(ctrl, timeout)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
