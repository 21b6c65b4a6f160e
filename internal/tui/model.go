// Package tui provides the Bubble Tea tracking interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"drillwatch/internal/identity"
	"drillwatch/internal/model"
	"drillwatch/internal/report"
	"drillwatch/internal/session"
	"drillwatch/internal/store"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	runningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7CBF6B")).Bold(true)
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
	wasteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// tickMsg carries one sampling tick. The generation field lets Update
// drop ticks armed before the last cancellation point.
type tickMsg struct {
	gen int
	at  time.Time
}

// Model implements the Bubble Tea tracking UI.
type Model struct {
	ctrl     *session.Controller
	store    *store.Store
	identity identity.Provider
	interval time.Duration

	width  int
	height int

	// Info form.
	inputs     []fieldInput
	inputIndex int

	// Drill setup.
	setupCursor int
	tagMode     bool
	tagInput    tagField

	// Live tracking.
	trackCursor int

	// Results.
	finished    bool
	rep         report.Report
	saveErr     string
	savedID     int64
	resultTab   int
	resultsView viewport.Model

	tickGen    int
	tickActive bool
}

// NewModel constructs the tracking UI. The store may be nil, in which
// case finished practices are not archived.
func NewModel(ctrl *session.Controller, st *store.Store, id identity.Provider, interval time.Duration) *Model {
	if interval <= 0 {
		interval = session.DefaultTickInterval
	}
	m := &Model{
		ctrl:     ctrl,
		store:    st,
		identity: id,
		interval: interval,
	}
	m.initInfoForm()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.finished {
			m.syncResultsViewport()
		}
		return m, nil
	case tickMsg:
		return m.handleTick(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.finished {
			return m.updateResults(msg)
		}
		switch m.ctrl.Phase() {
		case model.PhasePracticeInfo:
			return m.updateInfoForm(msg)
		case model.PhaseDrillSetup:
			return m.updateSetup(msg)
		case model.PhaseTimeWatcher:
			return m.updateTrack(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.finished {
		return m.viewResults()
	}
	switch m.ctrl.Phase() {
	case model.PhasePracticeInfo:
		return m.viewInfoForm()
	case model.PhaseDrillSetup:
		return m.viewSetup()
	case model.PhaseTimeWatcher:
		return m.viewTrack()
	}
	return ""
}

// armTick schedules the next sampling tick if one is not already in
// flight and tracking still needs it.
func (m *Model) armTick() tea.Cmd {
	if m.tickActive || !m.tickNeeded() {
		return nil
	}
	m.tickActive = true
	gen := m.tickGen
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

// cancelTicks invalidates any in-flight tick.
func (m *Model) cancelTicks() {
	m.tickGen++
	m.tickActive = false
}

// tickNeeded reports whether the sampling tick has a live consumer:
// either a running timer (elapsed display) or armed waste tracking.
func (m *Model) tickNeeded() bool {
	if m.finished || m.ctrl.Phase() != model.PhaseTimeWatcher {
		return false
	}
	return m.ctrl.ActiveTimer() != "" || m.ctrl.WasteTrackingArmed()
}

func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.tickGen {
		return m, nil
	}
	m.tickActive = false
	if !m.tickNeeded() {
		return m, nil
	}
	m.ctrl.Tick(m.interval)
	return m, m.armTick()
}

// finish commits live state, builds the report, and archives it.
func (m *Model) finish() {
	m.ctrl.Commit()
	coach := ""
	if m.identity != nil {
		coach = m.identity.DisplayName()
	}
	m.rep = report.Build(m.ctrl.Info(), coach, m.ctrl.Drills())
	m.finished = true
	m.resultTab = 0
	m.cancelTicks()
	m.syncResultsViewport()

	if m.store == nil {
		return
	}
	id, err := m.store.InsertPractice(context.Background(), m.rep, time.Now())
	if err != nil {
		m.saveErr = err.Error()
		logErrf("failed to archive practice: %v\n", err)
		return
	}
	m.savedID = id
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
