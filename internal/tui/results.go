package tui

import (
	"bytes"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"drillwatch/internal/report"
)

var resultTabs = []string{"Summary", "Drills", "Actions", "Timeline"}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "tab", "l", "right":
		m.resultTab = (m.resultTab + 1) % len(resultTabs)
		m.syncResultsViewport()
	case "shift+tab", "h", "left":
		m.resultTab = (m.resultTab + len(resultTabs) - 1) % len(resultTabs)
		m.syncResultsViewport()
	case "n":
		// Back to a fresh session.
		m.ctrl.ResetSession()
		m.finished = false
		m.saveErr = ""
		m.savedID = 0
		m.initInfoForm()
	default:
		var cmd tea.Cmd
		m.resultsView, cmd = m.resultsView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) resultTabContent() string {
	var buf bytes.Buffer
	width := m.width
	if width <= 0 {
		width = 80
	}
	switch m.resultTab {
	case 0:
		_ = report.RenderSummary(&buf, m.rep)
	case 1:
		_ = report.RenderDrillTable(&buf, m.rep)
	case 2:
		_ = report.RenderActionTable(&buf, m.rep)
	case 3:
		_ = report.RenderTimeline(&buf, m.rep, width-2)
	}
	return buf.String()
}

func (m *Model) syncResultsViewport() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	height := m.height - 4
	if height < 3 {
		height = 3
	}
	m.resultsView.Width = width
	m.resultsView.Height = height
	m.resultsView.SetContent(m.resultTabContent())
	m.resultsView.GotoTop()
}

func (m *Model) viewResults() string {
	var b strings.Builder
	tabs := make([]string, len(resultTabs))
	for i, tab := range resultTabs {
		if i == m.resultTab {
			tabs[i] = selectedStyle.Render("[" + tab + "]")
		} else {
			tabs[i] = labelStyle.Render(" " + tab + " ")
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")
	if m.resultsView.Height == 0 {
		m.syncResultsViewport()
	}
	b.WriteString(m.resultsView.View())
	b.WriteString("\n")
	status := "tab switch · j/k scroll · n new session · q quit"
	if m.savedID > 0 {
		status = fmt.Sprintf("archived as practice %d · %s", m.savedID, status)
	} else if m.saveErr != "" {
		status = fmt.Sprintf("archive failed: %s · %s", m.saveErr, status)
	}
	b.WriteString(footerStyle.Render(status))
	return b.String()
}
