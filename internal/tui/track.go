package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"drillwatch/internal/model"
	"drillwatch/internal/report"
)

// enabledActions returns the current drill's enabled actions in order.
func (m *Model) enabledActions() []model.ActionButton {
	drill, ok := m.ctrl.Drill(m.ctrl.CurrentIndex())
	if !ok {
		return nil
	}
	var out []model.ActionButton
	for _, btn := range drill.ActionButtons {
		if btn.Enabled {
			out = append(out, btn)
		}
	}
	return out
}

func (m *Model) updateTrack(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	actions := m.enabledActions()
	if m.trackCursor >= len(actions) {
		m.trackCursor = 0
	}

	switch msg.String() {
	case "esc":
		m.ctrl.RetreatPhase()
		m.cancelTicks()
		return m, nil
	case "j", "down":
		if m.trackCursor < len(actions)-1 {
			m.trackCursor++
		}
	case "k", "up":
		if m.trackCursor > 0 {
			m.trackCursor--
		}
	case "enter", " ":
		if m.trackCursor < len(actions) {
			m.fireAction(actions[m.trackCursor])
		}
		return m, m.armTick()
	case "-":
		if m.trackCursor < len(actions) && actions[m.trackCursor].Kind == model.ActionCounter {
			m.ctrl.Decrement(actions[m.trackCursor].ID)
		}
	case "r":
		if m.trackCursor < len(actions) {
			m.resetAction(actions[m.trackCursor])
		}
	case "w":
		m.ctrl.ArmWasteTracking(!m.ctrl.WasteTrackingArmed())
		if !m.tickNeeded() {
			m.cancelTicks()
		}
		return m, m.armTick()
	case "n", "l", "right":
		m.ctrl.SetCurrentIndex(m.ctrl.CurrentIndex() + 1)
		m.trackCursor = 0
	case "p", "h", "left":
		m.ctrl.SetCurrentIndex(m.ctrl.CurrentIndex() - 1)
		m.trackCursor = 0
	case "f":
		m.finish()
		return m, nil
	}
	if !m.tickNeeded() {
		m.cancelTicks()
	}
	return m, nil
}

func (m *Model) fireAction(btn model.ActionButton) {
	switch btn.Kind {
	case model.ActionTimer:
		if m.ctrl.ActiveTimer() == btn.ID {
			m.ctrl.PauseTimer(btn.ID)
		} else {
			m.ctrl.StartTimer(btn.ID)
		}
	case model.ActionCounter:
		m.ctrl.Increment(btn.ID)
	}
}

func (m *Model) resetAction(btn model.ActionButton) {
	switch btn.Kind {
	case model.ActionTimer:
		m.ctrl.ResetTimer(btn.ID)
	case model.ActionCounter:
		m.ctrl.ResetCounter(btn.ID)
	}
}

func (m *Model) viewTrack() string {
	idx := m.ctrl.CurrentIndex()
	drill, ok := m.ctrl.Drill(idx)
	if !ok {
		return titleStyle.Render("Time Watcher") + "\n\nNo drills configured.\n"
	}
	actions := m.enabledActions()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Drill %d/%d", drill.ID, m.ctrl.DrillCount())))
	if tags := strings.Join(drill.Tags, ", "); tags != "" {
		b.WriteString(labelStyle.Render("  " + tags))
	}
	b.WriteString("\n\n")

	for i, btn := range actions {
		var value, marker string
		style := valueStyle
		switch btn.Kind {
		case model.ActionTimer:
			rec := m.ctrl.LiveTimer(btn.ID)
			total := rec.TotalMs
			if m.ctrl.ActiveTimer() == btn.ID {
				total += m.ctrl.Elapsed(btn.ID).Milliseconds()
				marker = runningStyle.Render(" ●")
				style = runningStyle
			}
			value = report.FormatDuration(total)
		case model.ActionCounter:
			value = fmt.Sprintf("%d", m.ctrl.Counter(btn.ID).Count)
		}
		line := fmt.Sprintf("%-14s %8s", btn.ID, value)
		if i == m.trackCursor {
			line = selectedStyle.Render("> ") + style.Render(line)
		} else {
			line = "  " + style.Render(line)
		}
		b.WriteString(line)
		b.WriteString(marker)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	wasteLabel := "waste off"
	wasteValue := report.FormatDuration(m.ctrl.LiveWasteMs())
	if m.ctrl.WasteTrackingArmed() {
		wasteLabel = "waste armed"
		if m.ctrl.ActiveTimer() == "" {
			b.WriteString(wasteStyle.Render(fmt.Sprintf("%s  %s (accruing)", wasteLabel, wasteValue)))
		} else {
			b.WriteString(labelStyle.Render(fmt.Sprintf("%s  %s", wasteLabel, wasteValue)))
		}
	} else {
		b.WriteString(disabledStyle.Render(fmt.Sprintf("%s  %s", wasteLabel, wasteValue)))
	}
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("enter start/pause · - undo count · r reset · w waste · ←/→ drill · f finish · esc setup"))
	return b.String()
}
