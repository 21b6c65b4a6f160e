package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type tagField struct {
	input textinput.Model
}

func newTagField(value string) tagField {
	in := textinput.New()
	in.Placeholder = "warmup,defense"
	in.CharLimit = 128
	in.SetValue(value)
	in.Focus()
	return tagField{input: in}
}

func (m *Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.tagMode {
		return m.updateTagInput(msg)
	}

	idx := m.ctrl.CurrentIndex()
	drill, ok := m.ctrl.Drill(idx)
	if !ok {
		if msg.Type == tea.KeyEsc {
			m.ctrl.RetreatPhase()
		}
		return m, nil
	}
	count := len(drill.ActionButtons)

	switch msg.String() {
	case "esc":
		m.ctrl.RetreatPhase()
		return m, nil
	case "enter":
		m.ctrl.AdvancePhase()
		m.trackCursor = 0
		return m, m.armTick()
	case "j", "down":
		if m.setupCursor < count-1 {
			m.setupCursor++
		}
	case "k", "up":
		if m.setupCursor > 0 {
			m.setupCursor--
		}
	case "J":
		if m.setupCursor < count-1 {
			m.ctrl.ReorderActionButtons(idx, m.setupCursor, m.setupCursor+1)
			m.setupCursor++
		}
	case "K":
		if m.setupCursor > 0 {
			m.ctrl.ReorderActionButtons(idx, m.setupCursor, m.setupCursor-1)
			m.setupCursor--
		}
	case " ":
		if m.setupCursor < count {
			m.ctrl.ToggleActionButton(idx, drill.ActionButtons[m.setupCursor].ID)
		}
	case "l", "right":
		m.ctrl.SetCurrentIndex(idx + 1)
		m.setupCursor = 0
	case "h", "left":
		m.ctrl.SetCurrentIndex(idx - 1)
		m.setupCursor = 0
	case "t":
		m.tagMode = true
		m.tagInput = newTagField(strings.Join(drill.Tags, ","))
	}
	return m, nil
}

func (m *Model) updateTagInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		tags := splitTagList(m.tagInput.input.Value())
		m.ctrl.UpdateDrillTags(m.ctrl.CurrentIndex(), tags)
		m.tagMode = false
		return m, nil
	case tea.KeyEsc:
		m.tagMode = false
		return m, nil
	}
	var cmd tea.Cmd
	m.tagInput.input, cmd = m.tagInput.input.Update(msg)
	return m, cmd
}

func splitTagList(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (m *Model) viewSetup() string {
	idx := m.ctrl.CurrentIndex()
	drill, ok := m.ctrl.Drill(idx)
	if !ok {
		return titleStyle.Render("Drill Setup") + "\n\nNo drills configured. Press esc to set a drill count.\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Drill %d/%d Setup", drill.ID, m.ctrl.DrillCount())))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Tags: "))
	if m.tagMode {
		b.WriteString(m.tagInput.input.View())
	} else if len(drill.Tags) > 0 {
		b.WriteString(valueStyle.Render(strings.Join(drill.Tags, ", ")))
	} else {
		b.WriteString(disabledStyle.Render("none"))
	}
	b.WriteString("\n\n")

	for i, btn := range drill.ActionButtons {
		marker := "[ ]"
		style := disabledStyle
		if btn.Enabled {
			marker = "[x]"
			style = valueStyle
		}
		line := fmt.Sprintf("%s %-14s %s", marker, btn.ID, labelStyle.Render(btn.Kind.String()))
		if i == m.setupCursor && !m.tagMode {
			line = selectedStyle.Render("> ") + style.Render(line)
		} else {
			line = "  " + style.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("space toggle · J/K reorder · t tags · ←/→ drill · enter track · esc back"))
	return b.String()
}
