package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"drillwatch/internal/model"
)

type fieldInput struct {
	label string
	input textinput.Model
}

func newField(label, placeholder, value string) fieldInput {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 64
	in.SetValue(value)
	return fieldInput{label: label, input: in}
}

const (
	fieldClub = iota
	fieldTeam
	fieldDate
	fieldCoach
	fieldAthletes
	fieldCoaches
	fieldTotalTime
	fieldTracked
	fieldDrills
	fieldEvaluation
	fieldCount
)

func (m *Model) initInfoForm() {
	info := m.ctrl.Info()
	m.inputs = []fieldInput{
		newField("Club", "club name", info.ClubName),
		newField("Team", "team name", info.TeamName),
		newField("Date", "YYYY-MM-DD", info.Date),
		newField("Coach", "coach name", info.CoachName),
		newField("Athletes", "0", intValue(info.AthletesNumber)),
		newField("Coaches", "0", intValue(info.CoachesNumber)),
		newField("Total time (h)", "1.5", floatValue(info.TotalTimeHours)),
		newField("Tracked player", "optional", info.TrackedPlayerName),
		newField("Drills", "0", intValue(info.DrillsNumber)),
		newField("Evaluation", "0", floatValue(info.Evaluation)),
	}
	m.inputIndex = 0
	m.inputs[0].input.Focus()
}

func intValue(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func floatValue(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseInt falls back to 0 on invalid input, matching the forgiving
// numeric handling of the info form.
func parseInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func (m *Model) updateInfoForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.applyInfoForm()
		m.ctrl.AdvancePhase()
		m.setupCursor = 0
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.focusField((m.inputIndex + 1) % len(m.inputs))
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.focusField((m.inputIndex + len(m.inputs) - 1) % len(m.inputs))
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.inputIndex].input, cmd = m.inputs[m.inputIndex].input.Update(msg)
	return m, cmd
}

func (m *Model) focusField(index int) {
	m.inputs[m.inputIndex].input.Blur()
	m.inputIndex = index
	m.inputs[m.inputIndex].input.Focus()
}

func (m *Model) applyInfoForm() {
	m.ctrl.SetPracticeInfo(model.PracticeInfo{
		ClubName:          strings.TrimSpace(m.inputs[fieldClub].input.Value()),
		TeamName:          strings.TrimSpace(m.inputs[fieldTeam].input.Value()),
		Date:              strings.TrimSpace(m.inputs[fieldDate].input.Value()),
		CoachName:         strings.TrimSpace(m.inputs[fieldCoach].input.Value()),
		AthletesNumber:    parseInt(m.inputs[fieldAthletes].input.Value()),
		CoachesNumber:     parseInt(m.inputs[fieldCoaches].input.Value()),
		TotalTimeHours:    parseFloat(m.inputs[fieldTotalTime].input.Value()),
		TrackedPlayerName: strings.TrimSpace(m.inputs[fieldTracked].input.Value()),
		DrillsNumber:      parseInt(m.inputs[fieldDrills].input.Value()),
		Evaluation:        parseFloat(m.inputs[fieldEvaluation].input.Value()),
	})
}

func (m *Model) viewInfoForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Practice Info"))
	b.WriteString("\n\n")
	for i, field := range m.inputs {
		label := labelStyle.Render(fmt.Sprintf("%-16s", field.label))
		if i == m.inputIndex {
			label = selectedStyle.Render(fmt.Sprintf("%-16s", field.label))
		}
		b.WriteString(label)
		b.WriteString(field.input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("tab/↑↓ move · enter continue · ctrl+c quit"))
	return b.String()
}
