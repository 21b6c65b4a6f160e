package session

import "drillwatch/internal/model"

// actionTemplate is the fixed instrument vocabulary every drill is cloned
// from. Disabled entries can be switched on per drill during setup.
var actionTemplate = []model.ActionButton{
	{ID: "explanation", Kind: model.ActionTimer, Enabled: true},
	{ID: "organization", Kind: model.ActionTimer, Enabled: true},
	{ID: "exercise", Kind: model.ActionTimer, Enabled: true},
	{ID: "correction", Kind: model.ActionTimer, Enabled: false},
	{ID: "shots", Kind: model.ActionCounter, Enabled: true},
	{ID: "goals", Kind: model.ActionCounter, Enabled: false},
	{ID: "passes", Kind: model.ActionCounter, Enabled: false},
	{ID: "mistakes", Kind: model.ActionCounter, Enabled: false},
}

// ActionTemplate returns a copy of the fixed action-button template.
func ActionTemplate() []model.ActionButton {
	out := make([]model.ActionButton, len(actionTemplate))
	copy(out, actionTemplate)
	return out
}

// newDrills produces n fresh drills with ids 1..n, each cloned from the
// template with empty tags and empty timer/counter data.
func newDrills(n int) []model.Drill {
	if n <= 0 {
		return nil
	}
	drills := make([]model.Drill, n)
	for i := range drills {
		drills[i] = model.Drill{
			ID:            i + 1,
			ActionButtons: ActionTemplate(),
			TimerData:     map[string]model.TimerRecord{},
			CounterData:   map[string]model.CounterRecord{},
		}
	}
	return drills
}

// UpdateDrillTags replaces the tag set of one drill wholesale.
func (c *Controller) UpdateDrillTags(drillIndex int, tags []string) {
	if drillIndex < 0 || drillIndex >= len(c.drills) {
		return
	}
	out := make([]string, len(tags))
	copy(out, tags)
	c.drills[drillIndex].Tags = out
}

// ToggleActionButton flips the enabled flag of exactly one action in
// exactly one drill. Disabling the currently running timer stops it first.
func (c *Controller) ToggleActionButton(drillIndex int, actionID string) {
	if drillIndex < 0 || drillIndex >= len(c.drills) {
		return
	}
	buttons := c.drills[drillIndex].ActionButtons
	for i := range buttons {
		if buttons[i].ID != actionID {
			continue
		}
		if buttons[i].Enabled && drillIndex == c.current && c.active == actionID {
			c.StopTimer(actionID)
		}
		buttons[i].Enabled = !buttons[i].Enabled
		return
	}
}

// ReorderActionButtons moves one action within a drill's ordered sequence,
// keeping all other relative orderings intact.
func (c *Controller) ReorderActionButtons(drillIndex, fromPos, toPos int) {
	if drillIndex < 0 || drillIndex >= len(c.drills) {
		return
	}
	buttons := c.drills[drillIndex].ActionButtons
	if fromPos < 0 || fromPos >= len(buttons) || toPos < 0 || toPos >= len(buttons) || fromPos == toPos {
		return
	}
	moved := buttons[fromPos]
	if fromPos < toPos {
		copy(buttons[fromPos:], buttons[fromPos+1:toPos+1])
	} else {
		copy(buttons[toPos+1:fromPos+1], buttons[toPos:fromPos])
	}
	buttons[toPos] = moved
}
