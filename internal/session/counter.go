package session

import "drillwatch/internal/model"

// Counter mutations commit into the drill sequence immediately, unlike
// timers which commit only on close or drill switch. The asymmetry is
// part of the observed contract and is kept.

// Increment adds one to a counter and records the moment it happened.
func (c *Controller) Increment(actionID string) {
	if !c.enabledAction(actionID, model.ActionCounter) {
		return
	}
	d := c.currentDrill()
	rec := d.CounterData[actionID]
	rec.Count++
	rec.Timestamps = append(rec.Timestamps, c.nowMs())
	d.CounterData[actionID] = rec
}

// Decrement undoes the most recent increment. At zero it is ignored.
func (c *Controller) Decrement(actionID string) {
	if !c.enabledAction(actionID, model.ActionCounter) {
		return
	}
	d := c.currentDrill()
	rec := d.CounterData[actionID]
	if rec.Count == 0 {
		return
	}
	rec.Count--
	if n := len(rec.Timestamps); n > 0 {
		rec.Timestamps = rec.Timestamps[:n-1]
	}
	d.CounterData[actionID] = rec
}

// ResetCounter zeroes a counter and clears its timestamps.
func (c *Controller) ResetCounter(actionID string) {
	if !c.enabledAction(actionID, model.ActionCounter) {
		return
	}
	c.currentDrill().CounterData[actionID] = model.CounterRecord{}
}

// Counter returns the committed counter record for the current drill.
func (c *Controller) Counter(actionID string) model.CounterRecord {
	d := c.currentDrill()
	if d == nil {
		return model.CounterRecord{}
	}
	return d.CounterData[actionID].Clone()
}
