package session

import (
	"time"

	"drillwatch/internal/model"
)

// StartTimer opens a new segment for the given timer action. If another
// timer is running for this drill it is stopped first, so at most one
// open segment ever exists across the drill. Starting an already running
// timer, a disabled action, or a counter is ignored.
func (c *Controller) StartTimer(actionID string) {
	if !c.enabledAction(actionID, model.ActionTimer) || c.active == actionID {
		return
	}
	if c.active != "" {
		c.StopTimer(c.active)
	}
	rec := c.liveTimers[actionID]
	rec.Segments = append(rec.Segments, model.TimeSegment{StartMs: c.nowMs()})
	c.liveTimers[actionID] = rec
	c.active = actionID
}

// PauseTimer closes the running timer's open segment and folds its
// duration into the record's total. Ignored unless this action is the
// running one.
func (c *Controller) PauseTimer(actionID string) {
	c.closeTimer(actionID)
}

// StopTimer is identical in effect to PauseTimer; it exists as a named
// operation because cross-timer exclusivity invokes it explicitly.
func (c *Controller) StopTimer(actionID string) {
	c.closeTimer(actionID)
}

func (c *Controller) closeTimer(actionID string) {
	if c.active != actionID || actionID == "" {
		return
	}
	rec := c.liveTimers[actionID]
	n := len(rec.Segments)
	if n == 0 || !rec.Segments[n-1].Open() {
		c.active = ""
		return
	}
	now := c.nowMs()
	seg := rec.Segments[n-1]
	seg.EndMs = now
	seg.DurationMs = seg.EndMs - seg.StartMs
	rec.Segments[n-1] = seg
	rec.TotalMs += seg.DurationMs
	c.liveTimers[actionID] = rec
	c.active = ""
	c.commitTimer(actionID)
}

// ResetTimer discards all segments and the total for an idle timer.
// Ignored while the timer is running.
func (c *Controller) ResetTimer(actionID string) {
	if !c.enabledAction(actionID, model.ActionTimer) || c.active == actionID {
		return
	}
	c.liveTimers[actionID] = model.TimerRecord{}
	c.commitTimer(actionID)
}

func (c *Controller) commitTimer(actionID string) {
	d := c.currentDrill()
	if d == nil {
		return
	}
	d.TimerData[actionID] = c.liveTimers[actionID].Clone()
}

// ActiveTimer returns the id of the running timer action, or "".
func (c *Controller) ActiveTimer() string {
	return c.active
}

// Elapsed returns the running timer's open-segment duration for live
// display, or zero when the action is not running. The value is never
// persisted; only closed segments accumulate into totals.
func (c *Controller) Elapsed(actionID string) time.Duration {
	if c.active != actionID {
		return 0
	}
	seg, ok := c.liveTimers[actionID].OpenSegment()
	if !ok {
		return 0
	}
	return time.Duration(c.nowMs()-seg.StartMs) * time.Millisecond
}

// LiveTimer returns the live timer record for the current drill,
// including any open segment.
func (c *Controller) LiveTimer(actionID string) model.TimerRecord {
	return c.liveTimers[actionID].Clone()
}
