// Package session implements the practice-session state machine: drill
// configuration, the single-active-timer discipline, tally counters,
// waste-time accrual, and the commit of live tracking state into the
// session's drill records.
//
// All mutation goes through Controller methods issued from one logical
// thread of control (the UI event loop); commands that reference an
// absent or disabled action, an out-of-range index, or an illegal state
// transition are silently ignored.
package session

import (
	"drillwatch/internal/model"
)

// Controller owns the session aggregate. It is not safe for concurrent
// use; callers serialize commands through a single event loop.
type Controller struct {
	clock Clock

	info    model.PracticeInfo
	drills  []model.Drill
	phase   model.Phase
	current int

	// Live tracking state for the drill at current. Timer records are
	// working copies committed on close or drill switch; counters write
	// straight into drills and need no live copy; waste accrues here and
	// is committed on switch or stop.
	active     string // running timer action id, "" when none
	liveTimers map[string]model.TimerRecord
	liveWaste  int64
	armed      bool
}

// New returns an empty session controller in the practice-info phase.
func New(clock Clock) *Controller {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Controller{
		clock:      clock,
		phase:      model.PhasePracticeInfo,
		liveTimers: map[string]model.TimerRecord{},
	}
}

func (c *Controller) nowMs() int64 {
	return c.clock.Now().UnixMilli()
}

// Info returns the current practice metadata.
func (c *Controller) Info() model.PracticeInfo {
	return c.info
}

// SetPracticeInfo replaces the practice metadata wholesale. A changed
// drill count regenerates the entire drill sequence, discarding prior
// timer/counter data.
func (c *Controller) SetPracticeInfo(info model.PracticeInfo) {
	if info.DrillsNumber < 0 {
		info.DrillsNumber = 0
	}
	regen := info.DrillsNumber != len(c.drills)
	c.info = info
	if regen {
		c.regenerate(info.DrillsNumber)
	}
}

// SetDrillsNumber updates the drill count and regenerates the drill
// sequence from the action template. This is a full replacement, not a
// merge: existing drill data is discarded.
func (c *Controller) SetDrillsNumber(n int) {
	if n < 0 {
		n = 0
	}
	c.info.DrillsNumber = n
	c.regenerate(n)
}

func (c *Controller) regenerate(n int) {
	c.drills = newDrills(n)
	c.current = 0
	c.active = ""
	c.liveWaste = 0
	c.liveTimers = map[string]model.TimerRecord{}
}

// Drills returns a deep copy of the committed drill sequence.
func (c *Controller) Drills() []model.Drill {
	out := make([]model.Drill, len(c.drills))
	for i, d := range c.drills {
		out[i] = d.Clone()
	}
	return out
}

// DrillCount returns the number of drills in the session.
func (c *Controller) DrillCount() int {
	return len(c.drills)
}

// Drill returns a deep copy of one committed drill.
func (c *Controller) Drill(index int) (model.Drill, bool) {
	if index < 0 || index >= len(c.drills) {
		return model.Drill{}, false
	}
	return c.drills[index].Clone(), true
}

// CurrentIndex returns the index of the drill being tracked.
func (c *Controller) CurrentIndex() int {
	return c.current
}

// SetCurrentIndex switches tracking to another drill. The previous
// drill's open segment is closed and its timer and waste state committed
// before the new drill's live state is loaded from whatever was
// previously committed for it (resume, not reset).
func (c *Controller) SetCurrentIndex(index int) {
	if index < 0 || index >= len(c.drills) || index == c.current {
		return
	}
	c.commitCurrent()
	c.current = index
	c.loadCurrent()
}

func (c *Controller) commitCurrent() {
	if len(c.drills) == 0 {
		return
	}
	if c.active != "" {
		c.StopTimer(c.active)
	}
	c.drills[c.current].WasteMs = c.liveWaste
}

func (c *Controller) loadCurrent() {
	c.liveTimers = map[string]model.TimerRecord{}
	for id, rec := range c.drills[c.current].TimerData {
		c.liveTimers[id] = rec.Clone()
	}
	c.liveWaste = c.drills[c.current].WasteMs
}

// Phase returns the session's current phase.
func (c *Controller) Phase() model.Phase {
	return c.phase
}

// AdvancePhase moves the session one phase forward.
func (c *Controller) AdvancePhase() {
	switch c.phase {
	case model.PhasePracticeInfo:
		c.phase = model.PhaseDrillSetup
	case model.PhaseDrillSetup:
		c.phase = model.PhaseTimeWatcher
	}
}

// RetreatPhase moves the session one phase back. Leaving the
// time-watcher commits live tracking state first.
func (c *Controller) RetreatPhase() {
	switch c.phase {
	case model.PhaseTimeWatcher:
		c.commitCurrent()
		c.phase = model.PhaseDrillSetup
	case model.PhaseDrillSetup:
		c.phase = model.PhasePracticeInfo
	}
}

// ResetSession tears the whole session down to an empty practice-info
// phase. Drill data, metadata, and live state are all discarded.
func (c *Controller) ResetSession() {
	c.info = model.PracticeInfo{}
	c.drills = nil
	c.phase = model.PhasePracticeInfo
	c.current = 0
	c.active = ""
	c.armed = false
	c.liveWaste = 0
	c.liveTimers = map[string]model.TimerRecord{}
}

// Commit flushes live tracking state (open segment, waste) into the
// committed drill sequence. Called when tracking ends.
func (c *Controller) Commit() {
	c.commitCurrent()
}

func (c *Controller) currentDrill() *model.Drill {
	if len(c.drills) == 0 {
		return nil
	}
	return &c.drills[c.current]
}

// enabledAction returns the current drill's action with the given id and
// kind, or false when the command should be ignored.
func (c *Controller) enabledAction(id string, kind model.ActionKind) bool {
	d := c.currentDrill()
	if d == nil {
		return false
	}
	btn, ok := d.Action(id)
	return ok && btn.Enabled && btn.Kind == kind
}
