package session

import (
	"time"

	"drillwatch/internal/model"
)

// DefaultTickInterval is the sampling interval for waste-time accrual
// and live elapsed display.
const DefaultTickInterval = 100 * time.Millisecond

// ArmWasteTracking switches dead-time accrual on or off.
func (c *Controller) ArmWasteTracking(armed bool) {
	c.armed = armed
}

// WasteTrackingArmed reports whether dead-time accrual is switched on.
func (c *Controller) WasteTrackingArmed() bool {
	return c.armed
}

// Tick advances waste-time accrual by one sampling interval. Time is
// attributed to waste only while tracking is armed, the session is in
// the time-watcher phase, and no timer is running for the current drill.
func (c *Controller) Tick(interval time.Duration) {
	if !c.armed || c.phase != model.PhaseTimeWatcher || c.active != "" || len(c.drills) == 0 {
		return
	}
	c.liveWaste += interval.Milliseconds()
}

// LiveWasteMs returns the current drill's accrued waste time, including
// accrual not yet committed by a drill switch.
func (c *Controller) LiveWasteMs() int64 {
	return c.liveWaste
}

// ResetWaste zeroes the current drill's waste time, live and committed.
func (c *Controller) ResetWaste() {
	c.liveWaste = 0
	if d := c.currentDrill(); d != nil {
		d.WasteMs = 0
	}
}
