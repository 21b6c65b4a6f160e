package session

import (
	"testing"
	"time"

	"drillwatch/internal/model"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.UnixMilli(1_000_000)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTracking(t *testing.T, drills int) (*Controller, *fakeClock) {
	t.Helper()
	clk := newFakeClock()
	c := New(clk)
	c.SetDrillsNumber(drills)
	c.AdvancePhase()
	c.AdvancePhase()
	if c.Phase() != model.PhaseTimeWatcher {
		t.Fatalf("expected time-watcher phase, got %s", c.Phase())
	}
	return c, clk
}

func TestStartPauseProducesOneClosedSegment(t *testing.T) {
	c, clk := newTracking(t, 1)

	c.StartTimer("explanation")
	if c.ActiveTimer() != "explanation" {
		t.Fatalf("expected explanation running, got %q", c.ActiveTimer())
	}
	clk.Advance(5 * time.Second)
	c.PauseTimer("explanation")

	if c.ActiveTimer() != "" {
		t.Fatalf("expected no running timer, got %q", c.ActiveTimer())
	}
	drill, _ := c.Drill(0)
	rec := drill.TimerData["explanation"]
	if len(rec.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(rec.Segments))
	}
	seg := rec.Segments[0]
	if seg.Open() {
		t.Fatalf("expected closed segment")
	}
	if seg.DurationMs != seg.EndMs-seg.StartMs || seg.DurationMs != 5000 {
		t.Fatalf("unexpected duration: %d", seg.DurationMs)
	}
	if rec.TotalMs != 5000 {
		t.Fatalf("expected total 5000, got %d", rec.TotalMs)
	}
}

func TestStartStopsOtherRunningTimer(t *testing.T) {
	c, clk := newTracking(t, 1)

	c.StartTimer("explanation")
	clk.Advance(2 * time.Second)
	c.StartTimer("organization")

	drill, _ := c.Drill(0)
	first := drill.TimerData["explanation"]
	if len(first.Segments) != 1 || first.Segments[0].Open() {
		t.Fatalf("expected first timer closed: %+v", first.Segments)
	}
	second, ok := c.LiveTimer("organization").OpenSegment()
	if !ok {
		t.Fatalf("expected second timer running")
	}
	if first.Segments[0].EndMs > second.StartMs {
		t.Fatalf("first closed at %d after second opened at %d", first.Segments[0].EndMs, second.StartMs)
	}
	if c.ActiveTimer() != "organization" {
		t.Fatalf("expected organization running, got %q", c.ActiveTimer())
	}
}

func TestAtMostOneOpenSegment(t *testing.T) {
	c, clk := newTracking(t, 1)

	ids := []string{"explanation", "organization", "exercise"}
	for _, id := range ids {
		c.StartTimer(id)
		clk.Advance(time.Second)
	}

	open := 0
	for _, id := range ids {
		if _, ok := c.LiveTimer(id).OpenSegment(); ok {
			open++
		}
	}
	if open != 1 {
		t.Fatalf("expected exactly 1 open segment, got %d", open)
	}
}

func TestStartIgnoresInvalidCommands(t *testing.T) {
	c, _ := newTracking(t, 1)

	c.StartTimer("correction") // disabled by default
	if c.ActiveTimer() != "" {
		t.Fatalf("disabled timer started: %q", c.ActiveTimer())
	}
	c.StartTimer("shots") // counter kind
	if c.ActiveTimer() != "" {
		t.Fatalf("counter started as timer: %q", c.ActiveTimer())
	}
	c.StartTimer("absent")
	if c.ActiveTimer() != "" {
		t.Fatalf("absent action started: %q", c.ActiveTimer())
	}
}

func TestStartRunningTimerIsNoOp(t *testing.T) {
	c, clk := newTracking(t, 1)

	c.StartTimer("explanation")
	clk.Advance(time.Second)
	c.StartTimer("explanation")

	rec := c.LiveTimer("explanation")
	if len(rec.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(rec.Segments))
	}
	if _, ok := rec.OpenSegment(); !ok {
		t.Fatalf("expected timer still running")
	}
}

func TestPauseIdleIsIgnored(t *testing.T) {
	c, _ := newTracking(t, 1)

	c.PauseTimer("explanation")
	drill, _ := c.Drill(0)
	if len(drill.TimerData["explanation"].Segments) != 0 {
		t.Fatalf("pause on idle timer mutated record")
	}
}

func TestResetWhileRunningIsIgnored(t *testing.T) {
	c, clk := newTracking(t, 1)

	c.StartTimer("explanation")
	clk.Advance(time.Second)
	c.ResetTimer("explanation")

	if _, ok := c.LiveTimer("explanation").OpenSegment(); !ok {
		t.Fatalf("reset discarded a running timer")
	}

	c.StopTimer("explanation")
	c.ResetTimer("explanation")
	rec := c.LiveTimer("explanation")
	if rec.TotalMs != 0 || len(rec.Segments) != 0 {
		t.Fatalf("reset left data behind: %+v", rec)
	}
	drill, _ := c.Drill(0)
	if got := drill.TimerData["explanation"]; got.TotalMs != 0 || len(got.Segments) != 0 {
		t.Fatalf("reset not committed: %+v", got)
	}
}

func TestElapsedOnlyWhileRunning(t *testing.T) {
	c, clk := newTracking(t, 1)

	if c.Elapsed("explanation") != 0 {
		t.Fatalf("expected zero elapsed while idle")
	}
	c.StartTimer("explanation")
	clk.Advance(1500 * time.Millisecond)
	if got := c.Elapsed("explanation"); got != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s elapsed, got %s", got)
	}
	c.PauseTimer("explanation")
	if c.Elapsed("explanation") != 0 {
		t.Fatalf("expected zero elapsed after pause")
	}
}
