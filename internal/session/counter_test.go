package session

import (
	"testing"
	"time"
)

func TestIncrementDecrementInverse(t *testing.T) {
	c, clk := newTracking(t, 1)

	c.Increment("shots")
	clk.Advance(time.Second)
	c.Increment("shots")
	c.Decrement("shots")
	c.Decrement("shots")

	rec := c.Counter("shots")
	if rec.Count != 0 {
		t.Fatalf("expected count 0, got %d", rec.Count)
	}
	if len(rec.Timestamps) != 0 {
		t.Fatalf("expected no timestamps, got %v", rec.Timestamps)
	}
}

func TestDecrementAtZeroIsIgnored(t *testing.T) {
	c, _ := newTracking(t, 1)

	c.Decrement("shots")
	if rec := c.Counter("shots"); rec.Count != 0 {
		t.Fatalf("decrement went negative: %d", rec.Count)
	}
}

func TestDecrementRemovesNewestTimestamp(t *testing.T) {
	c, clk := newTracking(t, 1)

	c.Increment("shots")
	first := clk.Now().UnixMilli()
	clk.Advance(2 * time.Second)
	c.Increment("shots")
	c.Decrement("shots")

	rec := c.Counter("shots")
	if rec.Count != 1 {
		t.Fatalf("expected count 1, got %d", rec.Count)
	}
	if len(rec.Timestamps) != 1 || rec.Timestamps[0] != first {
		t.Fatalf("expected only the first timestamp, got %v", rec.Timestamps)
	}
}

func TestCounterCommitsEagerly(t *testing.T) {
	c, _ := newTracking(t, 1)

	c.Increment("shots")
	// Committed state reflects the counter without any drill switch.
	drill, _ := c.Drill(0)
	if drill.CounterData["shots"].Count != 1 {
		t.Fatalf("counter not visible in committed drill: %+v", drill.CounterData)
	}
}

func TestCounterIgnoresInvalidCommands(t *testing.T) {
	c, _ := newTracking(t, 1)

	c.Increment("explanation") // timer kind
	c.Increment("goals")       // disabled by default
	c.Increment("absent")

	drill, _ := c.Drill(0)
	if len(drill.CounterData) != 0 {
		t.Fatalf("invalid counter commands mutated state: %+v", drill.CounterData)
	}
}

func TestResetCounter(t *testing.T) {
	c, _ := newTracking(t, 1)

	c.Increment("shots")
	c.Increment("shots")
	c.ResetCounter("shots")

	rec := c.Counter("shots")
	if rec.Count != 0 || len(rec.Timestamps) != 0 {
		t.Fatalf("reset left data behind: %+v", rec)
	}
}
