package session

import (
	"testing"
)

func TestToggleActionButton(t *testing.T) {
	c, _ := newTracking(t, 2)

	c.ToggleActionButton(0, "correction")
	drill, _ := c.Drill(0)
	btn, _ := drill.Action("correction")
	if !btn.Enabled {
		t.Fatalf("expected correction enabled")
	}

	// Only the one action in the one drill changes.
	for _, other := range drill.ActionButtons {
		if other.ID == "correction" {
			continue
		}
		tmpl := ActionTemplate()
		for _, tb := range tmpl {
			if tb.ID == other.ID && tb.Enabled != other.Enabled {
				t.Fatalf("unrelated action %s changed", other.ID)
			}
		}
	}
	second, _ := c.Drill(1)
	btn, _ = second.Action("correction")
	if btn.Enabled {
		t.Fatalf("toggle leaked into another drill")
	}
}

func TestToggleUnknownActionIgnored(t *testing.T) {
	c, _ := newTracking(t, 1)

	before, _ := c.Drill(0)
	c.ToggleActionButton(0, "absent")
	c.ToggleActionButton(5, "explanation")
	after, _ := c.Drill(0)
	for i := range before.ActionButtons {
		if before.ActionButtons[i] != after.ActionButtons[i] {
			t.Fatalf("invalid toggle mutated actions")
		}
	}
}

func TestDisablingRunningTimerStopsIt(t *testing.T) {
	c, _ := newTracking(t, 1)

	c.StartTimer("explanation")
	c.ToggleActionButton(0, "explanation")
	if c.ActiveTimer() != "" {
		t.Fatalf("disabled timer kept running")
	}
	drill, _ := c.Drill(0)
	if _, ok := drill.TimerData["explanation"].OpenSegment(); ok {
		t.Fatalf("open segment survived disabling")
	}
}

func TestReorderActionButtonsIsStable(t *testing.T) {
	c, _ := newTracking(t, 1)

	before, _ := c.Drill(0)
	ids := make([]string, len(before.ActionButtons))
	for i, btn := range before.ActionButtons {
		ids[i] = btn.ID
	}

	c.ReorderActionButtons(0, 0, 2)
	after, _ := c.Drill(0)
	want := []string{ids[1], ids[2], ids[0]}
	want = append(want, ids[3:]...)
	for i, btn := range after.ActionButtons {
		if btn.ID != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, btn.ID, want[i])
		}
	}

	// Moving it back restores the original order.
	c.ReorderActionButtons(0, 2, 0)
	restored, _ := c.Drill(0)
	for i, btn := range restored.ActionButtons {
		if btn.ID != ids[i] {
			t.Fatalf("position %d not restored: got %s, want %s", i, btn.ID, ids[i])
		}
	}
}

func TestReorderOutOfRangeIgnored(t *testing.T) {
	c, _ := newTracking(t, 1)

	before, _ := c.Drill(0)
	c.ReorderActionButtons(0, -1, 2)
	c.ReorderActionButtons(0, 0, 99)
	c.ReorderActionButtons(9, 0, 1)
	after, _ := c.Drill(0)
	for i := range before.ActionButtons {
		if before.ActionButtons[i] != after.ActionButtons[i] {
			t.Fatalf("invalid reorder mutated actions")
		}
	}
}

func TestUpdateDrillTagsReplacesWholesale(t *testing.T) {
	c, _ := newTracking(t, 1)

	c.UpdateDrillTags(0, []string{"warmup", "defense"})
	c.UpdateDrillTags(0, []string{"offense"})
	drill, _ := c.Drill(0)
	if len(drill.Tags) != 1 || drill.Tags[0] != "offense" {
		t.Fatalf("tags not replaced wholesale: %v", drill.Tags)
	}
}
