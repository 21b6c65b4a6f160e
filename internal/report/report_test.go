package report

import (
	"reflect"
	"testing"
	"time"

	"drillwatch/internal/model"
	"drillwatch/internal/session"
)

func twoSegmentDrills() []model.Drill {
	return []model.Drill{
		{
			ID: 1,
			TimerData: map[string]model.TimerRecord{
				"explanation": {
					TotalMs: 3000,
					Segments: []model.TimeSegment{
						{StartMs: 1000, EndMs: 4000, DurationMs: 3000},
					},
				},
			},
		},
		{
			ID: 2,
			TimerData: map[string]model.TimerRecord{
				"exercise": {
					TotalMs: 4000,
					Segments: []model.TimeSegment{
						{StartMs: 5000, EndMs: 9000, DurationMs: 4000},
					},
				},
			},
		},
	}
}

func TestRelativeSegmentProjection(t *testing.T) {
	segments := RelativeSegments(twoSegmentDrills())
	want := []Segment{
		{DrillID: 1, ActionID: "explanation", StartOffsetMs: 0, EndOffsetMs: 3000},
		{DrillID: 2, ActionID: "exercise", StartOffsetMs: 4000, EndOffsetMs: 8000},
	}
	if !reflect.DeepEqual(segments, want) {
		t.Fatalf("unexpected projection:\n got %+v\nwant %+v", segments, want)
	}
}

func TestRelativeSegmentsExcludeOpen(t *testing.T) {
	drills := twoSegmentDrills()
	rec := drills[0].TimerData["explanation"]
	rec.Segments = append(rec.Segments, model.TimeSegment{StartMs: 10000})
	drills[0].TimerData["explanation"] = rec

	segments := RelativeSegments(drills)
	if len(segments) != 2 {
		t.Fatalf("open segment leaked into projection: %+v", segments)
	}
}

func TestActionTotalsAcrossDrills(t *testing.T) {
	drills := twoSegmentDrills()
	drills[1].TimerData["explanation"] = model.TimerRecord{TotalMs: 2000}
	drills[0].CounterData = map[string]model.CounterRecord{
		"shots": {Count: 3, Timestamps: []int64{1, 2, 3}},
	}
	drills[1].CounterData = map[string]model.CounterRecord{
		"shots": {Count: 2, Timestamps: []int64{4, 5}},
	}

	totals := ActionTotals(drills)
	byID := map[string]ActionTotal{}
	for _, tot := range totals {
		byID[tot.ActionID] = tot
	}
	if byID["explanation"].TotalMs != 5000 {
		t.Fatalf("expected explanation total 5000, got %d", byID["explanation"].TotalMs)
	}
	if byID["shots"].Count != 5 {
		t.Fatalf("expected shots count 5, got %d", byID["shots"].Count)
	}
	for i := 1; i < len(totals); i++ {
		if totals[i-1].ActionID >= totals[i].ActionID {
			t.Fatalf("totals not ordered by action id: %+v", totals)
		}
	}
}

func TestDrillSummaries(t *testing.T) {
	drills := twoSegmentDrills()
	drills[0].WasteMs = 500

	sums := DrillSummaries(drills)
	if len(sums) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(sums))
	}
	first := sums[0]
	if first.TotalMs != 3500 || first.TimerMs != 3000 || first.WasteMs != 500 {
		t.Fatalf("unexpected drill 1 totals: %+v", first)
	}
	if !first.HasSegments || first.StartOffsetMs != 0 || first.EndOffsetMs != 3000 {
		t.Fatalf("unexpected drill 1 offsets: %+v", first)
	}
	second := sums[1]
	if second.StartOffsetMs != 4000 || second.EndOffsetMs != 8000 {
		t.Fatalf("unexpected drill 2 offsets: %+v", second)
	}
}

func TestBoundaries(t *testing.T) {
	bounds := Boundaries(twoSegmentDrills())
	want := []Boundary{
		{DrillID: 1, OffsetMs: 0},
		{DrillID: 2, OffsetMs: 4000},
	}
	if !reflect.DeepEqual(bounds, want) {
		t.Fatalf("unexpected boundaries:\n got %+v\nwant %+v", bounds, want)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	drills := twoSegmentDrills()
	info := model.PracticeInfo{ClubName: "Falcons", DrillsNumber: 2}
	first := Build(info, "Coach", drills)
	second := Build(info, "Coach", drills)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical committed state produced different reports")
	}
}

type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time {
	return c.t
}

func TestEndToEndScenario(t *testing.T) {
	clk := &stepClock{t: time.UnixMilli(1_000_000)}
	c := session.New(clk)
	c.SetDrillsNumber(2)
	c.AdvancePhase()
	c.AdvancePhase()

	c.StartTimer("explanation")
	clk.t = clk.t.Add(5 * time.Second)
	c.StopTimer("explanation")
	c.Increment("shots")
	c.Increment("shots")
	c.SetCurrentIndex(1)

	rep := Build(c.Info(), "Coach", c.Drills())
	if len(rep.Drills) != 2 {
		t.Fatalf("expected 2 drill summaries, got %d", len(rep.Drills))
	}
	if rep.Drills[0].TimerMs != 5000 {
		t.Fatalf("expected drill 1 timer total 5000, got %d", rep.Drills[0].TimerMs)
	}
	var shots ActionTotal
	for _, tot := range rep.Actions {
		if tot.ActionID == "shots" {
			shots = tot
		}
	}
	if shots.Count != 2 {
		t.Fatalf("expected shots count 2, got %d", shots.Count)
	}
	want := []Segment{{DrillID: 1, ActionID: "explanation", StartOffsetMs: 0, EndOffsetMs: 5000}}
	if !reflect.DeepEqual(rep.Segments, want) {
		t.Fatalf("unexpected segments:\n got %+v\nwant %+v", rep.Segments, want)
	}
}
