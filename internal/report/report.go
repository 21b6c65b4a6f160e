// Package report derives reporting data from a committed drill sequence.
// Every derivation here is a pure function of the drills passed in:
// identical committed state always yields identical output, with no
// dependency on the wall clock.
package report

import (
	"sort"

	"drillwatch/internal/model"
)

// Segment is one closed timer interval re-expressed relative to the
// earliest segment start of the whole session.
type Segment struct {
	DrillID       int
	ActionID      string
	StartOffsetMs int64
	EndOffsetMs   int64
}

// ActionTotal aggregates one action id across all drills.
type ActionTotal struct {
	ActionID string
	Kind     model.ActionKind
	TotalMs  int64 // timers
	Count    int   // counters
}

// DrillSummary totals one drill's tracked time.
type DrillSummary struct {
	DrillID       int
	Tags          []string
	TimerMs       int64
	WasteMs       int64
	TotalMs       int64 // TimerMs + WasteMs
	StartOffsetMs int64
	EndOffsetMs   int64
	HasSegments   bool
}

// Boundary marks where a drill's first segment begins on the session
// timeline, for annotation.
type Boundary struct {
	DrillID  int
	OffsetMs int64
}

// Report is the full derived view of a finished practice.
type Report struct {
	Info       model.PracticeInfo
	CoachName  string // display name from the identity provider
	Drills     []DrillSummary
	Actions    []ActionTotal
	Segments   []Segment
	Boundaries []Boundary
	TimerMs    int64
	WasteMs    int64
	TotalMs    int64
}

// Build assembles the complete report for a committed drill sequence.
func Build(info model.PracticeInfo, coachName string, drills []model.Drill) Report {
	rep := Report{
		Info:       info,
		CoachName:  coachName,
		Drills:     DrillSummaries(drills),
		Actions:    ActionTotals(drills),
		Segments:   RelativeSegments(drills),
		Boundaries: Boundaries(drills),
	}
	for _, d := range rep.Drills {
		rep.TimerMs += d.TimerMs
		rep.WasteMs += d.WasteMs
	}
	rep.TotalMs = rep.TimerMs + rep.WasteMs
	return rep
}

// minStartMs finds the earliest closed-segment start across the session.
func minStartMs(drills []model.Drill) (int64, bool) {
	var min int64
	found := false
	for _, d := range drills {
		for _, rec := range d.TimerData {
			for _, seg := range rec.Segments {
				if seg.Open() {
					continue
				}
				if !found || seg.StartMs < min {
					min = seg.StartMs
					found = true
				}
			}
		}
	}
	return min, found
}

// RelativeSegments projects every closed segment onto a timeline whose
// zero is the session's earliest segment start. Open segments are
// excluded. Output is ordered by start offset ascending.
func RelativeSegments(drills []model.Drill) []Segment {
	min, ok := minStartMs(drills)
	if !ok {
		return nil
	}
	var out []Segment
	for _, d := range drills {
		for actionID, rec := range d.TimerData {
			for _, seg := range rec.Segments {
				if seg.Open() {
					continue
				}
				out = append(out, Segment{
					DrillID:       d.ID,
					ActionID:      actionID,
					StartOffsetMs: seg.StartMs - min,
					EndOffsetMs:   seg.EndMs - min,
				})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartOffsetMs != out[j].StartOffsetMs {
			return out[i].StartOffsetMs < out[j].StartOffsetMs
		}
		if out[i].EndOffsetMs != out[j].EndOffsetMs {
			return out[i].EndOffsetMs < out[j].EndOffsetMs
		}
		if out[i].DrillID != out[j].DrillID {
			return out[i].DrillID < out[j].DrillID
		}
		return out[i].ActionID < out[j].ActionID
	})
	return out
}

// ActionTotals sums timer totals and counter counts per action id across
// all drills, ordered by action id.
func ActionTotals(drills []model.Drill) []ActionTotal {
	byID := map[string]*ActionTotal{}
	for _, d := range drills {
		for actionID, rec := range d.TimerData {
			tot := totalFor(byID, actionID, model.ActionTimer)
			tot.TotalMs += rec.TotalMs
		}
		for actionID, rec := range d.CounterData {
			tot := totalFor(byID, actionID, model.ActionCounter)
			tot.Count += rec.Count
		}
	}
	out := make([]ActionTotal, 0, len(byID))
	for _, tot := range byID {
		out = append(out, *tot)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ActionID < out[j].ActionID
	})
	return out
}

func totalFor(byID map[string]*ActionTotal, actionID string, kind model.ActionKind) *ActionTotal {
	tot, ok := byID[actionID]
	if !ok {
		tot = &ActionTotal{ActionID: actionID, Kind: kind}
		byID[actionID] = tot
	}
	return tot
}

// DrillSummaries totals each drill's timer time plus waste and derives
// its first/last offsets on the session timeline, ordered by drill id.
func DrillSummaries(drills []model.Drill) []DrillSummary {
	min, _ := minStartMs(drills)
	out := make([]DrillSummary, 0, len(drills))
	for _, d := range drills {
		sum := DrillSummary{
			DrillID: d.ID,
			Tags:    append([]string(nil), d.Tags...),
			WasteMs: d.WasteMs,
		}
		for _, rec := range d.TimerData {
			sum.TimerMs += rec.TotalMs
			for _, seg := range rec.Segments {
				if seg.Open() {
					continue
				}
				start := seg.StartMs - min
				end := seg.EndMs - min
				if !sum.HasSegments || start < sum.StartOffsetMs {
					sum.StartOffsetMs = start
				}
				if !sum.HasSegments || end > sum.EndOffsetMs {
					sum.EndOffsetMs = end
				}
				sum.HasSegments = true
			}
		}
		sum.TotalMs = sum.TimerMs + sum.WasteMs
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DrillID < out[j].DrillID
	})
	return out
}

// Boundaries returns one timeline marker per drill that has segments,
// placed at the drill's earliest segment offset, ordered by drill id.
func Boundaries(drills []model.Drill) []Boundary {
	var out []Boundary
	for _, sum := range DrillSummaries(drills) {
		if !sum.HasSegments {
			continue
		}
		out = append(out, Boundary{DrillID: sum.DrillID, OffsetMs: sum.StartOffsetMs})
	}
	return out
}
