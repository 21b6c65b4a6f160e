// Package model defines shared data structures.
package model

// Phase is the coarse stage of a practice session.
type Phase int

const (
	PhasePracticeInfo Phase = iota
	PhaseDrillSetup
	PhaseTimeWatcher
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhasePracticeInfo:
		return "practice-info"
	case PhaseDrillSetup:
		return "drill-setup"
	case PhaseTimeWatcher:
		return "time-watcher"
	default:
		return "unknown"
	}
}

// ActionKind distinguishes stopwatch and tally instruments.
type ActionKind int

const (
	ActionTimer ActionKind = iota
	ActionCounter
)

// String returns a human-readable action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionTimer:
		return "timer"
	case ActionCounter:
		return "counter"
	default:
		return "unknown"
	}
}

// PracticeInfo captures practice metadata entered by the coach.
type PracticeInfo struct {
	ClubName          string
	TeamName          string
	Date              string // ISO 8601
	CoachName         string
	Evaluation        float64
	AthletesNumber    int
	CoachesNumber     int
	TotalTimeHours    float64
	TrackedPlayerName string
	DrillsNumber      int
}

// ActionButton is one instrument slot within a drill. Identity is the ID;
// order within a drill only affects rendering.
type ActionButton struct {
	ID      string
	Kind    ActionKind
	Enabled bool
}

// TimeSegment is one contiguous running interval of a timer action.
// EndMs == 0 marks a still-open segment.
type TimeSegment struct {
	StartMs    int64
	EndMs      int64
	DurationMs int64
}

// Open reports whether the segment has not been closed yet.
func (s TimeSegment) Open() bool {
	return s.EndMs == 0
}

// TimerRecord accumulates closed segments for one timer action.
// TotalMs excludes any currently open segment.
type TimerRecord struct {
	TotalMs  int64
	Segments []TimeSegment
}

// Clone returns a deep copy of the record.
func (r TimerRecord) Clone() TimerRecord {
	out := TimerRecord{TotalMs: r.TotalMs}
	if len(r.Segments) > 0 {
		out.Segments = make([]TimeSegment, len(r.Segments))
		copy(out.Segments, r.Segments)
	}
	return out
}

// OpenSegment returns the trailing open segment, if any.
func (r TimerRecord) OpenSegment() (TimeSegment, bool) {
	if n := len(r.Segments); n > 0 && r.Segments[n-1].Open() {
		return r.Segments[n-1], true
	}
	return TimeSegment{}, false
}

// CounterRecord accumulates tally events for one counter action.
// Timestamps holds one epoch-ms value per increment still in effect.
type CounterRecord struct {
	Count      int
	Timestamps []int64
}

// Clone returns a deep copy of the record.
func (r CounterRecord) Clone() CounterRecord {
	out := CounterRecord{Count: r.Count}
	if len(r.Timestamps) > 0 {
		out.Timestamps = make([]int64, len(r.Timestamps))
		copy(out.Timestamps, r.Timestamps)
	}
	return out
}

// Drill is one station within a practice session.
type Drill struct {
	ID            int // 1-based, immutable
	Tags          []string
	ActionButtons []ActionButton
	TimerData     map[string]TimerRecord
	CounterData   map[string]CounterRecord
	WasteMs       int64
}

// Clone returns a deep copy of the drill.
func (d Drill) Clone() Drill {
	out := Drill{ID: d.ID, WasteMs: d.WasteMs}
	if len(d.Tags) > 0 {
		out.Tags = make([]string, len(d.Tags))
		copy(out.Tags, d.Tags)
	}
	if len(d.ActionButtons) > 0 {
		out.ActionButtons = make([]ActionButton, len(d.ActionButtons))
		copy(out.ActionButtons, d.ActionButtons)
	}
	if len(d.TimerData) > 0 {
		out.TimerData = make(map[string]TimerRecord, len(d.TimerData))
		for id, rec := range d.TimerData {
			out.TimerData[id] = rec.Clone()
		}
	}
	if len(d.CounterData) > 0 {
		out.CounterData = make(map[string]CounterRecord, len(d.CounterData))
		for id, rec := range d.CounterData {
			out.CounterData[id] = rec.Clone()
		}
	}
	return out
}

// Action returns the drill's action button with the given id.
func (d Drill) Action(id string) (ActionButton, bool) {
	for _, btn := range d.ActionButtons {
		if btn.ID == id {
			return btn, true
		}
	}
	return ActionButton{}, false
}
