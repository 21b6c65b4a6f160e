package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"drillwatch/internal/model"
	"drillwatch/internal/report"
)

func sampleReport() report.Report {
	drills := []model.Drill{
		{
			ID:   1,
			Tags: []string{"warmup", "defense"},
			TimerData: map[string]model.TimerRecord{
				"explanation": {
					TotalMs: 5000,
					Segments: []model.TimeSegment{
						{StartMs: 1000, EndMs: 6000, DurationMs: 5000},
					},
				},
			},
			CounterData: map[string]model.CounterRecord{
				"shots": {Count: 2, Timestamps: []int64{2000, 3000}},
			},
			WasteMs: 700,
		},
		{ID: 2},
	}
	info := model.PracticeInfo{
		ClubName:     "Falcons",
		TeamName:     "U16",
		Date:         "2026-08-29",
		CoachName:    "Sam",
		DrillsNumber: 2,
	}
	return report.Build(info, "Sam", drills)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "drillwatch.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListPractices(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	createdAt := time.Unix(1_700_000_000, 0)
	id, err := st.InsertPractice(ctx, sampleReport(), createdAt)
	if err != nil {
		t.Fatalf("insert practice: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	practices, err := st.ListPractices(ctx, 0)
	if err != nil {
		t.Fatalf("list practices: %v", err)
	}
	if len(practices) != 1 {
		t.Fatalf("expected 1 practice, got %d", len(practices))
	}
	got := practices[0]
	if got.ClubName != "Falcons" || got.TeamName != "U16" || got.CoachName != "Sam" {
		t.Fatalf("unexpected listing: %+v", got)
	}
	if got.TimerMs != 5000 || got.WasteMs != 700 || got.TotalMs != 5700 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected created_at: %s", got.CreatedAt)
	}
}

func TestListPracticesLimit(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		createdAt := time.Unix(1_700_000_000+int64(i), 0)
		if _, err := st.InsertPractice(ctx, sampleReport(), createdAt); err != nil {
			t.Fatalf("insert practice: %v", err)
		}
	}
	practices, err := st.ListPractices(ctx, 2)
	if err != nil {
		t.Fatalf("list practices: %v", err)
	}
	if len(practices) != 2 {
		t.Fatalf("expected 2 practices, got %d", len(practices))
	}
	if !practices[0].CreatedAt.After(practices[1].CreatedAt) {
		t.Fatalf("expected newest first: %+v", practices)
	}
}

func TestGetPracticeRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	rep := sampleReport()
	id, err := st.InsertPractice(ctx, rep, time.Unix(1_700_000_000, 0))
	if err != nil {
		t.Fatalf("insert practice: %v", err)
	}

	got, err := st.GetPractice(ctx, id)
	if err != nil {
		t.Fatalf("get practice: %v", err)
	}
	if got.Info.ClubName != rep.Info.ClubName || got.CoachName != rep.CoachName {
		t.Fatalf("unexpected header: %+v", got.Info)
	}
	if len(got.Drills) != len(rep.Drills) {
		t.Fatalf("expected %d drills, got %d", len(rep.Drills), len(got.Drills))
	}
	first := got.Drills[0]
	if first.TimerMs != 5000 || first.WasteMs != 700 || len(first.Tags) != 2 {
		t.Fatalf("unexpected drill row: %+v", first)
	}
	if len(got.Segments) != 1 || got.Segments[0].ActionID != "explanation" {
		t.Fatalf("unexpected segments: %+v", got.Segments)
	}
	var shots report.ActionTotal
	for _, a := range got.Actions {
		if a.ActionID == "shots" {
			shots = a
		}
	}
	if shots.Count != 2 || shots.Kind != model.ActionCounter {
		t.Fatalf("unexpected shots total: %+v", shots)
	}
}

func TestGetPracticeMissing(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.GetPractice(context.Background(), 42); err == nil {
		t.Fatalf("expected error for missing practice")
	}
}
