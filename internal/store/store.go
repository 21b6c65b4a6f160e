// Package store handles SQLite persistence of finished practice reports.
// Live session state is never written here; the archive consumes report
// output only.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"drillwatch/internal/model"
	"drillwatch/internal/report"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for archived practices.
type Store struct {
	db *sql.DB
}

// PracticeSummary is one row of the practice archive listing.
type PracticeSummary struct {
	ID        int64
	ClubName  string
	TeamName  string
	Date      string
	CoachName string
	Drills    int
	TimerMs   int64
	WasteMs   int64
	TotalMs   int64
	CreatedAt time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS practices (
			id INTEGER PRIMARY KEY,
			club TEXT NOT NULL,
			team TEXT NOT NULL,
			date TEXT NOT NULL,
			coach TEXT NOT NULL,
			athletes INTEGER NOT NULL,
			coaches INTEGER NOT NULL,
			tracked_player TEXT NOT NULL,
			drills INTEGER NOT NULL,
			timer_ms INTEGER NOT NULL,
			waste_ms INTEGER NOT NULL,
			total_ms INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS practice_drills (
			practice_id INTEGER NOT NULL,
			drill_id INTEGER NOT NULL,
			tags TEXT NOT NULL,
			timer_ms INTEGER NOT NULL,
			waste_ms INTEGER NOT NULL,
			start_offset_ms INTEGER NOT NULL,
			end_offset_ms INTEGER NOT NULL,
			has_segments INTEGER NOT NULL,
			PRIMARY KEY (practice_id, drill_id)
		);`,
		`CREATE TABLE IF NOT EXISTS practice_actions (
			practice_id INTEGER NOT NULL,
			action_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			total_ms INTEGER NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (practice_id, action_id)
		);`,
		`CREATE TABLE IF NOT EXISTS practice_segments (
			practice_id INTEGER NOT NULL,
			drill_id INTEGER NOT NULL,
			action_id TEXT NOT NULL,
			start_offset_ms INTEGER NOT NULL,
			end_offset_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_practices_created_at ON practices(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_practice_segments_practice ON practice_segments(practice_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertPractice archives a finished practice report.
func (s *Store) InsertPractice(ctx context.Context, rep report.Report, createdAt time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	coach := rep.CoachName
	if coach == "" {
		coach = rep.Info.CoachName
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO practices (club, team, date, coach, athletes, coaches, tracked_player, drills, timer_ms, waste_ms, total_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.Info.ClubName,
		rep.Info.TeamName,
		rep.Info.Date,
		coach,
		rep.Info.AthletesNumber,
		rep.Info.CoachesNumber,
		rep.Info.TrackedPlayerName,
		len(rep.Drills),
		rep.TimerMs,
		rep.WasteMs,
		rep.TotalMs,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, d := range rep.Drills {
		hasSegments := 0
		if d.HasSegments {
			hasSegments = 1
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO practice_drills (practice_id, drill_id, tags, timer_ms, waste_ms, start_offset_ms, end_offset_ms, has_segments)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, d.DrillID, joinTags(d.Tags), d.TimerMs, d.WasteMs, d.StartOffsetMs, d.EndOffsetMs, hasSegments,
		); err != nil {
			return 0, err
		}
	}
	for _, a := range rep.Actions {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO practice_actions (practice_id, action_id, kind, total_ms, count)
			 VALUES (?, ?, ?, ?, ?)`,
			id, a.ActionID, a.Kind.String(), a.TotalMs, a.Count,
		); err != nil {
			return 0, err
		}
	}
	if len(rep.Segments) > 0 {
		stmt, serr := tx.PrepareContext(ctx,
			`INSERT INTO practice_segments (practice_id, drill_id, action_id, start_offset_ms, end_offset_ms)
			 VALUES (?, ?, ?, ?, ?)`)
		if serr != nil {
			err = serr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, seg := range rep.Segments {
			if _, err = stmt.ExecContext(ctx, id, seg.DrillID, seg.ActionID, seg.StartOffsetMs, seg.EndOffsetMs); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListPractices returns archived practice summaries, newest first,
// optionally limited.
func (s *Store) ListPractices(ctx context.Context, limit int) ([]PracticeSummary, error) {
	query := `SELECT id, club, team, date, coach, drills, timer_ms, waste_ms, total_ms, created_at
		FROM practices
		ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []PracticeSummary
	for rows.Next() {
		var sum PracticeSummary
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.ClubName, &sum.TeamName, &sum.Date, &sum.CoachName, &sum.Drills, &sum.TimerMs, &sum.WasteMs, &sum.TotalMs, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		sum.CreatedAt = parsed
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPractice reconstructs an archived practice report.
func (s *Store) GetPractice(ctx context.Context, id int64) (report.Report, error) {
	var rep report.Report
	var createdAt string
	row := s.db.QueryRowContext(ctx,
		`SELECT club, team, date, coach, athletes, coaches, tracked_player, timer_ms, waste_ms, total_ms, created_at
		 FROM practices WHERE id = ?`, id)
	if err := row.Scan(
		&rep.Info.ClubName, &rep.Info.TeamName, &rep.Info.Date, &rep.CoachName,
		&rep.Info.AthletesNumber, &rep.Info.CoachesNumber, &rep.Info.TrackedPlayerName,
		&rep.TimerMs, &rep.WasteMs, &rep.TotalMs, &createdAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return report.Report{}, fmt.Errorf("practice %d not found", id)
		}
		return report.Report{}, err
	}
	rep.Info.CoachName = rep.CoachName

	drillRows, err := s.db.QueryContext(ctx,
		`SELECT drill_id, tags, timer_ms, waste_ms, start_offset_ms, end_offset_ms, has_segments
		 FROM practice_drills WHERE practice_id = ? ORDER BY drill_id ASC`, id)
	if err != nil {
		return report.Report{}, err
	}
	defer func() {
		if cerr := drillRows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for drillRows.Next() {
		var d report.DrillSummary
		var tags string
		var hasSegments int
		if err := drillRows.Scan(&d.DrillID, &tags, &d.TimerMs, &d.WasteMs, &d.StartOffsetMs, &d.EndOffsetMs, &hasSegments); err != nil {
			return report.Report{}, err
		}
		d.Tags = splitTags(tags)
		d.TotalMs = d.TimerMs + d.WasteMs
		d.HasSegments = hasSegments != 0
		rep.Drills = append(rep.Drills, d)
	}
	if err := drillRows.Err(); err != nil {
		return report.Report{}, err
	}
	rep.Info.DrillsNumber = len(rep.Drills)

	actionRows, err := s.db.QueryContext(ctx,
		`SELECT action_id, kind, total_ms, count
		 FROM practice_actions WHERE practice_id = ? ORDER BY action_id ASC`, id)
	if err != nil {
		return report.Report{}, err
	}
	defer func() {
		if cerr := actionRows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for actionRows.Next() {
		var a report.ActionTotal
		var kind string
		if err := actionRows.Scan(&a.ActionID, &kind, &a.TotalMs, &a.Count); err != nil {
			return report.Report{}, err
		}
		a.Kind = parseKind(kind)
		rep.Actions = append(rep.Actions, a)
	}
	if err := actionRows.Err(); err != nil {
		return report.Report{}, err
	}

	segRows, err := s.db.QueryContext(ctx,
		`SELECT drill_id, action_id, start_offset_ms, end_offset_ms
		 FROM practice_segments WHERE practice_id = ? ORDER BY start_offset_ms ASC, end_offset_ms ASC`, id)
	if err != nil {
		return report.Report{}, err
	}
	defer func() {
		if cerr := segRows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for segRows.Next() {
		var seg report.Segment
		if err := segRows.Scan(&seg.DrillID, &seg.ActionID, &seg.StartOffsetMs, &seg.EndOffsetMs); err != nil {
			return report.Report{}, err
		}
		rep.Segments = append(rep.Segments, seg)
	}
	if err := segRows.Err(); err != nil {
		return report.Report{}, err
	}

	for _, d := range rep.Drills {
		if d.HasSegments {
			rep.Boundaries = append(rep.Boundaries, report.Boundary{DrillID: d.DrillID, OffsetMs: d.StartOffsetMs})
		}
	}
	return rep, nil
}

func parseKind(kind string) model.ActionKind {
	if kind == "counter" {
		return model.ActionCounter
	}
	return model.ActionTimer
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
