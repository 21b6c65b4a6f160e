package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"drillwatch/internal/model"
)

const (
	timelineFilled      = '█'
	timelineEmpty       = '·'
	minTimelineWidth    = 10
	terminalWidthBackup = 80
)

// FormatDuration renders milliseconds as m:ss or h:mm:ss.
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSec := ms / 1000
	h := totalSec / 3600
	m := (totalSec % 3600) / 60
	s := totalSec % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// RenderSummary prints the practice header and overall totals.
func RenderSummary(w io.Writer, rep Report) error {
	coach := rep.CoachName
	if coach == "" {
		coach = rep.Info.CoachName
	}
	lines := []string{
		"Practice Report",
		fmt.Sprintf("Club: %s  Team: %s  Date: %s", orDash(rep.Info.ClubName), orDash(rep.Info.TeamName), orDash(rep.Info.Date)),
		fmt.Sprintf("Coach: %s  Athletes: %d  Coaches: %d", orDash(coach), rep.Info.AthletesNumber, rep.Info.CoachesNumber),
	}
	if rep.Info.TrackedPlayerName != "" {
		lines = append(lines, fmt.Sprintf("Tracked player: %s", rep.Info.TrackedPlayerName))
	}
	lines = append(lines,
		fmt.Sprintf("Drills: %d  Tracked: %s  Waste: %s (%s)",
			len(rep.Drills),
			FormatDuration(rep.TotalMs),
			FormatDuration(rep.WasteMs),
			sharePercent(rep.WasteMs, rep.TotalMs)),
		"",
	)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDrillTable prints per-drill totals with timeline offsets.
func RenderDrillTable(w io.Writer, rep Report) error {
	if len(rep.Drills) == 0 {
		_, err := fmt.Fprintln(w, "No drills tracked.")
		return err
	}
	headers := []string{"Drill", "Tags", "Timed", "Waste", "Total", "Start", "End"}
	rows := make([][]string, 0, len(rep.Drills))
	for _, d := range rep.Drills {
		start, end := "-", "-"
		if d.HasSegments {
			start = FormatDuration(d.StartOffsetMs)
			end = FormatDuration(d.EndOffsetMs)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", d.DrillID),
			strings.Join(d.Tags, ","),
			FormatDuration(d.TimerMs),
			FormatDuration(d.WasteMs),
			FormatDuration(d.TotalMs),
			start,
			end,
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderActionTable prints per-action totals across all drills.
func RenderActionTable(w io.Writer, rep Report) error {
	if len(rep.Actions) == 0 {
		_, err := fmt.Fprintln(w, "No actions tracked.")
		return err
	}
	headers := []string{"Action", "Kind", "Total"}
	rows := make([][]string, 0, len(rep.Actions))
	for _, a := range rep.Actions {
		total := FormatDuration(a.TotalMs)
		if a.Kind == model.ActionCounter {
			total = fmt.Sprintf("%d", a.Count)
		}
		rows = append(rows, []string{a.ActionID, a.Kind.String(), total})
	}
	rightAlign := map[int]bool{2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTimeline prints one proportional gauge row per drill, mapping
// its closed segments onto the session timeline. Width 0 sizes the
// gauge to the terminal.
func RenderTimeline(w io.Writer, rep Report, width int) error {
	if len(rep.Segments) == 0 {
		_, err := fmt.Fprintln(w, "No closed segments to plot.")
		return err
	}
	sessionEnd := rep.Segments[0].EndOffsetMs
	for _, seg := range rep.Segments {
		if seg.EndOffsetMs > sessionEnd {
			sessionEnd = seg.EndOffsetMs
		}
	}
	if sessionEnd <= 0 {
		_, err := fmt.Fprintln(w, "No closed segments to plot.")
		return err
	}

	labels := make(map[int]string, len(rep.Drills))
	labelWidth := 0
	for _, d := range rep.Drills {
		label := fmt.Sprintf("Drill %d", d.DrillID)
		labels[d.DrillID] = label
		if lw := runewidth.StringWidth(label); lw > labelWidth {
			labelWidth = lw
		}
	}

	if width <= 0 {
		width = terminalWidth()
	}
	gaugeWidth := width - labelWidth - 3
	if gaugeWidth < minTimelineWidth {
		gaugeWidth = minTimelineWidth
	}

	if _, err := fmt.Fprintf(w, "Timeline (0 .. %s)\n", FormatDuration(sessionEnd)); err != nil {
		return err
	}
	for _, d := range rep.Drills {
		if !d.HasSegments {
			continue
		}
		gauge := make([]rune, gaugeWidth)
		for i := range gauge {
			gauge[i] = timelineEmpty
		}
		for _, seg := range rep.Segments {
			if seg.DrillID != d.DrillID {
				continue
			}
			from := offsetToCell(seg.StartOffsetMs, sessionEnd, gaugeWidth)
			to := offsetToCell(seg.EndOffsetMs, sessionEnd, gaugeWidth)
			for i := from; i <= to && i < gaugeWidth; i++ {
				gauge[i] = timelineFilled
			}
		}
		label := runewidth.FillRight(labels[d.DrillID], labelWidth)
		if _, err := fmt.Fprintf(w, "%s │ %s\n", label, string(gauge)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func offsetToCell(offsetMs, sessionEnd int64, width int) int {
	cell := int(offsetMs * int64(width-1) / sessionEnd)
	if cell < 0 {
		cell = 0
	}
	if cell >= width {
		cell = width - 1
	}
	return cell
}

func sharePercent(part, whole int64) string {
	if whole <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(whole)*100)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
