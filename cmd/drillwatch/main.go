// Package main provides the CLI entrypoint for drillwatch.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"drillwatch/internal/config"
	"drillwatch/internal/identity"
	"drillwatch/internal/model"
	"drillwatch/internal/report"
	"drillwatch/internal/session"
	"drillwatch/internal/store"
	"drillwatch/internal/tui"
)

const (
	defaultTickMs = 100
	defaultDrills = 0
)

var (
	trackClub     string
	trackTeam     string
	trackCoach    string
	trackAthletes int
	trackCoaches  int
	trackDrills   int
	trackTickMs   int
	trackNoSave   bool

	historyLast int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "drillwatch",
		Short:         "TUI practice efficiency tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTrackCmd,
	}

	rootCmd.Flags().StringVar(&trackClub, "club", "", "club name")
	rootCmd.Flags().StringVar(&trackTeam, "team", "", "team name")
	rootCmd.Flags().StringVar(&trackCoach, "coach", "", "coach name for report headers")
	rootCmd.Flags().IntVar(&trackAthletes, "athletes", 0, "number of athletes")
	rootCmd.Flags().IntVar(&trackCoaches, "coaches", 0, "number of coaches")
	rootCmd.Flags().IntVar(&trackDrills, "drills", defaultDrills, "number of drills")
	rootCmd.Flags().IntVar(&trackTickMs, "tick-ms", defaultTickMs, "sampling tick interval in milliseconds")
	rootCmd.Flags().BoolVar(&trackNoSave, "no-save", false, "do not archive the finished practice")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runTrackCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "club", &trackClub, fileCfg.Practice.Club)
	applyStringConfig(cmd, "team", &trackTeam, fileCfg.Practice.Team)
	applyStringConfig(cmd, "coach", &trackCoach, fileCfg.Practice.Coach)
	applyIntConfig(cmd, "athletes", &trackAthletes, fileCfg.Practice.Athletes)
	applyIntConfig(cmd, "coaches", &trackCoaches, fileCfg.Practice.Coaches)
	applyIntConfig(cmd, "drills", &trackDrills, fileCfg.Practice.Drills)
	applyIntConfig(cmd, "tick-ms", &trackTickMs, fileCfg.Tracking.TickMs)

	if trackTickMs <= 0 {
		return fmt.Errorf("--tick-ms must be > 0")
	}
	if trackDrills < 0 {
		return fmt.Errorf("--drills must be >= 0")
	}

	var st *store.Store
	if !trackNoSave {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	ctrl := session.New(session.SystemClock{})
	ctrl.SetPracticeInfo(model.PracticeInfo{
		ClubName:       trackClub,
		TeamName:       trackTeam,
		CoachName:      trackCoach,
		AthletesNumber: trackAthletes,
		CoachesNumber:  trackCoaches,
		Date:           time.Now().Format("2006-01-02"),
		DrillsNumber:   trackDrills,
	})

	provider := identity.EnvProvider{Fallback: trackCoach}
	interval := time.Duration(trackTickMs) * time.Millisecond
	m := tui.NewModel(ctrl, st, provider, interval)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List archived practices or show one report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N practices")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid practice id %q", args[0])
		}
		rep, err := st.GetPractice(ctx, id)
		if err != nil {
			return err
		}
		if err := report.RenderSummary(out, rep); err != nil {
			return err
		}
		if err := report.RenderDrillTable(out, rep); err != nil {
			return err
		}
		if err := report.RenderActionTable(out, rep); err != nil {
			return err
		}
		return report.RenderTimeline(out, rep, 0)
	}

	practices, err := st.ListPractices(ctx, historyLast)
	if err != nil {
		return fmt.Errorf("failed to list practices: %w", err)
	}
	if len(practices) == 0 {
		_, err := fmt.Fprintln(out, "No archived practices.")
		return err
	}
	for _, p := range practices {
		if _, err := fmt.Fprintf(out, "%4d  %s  %s / %s  coach %s  drills %d  tracked %s  waste %s\n",
			p.ID,
			p.Date,
			orDash(p.ClubName),
			orDash(p.TeamName),
			orDash(p.CoachName),
			p.Drills,
			report.FormatDuration(p.TotalMs),
			report.FormatDuration(p.WasteMs),
		); err != nil {
			return err
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# drillwatch configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# club = ""        # Club name
# team = ""        # Team name
# coach = ""       # Coach name for report headers
# athletes = 0     # Number of athletes
# coaches = 0      # Number of coaches
# drills = %d      # Number of drills

[tracking]
# tick-ms = %d    # Sampling tick interval in milliseconds
`,
		defaultDrills,
		defaultTickMs,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
