package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/sadopc/kegelcoach/internal/config"
	"github.com/sadopc/kegelcoach/internal/export"
	"github.com/sadopc/kegelcoach/internal/progress"
	"github.com/sadopc/kegelcoach/internal/store"
	"github.com/sadopc/kegelcoach/internal/tui"
)

func newPlansCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List training plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := root.open(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			current, err := e.currentPlan(cmd.Context())
			if err != nil {
				return err
			}
			completed := e.ledger.State().Progress.CompletedSessions

			out := cmd.OutOrStdout()
			for _, p := range e.catalog.Plans() {
				marker := " "
				if p.ID == current.ID {
					marker = "*"
				}
				ids := make([]string, len(p.Sessions))
				for i, s := range p.Sessions {
					ids[i] = s.ID
				}
				done := progress.PlanCompletion(ids, completed)
				fmt.Fprintf(out, "%s %-14s %-28s %3d days  %3.0f%% done\n", marker, p.ID, p.Name, p.DurationDays, done*100)
			}
			return nil
		},
	}
}

func newSessionsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions [plan-id]",
		Short: "List the sessions of a plan (default: the current plan)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := root.open(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			plan, err := e.currentPlan(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if plan, err = e.catalog.PlanByID(args[0]); err != nil {
					return err
				}
			}

			st := e.ledger.State()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", plan.Name, plan.Level)
			for _, s := range plan.Sessions {
				check := " "
				if slices.Contains(st.Progress.CompletedSessions, s.ID) {
					check = "✓"
				}
				fmt.Fprintf(out, "%s day %-3d %-24s %-30s %02d:%02d\n",
					check, s.DayIndex, s.ID, s.Title, s.TotalSeconds/60, s.TotalSeconds%60)
			}
			demo := e.catalog.Demo()
			fmt.Fprintf(out, "\nDemo: %s (%s), always free\n", demo.Title, demo.ID)
			return nil
		},
	}
}

func newStatsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show streak, totals and milestones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := root.open(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			now := time.Now()
			st := e.ledger.State()
			out := cmd.OutOrStdout()

			last := st.LastSessionDate
			if last == "" {
				last = "never"
			}
			fmt.Fprintf(out, "Streak:        %d\n", st.Streak)
			fmt.Fprintf(out, "Sessions:      %d\n", st.SessionsCompleted)
			fmt.Fprintf(out, "Minutes:       %d\n", st.TotalMinutes)
			fmt.Fprintf(out, "This week:     %d/%d\n", progress.WeeklyCount(st.Progress.CompletedDates, now), progress.WeeklyGoal)
			fmt.Fprintf(out, "Last session:  %s\n", last)

			fmt.Fprintln(out, "\nMilestones:")
			for _, m := range progress.Milestones(st) {
				mark := "[ ]"
				if m.Achieved {
					mark = "[x]"
				}
				fmt.Fprintf(out, "  %s %s\n", mark, m.Name)
			}

			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			days, err := e.store.MinutesByDay(today.AddDate(0, 0, -6), today.AddDate(0, 0, 1))
			if err != nil {
				return err
			}
			if len(days) > 0 {
				fmt.Fprintln(out, "\nLast 7 days:")
				for _, d := range days {
					fmt.Fprintf(out, "  %s  %3d min  %s\n", d.Date, d.Minutes, strings.Repeat("#", d.Minutes))
				}
			}
			return nil
		},
	}
}

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var limit int
	var all bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent playback attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := root.open(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			f := store.RunFilter{Limit: limit}
			if !all {
				completed := store.RunCompleted
				f.Status = &completed
			}
			runs, err := e.store.ListRuns(f)
			if err != nil {
				return err
			}
			titles := tui.SessionTitles(e.catalog)
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No sessions yet.")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %-9s  %-30s %02d:%02d\n",
					r.StartedAt.Local().Format("2006-01-02 15:04"), r.Status, titles[r.SessionID],
					r.ElapsedSeconds/60, r.ElapsedSeconds%60)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of attempts to show")
	cmd.Flags().BoolVar(&all, "all", false, "include ended and unfinished attempts")
	return cmd
}

func newResetCmd(root *rootOptions) *cobra.Command {
	var all, yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear training progress",
		Long: `Clear streak, minutes and completed sessions. Settings and your
profile are kept unless --all is given, which erases everything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := root.open(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			if !yes {
				title := "Reset progress?"
				if all {
					title = "Erase all kegelcoach data?"
				}
				ok := false
				if err := huh.NewConfirm().Title(title).Affirmative("Reset").Negative("Cancel").Value(&ok).Run(); err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if all {
				err = e.ledger.ResetAll(cmd.Context())
			} else {
				err = e.ledger.ResetProgress(cmd.Context())
			}
			if err != nil {
				return err
			}
			e.log.Info("reset", "all", all)
			fmt.Fprintln(cmd.OutOrStdout(), "Done.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "also erase profile and settings")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newExportCmd(root *rootOptions) *cobra.Command {
	var format, outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export session history as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("--format must be csv or json")
			}
			e, err := root.open(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			runs, err := e.store.ListRuns(store.RunFilter{})
			if err != nil {
				return err
			}
			titles := tui.SessionTitles(e.catalog)

			switch {
			case outPath == "" && format == "csv":
				return export.WriteCSV(cmd.OutOrStdout(), runs, titles)
			case outPath == "":
				return export.WriteJSON(cmd.OutOrStdout(), runs, titles)
			case format == "csv":
				err = export.ToCSV(runs, titles, outPath)
			default:
				err = export.ToJSON(runs, titles, outPath)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d runs to %s\n", len(runs), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "csv or json")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")
	return cmd
}

func newSubscribeCmd(root *rootOptions) *cobra.Command {
	var off bool
	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Unlock every session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := root.open(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.store.SetSubscribed(cmd.Context(), !off); err != nil {
				return err
			}
			if off {
				fmt.Fprintln(cmd.OutOrStdout(), "Subscription off.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Subscribed. All sessions are unlocked.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "turn the subscription off")
	return cmd
}

func newConfigCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return openConfig(root.configPath)
		},
	}
}

func openConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}
