package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/kegelcoach/internal/catalog"
	"github.com/sadopc/kegelcoach/internal/engine"
	"github.com/sadopc/kegelcoach/internal/progress"
)

type playOptions struct {
	tickMS int
	bell   bool
}

func newPlayCmd(root *rootOptions) *cobra.Command {
	opts := &playOptions{}
	cmd := &cobra.Command{
		Use:   "play [session-id]",
		Short: "Play a session without the UI",
		Long: `Play a session in the terminal, printing each phase as it starts.
Without an id the next session of the current plan is played.

Type a command and press enter while it plays:
  p   pause or resume
  n   skip to the next exercise
  x   end the session (confirm with y, keep going with c)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, root, opts, args)
		},
	}
	cmd.Flags().IntVar(&opts.tickMS, "tick-ms", 1000, "milliseconds per playback second")
	cmd.Flags().BoolVar(&opts.bell, "bell", true, "ring the terminal bell on transitions")
	return cmd
}

func runPlay(cmd *cobra.Command, root *rootOptions, opts *playOptions, args []string) error {
	e, err := root.open(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	interval := e.cfg.TickInterval()
	if cmd.Flags().Changed("tick-ms") || e.cfg.Player.TickMS == nil {
		if opts.tickMS <= 0 {
			return fmt.Errorf("--tick-ms must be greater than 0")
		}
		interval = time.Duration(opts.tickMS) * time.Millisecond
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sessionID, err := e.resolveSession(ctx, args)
	if err != nil {
		return err
	}
	locked, err := e.sessionLocked(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to check subscription: %w", err)
	}
	if locked {
		return fmt.Errorf("session %s: %w (the demo is always free: kegelcoach play %s)", sessionID, progress.ErrLocked, catalog.DemoSessionID)
	}

	settings, err := e.store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	out := cmd.OutOrStdout()
	show := printEvent(out, e.catalog)
	elapsed := 0
	var fb engine.Feedback
	if opts.bell {
		fb = engine.Bell{W: cmd.ErrOrStderr()}
	}
	eng := engine.New(e.catalog, engine.Options{
		Feedback: fb,
		Settings: engine.FeedbackSettings{Sound: settings.Sound, Vibration: settings.Vibration},
		Recorder: e.ledger,
		OnEvent: func(ev engine.Event) {
			elapsed = ev.Snapshot.Elapsed
			show(ev)
		},
		Logger: e.log,
	})
	if err := eng.Start(sessionID); err != nil {
		return err
	}

	session := eng.Session()
	attempt := eng.Snapshot().AttemptID
	if _, err := e.store.StartRun(attempt, session.ID, session.PlanID); err != nil {
		e.log.Warn("failed to log run", "error", err)
	}

	player := engine.NewPlayer(eng, interval, e.log)
	go readCommands(cmd.InOrStdin(), player)

	sum, err := player.Run(ctx)
	switch {
	case err == nil:
		if err := e.store.CompleteRun(attempt, sum.TotalElapsedSeconds, sum.Minutes); err != nil {
			e.log.Warn("failed to log run", "error", err)
		}
		st := e.ledger.State()
		fmt.Fprintf(out, "Streak: %d  Sessions: %d  Total: %d min\n", st.Streak, st.SessionsCompleted, st.TotalMinutes)
		return nil

	case errors.Is(err, engine.ErrStopped), errors.Is(err, context.Canceled):
		if err := e.store.CancelRun(attempt, elapsed); err != nil {
			e.log.Warn("failed to log run", "error", err)
		}
		fmt.Fprintln(out, "Session ended early. Progress was not recorded.")
		return nil

	default:
		if sum.AttemptID != "" {
			if cerr := e.store.CompleteRun(attempt, sum.TotalElapsedSeconds, sum.Minutes); cerr != nil {
				e.log.Warn("failed to log run", "error", cerr)
			}
		}
		return err
	}
}

// resolveSession picks the explicit id, or the next session of the plan the
// user follows.
func (e *env) resolveSession(ctx context.Context, args []string) (string, error) {
	if len(args) == 1 {
		if _, err := e.catalog.SessionByID(args[0]); err != nil {
			return "", err
		}
		return args[0], nil
	}
	plan, err := e.currentPlan(ctx)
	if err != nil {
		return "", err
	}
	return e.catalog.NextSession(plan, e.ledger.State().Progress.CurrentDayIndex).ID, nil
}

func (e *env) currentPlan(ctx context.Context) (catalog.Plan, error) {
	st := e.ledger.State()
	if id := st.Progress.CurrentPlanID; id != "" {
		if p, err := e.catalog.PlanByID(id); err == nil {
			return p, nil
		}
	}
	profile, err := e.store.GetProfile(ctx)
	if err != nil {
		return catalog.Plan{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return e.catalog.RecommendedPlan(profile.Experience), nil
}

// readCommands maps stdin lines to player intents until EOF.
func readCommands(in io.Reader, p *engine.Player) {
	exitPending := false
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		switch strings.ToLower(strings.TrimSpace(sc.Text())) {
		case "p", "":
			if !exitPending {
				p.TogglePause()
			}
		case "n":
			if !exitPending {
				p.Skip()
			}
		case "x", "q":
			exitPending = true
			p.RequestExit()
		case "y":
			if exitPending {
				p.Stop()
				return
			}
		case "c":
			if exitPending {
				exitPending = false
				p.CancelExit()
			}
		}
	}
}

func printEvent(out io.Writer, cat *catalog.Catalog) func(engine.Event) {
	return func(ev engine.Event) {
		s := ev.Snapshot
		switch ev.Kind {
		case engine.EventPhase:
			if s.Phase == engine.PhaseCompleted {
				return
			}
			if s.Phase == engine.PhaseCountdown {
				name := s.Step.ExerciseID
				if ex, err := cat.ExerciseByID(s.Step.ExerciseID); err == nil {
					name = ex.Name
				}
				fmt.Fprintf(out, "\n[%d/%d] %s: %s\n", s.StepIndex+1, s.StepCount, name, s.Step.Instruction)
			}
			line := fmt.Sprintf("  %-9s %3ds  set %d/%d", s.Phase, s.Remaining, s.Set, s.Step.Sets)
			if s.Step.RepDriven() {
				line += fmt.Sprintf("  rep %d/%d", s.Rep, s.Step.RepCount())
			}
			fmt.Fprintln(out, line)
		case engine.EventCompleted:
			sum := ev.Summary
			fmt.Fprintf(out, "\nSession complete in %02d:%02d (%d min recorded)\n",
				sum.TotalElapsedSeconds/60, sum.TotalElapsedSeconds%60, sum.Minutes)
		}
	}
}
