package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/kegelcoach/internal/engine"
	"github.com/sadopc/kegelcoach/internal/store"
)

// playerModel drives one engine per session start. Ticks carry a
// generation so a tick scheduled for a finished run is dropped.
type playerModel struct {
	svc    Services
	width  int
	height int

	engine *engine.Engine
	active bool
	gen    int

	summary   *engine.Summary
	commitErr error

	bar progress.Model
}

func newPlayerModel(svc Services) playerModel {
	svc = svc.withDefaults()
	return playerModel{
		svc: svc,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (p *playerModel) setSize(w, h int) {
	p.width = w
	p.height = h
	p.bar.Width = max(w-12, 10)
}

func playerTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return playerTickMsg{gen: gen}
	})
}

func (p playerModel) start(sessionID string) (playerModel, tea.Cmd) {
	settings, err := p.svc.Store.GetSettings()
	if err != nil {
		p.svc.Log.Warn("load settings, using defaults", "error", err)
		settings = store.DefaultSettings()
	}

	e := engine.New(p.svc.Catalog, engine.Options{
		Feedback: p.svc.Feedback,
		Settings: engine.FeedbackSettings{Sound: settings.Sound, Vibration: settings.Vibration},
		Recorder: p.svc.Ledger,
		Logger:   p.svc.Log,
	})
	if err := e.Start(sessionID); err != nil {
		return p, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Cannot start session: %v", err), isError: true}
		}
	}

	session := e.Session()
	if _, err := p.svc.Store.StartRun(e.Snapshot().AttemptID, session.ID, session.PlanID); err != nil {
		p.svc.Log.Warn("log run start", "error", err)
	}

	p.engine = e
	p.active = true
	p.summary = nil
	p.commitErr = nil
	p.gen++
	return p, playerTick(p.gen)
}

func (p playerModel) update(msg tea.Msg) (playerModel, tea.Cmd) {
	if !p.active {
		return p, nil
	}

	switch msg := msg.(type) {
	case playerTickMsg:
		if msg.gen != p.gen || p.summary != nil {
			return p, nil
		}
		p.engine.Tick()
		if _, done := p.engine.Summary(); done {
			return p.finish()
		}
		return p, playerTick(p.gen)

	case tea.KeyMsg:
		if p.summary != nil {
			return p.updateSummary(msg)
		}

		if p.engine.Snapshot().ExitPending {
			switch {
			case key.Matches(msg, keys.Confirm):
				return p.exit()
			case key.Matches(msg, keys.Cancel):
				p.engine.CancelExit()
			}
			return p, nil
		}

		switch {
		case key.Matches(msg, keys.Pause):
			p.engine.TogglePause()
		case key.Matches(msg, keys.Skip):
			p.engine.Skip()
			if _, done := p.engine.Summary(); done {
				return p.finish()
			}
		case key.Matches(msg, keys.Exit), key.Matches(msg, keys.Back):
			p.engine.RequestExit()
		}
	}
	return p, nil
}

// finish records the completed attempt. A failed commit keeps the summary
// on screen so the user can retry.
func (p playerModel) finish() (playerModel, tea.Cmd) {
	sum, ok := p.engine.Summary()
	if !ok {
		return p, nil
	}
	p.summary = &sum
	if err := p.svc.Store.CompleteRun(sum.AttemptID, sum.TotalElapsedSeconds, sum.Minutes); err != nil {
		p.svc.Log.Warn("log run completion", "attempt", sum.AttemptID, "error", err)
	}
	return p.commit()
}

func (p playerModel) commit() (playerModel, tea.Cmd) {
	if err := p.engine.Commit(context.Background()); err != nil {
		p.svc.Log.Error("record completion", "session", p.summary.SessionID, "error", err)
		p.commitErr = err
		return p, func() tea.Msg {
			return statusMsg{text: "Could not save progress, press r to retry", isError: true}
		}
	}
	p.commitErr = nil
	return p, func() tea.Msg { return ledgerChangedMsg{} }
}

func (p playerModel) updateSummary(msg tea.KeyMsg) (playerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Reset):
		if p.commitErr != nil {
			return p.commit()
		}
	case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
		return p.close()
	}
	return p, nil
}

// exit abandons the attempt. Nothing reaches the ledger.
func (p playerModel) exit() (playerModel, tea.Cmd) {
	snap := p.engine.Snapshot()
	p.engine.Exit()
	if err := p.svc.Store.CancelRun(snap.AttemptID, snap.Elapsed); err != nil {
		p.svc.Log.Warn("log run cancel", "attempt", snap.AttemptID, "error", err)
	}
	p.active = false
	p.gen++
	return p, func() tea.Msg { return playerClosedMsg{} }
}

func (p playerModel) close() (playerModel, tea.Cmd) {
	sum := p.summary
	p.engine.Exit()
	p.active = false
	p.summary = nil
	p.commitErr = nil
	p.gen++
	return p, func() tea.Msg { return playerClosedMsg{summary: sum} }
}

func (p playerModel) view() string {
	w := p.width - 4
	if p.summary != nil {
		return p.viewSummary(w)
	}

	snap := p.engine.Snapshot()
	session := p.engine.Session()
	step := snap.Step

	exName := step.ExerciseID
	var cues []string
	if ex, err := p.svc.Catalog.ExerciseByID(step.ExerciseID); err == nil {
		exName = ex.Name
		cues = ex.TechniqueCues
	}

	title := titleStyle.Render(session.Title)
	stepLine := mutedStyle.Render(fmt.Sprintf("Step %d of %d · %s", snap.StepIndex+1, snap.StepCount, step.Kind))

	clockStyle := countdownStyle
	label := "GET READY"
	switch snap.Phase {
	case engine.PhaseWork:
		clockStyle = workStyle
		label = "SQUEEZE"
	case engine.PhaseRest:
		clockStyle = restStyle
		label = "RELAX"
	}
	if snap.Paused {
		clockStyle = pausedStyle
		label = "PAUSED"
	}

	clock := clockStyle.Width(w - 6).Render(formatClock(snap.Remaining))
	phaseLabel := clockStyle.Width(w - 6).Render(label)

	counter := fmt.Sprintf("Set %d/%d", snap.Set, step.Sets)
	if step.RepDriven() {
		counter += fmt.Sprintf(" · Rep %d/%d", snap.Rep, step.RepCount())
	}

	rows := []string{
		title,
		stepLine,
		"",
		highlightStyle.Bold(true).Render(exName),
		step.Instruction,
		"",
		clock,
		phaseLabel,
		"",
		"  " + p.bar.ViewAs(snap.Progress),
		mutedStyle.Render("  " + counter + "   elapsed " + formatClock(snap.Elapsed)),
	}

	if len(cues) > 0 {
		rows = append(rows, "")
		for _, c := range cues {
			rows = append(rows, mutedStyle.Render("  • "+c))
		}
	}

	rows = append(rows, "")
	if snap.ExitPending {
		rows = append(rows, warningStyle.Render("End this session? Progress will not be saved.  y: end  n: keep going"))
	} else {
		rows = append(rows, mutedStyle.Render("space: pause/resume  n: next step  x: exit"))
	}

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (p playerModel) viewSummary(w int) string {
	sum := p.summary
	st := p.svc.Ledger.State()

	rows := []string{
		successStyle.Bold(true).Render("Session complete!"),
		"",
		fmt.Sprintf("  Time          %s", highlightStyle.Render(formatClock(sum.TotalElapsedSeconds))),
		fmt.Sprintf("  Exercises     %s", highlightStyle.Render(fmt.Sprint(sum.StepCount))),
		fmt.Sprintf("  Minutes       %s", highlightStyle.Render(fmt.Sprint(sum.Minutes))),
	}
	if p.commitErr == nil {
		rows = append(rows,
			fmt.Sprintf("  Streak        %s", accentStyle.Render(plural(st.Streak, "day"))),
			fmt.Sprintf("  Total         %s", highlightStyle.Render(formatMinutes(st.TotalMinutes))),
		)
	}

	rows = append(rows, "")
	if p.commitErr != nil {
		rows = append(rows,
			errorStyle.Render("Progress was not saved: "+p.commitErr.Error()),
			mutedStyle.Render("r: retry  enter: close"),
		)
	} else {
		rows = append(rows, mutedStyle.Render("enter: close"))
	}

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
