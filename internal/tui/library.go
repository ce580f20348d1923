package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/kegelcoach/internal/catalog"
	"github.com/sadopc/kegelcoach/internal/progress"
)

type libraryModel struct {
	svc    Services
	width  int
	height int

	plans           []catalog.Plan
	cursor          int
	sessionCursor   int
	viewingSessions bool // true = viewing sessions of selected plan

	completed     []string
	currentPlanID string
	locked        bool
}

func newLibraryModel(svc Services) libraryModel {
	svc = svc.withDefaults()
	return libraryModel{
		svc:   svc,
		plans: svc.Catalog.Plans(),
	}
}

func (l *libraryModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

type libraryDataMsg struct {
	completed     []string
	currentPlanID string
	locked        bool
}

func (l libraryModel) refresh() tea.Cmd {
	return func() tea.Msg {
		st := l.svc.Ledger.State()
		profile, err := l.svc.Store.GetProfile(context.Background())
		if err != nil {
			l.svc.Log.Warn("load profile", "error", err)
		}
		return libraryDataMsg{
			completed:     st.Progress.CompletedSessions,
			currentPlanID: currentPlan(l.svc.Catalog, st, profile.Experience).ID,
			locked:        progress.Locked(profile.Subscribed, st.SessionsCompleted),
		}
	}
}

func (l libraryModel) update(msg tea.Msg) (libraryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case libraryDataMsg:
		l.completed = msg.completed
		l.currentPlanID = msg.currentPlanID
		l.locked = msg.locked
		return l, nil

	case tea.KeyMsg:
		if l.viewingSessions {
			return l.updateSessionList(msg)
		}
		return l.updatePlanList(msg)
	}
	return l, nil
}

func (l libraryModel) updatePlanList(msg tea.KeyMsg) (libraryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, keys.Down):
		if l.cursor < len(l.plans)-1 {
			l.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(l.plans) > 0 {
			l.viewingSessions = true
			l.sessionCursor = 0
		}
	case key.Matches(msg, keys.Select):
		return l, l.selectPlan()
	}
	return l, nil
}

func (l libraryModel) updateSessionList(msg tea.KeyMsg) (libraryModel, tea.Cmd) {
	sessions := l.plans[l.cursor].Sessions
	switch {
	case key.Matches(msg, keys.Back):
		l.viewingSessions = false
	case key.Matches(msg, keys.Up):
		if l.sessionCursor > 0 {
			l.sessionCursor--
		}
	case key.Matches(msg, keys.Down):
		if l.sessionCursor < len(sessions)-1 {
			l.sessionCursor++
		}
	case key.Matches(msg, keys.Start):
		if len(sessions) > 0 {
			id := sessions[l.sessionCursor].ID
			return l, func() tea.Msg { return startSessionMsg{sessionID: id} }
		}
	case key.Matches(msg, keys.Select):
		return l, l.selectPlan()
	}
	return l, nil
}

func (l libraryModel) selectPlan() tea.Cmd {
	if len(l.plans) == 0 {
		return nil
	}
	plan := l.plans[l.cursor]
	if plan.ID == l.currentPlanID {
		return nil
	}
	return func() tea.Msg {
		if err := l.svc.Ledger.SelectPlan(context.Background(), plan.ID); err != nil {
			l.svc.Log.Error("select plan", "plan", plan.ID, "error", err)
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return ledgerChangedMsg{}
	}
}

func (l libraryModel) view() string {
	if l.viewingSessions {
		return l.renderSessionList()
	}
	return l.renderPlanList()
}

func (l libraryModel) renderPlanList() string {
	w := l.width - 4
	title := titleStyle.Render("Training Plans")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-28s %-14s %-8s %s", "", "Plan", "Level", "Days", "Done"))
	rows = append(rows, header)

	for i, plan := range l.plans {
		marker := " "
		if plan.ID == l.currentPlanID {
			marker = successStyle.Render("●")
		}
		cursor := "  "
		style := normalItemStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		done := progress.PlanCompletion(sessionIDs(plan), l.completed)
		row := style.Render(fmt.Sprintf("%s%s %-28s %-14s %-8d %3.0f%%", cursor, marker, plan.Name, plan.Level, plan.DurationDays, done*100))
		rows = append(rows, row)
	}

	if len(l.plans) > 0 {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  "+l.plans[l.cursor].Description))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: sessions  s: follow plan"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (l libraryModel) renderSessionList() string {
	w := l.width - 4
	plan := l.plans[l.cursor]
	title := titleStyle.Render(fmt.Sprintf("%s · Sessions", plan.Name))

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, s := range plan.Sessions {
		cursor := "  "
		style := normalItemStyle
		if i == l.sessionCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		if l.locked {
			style = lockedItemStyle
		}
		check := " "
		if slices.Contains(l.completed, s.ID) {
			check = successStyle.Render("✓")
		}
		rows = append(rows, fmt.Sprintf("%s %s", check, style.Render(fmt.Sprintf("%sDay %-3d %-30s %s", cursor, s.DayIndex, s.Title, formatClock(s.TotalSeconds)))))
	}

	if len(plan.Sessions) > 0 {
		rows = append(rows, "")
		rows = append(rows, l.renderSteps(plan.Sessions[l.sessionCursor]))
	}

	rows = append(rows, "")
	if l.locked {
		rows = append(rows, warningStyle.Render("  Subscribe to unlock these sessions"))
	}
	rows = append(rows, mutedStyle.Render("  enter: start  s: follow plan  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (l libraryModel) renderSteps(s catalog.Session) string {
	var rows []string
	rows = append(rows, highlightStyle.Render(s.Description))
	for _, step := range s.Steps {
		name := step.ExerciseID
		if ex, err := l.svc.Catalog.ExerciseByID(step.ExerciseID); err == nil {
			name = ex.Name
		}
		shape := fmt.Sprintf("%d × %ds on / %ds off", step.Sets, step.WorkSeconds, step.RestSeconds)
		if step.RepDriven() {
			shape = fmt.Sprintf("%d × %d reps, %ds on / %ds off", step.Sets, step.RepCount(), step.WorkSeconds, step.RestSeconds)
		}
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("    %-9s %-26s %s", step.Kind, name, shape)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func sessionIDs(p catalog.Plan) []string {
	ids := make([]string, len(p.Sessions))
	for i, s := range p.Sessions {
		ids[i] = s.ID
	}
	return ids
}
