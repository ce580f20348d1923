package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/kegelcoach/internal/catalog"
	"github.com/sadopc/kegelcoach/internal/progress"
	"github.com/sadopc/kegelcoach/internal/store"
)

type todayModel struct {
	svc    Services
	width  int
	height int

	state   progress.State
	profile store.Profile
	plan    catalog.Plan
	next    catalog.Session
	recent  []store.Run
	loaded  bool
}

func newTodayModel(svc Services) todayModel {
	svc = svc.withDefaults()
	return todayModel{svc: svc}
}

func (d *todayModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type todayDataMsg struct {
	state   progress.State
	profile store.Profile
	plan    catalog.Plan
	next    catalog.Session
	recent  []store.Run
}

func (d todayModel) loadData() tea.Cmd {
	return func() tea.Msg {
		st := d.svc.Ledger.State()
		profile, err := d.svc.Store.GetProfile(context.Background())
		if err != nil {
			d.svc.Log.Warn("load profile", "error", err)
		}
		plan := currentPlan(d.svc.Catalog, st, profile.Experience)
		recent, err := d.svc.Store.ListRuns(store.RunFilter{Limit: 5})
		if err != nil {
			d.svc.Log.Warn("list runs", "error", err)
		}
		return todayDataMsg{
			state:   st,
			profile: profile,
			plan:    plan,
			next:    d.svc.Catalog.NextSession(plan, st.Progress.CurrentDayIndex),
			recent:  recent,
		}
	}
}

func (d todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todayDataMsg:
		d.state = msg.state
		d.profile = msg.profile
		d.plan = msg.plan
		d.next = msg.next
		d.recent = msg.recent
		d.loaded = true
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if !d.loaded {
				return d, nil
			}
			id := d.next.ID
			return d, func() tea.Msg { return startSessionMsg{sessionID: id} }
		case key.Matches(msg, keys.Demo):
			return d, func() tea.Msg { return startSessionMsg{sessionID: catalog.DemoSessionID} }
		}
	}
	return d, nil
}

func (d todayModel) locked() bool {
	return progress.Locked(d.profile.Subscribed, d.state.SessionsCompleted)
}

func (d todayModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	if !d.loaded {
		return mutedStyle.Render("Loading...")
	}

	contentWidth := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderNextPanel(contentWidth),
		d.renderStatsPanel(contentWidth),
		d.renderRecentPanel(contentWidth),
	)
}

func (d todayModel) renderNextPanel(w int) string {
	s := d.next
	title := titleStyle.Render("Up next")
	where := subtitleStyle.Render(fmt.Sprintf("%s · day %d of %d", d.plan.Name, s.DayIndex, d.plan.DurationDays))
	if s.ID == catalog.DemoSessionID {
		where = successStyle.Render(fmt.Sprintf("%s finished! Replay the demo or pick a new plan", d.plan.Name))
	}

	rows := []string{
		title + "  " + where,
		"",
		highlightStyle.Bold(true).Render(s.Title),
		s.Description,
		mutedStyle.Render(fmt.Sprintf("%s · %s", formatClock(s.TotalSeconds), plural(len(s.Steps), "exercise"))),
		"",
	}

	if d.locked() && s.ID != catalog.DemoSessionID {
		rows = append(rows,
			lockedItemStyle.Render("Locked"),
			warningStyle.Render("Your free session is used. Subscribe to continue, or press d for the demo."),
		)
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}
	rows = append(rows, mutedStyle.Render("enter: start  d: demo"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d todayModel) renderStatsPanel(w int) string {
	st := d.state
	week := progress.WeeklyCount(st.Progress.CompletedDates, d.svc.now())

	cell := lipgloss.NewStyle().Width(18)
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		cell.Render(mutedStyle.Render("Streak")+"\n"+accentStyle.Bold(true).Render(plural(st.Streak, "day"))),
		cell.Render(mutedStyle.Render("Sessions")+"\n"+highlightStyle.Bold(true).Render(fmt.Sprint(st.SessionsCompleted))),
		cell.Render(mutedStyle.Render("Minutes")+"\n"+highlightStyle.Bold(true).Render(formatMinutes(st.TotalMinutes))),
		cell.Render(mutedStyle.Render("This week")+"\n"+successStyle.Bold(true).Render(fmt.Sprintf("%d/%d", week, progress.WeeklyGoal))),
	)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Your progress"), "", stats))
}

func (d todayModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Sessions")
	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No sessions yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	titles := SessionTitles(d.svc.Catalog)
	var rows []string
	rows = append(rows, title)
	for _, r := range d.recent {
		name, ok := titles[r.SessionID]
		if !ok {
			name = r.SessionID
		}
		status := successStyle.Render("✓")
		switch r.Status {
		case store.RunCancelled:
			status = mutedStyle.Render("✗")
		case store.RunPlaying:
			status = warningStyle.Render("●")
		}
		row := fmt.Sprintf("  %s %s  %-28s %s", status, r.StartedAt.Local().Format("Jan 02 15:04"), name, formatClock(r.ElapsedSeconds))
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
