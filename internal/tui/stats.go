package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/kegelcoach/internal/progress"
	"github.com/sadopc/kegelcoach/internal/store"
)

// statsModel is the Progress tab: training minutes per day, the month
// calendar and milestones.
type statsModel struct {
	svc    Services
	width  int
	height int

	days   []store.DayMinutes
	state  progress.State
	offset int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newStatsModel(svc Services) statsModel {
	svc = svc.withDefaults()
	return statsModel{
		svc:   svc,
		chart: barchart.New(60, 10),
	}
}

func (r *statsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type statsDataMsg struct {
	days  []store.DayMinutes
	state progress.State
}

func (r statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.dateRange()
		days, err := r.svc.Store.MinutesByDay(from, to)
		if err != nil {
			r.svc.Log.Warn("minutes by day", "error", err)
		}
		return statsDataMsg{days: days, state: r.svc.Ledger.State()}
	}
}

func (r statsModel) dateRange() (time.Time, time.Time) {
	now := r.svc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := today.AddDate(0, 0, 1-7*r.offset)
	start := end.AddDate(0, 0, -7)
	return start, end
}

func (r statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		r.days = msg.days
		r.state = msg.state
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *statsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 8
	if r.height > 40 {
		chartHeight = 12
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, to := r.dateRange()
	minutes := make(map[string]int, len(r.days))
	for _, d := range r.days {
		minutes[d.Date] = d.Minutes
	}

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		m := minutes[d.Format(progress.DateLayout)]
		style := lipgloss.NewStyle().Foreground(colorAccent)
		if m == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label:  d.Format("Mon 02"),
			Values: []barchart.BarValue{{Name: "minutes", Value: float64(m), Style: style}},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r statsModel) view() string {
	w := r.width - 4

	from, to := r.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s to %s", from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Minutes trained"), "  ", dateLabel)

	chartPanel := panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header, "", r.chart.View(), "", mutedStyle.Render("  ←/→: navigate"),
	))

	half := w/2 - 1
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(half).Render(r.renderCalendar()),
		panelStyle.Width(w-half).Render(r.renderMilestones()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, chartPanel, bottom)
}

func (r statsModel) renderCalendar() string {
	now := r.svc.now()
	title := titleStyle.Render(now.Format("January 2006"))

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, mutedStyle.Render(" Su Mo Tu We Th Fr Sa"))

	var line strings.Builder
	for i, d := range progress.MonthCalendar(r.state.Progress.CompletedDates, now) {
		cell := "   "
		if d.Day > 0 {
			text := fmt.Sprintf("%3d", d.Day)
			switch {
			case d.Completed:
				cell = successStyle.Bold(true).Render(text)
			case d.Today:
				cell = accentStyle.Render(text)
			default:
				cell = mutedStyle.Render(text)
			}
		}
		line.WriteString(cell)
		if i%7 == 6 {
			rows = append(rows, line.String())
			line.Reset()
		}
	}
	if line.Len() > 0 {
		rows = append(rows, line.String())
	}
	return strings.Join(rows, "\n")
}

func (r statsModel) renderMilestones() string {
	st := r.state
	week := progress.WeeklyCount(st.Progress.CompletedDates, r.svc.now())

	var rows []string
	rows = append(rows, titleStyle.Render("Milestones"), "")
	for _, m := range progress.Milestones(st) {
		if m.Achieved {
			rows = append(rows, successStyle.Render("  ★ "+m.Name))
		} else {
			rows = append(rows, mutedStyle.Render("  ☆ "+m.Name))
		}
	}

	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  Weekly goal  %s", highlightStyle.Render(fmt.Sprintf("%d/%d", week, progress.WeeklyGoal))))
	rows = append(rows, fmt.Sprintf("  Streak       %s", accentStyle.Render(plural(st.Streak, "day"))))
	rows = append(rows, fmt.Sprintf("  Total        %s", highlightStyle.Render(formatMinutes(st.TotalMinutes))))
	return strings.Join(rows, "\n")
}
