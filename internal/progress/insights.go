package progress

import (
	"errors"
	"slices"
	"time"
)

// WeeklyGoal is the number of sessions a week the progress view aims for.
const WeeklyGoal = 5

var ErrLocked = errors.New("session requires a subscription")

// Locked reports whether a free user has used up the included session.
func Locked(subscribed bool, sessionsCompleted int) bool {
	return !subscribed && sessionsCompleted >= 1
}

// WeeklyCount counts training days in the week containing today. Weeks
// start on Sunday.
func WeeklyCount(dates []string, today time.Time) int {
	y, m, d := today.Date()
	start := time.Date(y, m, d-int(today.Weekday()), 0, 0, 0, 0, today.Location())
	n := 0
	for _, ds := range dates {
		t, err := time.ParseInLocation(DateLayout, ds, today.Location())
		if err != nil {
			continue
		}
		if !t.Before(start) {
			n++
		}
	}
	return n
}

type Milestone struct {
	Name     string
	Achieved bool
}

func Milestones(st State) []Milestone {
	return []Milestone{
		{Name: "First session", Achieved: st.SessionsCompleted >= 1},
		{Name: "7-day streak", Achieved: st.Streak >= 7},
		{Name: "30 sessions", Achieved: st.SessionsCompleted >= 30},
	}
}

// CalendarDay is one cell of a month grid. Day is 0 for the blank cells
// that pad the first week.
type CalendarDay struct {
	Date      string
	Day       int
	Completed bool
	Today     bool
}

// MonthCalendar lays out the month containing today, padded so the first
// cell is a Sunday.
func MonthCalendar(dates []string, today time.Time) []CalendarDay {
	y, m, _ := today.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, today.Location())
	daysIn := first.AddDate(0, 1, -1).Day()
	todayStr := today.Format(DateLayout)

	days := make([]CalendarDay, int(first.Weekday()), int(first.Weekday())+daysIn)
	for d := 1; d <= daysIn; d++ {
		ds := first.AddDate(0, 0, d-1).Format(DateLayout)
		days = append(days, CalendarDay{
			Date:      ds,
			Day:       d,
			Completed: slices.Contains(dates, ds),
			Today:     ds == todayStr,
		})
	}
	return days
}

// PlanCompletion is the fraction of the plan's sessions found in completed.
func PlanCompletion(sessionIDs []string, completed []string) float64 {
	if len(sessionIDs) == 0 {
		return 0
	}
	n := 0
	for _, id := range sessionIDs {
		if slices.Contains(completed, id) {
			n++
		}
	}
	return float64(n) / float64(len(sessionIDs))
}
