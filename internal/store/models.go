package store

import "time"

type RunStatus string

const (
	RunPlaying   RunStatus = "playing"
	RunCompleted RunStatus = "completed"
	RunCancelled RunStatus = "cancelled"
)

// Run is one playback attempt, completed or not.
type Run struct {
	ID             string
	SessionID      string
	PlanID         string
	Status         RunStatus
	ElapsedSeconds int
	Minutes        int
	StartedAt      time.Time
	EndedAt        *time.Time
}

// RunFilter is used to filter runs in queries.
type RunFilter struct {
	Status *RunStatus
	From   *time.Time
	To     *time.Time
	Limit  int
}

// DayMinutes is the completed training time on one calendar day.
type DayMinutes struct {
	Date    string
	Minutes int
	Runs    int
}

type Setting struct {
	Key   string
	Value string
}

// Settings is the typed view of the settings table.
type Settings struct {
	Sound        bool
	Vibration    bool
	Reminder     bool
	ReminderTime string // HH:MM
}

type Goals struct {
	Endurance bool `json:"endurance"`
	Control   bool `json:"control"`
	Recovery  bool `json:"recovery"`
}

type Profile struct {
	OnboardingComplete bool
	Subscribed         bool
	Goals              *Goals
	Experience         string
}
