// Package progress keeps the user's training record: streak, minutes,
// completed sessions and the calendar of training days.
package progress

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// DateLayout is the calendar-date format stored in the ledger.
const DateLayout = "2006-01-02"

var ErrPersistenceWriteFailed = errors.New("persistence write failed")

type ProgressData struct {
	CompletedSessions []string `json:"completedSessions"`
	CompletedDates    []string `json:"completedDates"`
	CurrentPlanID     string   `json:"currentPlanId,omitempty"`
	CurrentDayIndex   int      `json:"currentDayIndex"`
}

// DefaultProgress is the record of a user who has not trained yet.
func DefaultProgress() ProgressData {
	return ProgressData{
		CompletedSessions: []string{},
		CompletedDates:    []string{},
		CurrentDayIndex:   1,
	}
}

func (p ProgressData) clone() ProgressData {
	p.CompletedSessions = slices.Clone(p.CompletedSessions)
	p.CompletedDates = slices.Clone(p.CompletedDates)
	return p
}

type State struct {
	Progress          ProgressData
	Streak            int
	TotalMinutes      int
	SessionsCompleted int
	LastSessionDate   string // empty when no session was ever completed
}

func (s State) clone() State {
	s.Progress = s.Progress.clone()
	return s
}

// Repository persists the ledger. SaveLedger writes every field as one unit.
type Repository interface {
	LoadLedger(ctx context.Context) (State, error)
	SaveLedger(ctx context.Context, st State) error
	ClearProgress(ctx context.Context) error
	ClearAll(ctx context.Context) error
}

// NextStreak returns the streak after a completion today given the previous
// streak and the last completion date. Same day keeps the streak, the next
// day extends it, anything else starts over.
func NextStreak(prev int, last string, today time.Time) int {
	if last == "" {
		return 1
	}
	lastDay, err := time.ParseInLocation(DateLayout, last, today.Location())
	if err != nil {
		return 1
	}
	switch daysBetween(lastDay, today) {
	case 0:
		return prev
	case 1:
		return prev + 1
	}
	return 1
}

// daysBetween counts calendar days from a to b, ignoring the time of day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// Ledger is the in-memory view of the progress record, kept in step with a
// Repository. Every mutation is written first and applied to memory only
// after the write succeeds.
type Ledger struct {
	repo Repository
	Now  func() time.Time

	mu    sync.Mutex
	state State
}

func NewLedger(repo Repository) *Ledger {
	return &Ledger{
		repo:  repo,
		Now:   time.Now,
		state: State{Progress: DefaultProgress()},
	}
}

func (l *Ledger) Load(ctx context.Context) error {
	st, err := l.repo.LoadLedger(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	if st.Progress.CurrentDayIndex < 1 {
		st.Progress.CurrentDayIndex = 1
	}
	l.mu.Lock()
	l.state = st
	l.mu.Unlock()
	return nil
}

func (l *Ledger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.clone()
}

// RecordCompletion commits a naturally completed session. Re-completing a
// session still adds minutes and today's date but does not count the
// session again or move the day pointer.
func (l *Ledger) RecordCompletion(ctx context.Context, sessionID string, minutes int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.Now()
	today := now.Format(DateLayout)
	next := l.state.clone()

	already := slices.Contains(next.Progress.CompletedSessions, sessionID)
	next.Streak = NextStreak(l.state.Streak, l.state.LastSessionDate, now)
	next.TotalMinutes += max(minutes, 1)
	if !already {
		next.SessionsCompleted++
		next.Progress.CompletedSessions = append(next.Progress.CompletedSessions, sessionID)
		next.Progress.CurrentDayIndex = max(next.Progress.CurrentDayIndex, 1) + 1
	}
	if !slices.Contains(next.Progress.CompletedDates, today) {
		next.Progress.CompletedDates = append(next.Progress.CompletedDates, today)
	}
	next.LastSessionDate = today

	if err := l.repo.SaveLedger(ctx, next); err != nil {
		return fmt.Errorf("record %s: %w: %w", sessionID, ErrPersistenceWriteFailed, err)
	}
	l.state = next
	return nil
}

// SelectPlan points the ledger at a training plan. Switching plans starts
// the new plan from day one.
func (l *Ledger) SelectPlan(ctx context.Context, planID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.Progress.CurrentPlanID == planID {
		return nil
	}
	next := l.state.clone()
	next.Progress.CurrentPlanID = planID
	next.Progress.CurrentDayIndex = 1
	if err := l.repo.SaveLedger(ctx, next); err != nil {
		return fmt.Errorf("select plan %s: %w: %w", planID, ErrPersistenceWriteFailed, err)
	}
	l.state = next
	return nil
}

// ResetProgress zeroes the training record. Profile and settings are kept.
func (l *Ledger) ResetProgress(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.repo.ClearProgress(ctx); err != nil {
		return fmt.Errorf("reset progress: %w: %w", ErrPersistenceWriteFailed, err)
	}
	l.state = State{Progress: DefaultProgress()}
	return nil
}

// ResetAll wipes every stored record, profile and settings included.
func (l *Ledger) ResetAll(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.repo.ClearAll(ctx); err != nil {
		return fmt.Errorf("reset all: %w: %w", ErrPersistenceWriteFailed, err)
	}
	l.state = State{Progress: DefaultProgress()}
	return nil
}
