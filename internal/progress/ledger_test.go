package progress

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memRepo struct {
	saved    State
	saves    int
	clears   int
	wipes    int
	failNext error
}

func (m *memRepo) LoadLedger(context.Context) (State, error) { return m.saved, nil }

func (m *memRepo) SaveLedger(_ context.Context, st State) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.saved = st.clone()
	m.saves++
	return nil
}

func (m *memRepo) ClearProgress(context.Context) error {
	if m.failNext != nil {
		return m.failNext
	}
	m.saved = State{Progress: DefaultProgress()}
	m.clears++
	return nil
}

func (m *memRepo) ClearAll(context.Context) error {
	m.saved = State{Progress: DefaultProgress()}
	m.wipes++
	return nil
}

func day(s string) time.Time {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t.Add(15 * time.Hour)
}

func newTestLedger(t *testing.T, st State, now string) (*Ledger, *memRepo) {
	t.Helper()
	repo := &memRepo{saved: st}
	l := NewLedger(repo)
	l.Now = func() time.Time { return day(now) }
	if err := l.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return l, repo
}

// ============================================================
// Streak
// ============================================================

func TestNextStreak(t *testing.T) {
	today := day("2026-03-10")
	tests := []struct {
		name string
		prev int
		last string
		want int
	}{
		{"no prior date", 0, "", 1},
		{"same day", 4, "2026-03-10", 4},
		{"yesterday", 4, "2026-03-09", 5},
		{"three days ago", 4, "2026-03-07", 1},
		{"future date", 4, "2026-03-12", 1},
		{"garbage", 4, "yesterday", 1},
		{"across month", 2, "2026-02-28", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextStreak(tt.prev, tt.last, today); got != tt.want {
				t.Errorf("NextStreak(%d, %q) = %d, want %d", tt.prev, tt.last, got, tt.want)
			}
		})
	}
	if got := NextStreak(2, "2026-02-28", day("2026-03-01")); got != 3 {
		t.Errorf("month boundary: got %d, want 3", got)
	}
}

// ============================================================
// RecordCompletion
// ============================================================

func TestRecordCompletionFirstSession(t *testing.T) {
	l, repo := newTestLedger(t, State{Progress: DefaultProgress()}, "2026-03-10")
	if err := l.RecordCompletion(context.Background(), "beginner-day-1", 0); err != nil {
		t.Fatal(err)
	}
	st := l.State()
	if st.Streak != 1 || st.TotalMinutes != 1 || st.SessionsCompleted != 1 {
		t.Fatalf("unexpected state %+v", st)
	}
	if st.Progress.CurrentDayIndex != 2 || st.LastSessionDate != "2026-03-10" {
		t.Fatalf("unexpected progress %+v last=%s", st.Progress, st.LastSessionDate)
	}
	if len(st.Progress.CompletedDates) != 1 || st.Progress.CompletedDates[0] != "2026-03-10" {
		t.Fatalf("dates = %v", st.Progress.CompletedDates)
	}
	if repo.saves != 1 || repo.saved.TotalMinutes != 1 {
		t.Fatal("state was not persisted")
	}
}

func TestRecordCompletionIdempotentOnSession(t *testing.T) {
	l, _ := newTestLedger(t, State{Progress: DefaultProgress()}, "2026-03-10")
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := l.RecordCompletion(ctx, "beginner-day-1", 4); err != nil {
			t.Fatal(err)
		}
	}
	st := l.State()
	if st.SessionsCompleted != 1 || len(st.Progress.CompletedSessions) != 1 {
		t.Fatalf("session counted twice: %+v", st)
	}
	if st.Progress.CurrentDayIndex != 2 {
		t.Fatalf("day index moved on re-completion: %d", st.Progress.CurrentDayIndex)
	}
	if st.TotalMinutes != 8 {
		t.Fatalf("minutes should accumulate: %d", st.TotalMinutes)
	}
	if st.Streak != 1 || len(st.Progress.CompletedDates) != 1 {
		t.Fatalf("same-day repeat changed streak or dates: %+v", st)
	}
}

func TestRecordCompletionStreakRules(t *testing.T) {
	base := func(last string) State {
		return State{Progress: DefaultProgress(), Streak: 3, LastSessionDate: last}
	}
	cases := map[string]int{
		"2026-03-09": 4,
		"2026-03-10": 3,
		"2026-03-07": 1,
	}
	for last, want := range cases {
		l, _ := newTestLedger(t, base(last), "2026-03-10")
		if err := l.RecordCompletion(context.Background(), "s", 1); err != nil {
			t.Fatal(err)
		}
		if got := l.State().Streak; got != want {
			t.Errorf("last=%s: streak %d, want %d", last, got, want)
		}
	}
}

func TestRecordCompletionWriteFailure(t *testing.T) {
	l, repo := newTestLedger(t, State{Progress: DefaultProgress(), TotalMinutes: 10}, "2026-03-10")
	repo.failNext = errors.New("disk I/O error")

	err := l.RecordCompletion(context.Background(), "s", 5)
	if !errors.Is(err, ErrPersistenceWriteFailed) {
		t.Fatalf("expected ErrPersistenceWriteFailed, got %v", err)
	}
	st := l.State()
	if st.TotalMinutes != 10 || st.SessionsCompleted != 0 || len(st.Progress.CompletedSessions) != 0 {
		t.Fatalf("memory changed after failed write: %+v", st)
	}

	if err := l.RecordCompletion(context.Background(), "s", 5); err != nil {
		t.Fatal(err)
	}
	if l.State().TotalMinutes != 15 {
		t.Fatal("retry did not apply")
	}
}

func TestStateIsACopy(t *testing.T) {
	l, _ := newTestLedger(t, State{Progress: DefaultProgress()}, "2026-03-10")
	if err := l.RecordCompletion(context.Background(), "a", 1); err != nil {
		t.Fatal(err)
	}
	st := l.State()
	st.Progress.CompletedSessions[0] = "mutated"
	if l.State().Progress.CompletedSessions[0] != "a" {
		t.Fatal("State leaked internal slice")
	}
}

// ============================================================
// Resets and plan selection
// ============================================================

func TestResetProgress(t *testing.T) {
	l, repo := newTestLedger(t, State{Progress: DefaultProgress()}, "2026-03-10")
	ctx := context.Background()
	if err := l.RecordCompletion(ctx, "a", 3); err != nil {
		t.Fatal(err)
	}
	if err := l.ResetProgress(ctx); err != nil {
		t.Fatal(err)
	}
	st := l.State()
	if st.Streak != 0 || st.TotalMinutes != 0 || st.SessionsCompleted != 0 || st.LastSessionDate != "" {
		t.Fatalf("not reset: %+v", st)
	}
	if st.Progress.CurrentDayIndex != 1 || len(st.Progress.CompletedDates) != 0 {
		t.Fatalf("progress not reset: %+v", st.Progress)
	}
	if repo.clears != 1 {
		t.Fatal("repository not cleared")
	}

	// completing again the same day starts a fresh streak
	if err := l.RecordCompletion(ctx, "a", 3); err != nil {
		t.Fatal(err)
	}
	if l.State().Streak != 1 {
		t.Fatalf("streak after reset = %d", l.State().Streak)
	}
}

func TestResetAll(t *testing.T) {
	l, repo := newTestLedger(t, State{Progress: DefaultProgress(), Streak: 5}, "2026-03-10")
	if err := l.ResetAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if l.State().Streak != 0 || repo.wipes != 1 {
		t.Fatal("reset all did not clear")
	}
}

func TestSelectPlan(t *testing.T) {
	st := State{Progress: DefaultProgress()}
	st.Progress.CurrentDayIndex = 4
	st.Progress.CurrentPlanID = "beginner"
	l, repo := newTestLedger(t, st, "2026-03-10")
	ctx := context.Background()

	if err := l.SelectPlan(ctx, "beginner"); err != nil {
		t.Fatal(err)
	}
	if repo.saves != 0 || l.State().Progress.CurrentDayIndex != 4 {
		t.Fatal("same plan should be a no-op")
	}
	if err := l.SelectPlan(ctx, "advanced"); err != nil {
		t.Fatal(err)
	}
	p := l.State().Progress
	if p.CurrentPlanID != "advanced" || p.CurrentDayIndex != 1 {
		t.Fatalf("unexpected progress %+v", p)
	}
}

func TestLoadNormalizesDayIndex(t *testing.T) {
	l, _ := newTestLedger(t, State{}, "2026-03-10")
	if l.State().Progress.CurrentDayIndex != 1 {
		t.Fatal("day index should default to 1")
	}
}
