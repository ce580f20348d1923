package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/kegelcoach/internal/catalog"
	"github.com/sadopc/kegelcoach/internal/progress"
	"github.com/sadopc/kegelcoach/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testNow is a Wednesday afternoon.
var testNow = time.Date(2026, 3, 11, 15, 0, 0, 0, time.Local)

func newTestServices(t *testing.T) Services {
	t.Helper()
	cat, err := catalog.New()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	s := newTestStore(t)
	l := progress.NewLedger(s)
	l.Now = func() time.Time { return testNow }
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	return Services{
		Catalog:   cat,
		Store:     s,
		Ledger:    l,
		Now:       func() time.Time { return testNow },
		ExportDir: t.TempDir(),
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

// playToEnd feeds ticks until the player shows its summary.
func playToEnd(t *testing.T, p playerModel) (playerModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for i := 0; i < 10000; i++ {
		p, cmd = p.update(playerTickMsg{gen: p.gen})
		if p.summary != nil {
			return p, cmd
		}
	}
	t.Fatal("session never completed")
	return p, nil
}

// ============================================================
// Services
// ============================================================

func TestModelsBuiltWithoutLogger(t *testing.T) {
	svc := newTestServices(t)
	svc.Log = nil

	o, _ := newOnboardingModel(svc).start()
	if o.svc.Log == nil {
		t.Fatal("onboarding should default its logger")
	}
	o, cmd := o.finish()
	if o.active {
		t.Fatal("onboarding should close")
	}
	if _, ok := cmd().(onboardingDoneMsg); !ok {
		t.Fatal("expected onboardingDoneMsg")
	}

	if newPlayerModel(svc).svc.Log == nil ||
		newTodayModel(svc).svc.Log == nil ||
		newLibraryModel(svc).svc.Log == nil ||
		newStatsModel(svc).svc.Log == nil ||
		newSettingsModel(svc).svc.Log == nil {
		t.Fatal("every view should default its logger")
	}
}

// ============================================================
// Player model
// ============================================================

func TestPlayerStart(t *testing.T) {
	svc := newTestServices(t)
	p := newPlayerModel(svc)

	p, cmd := p.start(catalog.DemoSessionID)
	if !p.active {
		t.Fatal("player should be active after start")
	}
	if cmd == nil {
		t.Fatal("start should schedule a tick")
	}

	snap := p.engine.Snapshot()
	run, err := svc.Store.GetRun(snap.AttemptID)
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != store.RunPlaying || run.SessionID != catalog.DemoSessionID {
		t.Fatalf("run = %+v", run)
	}
}

func TestPlayerStartUnknownSession(t *testing.T) {
	svc := newTestServices(t)
	p := newPlayerModel(svc)

	p, cmd := p.start("no-such-session")
	if p.active {
		t.Fatal("player should not open on an unknown session")
	}
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.isError {
		t.Fatalf("expected error status, got %#v", msg)
	}
}

func TestPlayerStaleTickIgnored(t *testing.T) {
	svc := newTestServices(t)
	p, _ := newPlayerModel(svc).start(catalog.DemoSessionID)

	p, cmd := p.update(playerTickMsg{gen: p.gen - 1})
	if cmd != nil {
		t.Fatal("stale tick should not reschedule")
	}
	if got := p.engine.Snapshot().Elapsed; got != 0 {
		t.Fatalf("elapsed = %d, want 0", got)
	}

	p, cmd = p.update(playerTickMsg{gen: p.gen})
	if cmd == nil {
		t.Fatal("current tick should reschedule")
	}
	if got := p.engine.Snapshot().Elapsed; got != 1 {
		t.Fatalf("elapsed = %d, want 1", got)
	}
}

func TestPlayerPauseKey(t *testing.T) {
	svc := newTestServices(t)
	p, _ := newPlayerModel(svc).start(catalog.DemoSessionID)

	p, _ = p.update(keySpace)
	if !p.engine.Snapshot().Paused {
		t.Fatal("space should pause")
	}
	p, _ = p.update(playerTickMsg{gen: p.gen})
	if got := p.engine.Snapshot().Elapsed; got != 0 {
		t.Fatalf("paused clock moved to %d", got)
	}
	p, _ = p.update(keySpace)
	if p.engine.Snapshot().Paused {
		t.Fatal("space should resume")
	}
}

func TestPlayerCompletionRecords(t *testing.T) {
	svc := newTestServices(t)
	p, _ := newPlayerModel(svc).start(catalog.DemoSessionID)
	attempt := p.engine.Snapshot().AttemptID

	p, cmd := playToEnd(t, p)
	if _, ok := cmd().(ledgerChangedMsg); !ok {
		t.Fatal("completion should announce a ledger change")
	}
	if p.commitErr != nil {
		t.Fatal(p.commitErr)
	}

	st := svc.Ledger.State()
	if st.SessionsCompleted != 1 || st.Streak != 1 {
		t.Fatalf("state = %+v", st)
	}
	if st.TotalMinutes != p.summary.Minutes {
		t.Fatalf("minutes = %d, want %d", st.TotalMinutes, p.summary.Minutes)
	}

	run, err := svc.Store.GetRun(attempt)
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != store.RunCompleted || run.ElapsedSeconds != p.summary.TotalElapsedSeconds {
		t.Fatalf("run = %+v", run)
	}

	// Late ticks after completion do nothing.
	if _, cmd := p.update(playerTickMsg{gen: p.gen}); cmd != nil {
		t.Fatal("tick after completion should be ignored")
	}

	p, cmd = p.update(keyEnter)
	if p.active {
		t.Fatal("enter should close the summary")
	}
	closed, ok := cmd().(playerClosedMsg)
	if !ok || closed.summary == nil {
		t.Fatalf("expected closed msg with summary, got %#v", closed)
	}
}

func TestPlayerSkipToEnd(t *testing.T) {
	svc := newTestServices(t)
	p, _ := newPlayerModel(svc).start(catalog.DemoSessionID)
	steps := len(svc.Catalog.Demo().Steps)

	for i := 0; i < steps; i++ {
		p, _ = p.update(keyRune('n'))
	}
	if p.summary == nil {
		t.Fatal("skipping every step should complete the session")
	}
	if p.summary.Minutes != 1 {
		t.Fatalf("minutes = %d, want 1", p.summary.Minutes)
	}
	if svc.Ledger.State().SessionsCompleted != 1 {
		t.Fatal("skipped session still counts as completed")
	}
}

func TestPlayerExitDiscards(t *testing.T) {
	svc := newTestServices(t)
	p, _ := newPlayerModel(svc).start(catalog.DemoSessionID)
	attempt := p.engine.Snapshot().AttemptID
	for i := 0; i < 5; i++ {
		p, _ = p.update(playerTickMsg{gen: p.gen})
	}

	p, _ = p.update(keyRune('x'))
	if !p.engine.Snapshot().ExitPending {
		t.Fatal("x should ask for confirmation")
	}
	p, cmd := p.update(keyRune('y'))
	if p.active {
		t.Fatal("confirmed exit should close the player")
	}
	closed, ok := cmd().(playerClosedMsg)
	if !ok || closed.summary != nil {
		t.Fatalf("expected closed msg without summary, got %#v", closed)
	}

	if svc.Ledger.State().SessionsCompleted != 0 {
		t.Fatal("exited session must not be recorded")
	}
	run, err := svc.Store.GetRun(attempt)
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != store.RunCancelled || run.ElapsedSeconds != 5 {
		t.Fatalf("run = %+v", run)
	}
}

func TestPlayerExitCancelled(t *testing.T) {
	svc := newTestServices(t)
	p, _ := newPlayerModel(svc).start(catalog.DemoSessionID)

	p, _ = p.update(keyRune('x'))
	p, _ = p.update(keyRune('n'))
	snap := p.engine.Snapshot()
	if snap.ExitPending || snap.Paused {
		t.Fatalf("cancel should resume playback: %+v", snap)
	}
	if snap.StepIndex != 0 {
		t.Fatal("n while confirming must not skip")
	}
	if !p.active {
		t.Fatal("player should stay open")
	}
}

func TestPlayerView(t *testing.T) {
	svc := newTestServices(t)
	p := newPlayerModel(svc)
	p.setSize(100, 30)
	p, _ = p.start(catalog.DemoSessionID)

	out := p.view()
	if !strings.Contains(out, svc.Catalog.Demo().Title) {
		t.Fatal("view should show the session title")
	}
	if !strings.Contains(out, "GET READY") {
		t.Fatal("view should start in the countdown")
	}

	p, _ = playToEnd(t, p)
	if !strings.Contains(p.view(), "Session complete") {
		t.Fatal("summary should be shown after completion")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app := NewApp(newTestServices(t))

	if app.activeView != viewToday {
		t.Fatal("default view should be today")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.player.active || app.onboarding.active {
		t.Fatal("no overlay should be active initially")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	app := NewApp(newTestServices(t))
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app := NewApp(newTestServices(t))
	app.width = 120
	app.height = 40

	for v := range viewNames {
		app.activeView = viewState(v)
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app := NewApp(newTestServices(t))
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	app := NewApp(newTestServices(t))
	if out := app.View(); out != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", out)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app := NewApp(newTestServices(t))
	app.width = 120
	app.height = 40

	model, _ := app.Update(statusMsg{text: "test status"})
	app = model.(App)
	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppFreeSessionThenLocked(t *testing.T) {
	svc := newTestServices(t)
	app := NewApp(svc)
	first := svc.Catalog.RecommendedPlan("").Sessions[0].ID

	model, _ := app.Update(startSessionMsg{sessionID: first})
	app = model.(App)
	if !app.player.active {
		t.Fatal("first session is free")
	}
	app.player, _ = app.player.exit()

	if err := svc.Ledger.RecordCompletion(context.Background(), first, 5); err != nil {
		t.Fatal(err)
	}

	model, _ = app.Update(startSessionMsg{sessionID: first})
	app = model.(App)
	if app.player.active {
		t.Fatal("second session should be locked for free users")
	}
	if !app.statusErr {
		t.Fatal("locked start should report an error status")
	}

	model, _ = app.Update(startSessionMsg{sessionID: catalog.DemoSessionID})
	app = model.(App)
	if !app.player.active {
		t.Fatal("demo is always playable")
	}
}

func TestAppSubscribedUnlocks(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	first := svc.Catalog.RecommendedPlan("").Sessions[0].ID
	if err := svc.Ledger.RecordCompletion(ctx, first, 5); err != nil {
		t.Fatal(err)
	}
	if err := svc.Store.SetSubscribed(ctx, true); err != nil {
		t.Fatal(err)
	}

	model, _ := NewApp(svc).Update(startSessionMsg{sessionID: first})
	if !model.(App).player.active {
		t.Fatal("subscribers are never locked")
	}
}

func TestAppPlayerCapturesKeys(t *testing.T) {
	svc := newTestServices(t)
	app := NewApp(svc)

	model, _ := app.Update(startSessionMsg{sessionID: catalog.DemoSessionID})
	app = model.(App)
	model, _ = app.Update(keyRune('2'))
	app = model.(App)
	if app.activeView != viewToday {
		t.Fatal("tab keys should not switch views during playback")
	}
}

func TestAppDataRoutedToInactiveView(t *testing.T) {
	svc := newTestServices(t)
	app := NewApp(svc)
	app.activeView = viewSettings

	model, _ := app.Update(app.today.loadData()())
	app = model.(App)
	if !app.today.loaded {
		t.Fatal("today data should land while another view is showing")
	}
}

func TestAppExport(t *testing.T) {
	svc := newTestServices(t)
	if _, err := svc.Store.StartRun("", catalog.DemoSessionID, "demo"); err != nil {
		t.Fatal(err)
	}
	app := NewApp(svc)

	for format, ext := range []string{".csv", ".json"} {
		msg := app.doExport(format)()
		done, ok := msg.(exportDoneMsg)
		if !ok {
			t.Fatalf("export %s: %#v", ext, msg)
		}
		if !strings.HasSuffix(done.path, "kegelcoach-export-2026-03-11"+ext) {
			t.Fatalf("path = %q", done.path)
		}
	}
}

func TestSessionTitles(t *testing.T) {
	svc := newTestServices(t)
	titles := SessionTitles(svc.Catalog)
	if titles[catalog.DemoSessionID] != svc.Catalog.Demo().Title {
		t.Fatal("demo title missing")
	}
	for _, p := range svc.Catalog.Plans() {
		for _, s := range p.Sessions {
			if titles[s.ID] == "" {
				t.Fatalf("missing title for %s", s.ID)
			}
		}
	}
}

// ============================================================
// Onboarding
// ============================================================

func TestOnboardingStartsForNewProfile(t *testing.T) {
	svc := newTestServices(t)
	o := newOnboardingModel(svc)

	o, _ = o.update(o.check()())
	if !o.active || o.form == nil {
		t.Fatal("onboarding should open for a new profile")
	}
}

func TestOnboardingSkippedWhenComplete(t *testing.T) {
	svc := newTestServices(t)
	if err := svc.Store.CompleteOnboarding(context.Background(), store.Goals{}, "beginner"); err != nil {
		t.Fatal(err)
	}
	o := newOnboardingModel(svc)
	o, _ = o.update(o.check()())
	if o.active {
		t.Fatal("onboarding should not reopen")
	}
}

func TestOnboardingFinish(t *testing.T) {
	svc := newTestServices(t)
	o, _ := newOnboardingModel(svc).start()
	*o.goals = []string{"control", "recovery"}
	*o.experience = string(catalog.LevelAdvanced)

	o, cmd := o.finish()
	if o.active {
		t.Fatal("onboarding should close")
	}
	if _, ok := cmd().(onboardingDoneMsg); !ok {
		t.Fatal("expected onboardingDoneMsg")
	}

	profile, err := svc.Store.GetProfile(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !profile.OnboardingComplete || profile.Experience != "advanced" {
		t.Fatalf("profile = %+v", profile)
	}
	if profile.Goals == nil || profile.Goals.Endurance || !profile.Goals.Control || !profile.Goals.Recovery {
		t.Fatalf("goals = %+v", profile.Goals)
	}
	want := svc.Catalog.RecommendedPlan("advanced").ID
	if got := svc.Ledger.State().Progress.CurrentPlanID; got != want {
		t.Fatalf("plan = %q, want %q", got, want)
	}
}

// ============================================================
// Today, library, progress
// ============================================================

func TestTodayLoadData(t *testing.T) {
	svc := newTestServices(t)
	d := newTodayModel(svc)
	d.setSize(120, 40)

	d, _ = d.update(d.loadData()())
	plan := svc.Catalog.RecommendedPlan("")
	if d.plan.ID != plan.ID || d.next.ID != plan.Sessions[0].ID {
		t.Fatalf("next = %s/%s", d.plan.ID, d.next.ID)
	}

	_, cmd := d.update(keyEnter)
	msg, ok := cmd().(startSessionMsg)
	if !ok || msg.sessionID != d.next.ID {
		t.Fatalf("enter should start the next session, got %#v", msg)
	}

	_, cmd = d.update(keyRune('d'))
	if msg := cmd().(startSessionMsg); msg.sessionID != catalog.DemoSessionID {
		t.Fatal("d should start the demo")
	}

	view := d.view()
	if !strings.Contains(view, plan.Sessions[0].Title) {
		t.Fatal("view should show the next session")
	}
	if !strings.Contains(view, fmt.Sprintf("day 1 of %d", plan.DurationDays)) {
		t.Fatal("view should show the plan position")
	}
}

func TestTodayAdvancesAfterCompletion(t *testing.T) {
	svc := newTestServices(t)
	plan := svc.Catalog.RecommendedPlan("")
	if err := svc.Ledger.RecordCompletion(context.Background(), plan.Sessions[0].ID, 3); err != nil {
		t.Fatal(err)
	}

	d := newTodayModel(svc)
	d, _ = d.update(d.loadData()())
	if d.next.ID != plan.Sessions[1].ID {
		t.Fatalf("next = %s, want %s", d.next.ID, plan.Sessions[1].ID)
	}
	if !d.locked() {
		t.Fatal("free user should be locked after one session")
	}
}

func TestLibrarySelectPlan(t *testing.T) {
	svc := newTestServices(t)
	l := newLibraryModel(svc)
	l, _ = l.update(l.refresh()())

	l, _ = l.update(keyRune('j'))
	target := l.plans[l.cursor].ID
	_, cmd := l.update(keyRune('s'))
	if _, ok := cmd().(ledgerChangedMsg); !ok {
		t.Fatal("select should announce a ledger change")
	}
	if got := svc.Ledger.State().Progress.CurrentPlanID; got != target {
		t.Fatalf("plan = %q, want %q", got, target)
	}
}

func TestLibrarySessionsStart(t *testing.T) {
	svc := newTestServices(t)
	l := newLibraryModel(svc)
	l.setSize(120, 40)

	l, _ = l.update(keyEnter)
	if !l.viewingSessions {
		t.Fatal("enter should open the plan")
	}
	l, _ = l.update(keyRune('j'))
	want := l.plans[0].Sessions[1].ID

	_, cmd := l.update(keyEnter)
	if msg := cmd().(startSessionMsg); msg.sessionID != want {
		t.Fatalf("started %q, want %q", msg.sessionID, want)
	}
	if l.view() == "" {
		t.Fatal("session list rendered empty")
	}

	l, _ = l.update(tea.KeyMsg{Type: tea.KeyEsc})
	if l.viewingSessions {
		t.Fatal("esc should go back to plans")
	}
}

func TestStatsDateRange(t *testing.T) {
	r := newStatsModel(newTestServices(t))

	from, to := r.dateRange()
	if got := from.Format(progress.DateLayout); got != "2026-03-05" {
		t.Fatalf("from = %s", got)
	}
	if got := to.Format(progress.DateLayout); got != "2026-03-12" {
		t.Fatalf("to = %s", got)
	}

	r, _ = r.update(keyRune('h'))
	from, _ = r.dateRange()
	if got := from.Format(progress.DateLayout); got != "2026-02-26" {
		t.Fatalf("previous week from = %s", got)
	}
	r, _ = r.update(keyRune('l'))
	r, _ = r.update(keyRune('l'))
	if r.offset != 0 {
		t.Fatal("offset should not go below zero")
	}
}

func TestStatsView(t *testing.T) {
	svc := newTestServices(t)
	r := newStatsModel(svc)
	r.setSize(120, 40)
	r, _ = r.update(r.refresh()())

	out := r.view()
	for _, want := range []string{"March 2026", "First session", "Weekly goal"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

// ============================================================
// Settings
// ============================================================

func TestValidateReminderTime(t *testing.T) {
	for _, ok := range []string{"09:00", "23:59", "00:00"} {
		if err := validateReminderTime(ok); err != nil {
			t.Errorf("%q: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "9", "24:00", "12:60", "noon"} {
		if validateReminderTime(bad) == nil {
			t.Errorf("%q should be rejected", bad)
		}
	}
}

func TestSettingsApplyEdit(t *testing.T) {
	svc := newTestServices(t)
	s := newSettingsModel(svc)
	s.formKind = formEdit
	*s.sound = false
	*s.vibration = true
	*s.reminder = true
	*s.reminderTime = "07:30"

	if s.apply() == nil {
		t.Fatal("apply should return a command")
	}
	got, err := svc.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	want := store.Settings{Sound: false, Vibration: true, Reminder: true, ReminderTime: "07:30"}
	if got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}
}

func TestSettingsApplyResetProgress(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	if err := svc.Ledger.RecordCompletion(ctx, "beginner-day-1", 4); err != nil {
		t.Fatal(err)
	}

	s := newSettingsModel(svc)
	s.formKind = formResetProgress
	*s.confirm = false
	if s.apply() != nil {
		t.Fatal("declined reset should do nothing")
	}

	*s.confirm = true
	if _, ok := s.apply()().(ledgerChangedMsg); !ok {
		t.Fatal("reset should announce a ledger change")
	}
	if st := svc.Ledger.State(); st.SessionsCompleted != 0 || st.TotalMinutes != 0 {
		t.Fatalf("state after reset = %+v", st)
	}
}

func TestSettingsView(t *testing.T) {
	s := newSettingsModel(newTestServices(t))
	s.setSize(100, 30)
	s, _ = s.update(s.refresh()())

	out := s.view()
	if !strings.Contains(out, "Sound cues") || !strings.Contains(out, "Reminder") {
		t.Fatal("settings view missing rows")
	}

	s, _ = s.update(keyRune('R'))
	if !s.formActive || s.formKind != formResetAll {
		t.Fatal("R should open the reset-all confirmation")
	}
	s, _ = s.update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.formActive {
		t.Fatal("esc should close the form")
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatClock(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{65, "01:05"},
		{3600, "60:00"},
		{-3, "00:00"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.secs); got != tt.want {
			t.Errorf("formatClock(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		m    int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 00m"},
		{135, "2h 15m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.m); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.m, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "day"); got != "1 day" {
		t.Fatal(got)
	}
	if got := plural(3, "day"); got != "3 days" {
		t.Fatal(got)
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapFullHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
	for i, g := range keys.FullHelp() {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
	if len(playerKeyMap{}.ShortHelp()) == 0 {
		t.Fatal("player help should have bindings")
	}
}

// ============================================================
// Styles (smoke test: just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"countdown", func() string { return countdownStyle.Render("test") }},
		{"work", func() string { return workStyle.Render("test") }},
		{"rest", func() string { return restStyle.Render("test") }},
		{"paused", func() string { return pausedStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"subtitle", func() string { return subtitleStyle.Render("test") }},
		{"locked", func() string { return lockedItemStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
