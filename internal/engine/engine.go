// Package engine plays a session: a 1 Hz countdown state machine that walks
// the steps of a session through countdown, work and rest phases.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sadopc/kegelcoach/internal/catalog"
)

var (
	ErrAlreadyStarted = errors.New("playback already in progress")
	ErrNotCompleted   = errors.New("session not completed")
)

// SessionSource resolves session ids.
type SessionSource interface {
	SessionByID(id string) (catalog.Session, error)
}

// Recorder receives the result of a naturally completed session.
type Recorder interface {
	RecordCompletion(ctx context.Context, sessionID string, minutes int) error
}

type Options struct {
	Feedback Feedback
	Settings FeedbackSettings
	Recorder Recorder
	OnEvent  func(Event)
	Logger   *slog.Logger
}

// PlaybackState is the mutable state of one playback attempt.
type PlaybackState struct {
	AttemptID string
	StepIndex int
	Set       int // 1-based
	Rep       int // 1-based
	Phase     Phase
	Remaining int // seconds left in the current phase
	Elapsed   int // ticks since start, all phases
	Paused    bool
}

type Snapshot struct {
	Active        bool
	SessionID     string
	AttemptID     string
	Phase         Phase
	Remaining     int
	PhaseDuration int
	Progress      float64
	StepIndex     int
	StepCount     int
	Set           int
	Rep           int
	Step          catalog.SessionStep
	Paused        bool
	ExitPending   bool
	Elapsed       int
}

type Summary struct {
	SessionID           string
	AttemptID           string
	TotalElapsedSeconds int
	StepCount           int
	Minutes             int
}

type EventKind int

const (
	EventTick EventKind = iota
	EventPhase
	EventCompleted
)

type Event struct {
	Kind     EventKind
	Snapshot Snapshot
	Summary  *Summary
}

// Engine drives a single playback at a time. It is not safe for concurrent
// use; Player serializes access when ticks come from a timer goroutine.
type Engine struct {
	source SessionSource
	opts   Options
	log    *slog.Logger

	session   catalog.Session
	state     *PlaybackState
	dispatch  *Dispatcher
	summary   *Summary
	committed bool

	exitPending      bool
	pausedBeforeExit bool
}

func New(source SessionSource, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{source: source, opts: opts, log: log}
}

// Start loads the session and enters the first countdown. Unknown ids and
// unplayable steps are rejected before any state is created.
func (e *Engine) Start(sessionID string) error {
	if e.state != nil && e.state.Phase != PhaseCompleted {
		return ErrAlreadyStarted
	}
	session, err := e.source.SessionByID(sessionID)
	if err != nil {
		return err
	}
	if len(session.Steps) == 0 {
		return fmt.Errorf("session %q: %w: no steps", sessionID, catalog.ErrInvalidStep)
	}
	for _, step := range session.Steps {
		if err := catalog.ValidateStep(step); err != nil {
			return err
		}
	}

	e.teardown()
	e.session = session
	e.state = &PlaybackState{
		AttemptID: uuid.NewString(),
		Set:       1,
		Rep:       1,
		Phase:     PhaseCountdown,
		Remaining: CountdownSeconds,
	}
	e.dispatch = NewDispatcher(e.opts.Feedback, e.opts.Settings, e.log)
	e.log.Debug("playback started", "session", sessionID, "attempt", e.state.AttemptID)
	e.emit(EventPhase)
	return nil
}

// Tick advances the clock by one second. It does nothing while paused,
// idle or completed.
func (e *Engine) Tick() Snapshot {
	st := e.state
	if st == nil || st.Paused || st.Phase == PhaseCompleted {
		return e.Snapshot()
	}
	st.Elapsed++
	if st.Remaining > 1 {
		st.Remaining--
		e.emit(EventTick)
		return e.Snapshot()
	}

	t, ok := nextTransition(st.Phase, e.cursor())
	if !ok {
		// Unreachable for a validated session; stop rather than loop.
		e.log.Error("no transition", "phase", st.Phase.String(), "cursor", int(e.cursor()))
		t = transition{PhaseCompleted, keepCounters}
	}
	e.apply(t)
	e.emit(EventTick)
	e.emitPhase()
	return e.Snapshot()
}

// Skip jumps to the next step's countdown, or completes the session from
// the last step, regardless of the time left in the current phase.
func (e *Engine) Skip() {
	if e.state == nil || e.state.Phase == PhaseCompleted {
		return
	}
	e.apply(skipTransition(e.cursor()))
	e.emitPhase()
}

func (e *Engine) cursor() cursor {
	st := e.state
	step := e.session.Steps[st.StepIndex]
	var c cursor
	if step.RepDriven() && st.Rep < step.RepCount() {
		c |= repLeft
	}
	if st.Set < step.Sets {
		c |= setLeft
	}
	if st.StepIndex < len(e.session.Steps)-1 {
		c |= stepLeft
	}
	if step.RestSeconds > 0 {
		c |= hasRest
	}
	return c
}

func (e *Engine) apply(t transition) {
	st := e.state
	switch t.rule {
	case advanceRep:
		st.Rep++
	case advanceSet:
		st.Set++
		st.Rep = 1
	case advanceStep:
		st.StepIndex++
		st.Set = 1
		st.Rep = 1
	}
	st.Phase = t.next
	st.Remaining = e.phaseDuration()

	if st.Phase == PhaseCompleted {
		e.complete()
		return
	}
	e.dispatch.Notify(CueStep)
}

func (e *Engine) complete() {
	st := e.state
	e.summary = &Summary{
		SessionID:           e.session.ID,
		AttemptID:           st.AttemptID,
		TotalElapsedSeconds: st.Elapsed,
		StepCount:           len(e.session.Steps),
		Minutes:             RecordedMinutes(st.Elapsed),
	}
	e.dispatch.Notify(CueComplete)
	e.dispatch.Close()
	e.log.Debug("playback completed", "session", e.session.ID, "elapsed", st.Elapsed)
}

func (e *Engine) emitPhase() {
	e.emit(EventPhase)
	if e.summary != nil {
		e.emit(EventCompleted)
	}
}

// RecordedMinutes floors elapsed seconds to whole minutes with a floor of one.
func RecordedMinutes(elapsedSeconds int) int {
	return max(elapsedSeconds/60, 1)
}

func (e *Engine) phaseDuration() int {
	st := e.state
	switch st.Phase {
	case PhaseCountdown:
		return CountdownSeconds
	case PhaseWork:
		return e.session.Steps[st.StepIndex].WorkSeconds
	case PhaseRest:
		return e.session.Steps[st.StepIndex].RestSeconds
	}
	return 0
}

func (e *Engine) Pause() {
	if e.state == nil || e.state.Phase == PhaseCompleted {
		return
	}
	e.state.Paused = true
}

func (e *Engine) Resume() {
	if e.state == nil || e.state.Phase == PhaseCompleted || e.exitPending {
		return
	}
	e.state.Paused = false
}

func (e *Engine) TogglePause() {
	if e.state == nil {
		return
	}
	if e.state.Paused {
		e.Resume()
	} else {
		e.Pause()
	}
}

// RequestExit suspends playback while the caller confirms the exit.
// CancelExit restores the pause flag held before the request.
func (e *Engine) RequestExit() {
	if e.state == nil || e.exitPending {
		return
	}
	e.exitPending = true
	e.pausedBeforeExit = e.state.Paused
	e.state.Paused = true
}

func (e *Engine) CancelExit() {
	if e.state == nil || !e.exitPending {
		return
	}
	e.exitPending = false
	e.state.Paused = e.pausedBeforeExit
}

// Exit discards the attempt without recording it. Safe to call repeatedly
// or when nothing is playing.
func (e *Engine) Exit() {
	if e.state != nil && e.state.Phase != PhaseCompleted {
		e.log.Debug("playback exited", "session", e.session.ID, "elapsed", e.state.Elapsed)
	}
	e.teardown()
}

func (e *Engine) teardown() {
	e.dispatch.Close()
	e.dispatch = nil
	e.state = nil
	e.summary = nil
	e.committed = false
	e.exitPending = false
	e.pausedBeforeExit = false
}

// Commit hands a completed attempt to the Recorder. Repeated calls after a
// successful commit are no-ops.
func (e *Engine) Commit(ctx context.Context) error {
	if e.summary == nil {
		return ErrNotCompleted
	}
	if e.committed || e.opts.Recorder == nil {
		return nil
	}
	if err := e.opts.Recorder.RecordCompletion(ctx, e.summary.SessionID, e.summary.Minutes); err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	e.committed = true
	return nil
}

func (e *Engine) Summary() (Summary, bool) {
	if e.summary == nil {
		return Summary{}, false
	}
	return *e.summary, true
}

func (e *Engine) Session() catalog.Session {
	return e.session
}

func (e *Engine) Snapshot() Snapshot {
	st := e.state
	if st == nil {
		return Snapshot{}
	}
	s := Snapshot{
		Active:        true,
		SessionID:     e.session.ID,
		AttemptID:     st.AttemptID,
		Phase:         st.Phase,
		Remaining:     st.Remaining,
		PhaseDuration: e.phaseDuration(),
		StepIndex:     st.StepIndex,
		StepCount:     len(e.session.Steps),
		Set:           st.Set,
		Rep:           st.Rep,
		Step:          e.session.Steps[st.StepIndex],
		Paused:        st.Paused,
		ExitPending:   e.exitPending,
		Elapsed:       st.Elapsed,
	}
	s.Progress = progressFraction(s.Remaining, s.PhaseDuration)
	if st.Phase == PhaseCompleted {
		s.Progress = 1
	}
	return s
}

func progressFraction(remaining, duration int) float64 {
	if duration <= 0 {
		return 0
	}
	f := 1 - float64(remaining)/float64(duration)
	return min(max(f, 0), 1)
}

func (e *Engine) emit(kind EventKind) {
	if e.opts.OnEvent == nil {
		return
	}
	ev := Event{Kind: kind, Snapshot: e.Snapshot()}
	if kind == EventCompleted {
		sum := *e.summary
		ev.Summary = &sum
	}
	e.opts.OnEvent(ev)
}
