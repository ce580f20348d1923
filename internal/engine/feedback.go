package engine

import (
	"fmt"
	"log/slog"
	"sync"
)

// Cue identifies an audio cue played on a phase transition.
type Cue int

const (
	CueStep Cue = iota
	CueComplete
)

func (c Cue) String() string {
	if c == CueComplete {
		return "complete"
	}
	return "step"
}

// Feedback is the device side of transition signals: a haptic pulse and a
// short sound. Implementations may be slow or fail.
type Feedback interface {
	Haptic() error
	Play(Cue) error
}

// FeedbackSettings is the read-only snapshot of the user's toggles taken
// when a session starts.
type FeedbackSettings struct {
	Sound     bool
	Vibration bool
}

const dispatchBuffer = 8

// Dispatcher delivers cues to a Feedback on its own goroutine. Notify never
// blocks: when the buffer is full the cue is dropped.
type Dispatcher struct {
	fb       Feedback
	settings FeedbackSettings
	log      *slog.Logger

	mu     sync.Mutex
	closed bool
	ch     chan Cue
	done   chan struct{}
}

func NewDispatcher(fb Feedback, settings FeedbackSettings, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	d := &Dispatcher{
		fb:       fb,
		settings: settings,
		log:      log,
		ch:       make(chan Cue, dispatchBuffer),
		done:     make(chan struct{}),
	}
	go d.loop()
	return d
}

func (d *Dispatcher) Notify(c Cue) {
	if d == nil || d.fb == nil || (!d.settings.Sound && !d.settings.Vibration) {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	select {
	case d.ch <- c:
	default:
		d.log.Debug("feedback dropped", "cue", c.String())
	}
}

// Close stops accepting cues. Already queued cues are still delivered.
// Safe to call more than once.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	close(d.ch)
}

// Done is closed once every queued cue has been delivered after Close.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

func (d *Dispatcher) loop() {
	defer close(d.done)
	for c := range d.ch {
		d.deliver(c)
	}
}

func (d *Dispatcher) deliver(c Cue) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Warn("feedback panicked", "cue", c.String(), "panic", fmt.Sprint(r))
		}
	}()
	if d.settings.Vibration {
		if err := d.fb.Haptic(); err != nil {
			d.log.Warn("haptic failed", "error", err)
		}
	}
	if d.settings.Sound {
		if err := d.fb.Play(c); err != nil {
			d.log.Warn("audio cue failed", "cue", c.String(), "error", err)
		}
	}
}
