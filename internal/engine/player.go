package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrStopped    = errors.New("playback stopped")
	ErrPlayerUsed = errors.New("player already ran")
)

type command int

const (
	cmdTogglePause command = iota
	cmdPause
	cmdResume
	cmdSkip
	cmdRequestExit
	cmdCancelExit
)

// Player owns the repeating timer for one playback. Ticks and user intents
// are applied on a single goroutine, one at a time.
type Player struct {
	engine   *Engine
	interval time.Duration
	log      *slog.Logger

	cmds     chan command
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
}

func NewPlayer(e *Engine, interval time.Duration, log *slog.Logger) *Player {
	if interval <= 0 {
		interval = time.Second
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Player{
		engine:   e,
		interval: interval,
		log:      log,
		cmds:     make(chan command),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run ticks the engine until the session completes, Stop is called or ctx
// is cancelled. On completion the result is committed before Run returns.
// A stopped or cancelled run is discarded and never committed.
func (p *Player) Run(ctx context.Context) (Summary, error) {
	if !p.started.CompareAndSwap(false, true) {
		return Summary{}, ErrPlayerUsed
	}
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if sum, ok := p.engine.Summary(); ok {
			if err := p.engine.Commit(ctx); err != nil {
				p.log.Error("commit failed", "session", sum.SessionID, "error", err)
				return sum, err
			}
			return sum, nil
		}

		select {
		case <-ctx.Done():
			p.engine.Exit()
			return Summary{}, ctx.Err()
		case <-p.stop:
			p.engine.Exit()
			return Summary{}, ErrStopped
		case c := <-p.cmds:
			p.apply(c)
		case <-ticker.C:
			p.engine.Tick()
		}
	}
}

func (p *Player) apply(c command) {
	switch c {
	case cmdTogglePause:
		p.engine.TogglePause()
	case cmdPause:
		p.engine.Pause()
	case cmdResume:
		p.engine.Resume()
	case cmdSkip:
		p.engine.Skip()
	case cmdRequestExit:
		p.engine.RequestExit()
	case cmdCancelExit:
		p.engine.CancelExit()
	}
}

func (p *Player) TogglePause() { p.send(cmdTogglePause) }
func (p *Player) Pause()       { p.send(cmdPause) }
func (p *Player) Resume()      { p.send(cmdResume) }
func (p *Player) Skip()        { p.send(cmdSkip) }
func (p *Player) RequestExit() { p.send(cmdRequestExit) }
func (p *Player) CancelExit()  { p.send(cmdCancelExit) }

// send hands an intent to the Run loop. Before Run starts it waits for it,
// so input read early is not lost. After Stop or once Run returned the
// intent is dropped.
func (p *Player) send(c command) {
	select {
	case p.cmds <- c:
	case <-p.stop:
	case <-p.done:
	}
}

// Stop tears the timer down and discards the attempt. When it returns no
// further tick reaches the engine. Safe to call repeatedly, before Run, or
// after Run has returned; must not be called from an OnEvent callback.
func (p *Player) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	if p.started.Load() {
		<-p.done
	}
}
