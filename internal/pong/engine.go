package pong

import (
	"log/slog"
	"time"
)

// Broadcaster delivers a match's updated state to everyone watching it.
// Delivery is fire-and-forget: implementations must not block the caller.
type Broadcaster interface {
	BroadcastState(matchID string, state Snapshot)
}

// Engine drives the simulation: a single goroutine steps every active
// match at a nominal fixed rate. The rate is best-effort; each match
// integrates over its own measured elapsed time, so a slow tick slows the
// broadcast cadence but not game speed.
type Engine struct {
	registry *Registry
	out      Broadcaster
	interval time.Duration
	stop     chan struct{}
}

func NewEngine(registry *Registry, out Broadcaster, tickRate int) *Engine {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Engine{
		registry: registry,
		out:      out,
		interval: time.Second / time.Duration(tickRate),
		stop:     make(chan struct{}),
	}
}

// Run loops until Stop is called. Call it on its own goroutine.
func (e *Engine) Run() {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			e.tick(time.Now())
		}
	}
}

func (e *Engine) Stop() {
	close(e.stop)
}

func (e *Engine) tick(now time.Time) {
	for _, id := range e.registry.AllActiveIDs() {
		e.stepMatch(id, now)
	}
}

// stepMatch advances one match and fans its snapshot out. A panic here is
// confined to this match; the rest of the tick still runs.
func (e *Engine) stepMatch(matchID string, now time.Time) {
	defer func() {
		if v := recover(); v != nil {
			slog.Error("match step panicked", "match", matchID, "panic", v)
		}
	}()
	state, ok := e.registry.Get(matchID)
	if !ok {
		return
	}
	e.out.BroadcastState(matchID, state.Step(now))
}
