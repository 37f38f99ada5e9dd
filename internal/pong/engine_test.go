package pong

import (
	"sync"
	"testing"
	"time"
)

type captureBroadcaster struct {
	mu  sync.Mutex
	got map[string][]Snapshot
}

func newCaptureBroadcaster() *captureBroadcaster {
	return &captureBroadcaster{got: make(map[string][]Snapshot)}
}

func (b *captureBroadcaster) BroadcastState(matchID string, state Snapshot) {
	b.mu.Lock()
	b.got[matchID] = append(b.got[matchID], state)
	b.mu.Unlock()
}

func (b *captureBroadcaster) count(matchID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.got[matchID])
}

func TestEngineTickBroadcastsEveryActiveMatch(t *testing.T) {
	r := NewRegistry()
	r.EnsureCreated("m1")
	r.EnsureCreated("m2")
	out := newCaptureBroadcaster()
	e := NewEngine(r, out, 60)

	e.tick(time.Now())

	if out.count("m1") != 1 || out.count("m2") != 1 {
		t.Fatalf("broadcast counts = %d, %d, want 1 each", out.count("m1"), out.count("m2"))
	}
}

func TestEngineTickSkipsEndedMatches(t *testing.T) {
	r := NewRegistry()
	r.EnsureCreated("live")
	r.EnsureCreated("done")
	r.MarkEnded("done")
	out := newCaptureBroadcaster()
	e := NewEngine(r, out, 60)

	e.tick(time.Now())

	if out.count("live") != 1 {
		t.Fatalf("live match broadcasts = %d, want 1", out.count("live"))
	}
	if out.count("done") != 0 {
		t.Fatalf("ended match broadcasts = %d, want 0", out.count("done"))
	}
}

func TestEnginePanicInOneMatchDoesNotStopOthers(t *testing.T) {
	r := NewRegistry()
	r.EnsureCreated("good")

	// A match with no RNG panics the moment it has to serve.
	r.mu.Lock()
	r.states["bad"] = &MatchState{ballX: 2, lastTick: time.Now()}
	r.mu.Unlock()

	out := newCaptureBroadcaster()
	e := NewEngine(r, out, 60)

	// Two ticks: whatever the map order, the good match must keep going.
	e.tick(time.Now())
	e.tick(time.Now())

	if out.count("good") != 2 {
		t.Fatalf("good match broadcasts = %d, want 2", out.count("good"))
	}
}

func TestEngineRunBroadcastsUntilStopped(t *testing.T) {
	r := NewRegistry()
	r.EnsureCreated("m")
	out := newCaptureBroadcaster()
	e := NewEngine(r, out, 120)

	go e.Run()
	defer e.Stop()

	deadline := time.After(2 * time.Second)
	for out.count("m") < 3 {
		select {
		case <-deadline:
			t.Fatalf("timed out: %d broadcasts, want at least 3", out.count("m"))
		case <-time.After(5 * time.Millisecond):
		}
	}
}
