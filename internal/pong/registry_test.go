package pong

import (
	"sort"
	"testing"
)

func TestEnsureCreatedInitialState(t *testing.T) {
	r := NewRegistry()

	r.EnsureCreated("abc")

	m, ok := r.Get("abc")
	if !ok {
		t.Fatalf("match missing after EnsureCreated")
	}
	s := m.Snapshot()
	if s.Paddle1Y != 0.5 || s.Paddle2Y != 0.5 {
		t.Fatalf("paddles = (%f, %f), want both 0.5", s.Paddle1Y, s.Paddle2Y)
	}
	if s.BallX != 0.5 || s.BallY != 0.5 {
		t.Fatalf("ball = (%f, %f), want (0.5, 0.5)", s.BallX, s.BallY)
	}
	if s.Score1 != 0 || s.Score2 != 0 {
		t.Fatalf("scores = %d:%d, want 0:0", s.Score1, s.Score2)
	}
	if s.BallVelocityX != serveSpeed {
		t.Fatalf("vx = %f, want %f", s.BallVelocityX, serveSpeed)
	}
	if s.BallVelocityY < -maxServeVY || s.BallVelocityY > maxServeVY {
		t.Fatalf("vy = %f, want within [%f, %f]", s.BallVelocityY, -maxServeVY, maxServeVY)
	}
}

func TestEnsureCreatedIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.EnsureCreated("abc")

	m, _ := r.Get("abc")
	m.SetPaddle1Y(0.9)

	// A second create must not reset the running match.
	r.EnsureCreated("abc")

	m2, ok := r.Get("abc")
	if !ok {
		t.Fatalf("match missing after repeated EnsureCreated")
	}
	if m2 != m {
		t.Fatalf("repeated EnsureCreated replaced the match state")
	}
	if got := m2.Snapshot().Paddle1Y; got != 0.9 {
		t.Fatalf("paddle1Y = %f, want 0.9 preserved", got)
	}
}

func TestMarkEndedIsPermanent(t *testing.T) {
	r := NewRegistry()
	r.EnsureCreated("abc")

	r.MarkEnded("abc")

	if !r.IsEnded("abc") {
		t.Fatalf("IsEnded = false after MarkEnded")
	}
	if _, ok := r.Get("abc"); ok {
		t.Fatalf("Get returned state for an ended match")
	}

	// A later join can never resurrect the match.
	r.EnsureCreated("abc")
	if _, ok := r.Get("abc"); ok {
		t.Fatalf("EnsureCreated resurrected an ended match")
	}
}

func TestMarkEndedTwiceEqualsOnce(t *testing.T) {
	r := NewRegistry()
	r.EnsureCreated("abc")

	r.MarkEnded("abc")
	r.MarkEnded("abc")

	if !r.IsEnded("abc") {
		t.Fatalf("IsEnded = false after double MarkEnded")
	}
	if _, ok := r.Get("abc"); ok {
		t.Fatalf("Get returned state after double MarkEnded")
	}
}

func TestAllActiveIDs(t *testing.T) {
	r := NewRegistry()
	r.EnsureCreated("a")
	r.EnsureCreated("b")
	r.MarkEnded("b")

	ids := r.AllActiveIDs()
	if len(ids) != 1 || ids[0] != "a" {
		t.Fatalf("AllActiveIDs = %v, want [a]", ids)
	}

	// Matches created after a snapshot show up on the next one.
	r.EnsureCreated("c")
	ids = r.AllActiveIDs()
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "c" {
		t.Fatalf("AllActiveIDs = %v, want [a c]", ids)
	}
}
