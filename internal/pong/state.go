package pong

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// MatchState is the authoritative simulation state for one match. All
// coordinates are normalized: the court spans [0,1] on both axes.
type MatchState struct {
	mu sync.Mutex

	paddle1Y float64
	paddle2Y float64

	ballX         float64
	ballY         float64
	ballVelocityX float64
	ballVelocityY float64

	score1 int
	score2 int

	lastTick time.Time
	rng      *rand.Rand
}

// Snapshot is a point-in-time copy of a match's state, safe to hand to
// broadcast code while the simulation keeps running.
type Snapshot struct {
	Paddle1Y      float64 `json:"paddle1Y"`
	Paddle2Y      float64 `json:"paddle2Y"`
	BallX         float64 `json:"ballX"`
	BallY         float64 `json:"ballY"`
	BallVelocityX float64 `json:"ballVelocityX"`
	BallVelocityY float64 `json:"ballVelocityY"`
	Score1        int     `json:"score1"`
	Score2        int     `json:"score2"`
}

func newMatchState(rng *rand.Rand) *MatchState {
	return &MatchState{
		paddle1Y:      0.5,
		paddle2Y:      0.5,
		ballX:         0.5,
		ballY:         0.5,
		ballVelocityX: serveSpeed,
		ballVelocityY: serveVY(rng),
		lastTick:      time.Now(),
		rng:           rng,
	}
}

// SetPaddle1Y stores a clamped paddle position for player 1.
func (m *MatchState) SetPaddle1Y(y float64) {
	m.mu.Lock()
	m.paddle1Y = clamp01(y)
	m.mu.Unlock()
}

// SetPaddle2Y stores a clamped paddle position for player 2.
func (m *MatchState) SetPaddle2Y(y float64) {
	m.mu.Lock()
	m.paddle2Y = clamp01(y)
	m.mu.Unlock()
}

func (m *MatchState) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *MatchState) snapshotLocked() Snapshot {
	return Snapshot{
		Paddle1Y:      m.paddle1Y,
		Paddle2Y:      m.paddle2Y,
		BallX:         m.ballX,
		BallY:         m.ballY,
		BallVelocityX: m.ballVelocityX,
		BallVelocityY: m.ballVelocityY,
		Score1:        m.score1,
		Score2:        m.score2,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
