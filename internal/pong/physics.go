package pong

import (
	"time"

	"golang.org/x/exp/rand"
)

// Court geometry, shared with the clients so they draw what the server
// simulates. Paddles sit just inside the left and right edges.
const (
	LeftPaddleX      = 0.06
	RightPaddleX     = 0.94
	PaddleHalfHeight = 0.125
)

const (
	paddleThickness = 0.03

	// How strongly the hit offset from a paddle's center angles the return.
	angleFactor = 1.5

	serveSpeed = 0.5
	maxServeVY = 0.3
)

// Step advances the match by the wall-clock time elapsed since its previous
// step and returns the resulting snapshot. The integration interval is
// measured, not fixed: a late tick just produces a larger dt.
func (m *MatchState) Step(now time.Time) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	dt := now.Sub(m.lastTick).Seconds()
	m.lastTick = now

	m.ballX += m.ballVelocityX * dt
	m.ballY += m.ballVelocityY * dt

	// Top and bottom walls: clamp back inside and reflect.
	if m.ballY < 0 {
		m.ballY = 0
		m.ballVelocityY = -m.ballVelocityY
	}
	if m.ballY > 1 {
		m.ballY = 1
		m.ballVelocityY = -m.ballVelocityY
	}

	// Left paddle: ball inside the band just past the paddle face, heading
	// left, and vertically within half a paddle of its center.
	if m.ballVelocityX < 0 && m.ballX > LeftPaddleX && m.ballX < LeftPaddleX+paddleThickness {
		offset := m.ballY - m.paddle1Y
		if offset > -PaddleHalfHeight && offset < PaddleHalfHeight {
			m.ballX = LeftPaddleX + paddleThickness
			m.ballVelocityX = -m.ballVelocityX
			m.ballVelocityY += offset * angleFactor
		}
	}

	// Right paddle, mirrored.
	if m.ballVelocityX > 0 && m.ballX > RightPaddleX-paddleThickness && m.ballX < RightPaddleX {
		offset := m.ballY - m.paddle2Y
		if offset > -PaddleHalfHeight && offset < PaddleHalfHeight {
			m.ballX = RightPaddleX - paddleThickness
			m.ballVelocityX = -m.ballVelocityX
			m.ballVelocityY += offset * angleFactor
		}
	}

	// A ball past the court edge scores for the opposite side. Both edges
	// are checked independently; boundaries are inclusive so a serve that
	// lands exactly on the line still counts.
	if m.ballX <= 0 {
		m.score2++
		m.resetBall(1)
	}
	if m.ballX >= 1 {
		m.score1++
		m.resetBall(-1)
	}

	return m.snapshotLocked()
}

// resetBall recenters the ball and serves it toward direction (+1 right,
// -1 left) with a fresh random vertical component.
func (m *MatchState) resetBall(direction float64) {
	m.ballX = 0.5
	m.ballY = 0.5
	m.ballVelocityX = serveSpeed * direction
	m.ballVelocityY = serveVY(m.rng)
}

// serveVY draws a vertical serve velocity uniformly from [-maxServeVY, maxServeVY].
func serveVY(rng *rand.Rand) float64 {
	return rng.Float64()*2*maxServeVY - maxServeVY
}
