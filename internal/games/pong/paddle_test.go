package pong

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/core"
)

func paddleVelocity(t *testing.T, w *World, role Role) float64 {
	t.Helper()
	e, ok := w.Single(role)
	if !ok {
		t.Fatalf("%v paddle missing", role)
	}
	v, _ := w.Velocities.Get(e)
	return v.Y
}

func TestControlPlayer(t *testing.T) {
	tests := []struct {
		name     string
		held     []core.Action
		expected float64
	}{
		{"nothing held", nil, 0},
		{"up", []core.Action{core.ActionUp}, paddleSpeed},
		{"down", []core.Action{core.ActionDown}, -paddleSpeed},
		{"both, down wins", []core.Action{core.ActionUp, core.ActionDown}, -paddleSpeed},
		{"unrelated key", []core.Action{core.ActionPause}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			SpawnPaddles(w, 800)

			in := core.NewInputFrame()
			for _, a := range tc.held {
				in.Set(a)
			}
			ControlPlayer(w, in)

			if got := paddleVelocity(t, w, RolePlayerPaddle); got != tc.expected {
				t.Errorf("player velocity.y = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestControlPlayerRecomputesEachTick(t *testing.T) {
	w := NewWorld()
	SpawnPaddles(w, 800)

	up := core.NewInputFrame()
	up.Set(core.ActionUp)
	ControlPlayer(w, up)
	ControlPlayer(w, core.NewInputFrame())

	if got := paddleVelocity(t, w, RolePlayerPaddle); got != 0 {
		t.Errorf("releasing the key should stop the paddle, velocity.y = %v", got)
	}
}

func TestControlAI(t *testing.T) {
	tests := []struct {
		name     string
		ballY    float64
		expected float64
	}{
		{"ball above paddle", 100, paddleSpeed},
		{"ball below paddle", -200, -paddleSpeed},
		{"level", paddleSpawnY, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			SpawnPaddles(w, 800)
			ball := SpawnBall(w)
			w.Positions.Set(ball, Position{core.V2(0, tc.ballY)})

			ControlAI(w)

			if got := paddleVelocity(t, w, RoleAIPaddle); got != tc.expected {
				t.Errorf("ai velocity.y = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestAITrackingConverges(t *testing.T) {
	w := NewWorld()
	SpawnPaddles(w, 800)
	ball := SpawnBall(w)
	const ballY = -203.0
	w.Positions.Set(ball, Position{core.V2(0, ballY)})
	w.Velocities.Set(ball, Velocity{})

	ai, _ := w.Single(RoleAIPaddle)
	pos, _ := w.Positions.Get(ai)
	prev := pos.Y

	for tick := 0; tick < 200; tick++ {
		if math.Abs(prev-ballY) <= paddleSpeed {
			return
		}
		ControlAI(w)
		MovePaddles(w)

		pos, _ = w.Positions.Get(ai)
		if pos.Y >= prev {
			t.Fatalf("tick %d: paddle y %v did not decrease from %v", tick, pos.Y, prev)
		}
		prev = pos.Y
	}
	t.Fatalf("paddle never got within one tick of the ball, y = %v", prev)
}

func TestControlAIWithoutBall(t *testing.T) {
	w := NewWorld()
	SpawnPaddles(w, 800)
	ai, _ := w.Single(RoleAIPaddle)
	w.Velocities.Set(ai, Velocity{core.V2(0, 3)})

	ControlAI(w)

	if got := paddleVelocity(t, w, RoleAIPaddle); got != 3 {
		t.Errorf("missing ball should leave the ai velocity alone, got %v", got)
	}
}

func TestMovePaddlesWithoutPaddles(t *testing.T) {
	w := NewWorld()
	SpawnBall(w)

	// Must be a silent no-op.
	ControlPlayer(w, core.NewInputFrame())
	ControlAI(w)
	MovePaddles(w)
}

func TestMovePaddlesIntegrates(t *testing.T) {
	w := NewWorld()
	SpawnPaddles(w, 800)

	down := core.NewInputFrame()
	down.Set(core.ActionDown)
	for i := 0; i < 3; i++ {
		ControlPlayer(w, down)
		MovePaddles(w)
	}

	player, _ := w.Single(RolePlayerPaddle)
	pos, _ := w.Positions.Get(player)
	if want := core.V2(350, paddleSpawnY-3*paddleSpeed); pos.Vec2 != want {
		t.Errorf("player at %v, expected %v", pos.Vec2, want)
	}
}
