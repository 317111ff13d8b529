package pong

import "github.com/vovakirdan/tui-pong/internal/core"

// Autopilot is a KeyState that holds Up or Down to bring the player paddle
// level with the ball, the way a human holding the arrow keys would.
// It is used for demo play and headless runs.
type Autopilot struct {
	sim *Sim
}

var _ core.KeyState = Autopilot{}

// NewAutopilot creates an autopilot reading positions from sim.
func NewAutopilot(sim *Sim) Autopilot {
	return Autopilot{sim: sim}
}

// Held implements core.KeyState. The paddle is left alone within one
// tick's travel of the ball to avoid oscillating around it.
func (a Autopilot) Held(act core.Action) bool {
	w := a.sim.World()
	paddle, ok := w.Single(RolePlayerPaddle)
	if !ok {
		return false
	}
	ball, ok := w.Single(RoleBall)
	if !ok {
		return false
	}
	pp, _ := w.Positions.Get(paddle)
	bp, _ := w.Positions.Get(ball)

	diff := bp.Y - pp.Y
	switch act {
	case core.ActionUp:
		return diff > paddleSpeed
	case core.ActionDown:
		return diff < -paddleSpeed
	default:
		return false
	}
}
