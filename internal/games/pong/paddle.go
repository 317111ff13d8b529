package pong

import (
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Paddle geometry and speed in world units.
const (
	paddleWidth   = 10.0
	paddleHeight  = 100.0
	paddleSpeed   = 5.0
	paddlePadding = 50.0
	paddleSpawnY  = -25.0
)

// paddleAnchorX returns the paddle's x position for a window width.
// The player defends the right edge, the CPU the left.
func paddleAnchorX(role Role, width float64) float64 {
	if role == RolePlayerPaddle {
		return width/2 - paddlePadding
	}
	return -width/2 + paddlePadding
}

// SpawnPaddles creates the player and CPU paddles at rest.
func SpawnPaddles(w *World, width float64) {
	for _, role := range [...]Role{RolePlayerPaddle, RoleAIPaddle} {
		pos := core.V2(paddleAnchorX(role, width), paddleSpawnY)
		w.Spawn(role, pos, &core.Vec2{}, RectShape(paddleWidth, paddleHeight))
	}
}

// ControlPlayer sets the player paddle's vertical velocity from held keys.
// Down is checked first, so it wins when both are held.
func ControlPlayer(w *World, keys core.KeyState) {
	e, ok := w.Single(RolePlayerPaddle)
	if !ok {
		return
	}

	var vy float64
	switch {
	case keys.Held(core.ActionDown):
		vy = -paddleSpeed
	case keys.Held(core.ActionUp):
		vy = paddleSpeed
	}
	w.Velocities.Update(e, func(v *Velocity) { v.Y = vy })
}

// ControlAI steers the CPU paddle toward the ball's height. The paddle
// stops only when exactly level with the ball.
func ControlAI(w *World) {
	paddle, ok := w.Single(RoleAIPaddle)
	if !ok {
		return
	}
	ball, ok := w.Single(RoleBall)
	if !ok {
		return
	}
	paddlePos, ok := w.Positions.Get(paddle)
	if !ok {
		return
	}
	ballPos, ok := w.Positions.Get(ball)
	if !ok {
		return
	}

	var vy float64
	switch diff := paddlePos.Y - ballPos.Y; {
	case diff > 0:
		vy = -paddleSpeed
	case diff < 0:
		vy = paddleSpeed
	}
	w.Velocities.Update(paddle, func(v *Velocity) { v.Y = vy })
}

// MovePaddles integrates both paddles. Paddles are never gated.
func MovePaddles(w *World) {
	paddleQuery.Each(w.ecs, func(en *donburi.Entry) {
		vel := velocityType.GetValue(en)
		pos := positionType.Get(en)
		pos.Vec2 = pos.Add(vel.Vec2)
	})
}
