package pong

import (
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Ball geometry. The ball's speed magnitude never changes during a match.
const (
	ballRadius = 7.0
	ballSpeed  = 6.0
)

// CollisionEvent records one ball contact during a tick.
type CollisionEvent struct {
	Side   Side
	Entity donburi.Entity // the struck entity, never the ball
}

// SpawnBall creates the ball at the origin heading up and right.
func SpawnBall(w *World) donburi.Entity {
	vel := core.V2(ballSpeed, ballSpeed)
	return w.Spawn(RoleBall, core.Vec2{}, &vel, CircleShape(ballRadius))
}

// MoveBall integrates the ball unless gated. Gating leaves the velocity
// untouched so motion resumes unchanged.
func MoveBall(w *World, gated bool) {
	if gated {
		return
	}
	e, ok := w.Single(RoleBall)
	if !ok {
		return
	}
	vel, ok := w.Velocities.Get(e)
	if !ok {
		return
	}
	w.Positions.Update(e, func(p *Position) { p.Vec2 = p.Add(vel.Vec2) })
}

// CollideBall tests the ball against every rectangle, once per entity,
// reflecting the velocity for each hit. Events are appended to out.
// Each reflection flips one axis, so the result does not depend on the
// order rectangles are visited in.
func CollideBall(w *World, out []CollisionEvent) []CollisionEvent {
	ball, ok := w.Single(RoleBall)
	if !ok {
		return out
	}
	pos, ok := w.Positions.Get(ball)
	if !ok {
		return out
	}
	shape, ok := w.Shapes.Get(ball)
	if !ok || shape.Kind != ShapeCircle {
		return out
	}
	vel, ok := w.Velocities.Get(ball)
	if !ok {
		return out
	}

	bodyQuery.Each(w.ecs, func(en *donburi.Entry) {
		other := shapeType.GetValue(en)
		if other.Kind != ShapeRect {
			return
		}
		otherPos := positionType.GetValue(en)
		side, hit := Detect(pos.Vec2, shape.Radius, otherPos.Vec2, other.HalfExtents())
		if !hit {
			return
		}
		out = append(out, CollisionEvent{Side: side, Entity: en.Entity()})
		vel.Vec2 = Reflect(vel.Vec2, side)
	})

	w.Velocities.Set(ball, vel)
	return out
}

// ResetOnScore serves the ball again from the origin for each point.
// A CPU point reverses the horizontal direction, a player point keeps it;
// the vertical direction is always kept.
func ResetOnScore(w *World, scored []Scored) {
	if len(scored) == 0 {
		return
	}
	e, ok := w.Single(RoleBall)
	if !ok {
		return
	}

	for _, s := range scored {
		w.Positions.Set(e, Position{})
		if s == ScoredAI {
			w.Velocities.Update(e, func(v *Velocity) { v.X = -v.X })
		}
	}
}
