package pong

import (
	"slices"
	"time"

	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// TickResult describes what happened during one Sim.Step.
// The slices are only valid until the next Step.
type TickResult struct {
	Tick       uint64
	Gated      bool // ball integration was skipped this tick
	Collisions []CollisionEvent
	Scored     []Scored
	Score      Score
}

// Renderable is what a renderer needs to draw one entity.
type Renderable struct {
	Role     Role
	Position core.Vec2
	Shape    Shape
}

// Sim advances the pong simulation one fixed tick at a time.
// Not safe for concurrent use.
type Sim struct {
	world     *World
	score     Score
	countdown Countdown
	width     float64
	height    float64
	tick      uint64

	// Stage-local event queues, truncated at the start of every tick.
	collisions []CollisionEvent
	scored     []Scored
}

// NewSim spawns a ball, two paddles and four borders for a window of the
// given size in world units.
func NewSim(width, height float64) *Sim {
	s := &Sim{
		world:      NewWorld(),
		collisions: make([]CollisionEvent, 0, 4),
		scored:     make([]Scored, 0, 2),
	}
	s.Reset(width, height)
	return s
}

// Reset starts a fresh match: scores zeroed, entities respawned.
func (s *Sim) Reset(width, height float64) {
	s.world.Clear()
	s.width, s.height = width, height
	s.score = Score{}
	s.countdown.Reset()
	s.tick = 0

	SpawnBall(s.world)
	SpawnPaddles(s.world, width)
	SpawnBorders(s.world, width, height)
}

// Resize re-lays out the borders and paddle anchors for a new window size.
func (s *Sim) Resize(width, height float64) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	AdjustLayout(s.world, width, height)
}

// Step advances the simulation by one tick of length dt.
// Order: paddles, ball integration, collisions, scoring, serve reset, countdown.
func (s *Sim) Step(keys core.KeyState, dt time.Duration) TickResult {
	s.tick++
	s.collisions = s.collisions[:0]
	s.scored = s.scored[:0]

	ControlPlayer(s.world, keys)
	ControlAI(s.world)
	MovePaddles(s.world)

	gated := s.countdown.Gated()
	MoveBall(s.world, gated)
	s.collisions = CollideBall(s.world, s.collisions)

	s.scored = DetectScoring(s.world, s.collisions, &s.score, s.scored)
	ResetOnScore(s.world, s.scored)
	s.countdown.Update(s.scored, dt)

	return TickResult{
		Tick:       s.tick,
		Gated:      gated,
		Collisions: s.collisions,
		Scored:     s.scored,
		Score:      s.score,
	}
}

// World exposes the entity tables, mainly for tests and renderers.
func (s *Sim) World() *World {
	return s.world
}

// Score returns the current score.
func (s *Sim) Score() Score {
	return s.score
}

// Countdown returns the serve countdown.
func (s *Sim) Countdown() *Countdown {
	return &s.countdown
}

// Tick returns the number of ticks stepped since the last Reset.
func (s *Sim) Tick() uint64 {
	return s.tick
}

// Size returns the window size in world units.
func (s *Sim) Size() (width, height float64) {
	return s.width, s.height
}

// Renderables lists every entity with a position and shape in draw order:
// borders, then paddles, then the ball on top.
func (s *Sim) Renderables() []Renderable {
	out := make([]Renderable, 0, s.world.Len())
	bodyQuery.Each(s.world.ecs, func(en *donburi.Entry) {
		out = append(out, Renderable{
			Role:     roleType.GetValue(en),
			Position: positionType.GetValue(en).Vec2,
			Shape:    shapeType.GetValue(en),
		})
	})
	slices.SortFunc(out, func(a, b Renderable) int {
		if d := a.Role.layer() - b.Role.layer(); d != 0 {
			return d
		}
		return int(a.Role) - int(b.Role)
	})
	return out
}
