package pong

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/component"
	"github.com/yohamta/donburi/filter"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Position is the world-space center of an entity.
type Position struct {
	core.Vec2
}

// Velocity is the per-tick displacement of an entity.
type Velocity struct {
	core.Vec2
}

// ShapeKind tags the Shape variant.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
)

// Shape is either a circle (Radius) or a rectangle (Width, Height).
// Shapes are fixed at spawn.
type Shape struct {
	Kind   ShapeKind
	Radius float64
	Width  float64
	Height float64
}

// CircleShape returns a circle of the given radius.
func CircleShape(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// RectShape returns an axis-aligned rectangle.
func RectShape(width, height float64) Shape {
	return Shape{Kind: ShapeRect, Width: width, Height: height}
}

// HalfExtents returns half the rectangle's size. Zero for circles.
func (s Shape) HalfExtents() core.Vec2 {
	if s.Kind != ShapeRect {
		return core.Vec2{}
	}
	return core.V2(s.Width/2, s.Height/2)
}

// Role marks what an entity is. Roles are exclusive and never change.
type Role int

const (
	RoleBall Role = iota
	RolePlayerPaddle
	RoleAIPaddle
	RoleBorderLeft
	RoleBorderRight
	RoleBorderTop
	RoleBorderBottom
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleBall:
		return "ball"
	case RolePlayerPaddle:
		return "player"
	case RoleAIPaddle:
		return "ai"
	case RoleBorderLeft:
		return "border-left"
	case RoleBorderRight:
		return "border-right"
	case RoleBorderTop:
		return "border-top"
	case RoleBorderBottom:
		return "border-bottom"
	default:
		return "unknown"
	}
}

// IsPaddle reports whether the role is one of the two paddles.
func (r Role) IsPaddle() bool {
	return r == RolePlayerPaddle || r == RoleAIPaddle
}

// layer orders roles for drawing; higher layers are drawn later.
func (r Role) layer() int {
	switch {
	case r == RoleBall:
		return 2
	case r.IsPaddle():
		return 1
	default:
		return 0
	}
}

// Component types. Every entity carries a Role value and the tag for that
// role; queries select on tags, lookups read the value.
var (
	positionType = donburi.NewComponentType[Position]()
	velocityType = donburi.NewComponentType[Velocity]()
	shapeType    = donburi.NewComponentType[Shape]()
	roleType     = donburi.NewComponentType[Role]()

	roleTags = [...]component.IComponentType{
		RoleBall:         donburi.NewTag(),
		RolePlayerPaddle: donburi.NewTag(),
		RoleAIPaddle:     donburi.NewTag(),
		RoleBorderLeft:   donburi.NewTag(),
		RoleBorderRight:  donburi.NewTag(),
		RoleBorderTop:    donburi.NewTag(),
		RoleBorderBottom: donburi.NewTag(),
	}
)

var (
	roleQueries [len(roleTags)]*donburi.Query
	bodyQuery   = donburi.NewQuery(filter.Contains(positionType, shapeType))
	paddleQuery = donburi.NewQuery(filter.And(
		filter.Contains(positionType, velocityType),
		filter.Or(
			filter.Contains(roleTags[RolePlayerPaddle]),
			filter.Contains(roleTags[RoleAIPaddle]),
		),
	))
)

func init() {
	for role, tag := range roleTags {
		roleQueries[role] = donburi.NewQuery(filter.Contains(tag))
	}
}

// Table is typed access to one component of a World, keyed by entity.
type Table[T any] struct {
	w  *World
	ct *donburi.ComponentType[T]
	q  *donburi.Query
}

func newTable[T any](w *World, ct *donburi.ComponentType[T]) Table[T] {
	return Table[T]{w: w, ct: ct, q: donburi.NewQuery(filter.Contains(ct))}
}

func (t Table[T]) entry(e donburi.Entity) (*donburi.Entry, bool) {
	if !t.w.ecs.Valid(e) {
		return nil, false
	}
	en := t.w.ecs.Entry(e)
	if !en.HasComponent(t.ct) {
		return nil, false
	}
	return en, true
}

// Get returns the component of e, or false when e is gone or lacks it.
func (t Table[T]) Get(e donburi.Entity) (T, bool) {
	en, ok := t.entry(e)
	if !ok {
		var zero T
		return zero, false
	}
	return t.ct.GetValue(en), true
}

// Has reports whether e carries the component.
func (t Table[T]) Has(e donburi.Entity) bool {
	_, ok := t.entry(e)
	return ok
}

// Set stores val on e, adding the component if needed. Dead entities are ignored.
func (t Table[T]) Set(e donburi.Entity, val T) {
	if !t.w.ecs.Valid(e) {
		return
	}
	en := t.w.ecs.Entry(e)
	if !en.HasComponent(t.ct) {
		en.AddComponent(t.ct)
	}
	t.ct.SetValue(en, val)
}

// Update calls fn with the component of e in place. It reports false,
// without calling fn, when e lacks the component.
func (t Table[T]) Update(e donburi.Entity, fn func(*T)) bool {
	en, ok := t.entry(e)
	if !ok {
		return false
	}
	fn(t.ct.Get(en))
	return true
}

// Len counts the entities carrying the component.
func (t Table[T]) Len() int {
	return t.q.Count(t.w.ecs)
}

// Each calls fn for every entity carrying the component.
func (t Table[T]) Each(fn func(donburi.Entity, T)) {
	t.q.Each(t.w.ecs, func(en *donburi.Entry) {
		fn(en.Entity(), t.ct.GetValue(en))
	})
}

// World is the donburi world holding the pong entities.
type World struct {
	ecs donburi.World

	Positions  Table[Position]
	Velocities Table[Velocity]
	Shapes     Table[Shape]
	Roles      Table[Role]
}

// NewWorld creates an empty world.
func NewWorld() *World {
	w := &World{ecs: donburi.NewWorld()}
	w.Positions = newTable(w, positionType)
	w.Velocities = newTable(w, velocityType)
	w.Shapes = newTable(w, shapeType)
	w.Roles = newTable(w, roleType)
	return w
}

// Spawn creates an entity with a role, position and shape. Entities that
// never move (borders) are spawned without a velocity by passing nil.
func (w *World) Spawn(role Role, pos core.Vec2, vel *core.Vec2, shape Shape) donburi.Entity {
	comps := []component.IComponentType{roleType, roleTags[role], positionType, shapeType}
	if vel != nil {
		comps = append(comps, velocityType)
	}

	e := w.ecs.Create(comps...)
	en := w.ecs.Entry(e)
	roleType.SetValue(en, role)
	positionType.SetValue(en, Position{pos})
	shapeType.SetValue(en, shape)
	if vel != nil {
		velocityType.SetValue(en, Velocity{*vel})
	}
	return e
}

// Despawn removes an entity and all of its components.
func (w *World) Despawn(e donburi.Entity) {
	if w.ecs.Valid(e) {
		w.ecs.Remove(e)
	}
}

// Clear removes every entity.
func (w *World) Clear() {
	var all []donburi.Entity
	w.Roles.Each(func(e donburi.Entity, _ Role) {
		all = append(all, e)
	})
	for _, e := range all {
		w.ecs.Remove(e)
	}
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.Roles.Len()
}

// Single returns the unique entity carrying role.
// Missing entities report false; callers skip the dependent work.
func (w *World) Single(role Role) (donburi.Entity, bool) {
	en, ok := roleQueries[role].First(w.ecs)
	if !ok {
		return donburi.Null, false
	}
	return en.Entity(), true
}

// BorderOf returns the side an entity guards when it is a border.
func (w *World) BorderOf(e donburi.Entity) (Side, bool) {
	if !w.ecs.Valid(e) {
		return 0, false
	}
	en := w.ecs.Entry(e)
	for _, role := range borderRoles {
		if en.HasComponent(roleTags[role]) {
			return sideOfBorder(role), true
		}
	}
	return 0, false
}
