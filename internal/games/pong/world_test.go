package pong

import (
	"testing"

	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-pong/internal/core"
)

func TestNewSimSpawnsEveryRoleOnce(t *testing.T) {
	s := NewSim(800, 600)
	w := s.World()

	if w.Len() != 7 {
		t.Fatalf("expected 7 entities, got %d", w.Len())
	}

	counts := make(map[Role]int)
	w.Roles.Each(func(_ donburi.Entity, r Role) {
		counts[r]++
	})
	for _, role := range []Role{RoleBall, RolePlayerPaddle, RoleAIPaddle,
		RoleBorderLeft, RoleBorderRight, RoleBorderTop, RoleBorderBottom} {
		if counts[role] != 1 {
			t.Errorf("role %v spawned %d times, expected 1", role, counts[role])
		}
		if _, ok := w.Single(role); !ok {
			t.Errorf("Single(%v) not found", role)
		}
	}
}

func TestWorldDespawn(t *testing.T) {
	w := NewWorld()
	vel := core.V2(1, 1)
	e := w.Spawn(RoleBall, core.Vec2{}, &vel, CircleShape(ballRadius))

	w.Despawn(e)

	if _, ok := w.Single(RoleBall); ok {
		t.Error("Single should not find a despawned ball")
	}
	if w.Positions.Has(e) || w.Velocities.Has(e) || w.Shapes.Has(e) || w.Roles.Has(e) {
		t.Error("Despawn should remove the entity from every table")
	}
}

func TestWorldBorderOf(t *testing.T) {
	w := NewWorld()
	SpawnBorders(w, 800, 600)
	ball := SpawnBall(w)

	for role, side := range map[Role]Side{
		RoleBorderLeft:   SideLeft,
		RoleBorderRight:  SideRight,
		RoleBorderTop:    SideTop,
		RoleBorderBottom: SideBottom,
	} {
		e, _ := w.Single(role)
		got, ok := w.BorderOf(e)
		if !ok || got != side {
			t.Errorf("BorderOf(%v) = %v, %v; expected %v", role, got, ok, side)
		}
	}

	if _, ok := w.BorderOf(ball); ok {
		t.Error("the ball is not a border")
	}
}

func TestShapeHalfExtents(t *testing.T) {
	if got := RectShape(10, 100).HalfExtents(); got != core.V2(5, 50) {
		t.Errorf("HalfExtents() = %v, expected (5, 50)", got)
	}
	if got := CircleShape(7).HalfExtents(); got != (core.Vec2{}) {
		t.Errorf("circle HalfExtents() = %v, expected zero", got)
	}
}

func TestTableSetAddsComponent(t *testing.T) {
	w := NewWorld()
	SpawnBorders(w, 800, 600)
	left, _ := w.Single(RoleBorderLeft)

	if w.Velocities.Has(left) {
		t.Fatal("borders spawn without a velocity")
	}
	w.Velocities.Set(left, Velocity{core.V2(1, 0)})
	if v, ok := w.Velocities.Get(left); !ok || v.X != 1 {
		t.Errorf("Velocities.Get = %v, %v; expected (1, 0)", v, ok)
	}
	// Adding a component moves the entity but keeps its role.
	if e, ok := w.Single(RoleBorderLeft); !ok || e != left {
		t.Error("Single lost the border after adding a component")
	}
	if side, ok := w.BorderOf(left); !ok || side != SideLeft {
		t.Errorf("BorderOf = %v, %v; expected left", side, ok)
	}
}

func TestTableOnDespawnedEntity(t *testing.T) {
	w := NewWorld()
	ball := SpawnBall(w)
	w.Despawn(ball)
	w.Despawn(ball) // second despawn is a no-op

	w.Positions.Set(ball, Position{core.V2(1, 1)})
	if w.Positions.Has(ball) {
		t.Error("Set must ignore a despawned entity")
	}
	called := false
	if w.Velocities.Update(ball, func(*Velocity) { called = true }) || called {
		t.Error("Update must not touch a despawned entity")
	}
	if w.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", w.Len())
	}
}

func TestWorldClear(t *testing.T) {
	s := NewSim(800, 600)
	w := s.World()
	w.Clear()

	if w.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, expected 0", w.Len())
	}
	for _, role := range borderRoles {
		if _, ok := w.Single(role); ok {
			t.Errorf("Single(%v) found an entity after Clear", role)
		}
	}
	SpawnBall(w)
	if w.Len() != 1 {
		t.Errorf("Len() = %d after respawn, expected 1", w.Len())
	}
}
