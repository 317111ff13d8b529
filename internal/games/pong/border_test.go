package pong

import (
	"testing"

	"github.com/vovakirdan/tui-pong/internal/core"
)

func TestBorderPosition(t *testing.T) {
	tests := []struct {
		side     Side
		expected core.Vec2
	}{
		{SideLeft, core.V2(-400, 0)},
		{SideRight, core.V2(400, 0)},
		{SideTop, core.V2(0, 300)},
		{SideBottom, core.V2(0, -300)},
	}

	for _, tc := range tests {
		t.Run(tc.side.String(), func(t *testing.T) {
			if got := BorderPosition(tc.side, 400, 300); got != tc.expected {
				t.Errorf("BorderPosition(%v) = %v, expected %v", tc.side, got, tc.expected)
			}
		})
	}
}

func TestSpawnBordersShapes(t *testing.T) {
	w := NewWorld()
	SpawnBorders(w, 800, 600)

	left, _ := w.Single(RoleBorderLeft)
	top, _ := w.Single(RoleBorderTop)

	if s, _ := w.Shapes.Get(left); s.Width != borderThickness || s.Height != borderLength {
		t.Errorf("left border shape = %+v, expected vertical strip", s)
	}
	if s, _ := w.Shapes.Get(top); s.Width != borderLength || s.Height != borderThickness {
		t.Errorf("top border shape = %+v, expected horizontal strip", s)
	}
	if w.Velocities.Has(left) {
		t.Error("borders should not carry a velocity")
	}
}

func TestSimResizeMovesBordersAndPaddleAnchors(t *testing.T) {
	s := NewSim(800, 600)
	w := s.World()

	player, _ := w.Single(RolePlayerPaddle)
	w.Positions.Update(player, func(p *Position) { p.Y = 120 })

	s.Resize(1000, 400)

	expect := map[Role]core.Vec2{
		RoleBorderLeft:   core.V2(-500, 0),
		RoleBorderRight:  core.V2(500, 0),
		RoleBorderTop:    core.V2(0, 200),
		RoleBorderBottom: core.V2(0, -200),
		RolePlayerPaddle: core.V2(450, 120),
		RoleAIPaddle:     core.V2(-450, paddleSpawnY),
	}
	for role, want := range expect {
		e, _ := w.Single(role)
		got, _ := w.Positions.Get(e)
		if got.Vec2 != want {
			t.Errorf("%v at %v after resize, expected %v", role, got.Vec2, want)
		}
	}

	if width, height := s.Size(); width != 1000 || height != 400 {
		t.Errorf("Size() = %vx%v, expected 1000x400", width, height)
	}
}
