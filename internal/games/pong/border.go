package pong

import "github.com/vovakirdan/tui-pong/internal/core"

// Border dimensions in world units. Borders are long enough to never end
// inside any window.
const (
	borderThickness = 20.0
	borderLength    = 100000.0
)

var borderRoles = [...]Role{RoleBorderLeft, RoleBorderRight, RoleBorderTop, RoleBorderBottom}

// BorderPosition returns the center of the border guarding side for a
// window of the given half size. Borders straddle the window edge.
func BorderPosition(side Side, halfW, halfH float64) core.Vec2 {
	switch side {
	case SideLeft:
		return core.V2(-halfW, 0)
	case SideRight:
		return core.V2(halfW, 0)
	case SideTop:
		return core.V2(0, halfH)
	default:
		return core.V2(0, -halfH)
	}
}

func borderShape(side Side) Shape {
	if side == SideLeft || side == SideRight {
		return RectShape(borderThickness, borderLength)
	}
	return RectShape(borderLength, borderThickness)
}

// SpawnBorders creates the four borders for a width x height window.
func SpawnBorders(w *World, width, height float64) {
	for _, role := range borderRoles {
		side := sideOfBorder(role)
		w.Spawn(role, BorderPosition(side, width/2, height/2), nil, borderShape(side))
	}
}

// AdjustLayout re-derives border positions and the paddles' horizontal
// anchors from the current window size. Paddle heights are left alone.
func AdjustLayout(w *World, width, height float64) {
	for _, role := range borderRoles {
		e, ok := w.Single(role)
		if !ok {
			continue
		}
		w.Positions.Set(e, Position{BorderPosition(sideOfBorder(role), width/2, height/2)})
	}

	for _, role := range [...]Role{RolePlayerPaddle, RoleAIPaddle} {
		e, ok := w.Single(role)
		if !ok {
			continue
		}
		x := paddleAnchorX(role, width)
		w.Positions.Update(e, func(p *Position) { p.X = x })
	}
}

func sideOfBorder(role Role) Side {
	switch role {
	case RoleBorderLeft:
		return SideLeft
	case RoleBorderRight:
		return SideRight
	case RoleBorderTop:
		return SideTop
	default:
		return SideBottom
	}
}
