package pong

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Side identifies which face of a rectangle the ball struck.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Detect tests a circle against an axis-aligned box and classifies the
// struck side. The side is taken from the offset between the circle center
// and the closest point on the box: the horizontal axis wins only when its
// offset is strictly larger. A center inside the box has a zero offset and
// therefore reports SideBottom.
func Detect(center core.Vec2, radius float64, boxCenter, halfExtents core.Vec2) (Side, bool) {
	closest := center.Clamp(boxCenter.Sub(halfExtents), boxCenter.Add(halfExtents))
	offset := center.Sub(closest)
	if offset.Len() > radius {
		return 0, false
	}

	if math.Abs(offset.X) > math.Abs(offset.Y) {
		if offset.X < 0 {
			return SideLeft, true
		}
		return SideRight, true
	}
	if offset.Y > 0 {
		return SideTop, true
	}
	return SideBottom, true
}

// Reflect flips the velocity component normal to the struck side.
func Reflect(v core.Vec2, s Side) core.Vec2 {
	switch s {
	case SideLeft, SideRight:
		v.X = -v.X
	case SideTop, SideBottom:
		v.Y = -v.Y
	}
	return v
}
