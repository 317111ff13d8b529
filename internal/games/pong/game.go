// Package pong implements the pong simulation: a player paddle on the
// right, a CPU paddle on the left, a ball bouncing between four borders,
// and a serve countdown after every point.
//
// The simulation runs in world units with the origin at the window center
// and y pointing up. Game adapts it to the terminal platform by projecting
// world positions onto character cells.
package pong

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar     = '█'
	BallChar       = '●'
	NetChar        = '┊'
	HBorderChar    = '─'
	VBorderChar    = '│'
	defaultTPS     = 60
	defaultCellW   = 16.0
	defaultCellH   = 32.0
	countdownLabel = "serve in "
)

// Game wraps a Sim for the terminal platform.
type Game struct {
	sim     *Sim
	runtime core.RuntimeConfig
	dt      time.Duration
	paused  bool
	demo    bool
}

// New creates a new Pong game instance. Call Reset before stepping.
func New() *Game {
	return &Game{}
}

// ID returns the identifier used for match history.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
}

// SetDemo makes the player paddle follow the ball on its own.
func (g *Game) SetDemo(demo bool) {
	g.demo = demo
}

// Reset initializes or restarts the match for the given screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = defaultTPS
	}
	if runtime.CellWidth <= 0 {
		runtime.CellWidth = defaultCellW
	}
	if runtime.CellHeight <= 0 {
		runtime.CellHeight = defaultCellH
	}
	g.runtime = runtime
	g.dt = time.Second / time.Duration(runtime.TickRate)
	g.paused = false

	width, height := runtime.WorldSize()
	if g.sim == nil {
		g.sim = NewSim(width, height)
		return
	}
	g.sim.Reset(width, height)
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
	if g.sim != nil {
		g.sim.Resize(g.runtime.WorldSize())
	}
}

// Sim returns the underlying simulation.
func (g *Game) Sim() *Sim {
	return g.sim
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	var keys core.KeyState = in
	if g.demo {
		keys = NewAutopilot(g.sim)
	}
	res := g.sim.Step(keys, g.dt)

	out := core.StepResult{Collisions: len(res.Collisions)}
	for _, s := range res.Scored {
		if s == ScoredAI {
			out.AIPoints++
		} else {
			out.PlayerPoints++
		}
	}
	out.State = g.State()
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := g.sim.Score()
	return core.GameState{
		PlayerScore: score.Player,
		AIScore:     score.AI,
		Countdown:   g.sim.Countdown().Display(),
		Paused:      g.paused,
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	centerX, _ := g.project(core.Vec2{})
	for y := 1; y < dst.Height()-1; y += 2 {
		dst.SetColored(centerX, y, NetChar, core.ColorGray)
	}

	for _, r := range g.sim.Renderables() {
		switch {
		case r.Shape.Kind == ShapeCircle:
			x, y := g.project(r.Position)
			dst.SetColored(x, y, BallChar, core.ColorRed)
		case r.Role == RolePlayerPaddle:
			g.fillRect(dst, r, PaddleChar, core.ColorGreen)
		case r.Role == RoleAIPaddle:
			g.fillRect(dst, r, PaddleChar, core.ColorWhite)
		case r.Role == RoleBorderLeft || r.Role == RoleBorderRight:
			g.fillRect(dst, r, VBorderChar, core.ColorGray)
		default:
			g.fillRect(dst, r, HBorderChar, core.ColorGray)
		}
	}

	// HUD: CPU score on the left of the colon, player on the right.
	dst.DrawTextCentered(1, g.sim.Score().String(), core.ColorBrightWhite)
	if cd := g.sim.Countdown().Display(); cd != "" {
		dst.DrawTextCentered(dst.Height()/2-2, countdownLabel+cd, core.ColorYellow)
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "P to resume  |  R to restart")
	}
}

// project maps a world position to a screen cell.
func (g *Game) project(p core.Vec2) (int, int) {
	width, height := g.runtime.WorldSize()
	x := int(math.Floor((p.X + width/2) / g.runtime.CellWidth))
	y := int(math.Floor((height/2 - p.Y) / g.runtime.CellHeight))
	return x, y
}

// fillRect fills every cell a rectangle overlaps, clipped to the screen.
func (g *Game) fillRect(dst *core.Screen, r Renderable, ch rune, c core.Color) {
	half := r.Shape.HalfExtents()
	x0, y0 := g.project(core.V2(r.Position.X-half.X, r.Position.Y+half.Y))
	x1, y1 := g.project(core.V2(r.Position.X+half.X, r.Position.Y-half.Y))
	if x1 < 0 || y1 < 0 || x0 >= dst.Width() || y0 >= dst.Height() {
		return
	}

	x0 = core.Clamp(x0, 0, dst.Width()-1)
	x1 = core.Clamp(x1, 0, dst.Width()-1)
	y0 = core.Clamp(y0, 0, dst.Height()-1)
	y1 = core.Clamp(y1, 0, dst.Height()-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, ch, c)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorCyan)
}
