package pong

import (
	"fmt"
	"math"
	"time"
)

// CountdownDuration is how long the ball is held after a point.
const CountdownDuration = 3 * time.Second

// Scored names who won a point.
type Scored int

const (
	ScoredPlayer Scored = iota
	ScoredAI
)

// String returns the scorer's name.
func (s Scored) String() string {
	if s == ScoredAI {
		return "ai"
	}
	return "player"
}

// Score holds both point counters. Counters only ever increase.
type Score struct {
	Player int `yaml:"player"`
	AI     int `yaml:"ai"`
}

// String formats the score the way the HUD shows it, CPU first.
func (s Score) String() string {
	return fmt.Sprintf("%d : %d", s.AI, s.Player)
}

// DetectScoring turns collisions with the left or right border into
// points. The struck entity decides, not the reported side: the left
// border scores for the CPU, the right border for the player. Top and
// bottom contacts never score.
func DetectScoring(w *World, collisions []CollisionEvent, score *Score, out []Scored) []Scored {
	for _, c := range collisions {
		side, ok := w.BorderOf(c.Entity)
		if !ok {
			continue
		}
		switch side {
		case SideLeft:
			out = append(out, ScoredAI)
			score.AI++
		case SideRight:
			out = append(out, ScoredPlayer)
			score.Player++
		}
	}
	return out
}

// Countdown gates ball motion for CountdownDuration after a point.
// The zero value is idle.
type Countdown struct {
	active  bool
	elapsed time.Duration
}

// Gated reports whether a countdown is running.
func (c *Countdown) Gated() bool {
	return c.active
}

// Update advances a running countdown by dt, removing it once the full
// duration has elapsed. An idle countdown starts on any point; points
// scored while counting are ignored.
func (c *Countdown) Update(scored []Scored, dt time.Duration) {
	if c.active {
		c.elapsed += dt
		if c.elapsed >= CountdownDuration {
			c.active = false
			c.elapsed = 0
		}
		return
	}
	if len(scored) > 0 {
		c.active = true
		c.elapsed = 0
	}
}

// Remaining returns the time left, zero when idle.
func (c *Countdown) Remaining() time.Duration {
	if !c.active {
		return 0
	}
	return CountdownDuration - c.elapsed
}

// Display returns the remaining whole seconds, rounded up, or an empty
// string when no countdown is running.
func (c *Countdown) Display() string {
	if !c.active {
		return ""
	}
	return fmt.Sprintf("%d", int(math.Ceil(c.Remaining().Seconds())))
}

// Reset stops any running countdown.
func (c *Countdown) Reset() {
	*c = Countdown{}
}
