package pong

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Snapshot is a plain copy of the match state, suitable for printing,
// comparing runs and hashing.
type Snapshot struct {
	Tick      uint64  `yaml:"tick"`
	BallX     float64 `yaml:"ball_x"`
	BallY     float64 `yaml:"ball_y"`
	BallVX    float64 `yaml:"ball_vx"`
	BallVY    float64 `yaml:"ball_vy"`
	PlayerY   float64 `yaml:"player_y"`
	AIY       float64 `yaml:"ai_y"`
	Score     Score   `yaml:"score"`
	Countdown string  `yaml:"countdown,omitempty"`
}

// Snapshot captures the current state. Missing entities leave zero fields.
func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      s.tick,
		Score:     s.score,
		Countdown: s.countdown.Display(),
	}
	if e, ok := s.world.Single(RoleBall); ok {
		if p, ok := s.world.Positions.Get(e); ok {
			snap.BallX, snap.BallY = p.X, p.Y
		}
		if v, ok := s.world.Velocities.Get(e); ok {
			snap.BallVX, snap.BallVY = v.X, v.Y
		}
	}
	if e, ok := s.world.Single(RolePlayerPaddle); ok {
		if p, ok := s.world.Positions.Get(e); ok {
			snap.PlayerY = p.Y
		}
	}
	if e, ok := s.world.Single(RoleAIPaddle); ok {
		if p, ok := s.world.Positions.Get(e); ok {
			snap.AIY = p.Y
		}
	}
	return snap
}

// Hash returns an FNV-1a hash over every field, for determinism checks.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:]) //nolint:errcheck // hash.Hash never returns an error
	}

	write(s.Tick)
	for _, f := range []float64{s.BallX, s.BallY, s.BallVX, s.BallVY, s.PlayerY, s.AIY} {
		write(math.Float64bits(f))
	}
	write(uint64(s.Score.Player)) //nolint:gosec // scores are non-negative
	write(uint64(s.Score.AI))     //nolint:gosec // scores are non-negative
	h.Write([]byte(s.Countdown))  //nolint:errcheck // hash.Hash never returns an error
	return h.Sum64()
}
