package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and to map world units onto cells.
type RuntimeConfig struct {
	ScreenW    int     // Screen width in characters
	ScreenH    int     // Screen height in characters
	TickRate   int     // Simulation ticks per second (default 60)
	CellWidth  float64 // World units covered by one character column
	CellHeight float64 // World units covered by one character row
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		CellWidth:  16,
		CellHeight: 32,
	}
}

// WorldSize returns the window size in world units for the configured screen.
func (c RuntimeConfig) WorldSize() (width, height float64) {
	return float64(c.ScreenW) * c.CellWidth, float64(c.ScreenH) * c.CellHeight
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	PlayerScore int    // Points won by the player
	AIScore     int    // Points won by the CPU
	Countdown   string // Whole seconds left before the serve, empty while the ball is live
	Paused      bool   // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State        GameState
	PlayerPoints int // Points the player won during this tick
	AIPoints     int // Points the CPU won during this tick
	Collisions   int // Ball collisions detected during this tick
}
