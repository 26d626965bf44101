package core

import (
	"io"

	"github.com/charmbracelet/log"
)

// TicksPerSecond is the fixed simulation rate every game assumes when it
// converts per-second rates (fire rate, QTE windows) into ticks.
const TicksPerSecond = 60

var discard = log.New(io.Discard)

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int         // Screen width in characters
	ScreenH  int         // Screen height in characters
	TickRate int         // Host tick rate; simulation always steps 1/60s
	Seed     int64       // RNG seed for deterministic gameplay
	Logger   *log.Logger // Nil means discard
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: TicksPerSecond,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Log returns the configured logger, or a logger that discards everything.
func (c RuntimeConfig) Log() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discard
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	GameOver bool   // Whether the game has ended
	Paused   bool   // Whether the game is paused
	Scene    string // Current scene name, for the status line
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State    GameState
	Failures int // Chain failures recorded during this tick
}
