package towers

import (
	"errors"

	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/core"
)

// Scene is the top-level game mode; each tick runs the chain for one scene.
type Scene int

const (
	SceneMenu Scene = iota
	ScenePlaying
	ScenePaused
	SceneGameOver
)

// String returns the scene name shown on the status line.
func (s Scene) String() string {
	switch s {
	case SceneMenu:
		return "menu"
	case ScenePlaying:
		return "playing"
	case ScenePaused:
		return "paused"
	case SceneGameOver:
		return "game_over"
	}
	return "unknown"
}

// HUD is the per-tick snapshot the overlay draws from.
type HUD struct {
	Gold, Lives, Score, Wave int
	WaveActive               bool
	Enemies                  int
	SelectedType             string
	Selected                 *Tower
	Hovered                  Tile
	HoverValid               bool
}

// TickContext is the state threaded through one chain run.
type TickContext struct {
	World    *World
	Input    core.InputFrame
	Viewport core.Viewport
	Scene    Scene
	Renderer Renderer
	Metrics  *chain.Metrics // Read by the debug overlay only

	// Outputs
	NextScene Scene
	Restart   bool
	HUD       HUD
	Frame     Frame
}

var errNoWorld = errors.New("towers: tick context has no world")

// validate checks the fields every event dereferences.
func (c *TickContext) validate() error {
	if c == nil || c.World == nil || c.World.Grid == nil {
		return errNoWorld
	}
	return nil
}

// RequestScene asks the driver to switch scenes after this tick.
func (c *TickContext) RequestScene(s Scene) {
	c.NextScene = s
}
