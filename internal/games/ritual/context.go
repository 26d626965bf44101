package ritual

import (
	"errors"

	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/core"
	"github.com/vovakirdan/chain-arcade/internal/fx"
)

// Scene is the top-level screen; each tick runs the chain for one scene.
type Scene int

const (
	SceneMenu Scene = iota
	SceneSelect
	SceneGameplay
	SceneResults
)

func (s Scene) String() string {
	switch s {
	case SceneMenu:
		return "menu"
	case SceneSelect:
		return "ritual_select"
	case SceneGameplay:
		return "gameplay"
	case SceneResults:
		return "results"
	}
	return "unknown"
}

// TickContext is the state threaded through one chain run.
type TickContext struct {
	Content   *config.RitualsContent
	Ritual    *ActiveRitual // Gameplay only
	Input     core.InputFrame
	Viewport  core.Viewport
	Scene     Scene
	Now       int
	Particles []fx.Particle

	Choices []config.RitualDef // Select only
	Cursor  int

	// Outputs
	NextScene Scene
	Pick      int // Node chosen this tick; -1 = none
	Start     bool
	Abort     bool
	Outcome   Outcome
}

var (
	errNoContent = errors.New("ritual: tick context has no content")
	errNoRitual  = errors.New("ritual: gameplay tick without an active ritual")
)

// validate checks the fields the scene's events dereference.
func (c *TickContext) validate() error {
	if c == nil || c.Content == nil {
		return errNoContent
	}
	if c.Scene == SceneGameplay && c.Ritual == nil {
		return errNoRitual
	}
	return nil
}
