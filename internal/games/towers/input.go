package towers

import (
	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/core"
)

// ProcessInput reads the polled input once per tick: pause, debug toggle,
// camera pan, tower hot keys, hover, wave start, and tile clicks.
// A rejected build is returned as the event's failure.
type ProcessInput struct{}

// Name implements chain.Event.
func (ProcessInput) Name() string { return "ProcessInput" }

// Execute implements chain.Event.
func (ProcessInput) Execute(ctx *TickContext) chain.Result {
	w := ctx.World
	in := ctx.Input

	if in.Has(core.ActionPause) {
		ctx.RequestScene(ScenePaused)
		return chain.Success()
	}

	if in.Has(core.ActionDebug) {
		w.Debug = !w.Debug
	}

	speed := w.Content.Timing.CameraSpeed
	if in.Has(core.ActionUp) {
		w.Camera.Y -= speed
	}
	if in.Has(core.ActionDown) {
		w.Camera.Y += speed
	}
	if in.Has(core.ActionLeft) {
		w.Camera.X -= speed
	}
	if in.Has(core.ActionRight) {
		w.Camera.X += speed
	}

	if idx, ok := in.Selected(); ok && idx < len(w.Content.Towers) {
		w.SelectedType = w.Content.Towers[idx].ID
		w.Selected = nil
	}

	if in.Has(core.ActionBack) || in.Pointer.RightClick {
		w.SelectedType = ""
		w.Selected = nil
	}

	if in.Has(core.ActionConfirm) && !w.WaveActive {
		w.StartWave()
	}

	if !in.Pointer.Valid {
		w.HoverValid = false
		return chain.Success()
	}

	tile := w.Grid.WorldToTile(ctx.Viewport.ToWorld(in.Pointer.X, in.Pointer.Y))
	w.Hovered = tile
	w.HoverValid = w.Grid.InBounds(tile)

	if in.Pointer.Click {
		return clickTile(w, tile)
	}
	return chain.Success()
}

// clickTile builds the armed tower type on tile, or selects the tower there.
func clickTile(w *World, tile Tile) chain.Result {
	if w.SelectedType == "" {
		if !w.Grid.InBounds(tile) {
			return chain.Success()
		}
		w.Selected = w.TowerAt(tile)
		return chain.Success()
	}

	tower, err := w.BuildTower(w.SelectedType, tile)
	if err != nil {
		w.log.Warn("build rejected", "tower", w.SelectedType, "tile", tile, "gold", w.Gold, "reason", err)
		return chain.Failure(err)
	}
	w.log.Info("tower built", "tower", tower.ID, "tile", tile, "cost", tower.Cost, "gold", w.Gold)
	return chain.Success()
}

// MenuInput starts play from the title screen.
type MenuInput struct{}

// Name implements chain.Event.
func (MenuInput) Name() string { return "MenuInput" }

// Execute implements chain.Event.
func (MenuInput) Execute(ctx *TickContext) chain.Result {
	if ctx.Input.Has(core.ActionConfirm) {
		ctx.RequestScene(ScenePlaying)
	}
	return chain.Success()
}

// PauseInput resumes or restarts from the pause screen.
type PauseInput struct{}

// Name implements chain.Event.
func (PauseInput) Name() string { return "PauseInput" }

// Execute implements chain.Event.
func (PauseInput) Execute(ctx *TickContext) chain.Result {
	switch {
	case ctx.Input.Has(core.ActionPause), ctx.Input.Has(core.ActionConfirm), ctx.Input.Has(core.ActionBack):
		ctx.RequestScene(ScenePlaying)
	case ctx.Input.Has(core.ActionRestart):
		ctx.Restart = true
	}
	return chain.Success()
}

// GameOverInput restarts after the last life is lost.
type GameOverInput struct{}

// Name implements chain.Event.
func (GameOverInput) Name() string { return "GameOverInput" }

// Execute implements chain.Event.
func (GameOverInput) Execute(ctx *TickContext) chain.Result {
	if ctx.Input.Has(core.ActionRestart) || ctx.Input.Has(core.ActionConfirm) {
		ctx.Restart = true
	}
	return chain.Success()
}
