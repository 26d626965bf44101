package towers

import (
	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/fx"
)

// UpdateParticles advances and compacts the particle pool.
type UpdateParticles struct{}

// Name implements chain.Event.
func (UpdateParticles) Name() string { return "UpdateParticles" }

// Execute implements chain.Event.
func (UpdateParticles) Execute(ctx *TickContext) chain.Result {
	ctx.World.Particles = fx.Step(ctx.World.Particles)
	return chain.Success()
}

// UpdateHUD snapshots the numbers the overlay shows.
type UpdateHUD struct{}

// Name implements chain.Event.
func (UpdateHUD) Name() string { return "UpdateHUD" }

// Execute implements chain.Event.
func (UpdateHUD) Execute(ctx *TickContext) chain.Result {
	w := ctx.World
	ctx.HUD = HUD{
		Gold:         w.Gold,
		Lives:        w.Lives,
		Score:        w.Score,
		Wave:         w.Wave,
		WaveActive:   w.WaveActive,
		Enemies:      len(w.Enemies),
		SelectedType: w.SelectedType,
		Selected:     w.Selected,
		Hovered:      w.Hovered,
		HoverValid:   w.HoverValid,
	}
	return chain.Success()
}
