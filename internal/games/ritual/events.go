package ritual

import (
	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/core"
	"github.com/vovakirdan/chain-arcade/internal/fx"
)

// MenuInput leaves the title screen.
type MenuInput struct{}

// Name implements chain.Event.
func (MenuInput) Name() string { return "MenuInput" }

// Execute implements chain.Event.
func (MenuInput) Execute(ctx *TickContext) chain.Result {
	if ctx.Input.Has(core.ActionConfirm) {
		ctx.NextScene = SceneSelect
	}
	return chain.Success()
}

// SelectInput moves the cursor over unlocked rituals and starts one.
type SelectInput struct{}

// Name implements chain.Event.
func (SelectInput) Name() string { return "SelectInput" }

// Execute implements chain.Event.
func (SelectInput) Execute(ctx *TickContext) chain.Result {
	in := ctx.Input
	n := len(ctx.Choices)

	if in.Has(core.ActionBack) {
		ctx.NextScene = SceneMenu
		return chain.Success()
	}
	if n == 0 {
		return chain.Success()
	}

	switch {
	case in.Has(core.ActionDown):
		ctx.Cursor = (ctx.Cursor + 1) % n
	case in.Has(core.ActionUp):
		ctx.Cursor = (ctx.Cursor - 1 + n) % n
	}
	if idx, ok := in.Selected(); ok && idx < n {
		ctx.Cursor = idx
	}

	if in.Has(core.ActionConfirm) {
		ctx.Start = true
	}
	return chain.Success()
}

// PollRitualInput turns keys and clicks into a node pick.
type PollRitualInput struct{}

// Name implements chain.Event.
func (PollRitualInput) Name() string { return "PollRitualInput" }

// Execute implements chain.Event.
func (PollRitualInput) Execute(ctx *TickContext) chain.Result {
	in := ctx.Input
	ctx.Pick = -1

	if in.Has(core.ActionBack) {
		ctx.Abort = true
		return chain.Success()
	}

	nodes := ctx.Ritual.Nodes()
	if idx, ok := in.Selected(); ok && idx < len(nodes) {
		ctx.Pick = idx
		return chain.Success()
	}

	if in.Pointer.Valid && in.Pointer.Click {
		p := ctx.Viewport.ToWorld(in.Pointer.X, in.Pointer.Y)
		ctx.Pick = NodeAt(nodes, p, ctx.Content.Circle.NodeSize/2)
	}
	return chain.Success()
}

// AdvanceRitual feeds the pick and the clock into the ritual. A missed
// challenge is this event's failure.
type AdvanceRitual struct{}

// Name implements chain.Event.
func (AdvanceRitual) Name() string { return "AdvanceRitual" }

// Execute implements chain.Event.
func (AdvanceRitual) Execute(ctx *TickContext) chain.Result {
	r := ctx.Ritual
	if ctx.Abort {
		r.Abort(ctx.Now)
		return chain.Success()
	}

	var missErr error
	if ctx.Pick >= 0 {
		out, err := r.Attempt(ctx.Pick, ctx.Now)
		feedback(ctx, out)
		missErr = err
	}

	out, err := r.Advance(ctx.Now)
	feedback(ctx, out)
	if err != nil {
		missErr = err
	}

	if missErr != nil {
		return chain.Failure(missErr)
	}
	return chain.Success()
}

// feedback records the outcome and spawns the matching particles.
func feedback(ctx *TickContext, out Outcome) {
	if out == OutcomeNone {
		return
	}
	ctx.Outcome = out

	r := ctx.Ritual
	circle := ctx.Content.Circle
	center := core.V(circle.CenterX, circle.CenterY)

	switch out {
	case OutcomeHit:
		n := r.Nodes()[r.LastNode()]
		color := core.ColorBrightMagenta
		if el, ok := ctx.Content.Element(n.Element); ok {
			color = el.Color
		}
		emit(ctx, n.Pos, "node_activation", &color)
	case OutcomeMiss:
		emit(ctx, r.Nodes()[r.LastNode()].Pos, "ritual_fail", nil)
	case OutcomeCompleted:
		emit(ctx, center, "ritual_complete", nil)
	case OutcomeFailed:
		emit(ctx, center, "ritual_fail", nil)
	}
}

func emit(ctx *TickContext, pos core.Vec2, preset string, color *core.Color) {
	p, ok := ctx.Content.Particles[preset]
	if !ok {
		return
	}
	if color != nil {
		p.Color = *color
	}
	ctx.Particles = append(ctx.Particles, fx.Emit(ctx.Ritual.rng, pos, p)...)
}

// UpdateParticles advances and compacts the particle pool.
type UpdateParticles struct{}

// Name implements chain.Event.
func (UpdateParticles) Name() string { return "UpdateParticles" }

// Execute implements chain.Event.
func (UpdateParticles) Execute(ctx *TickContext) chain.Result {
	ctx.Particles = fx.Step(ctx.Particles)
	return chain.Success()
}

// ResultsInput returns to ritual selection or the title screen.
type ResultsInput struct{}

// Name implements chain.Event.
func (ResultsInput) Name() string { return "ResultsInput" }

// Execute implements chain.Event.
func (ResultsInput) Execute(ctx *TickContext) chain.Result {
	switch {
	case ctx.Input.Has(core.ActionConfirm):
		ctx.NextScene = SceneSelect
	case ctx.Input.Has(core.ActionBack):
		ctx.NextScene = SceneMenu
	}
	return chain.Success()
}
