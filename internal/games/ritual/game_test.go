package ritual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/core"
	"github.com/vovakirdan/chain-arcade/internal/registry"
)

func newTestGame(t *testing.T, c config.RitualsContent) *Game {
	t.Helper()
	g := NewWithContent(c)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 9})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func render(g *Game) string {
	scr := core.NewScreen(80, 24)
	g.Render(scr)
	return scr.String()
}

// enterGameplay walks from the title screen into the ritual at index i of
// the select list.
func enterGameplay(t *testing.T, g *Game, i int) {
	t.Helper()
	g.Step(press(core.ActionConfirm))
	require.Equal(t, SceneSelect, g.Scene())
	g.Step(press(core.SelectAction(i), core.ActionConfirm))
	require.Equal(t, SceneGameplay, g.Scene())
}

func TestMenuToSelect(t *testing.T) {
	g := newTestGame(t, content())
	assert.Contains(t, render(g), "RITUAL KEEPER")

	g.Step(press())
	assert.Equal(t, SceneMenu, g.Scene())

	g.Step(press(core.ActionConfirm))
	assert.Equal(t, SceneSelect, g.Scene())
	assert.Equal(t, "ritual_select", g.State().Scene)

	out := render(g)
	assert.Contains(t, out, "Simple Flame")
	assert.Contains(t, out, "Cleansing Waters")
	assert.NotContains(t, out, "Grand Summoning")
	assert.Contains(t, out, "10 more rituals unlock")
}

func TestSelectCursorWraps(t *testing.T) {
	g := newTestGame(t, content())
	g.Step(press(core.ActionConfirm))

	g.Step(press(core.ActionUp))
	assert.Equal(t, 1, g.cursor)
	g.Step(press(core.ActionDown))
	assert.Equal(t, 0, g.cursor)

	g.Step(press(core.ActionBack))
	assert.Equal(t, SceneMenu, g.Scene())
}

func TestCompleteRitualByKeys(t *testing.T) {
	g := newTestGame(t, content())
	enterGameplay(t, g, 0)

	g.Step(press())
	r := g.Ritual()
	require.NotNil(t, r)
	p, waiting := r.Pending()
	require.True(t, waiting)
	assert.Contains(t, render(g), "SIMPLE FLAME")
	assert.Contains(t, render(g), "Invoke △ Fire")

	g.Step(press(core.SelectAction(p.Node)))
	assert.Equal(t, 1, r.Hits())
	assert.Empty(t, g.LastFailures())

	for i := 0; i < 100 && g.Scene() == SceneGameplay; i++ {
		g.Step(press())
	}
	require.Equal(t, SceneResults, g.Scene())

	res := g.LastResult()
	assert.True(t, res.Success)
	assert.True(t, res.Perfect)
	// (100 + 100 + floor(10 * 119/120) + 50) * 1.1
	assert.Equal(t, 284, res.Score)
	assert.Equal(t, 284, g.Progress().Total)
	assert.Equal(t, 284, g.State().Score)
	assert.Contains(t, render(g), "RITUAL COMPLETE")
	assert.Contains(t, render(g), "Score 284")

	sum := g.Summary()
	assert.Equal(t, "completed", sum.Outcome)
	assert.Equal(t, 284, sum.Score)
	assert.Positive(t, sum.Metrics.Total)

	g.Step(press(core.ActionConfirm))
	assert.Equal(t, SceneSelect, g.Scene())
}

func TestClickPicksNode(t *testing.T) {
	g := newTestGame(t, content())
	enterGameplay(t, g, 0)
	g.Step(press())

	r := g.Ritual()
	p, _ := r.Pending()
	x, y := ViewportFor(g.content.Circle, 80, 24).ToCell(r.Nodes()[p.Node].Pos)

	in := press()
	in.MovePointer(x, y)
	in.Pointer.Click = true
	g.Step(in)

	assert.Equal(t, 1, r.Hits())
}

func TestWrongPickIsRecordedFailure(t *testing.T) {
	g := newTestGame(t, content())
	enterGameplay(t, g, 1)
	g.Step(press())

	r := g.Ritual()
	res := g.Step(press(core.SelectAction(wrongNode(r))))

	assert.Equal(t, 1, res.Failures)
	require.Len(t, g.LastFailures(), 1)
	assert.Equal(t, "AdvanceRitual", g.LastFailures()[0].Event)
	assert.ErrorIs(t, g.LastFailures()[0].Err, ErrWrongNode)
	assert.Equal(t, SceneGameplay, g.Scene(), "lenient ritual survives a miss")
	assert.NotEmpty(t, g.particles)
}

func TestStrictFailureShowsResults(t *testing.T) {
	c := content()
	c.Debug.UnlockAll = true
	g := newTestGame(t, c)

	idx := -1
	for i, def := range g.Available() {
		if def.Name == "Moonlit Blessing" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)

	enterGameplay(t, g, 0)
	g.Step(press(core.ActionBack))
	assert.Equal(t, SceneSelect, g.Scene())
	assert.Equal(t, "aborted", g.Summary().Outcome)

	g.cursor = idx
	g.Step(press(core.ActionConfirm))
	require.Equal(t, SceneGameplay, g.Scene())
	g.Step(press())
	g.Step(press(core.SelectAction(wrongNode(g.Ritual()))))

	require.Equal(t, SceneResults, g.Scene())
	assert.False(t, g.LastResult().Success)
	assert.Zero(t, g.Progress().Total)
	assert.Equal(t, "failed", g.Summary().Outcome)
	assert.Contains(t, render(g), "RITUAL FAILED")
}

func TestAbortKeepsCompletedOutcome(t *testing.T) {
	g := newTestGame(t, content())
	enterGameplay(t, g, 0)

	for i := 0; i < 2000 && g.Scene() == SceneGameplay; i++ {
		in := press()
		if p, ok := g.Ritual().Pending(); ok {
			in = press(core.SelectAction(p.Node))
		}
		g.Step(in)
	}
	require.Equal(t, SceneResults, g.Scene())
	require.Positive(t, g.Progress().Total)

	g.Step(press(core.ActionConfirm))
	g.Step(press(core.SelectAction(0), core.ActionConfirm))
	require.Equal(t, SceneGameplay, g.Scene())
	g.Step(press(core.ActionBack))
	require.Equal(t, SceneSelect, g.Scene())

	sum := g.Summary()
	assert.Equal(t, "completed", sum.Outcome, "a scored session is not reported as aborted")
	assert.Equal(t, g.Progress().Total, sum.Score)
}

func TestSetupFailureGoesToResults(t *testing.T) {
	c := content()
	c.Rituals = []config.RitualDef{{
		Name:           "Broken",
		Sequence:       []string{"fire", "water"},
		Layout:         []string{"fire"},
		FaultTolerance: chain.ModeStrict,
		Difficulty:     1,
		UnlockLevel:    1,
	}}
	g := newTestGame(t, c)

	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionConfirm))

	require.Equal(t, SceneResults, g.Scene())
	assert.False(t, g.LastResult().Success)
	assert.Contains(t, g.LastResult().Reason, "no node matches")
}

func TestProgressLevels(t *testing.T) {
	p := Progress{Level: 1}
	assert.False(t, p.Record("a", 600, 1000))
	assert.True(t, p.Record("b", 600, 1000))
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 1200, p.Total)
	assert.Equal(t, []string{"a", "b"}, p.Completed)
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create("ritual", registry.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Ritual Keeper", g.Title())
	_, ok := g.(registry.Reporter)
	assert.True(t, ok)
	_, ok = g.(registry.Resizer)
	assert.True(t, ok)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Shadow", Title("shadow"))
	assert.Equal(t, "✦ Light", ElementLabel(content(), "light"))
	assert.Equal(t, "Void", ElementLabel(content(), "void"))
}
