package towers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/core"
	"github.com/vovakirdan/chain-arcade/internal/registry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewWithContent(config.DefaultTowers())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 42})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameStartsAtMenu(t *testing.T) {
	g := newTestGame(t)
	assert.Equal(t, SceneMenu, g.Scene())
	assert.Equal(t, "menu", g.State().Scene)

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	assert.Contains(t, scr.String(), "ISOMETRIC DEFENSE")

	g.Step(press())
	assert.Equal(t, SceneMenu, g.Scene())

	g.Step(press(core.ActionConfirm))
	assert.Equal(t, ScenePlaying, g.Scene())
	assert.Zero(t, g.World().Tick, "menu ticks do not advance the world")
}

func TestPlayingFrameRenders(t *testing.T) {
	g := newTestGame(t)
	g.Step(press(core.ActionConfirm))
	res := g.Step(press())
	assert.Zero(t, res.Failures)
	assert.Equal(t, 1, g.World().Tick)

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	assert.Contains(t, scr.Row(0), "Gold 200")
	assert.Contains(t, scr.Row(0), "Lives 20")
	assert.Contains(t, scr.Row(23), "[1]Archer Tower 50")
}

func TestPauseAndResume(t *testing.T) {
	g := newTestGame(t)
	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionPause))
	require.Equal(t, ScenePaused, g.Scene())
	assert.True(t, g.State().Paused)

	tick := g.World().Tick
	g.Step(press())
	assert.Equal(t, tick, g.World().Tick, "paused world is frozen")

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	assert.Contains(t, scr.String(), "PAUSED")

	g.Step(press(core.ActionPause))
	assert.Equal(t, ScenePlaying, g.Scene())
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t)
	g.Step(press(core.ActionConfirm))

	w := g.World()
	w.Lives = 1
	last := len(w.Grid.Path()) - 1
	placeEnemy(w, "goblin", w.Grid.Waypoint(last), last)

	g.Step(press())
	require.Equal(t, SceneGameOver, g.Scene())
	assert.True(t, g.State().GameOver)

	sum := g.Summary()
	assert.Equal(t, "game_over", sum.Outcome)
	assert.NotEmpty(t, sum.RunID)
	assert.Equal(t, 2, sum.Ticks)
	assert.Positive(t, sum.Metrics.Total)

	scr := core.NewScreen(80, 24)
	g.Step(press())
	g.Render(scr)
	assert.Contains(t, scr.String(), "GAME OVER")

	g.Step(press(core.ActionRestart))
	assert.Equal(t, ScenePlaying, g.Scene())
	assert.NotEqual(t, sum.RunID, g.Summary().RunID)
	assert.Equal(t, 20, g.World().Lives)
	assert.Equal(t, "aborted", g.Summary().Outcome)
}

func TestRestartFromPauseStartsNewRun(t *testing.T) {
	g := newTestGame(t)
	g.Step(press(core.ActionConfirm))
	g.World().AddScore(30)
	g.Step(press(core.ActionPause))
	require.Equal(t, ScenePaused, g.Scene())

	before := g.Summary()
	assert.Equal(t, 30, before.Score)

	g.Step(press(core.ActionRestart))
	assert.Equal(t, ScenePlaying, g.Scene())

	after := g.Summary()
	assert.NotEqual(t, before.RunID, after.RunID, "a host detects the replaced run by its id")
	assert.Zero(t, after.Score)
}

func TestRejectedBuildCountsAsFailure(t *testing.T) {
	g := newTestGame(t)
	g.Step(press(core.ActionConfirm))

	in := press(core.ActionSelect1)
	x, y := ViewportFor(g.World().Camera).ToCell(g.World().Grid.TileCenter(Tile{3, 2}))
	in.MovePointer(x, y)
	in.Pointer.Click = true

	res := g.Step(in)
	assert.Equal(t, 1, res.Failures)
	require.Len(t, g.LastFailures(), 1)
	assert.Equal(t, "ProcessInput", g.LastFailures()[0].Event)
	assert.Equal(t, 1, g.Summary().Failures)
	assert.Equal(t, ScenePlaying, g.Scene(), "lenient chain keeps playing")
}

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists("towers"))
	g, err := registry.Create("towers", registry.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Isometric Defense", g.Title())
	_, ok := g.(registry.Reporter)
	assert.True(t, ok)
	_, ok = g.(registry.Resizer)
	assert.True(t, ok)
}
