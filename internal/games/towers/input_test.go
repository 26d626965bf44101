package towers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/core"
)

// clickOn aims the pointer at the screen cell covering tile's centre.
func clickOn(ctx *TickContext, tile Tile) {
	x, y := ctx.Viewport.ToCell(ctx.World.Grid.TileCenter(tile))
	ctx.Input.MovePointer(x, y)
	ctx.Input.Pointer.Click = true
}

func TestBuildTowerValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		tile    Tile
		gold    int
		prepare func(w *World)
		want    error
	}{
		{"unknown type wins over bounds", "ballista", Tile{99, 99}, 0, nil, ErrUnknownTower},
		{"out of bounds wins over gold", "archer", Tile{16, 0}, 0, nil, ErrOutOfBounds},
		{"on path", "archer", Tile{3, 2}, 1000, nil, ErrNotBuildable},
		{"next to path", "archer", Tile{3, 3}, 1000, nil, ErrNotBuildable},
		{"occupied wins over gold", "sniper", Tile{3, 5}, 0, func(w *World) { placeTower(w, "archer", Tile{3, 5}) }, ErrOccupied},
		{"too poor", "sniper", Tile{3, 5}, 149, nil, ErrInsufficientGold},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld()
			if tc.prepare != nil {
				tc.prepare(w)
			}
			w.Gold = tc.gold
			towers := len(w.Towers)

			_, err := w.BuildTower(tc.id, tc.tile)

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.gold, w.Gold, "rejected builds cost nothing")
			assert.Len(t, w.Towers, towers)
		})
	}
}

func TestBuildTowerSpendsGold(t *testing.T) {
	w := newTestWorld()
	tw, err := w.BuildTower("cannon", Tile{3, 5})
	require.NoError(t, err)

	assert.Equal(t, 100, w.Gold)
	assert.Equal(t, w.Grid.TileToWorld(Tile{3, 5}), tw.Pos)
	assert.Same(t, tw, w.TowerAt(Tile{3, 5}))
}

func TestClickBuildsArmedTower(t *testing.T) {
	w := newTestWorld()
	ctx := newCtx(w)
	ctx.Input.Set(core.ActionSelect1)
	clickOn(ctx, Tile{3, 5})

	res := ProcessInput{}.Execute(ctx)

	require.True(t, res.OK(), res.Message())
	assert.Equal(t, Tile{3, 5}, w.Hovered)
	assert.True(t, w.HoverValid)
	require.NotNil(t, w.TowerAt(Tile{3, 5}))
	assert.Equal(t, "archer", w.TowerAt(Tile{3, 5}).ID)
	assert.Equal(t, 150, w.Gold)
}

func TestClickWithoutArmedTypeSelectsTower(t *testing.T) {
	w := newTestWorld()
	tw := placeTower(w, "mage", Tile{9, 5})
	ctx := newCtx(w)
	clickOn(ctx, Tile{9, 5})

	ProcessInput{}.Execute(ctx)
	assert.Same(t, tw, w.Selected)

	ctx.Input.Clear()
	ctx.Input.Pointer.RightClick = true
	ProcessInput{}.Execute(ctx)
	assert.Nil(t, w.Selected)
}

func TestRejectedBuildKeepsTickRunning(t *testing.T) {
	w := newTestWorld()
	w.SelectedType = "archer"
	ctx := newCtx(w)
	clickOn(ctx, Tile{3, 2})

	c := chain.Lenient(ctx)
	for _, ev := range PlayingEvents() {
		c.AddEvent(ev)
	}
	res := c.Execute()

	require.True(t, res.Partial())
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "ProcessInput", res.Failures[0].Event)
	assert.True(t, errors.Is(res.Failures[0].Err, ErrNotBuildable))
	assert.Equal(t, 200, w.Gold)
	assert.Equal(t, 200, ctx.HUD.Gold, "later events still ran")
	assert.NotNil(t, ctx.Frame.Grid)
}

func TestInputControls(t *testing.T) {
	w := newTestWorld()
	ctx := newCtx(w)

	ctx.Input.Set(core.ActionRight)
	ctx.Input.Set(core.ActionDown)
	ctx.Input.Set(core.ActionDebug)
	ProcessInput{}.Execute(ctx)
	assert.Equal(t, core.V(16, 16), w.Camera)
	assert.True(t, w.Debug)

	ctx.Input.Clear()
	ctx.Input.Set(core.ActionSelect4)
	ProcessInput{}.Execute(ctx)
	assert.Equal(t, "sniper", w.SelectedType)

	ctx.Input.Clear()
	ctx.Input.Set(core.ActionBack)
	ProcessInput{}.Execute(ctx)
	assert.Empty(t, w.SelectedType)

	ctx.Input.Clear()
	ctx.Input.Set(core.ActionSelect8)
	ProcessInput{}.Execute(ctx)
	assert.Empty(t, w.SelectedType, "no eighth tower type")
}

func TestConfirmStartsOneWaveAtATime(t *testing.T) {
	w := newTestWorld()
	ctx := newCtx(w)
	ctx.Input.Set(core.ActionConfirm)

	ProcessInput{}.Execute(ctx)
	assert.Equal(t, 1, w.Wave)
	assert.True(t, w.WaveActive)

	ProcessInput{}.Execute(ctx)
	assert.Equal(t, 1, w.Wave)
}

func TestPauseShortCircuitsInput(t *testing.T) {
	w := newTestWorld()
	ctx := newCtx(w)
	ctx.NextScene = ScenePlaying
	ctx.Input.Set(core.ActionPause)
	ctx.Input.Set(core.ActionConfirm)

	ProcessInput{}.Execute(ctx)

	assert.Equal(t, ScenePaused, ctx.NextScene)
	assert.False(t, w.WaveActive)
}
