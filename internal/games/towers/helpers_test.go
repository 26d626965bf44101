package towers

import (
	"math/rand"

	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/core"
)

func newTestWorld() *World {
	return NewWorld(config.DefaultTowers(), rand.New(rand.NewSource(7)), nil)
}

func newCtx(w *World) *TickContext {
	return &TickContext{
		World:    w,
		Input:    core.NewInputFrame(),
		Viewport: ViewportFor(w.Camera),
		Scene:    ScenePlaying,
	}
}

// placeTower builds a tower directly, bypassing cost and placement rules.
func placeTower(w *World, id string, tile Tile) *Tower {
	def, _ := w.Content.Tower(id)
	t := &Tower{TowerDef: def, Tile: tile, Pos: w.Grid.TileToWorld(tile), Level: 1}
	w.Towers = append(w.Towers, t)
	return t
}

// placeEnemy adds an enemy at an explicit position and path index.
func placeEnemy(w *World, id string, pos core.Vec2, pathIndex int) *Enemy {
	def, _ := w.Content.Enemy(id)
	e := &Enemy{EnemyDef: def, Type: id, Pos: pos, PathIndex: pathIndex, CurrentSpeed: def.Speed, SlowFactor: 1}
	w.Enemies = append(w.Enemies, e)
	return e
}
