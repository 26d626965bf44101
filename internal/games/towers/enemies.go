package towers

import (
	"github.com/vovakirdan/chain-arcade/internal/chain"
)

// UpdateWaves completes a finished wave or releases due spawns.
type UpdateWaves struct{}

// Name implements chain.Event.
func (UpdateWaves) Name() string { return "UpdateWaves" }

// Execute implements chain.Event.
func (UpdateWaves) Execute(ctx *TickContext) chain.Result {
	w := ctx.World
	if !w.WaveActive {
		return chain.Success()
	}

	if w.IsWaveComplete() {
		w.CompleteWave()
		return chain.Success()
	}

	if len(w.SpawnQueue) == 0 {
		return chain.Success()
	}

	w.SpawnTimer++
	for len(w.SpawnQueue) > 0 && w.SpawnQueue[0].At <= w.SpawnTimer {
		next := w.SpawnQueue[0]
		w.SpawnQueue = w.SpawnQueue[1:]
		if _, err := w.SpawnEnemy(next.Enemy); err != nil {
			return chain.Failure(err)
		}
	}
	return chain.Success()
}

// UpdateEnemies moves every enemy along the path, then removes escapees and
// the dead. An enemy that escapes on the same tick it dies only costs a life.
type UpdateEnemies struct{}

// Name implements chain.Event.
func (UpdateEnemies) Name() string { return "UpdateEnemies" }

// Execute implements chain.Event.
func (UpdateEnemies) Execute(ctx *TickContext) chain.Result {
	w := ctx.World
	pathLen := len(w.Grid.Path())
	wasOver := w.GameOver

	escaped := make(map[*Enemy]bool)
	for _, e := range w.Enemies {
		if e.SlowedUntil > 0 && w.Tick < e.SlowedUntil {
			e.CurrentSpeed = e.Speed * e.SlowFactor
		} else {
			e.CurrentSpeed = e.Speed
			e.SlowedUntil = 0
		}

		moveAlongPath(w, e)

		if e.PathIndex >= pathLen {
			escaped[e] = true
			w.LoseLife()
			w.log.Info("enemy escaped", "enemy", e.Name, "lives", w.Lives)
		}
	}

	alive := w.Enemies[:0]
	for _, e := range w.Enemies {
		switch {
		case escaped[e]:
		case e.Health <= 0:
			w.AddGold(e.GoldReward)
			w.AddScore(e.ScoreValue)
			w.SpawnParticles(e.Pos, "death")
			w.log.Debug("enemy defeated", "enemy", e.Name, "gold", e.GoldReward)
		default:
			alive = append(alive, e)
		}
	}
	clear(w.Enemies[len(alive):])
	w.Enemies = alive

	if w.GameOver && !wasOver {
		w.log.Info("game over", "wave", w.Wave, "score", w.Score)
	}
	return chain.Success()
}

// moveAlongPath steps e toward its current waypoint, advancing the index
// once it is within the waypoint epsilon.
func moveAlongPath(w *World, e *Enemy) {
	if e.PathIndex >= len(w.Grid.Path()) {
		return
	}

	target := w.Grid.Waypoint(e.PathIndex)
	delta := target.Sub(e.Pos)
	dist := delta.Len()

	if dist < w.Content.Timing.WaypointEpsilon {
		e.PathIndex++
		return
	}

	step := min(e.CurrentSpeed, dist)
	e.Pos = e.Pos.Add(delta.Scale(step / dist))
}
