package towers

import (
	"math"

	"github.com/vovakirdan/chain-arcade/internal/config"
)

// Spawn is one scheduled enemy. At is compared against the wave's spawn timer,
// which reads 1 on the first tick of the wave.
type Spawn struct {
	Enemy string
	At    int
}

// BuildWave returns the spawn schedule for wave n (1-based). Authored waves
// are used as written; later waves scale the procedural base groups by
// growth^(n - authored), floored. A group that floors to zero spawns nothing.
func BuildWave(n int, c config.TowersContent) []Spawn {
	var groups []config.SpawnGroup
	if n >= 1 && n <= len(c.Waves) {
		groups = c.Waves[n-1].Groups
	} else {
		factor := math.Pow(c.Procedural.Growth, float64(n-len(c.Waves)))
		for _, g := range c.Procedural.Base {
			scaled := g
			scaled.Count = int(math.Floor(float64(g.Count) * factor))
			groups = append(groups, scaled)
		}
	}

	var queue []Spawn
	at := 1
	for _, g := range groups {
		interval := max(g.Interval, 1)
		for i := 0; i < g.Count; i++ {
			queue = append(queue, Spawn{Enemy: g.Enemy, At: at})
			at += interval
		}
	}
	return queue
}
