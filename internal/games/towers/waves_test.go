package towers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/core"
)

func TestBuildWaveAuthored(t *testing.T) {
	c := config.DefaultTowers()
	q := BuildWave(2, c)

	// 8 goblins 45 apart then 3 wolves 40 apart
	require.Len(t, q, 11)
	assert.Equal(t, Spawn{Enemy: "goblin", At: 1}, q[0])
	assert.Equal(t, Spawn{Enemy: "goblin", At: 1 + 7*45}, q[7])
	assert.Equal(t, Spawn{Enemy: "wolf", At: 1 + 8*45}, q[8])
	assert.Equal(t, "wolf", q[10].Enemy)
}

func TestBuildWaveProceduralFloors(t *testing.T) {
	c := config.TowersContent{
		Enemies:    map[string]config.EnemyDef{"goblin": {}, "troll": {}},
		Waves:      []config.WaveDef{{Groups: []config.SpawnGroup{{Enemy: "goblin", Count: 1, Interval: 1}}}},
		Procedural: config.ProceduralConfig{Growth: 1.5, Base: []config.SpawnGroup{{Enemy: "goblin", Count: 3, Interval: 10}, {Enemy: "troll", Count: 1, Interval: 10}}},
	}

	// Wave 3 is two past the authored list: 3*1.5^2 = 6.75 -> 6, 1*2.25 -> 2
	q := BuildWave(3, c)
	counts := map[string]int{}
	for _, s := range q {
		counts[s.Enemy]++
	}
	assert.Equal(t, 6, counts["goblin"])
	assert.Equal(t, 2, counts["troll"])
}

func TestBuildWaveZeroCountGroupIsEmpty(t *testing.T) {
	c := config.TowersContent{
		Procedural: config.ProceduralConfig{Growth: 0.5, Base: []config.SpawnGroup{{Enemy: "troll", Count: 1, Interval: 10}}},
	}
	// 1 * 0.5^1 floors to zero
	assert.Empty(t, BuildWave(1, c))
}

func TestIsWaveComplete(t *testing.T) {
	tests := []struct {
		name    string
		queue   []Spawn
		enemies bool
		want    bool
	}{
		{"queue pending, no enemies", []Spawn{{Enemy: "goblin", At: 5}}, false, false},
		{"queue empty, enemies alive", nil, true, false},
		{"both empty", nil, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld()
			w.SpawnQueue = tc.queue
			if tc.enemies {
				placeEnemy(w, "goblin", core.V(0, 0), 0)
			}
			assert.Equal(t, tc.want, w.IsWaveComplete())
		})
	}
}

func TestUpdateWavesSpawnsOnSchedule(t *testing.T) {
	w := newTestWorld()
	require.True(t, w.StartWave())
	assert.False(t, w.StartWave(), "second start while active is a no-op")
	assert.Equal(t, 1, w.Wave)

	ctx := newCtx(w)
	require.True(t, UpdateWaves{}.Execute(ctx).OK())
	require.Len(t, w.Enemies, 1, "first spawn is due on the first tick")
	assert.Equal(t, w.Grid.Waypoint(0), w.Enemies[0].Pos)

	for i := 0; i < 59; i++ {
		UpdateWaves{}.Execute(ctx)
	}
	assert.Len(t, w.Enemies, 1)
	UpdateWaves{}.Execute(ctx)
	assert.Len(t, w.Enemies, 2)
	assert.Equal(t, 2, w.EnemiesSpawned)
}

func TestUpdateWavesCompletesAndPaysBonus(t *testing.T) {
	w := newTestWorld()
	w.StartWave()
	w.SpawnQueue = nil
	gold := w.Gold

	require.True(t, UpdateWaves{}.Execute(newCtx(w)).OK())

	assert.False(t, w.WaveActive)
	assert.Equal(t, gold+w.WaveBonus(1), w.Gold)
	assert.Equal(t, 60, w.WaveBonus(1))
}

func TestUpdateWavesUnknownEnemyFails(t *testing.T) {
	w := newTestWorld()
	w.WaveActive = true
	w.SpawnQueue = []Spawn{{Enemy: "dragon", At: 1}}

	res := UpdateWaves{}.Execute(newCtx(w))
	require.False(t, res.OK())
	assert.ErrorIs(t, res.Err(), ErrUnknownEnemy)
}
