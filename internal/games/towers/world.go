package towers

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/core"
	"github.com/vovakirdan/chain-arcade/internal/fx"
)

// Build rejection reasons, checked in this order.
var (
	ErrUnknownTower     = errors.New("towers: unknown tower type")
	ErrOutOfBounds      = errors.New("towers: tile out of bounds")
	ErrNotBuildable     = errors.New("towers: tile not buildable")
	ErrOccupied         = errors.New("towers: tile occupied")
	ErrInsufficientGold = errors.New("towers: not enough gold")
)

// ErrUnknownEnemy is returned when a spawn names an enemy missing from content.
var ErrUnknownEnemy = errors.New("towers: unknown enemy type")

// Tower is a built tower. Stats are copied from its definition at build time.
type Tower struct {
	config.TowerDef
	Tile     Tile
	Pos      core.Vec2
	Target   *Enemy
	Cooldown int
	Level    int
}

// Enemy is a live enemy walking the path.
type Enemy struct {
	config.EnemyDef
	Type         string
	Pos          core.Vec2
	PathIndex    int
	CurrentSpeed float64
	SlowFactor   float64
	SlowedUntil  int // Tick the slow expires; 0 = not slowed
}

// Projectile flies from a tower toward its target.
type Projectile struct {
	Pos          core.Vec2
	TargetPos    core.Vec2
	Target       *Enemy
	Speed        float64
	Damage       int
	Kind         string
	SplashRadius float64 // Tiles
	SlowEffect   float64
	SlowDuration int
	Source       *Tower
	Hit          bool
}

// World is the whole simulation state for one game of tower defense.
// Entity collections own their members; identity is pointer membership.
type World struct {
	Content config.TowersContent
	Grid    *Grid

	Towers      []*Tower
	Enemies     []*Enemy
	Projectiles []*Projectile
	Particles   []fx.Particle

	Gold  int
	Lives int
	Score int
	Wave  int // Last started wave; 0 before the first

	WaveActive     bool
	SpawnQueue     []Spawn
	SpawnTimer     int
	EnemiesSpawned int

	Tick     int
	GameOver bool

	SelectedType string // Tower type armed for building; "" = none
	Selected     *Tower
	Hovered      Tile
	HoverValid   bool
	Camera       core.Vec2
	Debug        bool

	rng *rand.Rand
	log *log.Logger
}

// NewWorld creates a fresh world from content.
func NewWorld(content config.TowersContent, rng *rand.Rand, logger *log.Logger) *World {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &World{
		Content: content,
		Grid:    NewGrid(content.Map),
		Gold:    content.Economy.StartingGold,
		Lives:   content.Economy.StartingLives,
		rng:     rng,
		log:     logger,
	}
}

// TowerAt returns the tower standing on t, if any.
func (w *World) TowerAt(t Tile) *Tower {
	for _, tw := range w.Towers {
		if tw.Tile == t {
			return tw
		}
	}
	return nil
}

// HasEnemy reports whether e is still in the live collection.
func (w *World) HasEnemy(e *Enemy) bool {
	if e == nil {
		return false
	}
	for _, other := range w.Enemies {
		if other == e {
			return true
		}
	}
	return false
}

// CanAfford reports whether the player has at least cost gold.
func (w *World) CanAfford(cost int) bool {
	return w.Gold >= cost
}

// SpendGold deducts cost.
func (w *World) SpendGold(cost int) {
	w.Gold -= cost
}

// AddGold credits amount.
func (w *World) AddGold(amount int) {
	w.Gold += amount
}

// AddScore credits points.
func (w *World) AddScore(points int) {
	w.Score += points
}

// LoseLife removes one life and flags game over at zero.
func (w *World) LoseLife() {
	w.Lives--
	if w.Lives <= 0 {
		w.Lives = 0
		w.GameOver = true
	}
}

// BuildTower validates and places a tower of type id on t.
// A rejected build leaves the world untouched.
func (w *World) BuildTower(id string, t Tile) (*Tower, error) {
	def, ok := w.Content.Tower(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTower, id)
	}
	if !w.Grid.InBounds(t) {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, t.X, t.Y)
	}
	if !w.Grid.Buildable(t) {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrNotBuildable, t.X, t.Y)
	}
	if w.TowerAt(t) != nil {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrOccupied, t.X, t.Y)
	}
	if !w.CanAfford(def.Cost) {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientGold, def.Cost, w.Gold)
	}

	w.SpendGold(def.Cost)
	tower := &Tower{
		TowerDef: def,
		Tile:     t,
		Pos:      w.Grid.TileToWorld(t),
		Level:    1,
	}
	w.Towers = append(w.Towers, tower)
	return tower, nil
}

// SpawnEnemy places a new enemy of type id on the first waypoint.
func (w *World) SpawnEnemy(id string) (*Enemy, error) {
	def, ok := w.Content.Enemy(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnemy, id)
	}
	e := &Enemy{
		EnemyDef:     def,
		Type:         id,
		Pos:          w.Grid.Waypoint(0),
		CurrentSpeed: def.Speed,
		SlowFactor:   1,
	}
	w.Enemies = append(w.Enemies, e)
	w.EnemiesSpawned++
	return e, nil
}

// StartWave queues the next wave. It is a no-op while a wave is running.
func (w *World) StartWave() bool {
	if w.WaveActive {
		return false
	}
	w.Wave++
	w.SpawnQueue = BuildWave(w.Wave, w.Content)
	w.SpawnTimer = 0
	w.WaveActive = true
	w.log.Info("wave started", "wave", w.Wave, "enemies", len(w.SpawnQueue))
	return true
}

// IsWaveComplete reports whether nothing is left to spawn and nothing is alive.
func (w *World) IsWaveComplete() bool {
	return len(w.SpawnQueue) == 0 && len(w.Enemies) == 0
}

// WaveBonus is the gold awarded for finishing wave n.
func (w *World) WaveBonus(n int) int {
	return w.Content.Economy.WaveBonus + n*w.Content.Economy.WaveBonusStep
}

// CompleteWave pays the wave bonus and ends the active wave.
func (w *World) CompleteWave() {
	bonus := w.WaveBonus(w.Wave)
	w.AddGold(bonus)
	w.WaveActive = false
	w.log.Info("wave complete", "wave", w.Wave, "bonus", bonus, "gold", w.Gold)
}

// SpawnParticles emits the named content preset at pos. Unknown presets are
// ignored.
func (w *World) SpawnParticles(pos core.Vec2, preset string) {
	p, ok := w.Content.Particles[preset]
	if !ok {
		return
	}
	w.Particles = append(w.Particles, fx.Emit(w.rng, pos, p)...)
}
