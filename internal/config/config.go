// Package config provides YAML-based content tables, difficulty presets, and
// environment defaults for the arcade platform.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/core"
	"github.com/vovakirdan/chain-arcade/internal/fx"
)

// ErrInvalidContent is wrapped by every Validate failure.
var ErrInvalidContent = errors.New("config: invalid content")

// TowersContent contains all static tables for the tower defense game.
type TowersContent struct {
	Map        MapConfig            `yaml:"map"`
	Economy    EconomyConfig        `yaml:"economy"`
	Towers     []TowerDef           `yaml:"towers"` // Order is hot-key order
	Enemies    map[string]EnemyDef  `yaml:"enemies"`
	Waves      []WaveDef            `yaml:"waves"`
	Procedural ProceduralConfig     `yaml:"procedural"`
	Timing     TimingConfig         `yaml:"timing"`
	Particles  map[string]fx.Preset `yaml:"particles"`
}

// MapConfig defines the isometric grid and the enemy route.
type MapConfig struct {
	Width      int      `yaml:"width"`       // Tiles
	Height     int      `yaml:"height"`      // Tiles
	TileWidth  float64  `yaml:"tile_width"`  // World pixels
	TileHeight float64  `yaml:"tile_height"` // World pixels
	Path       [][2]int `yaml:"path"`        // Corner tiles; consecutive corners share a row or column
}

// EconomyConfig defines starting resources and wave rewards.
type EconomyConfig struct {
	StartingGold  int `yaml:"starting_gold"`
	StartingLives int `yaml:"starting_lives"`
	WaveBonus     int `yaml:"wave_bonus"`      // Flat gold on wave completion
	WaveBonusStep int `yaml:"wave_bonus_step"` // Extra gold per wave number
}

// TowerDef is one buildable tower type.
type TowerDef struct {
	ID              string     `yaml:"id"`
	Name            string     `yaml:"name"`
	Cost            int        `yaml:"cost"`
	Damage          int        `yaml:"damage"`
	Range           float64    `yaml:"range"`     // Tiles
	FireRate        float64    `yaml:"fire_rate"` // Shots per second
	ProjectileSpeed float64    `yaml:"projectile_speed"`
	Projectile      string     `yaml:"projectile"`
	SplashRadius    float64    `yaml:"splash_radius"` // Tiles, 0 = single target
	SlowEffect      float64    `yaml:"slow_effect"`   // Speed factor, 0 = none
	SlowDuration    int        `yaml:"slow_duration"` // Ticks
	CanHitFlying    bool       `yaml:"can_hit_flying"`
	Glyph           string     `yaml:"glyph"`
	Color           core.Color `yaml:"color"`
}

// EnemyDef is one enemy type.
type EnemyDef struct {
	Name       string     `yaml:"name"`
	Health     int        `yaml:"health"`
	Speed      float64    `yaml:"speed"` // World pixels per tick
	GoldReward int        `yaml:"gold_reward"`
	ScoreValue int        `yaml:"score_value"`
	Flying     bool       `yaml:"flying"`
	Glyph      string     `yaml:"glyph"`
	Color      core.Color `yaml:"color"`
}

// SpawnGroup spawns Count enemies of one type, Interval ticks apart.
type SpawnGroup struct {
	Enemy    string `yaml:"enemy"`
	Count    int    `yaml:"count"`
	Interval int    `yaml:"interval"`
}

// WaveDef is an authored wave.
type WaveDef struct {
	Groups []SpawnGroup `yaml:"groups"`
}

// ProceduralConfig generates waves past the authored list.
type ProceduralConfig struct {
	Base   []SpawnGroup `yaml:"base"`
	Growth float64      `yaml:"growth"` // Per-wave count multiplier
}

// TimingConfig holds the simulation thresholds, in world pixels.
type TimingConfig struct {
	WaypointEpsilon float64 `yaml:"waypoint_epsilon"`
	HitThreshold    float64 `yaml:"hit_threshold"`
	CameraSpeed     float64 `yaml:"camera_speed"`
	BoundsMinX      float64 `yaml:"bounds_min_x"`
	BoundsMaxX      float64 `yaml:"bounds_max_x"`
	BoundsMinY      float64 `yaml:"bounds_min_y"`
	BoundsMaxY      float64 `yaml:"bounds_max_y"`
	SlowThreshold   int     `yaml:"slow_threshold_us"` // Timing middleware warning, microseconds
}

// Tower looks up a tower type by id.
func (c TowersContent) Tower(id string) (TowerDef, bool) {
	for _, t := range c.Towers {
		if t.ID == id {
			return t, true
		}
	}
	return TowerDef{}, false
}

// Enemy looks up an enemy type by id.
func (c TowersContent) Enemy(id string) (EnemyDef, bool) {
	e, ok := c.Enemies[id]
	return e, ok
}

// Validate checks the cross references between tables.
func (c TowersContent) Validate() error {
	if c.Map.Width <= 0 || c.Map.Height <= 0 || c.Map.TileWidth <= 0 || c.Map.TileHeight <= 0 {
		return fmt.Errorf("%w: map dimensions must be positive", ErrInvalidContent)
	}
	if len(c.Map.Path) < 2 {
		return fmt.Errorf("%w: path needs at least two corners", ErrInvalidContent)
	}
	for i, p := range c.Map.Path {
		if p[0] < 0 || p[0] >= c.Map.Width || p[1] < 0 || p[1] >= c.Map.Height {
			return fmt.Errorf("%w: path corner %d %v out of bounds", ErrInvalidContent, i, p)
		}
		if i > 0 {
			prev := c.Map.Path[i-1]
			if prev[0] != p[0] && prev[1] != p[1] {
				return fmt.Errorf("%w: path corners %v and %v are not aligned", ErrInvalidContent, prev, p)
			}
		}
	}
	if len(c.Towers) == 0 || len(c.Towers) > 8 {
		return fmt.Errorf("%w: need 1 to 8 tower types, got %d", ErrInvalidContent, len(c.Towers))
	}
	for _, t := range c.Towers {
		if t.FireRate <= 0 {
			return fmt.Errorf("%w: tower %q fire_rate must be positive", ErrInvalidContent, t.ID)
		}
	}
	check := func(where string, groups []SpawnGroup) error {
		for _, g := range groups {
			if _, ok := c.Enemies[g.Enemy]; !ok {
				return fmt.Errorf("%w: %s references unknown enemy %q", ErrInvalidContent, where, g.Enemy)
			}
		}
		return nil
	}
	for i, w := range c.Waves {
		if err := check(fmt.Sprintf("wave %d", i+1), w.Groups); err != nil {
			return err
		}
	}
	return check("procedural base", c.Procedural.Base)
}

// RitualsContent contains all static tables for the ritual game.
type RitualsContent struct {
	Elements  []ElementDef         `yaml:"elements"`
	Rituals   []RitualDef          `yaml:"rituals"`
	QTE       QTEConfig            `yaml:"qte"`
	Circle    CircleConfig         `yaml:"circle"`
	Scoring   ScoringConfig        `yaml:"scoring"`
	Particles map[string]fx.Preset `yaml:"particles"`
	Debug     DebugConfig          `yaml:"debug"`
}

// ElementDef is one ritual element.
type ElementDef struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Symbol      string     `yaml:"symbol"`
	Color       core.Color `yaml:"color"`
	UnlockLevel int        `yaml:"unlock_level"`
	Description string     `yaml:"description"`
}

// RitualDef is one ritual the player can attempt.
type RitualDef struct {
	Name           string     `yaml:"name"`
	Description    string     `yaml:"description"`
	Sequence       []string   `yaml:"sequence"`
	Layout         []string   `yaml:"layout"` // Circle nodes; defaults to Sequence
	FaultTolerance chain.Mode `yaml:"fault_tolerance"`
	Difficulty     int        `yaml:"difficulty"` // 1..10
	UnlockLevel    int        `yaml:"unlock_level"`
	MaxMisses      int        `yaml:"max_misses"` // 0 = mode default
}

// Nodes returns the elements placed on the circle.
func (r RitualDef) Nodes() []string {
	if len(r.Layout) > 0 {
		return r.Layout
	}
	return r.Sequence
}

// QTEConfig defines challenge timing in ticks.
type QTEConfig struct {
	BaseWindow int `yaml:"base_window"`
	WindowStep int `yaml:"window_step"` // Ticks removed per difficulty level above 1
	MinWindow  int `yaml:"min_window"`
	Delay      int `yaml:"delay"`       // Pause between challenges
	SpeedBonus int `yaml:"speed_bonus"` // Max bonus for an instant hit
}

// CircleConfig places nodes, in world pixels.
type CircleConfig struct {
	CenterX    float64 `yaml:"center_x"`
	CenterY    float64 `yaml:"center_y"`
	Radius     float64 `yaml:"radius"`
	NodeRadius float64 `yaml:"node_radius"`
	NodeSize   float64 `yaml:"node_size"`
	MaxNodes   int     `yaml:"max_nodes"`
}

// ScoringConfig defines the final score formula.
type ScoringConfig struct {
	Base             int     `yaml:"base"`
	Accuracy         int     `yaml:"accuracy"`
	Perfect          int     `yaml:"perfect"`
	DifficultyFactor float64 `yaml:"difficulty_factor"`
	LevelPoints      int     `yaml:"level_points"` // Total score per player level
}

// DebugConfig holds developer switches.
type DebugConfig struct {
	UnlockAll bool `yaml:"unlock_all"`
}

// Element looks up an element by id.
func (c RitualsContent) Element(id string) (ElementDef, bool) {
	for _, e := range c.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return ElementDef{}, false
}

// Ritual looks up a ritual by name.
func (c RitualsContent) Ritual(name string) (RitualDef, bool) {
	for _, r := range c.Rituals {
		if r.Name == name {
			return r, true
		}
	}
	return RitualDef{}, false
}

// ForLevel returns the rituals unlocked at level, in content order.
func (c RitualsContent) ForLevel(level int) []RitualDef {
	if c.Debug.UnlockAll {
		return c.Rituals
	}
	var out []RitualDef
	for _, r := range c.Rituals {
		if r.UnlockLevel <= level {
			out = append(out, r)
		}
	}
	return out
}

// Validate checks ritual definitions against the element table.
// A ritual whose sequence needs an element missing from its layout is not
// rejected here; that is reported when the ritual is set up.
func (c RitualsContent) Validate() error {
	if len(c.Elements) == 0 || len(c.Rituals) == 0 {
		return fmt.Errorf("%w: need elements and rituals", ErrInvalidContent)
	}
	if c.QTE.MinWindow <= 0 || c.QTE.BaseWindow < c.QTE.MinWindow {
		return fmt.Errorf("%w: qte windows must satisfy 0 < min_window <= base_window", ErrInvalidContent)
	}
	for _, r := range c.Rituals {
		if len(r.Sequence) == 0 {
			return fmt.Errorf("%w: ritual %q has an empty sequence", ErrInvalidContent, r.Name)
		}
		if n := len(r.Nodes()); c.Circle.MaxNodes > 0 && n > c.Circle.MaxNodes {
			return fmt.Errorf("%w: ritual %q has %d nodes, max %d", ErrInvalidContent, r.Name, n, c.Circle.MaxNodes)
		}
		if r.Difficulty < 1 || r.Difficulty > 10 {
			return fmt.Errorf("%w: ritual %q difficulty %d outside 1..10", ErrInvalidContent, r.Name, r.Difficulty)
		}
		for _, el := range append(append([]string(nil), r.Sequence...), r.Layout...) {
			if _, ok := c.Element(el); !ok {
				return fmt.Errorf("%w: ritual %q uses unknown element %q", ErrInvalidContent, r.Name, el)
			}
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)
