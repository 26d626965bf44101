package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/core"
)

func TestDefaultTowersValid(t *testing.T) {
	c := DefaultTowers()
	if err := c.Validate(); err != nil {
		t.Fatalf("embedded towers.yaml invalid: %v", err)
	}

	if c.Map.TileWidth != 64 || c.Map.TileHeight != 32 {
		t.Errorf("tile size = %vx%v, expected 64x32", c.Map.TileWidth, c.Map.TileHeight)
	}
	if c.Timing.WaypointEpsilon != 5 || c.Timing.HitThreshold != 10 {
		t.Errorf("timing thresholds = %v/%v, expected 5/10", c.Timing.WaypointEpsilon, c.Timing.HitThreshold)
	}

	cannon, ok := c.Tower("cannon")
	if !ok {
		t.Fatal("cannon tower missing")
	}
	if cannon.CanHitFlying || cannon.SplashRadius <= 0 || cannon.Color != core.ColorOrange {
		t.Errorf("cannon = %+v", cannon)
	}

	bat, ok := c.Enemy("bat")
	if !ok || !bat.Flying {
		t.Errorf("bat should be a flying enemy, got %+v", bat)
	}
}

func TestDefaultRitualsValid(t *testing.T) {
	c := DefaultRituals()
	if err := c.Validate(); err != nil {
		t.Fatalf("embedded rituals.yaml invalid: %v", err)
	}

	if len(c.Rituals) != 12 {
		t.Errorf("expected 12 rituals, got %d", len(c.Rituals))
	}
	if len(c.Elements) != 8 {
		t.Errorf("expected 8 elements, got %d", len(c.Elements))
	}

	r, ok := c.Ritual("Grand Summoning")
	if !ok {
		t.Fatal("Grand Summoning missing")
	}
	if r.FaultTolerance != chain.ModeStrict || r.Difficulty != 10 || len(r.Sequence) != 8 {
		t.Errorf("Grand Summoning = %+v", r)
	}

	moon, _ := c.Element("moon")
	if moon.Symbol != "☽" {
		t.Errorf("moon symbol = %q", moon.Symbol)
	}
}

func TestRitualsForLevel(t *testing.T) {
	c := DefaultRituals()

	tests := []struct {
		level int
		want  int
	}{
		{1, 2},
		{2, 3},
		{5, 7},
		{10, 12},
	}

	for _, tt := range tests {
		if got := len(c.ForLevel(tt.level)); got != tt.want {
			t.Errorf("ForLevel(%d) = %d rituals, expected %d", tt.level, got, tt.want)
		}
	}

	c.Debug.UnlockAll = true
	if got := len(c.ForLevel(1)); got != 12 {
		t.Errorf("unlock_all: ForLevel(1) = %d, expected 12", got)
	}
}

func TestRitualNodesDefaultToSequence(t *testing.T) {
	r := RitualDef{Sequence: []string{"fire", "water"}}
	if got := r.Nodes(); len(got) != 2 || got[0] != "fire" {
		t.Errorf("Nodes() = %v", got)
	}
	r.Layout = []string{"water", "fire", "air"}
	if got := r.Nodes(); len(got) != 3 || got[2] != "air" {
		t.Errorf("Nodes() with layout = %v", got)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TowersContent)
	}{
		{"unaligned path", func(c *TowersContent) { c.Map.Path = [][2]int{{0, 0}, {3, 4}} }},
		{"path out of bounds", func(c *TowersContent) { c.Map.Path = [][2]int{{0, 0}, {99, 0}} }},
		{"unknown enemy", func(c *TowersContent) { c.Waves[0].Groups[0].Enemy = "dragon" }},
		{"zero fire rate", func(c *TowersContent) { c.Towers[0].FireRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultTowers()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidContent) {
				t.Errorf("Validate() = %v, expected ErrInvalidContent", err)
			}
		})
	}

	r := DefaultRituals()
	r.Rituals[0].Sequence = []string{"aether"}
	if err := r.Validate(); !errors.Is(err, ErrInvalidContent) {
		t.Errorf("unknown element: Validate() = %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rituals.yaml")

	data, err := os.ReadFile("defaults/rituals.yaml")
	if err != nil {
		t.Fatalf("read default: %v", err)
	}
	data = append(data, []byte("\n")...)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := LoadRituals(path)
	if err != nil {
		t.Fatalf("LoadRituals() error: %v", err)
	}
	if len(c.Rituals) != 12 {
		t.Errorf("expected 12 rituals, got %d", len(c.Rituals))
	}

	if _, err := LoadRituals(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom path")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("rituals: [fire\n"), 0644)
	if _, err := LoadTowers(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadLocalConfigDir(t *testing.T) {
	dir := t.TempDir()
	yaml := `
map: {width: 4, height: 4, tile_width: 64, tile_height: 32, path: [[0, 0], [3, 0]]}
towers: [{id: only, fire_rate: 1}]
enemies: {blob: {health: 1, speed: 1}}
waves: [{groups: [{enemy: blob, count: 1, interval: 1}]}]
`
	if err := os.WriteFile(filepath.Join(dir, "towers.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HOME", t.TempDir())
	old := ConfigDir
	ConfigDir = dir
	defer func() { ConfigDir = old }()

	c, err := LoadTowers("")
	if err != nil {
		t.Fatalf("LoadTowers() error: %v", err)
	}
	if c.Map.Width != 4 || len(c.Towers) != 1 {
		t.Errorf("expected local config to win over embedded, got %+v", c.Map)
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"easy", "normal", "hard", "fixed"} {
		if p, err := ParsePreset(s); err != nil || string(p) != s {
			t.Errorf("ParsePreset(%q) = %q, %v", s, p, err)
		}
	}
	if p, _ := ParsePreset(""); p != DifficultyNormal {
		t.Errorf("empty preset = %q, expected normal", p)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if !IsFixedPreset(DifficultyFixed) || IsFixedPreset(DifficultyHard) {
		t.Error("IsFixedPreset mismatch")
	}
}

func TestApplyPresets(t *testing.T) {
	base := DefaultTowers()

	easy := DefaultTowers()
	ApplyTowersPreset(&easy, DifficultyEasy)
	if easy.Economy.StartingGold <= base.Economy.StartingGold || easy.Procedural.Growth >= base.Procedural.Growth {
		t.Errorf("easy should add gold and slow growth: %+v %v", easy.Economy, easy.Procedural.Growth)
	}

	hard := DefaultTowers()
	ApplyTowersPreset(&hard, DifficultyHard)
	if hard.Economy.StartingLives >= base.Economy.StartingLives || hard.Procedural.Growth <= base.Procedural.Growth {
		t.Errorf("hard should cut lives and speed growth: %+v %v", hard.Economy, hard.Procedural.Growth)
	}

	fixed := DefaultTowers()
	ApplyTowersPreset(&fixed, DifficultyFixed)
	if fixed.Procedural.Growth != 1 {
		t.Errorf("fixed growth = %v, expected 1", fixed.Procedural.Growth)
	}

	r := DefaultRituals()
	ApplyRitualsPreset(&r, DifficultyHard)
	for _, def := range r.Rituals {
		if def.Difficulty < 1 || def.Difficulty > 10 {
			t.Errorf("%s difficulty %d outside 1..10", def.Name, def.Difficulty)
		}
	}
	if g, _ := r.Ritual("Simple Flame"); g.Difficulty != 3 {
		t.Errorf("hard Simple Flame difficulty = %d, expected 3", g.Difficulty)
	}
	if g, _ := r.Ritual("Grand Summoning"); g.Difficulty != 10 {
		t.Errorf("hard Grand Summoning difficulty = %d, expected clamp at 10", g.Difficulty)
	}

	r = DefaultRituals()
	ApplyRitualsPreset(&r, DifficultyFixed)
	if !r.Debug.UnlockAll {
		t.Error("fixed should unlock every ritual")
	}
}

func TestLoadEnvFrom(t *testing.T) {
	e, err := LoadEnvFrom(map[string]string{
		"ARCADE_FPS":       "30",
		"ARCADE_SEED":      "42",
		"ARCADE_LOG_LEVEL": "debug",
	})
	if err != nil {
		t.Fatalf("LoadEnvFrom() error: %v", err)
	}
	if e.FPS != 30 || e.Seed != 42 || e.LogLevel != "debug" {
		t.Errorf("env = %+v", e)
	}
	if e.DB != "~/.arcade/scores.db" || e.ConfigDir != "configs" {
		t.Errorf("defaults not applied: %+v", e)
	}

	if _, err := LoadEnvFrom(map[string]string{"ARCADE_FPS": "fast"}); err == nil {
		t.Error("expected error for non-numeric ARCADE_FPS")
	}
}
