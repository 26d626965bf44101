// Package towers implements Isometric Defense: enemies walk a fixed route
// across an isometric grid while the player builds towers beside it.
//
// Every tick runs exactly one event chain, chosen by the current scene. The
// playing chain is lenient, so a rejected build or a faulty step is recorded
// and the rest of the tick still runs.
package towers

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/core"
	"github.com/vovakirdan/chain-arcade/internal/registry"
)

// Game implements registry.Game for Isometric Defense.
type Game struct {
	opts     registry.Options
	override *config.TowersContent

	runtime  core.RuntimeConfig
	content  config.TowersContent
	world    *World
	scene    Scene
	renderer *ScreenRenderer
	metrics  *chain.Metrics
	log      *log.Logger

	runID        string
	ticks        int
	failures     int
	lastFailures []chain.EventFailure
	outcome      string
}

// New creates a game that loads its content from opts.
func New(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// NewWithContent creates a game with fixed content, skipping the loaders.
func NewWithContent(content config.TowersContent) *Game {
	return &Game{override: &content}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "towers"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Isometric Defense"
}

// Reset initializes or restarts the game at the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.content = g.loadContent()
	g.metrics = chain.NewMetrics()
	g.renderer = &ScreenRenderer{}
	g.newRun()
	g.scene = SceneMenu
}

func (g *Game) loadContent() config.TowersContent {
	if g.override != nil {
		return *g.override
	}

	content, err := config.LoadTowers(g.opts.ConfigPath)
	if err != nil {
		g.runtime.Log().Warn("towers content unusable, using defaults", "path", g.opts.ConfigPath, "err", err)
		content = config.DefaultTowers()
	}
	if g.opts.Difficulty != "" {
		config.ApplyTowersPreset(&content, g.opts.Difficulty)
	}
	return content
}

// newRun builds a fresh world under a new run id.
func (g *Game) newRun() {
	g.runID = uuid.NewString()
	g.log = g.runtime.Log().With("game", g.ID(), "run", g.runID[:8])

	seed := g.runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g.world = NewWorld(g.content, rand.New(rand.NewSource(seed)), g.log)
	g.world.Camera = initialCamera(g.runtime, g.world.Grid)
	g.ticks = 0
	g.failures = 0
	g.lastFailures = nil
	g.outcome = ""
}

// initialCamera centres the map horizontally with a one-row top margin.
func initialCamera(rt core.RuntimeConfig, grid *Grid) core.Vec2 {
	mapCenter := float64(grid.W) * grid.TileW / 2
	return core.V(mapCenter-float64(rt.ScreenW)*CellW/2, -CellH)
}

// Resize adopts a new screen size. The camera keeps its position.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

// World exposes the simulation state.
func (g *Game) World() *World {
	return g.world
}

// Scene returns the current scene.
func (g *Game) Scene() Scene {
	return g.scene
}

// LastFailures returns the failures recorded by the most recent tick.
func (g *Game) LastFailures() []chain.EventFailure {
	return g.lastFailures
}

// Step runs the chain for the current scene once and applies the scene
// transition it requested.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	ctx := &TickContext{
		World:     g.world,
		Input:     in,
		Viewport:  ViewportFor(g.world.Camera),
		Scene:     g.scene,
		NextScene: g.scene,
		Renderer:  g.renderer,
		Metrics:   g.metrics,
	}

	c, err := g.chainFor(ctx)
	if err != nil {
		g.log.Error("cannot build tick chain", "scene", g.scene, "err", err)
		return core.StepResult{State: g.State()}
	}

	if g.scene == ScenePlaying {
		g.world.Tick++
	}

	res := c.Execute()
	g.ticks++
	g.failures += res.FailureCount()
	g.lastFailures = res.Failures

	switch {
	case ctx.Restart:
		g.newRun()
		g.scene = ScenePlaying
	case g.world.GameOver && g.scene != SceneGameOver:
		g.scene = SceneGameOver
		g.outcome = "game_over"
		g.metrics.Report(g.log)
	default:
		g.scene = ctx.NextScene
	}

	return core.StepResult{State: g.State(), Failures: res.FailureCount()}
}

// chainFor builds the chain for ctx.Scene with the shared middleware.
func (g *Game) chainFor(ctx *TickContext) (*chain.Chain[*TickContext], error) {
	if err := ctx.validate(); err != nil {
		return nil, err
	}

	var c *chain.Chain[*TickContext]
	switch ctx.Scene {
	case ScenePlaying:
		c = chain.Lenient(ctx)
		for _, ev := range PlayingEvents() {
			c.AddEvent(ev)
		}
	case ScenePaused:
		c = chain.Strict(ctx).AddEvent(PauseInput{}).AddEvent(UpdateHUD{}).AddEvent(RenderWorld{})
	case SceneGameOver:
		c = chain.Strict(ctx).AddEvent(GameOverInput{}).AddEvent(UpdateHUD{}).AddEvent(RenderWorld{})
	default:
		c = chain.Strict(ctx).AddEvent(MenuInput{}).AddEvent(RenderWorld{})
	}

	threshold := time.Duration(g.content.Timing.SlowThreshold) * time.Microsecond
	c.Use(chain.Timing[*TickContext](threshold, g.log))
	c.Use(chain.Measure[*TickContext](g.metrics))
	c.OnFailure(func(ev chain.Named, err error) {
		g.log.Debug("event failed", "event", ev.Name(), "scene", ctx.Scene, "err", err)
	})
	return c, nil
}

// PlayingEvents returns the per-tick gameplay events in execution order.
func PlayingEvents() []chain.Event[*TickContext] {
	return []chain.Event[*TickContext]{
		ProcessInput{},
		UpdateWaves{},
		UpdateEnemies{},
		UpdateTowers{},
		UpdateProjectiles{},
		CheckCollisions{},
		UpdateParticles{},
		UpdateHUD{},
		RenderWorld{},
	}
}

// Render draws the last presented frame.
func (g *Game) Render(dst *core.Screen) {
	if _, ok := g.renderer.Frame(); !ok {
		drawMenu(dst)
		return
	}
	g.renderer.Draw(dst)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.world.Score,
		GameOver: g.scene == SceneGameOver,
		Paused:   g.scene == ScenePaused,
		Scene:    g.scene.String(),
	}
}

// Metrics returns the chain counters accumulated since Reset.
func (g *Game) Metrics() *chain.Metrics {
	return g.metrics
}

// Summary implements registry.Reporter.
func (g *Game) Summary() registry.RunSummary {
	if g.world == nil {
		return registry.RunSummary{}
	}
	outcome := g.outcome
	if outcome == "" {
		outcome = "aborted"
	}
	return registry.RunSummary{
		RunID:    g.runID,
		Outcome:  outcome,
		Score:    g.world.Score,
		Ticks:    g.ticks,
		Failures: g.failures,
		Metrics:  g.metrics.Snapshot(),
	}
}

func init() {
	registry.Register("towers", func(opts registry.Options) registry.Game {
		return New(opts)
	})
}
