// Package ritual implements Ritual Keeper: elemental nodes sit on a circle and
// the player answers a sequence of timed challenges by picking the glowing
// node before its window closes.
//
// Each ritual is set up by a strict chain that must fully succeed. Gameplay
// ticks run a lenient chain; how many misses a ritual survives is decided by
// the ritual's own fault tolerance mode.
package ritual

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/core"
	"github.com/vovakirdan/chain-arcade/internal/fx"
	"github.com/vovakirdan/chain-arcade/internal/registry"
)

// slowEvent is the Timing middleware threshold for ritual chains.
const slowEvent = 2 * time.Millisecond

// Progress is the player's standing across rituals in one session.
type Progress struct {
	Level     int
	Total     int
	Completed []string
}

// Record adds a completed ritual and reports whether the level went up.
// Levels never go down.
func (p *Progress) Record(name string, score, levelPoints int) bool {
	p.Total += score
	p.Completed = append(p.Completed, name)
	if levelPoints <= 0 {
		return false
	}
	if lvl := p.Total/levelPoints + 1; lvl > p.Level {
		p.Level = lvl
		return true
	}
	return false
}

// Result is what the results screen shows about the last attempt.
type Result struct {
	Ritual   string
	Success  bool
	Score    int
	Perfect  bool
	Hits     int
	Misses   int
	Ticks    int
	Reason   string
	LevelUp  bool
	NewLevel int
}

// Game implements registry.Game for Ritual Keeper.
type Game struct {
	opts     registry.Options
	override *config.RitualsContent

	runtime   core.RuntimeConfig
	content   config.RitualsContent
	scene     Scene
	progress  Progress
	cursor    int
	ritual    *ActiveRitual
	result    Result
	particles []fx.Particle

	rng     *rand.Rand
	metrics *chain.Metrics
	log     *log.Logger

	runID        string
	now          int
	failures     int
	lastFailures []chain.EventFailure
	outcome      string
}

// New creates a game that loads its content from opts.
func New(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// NewWithContent creates a game with fixed content, skipping the loaders.
func NewWithContent(content config.RitualsContent) *Game {
	return &Game{override: &content}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "ritual"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Ritual Keeper"
}

// Reset starts a fresh session at the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.content = g.loadContent()
	g.metrics = chain.NewMetrics()

	g.runID = uuid.NewString()
	g.log = runtime.Log().With("game", g.ID(), "run", g.runID[:8])

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	g.scene = SceneMenu
	g.progress = Progress{Level: 1}
	g.cursor = 0
	g.ritual = nil
	g.result = Result{}
	g.particles = nil
	g.now = 0
	g.failures = 0
	g.lastFailures = nil
	g.outcome = ""
}

// Resize adopts a new screen size; the circle stays centred.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

func (g *Game) loadContent() config.RitualsContent {
	if g.override != nil {
		return *g.override
	}

	content, err := config.LoadRituals(g.opts.ConfigPath)
	if err != nil {
		g.runtime.Log().Warn("ritual content unusable, using defaults", "path", g.opts.ConfigPath, "err", err)
		content = config.DefaultRituals()
	}
	if g.opts.Difficulty != "" {
		config.ApplyRitualsPreset(&content, g.opts.Difficulty)
	}
	return content
}

// Viewport maps between world pixels and screen cells at the current size.
func (g *Game) Viewport() core.Viewport {
	return ViewportFor(g.content.Circle, g.runtime.ScreenW, g.runtime.ScreenH)
}

// Available returns the rituals the player may choose at their level.
func (g *Game) Available() []config.RitualDef {
	return g.content.ForLevel(g.progress.Level)
}

// Step runs the chain for the current scene once and applies the transition
// it requested.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.now++

	choices := g.Available()
	if g.cursor >= len(choices) {
		g.cursor = 0
	}

	ctx := &TickContext{
		Content:   &g.content,
		Ritual:    g.ritual,
		Input:     in,
		Viewport:  g.Viewport(),
		Scene:     g.scene,
		Now:       g.now,
		Particles: g.particles,
		Choices:   choices,
		Cursor:    g.cursor,
		NextScene: g.scene,
		Pick:      -1,
	}

	c, err := g.chainFor(ctx)
	if err != nil {
		g.log.Error("cannot build tick chain", "scene", g.scene, "err", err)
		return core.StepResult{State: g.State()}
	}

	res := c.Execute()
	g.failures += res.FailureCount()
	g.lastFailures = res.Failures
	g.particles = ctx.Particles
	g.cursor = ctx.Cursor

	switch g.scene {
	case SceneSelect:
		if ctx.Start && len(ctx.Choices) > 0 {
			g.begin(ctx.Choices[ctx.Cursor])
			break
		}
		g.scene = ctx.NextScene
	case SceneGameplay:
		g.settle(ctx)
	default:
		g.scene = ctx.NextScene
	}

	return core.StepResult{State: g.State(), Failures: res.FailureCount()}
}

// begin sets up def and enters gameplay, or goes straight to the results
// screen when setup fails.
func (g *Game) begin(def config.RitualDef) {
	g.ritual = Start(def, g.content, g.now, g.rng, g.log, chain.Measure[*SetupContext](g.metrics))
	if g.ritual.Failed() {
		g.finish(false)
		return
	}
	g.log.Info("ritual started", "ritual", def.Name, "difficulty", def.Difficulty, "mode", def.FaultTolerance)
	g.scene = SceneGameplay
}

// settle moves on from gameplay once the ritual has ended.
func (g *Game) settle(ctx *TickContext) {
	r := g.ritual
	switch {
	case ctx.Abort:
		g.log.Info("ritual abandoned", "ritual", r.Def.Name, "step", r.Step())
		g.reach("aborted")
		g.ritual = nil
		g.scene = SceneSelect
	case r.Completed():
		g.finish(true)
	case r.Failed():
		g.finish(false)
	}
}

func (g *Game) finish(success bool) {
	r := g.ritual
	g.result = Result{
		Ritual:  r.Def.Name,
		Success: success,
		Hits:    r.Hits(),
		Misses:  r.Misses(),
		Ticks:   r.Duration(),
	}

	if success {
		g.result.Score = r.Score()
		g.result.Perfect = r.Perfect()
		g.result.LevelUp = g.progress.Record(r.Def.Name, r.Score(), g.content.Scoring.LevelPoints)
		g.reach("completed")
		if g.result.LevelUp {
			g.log.Info("level up", "level", g.progress.Level, "total", g.progress.Total)
		}
	} else {
		if err := r.Err(); err != nil {
			g.result.Reason = err.Error()
		}
		g.reach("failed")
		g.log.Warn("ritual failed", "ritual", r.Def.Name, "misses", r.Misses(), "err", r.Err())
	}
	g.result.NewLevel = g.progress.Level

	g.ritual = nil
	g.scene = SceneResults
	g.metrics.Report(g.log)
}

// outcomeRank orders session outcomes; a session reports the best it reached.
var outcomeRank = map[string]int{"aborted": 1, "failed": 2, "completed": 3}

func (g *Game) reach(outcome string) {
	if outcomeRank[outcome] > outcomeRank[g.outcome] {
		g.outcome = outcome
	}
}

// chainFor builds the chain for ctx.Scene with the shared middleware.
func (g *Game) chainFor(ctx *TickContext) (*chain.Chain[*TickContext], error) {
	if err := ctx.validate(); err != nil {
		return nil, err
	}

	var c *chain.Chain[*TickContext]
	switch ctx.Scene {
	case SceneGameplay:
		c = chain.Lenient(ctx)
		for _, ev := range GameplayEvents() {
			c.AddEvent(ev)
		}
	case SceneSelect:
		c = chain.Strict(ctx).AddEvent(SelectInput{}).AddEvent(UpdateParticles{})
	case SceneResults:
		c = chain.Strict(ctx).AddEvent(ResultsInput{}).AddEvent(UpdateParticles{})
	default:
		c = chain.Strict(ctx).AddEvent(MenuInput{}).AddEvent(UpdateParticles{})
	}

	c.Use(chain.Timing[*TickContext](slowEvent, g.log))
	c.Use(chain.Measure[*TickContext](g.metrics))
	c.OnFailure(func(ev chain.Named, err error) {
		g.log.Debug("event failed", "event", ev.Name(), "scene", ctx.Scene, "err", err)
	})
	return c, nil
}

// GameplayEvents returns the per-tick ritual events in execution order.
func GameplayEvents() []chain.Event[*TickContext] {
	return []chain.Event[*TickContext]{
		PollRitualInput{},
		AdvanceRitual{},
		UpdateParticles{},
	}
}

// Scene returns the current scene.
func (g *Game) Scene() Scene {
	return g.scene
}

// Ritual returns the ritual in progress, if any.
func (g *Game) Ritual() *ActiveRitual {
	return g.ritual
}

// Progress returns the session standing.
func (g *Game) Progress() Progress {
	return g.progress
}

// LastResult returns the most recent results screen data.
func (g *Game) LastResult() Result {
	return g.result
}

// LastFailures returns the failures recorded by the most recent tick.
func (g *Game) LastFailures() []chain.EventFailure {
	return g.lastFailures
}

// Metrics returns the chain counters accumulated since Reset.
func (g *Game) Metrics() *chain.Metrics {
	return g.metrics
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score: g.progress.Total,
		Scene: g.scene.String(),
	}
}

// Summary implements registry.Reporter.
func (g *Game) Summary() registry.RunSummary {
	if g.metrics == nil {
		return registry.RunSummary{}
	}
	outcome := g.outcome
	if outcome == "" {
		outcome = "aborted"
	}
	return registry.RunSummary{
		RunID:    g.runID,
		Outcome:  outcome,
		Score:    g.progress.Total,
		Ticks:    g.now,
		Failures: g.failures,
		Metrics:  g.metrics.Snapshot(),
	}
}

func init() {
	registry.Register("ritual", func(opts registry.Options) registry.Game {
		return New(opts)
	})
}
