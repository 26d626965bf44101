package main

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chain-arcade/internal/core"
	"github.com/vovakirdan/chain-arcade/internal/games/ritual"
	"github.com/vovakirdan/chain-arcade/internal/games/towers"
	"github.com/vovakirdan/chain-arcade/internal/registry"
)

var flagTicks int

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Run a game headless with scripted input",
	Long: `Run a game without a terminal, feeding it scripted input, and print
the run summary and chain metrics. The same seed gives the same run.

The towers script starts waves and builds random towers near the path.
The ritual script picks rituals and answers challenges with a short
reaction delay and occasional mistakes.

Examples:
  arcade sim towers --ticks 3000
  arcade sim ritual --seed 7 --difficulty hard`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Maximum ticks to simulate")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom content YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSim(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if err := requireGame(gameID); err != nil {
		return err
	}
	if flagTicks <= 0 {
		return fmt.Errorf("--ticks must be positive, got %d", flagTicks)
	}

	opts, err := gameOptions()
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	game, err := registry.Create(gameID, opts)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     seed,
		Logger:   logger,
	}

	res, err := simulate(game, cfg, flagTicks)
	if err != nil {
		return err
	}
	printSim(cmd.OutOrStdout(), gameID, seed, res)
	return nil
}

// simResult is what a headless run produced.
type simResult struct {
	Ticks   int
	State   core.GameState
	Summary registry.RunSummary
}

// simulate resets game with cfg and steps it up to ticks times, stopping
// early on game over.
func simulate(game registry.Game, cfg core.RuntimeConfig, ticks int) (simResult, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	game.Reset(cfg)
	bot, err := scriptFor(game)
	if err != nil {
		return simResult{}, err
	}

	var res simResult
	for res.Ticks < ticks {
		step := game.Step(bot.next(rng))
		res.Ticks++
		res.State = step.State
		if step.State.GameOver {
			break
		}
	}

	if rep, ok := game.(registry.Reporter); ok {
		res.Summary = rep.Summary()
	} else {
		res.Summary = registry.RunSummary{Score: res.State.Score, Ticks: res.Ticks}
	}
	return res, nil
}

func printSim(w io.Writer, gameID string, seed int64, res simResult) {
	sum := res.Summary
	fmt.Fprintf(w, "Simulated %s for %d ticks (seed %d)\n\n", gameID, res.Ticks, seed)
	fmt.Fprintf(w, "Scene:    %s\n", res.State.Scene)
	fmt.Fprintf(w, "Outcome:  %s\n", sum.Outcome)
	fmt.Fprintf(w, "Score:    %d\n", sum.Score)
	fmt.Fprintf(w, "Failures: %d\n\n", sum.Failures)
	fmt.Fprintln(w, sum.Metrics.String())
}

// script produces one input frame per tick for a headless game.
type script interface {
	next(rng *rand.Rand) core.InputFrame
}

func scriptFor(game registry.Game) (script, error) {
	switch g := game.(type) {
	case *towers.Game:
		return &towersScript{g: g}, nil
	case *ritual.Game:
		return &ritualScript{g: g}, nil
	}
	return nil, fmt.Errorf("no sim script for game %q", game.ID())
}

// Tick intervals of the towers script.
const (
	buildEvery = 45
	waveEvery  = 60
)

type towersScript struct {
	g    *towers.Game
	tick int
}

func (s *towersScript) next(rng *rand.Rand) core.InputFrame {
	s.tick++
	in := core.NewInputFrame()

	switch s.g.Scene() {
	case towers.SceneMenu:
		in.Set(core.ActionConfirm)
		return in
	case towers.ScenePaused:
		in.Set(core.ActionPause)
		return in
	case towers.ScenePlaying:
	default:
		return in
	}

	w := s.g.World()
	if !w.WaveActive && s.tick%waveEvery == 0 {
		in.Set(core.ActionConfirm)
	}

	defs := w.Content.Towers
	if s.tick%buildEvery != 0 || len(defs) == 0 {
		return in
	}
	idx := rng.Intn(min(len(defs), 8))
	if !w.CanAfford(defs[idx].Cost) {
		return in
	}
	spots := buildSpots(w)
	if len(spots) == 0 {
		return in
	}

	tile := spots[rng.Intn(len(spots))]
	x, y := towers.ViewportFor(w.Camera).ToCell(w.Grid.TileCenter(tile))
	in.Set(core.SelectAction(idx))
	in.MovePointer(x, y)
	in.Pointer.Click = true
	return in
}

// buildSpots returns free buildable tiles two steps from the path, in path
// order so the result is stable for a seed.
func buildSpots(w *towers.World) []towers.Tile {
	seen := make(map[towers.Tile]bool)
	var spots []towers.Tile
	for _, p := range w.Grid.Path() {
		for dx := -2; dx <= 2; dx++ {
			for dy := -2; dy <= 2; dy++ {
				if abs(dx)+abs(dy) != 2 {
					continue
				}
				t := towers.Tile{X: p.X + dx, Y: p.Y + dy}
				if seen[t] || !w.Grid.Buildable(t) || w.TowerAt(t) != nil {
					continue
				}
				seen[t] = true
				spots = append(spots, t)
			}
		}
	}
	return spots
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Ritual script tuning.
const (
	ritualAccuracy = 0.85
	minReaction    = 6
	maxReaction    = 30
)

type ritualScript struct {
	g       *ritual.Game
	target  ritual.Challenge
	waiting bool
	wait    int
}

func (s *ritualScript) next(rng *rand.Rand) core.InputFrame {
	in := core.NewInputFrame()

	switch s.g.Scene() {
	case ritual.SceneMenu, ritual.SceneResults:
		in.Set(core.ActionConfirm)
		return in
	case ritual.SceneSelect:
		if n := len(s.g.Available()); n > 0 {
			in.Set(core.SelectAction(rng.Intn(min(n, 8))))
		}
		in.Set(core.ActionConfirm)
		return in
	}

	r := s.g.Ritual()
	if r == nil {
		return in
	}
	ch, ok := r.Pending()
	if !ok {
		s.waiting = false
		return in
	}
	if !s.waiting || ch != s.target {
		s.target = ch
		s.waiting = true
		s.wait = minReaction + rng.Intn(maxReaction-minReaction+1)
	}
	if s.wait > 0 {
		s.wait--
		return in
	}
	s.waiting = false

	nodes := r.Nodes()
	pick := ch.Node
	if rng.Float64() >= ritualAccuracy && len(nodes) > 1 {
		pick = (ch.Node + 1 + rng.Intn(len(nodes)-1)) % len(nodes)
	}

	if pick < 8 {
		in.Set(core.SelectAction(pick))
		return in
	}
	x, y := s.g.Viewport().ToCell(nodes[pick].Pos)
	in.MovePointer(x, y)
	in.Pointer.Click = true
	return in
}
