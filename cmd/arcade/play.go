package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chain-arcade/internal/platform/tui"
	"github.com/vovakirdan/chain-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move camera / menu cursor
  1-8          - Pick a tower type or a ritual node
  Mouse        - Click to build or pick, right click to deselect
  Enter/Space  - Confirm, start the next wave
  Esc/B        - Back, deselect, abandon a ritual
  P            - Pause
  R            - Restart
  ~/F1         - Debug overlay
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More gold and lives, gentler waves, easier rituals
  normal - Content as written
  hard   - Less gold, half the lives, steeper waves, harder rituals
  fixed  - Waves never grow, every ritual unlocked

Examples:
  arcade play towers
  arcade play towers --difficulty hard
  arcade play ritual --config ./my-rituals.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom content YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if err := requireGame(gameID); err != nil {
		return err
	}

	opts, err := gameOptions()
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	game, err := registry.Create(gameID, opts)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting game", "game", gameID, "difficulty", opts.Difficulty, "config", opts.ConfigPath)
	if err := tui.Run(game, store, runtimeConfig(logger)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
