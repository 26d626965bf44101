// arcade is a terminal arcade built on a generic event-chain engine.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores and recent runs for a game
//	arcade rituals           - Print the Ritual Keeper catalog
//	arcade sim <game>        - Run a game headless with scripted input
//
// Global flags (defaults come from ARCADE_* environment variables):
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-file <path>    - Log file used while a game owns the terminal
//	--log-level <level>  - debug, info, warn, or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chain-arcade/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/chain-arcade/internal/games/ritual"
	_ "github.com/vovakirdan/chain-arcade/internal/games/towers"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string

	envErr error // Reported once a command runs
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Chain Arcade - event-chain games in your terminal",
	Long: `Chain Arcade runs games whose every tick is an ordered chain of events
executed under a fault tolerance policy.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  rituals  - Print the Ritual Keeper catalog
  sim      - Run a game headless and print chain metrics

Examples:
  arcade list
  arcade play towers
  arcade play ritual --difficulty hard
  arcade menu
  arcade serve --ssh :2222
  arcade sim towers --ticks 3000 --seed 7`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if envErr != nil {
			return envErr
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	env, err := config.LoadEnv()
	if err != nil {
		envErr = err
		env, _ = config.LoadEnvFrom(map[string]string{})
	}
	config.ConfigDir = env.ConfigDir

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", env.FPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", env.Seed, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", env.DB, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", env.LogFile, "Log file used while a game owns the terminal")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(ritualsCmd)
	rootCmd.AddCommand(simCmd)
}
