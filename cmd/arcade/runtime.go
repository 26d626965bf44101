package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/core"
	"github.com/vovakirdan/chain-arcade/internal/logging"
	"github.com/vovakirdan/chain-arcade/internal/registry"
	"github.com/vovakirdan/chain-arcade/internal/storage"
)

// Per-command content flags, shared by play, menu, serve, rituals, and sim.
var (
	flagConfig     string
	flagDifficulty string
)

// newLogger builds the command logger. Interactive commands log to the log
// file so the alternate screen stays clean; the rest log to stderr.
// The returned closer is never nil.
func newLogger(toFile bool) (*log.Logger, io.Closer, error) {
	if !toFile || flagLogFile == "" {
		logger, err := logging.New(os.Stderr, flagLogLevel)
		return logger, io.NopCloser(nil), err
	}

	f, err := logging.OpenFile(flagLogFile)
	if err != nil {
		return nil, io.NopCloser(nil), err
	}
	logger, err := logging.New(f, flagLogLevel)
	if err != nil {
		f.Close()
		return nil, io.NopCloser(nil), err
	}
	return logger, f, nil
}

// gameOptions validates --config and --difficulty.
func gameOptions() (registry.Options, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return registry.Options{}, err
	}
	return registry.Options{ConfigPath: flagConfig, Difficulty: preset}, nil
}

// runtimeConfig sizes the screen to the terminal, falling back to 80x24.
func runtimeConfig(logger *log.Logger) core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Logger:   logger,
	}
}

// openStore opens the scores database. Games still run without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// requireGame exits with a hint when id is not registered.
func requireGame(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown game %q; run 'arcade list' to see available games", id)
	}
	return nil
}
