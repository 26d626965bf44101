package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chain-arcade/internal/core"
	"github.com/vovakirdan/chain-arcade/internal/registry"
	"github.com/vovakirdan/chain-arcade/internal/storage"
)

// Model is the Bubble Tea model for running one arcade game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	log        *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	loop       uint64

	embedded   bool // Inside a menu session: q goes back instead of quitting
	quitting   bool
	backToMenu bool
	scoredRun  string // Run id whose score is already in the scores table
	scoreSaved bool   // Same, for games that don't report runs
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		log:        cfg.Log().With("game", game.ID()),
		inputFrame: core.NewInputFrame(),
		loop:       newLoop(),
	}
}

// newSessionGame creates a model that hands control back to the menu on q.
func newSessionGame(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	m := NewModel(game, store, cfg)
	m.embedded = true
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// gameState is set on the first tick (value receiver)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.record()
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.record()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Games that can't adapt are restarted at the new size.
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	rep, reports := m.game.(registry.Reporter)
	var before registry.RunSummary
	if reports {
		before = rep.Summary()
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A restart mid-run replaces the run; keep the one that just ended.
	if reports && before.RunID != "" && rep.Summary().RunID != before.RunID {
		m.saveRun(before)
	}
	if m.gameState.GameOver && !wasOver {
		m.record()
	}
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.loop)
}

// record stores the score and the run summary. It may run several times for
// one run; the score is written once and the run record is updated in place.
func (m *Model) record() {
	if m.store == nil {
		return
	}

	rep, ok := m.game.(registry.Reporter)
	if !ok {
		if !m.scoreSaved && m.gameState.Score > 0 {
			if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
				m.log.Warn("score not saved", "err", err)
			}
			m.scoreSaved = true
		}
		return
	}

	m.saveRun(rep.Summary())
}

// saveRun writes sum once to the scores table and upserts its run record.
func (m *Model) saveRun(sum registry.RunSummary) {
	if m.store == nil || sum.RunID == "" {
		return
	}
	if sum.Score > 0 && m.scoredRun != sum.RunID {
		if _, err := m.store.SaveScore(m.game.ID(), sum.Score); err != nil {
			m.log.Warn("score not saved", "run", sum.RunID, "err", err)
		}
		m.scoredRun = sum.RunID
	}

	err := m.store.SaveRun(storage.Run{
		RunID:    sum.RunID,
		GameID:   m.game.ID(),
		Score:    sum.Score,
		Outcome:  sum.Outcome,
		Ticks:    sum.Ticks,
		Failures: sum.Failures,
	})
	if err != nil {
		m.log.Warn("run not saved", "run", sum.RunID, "err", err)
		return
	}
	m.log.Info("run saved", "run", sum.RunID, "outcome", sum.Outcome, "score", sum.Score, "failures", sum.Failures)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.log.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("screenshot skipped", "err", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("screenshot not written", "path", path, "err", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user asked to leave entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Clicks place towers and pick ritual nodes
	)

	_, err := p.Run()
	return err
}
