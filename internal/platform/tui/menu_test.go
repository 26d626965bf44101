package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/registry"
)

func init() {
	registry.Register("stub", func(registry.Options) registry.Game { return &stubGame{} })
}

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	menu, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return menu
}

func TestMenuListsGamesWithBestScore(t *testing.T) {
	store := openStore(t)
	store.SaveScore("stub", 99)

	m := NewMenuModel(store, testConfig(), config.DifficultyNormal)
	m.width = 120

	view := m.View()
	if !strings.Contains(view, "Stub") {
		t.Errorf("menu should list Stub:\n%s", view)
	}
	if !strings.Contains(view, "best 99") {
		t.Errorf("menu should show the high score:\n%s", view)
	}
	if !strings.Contains(view, "< normal >") {
		t.Errorf("menu should show the difficulty:\n%s", view)
	}
}

func TestMenuDifficultyCycles(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), config.DifficultyHard)
	if m.Difficulty() != config.DifficultyHard {
		t.Fatalf("Difficulty() = %s, want hard", m.Difficulty())
	}

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Difficulty() != config.DifficultyFixed {
		t.Errorf("after right: %s, want fixed", m.Difficulty())
	}
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Difficulty() != config.DifficultyEasy {
		t.Errorf("after wrap: %s, want easy", m.Difficulty())
	}
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Difficulty() != config.DifficultyFixed {
		t.Errorf("after left: %s, want fixed", m.Difficulty())
	}
}

func TestMenuResult(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), config.DifficultyEasy)

	tab := updateMenu(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !tab.result().WantsScoreboard {
		t.Error("tab should ask for the scoreboard")
	}

	quit := updateMenu(t, m, runeKey("q"))
	if !quit.result().Quit {
		t.Error("q should quit")
	}

	picked := updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	res := picked.result()
	if res.Quit || res.GameID == "" {
		t.Fatalf("enter should pick a game: %+v", res)
	}
	if res.Difficulty != config.DifficultyEasy {
		t.Errorf("difficulty = %s, want easy", res.Difficulty)
	}
}

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	s := NewSessionModel(store, testConfig(), registry.Options{})

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	// Move the cursor onto the stub game.
	for i, item := range s.menu.items {
		if item.GameID == "stub" {
			s.menu.cursor = i
		}
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame {
		t.Fatalf("screen = %d, want game", s.screen)
	}
	if !strings.Contains(s.View(), "stub") {
		t.Error("session should render the game")
	}

	step(tick(s.game))
	step(runeKey("q"))
	if s.screen != screenMenu || s.quitting {
		t.Fatalf("q in a game should return to the menu (screen %d, quitting %v)", s.screen, s.quitting)
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatalf("tab should open the scoreboard, screen %d", s.screen)
	}
	if !strings.Contains(s.View(), "HIGH SCORES") {
		t.Error("scoreboard title missing")
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Errorf("esc should close the scoreboard, screen %d", s.screen)
	}

	step(runeKey("q"))
	if !s.quitting {
		t.Error("q on the menu should end the session")
	}
}
