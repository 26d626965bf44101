package registry

import (
	"testing"

	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/core"
)

type stubGame struct {
	id   string
	opts Options
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_b", func(o Options) Game { return &stubGame{id: "stub_b", opts: o} })
	Register("stub_a", func(o Options) Game { return &stubGame{id: "stub_a", opts: o} })

	if !Exists("stub_a") || Exists("stub_missing") {
		t.Error("Exists() mismatch")
	}

	g, err := Create("stub_a", Options{ConfigPath: "x.yaml", Difficulty: config.DifficultyHard})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	stub := g.(*stubGame)
	if stub.opts.ConfigPath != "x.yaml" || stub.opts.Difficulty != config.DifficultyHard {
		t.Errorf("options not forwarded: %+v", stub.opts)
	}

	if _, err := Create("stub_missing", Options{}); err == nil {
		t.Error("expected error for unknown game")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "stub_a" && info.Title != "Stub stub_a" {
			t.Errorf("title = %q", info.Title)
		}
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func(Options) Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("stub_dup", func(Options) Game { return &stubGame{id: "stub_dup"} })
}
