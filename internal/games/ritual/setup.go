package ritual

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/config"
)

// Setup errors. Both leave the ritual in the failed state.
var (
	ErrNoMatchingNode = errors.New("ritual: no node matches required element")
	ErrEmptyRitual    = errors.New("ritual: nothing to place on the circle")
)

var errNoDefinition = errors.New("ritual: setup context has no definition")

// SetupContext is the state threaded through the setup chain.
type SetupContext struct {
	Def    config.RitualDef
	Circle config.CircleConfig
	Nodes  []Node
}

func (c *SetupContext) validate() error {
	if c == nil || c.Def.Name == "" {
		return errNoDefinition
	}
	return nil
}

// InitializeRitual lays the ritual's nodes out on the circle.
type InitializeRitual struct{}

// Name implements chain.Event.
func (InitializeRitual) Name() string { return "InitializeRitual" }

// Execute implements chain.Event.
func (InitializeRitual) Execute(ctx *SetupContext) chain.Result {
	elements := ctx.Def.Nodes()
	if len(elements) == 0 || len(ctx.Def.Sequence) == 0 {
		return chain.Failuref("%w: %q", ErrEmptyRitual, ctx.Def.Name)
	}
	ctx.Nodes = PlaceNodes(elements, ctx.Circle)
	return chain.Success()
}

// ValidateLayout checks that every step of the sequence can be served by at
// least one node.
type ValidateLayout struct{}

// Name implements chain.Event.
func (ValidateLayout) Name() string { return "ValidateLayout" }

// Execute implements chain.Event.
func (ValidateLayout) Execute(ctx *SetupContext) chain.Result {
	for i, el := range ctx.Def.Sequence {
		if len(matching(ctx.Nodes, el)) == 0 {
			return chain.Failuref("%w: step %d needs %q", ErrNoMatchingNode, i+1, el)
		}
	}
	return chain.Success()
}

// setupChain builds the strict chain every ritual runs once before play.
func setupChain(ctx *SetupContext) (*chain.Chain[*SetupContext], error) {
	if err := ctx.validate(); err != nil {
		return nil, err
	}
	return chain.Strict(ctx).
		AddEvent(InitializeRitual{}).
		AddEvent(ValidateLayout{}), nil
}

// Setup runs the setup chain for def and returns the placed nodes.
func Setup(def config.RitualDef, circle config.CircleConfig, mw ...chain.Middleware[*SetupContext]) ([]Node, error) {
	ctx := &SetupContext{Def: def, Circle: circle}
	c, err := setupChain(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range mw {
		c.Use(m)
	}

	res := c.Execute()
	if f, failed := res.FirstFailure(); failed {
		return nil, fmt.Errorf("setup %s: %w", f.Event, f.Err)
	}
	return ctx.Nodes, nil
}
