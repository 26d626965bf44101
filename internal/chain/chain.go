package chain

import "fmt"

// Event is one discrete unit of work executed against a context of type C.
type Event[C any] interface {
	Named
	Execute(ctx C) Result
}

// EventFunc adapts a plain function into an Event.
type EventFunc[C any] struct {
	Label string
	Fn    func(ctx C) Result
}

// Name returns the label.
func (e EventFunc[C]) Name() string {
	return e.Label
}

// Execute calls the wrapped function.
func (e EventFunc[C]) Execute(ctx C) Result {
	return e.Fn(ctx)
}

// Handler executes one event against the context.
type Handler[C any] func(ev Event[C], ctx C) Result

// Middleware wraps the next handler in the pipeline.
type Middleware[C any] func(next Handler[C]) Handler[C]

// Chain executes events in registration order against a single context.
// A chain is not safe for concurrent use; it belongs to the tick that runs it.
type Chain[C any] struct {
	events     []Event[C]
	middleware []Middleware[C]
	ctx        C
	policy     Policy
	failures   []EventFailure
}

// New creates an empty chain with the given mode and context.
func New[C any](mode Mode, ctx C) *Chain[C] {
	return &Chain[C]{
		ctx:    ctx,
		policy: Policy{Mode: mode},
	}
}

// Strict creates a chain that aborts on the first failure.
func Strict[C any](ctx C) *Chain[C] {
	return New(ModeStrict, ctx)
}

// Lenient creates a chain that records failures and continues.
func Lenient[C any](ctx C) *Chain[C] {
	return New(ModeLenient, ctx)
}

// BestEffort creates a chain that records failures and continues.
func BestEffort[C any](ctx C) *Chain[C] {
	return New(ModeBestEffort, ctx)
}

// Custom creates a chain whose continue decision is made by pred.
func Custom[C any](ctx C, pred Predicate) *Chain[C] {
	c := New(ModeCustom, ctx)
	c.policy.Continue = pred
	return c
}

// AddEvent appends an event. Registration order is execution order.
func (c *Chain[C]) AddEvent(ev Event[C]) *Chain[C] {
	c.events = append(c.events, ev)
	return c
}

// Use appends a middleware. The first registered middleware is the outermost.
func (c *Chain[C]) Use(mw Middleware[C]) *Chain[C] {
	c.middleware = append(c.middleware, mw)
	return c
}

// OnFailure registers the failure observer.
func (c *Chain[C]) OnFailure(fn Observer) *Chain[C] {
	c.policy.Observer = fn
	return c
}

// ShouldContinue registers the predicate used in ModeCustom.
func (c *Chain[C]) ShouldContinue(pred Predicate) *Chain[C] {
	c.policy.Continue = pred
	return c
}

// Context returns the chain's context.
func (c *Chain[C]) Context() C {
	return c.ctx
}

// Policy returns the chain's fault-tolerance configuration.
func (c *Chain[C]) Policy() Policy {
	return c.policy
}

// Len returns the number of registered events.
func (c *Chain[C]) Len() int {
	return len(c.events)
}

// Names returns the registered event names in execution order.
func (c *Chain[C]) Names() []string {
	names := make([]string, len(c.events))
	for i, ev := range c.events {
		names[i] = ev.Name()
	}
	return names
}

// Execute runs every event through the middleware pipeline.
//
// A failing event is recorded, reported to the observer, and then the policy
// decides: continuing leads to StatusPartial once all events have run,
// stopping returns StatusFailure immediately and skips the remaining events.
func (c *Chain[C]) Execute() ChainResult[C] {
	c.failures = nil

	run := c.pipeline()

	for _, ev := range c.events {
		res := c.invoke(run, ev)
		if res.OK() {
			continue
		}

		c.failures = append(c.failures, EventFailure{
			Event:   ev.Name(),
			Message: res.Message(),
			Err:     res.Err(),
		})

		c.policy.HandleFailure(ev, res.Err())

		if !c.policy.ShouldContinue(ev, res.Err()) {
			return ChainResult[C]{Status: StatusFailure, Context: c.ctx, Failures: c.failures}
		}
	}

	if len(c.failures) == 0 {
		return ChainResult[C]{Status: StatusSuccess, Context: c.ctx}
	}
	return ChainResult[C]{Status: StatusPartial, Context: c.ctx, Failures: c.failures}
}

// pipeline folds the middleware around the raw event call, last registered
// innermost.
func (c *Chain[C]) pipeline() Handler[C] {
	h := Handler[C](func(ev Event[C], ctx C) Result {
		return ev.Execute(ctx)
	})
	for i := len(c.middleware) - 1; i >= 0; i-- {
		h = c.middleware[i](h)
	}
	return h
}

// invoke runs one event and converts a panic into a failure so nothing
// escapes Execute.
func (c *Chain[C]) invoke(h Handler[C], ev Event[C]) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failure(fmt.Errorf("%w: %s: %v", ErrEventPanic, ev.Name(), r))
		}
	}()
	return h(ev, c.ctx)
}
