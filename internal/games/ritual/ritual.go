package ritual

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/config"
)

// QTE outcomes reported as event failures.
var (
	ErrWrongNode = errors.New("ritual: wrong node")
	ErrTimedOut  = errors.New("ritual: challenge timed out")
	ErrAborted   = errors.New("ritual: aborted")
)

// State is a phase of the ritual state machine.
type State int

const (
	StateInitializing State = iota
	StateReady
	StateWaiting
	StateDelay
	StateCompleting
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateWaiting:
		return "waiting_for_input"
	case StateDelay:
		return "qte_delay"
	case StateCompleting:
		return "completing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Challenge is the one QTE currently waiting for the player.
type Challenge struct {
	Node    int
	Spawned int // Tick the challenge appeared
	Window  int // Ticks allowed
}

// Remaining returns the ticks left at now, never negative.
func (c Challenge) Remaining(now int) int {
	return max(c.Window-(now-c.Spawned), 0)
}

// Outcome describes what a call to Attempt or Advance changed, so callers can
// react with feedback.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSpawned
	OutcomeHit
	OutcomeMiss
	OutcomeCompleted
	OutcomeFailed
)

// Window returns the QTE window for difficulty. Each level above 1 removes
// WindowStep ticks, never going below MinWindow.
func Window(q config.QTEConfig, difficulty int) int {
	return max(q.BaseWindow-(difficulty-1)*q.WindowStep, q.MinWindow)
}

// MissCap returns how many misses end a ritual; 0 means never.
// An explicit max_misses in content wins over the mode default.
func MissCap(def config.RitualDef) int {
	if def.MaxMisses > 0 {
		return def.MaxMisses
	}
	switch def.FaultTolerance {
	case chain.ModeStrict:
		return 1
	case chain.ModeLenient, chain.ModeCustom:
		return 3
	}
	return 0
}

// ActiveRitual is one attempt at a ritual. It is driven by Attempt and
// Advance from the gameplay chain and never looks at input itself.
type ActiveRitual struct {
	Def     config.RitualDef
	content config.RitualsContent

	nodes     []Node
	state     State
	step      int
	hits      int
	misses    int
	timeBonus int
	pending   Challenge
	delayEnd  int
	lastNode  int

	started  int
	finished int
	score    int
	err      error

	rng *rand.Rand
	log *log.Logger
}

// Start sets up def at tick now. A setup failure yields a ritual that is
// already failed; Err reports why.
func Start(def config.RitualDef, content config.RitualsContent, now int, rng *rand.Rand, logger *log.Logger, mw ...chain.Middleware[*SetupContext]) *ActiveRitual {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := &ActiveRitual{
		Def:      def,
		content:  content,
		state:    StateInitializing,
		started:  now,
		lastNode: -1,
		rng:      rng,
		log:      logger.With("ritual", def.Name),
	}

	nodes, err := Setup(def, content.Circle, mw...)
	if err != nil {
		r.fail(now, err)
		r.log.Error("ritual setup failed", "err", err)
		return r
	}
	r.nodes = nodes
	r.state = StateReady
	r.log.Debug("ritual ready", "nodes", len(nodes), "mode", def.FaultTolerance, "window", r.Window())
	return r
}

// Window returns this ritual's QTE window in ticks.
func (r *ActiveRitual) Window() int {
	return Window(r.content.QTE, r.Def.Difficulty)
}

// Attempt resolves a player pick of node at tick now. Picks outside the
// waiting state are ignored.
func (r *ActiveRitual) Attempt(node, now int) (Outcome, error) {
	if r.state != StateWaiting {
		return OutcomeNone, nil
	}
	if node != r.pending.Node {
		return r.miss(now, fmt.Errorf("%w: picked %d, wanted %d (%s)", ErrWrongNode, node, r.pending.Node, r.Required()))
	}
	return r.hit(now), nil
}

// Advance moves the timers forward to tick now: spawning the first or next
// challenge, expiring the pending one, and finalising the score.
func (r *ActiveRitual) Advance(now int) (Outcome, error) {
	switch r.state {
	case StateReady:
		return r.spawn(now)
	case StateWaiting:
		if now-r.pending.Spawned >= r.pending.Window {
			return r.miss(now, fmt.Errorf("%w after %d ticks (%s)", ErrTimedOut, r.pending.Window, r.Required()))
		}
	case StateDelay:
		if now < r.delayEnd {
			return OutcomeNone, nil
		}
		if r.step >= len(r.Def.Sequence) {
			r.state = StateCompleting
			return OutcomeNone, nil
		}
		return r.spawn(now)
	case StateCompleting:
		r.score = r.computeScore()
		r.finished = now
		r.state = StateCompleted
		r.log.Info("ritual completed", "score", r.score, "hits", r.hits, "misses", r.misses, "ticks", now-r.started)
		return OutcomeCompleted, nil
	}
	return OutcomeNone, nil
}

// Abort abandons the ritual.
func (r *ActiveRitual) Abort(now int) {
	if r.state == StateCompleted || r.state == StateFailed {
		return
	}
	r.fail(now, ErrAborted)
}

func (r *ActiveRitual) spawn(now int) (Outcome, error) {
	required := r.Required()
	ids := matching(r.nodes, required)
	if len(ids) == 0 {
		err := fmt.Errorf("%w: %q", ErrNoMatchingNode, required)
		r.fail(now, err)
		return OutcomeFailed, err
	}

	id := ids[r.rng.Intn(len(ids))]
	r.nodes[id].State = NodePending
	r.pending = Challenge{Node: id, Spawned: now, Window: r.Window()}
	r.state = StateWaiting
	return OutcomeSpawned, nil
}

func (r *ActiveRitual) hit(now int) Outcome {
	elapsed := now - r.pending.Spawned
	ratio := 1 - float64(elapsed)/float64(r.pending.Window)
	bonus := int(math.Floor(float64(r.content.QTE.SpeedBonus) * ratio))

	r.timeBonus += max(bonus, 0)
	r.hits++
	r.nodes[r.pending.Node].State = NodeCompleted
	r.log.Debug("qte hit", "step", r.step+1, "elapsed", elapsed, "bonus", bonus)
	r.next(now)
	return OutcomeHit
}

func (r *ActiveRitual) miss(now int, err error) (Outcome, error) {
	r.misses++
	r.nodes[r.pending.Node].State = NodeFailed
	r.log.Info("qte missed", "step", r.step+1, "misses", r.misses, "err", err)

	if limit := MissCap(r.Def); limit > 0 && r.misses >= limit {
		r.lastNode = r.pending.Node
		r.step++
		r.fail(now, err)
		return OutcomeFailed, err
	}
	r.next(now)
	return OutcomeMiss, err
}

// next closes the pending challenge and starts the inter-challenge delay.
func (r *ActiveRitual) next(now int) {
	r.lastNode = r.pending.Node
	r.step++
	r.delayEnd = now + r.content.QTE.Delay
	r.state = StateDelay
}

func (r *ActiveRitual) fail(now int, err error) {
	r.err = err
	r.finished = now
	r.state = StateFailed
}

func (r *ActiveRitual) computeScore() int {
	s := r.content.Scoring
	total := float64(s.Base + r.timeBonus)
	if attempts := r.hits + r.misses; attempts > 0 {
		total += float64(s.Accuracy*r.hits) / float64(attempts)
	}
	if r.misses == 0 {
		total += float64(s.Perfect)
	}
	return int(total * (1 + float64(r.Def.Difficulty)*s.DifficultyFactor))
}

// Required returns the element the current step asks for, or "" once the
// sequence is exhausted.
func (r *ActiveRitual) Required() string {
	if r.step >= len(r.Def.Sequence) {
		return ""
	}
	return r.Def.Sequence[r.step]
}

// State returns the current phase.
func (r *ActiveRitual) State() State { return r.state }

// Step returns how many sequence steps have been resolved.
func (r *ActiveRitual) Step() int { return r.step }

// Hits returns the number of successful challenges.
func (r *ActiveRitual) Hits() int { return r.hits }

// Misses returns the number of failed challenges.
func (r *ActiveRitual) Misses() int { return r.misses }

// TimeBonus returns the speed bonus accumulated so far.
func (r *ActiveRitual) TimeBonus() int { return r.timeBonus }

// Nodes returns the circle nodes.
func (r *ActiveRitual) Nodes() []Node { return r.nodes }

// Pending returns the active challenge, if one is waiting.
func (r *ActiveRitual) Pending() (Challenge, bool) {
	return r.pending, r.state == StateWaiting
}

// LastNode returns the node resolved most recently, or -1.
func (r *ActiveRitual) LastNode() int { return r.lastNode }

// Completed reports whether the ritual finished successfully.
func (r *ActiveRitual) Completed() bool { return r.state == StateCompleted }

// Failed reports whether the ritual ended without completing.
func (r *ActiveRitual) Failed() bool { return r.state == StateFailed }

// Perfect reports a completed ritual with no misses.
func (r *ActiveRitual) Perfect() bool { return r.Completed() && r.misses == 0 }

// Score returns the final score; zero until completed.
func (r *ActiveRitual) Score() int { return r.score }

// Duration returns the ticks from start to the end state, or 0 while running.
func (r *ActiveRitual) Duration() int {
	if r.state != StateCompleted && r.state != StateFailed {
		return 0
	}
	return r.finished - r.started
}

// Err returns the reason the ritual failed.
func (r *ActiveRitual) Err() error { return r.err }
