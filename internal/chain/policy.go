package chain

import (
	"fmt"
	"strings"
)

// Mode selects how a chain reacts to a failing event.
type Mode int

const (
	// ModeStrict stops at the first failure.
	ModeStrict Mode = iota
	// ModeLenient records failures and keeps going.
	ModeLenient
	// ModeBestEffort records failures and keeps going.
	ModeBestEffort
	// ModeCustom delegates the decision to a user predicate.
	ModeCustom
)

// String returns the content-table spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeLenient:
		return "lenient"
	case ModeBestEffort:
		return "best_effort"
	case ModeCustom:
		return "custom"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name. Hyphens and case are tolerated.
func ParseMode(s string) (Mode, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "strict":
		return ModeStrict, nil
	case "lenient":
		return ModeLenient, nil
	case "best_effort", "besteffort":
		return ModeBestEffort, nil
	case "custom":
		return ModeCustom, nil
	}
	return ModeStrict, fmt.Errorf("chain: unknown fault tolerance mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so modes can be read
// straight from YAML content.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Named is anything with a stable display name; every Event is Named.
type Named interface {
	Name() string
}

// Predicate decides whether a chain continues after ev failed with err.
type Predicate func(ev Named, err error) bool

// Observer is notified of every failing event.
type Observer func(ev Named, err error)

// Policy is a chain's fault-tolerance configuration.
type Policy struct {
	Mode     Mode
	Continue Predicate // Consulted only in ModeCustom
	Observer Observer  // Called once per failing event, before the decision
}

// ShouldContinue reports whether execution proceeds past a failure.
// Only ModeCustom looks at its arguments.
func (p Policy) ShouldContinue(ev Named, err error) bool {
	switch p.Mode {
	case ModeStrict:
		return false
	case ModeLenient, ModeBestEffort:
		return true
	case ModeCustom:
		if p.Continue == nil {
			return false
		}
		return p.Continue(ev, err)
	default:
		return false
	}
}

// HandleFailure invokes the observer, if one is registered.
func (p Policy) HandleFailure(ev Named, err error) {
	if p.Observer != nil {
		p.Observer(ev, err)
	}
}
