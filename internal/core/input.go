package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - camera pan / menu up
	ActionDown           // S, Down arrow - camera pan / menu down
	ActionLeft           // A, Left arrow - camera pan
	ActionRight          // D, Right arrow - camera pan
	ActionConfirm        // Enter, Space - confirm, start wave
	ActionBack           // Escape, B - deselect / back
	ActionPause          // P - pause/unpause game
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionDebug          // F1, ~ - toggle debug overlay
	ActionSelect1        // Number keys 1..8 pick a tower type or ritual node
	ActionSelect2
	ActionSelect3
	ActionSelect4
	ActionSelect5
	ActionSelect6
	ActionSelect7
	ActionSelect8
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionDebug:
		return "Debug"
	}
	if n, ok := a.SelectIndex(); ok {
		return "Select" + string(rune('1'+n))
	}
	return "Unknown"
}

// SelectAction returns the Select action for a zero-based index.
func SelectAction(index int) Action {
	if index < 0 || index > 7 {
		return ActionNone
	}
	return ActionSelect1 + Action(index)
}

// SelectIndex returns the zero-based index of a Select action.
func (a Action) SelectIndex() (int, bool) {
	if a >= ActionSelect1 && a <= ActionSelect8 {
		return int(a - ActionSelect1), true
	}
	return 0, false
}

// Pointer is the mouse state for one tick, in screen cells.
type Pointer struct {
	X, Y       int
	Valid      bool // A position has been reported at least once
	Click      bool // Left button went down this tick
	RightClick bool // Right button went down this tick
}

// InputFrame represents the polled input state for one simulation tick.
// Key actions are edge-triggered: set when the key went down this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	Pointer Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Selected returns the lowest Select action index pressed this frame.
func (f InputFrame) Selected() (int, bool) {
	for i := 0; i < 8; i++ {
		if f.Has(SelectAction(i)) {
			return i, true
		}
	}
	return 0, false
}

// MovePointer records a new pointer position.
func (f *InputFrame) MovePointer(x, y int) {
	f.Pointer.X = x
	f.Pointer.Y = y
	f.Pointer.Valid = true
}

// Clear resets all edge-triggered input for the next frame.
// The pointer position persists; clicks do not.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer.Click = false
	f.Pointer.RightClick = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = f.Pointer
	return clone
}
