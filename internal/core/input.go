package core

import "strings"

// Action represents a semantic input action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up
	ActionDuck           // S, Down - fast fall while airborne
	ActionPause          // P - host only, never seen by the simulation
	ActionRestart        // R - start a new session after termination
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionDuck:
		return "Duck"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions currently held for one simulation frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an input frame with the given actions held.
func NewInputFrame(held ...Action) InputFrame {
	f := InputFrame{Actions: make(map[Action]bool, len(held))}
	for _, a := range held {
		f.Actions[a] = true
	}
	return f
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear releases every action.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		if v {
			clone.Actions[k] = true
		}
	}
	return clone
}

// String renders the held simulation actions compactly, e.g. "jump+duck" or "-".
func (f InputFrame) String() string {
	var parts []string
	if f.Has(ActionJump) {
		parts = append(parts, "jump")
	}
	if f.Has(ActionDuck) {
		parts = append(parts, "duck")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "+")
}
