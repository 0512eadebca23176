package tui

import (
	"time"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// DefaultHoldWindow is how long a key press keeps its action held.
// Terminal auto-repeat refreshes it while the key stays down.
const DefaultHoldWindow = 150 * time.Millisecond

// DefaultDuckHoldWindow bridges the auto-repeat delay (250-500ms on most
// terminals) so a held Duck key acts on every frame. Jump keeps the short
// window since a lingering jump fires again on landing.
const DefaultDuckHoldWindow = 500 * time.Millisecond

// HoldTracker turns key presses into held actions.
// Terminals report presses and auto-repeats but never releases, so an
// action counts as held until its window passes without another press.
type HoldTracker struct {
	window  time.Duration
	windows map[core.Action]time.Duration
	until   map[core.Action]time.Time
}

// NewHoldTracker creates a tracker. A non-positive window uses DefaultHoldWindow.
func NewHoldTracker(window time.Duration) *HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldTracker{
		window:  window,
		windows: map[core.Action]time.Duration{core.ActionDuck: DefaultDuckHoldWindow},
		until:   make(map[core.Action]time.Time),
	}
}

// SetWindow overrides the hold window for a. A non-positive window
// falls back to the tracker's default.
func (h *HoldTracker) SetWindow(a core.Action, window time.Duration) {
	if window <= 0 {
		delete(h.windows, a)
		return
	}
	h.windows[a] = window
}

// Press marks a as held from now until its window expires.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	window, ok := h.windows[a]
	if !ok {
		window = h.window
	}
	h.until[a] = now.Add(window)
}

// Frame returns the actions still held at now and forgets expired ones.
func (h *HoldTracker) Frame(now time.Time) core.InputFrame {
	frame := core.NewInputFrame()
	for a, deadline := range h.until {
		if now.Before(deadline) {
			frame.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	return frame
}

// Release drops every held action.
func (h *HoldTracker) Release() {
	clear(h.until)
}
