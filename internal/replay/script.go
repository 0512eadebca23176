package replay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Window is a span of simulated time during which an action is held.
// A window with From == To holds the action for exactly one frame.
type Window struct {
	From, To float64
}

// ParseWindow reads "5.875" or "5.8-6.1".
func ParseWindow(s string) (Window, error) {
	s = strings.TrimSpace(s)
	from, to, isRange := strings.Cut(s, "-")
	start, err := strconv.ParseFloat(from, 64)
	if err != nil {
		return Window{}, fmt.Errorf("replay: bad window %q: %w", s, err)
	}
	w := Window{From: start, To: start}
	if isRange {
		end, err := strconv.ParseFloat(to, 64)
		if err != nil {
			return Window{}, fmt.Errorf("replay: bad window %q: %w", s, err)
		}
		if end < start {
			return Window{}, fmt.Errorf("replay: window %q ends before it starts", s)
		}
		w.To = end
	}
	return w, nil
}

// Covers reports whether the frame spanning (prev, now] overlaps w.
func (w Window) Covers(prev, now float64) bool {
	return now >= w.From && prev < w.To
}

// Script is scripted input for headless runs.
type Script struct {
	Jump []Window
	Duck []Window
}

// ParseScript parses jump and duck window lists.
func ParseScript(jump, duck []string) (Script, error) {
	var s Script
	for _, raw := range jump {
		w, err := ParseWindow(raw)
		if err != nil {
			return Script{}, err
		}
		s.Jump = append(s.Jump, w)
	}
	for _, raw := range duck {
		w, err := ParseWindow(raw)
		if err != nil {
			return Script{}, err
		}
		s.Duck = append(s.Duck, w)
	}
	return s, nil
}

// Input returns the actions held for the frame spanning (prev, now].
func (s Script) Input(prev, now float64) core.InputFrame {
	in := core.NewInputFrame()
	for _, w := range s.Jump {
		if w.Covers(prev, now) {
			in.Set(core.ActionJump)
			break
		}
	}
	for _, w := range s.Duck {
		if w.Covers(prev, now) {
			in.Set(core.ActionDuck)
			break
		}
	}
	return in
}
