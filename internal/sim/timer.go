package sim

import "math"

// Timer is a countdown measured in simulated seconds.
// A repeating timer restarts on completion and keeps any time that
// overshot the period, so spawns do not drift with the frame rate.
type Timer struct {
	period        float64
	elapsed       float64
	repeating     bool
	finished      bool
	timesFinished int
}

// NewRepeatingTimer creates a timer that completes every period seconds.
func NewRepeatingTimer(period float64) *Timer {
	return &Timer{period: period, repeating: true}
}

// Tick advances the timer and reports whether it completed during this tick.
// A single tick reports at most one completion even if dt spans several periods;
// TimesFinished tells how many were folded into it.
func (t *Timer) Tick(dt float64) bool {
	t.timesFinished = 0
	if t.finished && !t.repeating {
		return false
	}

	t.elapsed += dt
	if t.elapsed < t.period {
		return false
	}

	if t.repeating {
		t.timesFinished = int(t.elapsed / t.period)
		t.elapsed = math.Mod(t.elapsed, t.period)
	} else {
		t.timesFinished = 1
		t.elapsed = t.period
		t.finished = true
	}
	return true
}

// TimesFinished returns the number of completions folded into the last Tick.
func (t *Timer) TimesFinished() int {
	return t.timesFinished
}

// Elapsed returns the time accumulated toward the next completion.
func (t *Timer) Elapsed() float64 {
	return t.elapsed
}

// Remaining returns the time left until the next completion.
func (t *Timer) Remaining() float64 {
	return t.period - t.elapsed
}

// Period returns the countdown length.
func (t *Timer) Period() float64 {
	return t.period
}

// Reset restarts the countdown from its full period.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.timesFinished = 0
}
