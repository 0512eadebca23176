package sim

import "testing"

func TestRepeatingTimerCarriesRemainder(t *testing.T) {
	timer := NewRepeatingTimer(3)

	steps := []struct {
		dt       float64
		fired    bool
		elapsed  float64
		finished int
	}{
		{1, false, 1, 0},
		{1.5, false, 2.5, 0},
		{1, true, 0.5, 1},
		{2, false, 2.5, 0},
		{7, true, 0.5, 3},
		{0, false, 0.5, 0},
	}
	for i, st := range steps {
		if got := timer.Tick(st.dt); got != st.fired {
			t.Errorf("step %d: Tick(%v) = %v, expected %v", i, st.dt, got, st.fired)
		}
		if timer.Elapsed() != st.elapsed {
			t.Errorf("step %d: Elapsed() = %v, expected %v", i, timer.Elapsed(), st.elapsed)
		}
		if timer.TimesFinished() != st.finished {
			t.Errorf("step %d: TimesFinished() = %d, expected %d", i, timer.TimesFinished(), st.finished)
		}
	}

	if timer.Remaining() != 2.5 {
		t.Errorf("Remaining() = %v, expected 2.5", timer.Remaining())
	}
	timer.Reset()
	if timer.Elapsed() != 0 || timer.Period() != 3 {
		t.Errorf("after Reset: Elapsed() = %v, Period() = %v", timer.Elapsed(), timer.Period())
	}
}

func TestTimerFiresOnExactPeriod(t *testing.T) {
	timer := NewRepeatingTimer(3)
	fired := 0
	for range 96 * 2 {
		if timer.Tick(1.0 / 32) {
			fired++
		}
	}
	if fired != 2 {
		t.Errorf("fired %d times in 6s, expected 2", fired)
	}
	if timer.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, expected 0", timer.Elapsed())
	}
}
