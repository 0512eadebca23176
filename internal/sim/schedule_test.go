package sim

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestFrameScheduleLayout(t *testing.T) {
	sched, err := newFrameSchedule(1)
	if err != nil {
		t.Fatalf("newFrameSchedule() error = %v", err)
	}

	expected := [][]Phase{
		{PhaseObstacles, PhaseModifiers},
		{PhaseDespawn, PhaseIntegrate},
		{PhaseGround},
		{PhaseCollide},
	}
	if got := sched.Layout(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Layout() = %v, expected %v", got, expected)
	}
}

func TestSchedulerDetectsCycle(t *testing.T) {
	sched := NewScheduler(1)
	sched.AddPhase(PhaseObstacles, PhaseCollide)
	sched.AddPhase(PhaseCollide, PhaseObstacles)

	if err := sched.Compile(); !errors.Is(err, ErrPhaseCycle) {
		t.Errorf("Compile() error = %v, expected ErrPhaseCycle", err)
	}
}

func TestSchedulerRejectsUnknownPhase(t *testing.T) {
	sched := NewScheduler(1)
	sched.AddPhase(PhaseObstacles)
	sched.AddSystem(System{Name: "stray", Phase: PhaseGround, Run: func(*Context) {}})
	if err := sched.Compile(); !errors.Is(err, ErrUnknownPhase) {
		t.Errorf("Compile() error = %v, expected ErrUnknownPhase", err)
	}

	sched = NewScheduler(1)
	sched.AddPhase(PhaseDespawn, PhaseObstacles)
	if err := sched.Compile(); !errors.Is(err, ErrUnknownPhase) {
		t.Errorf("Compile() with dangling edge error = %v, expected ErrUnknownPhase", err)
	}
}

// recordingScheduler builds a two-tier schedule whose systems log when
// they run and when their commands are applied.
func recordingScheduler(workers int) (*Scheduler, *[]string, func(*CommandBuffer)) {
	var (
		mu  sync.Mutex
		log []string
	)
	record := func(s string) {
		mu.Lock()
		log = append(log, s)
		mu.Unlock()
	}

	sched := NewScheduler(workers)
	sched.AddPhase(PhaseModifiers)
	sched.AddPhase(PhaseIntegrate, PhaseModifiers)
	for _, name := range []string{"a", "b", "c"} {
		sched.AddSystem(System{Name: name, Phase: PhaseModifiers, Run: func(ctx *Context) {
			record("run " + name)
			ctx.Commands.Terminate(NoEntity)
		}})
	}
	sched.AddSystem(System{Name: "d", Phase: PhaseIntegrate, Run: func(ctx *Context) {
		record("run d")
	}})

	applied := 0
	apply := func(cb *CommandBuffer) {
		if cb.Len() > 0 {
			applied++
			record("apply " + string(rune('0'+applied)))
		}
	}
	return sched, &log, apply
}

func TestSchedulerBarrierOrder(t *testing.T) {
	for _, workers := range []int{1, 4} {
		sched, log, apply := recordingScheduler(workers)
		if err := sched.Run(Context{}, apply); err != nil {
			t.Fatalf("workers=%d: Run() error = %v", workers, err)
		}

		got := *log
		if len(got) != 7 {
			t.Fatalf("workers=%d: log = %v, expected 7 entries", workers, got)
		}
		// Siblings may interleave, but every run precedes the barrier.
		for _, entry := range got[:3] {
			if entry[:3] != "run" {
				t.Errorf("workers=%d: tier 0 log = %v, expected runs first", workers, got[:3])
				break
			}
		}
		tail := []string{"apply 1", "apply 2", "apply 3", "run d"}
		if !reflect.DeepEqual(got[3:], tail) {
			t.Errorf("workers=%d: log tail = %v, expected %v", workers, got[3:], tail)
		}
	}
}

func TestSchedulerClearsBuffersEachFrame(t *testing.T) {
	sched, _, _ := recordingScheduler(1)
	total := 0
	apply := func(cb *CommandBuffer) { total += cb.Len() }

	for range 3 {
		if err := sched.Run(Context{}, apply); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}
	if total != 9 {
		t.Errorf("applied %d commands over 3 frames, expected 9", total)
	}
}
