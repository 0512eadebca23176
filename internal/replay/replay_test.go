package replay

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/sim"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func record(t *testing.T, cfg config.RunnerConfig, frames int, jumpFrame int) *Recorder {
	t.Helper()
	session, err := sim.NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	rec := NewRecorder(session)
	for f := 1; f <= frames; f++ {
		in := core.NewInputFrame()
		if f == jumpFrame {
			in.Set(core.ActionJump)
		}
		if _, err := rec.Step(sim.FrameInput{Elapsed: 1.0 / 32, Input: in}); err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
	}
	return rec
}

func TestRecordAndVerifyCollision(t *testing.T) {
	store := openStore(t)
	rec := record(t, config.DefaultRunnerConfig(), 300, 0)

	// Frames after the collision are not journaled.
	if rec.Len() != 197 {
		t.Errorf("Len() = %d, expected 197", rec.Len())
	}

	id, err := rec.Finish(store)
	if err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}
	again, _ := rec.Finish(store)
	if again != id {
		t.Errorf("second Finish() = %q, expected %q", again, id)
	}

	res, err := Verify(store, id)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if !res.Match() {
		t.Errorf("Verify() = %+v, expected a match", res)
	}
	if res.TerminatedFrame != 197 {
		t.Errorf("TerminatedFrame = %d, expected 197", res.TerminatedFrame)
	}
}

func TestVerifySurvivingRunWithParallelSchedule(t *testing.T) {
	store := openStore(t)
	cfg := config.DefaultRunnerConfig()
	config.ApplyPreset(&cfg, config.DifficultyEasy)
	rec := record(t, cfg, 128, 40)

	id, err := rec.Finish(store)
	if err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}

	res, err := Verify(store, id, sim.WithParallel(3))
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if !res.Match() || res.Terminated {
		t.Errorf("Verify() = %+v, expected a surviving match", res)
	}
	if res.SimSeconds != 4 {
		t.Errorf("SimSeconds = %v, expected 4", res.SimSeconds)
	}
}

func TestFinishEmptyRun(t *testing.T) {
	store := openStore(t)
	session, _ := sim.NewSession(config.DefaultRunnerConfig())
	if _, err := NewRecorder(session).Finish(store); !errors.Is(err, ErrEmptyRun) {
		t.Errorf("Finish() error = %v, expected ErrEmptyRun", err)
	}
}

func TestVerifyUnknownRun(t *testing.T) {
	store := openStore(t)
	if _, err := Verify(store, "nope"); !errors.Is(err, storage.ErrRunNotFound) {
		t.Errorf("Verify() error = %v, expected ErrRunNotFound", err)
	}
}

func TestInput(t *testing.T) {
	in := Input(storage.FrameRecord{Jump: true})
	if !in.Has(core.ActionJump) || in.Has(core.ActionDuck) {
		t.Errorf("Input() = %v, expected jump only", in)
	}
}

func TestVerifyDoesNotUseDefaultLogger(t *testing.T) {
	store := openStore(t)
	id, err := record(t, config.DefaultRunnerConfig(), 40, 0).Finish(store)
	if err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}

	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	defer log.SetDefault(prev)

	if _, err := Verify(store, id); err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Verify() wrote to the default logger: %q", buf.String())
	}
}
