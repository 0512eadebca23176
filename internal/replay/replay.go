// Package replay records the input a host delivers to a session and plays
// it back through a fresh session to check that the outcome repeats.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/sim"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// ErrEmptyRun is returned by Finish when no frame was recorded.
var ErrEmptyRun = errors.New("replay: no frames recorded")

// Recorder steps a session and keeps every frame's input.
type Recorder struct {
	session *sim.Session
	started time.Time
	frames  []storage.FrameRecord
	last    sim.StepResult
	saved   string
}

// NewRecorder wraps session. The session should not have been stepped yet.
func NewRecorder(session *sim.Session) *Recorder {
	return &Recorder{session: session, started: time.Now()}
}

// Session returns the wrapped session.
func (r *Recorder) Session() *sim.Session {
	return r.session
}

// Step records in and forwards it to the session.
// Frames after termination are not recorded since they change nothing.
func (r *Recorder) Step(in sim.FrameInput) (sim.StepResult, error) {
	if r.session.Terminated() {
		return r.session.Step(in)
	}
	res, err := r.session.Step(in)
	if err != nil {
		return res, err
	}
	r.frames = append(r.frames, storage.FrameRecord{
		Frame:   int(res.Snapshot.Frame),
		Elapsed: in.Elapsed,
		Jump:    in.Input.Has(core.ActionJump),
		Duck:    in.Input.Has(core.ActionDuck),
	})
	r.last = res
	return res, nil
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.frames)
}

// Finish writes the recording to store and returns the run ID.
// Calling Finish again returns the same ID without writing.
func (r *Recorder) Finish(store *storage.Store) (string, error) {
	if r.saved != "" {
		return r.saved, nil
	}
	if len(r.frames) == 0 {
		return "", ErrEmptyRun
	}

	data, err := config.Marshal(r.session.Config())
	if err != nil {
		return "", err
	}
	run := storage.Run{
		ConfigYAML: string(data),
		StartedAt:  r.started,
		Frames:     len(r.frames),
		SimSeconds: r.session.Clock(),
		Terminated: r.last.Terminated,
	}
	if r.last.Terminated {
		run.TerminatedFrame = int(r.last.Snapshot.Frame)
	}

	id, err := store.SaveRun(run, r.frames)
	if err != nil {
		return "", err
	}
	r.saved = id
	return id, nil
}

// Result compares a recorded run with its replay.
type Result struct {
	Run             storage.Run
	Frames          int
	Terminated      bool
	TerminatedFrame int
	SimSeconds      float64
}

// Match reports whether the replay ended the way the recording did.
func (r Result) Match() bool {
	return r.Terminated == r.Run.Terminated &&
		r.TerminatedFrame == r.Run.TerminatedFrame &&
		r.Frames == r.Run.Frames
}

// Verify replays run id through a new session built from the stored config.
func Verify(store *storage.Store, id string, opts ...sim.Option) (Result, error) {
	run, err := store.Run(id)
	if err != nil {
		return Result{}, err
	}
	frames, err := store.Frames(id)
	if err != nil {
		return Result{}, err
	}
	cfg, err := config.Parse([]byte(run.ConfigYAML))
	if err != nil {
		return Result{}, fmt.Errorf("replay: run %s: %w", id, err)
	}

	session, err := sim.NewSession(cfg, opts...)
	if err != nil {
		return Result{}, err
	}

	res := Result{Run: run}
	for _, f := range frames {
		in := sim.FrameInput{Elapsed: f.Elapsed, Input: Input(f)}
		step, err := session.Step(in)
		if err != nil {
			return res, fmt.Errorf("replay: run %s frame %d: %w", id, f.Frame, err)
		}
		res.Frames++
		if step.Terminated {
			res.Terminated = true
			res.TerminatedFrame = int(step.Snapshot.Frame)
			break
		}
	}
	res.SimSeconds = session.Clock()
	return res, nil
}

// Input rebuilds the held actions of a recorded frame.
func Input(f storage.FrameRecord) core.InputFrame {
	in := core.NewInputFrame()
	if f.Jump {
		in.Set(core.ActionJump)
	}
	if f.Duck {
		in.Set(core.ActionDuck)
	}
	return in
}
