package sim

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// ErrInvalidElapsed is returned by Step for negative, NaN or infinite elapsed time.
// It signals a host fault and is never used for the end of a session.
var ErrInvalidElapsed = errors.New("sim: invalid elapsed time")

// FrameInput is what the host supplies before each frame.
type FrameInput struct {
	Elapsed float64         // seconds since the previous frame, >= 0
	Input   core.InputFrame // held actions; only Jump and Duck are read
}

// StepResult is what the host reads back after each frame.
type StepResult struct {
	Snapshot   Snapshot
	Terminated bool   // set once the player touched an obstacle; stays set
	Hit        Entity // the obstacle that ended the session, NoEntity while running
}

// Session is one continuous run from player creation to termination.
// It owns all mutable simulation state, including the spawn timer, so
// independent sessions never share anything.
type Session struct {
	cfg        config.RunnerConfig
	world      *World
	player     Entity
	spawnTimer *Timer
	scheduler  *Scheduler
	logger     *log.Logger
	workers    int

	frame      uint64
	clock      float64
	terminated bool
	hit        Entity
	spawned    int
	despawned  int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithParallel runs sibling systems on up to workers goroutines per tier.
func WithParallel(workers int) Option {
	return func(s *Session) {
		s.workers = workers
	}
}

// NewSession validates cfg, creates the player at rest on the ground and
// compiles the frame schedule.
func NewSession(cfg config.RunnerConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: cannot start session: %w", err)
	}

	s := &Session{
		cfg:        cfg,
		world:      NewWorld(),
		spawnTimer: NewRepeatingTimer(cfg.ObstacleSpawnPeriod),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.player = s.world.Create()
	s.world.Positions.Set(s.player, Position{X: cfg.PlayerX(), Y: cfg.RestingHeight()})
	s.world.Extents.Set(s.player, Extent{W: cfg.Player.Width, H: cfg.Player.Height})
	s.world.VerticalVelocities.Set(s.player, 0)
	s.world.GroundStates.Set(s.player, OnGround)

	sched, err := newFrameSchedule(s.workers)
	if err != nil {
		return nil, fmt.Errorf("sim: cannot build schedule: %w", err)
	}
	s.scheduler = sched

	s.logger.Debug("session started",
		"playfield", fmt.Sprintf("%vx%v", cfg.PlayfieldWidth, cfg.PlayfieldHeight),
		"speed", cfg.BaseObstacleSpeed,
		"spawn_period", cfg.ObstacleSpawnPeriod,
		"workers", s.workers,
	)
	return s, nil
}

// newFrameSchedule wires every system into the phase graph:
//
//	obstacles -> despawn ---------------------.
//	modifiers -> integrate -> ground -> collide
func newFrameSchedule(workers int) (*Scheduler, error) {
	sched := NewScheduler(workers)
	sched.AddPhase(PhaseObstacles)
	sched.AddPhase(PhaseDespawn, PhaseObstacles)
	sched.AddPhase(PhaseModifiers)
	sched.AddPhase(PhaseIntegrate, PhaseModifiers)
	sched.AddPhase(PhaseGround, PhaseIntegrate)
	sched.AddPhase(PhaseCollide, PhaseGround, PhaseDespawn)

	for _, group := range [][]System{ObstacleSystems(), MotionSystems(), CollisionSystems()} {
		for _, sys := range group {
			sched.AddSystem(sys)
		}
	}
	if err := sched.Compile(); err != nil {
		return nil, err
	}
	return sched, nil
}

// Step advances the simulation by one frame.
// After termination Step does nothing and keeps returning the final result.
func (s *Session) Step(in FrameInput) (StepResult, error) {
	dt := in.Elapsed
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return s.result(), fmt.Errorf("%w: %v", ErrInvalidElapsed, dt)
	}
	if s.terminated {
		return s.result(), nil
	}

	s.frame++
	s.clock += dt

	base := Context{Dt: dt, Input: in.Input, Session: s}
	if err := s.scheduler.Run(base, s.apply); err != nil {
		return s.result(), fmt.Errorf("sim: frame %d: %w", s.frame, err)
	}
	return s.result(), nil
}

// apply performs the deferred writes of one system at a barrier.
func (s *Session) apply(cb *CommandBuffer) {
	w := s.world
	for _, c := range cb.cmds {
		switch c.kind {
		case cmdSpawnObstacle:
			e := w.spawnObstacle(c.spawn)
			s.spawned++
			s.logger.Debug("obstacle spawned", "entity", e, "x", c.spawn.X, "t", s.clock)
		case cmdDestroy:
			if w.Destroy(c.entity) {
				s.despawned++
				s.logger.Debug("obstacle despawned", "entity", c.entity, "t", s.clock)
			}
		case cmdSetVerticalVelocity:
			w.VerticalVelocities.Set(c.entity, VerticalVelocity(c.value))
		case cmdAddVerticalVelocity:
			v, _ := w.VerticalVelocities.Get(c.entity)
			w.VerticalVelocities.Set(c.entity, v+VerticalVelocity(c.value))
		case cmdSetGroundState:
			w.GroundStates.Set(c.entity, c.ground)
		case cmdTerminate:
			if !s.terminated {
				s.terminated = true
				s.hit = c.entity
				s.logger.Info("session over", "frame", s.frame, "t", s.clock, "obstacle", c.entity)
			}
		}
	}
}

func (s *Session) result() StepResult {
	return StepResult{
		Snapshot:   s.Snapshot(),
		Terminated: s.terminated,
		Hit:        s.hit,
	}
}

// Terminated reports whether the session is over.
func (s *Session) Terminated() bool {
	return s.terminated
}

// Config returns the session's fixed configuration.
func (s *Session) Config() config.RunnerConfig {
	return s.cfg
}

// Frame returns the number of frames simulated.
func (s *Session) Frame() uint64 {
	return s.frame
}

// Clock returns the simulated seconds elapsed.
func (s *Session) Clock() float64 {
	return s.clock
}

// Stats returns how many obstacles were spawned and despawned so far.
func (s *Session) Stats() (spawned, despawned int) {
	return s.spawned, s.despawned
}

// Layout returns the compiled phase tiers, for diagnostics.
func (s *Session) Layout() [][]Phase {
	return s.scheduler.Layout()
}
