package sim

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Phase is a named stage of the per-frame pipeline.
type Phase int

const (
	PhaseObstacles Phase = iota // spawn timer, obstacle spawn and translation
	PhaseDespawn                // off-screen obstacle removal
	PhaseModifiers              // jump, duck and gravity
	PhaseIntegrate              // vertical position integration
	PhaseGround                 // landing detection
	PhaseCollide                // player vs obstacle overlap
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseObstacles:
		return "obstacles"
	case PhaseDespawn:
		return "despawn"
	case PhaseModifiers:
		return "modifiers"
	case PhaseIntegrate:
		return "integrate"
	case PhaseGround:
		return "ground"
	case PhaseCollide:
		return "collide"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	// ErrPhaseCycle is returned by Compile when the phase edges form a cycle.
	ErrPhaseCycle = errors.New("sim: phase ordering has a cycle")
	// ErrUnknownPhase is returned by Compile when a system or edge names an undeclared phase.
	ErrUnknownPhase = errors.New("sim: unknown phase")
)

// Context is what a system sees while it runs.
type Context struct {
	Dt       float64
	Input    core.InputFrame
	Session  *Session
	Commands *CommandBuffer
}

// World returns the session's component store.
func (c *Context) World() *World { return c.Session.world }

// Player returns the session's player handle.
func (c *Context) Player() Entity { return c.Session.player }

// System is a unit of per-frame work bound to a phase.
// Systems in the same tier are unordered siblings: they may read any
// component but must only write through Commands, or directly to
// components of entities no sibling touches.
type System struct {
	Name  string
	Phase Phase
	Run   func(ctx *Context)
}

type systemNode struct {
	sys      System
	commands CommandBuffer
}

// Scheduler runs systems in a partial order of phases.
// Phases connected by an edge run strictly in order with a barrier
// between them; phases without a path between them may share a tier.
type Scheduler struct {
	phases  []Phase
	after   map[Phase][]Phase
	nodes   []*systemNode
	tiers   [][]*systemNode
	layout  [][]Phase
	workers int
}

// NewScheduler creates a scheduler. With workers > 1, the systems of a
// tier run concurrently on up to that many goroutines.
func NewScheduler(workers int) *Scheduler {
	return &Scheduler{
		after:   make(map[Phase][]Phase),
		workers: workers,
	}
}

// AddPhase declares a phase that must run strictly after each of deps.
func (s *Scheduler) AddPhase(p Phase, deps ...Phase) {
	if !slices.Contains(s.phases, p) {
		s.phases = append(s.phases, p)
	}
	s.after[p] = append(s.after[p], deps...)
	s.tiers = nil
}

// AddSystem registers a system. Registration order fixes the order in
// which command buffers are applied at each barrier.
func (s *Scheduler) AddSystem(sys System) {
	s.nodes = append(s.nodes, &systemNode{sys: sys})
	s.tiers = nil
}

// Compile layers the phases into tiers with Kahn's algorithm.
func (s *Scheduler) Compile() error {
	indegree := make(map[Phase]int, len(s.phases))
	next := make(map[Phase][]Phase, len(s.phases))
	for _, p := range s.phases {
		indegree[p] = 0
		for _, dep := range s.after[p] {
			if !slices.Contains(s.phases, dep) {
				return fmt.Errorf("%w: %v depends on undeclared %v", ErrUnknownPhase, p, dep)
			}
			indegree[p]++
			next[dep] = append(next[dep], p)
		}
	}
	for _, n := range s.nodes {
		if !slices.Contains(s.phases, n.sys.Phase) {
			return fmt.Errorf("%w: system %q uses undeclared %v", ErrUnknownPhase, n.sys.Name, n.sys.Phase)
		}
	}

	var layout [][]Phase
	placed := 0
	for placed < len(s.phases) {
		var tier []Phase
		for _, p := range s.phases {
			if indegree[p] == 0 {
				tier = append(tier, p)
			}
		}
		if len(tier) == 0 {
			return ErrPhaseCycle
		}
		slices.Sort(tier)
		for _, p := range tier {
			indegree[p] = -1
			for _, q := range next[p] {
				indegree[q]--
			}
		}
		placed += len(tier)
		layout = append(layout, tier)
	}

	tiers := make([][]*systemNode, len(layout))
	for i, phases := range layout {
		for _, n := range s.nodes {
			if slices.Contains(phases, n.sys.Phase) {
				tiers[i] = append(tiers[i], n)
			}
		}
	}

	s.layout = layout
	s.tiers = tiers
	return nil
}

// Layout returns the compiled tiers of phases.
func (s *Scheduler) Layout() [][]Phase {
	return s.layout
}

// Run executes one frame: every tier in order, with a barrier after each
// that hands the tier's command buffers to apply in registration order.
func (s *Scheduler) Run(base Context, apply func(*CommandBuffer)) error {
	if s.tiers == nil {
		if err := s.Compile(); err != nil {
			return err
		}
	}

	for _, tier := range s.tiers {
		for _, n := range tier {
			n.commands.reset()
		}

		if s.workers > 1 && len(tier) > 1 {
			var g errgroup.Group
			g.SetLimit(s.workers)
			for _, n := range tier {
				g.Go(func() error {
					ctx := base
					ctx.Commands = &n.commands
					n.sys.Run(&ctx)
					return nil
				})
			}
			// Barrier
			if err := g.Wait(); err != nil {
				return err
			}
		} else {
			for _, n := range tier {
				ctx := base
				ctx.Commands = &n.commands
				n.sys.Run(&ctx)
			}
		}

		for _, n := range tier {
			apply(&n.commands)
		}
	}
	return nil
}
