package sim

import "github.com/vovakirdan/tui-runner/internal/core"

// EntityView is the drawable state of one entity.
type EntityView struct {
	Entity Entity
	Kind   EntityKind
	Box    core.Box
}

// PlayerView adds the motion state to the player's drawable state.
type PlayerView struct {
	EntityView
	Ground   GroundState
	Velocity float64
}

// Snapshot is a read-only copy of every live entity after a frame.
type Snapshot struct {
	Frame     uint64
	Time      float64
	Player    PlayerView
	Obstacles []EntityView
}

// Entities returns the player followed by every obstacle.
func (s Snapshot) Entities() []EntityView {
	out := make([]EntityView, 0, len(s.Obstacles)+1)
	out = append(out, s.Player.EntityView)
	return append(out, s.Obstacles...)
}

// Snapshot copies the current state of the world.
func (s *Session) Snapshot() Snapshot {
	w := s.world
	box, _ := w.Box(s.player)
	ground, _ := w.GroundStates.Get(s.player)
	vel, _ := w.VerticalVelocities.Get(s.player)

	snap := Snapshot{
		Frame: s.frame,
		Time:  s.clock,
		Player: PlayerView{
			EntityView: EntityView{Entity: s.player, Kind: KindPlayer, Box: box},
			Ground:     ground,
			Velocity:   float64(vel),
		},
		Obstacles: make([]EntityView, 0, w.Obstacles.Len()),
	}
	for e := range w.Obstacles.All() {
		if b, ok := w.Box(e); ok {
			snap.Obstacles = append(snap.Obstacles, EntityView{Entity: e, Kind: KindObstacle, Box: b})
		}
	}
	return snap
}
