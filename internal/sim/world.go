package sim

import "github.com/vovakirdan/tui-runner/internal/core"

// World owns the entity pool and one Store per component kind.
// Entities are plain handles; nothing in the world holds pointers to another entity.
type World struct {
	pool *entityPool

	Positions            *Store[Position]
	Extents              *Store[Extent]
	VerticalVelocities   *Store[VerticalVelocity]
	GroundStates         *Store[GroundState]
	Obstacles            *Store[ObstacleTag]
	HorizontalVelocities *Store[HorizontalVelocity]

	stores []remover
}

// NewWorld creates an empty world.
func NewWorld() *World {
	w := &World{
		pool:                 newEntityPool(),
		Positions:            NewStore[Position](),
		Extents:              NewStore[Extent](),
		VerticalVelocities:   NewStore[VerticalVelocity](),
		GroundStates:         NewStore[GroundState](),
		Obstacles:            NewStore[ObstacleTag](),
		HorizontalVelocities: NewStore[HorizontalVelocity](),
	}
	w.stores = []remover{
		w.Positions,
		w.Extents,
		w.VerticalVelocities,
		w.GroundStates,
		w.Obstacles,
		w.HorizontalVelocities,
	}
	return w
}

// Create allocates a new entity with no components.
func (w *World) Create() Entity {
	return w.pool.create()
}

// Alive reports whether e refers to a live entity.
func (w *World) Alive(e Entity) bool {
	return w.pool.alive(e)
}

// Destroy removes every component of e and invalidates the handle.
// Stale handles are ignored and reported as false.
func (w *World) Destroy(e Entity) bool {
	if !w.pool.alive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.pool.destroy(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.pool.live
}

// Box returns the world-space bounding box of e.
func (w *World) Box(e Entity) (core.Box, bool) {
	pos, ok := w.Positions.Get(e)
	if !ok {
		return core.Box{}, false
	}
	ext, ok := w.Extents.Get(e)
	if !ok {
		return core.Box{}, false
	}
	return core.NewBox(pos.X, pos.Y, ext.W, ext.H), true
}
