// Package sim implements the runner simulation: a component store keyed by
// generational entity handles, a repeating spawn timer, the player's motion
// state machine, the obstacle lifecycle, collision detection, and a phase
// scheduler that runs them in a fixed partial order once per frame.
//
// The package contains no rendering, input polling or timing; hosts deliver
// elapsed time and held actions each frame and read back snapshots.
package sim

import "fmt"

// Entity is an opaque handle: a 32-bit slot index in the lower bits and a
// 32-bit generation in the upper bits. Destroying an entity bumps the
// generation of its slot, so stale handles never resolve again.
type Entity uint64

// NoEntity is the zero handle. No live entity ever equals it.
const NoEntity Entity = 0

func newEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index returns the slot index.
func (e Entity) Index() uint32 { return uint32(e) }

// Generation returns the slot generation.
func (e Entity) Generation() uint32 { return uint32(e >> 32) }

func (e Entity) String() string {
	if e == NoEntity {
		return "none"
	}
	return fmt.Sprintf("%dv%d", e.Index(), e.Generation())
}

// entityPool allocates handles with generational indices and a free list.
type entityPool struct {
	generations []uint32
	freeList    []uint32
	live        int
}

func newEntityPool() *entityPool {
	return &entityPool{
		generations: make([]uint32, 0, 64),
		freeList:    make([]uint32, 0, 16),
	}
}

func (p *entityPool) create() Entity {
	p.live++
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return newEntity(idx, p.generations[idx])
	}
	// Generations start at 1 so that no handle equals NoEntity
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 1)
	return newEntity(idx, 1)
}

func (p *entityPool) alive(e Entity) bool {
	idx := e.Index()
	if int(idx) >= len(p.generations) {
		return false
	}
	return e != NoEntity && p.generations[idx] == e.Generation()
}

// destroy invalidates e. It reports false for stale or unknown handles.
func (p *entityPool) destroy(e Entity) bool {
	if !p.alive(e) {
		return false
	}
	idx := e.Index()
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
	p.live--
	return true
}
