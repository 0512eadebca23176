package sim

type commandKind uint8

const (
	cmdSpawnObstacle commandKind = iota
	cmdDestroy
	cmdSetVerticalVelocity
	cmdAddVerticalVelocity
	cmdSetGroundState
	cmdTerminate
)

// ObstacleSpawn describes an obstacle to create at the next barrier.
type ObstacleSpawn struct {
	X, Y  float64
	W, H  float64
	Speed float64
}

type command struct {
	kind   commandKind
	entity Entity
	value  float64
	ground GroundState
	spawn  ObstacleSpawn
}

// CommandBuffer collects the writes a system defers to the end of its tier.
// Each system owns one buffer, so sibling systems never write shared state
// while they run; buffers are applied in registration order at the barrier.
type CommandBuffer struct {
	cmds []command
}

func (cb *CommandBuffer) reset() {
	cb.cmds = cb.cmds[:0]
}

// Len returns the number of queued commands.
func (cb *CommandBuffer) Len() int {
	return len(cb.cmds)
}

// SpawnObstacle queues the creation of an obstacle.
func (cb *CommandBuffer) SpawnObstacle(o ObstacleSpawn) {
	cb.cmds = append(cb.cmds, command{kind: cmdSpawnObstacle, spawn: o})
}

// Destroy queues the destruction of e.
func (cb *CommandBuffer) Destroy(e Entity) {
	cb.cmds = append(cb.cmds, command{kind: cmdDestroy, entity: e})
}

// SetVerticalVelocity queues an absolute velocity for e.
func (cb *CommandBuffer) SetVerticalVelocity(e Entity, v float64) {
	cb.cmds = append(cb.cmds, command{kind: cmdSetVerticalVelocity, entity: e, value: v})
}

// AddVerticalVelocity queues a velocity change for e.
func (cb *CommandBuffer) AddVerticalVelocity(e Entity, dv float64) {
	cb.cmds = append(cb.cmds, command{kind: cmdAddVerticalVelocity, entity: e, value: dv})
}

// SetGroundState queues a ground state change for e.
func (cb *CommandBuffer) SetGroundState(e Entity, g GroundState) {
	cb.cmds = append(cb.cmds, command{kind: cmdSetGroundState, entity: e, ground: g})
}

// Terminate queues the end of the session, naming the obstacle that was hit.
func (cb *CommandBuffer) Terminate(hit Entity) {
	cb.cmds = append(cb.cmds, command{kind: cmdTerminate, entity: hit})
}
