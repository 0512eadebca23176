package sim

import "github.com/vovakirdan/tui-runner/internal/core"

// CollisionSystems returns the collision monitor.
func CollisionSystems() []System {
	return []System{
		{Name: "collide", Phase: PhaseCollide, Run: collide},
	}
}

// FirstOverlap returns the index of the first obstacle box overlapping the
// player box, or -1 when none does.
func FirstOverlap(player core.Box, obstacles []core.Box) int {
	for i, b := range obstacles {
		if player.Intersects(b) {
			return i
		}
	}
	return -1
}

// collide queues termination when any obstacle overlaps the player.
// Several simultaneous overlaps still produce one termination.
func collide(ctx *Context) {
	w := ctx.World()
	player, ok := w.Box(ctx.Player())
	if !ok {
		return
	}
	for e := range w.Obstacles.All() {
		box, ok := w.Box(e)
		if ok && player.Intersects(box) {
			ctx.Commands.Terminate(e)
			return
		}
	}
}
