package sim

import "math"

// ObstacleSystems returns the obstacle lifecycle: timed spawn, constant
// translation and off-screen despawn.
func ObstacleSystems() []System {
	return []System{
		{Name: "spawn", Phase: PhaseObstacles, Run: spawnObstacles},
		{Name: "translate", Phase: PhaseObstacles, Run: translateObstacles},
		{Name: "despawn", Phase: PhaseDespawn, Run: despawnObstacles},
	}
}

// spawnObstacles ticks the session's spawn timer and queues one obstacle
// per completion. The obstacle appears at the barrier, so it is not
// translated during the frame it spawns.
func spawnObstacles(ctx *Context) {
	s := ctx.Session
	if !s.spawnTimer.Tick(ctx.Dt) {
		return
	}
	cfg := s.cfg
	ctx.Commands.SpawnObstacle(ObstacleSpawn{
		X:     cfg.SpawnX(),
		Y:     cfg.SpawnY(),
		W:     cfg.Obstacle.Width,
		H:     cfg.Obstacle.Height,
		Speed: cfg.BaseObstacleSpeed,
	})
}

// translateObstacles moves every obstacle by its horizontal velocity.
func translateObstacles(ctx *Context) {
	w := ctx.World()
	for e, v := range w.HorizontalVelocities.All() {
		pos, _ := w.Positions.Get(e)
		pos.X += float64(v) * ctx.Dt
		w.Positions.Set(e, pos)
	}
}

// despawnObstacles queues the destruction of obstacles past the off-screen threshold.
func despawnObstacles(ctx *Context) {
	w := ctx.World()
	limit := ctx.Session.cfg.DespawnX()
	for e := range w.Obstacles.All() {
		pos, _ := w.Positions.Get(e)
		if math.Abs(pos.X) > limit {
			ctx.Commands.Destroy(e)
		}
	}
}

// spawnObstacle materialises a queued obstacle.
func (w *World) spawnObstacle(o ObstacleSpawn) Entity {
	e := w.Create()
	w.Positions.Set(e, Position{X: o.X, Y: o.Y})
	w.Extents.Set(e, Extent{W: o.W, H: o.H})
	w.Obstacles.Set(e, ObstacleTag{})
	w.HorizontalVelocities.Set(e, HorizontalVelocity(o.Speed))
	return e
}
