package sim

import "github.com/vovakirdan/tui-runner/internal/core"

// MotionSystems returns the player motion state machine.
//
// Jump, duck and gravity are siblings in PhaseModifiers. Each reads the
// ground state as it was when the phase began and writes only through its
// command buffer, so jump and the two airborne modifiers never apply in the
// same frame and their relative order does not matter. Integration and
// grounding follow in their own phases.
func MotionSystems() []System {
	return []System{
		{Name: "jump", Phase: PhaseModifiers, Run: jump},
		{Name: "duck", Phase: PhaseModifiers, Run: duck},
		{Name: "gravity", Phase: PhaseModifiers, Run: gravity},
		{Name: "integrate", Phase: PhaseIntegrate, Run: integrate},
		{Name: "ground", Phase: PhaseGround, Run: ground},
	}
}

// jump launches the player while it is grounded and Jump is held.
// Holding Jump while airborne does nothing; it re-arms on landing.
func jump(ctx *Context) {
	p := ctx.Player()
	state, _ := ctx.World().GroundStates.Get(p)
	if state == OnGround && ctx.Input.Has(core.ActionJump) {
		ctx.Commands.SetGroundState(p, InAir)
		ctx.Commands.SetVerticalVelocity(p, ctx.Session.cfg.Physics.JumpVelocity)
	}
}

// duck applies a flat downward kick every frame Duck is held while airborne.
func duck(ctx *Context) {
	p := ctx.Player()
	state, _ := ctx.World().GroundStates.Get(p)
	if state == InAir && ctx.Input.Has(core.ActionDuck) {
		ctx.Commands.AddVerticalVelocity(p, -ctx.Session.cfg.Physics.DuckImpulse)
	}
}

// gravity accelerates every airborne entity downward.
func gravity(ctx *Context) {
	dv := -ctx.Session.cfg.Physics.Gravity * ctx.Dt
	for e, state := range ctx.World().GroundStates.All() {
		if state == InAir {
			ctx.Commands.AddVerticalVelocity(e, dv)
		}
	}
}

// integrate moves every airborne entity by its vertical velocity.
func integrate(ctx *Context) {
	w := ctx.World()
	for e, state := range w.GroundStates.All() {
		if state != InAir {
			continue
		}
		v, _ := w.VerticalVelocities.Get(e)
		pos, _ := w.Positions.Get(e)
		pos.Y += float64(v) * ctx.Dt
		w.Positions.Set(e, pos)
	}
}

// ground lands any entity that sank below its resting height.
// Vertical velocity keeps its landing value.
func ground(ctx *Context) {
	w := ctx.World()
	groundLine := ctx.Session.cfg.GroundLine()
	w.GroundStates.Update(func(e Entity, state *GroundState) {
		pos, _ := w.Positions.Get(e)
		ext, _ := w.Extents.Get(e)
		rest := groundLine + ext.H/2
		if pos.Y < rest {
			pos.Y = rest
			w.Positions.Set(e, pos)
			*state = OnGround
		}
	})
}
