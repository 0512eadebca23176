package sim

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

type motionStep struct {
	held   []core.Action
	y      float64
	v      float64
	ground GroundState
}

func runMotion(t *testing.T, cfg config.RunnerConfig, steps []motionStep) {
	t.Helper()
	s := newTestSession(t, cfg)
	for i, st := range steps {
		res := step(t, s, 0.25, st.held...)
		p := res.Snapshot.Player
		if p.Box.Center.Y != st.y || p.Velocity != st.v || p.Ground != st.ground {
			t.Errorf("frame %d: y=%v v=%v %v, expected y=%v v=%v %v",
				i+1, p.Box.Center.Y, p.Velocity, p.Ground, st.y, st.v, st.ground)
		}
		if p.Box.Center.X != -260 {
			t.Errorf("frame %d: player x = %v, expected -260", i+1, p.Box.Center.X)
		}
	}
}

func TestJumpArc(t *testing.T) {
	jump := []core.Action{core.ActionJump}
	runMotion(t, config.DefaultRunnerConfig(), []motionStep{
		{jump, 20, 300, InAir}, // no gravity on the jump frame
		{nil, 63.75, 175, InAir},
		{nil, 76.25, 50, InAir},
		{nil, 57.5, -75, InAir},
		{nil, 7.5, -200, InAir},
		{nil, -55, -325, OnGround}, // snapped to rest; velocity kept
		{nil, -55, -325, OnGround},
		{jump, 20, 300, InAir}, // re-armed after landing
	})
}

func TestHeldJumpDoesNotRelaunchInAir(t *testing.T) {
	jump := []core.Action{core.ActionJump}
	runMotion(t, config.DefaultRunnerConfig(), []motionStep{
		{jump, 20, 300, InAir},
		{jump, 63.75, 175, InAir},
		{jump, 76.25, 50, InAir},
	})
}

func TestDuck(t *testing.T) {
	duck := []core.Action{core.ActionDuck}
	jump := []core.Action{core.ActionJump}

	t.Run("ignored on ground", func(t *testing.T) {
		runMotion(t, config.DefaultRunnerConfig(), []motionStep{
			{duck, -55, 0, OnGround},
			{duck, -55, 0, OnGround},
		})
	})

	t.Run("fast fall", func(t *testing.T) {
		runMotion(t, config.DefaultRunnerConfig(), []motionStep{
			{jump, 20, 300, InAir},
			{duck, -55, -425, OnGround},
		})
	})

	t.Run("applied every held frame", func(t *testing.T) {
		cfg := config.DefaultRunnerConfig()
		cfg.Physics.DuckImpulse = 10
		runMotion(t, cfg, []motionStep{
			{jump, 20, 300, InAir},
			{duck, 61.25, 165, InAir},
			{duck, 68.75, 30, InAir},
		})
	})

	t.Run("jump and duck together", func(t *testing.T) {
		both := []core.Action{core.ActionJump, core.ActionDuck}
		runMotion(t, config.DefaultRunnerConfig(), []motionStep{
			{both, 20, 300, InAir},
		})
	})
}
