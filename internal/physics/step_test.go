package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

func run(cfg PhysicsConfig, p PlayerState, bodies []Body, in Input, ticks int) StepResult {
	var res StepResult
	for range ticks {
		res = Step(cfg, p, bodies, in, dt)
		p = res.Player
	}
	return res
}

func TestStepStandingStillStaysGrounded(t *testing.T) {
	cfg := DefaultConfig()
	bodies := []Body{floor(0)}
	p := NewPlayerState(vec(0, cfg.PlayerRadius, 0))

	for range 120 {
		res := Step(cfg, p, bodies, Input{}, dt)
		p = res.Player
		require.True(t, p.IsGrounded)
		require.GreaterOrEqual(t, p.Position.Y, cfg.PlayerRadius-tol)
	}
	assert.InDelta(t, 0, p.Velocity.Y, tol)
}

func TestStepFallAndLand(t *testing.T) {
	cfg := DefaultConfig()
	res := run(cfg, NewPlayerState(vec(0, 5, 0)), []Body{floor(0)}, Input{}, 120)

	assert.True(t, res.Player.IsGrounded)
	assert.GreaterOrEqual(t, res.Player.Position.Y, float32(0))
	assert.Equal(t, Up, res.Player.GroundNormal)
}

func TestStepJumpAndCut(t *testing.T) {
	cfg := DefaultConfig()
	bodies := []Body{floor(0)}
	p := run(cfg, NewPlayerState(vec(0, cfg.PlayerRadius, 0)), bodies, Input{}, 5).Player
	require.True(t, p.IsGrounded)

	jumped := Step(cfg, p, bodies, Input{JumpRequested: true}, dt).Player
	assert.Equal(t, cfg.JumpVelocity, UpComponent(jumped.Velocity))
	assert.Greater(t, jumped.Position.Y, p.Position.Y)

	cut := Step(cfg, jumped, bodies, Input{JumpReleased: true}, dt).Player
	assert.InDelta(t, cfg.MinJumpVelocity, UpComponent(cut.Velocity), tol)

	held := Step(cfg, jumped, bodies, Input{}, dt).Player
	assert.Greater(t, UpComponent(held.Velocity), cfg.MinJumpVelocity)
}

func TestStepCannotJumpInAir(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPlayerState(vec(0, 10, 0))

	res := Step(cfg, p, []Body{floor(0)}, Input{JumpRequested: true}, dt)
	assert.Less(t, UpComponent(res.Player.Velocity), float32(0))
	assert.False(t, res.Player.IsGrounded)
}

func TestStepWalkIntoWall(t *testing.T) {
	cfg := DefaultConfig()
	bodies := []Body{
		floor(0),
		NewStaticBox(vec(5.5, 2, 0), vec(1, 4, 4), 2),
	}

	res := run(cfg, NewPlayerState(vec(0, cfg.PlayerRadius, 0)), bodies, Input{Horizontal: 1}, 180)

	assert.True(t, res.Player.IsGrounded)
	assert.LessOrEqual(t, res.Player.Position.X+cfg.PlayerRadius, float32(5)+tol)
	assert.Greater(t, res.Player.Position.X, float32(4))
}

func TestStepRayGroundsHoveringPlayer(t *testing.T) {
	cfg := DefaultConfig()
	// Too high for the sphere to touch, low enough for the ground ray.
	p := NewPlayerState(vec(0, 0.8, 0))

	res := Step(cfg, p, []Body{floor(0)}, Input{}, dt)

	assert.True(t, res.Ground.IsGrounded)
	assert.True(t, res.Player.IsGrounded)
}

func TestStepLeavesInputUntouched(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPlayerState(vec(0, 3, 0))
	before := p

	res := Step(cfg, p, nil, Input{Horizontal: 1}, dt)

	assert.Equal(t, before, p)
	assert.NotEqual(t, p.Position, res.Player.Position)
	assert.False(t, res.Player.IsGrounded)
	assert.Equal(t, NoGroundHeight, res.Ground.GroundHeight)
}

func TestStepNegativeDt(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPlayerState(vec(0, 3, 0))

	res := Step(cfg, p, nil, Input{}, -1)
	assert.Equal(t, p.Position, res.Player.Position)
	assert.Equal(t, p.Velocity, res.Player.Velocity)
}
