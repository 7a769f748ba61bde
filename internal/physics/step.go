package physics

import (
	"platformer3d/internal/assert"

	"github.com/chewxy/math32"
)

// Input is one tick of player intent.
type Input struct {
	Horizontal    float32 // -1 (left) to 1 (right)
	JumpRequested bool
	JumpReleased  bool
}

// StepResult is the new player state plus the ground check it was built from.
type StepResult struct {
	Player PlayerState
	Ground GroundInfo
}

// Step runs one simulation tick: movement, gravity and jump on the velocity,
// then move-and-slide, then a ground ray at the resolved position. The
// player is grounded if either the collision pass or the ray says so; the
// ray catches standing still on a ledge, where nothing moves into the ground
// this tick.
func Step(cfg PhysicsConfig, player PlayerState, bodies []Body, in Input, dt float32) StepResult {
	if dt < 0 {
		dt = 0
	}
	assert.True(!math32.IsNaN(dt) && !math32.IsInf(dt, 0), "physics: non-finite dt %v", dt)
	assert.True(cfg.PlayerRadius <= cfg.PlayerHeight/2, "physics: radius %v exceeds half height %v", cfg.PlayerRadius, cfg.PlayerHeight/2)

	v := ApplyMovement(cfg, in.Horizontal, player.Velocity)
	v = ApplyGravity(cfg, v, dt)

	candidate := player
	candidate.Velocity = v
	v = TryJump(cfg, candidate, in.JumpRequested)
	v = TryCutJump(v, in.JumpReleased, cfg.MinJumpVelocity)
	candidate.Velocity = v

	position, velocity, hitGround := MoveAndSlide(cfg, candidate, bodies, dt)
	assert.True(finite(position.X) && finite(position.Y) && finite(position.Z), "physics: non-finite position %v", position)

	ground := CheckGrounded(cfg, position, bodies)

	return StepResult{
		Player: PlayerState{
			Position:     position,
			Velocity:     velocity,
			IsGrounded:   hitGround || ground.IsGrounded,
			GroundNormal: ground.GroundNormal,
		},
		Ground: ground,
	}
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
