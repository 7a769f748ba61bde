package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// moveBlend is how far horizontal speed moves toward the input target per
	// call. It is per call, not per second, so acceleration depends on frame rate.
	moveBlend = 0.2

	// frictionSnapSpeed is the horizontal speed below which friction stops
	// the player outright.
	frictionSnapSpeed = 1.0

	// jumpSlopeLimitDegrees is the fixed slope cutoff for jumping. It does not
	// follow PhysicsConfig.MaxSlopeAngleDegrees.
	jumpSlopeLimitDegrees = 45.0
)

// ApplyGravity adds gravity*dt to velocity. There is no terminal velocity.
func ApplyGravity(cfg PhysicsConfig, velocity rl.Vector3, dt float32) rl.Vector3 {
	return rl.Vector3Add(velocity, rl.Vector3Scale(cfg.Gravity, dt))
}

// ApplyMovement steers the horizontal (X) speed toward input*MoveSpeed, or
// applies friction when there is no input. Vertical and depth speeds pass
// through untouched.
func ApplyMovement(cfg PhysicsConfig, horizontalInput float32, velocity rl.Vector3) rl.Vector3 {
	if horizontalInput != 0 {
		target := horizontalInput * cfg.MoveSpeed
		velocity.X += (target - velocity.X) * moveBlend
		return velocity
	}

	velocity.X *= cfg.Friction
	if math32.Abs(velocity.X) < frictionSnapSpeed {
		velocity.X = 0
	}
	return velocity
}

// TryJump launches the player when a jump is requested while standing on
// ground flatter than 45°. Horizontal and depth speeds are kept.
func TryJump(cfg PhysicsConfig, player PlayerState, jumpRequested bool) rl.Vector3 {
	if !jumpRequested || !player.IsGrounded {
		return player.Velocity
	}
	if UpComponent(player.GroundNormal) <= WalkableCos(jumpSlopeLimitDegrees) {
		return player.Velocity
	}
	return WithUpComponent(player.Velocity, cfg.JumpVelocity)
}

// TryCutJump caps the rising speed at minJumpVelocity once the jump button is
// released, so short presses give short hops.
func TryCutJump(velocity rl.Vector3, jumpReleased bool, minJumpVelocity float32) rl.Vector3 {
	if !jumpReleased {
		return velocity
	}
	if UpComponent(velocity) <= minJumpVelocity {
		return velocity
	}
	return WithUpComponent(velocity, minJumpVelocity)
}
