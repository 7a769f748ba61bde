package game

import (
	"platformer3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Controller owns the player's physics state and advances it one tick at a
// time.
type Controller struct {
	cfg    physics.PhysicsConfig
	state  physics.PlayerState
	ground physics.GroundInfo

	// landed is set for the tick the player goes from airborne to grounded
	landed bool
}

// NewController places a player at spawn.
func NewController(cfg physics.PhysicsConfig, spawn rl.Vector3) *Controller {
	return &Controller{
		cfg:   cfg,
		state: physics.NewPlayerState(spawn),
	}
}

// Update runs one physics step against bodies and returns the ground check
// of the new position.
func (c *Controller) Update(in physics.Input, dt float32, bodies []physics.Body) physics.GroundInfo {
	wasGrounded := c.state.IsGrounded

	res := physics.Step(c.cfg, c.state, bodies, in, dt)
	c.state = res.Player
	c.ground = res.Ground
	c.landed = !wasGrounded && c.state.IsGrounded

	return res.Ground
}

// Teleport moves the player and drops its velocity and grounded state.
func (c *Controller) Teleport(pos rl.Vector3) {
	c.state = physics.NewPlayerState(pos)
	c.ground = physics.GroundInfo{}
	c.landed = false
}

func (c *Controller) State() physics.PlayerState    { return c.state }
func (c *Controller) Position() rl.Vector3          { return c.state.Position }
func (c *Controller) Velocity() rl.Vector3          { return c.state.Velocity }
func (c *Controller) IsGrounded() bool              { return c.state.IsGrounded }
func (c *Controller) Ground() physics.GroundInfo    { return c.ground }
func (c *Controller) Config() physics.PhysicsConfig { return c.cfg }

// JustLanded reports whether the last Update touched down.
func (c *Controller) JustLanded() bool {
	return c.landed
}
