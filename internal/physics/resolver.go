package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// MaxResolvePasses bounds the collision passes per step. Resolution is
	// not guaranteed to converge within it.
	MaxResolvePasses = 3

	// embedEpsilon is the center-to-box distance treated as "inside the box".
	embedEpsilon = 1e-5

	// stillSpeed is the speed below which an embedded player is pushed straight up.
	stillSpeed = 0.001
)

// contact is one push-out against a single box.
type contact struct {
	normal      rl.Vector3
	penetration float32
	fromInside  bool
}

// sphereBoxContact tests the player sphere against a box. Touching at exactly
// radius is not a contact.
func sphereBoxContact(center rl.Vector3, radius float32, velocity rl.Vector3, boxCenter, boxSize rl.Vector3) (contact, bool) {
	closest := ClosestPointOnBox(center, boxCenter, boxSize)
	diff := rl.Vector3Subtract(center, closest)
	dist := rl.Vector3Length(diff)

	if dist >= radius {
		return contact{}, false
	}

	if dist < embedEpsilon {
		return contact{
			normal:      embeddedPushDirection(velocity),
			penetration: radius - dist,
			fromInside:  true,
		}, true
	}

	// Normal points from box to sphere
	return contact{
		normal:      rl.Vector3Scale(diff, 1/dist),
		penetration: radius - dist,
	}, true
}

// embeddedPushDirection picks a way out for a center that sits inside a box,
// where geometry gives no direction: back against horizontal motion, or
// straight up when the player is still or mostly moving vertically.
func embeddedPushDirection(velocity rl.Vector3) rl.Vector3 {
	if rl.Vector3Length(velocity) < stillSpeed {
		return Up
	}

	vertical := UpComponent(velocity)
	lateral := rl.Vector3Subtract(velocity, rl.Vector3Scale(Up, vertical))
	lateralSpeed := rl.Vector3Length(lateral)
	if lateralSpeed < stillSpeed || math32.Abs(vertical) >= lateralSpeed {
		return Up
	}
	return rl.Vector3Scale(lateral, -1/lateralSpeed)
}

// MoveAndSlide advances the player by velocity*dt and pushes it back out of
// any static box it ends up overlapping, sliding the velocity along each
// contact. The player is treated as a sphere of PlayerRadius around its
// center; walls and floors go through the same closest-point test.
//
// wasGrounded only reflects this step's contacts: stepping off a ledge
// reports false right away.
func MoveAndSlide(cfg PhysicsConfig, player PlayerState, bodies []Body, dt float32) (position, velocity rl.Vector3, wasGrounded bool) {
	position = rl.Vector3Add(player.Position, rl.Vector3Scale(player.Velocity, dt))
	velocity = player.Velocity

	for pass := 0; pass < MaxResolvePasses; pass++ {
		collided := false

		for _, b := range bodies {
			box, ok := b.staticBox()
			if !ok {
				continue
			}

			c, hit := sphereBoxContact(position, cfg.PlayerRadius, velocity, b.Position, box.Size)
			if !hit {
				continue
			}

			position = rl.Vector3Add(position, rl.Vector3Scale(c.normal, c.penetration))
			velocity = SlideVelocity(velocity, c.normal)

			// Embedded is not standing
			if !c.fromInside && Walkable(c.normal, cfg.MaxSlopeAngleDegrees) {
				wasGrounded = true
			}
			collided = true
		}

		if !collided {
			break
		}
	}

	return position, velocity, wasGrounded
}
