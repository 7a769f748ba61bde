package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// NoGroundHeight is reported as GroundHeight when nothing is below the player.
const NoGroundHeight = float32(-math.MaxFloat32)

// groundRayOrigin is the bottom of the capsule's cylindrical section.
func groundRayOrigin(cfg PhysicsConfig, playerPosition rl.Vector3) rl.Vector3 {
	offset := cfg.PlayerHeight/2 - cfg.PlayerRadius
	return rl.Vector3Subtract(playerPosition, rl.Vector3Scale(Up, offset))
}

// CheckGrounded casts a ray down from the player's capsule against the top
// faces of the static boxes and reports the closest walkable surface within
// reach. Boxes only have flat tops, so a hit always has an Up normal.
func CheckGrounded(cfg PhysicsConfig, playerPosition rl.Vector3, bodies []Body) GroundInfo {
	info := GroundInfo{
		GroundHeight: NoGroundHeight,
		GroundNormal: Up,
	}

	origin := groundRayOrigin(cfg, playerPosition)
	down := rl.Vector3Negate(Up)
	reach := cfg.PlayerRadius + cfg.GroundCheckDistance

	found := false
	closest := reach
	for _, b := range bodies {
		box, ok := b.staticBox()
		if !ok {
			continue
		}

		top := NewAABBFromCenter(b.Position, box.Size).Top()
		hit, ok := RaycastPlane(origin, down, top)
		if !ok {
			continue
		}
		if !IntersectsBox(hit.Point, b.Position, box.Size) {
			continue
		}
		if hit.Distance > reach {
			continue
		}

		if !found || hit.Distance < closest {
			found = true
			closest = hit.Distance
			info.GroundHeight = top
			info.GroundNormal = Up
		}
	}

	info.SlopeAngle = SlopeAngle(info.GroundNormal)
	info.IsGrounded = found && Walkable(info.GroundNormal, cfg.MaxSlopeAngleDegrees)
	return info
}
