package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// parallelEpsilon is the smallest up component a ray direction may have
// before it is considered parallel to a horizontal plane.
const parallelEpsilon = 0.001

type RaycastHit struct {
	Point    rl.Vector3
	Distance float32
}

// RaycastPlane intersects a ray with the horizontal plane at planeHeight
// along Up. It misses when the ray runs parallel to the plane or the plane
// lies behind the origin.
func RaycastPlane(origin, direction rl.Vector3, planeHeight float32) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)

	dirUp := UpComponent(direction)
	if math32.Abs(dirUp) < parallelEpsilon {
		return RaycastHit{}, false
	}

	t := (planeHeight - UpComponent(origin)) / dirUp
	if t < 0 {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	return RaycastHit{Point: point, Distance: t}, true
}

// SlideVelocity removes the part of velocity that points into a surface with
// the given normal. Motion away from or along the surface is kept as is.
func SlideVelocity(velocity, normal rl.Vector3) rl.Vector3 {
	into := rl.Vector3DotProduct(velocity, normal)
	if into >= 0 {
		return velocity
	}
	return rl.Vector3Subtract(velocity, rl.Vector3Scale(normal, into))
}
