package physics

import rl "github.com/gen2brain/raylib-go/raylib"

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// Contains is inclusive on every face.
func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// ClosestPoint clamps p into the box on each axis.
func (a AABB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: clamp(p.X, a.Min.X, a.Max.X),
		Y: clamp(p.Y, a.Min.Y, a.Max.Y),
		Z: clamp(p.Z, a.Min.Z, a.Max.Z),
	}
}

// Top is the height of the upward-facing face.
func (a AABB) Top() float32 {
	return max(UpComponent(a.Min), UpComponent(a.Max))
}

// IntersectsBox reports whether point lies inside the box given by its
// center and full size. Points on the boundary count as inside.
func IntersectsBox(point, boxCenter, boxSize rl.Vector3) bool {
	return NewAABBFromCenter(boxCenter, boxSize).Contains(point)
}

// ClosestPointOnBox returns the point of the box nearest to point.
func ClosestPointOnBox(point, boxCenter, boxSize rl.Vector3) rl.Vector3 {
	return NewAABBFromCenter(boxCenter, boxSize).ClosestPoint(point)
}
