package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Up is the world up direction. Gravity, jumps, ground rays and slope checks
// all derive their signs from it.
var Up = rl.Vector3{X: 0, Y: 1, Z: 0}

// UpComponent returns the signed component of v along Up.
func UpComponent(v rl.Vector3) float32 {
	return rl.Vector3DotProduct(v, Up)
}

// WithUpComponent returns v with its component along Up replaced by s.
func WithUpComponent(v rl.Vector3, s float32) rl.Vector3 {
	lateral := rl.Vector3Subtract(v, rl.Vector3Scale(Up, UpComponent(v)))
	return rl.Vector3Add(lateral, rl.Vector3Scale(Up, s))
}

// WalkableCos is the minimum up component of a walkable surface normal.
func WalkableCos(maxSlopeDegrees float32) float32 {
	return math32.Cos(maxSlopeDegrees * rl.Deg2rad)
}

// Walkable reports whether a surface with this normal can be stood on.
// The ground detector and the resolver both go through here.
func Walkable(normal rl.Vector3, maxSlopeDegrees float32) bool {
	return UpComponent(normal) >= WalkableCos(maxSlopeDegrees)
}

// SlopeAngle returns the angle between normal and Up in degrees.
func SlopeAngle(normal rl.Vector3) float32 {
	n := rl.Vector3Normalize(normal)
	return math32.Acos(clamp(UpComponent(n), -1, 1)) * rl.Rad2deg
}

// clamp restricts a value to a range
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
