package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Shape is the collision shape of a Body. Only Box takes part in collision;
// Capsule is accepted everywhere and skipped.
type Shape interface {
	shape()
}

// Box is an axis-aligned box. Size is the full extent (width, height, depth).
type Box struct {
	Size rl.Vector3
}

// Capsule is declared for future use. No algorithm in this package handles it.
type Capsule struct {
	Radius float32
	Height float32
}

func (Box) shape()     {}
func (Capsule) shape() {}

// HalfExtents returns half of the box size.
func (b Box) HalfExtents() rl.Vector3 {
	return rl.Vector3Scale(b.Size, 0.5)
}

// Body is one piece of static (or nominally moving) collision geometry.
type Body struct {
	Position rl.Vector3 // center
	Velocity rl.Vector3
	Shape    Shape
	Static   bool

	// OwnerID refers back to the level entity the body was built from.
	// 0 means none. Bookkeeping only.
	OwnerID uint64
}

// NewStaticBox creates a static box body centered at center.
func NewStaticBox(center, size rl.Vector3, owner uint64) Body {
	return Body{
		Position: center,
		Shape:    Box{Size: size},
		Static:   true,
		OwnerID:  owner,
	}
}

// Box returns the body's box shape, or false for any other shape.
func (b Body) Box() (Box, bool) {
	switch s := b.Shape.(type) {
	case Box:
		return s, true
	case *Box:
		if s != nil {
			return *s, true
		}
	}
	return Box{}, false
}

// staticBox reports the box of a static box body.
func (b Body) staticBox() (Box, bool) {
	if !b.Static {
		return Box{}, false
	}
	return b.Box()
}

// PlayerState is the player capsule. Treat it as a value: every step
// produces a new one.
type PlayerState struct {
	Position     rl.Vector3 // capsule center
	Velocity     rl.Vector3
	IsGrounded   bool
	GroundNormal rl.Vector3
}

// NewPlayerState places a player at rest at position.
func NewPlayerState(position rl.Vector3) PlayerState {
	return PlayerState{
		Position:     position,
		GroundNormal: Up,
	}
}

// GroundInfo is the result of a ground check.
type GroundInfo struct {
	IsGrounded   bool
	GroundHeight float32
	GroundNormal rl.Vector3
	SlopeAngle   float32 // degrees
}
