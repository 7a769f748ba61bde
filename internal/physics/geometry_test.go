package physics

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectsBoxInclusive(t *testing.T) {
	center, size := vec(0, 0, 0), vec(2, 2, 2)

	assert.True(t, IntersectsBox(vec(0, 0, 0), center, size))
	assert.True(t, IntersectsBox(vec(1, 1, 1), center, size), "corner is on the boundary")
	assert.True(t, IntersectsBox(vec(-1, 0, 0.5), center, size))
	assert.False(t, IntersectsBox(vec(1.01, 0, 0), center, size))
	assert.False(t, IntersectsBox(vec(0, -1.5, 0), center, size))
}

func TestClosestPointOnBox(t *testing.T) {
	center, size := vec(0, 0, 0), vec(2, 4, 2)

	assert.Equal(t, vec(1, 0, 0), ClosestPointOnBox(vec(3, 0, 0), center, size))
	assert.Equal(t, vec(1, 2, -1), ClosestPointOnBox(vec(5, 9, -4), center, size))
	assert.Equal(t, vec(0.5, 0.5, 0.5), ClosestPointOnBox(vec(0.5, 0.5, 0.5), center, size), "inside points map to themselves")
}

func TestRaycastPlaneDown(t *testing.T) {
	hit, ok := RaycastPlane(vec(1, 5, 2), vec(0, -1, 0), 2)
	require.True(t, ok)
	assert.InDelta(t, 3, hit.Distance, tol)
	assert.InDelta(t, 2, hit.Point.Y, tol)
	assert.InDelta(t, 1, hit.Point.X, tol)
	assert.InDelta(t, 2, hit.Point.Z, tol)
}

func TestRaycastPlaneMisses(t *testing.T) {
	_, ok := RaycastPlane(vec(0, 5, 0), vec(1, 0.0001, 0), 2)
	assert.False(t, ok, "parallel ray")

	_, ok = RaycastPlane(vec(0, 1, 0), vec(0, -1, 0), 2)
	assert.False(t, ok, "plane behind origin")

	_, ok = RaycastPlane(vec(0, 1, 0), vec(0, 0, 0), 0)
	assert.False(t, ok, "zero direction")
}

func TestSlideVelocity(t *testing.T) {
	wall := vec(-1, 0, 0)

	slid := SlideVelocity(vec(5, -2, 1), wall)
	assert.InDelta(t, 0, slid.X, tol)
	assert.InDelta(t, -2, slid.Y, tol)
	assert.InDelta(t, 1, slid.Z, tol)

	away := vec(-3, 1, 0)
	assert.Equal(t, away, SlideVelocity(away, wall), "moving away is not damped")

	along := vec(0, 4, 0)
	assert.Equal(t, along, SlideVelocity(along, wall), "moving along is not damped")
}

// slopeNormal builds a unit normal whose up component is exactly up.
func slopeNormal(up float32) rl.Vector3 {
	return vec(math32.Sqrt(1-up*up), up, 0)
}

func TestUpHelpers(t *testing.T) {
	v := vec(3, -7, 2)
	assert.Equal(t, float32(-7), UpComponent(v))

	w := WithUpComponent(v, 10)
	assert.Equal(t, vec(3, 10, 2), w)

	assert.True(t, Walkable(Up, 45))
	assert.False(t, Walkable(vec(1, 0, 0), 45))
	assert.InDelta(t, 0, SlopeAngle(Up), tol)

	// Exactly at the limit is still walkable.
	assert.True(t, Walkable(slopeNormal(WalkableCos(45)), 45))
	assert.False(t, Walkable(slopeNormal(WalkableCos(46)), 45))
	assert.InDelta(t, 90, SlopeAngle(vec(0, 0, 1)), tol)
}

func TestBodyShapes(t *testing.T) {
	box := NewStaticBox(vec(0, 0, 0), vec(2, 2, 2), 7)
	b, ok := box.Box()
	require.True(t, ok)
	assert.Equal(t, vec(1, 1, 1), b.HalfExtents())
	assert.Equal(t, uint64(7), box.OwnerID)

	capsule := Body{Shape: Capsule{Radius: 0.5, Height: 2}, Static: true}
	_, ok = capsule.Box()
	assert.False(t, ok)

	empty := Body{Static: true}
	_, ok = empty.Box()
	assert.False(t, ok, "nil shape")
}
