package physics

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SurfaceKind tags a piece of level geometry by its proportions.
type SurfaceKind int

const (
	SurfaceFlat SurfaceKind = iota
	SurfaceSlope
	SurfaceSteep
)

// SurfaceType is the output of AnalyzeSurface. Angle is only set for slopes.
type SurfaceType struct {
	Kind  SurfaceKind
	Angle float32 // degrees
}

func (s SurfaceType) String() string {
	switch s.Kind {
	case SurfaceFlat:
		return "flat"
	case SurfaceSlope:
		return fmt.Sprintf("slope(%.1f°)", s.Angle)
	case SurfaceSteep:
		return "steep"
	}
	return fmt.Sprintf("SurfaceKind(%d)", int(s.Kind))
}

const (
	flatRatio      = 0.3
	steepRatio     = 1.0
	surfaceEpsilon = 0.0001
)

// AnalyzeSurface classifies geometry from its bounding half-extents. It is a
// shape heuristic used to pre-tag level pieces at load time and has nothing to
// do with per-frame ground detection, which looks at real contact normals.
//
// The slope band is known to be mostly unreachable: for ratios in [0.3, 1)
// the estimated angle is always above 45°, so most of those shapes come out
// Steep. The thresholds are kept as they are.
func AnalyzeSurface(halfExtents rl.Vector3, maxSlopeDegrees float32) SurfaceType {
	// X and Z are the horizontal axes of a Y-up world.
	vertical := math32.Abs(UpComponent(halfExtents))
	horizontal := (math32.Abs(halfExtents.X) + math32.Abs(halfExtents.Z)) / 2

	ratio := vertical / (horizontal + surfaceEpsilon)
	switch {
	case ratio < flatRatio:
		return SurfaceType{Kind: SurfaceFlat}
	case ratio < steepRatio:
		angle := math32.Atan(horizontal/vertical) * rl.Rad2deg
		if angle < maxSlopeDegrees {
			return SurfaceType{Kind: SurfaceSlope, Angle: angle}
		}
		return SurfaceType{Kind: SurfaceSteep}
	default:
		return SurfaceType{Kind: SurfaceSteep}
	}
}
