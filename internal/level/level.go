// Package level turns level files into static collision geometry for the
// physics package, plus the gameplay regions around it.
package level

import (
	"errors"
	"math"

	"platformer3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoSpawn       = errors.New("level has no spawn point")
	ErrUnknownFormat = errors.New("unknown level format")
)

// NoKillHeight disables the fall-out check.
const NoKillHeight = float32(-math.MaxFloat32)

// killMargin is how far below the lowest piece the kill plane sits when a
// level does not set one.
const killMargin = 5

// Level is a loaded level. Bodies[i] was built from Pieces[i].
type Level struct {
	Name        string
	Bodies      []physics.Body
	Pieces      []Piece
	Spawn       rl.Vector3
	Goal        *Region
	Checkpoints []Region
	Hazards     []Region
	KillHeight  float32
}

// Piece is one box of level geometry, pre-tagged with its surface kind.
type Piece struct {
	ID      uint64
	Center  rl.Vector3
	Size    rl.Vector3
	Surface physics.SurfaceType
}

// Region is a trigger volume. It never collides.
type Region struct {
	Name   string
	Center rl.Vector3
	Size   rl.Vector3
}

// Contains reports whether p is inside the region, faces included.
func (r Region) Contains(p rl.Vector3) bool {
	return physics.IntersectsBox(p, r.Center, r.Size)
}

// Touches reports whether a sphere overlaps the region.
func (r Region) Touches(center rl.Vector3, radius float32) bool {
	closest := physics.ClosestPointOnBox(center, r.Center, r.Size)
	return rl.Vector3Length(rl.Vector3Subtract(center, closest)) <= radius
}

// Empty returns a level with no geometry. The player just falls.
func Empty() *Level {
	return &Level{
		Name:       "empty",
		KillHeight: NoKillHeight,
	}
}

// Options controls how level files are converted.
type Options struct {
	// TileSize is the world size of one map tile.
	TileSize float32
	// Depth is the Z size given to boxes from 2D sources.
	Depth float32
	// MergeRows joins horizontal runs of solid tiles into a single box.
	MergeRows bool
	// MaxSlopeAngleDegrees is used to tag pieces with AnalyzeSurface.
	MaxSlopeAngleDegrees float32
	// Bounds resolves model references in layouts. Optional.
	Bounds *BoundsCache
	Logger logrus.FieldLogger
}

// DefaultOptions returns the options the game loads levels with.
func DefaultOptions() Options {
	return Options{
		TileSize:             1,
		Depth:                4,
		MergeRows:            true,
		MaxSlopeAngleDegrees: physics.DefaultConfig().MaxSlopeAngleDegrees,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TileSize <= 0 {
		o.TileSize = d.TileSize
	}
	if o.Depth <= 0 {
		o.Depth = d.Depth
	}
	if o.MaxSlopeAngleDegrees <= 0 {
		o.MaxSlopeAngleDegrees = d.MaxSlopeAngleDegrees
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

// builder accumulates pieces and bodies with sequential owner ids.
type builder struct {
	lvl      *Level
	maxSlope float32
}

func newBuilder(name string, maxSlope float32) *builder {
	return &builder{
		lvl:      &Level{Name: name, KillHeight: NoKillHeight},
		maxSlope: maxSlope,
	}
}

func (b *builder) addBox(center, size rl.Vector3) {
	id := uint64(len(b.lvl.Pieces) + 1)
	body := physics.NewStaticBox(center, size, id)
	box, _ := body.Box()
	b.lvl.Pieces = append(b.lvl.Pieces, Piece{
		ID:      id,
		Center:  center,
		Size:    size,
		Surface: physics.AnalyzeSurface(box.HalfExtents(), b.maxSlope),
	})
	b.lvl.Bodies = append(b.lvl.Bodies, body)
}

// finish fills in the kill height when the source did not set one.
func (b *builder) finish(killHeight *float32) *Level {
	lvl := b.lvl
	switch {
	case killHeight != nil:
		lvl.KillHeight = *killHeight
	case len(lvl.Pieces) > 0:
		lowest := float32(math.MaxFloat32)
		for _, p := range lvl.Pieces {
			bottom := physics.NewAABBFromCenter(p.Center, p.Size).Min
			lowest = min(lowest, physics.UpComponent(bottom))
		}
		lvl.KillHeight = lowest - killMargin
	}
	return lvl
}
