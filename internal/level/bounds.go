package level

import (
	"fmt"
	"os"
	"sync"

	"platformer3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ModelBounds is the collision box derived from a model file.
type ModelBounds struct {
	Box         rl.BoundingBox
	HalfExtents rl.Vector3
	Surface     physics.SurfaceType
}

// Center is the middle of the model's bounding box in model space.
func (b ModelBounds) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(b.Box.Min, b.Box.Max), 0.5)
}

// Size is the full extent of the bounding box.
func (b ModelBounds) Size() rl.Vector3 {
	return rl.Vector3Scale(b.HalfExtents, 2)
}

// BoundsLoader reads the bounding box of a model file.
type BoundsLoader func(path string) (rl.BoundingBox, error)

// LoadModelBounds loads a model with raylib and returns its bounding box.
// raylib needs an initialized window (a hidden one is fine).
func LoadModelBounds(path string) (rl.BoundingBox, error) {
	if _, err := os.Stat(path); err != nil {
		return rl.BoundingBox{}, fmt.Errorf("model %s: %w", path, err)
	}

	model := rl.LoadModel(path)
	defer rl.UnloadModel(model)

	if model.MeshCount == 0 {
		return rl.BoundingBox{}, fmt.Errorf("model %s: no meshes", path)
	}
	return rl.GetModelBoundingBox(model), nil
}

// BoundsCache memoizes model bounds by path. Clear it whenever a level is
// (re)started so edited models are picked up.
type BoundsCache struct {
	mu       sync.Mutex
	load     BoundsLoader
	maxSlope float32
	entries  map[string]ModelBounds
}

// NewBoundsCache creates a cache. A nil loader means LoadModelBounds.
func NewBoundsCache(load BoundsLoader, maxSlopeAngleDegrees float32) *BoundsCache {
	if load == nil {
		load = LoadModelBounds
	}
	return &BoundsCache{
		load:     load,
		maxSlope: maxSlopeAngleDegrees,
		entries:  make(map[string]ModelBounds),
	}
}

// Get returns the bounds for path, loading them on first use.
func (c *BoundsCache) Get(path string) (ModelBounds, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if b, ok := c.entries[path]; ok {
		return b, nil
	}

	box, err := c.load(path)
	if err != nil {
		return ModelBounds{}, fmt.Errorf("bounds of %s: %w", path, err)
	}

	half := rl.Vector3Scale(rl.Vector3Subtract(box.Max, box.Min), 0.5)
	b := ModelBounds{
		Box:         box,
		HalfExtents: half,
		Surface:     physics.AnalyzeSurface(half, c.maxSlope),
	}
	c.entries[path] = b
	return b, nil
}

func (c *BoundsCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every cached entry.
func (c *BoundsCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
