package level

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lafriks/go-tiled"
	"github.com/sirupsen/logrus"
)

// Names of the TMX layers and object groups a level is built from.
const (
	CollisionLayer   = "collision"
	SpawnGroup       = "spawn"
	GoalGroup        = "goal"
	CheckpointsGroup = "checkpoints"
	HazardsGroup     = "hazards"
)

// tileMapping converts Tiled coordinates (pixels, Y down) into world space
// (Y up, the map's bottom edge at 0, Z = 0).
type tileMapping struct {
	rows       int
	tileWidth  float64
	tileHeight float64
	tileSize   float32
	depth      float32
}

func (m tileMapping) tileCenter(col, row int) rl.Vector3 {
	return rl.Vector3{
		X: (float32(col) + 0.5) * m.tileSize,
		Y: (float32(m.rows-row) - 0.5) * m.tileSize,
	}
}

func (m tileMapping) point(px, py float64) rl.Vector3 {
	return rl.Vector3{
		X: float32(px/m.tileWidth) * m.tileSize,
		Y: (float32(m.rows) - float32(py/m.tileHeight)) * m.tileSize,
	}
}

func (m tileMapping) region(o *tiled.Object) Region {
	return Region{
		Name:   o.Name,
		Center: m.point(o.X+o.Width/2, o.Y+o.Height/2),
		Size: rl.Vector3{
			X: float32(o.Width/m.tileWidth) * m.tileSize,
			Y: float32(o.Height/m.tileHeight) * m.tileSize,
			Z: m.depth,
		},
	}
}

// LoadTMX builds a level from a Tiled map. Every non-empty tile of the
// "collision" layer becomes a static box. Objects in the "spawn", "goal",
// "checkpoints" and "hazards" groups become the spawn point and regions.
// fsys can be an embed.FS or os.DirFS.
func LoadTMX(fsys fs.FS, tmxPath string, opts Options) (*Level, error) {
	opts = opts.withDefaults()

	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	m := tileMapping{
		rows:       levelMap.Height,
		tileWidth:  float64(levelMap.TileWidth),
		tileHeight: float64(levelMap.TileHeight),
		tileSize:   opts.TileSize,
		depth:      opts.Depth,
	}

	b := newBuilder(strings.TrimSuffix(path.Base(tmxPath), ".tmx"), opts.MaxSlopeAngleDegrees)

	found := false
	for _, layer := range levelMap.Layers {
		if layer.Name != CollisionLayer {
			continue
		}
		found = true
		for row := 0; row < levelMap.Height; row++ {
			addRow(b, m, opts.MergeRows, func(col int) bool {
				return !layer.Tiles[row*levelMap.Width+col].IsNil()
			}, row, levelMap.Width)
		}
		break
	}
	if !found {
		opts.Logger.WithField("path", tmxPath).Warn("TMX has no collision layer")
	}

	spawned := false
	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case SpawnGroup:
			if len(og.Objects) > 0 && !spawned {
				o := og.Objects[0]
				b.lvl.Spawn = m.point(o.X+o.Width/2, o.Y+o.Height/2)
				spawned = true
			}
		case GoalGroup:
			if len(og.Objects) > 0 {
				goal := m.region(og.Objects[0])
				b.lvl.Goal = &goal
			}
		case CheckpointsGroup:
			for _, o := range og.Objects {
				b.lvl.Checkpoints = append(b.lvl.Checkpoints, m.region(o))
			}
		case HazardsGroup:
			for _, o := range og.Objects {
				b.lvl.Hazards = append(b.lvl.Hazards, m.region(o))
			}
		}
	}
	if !spawned {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, ErrNoSpawn)
	}

	lvl := b.finish(nil)
	opts.Logger.WithFields(logrus.Fields{
		"level":       lvl.Name,
		"bodies":      len(lvl.Bodies),
		"checkpoints": len(lvl.Checkpoints),
		"hazards":     len(lvl.Hazards),
	}).Debug("loaded TMX level")
	return lvl, nil
}

// addRow emits the boxes of one tile row, either one per tile or one per
// horizontal run of solid tiles.
func addRow(b *builder, m tileMapping, merge bool, solid func(col int) bool, row, width int) {
	size := rl.Vector3{X: m.tileSize, Y: m.tileSize, Z: m.depth}

	for col := 0; col < width; col++ {
		if !solid(col) {
			continue
		}
		if !merge {
			b.addBox(m.tileCenter(col, row), size)
			continue
		}

		start := col
		for col+1 < width && solid(col+1) {
			col++
		}
		run := col - start + 1

		first := m.tileCenter(start, row)
		last := m.tileCenter(col, row)
		center := rl.Vector3Scale(rl.Vector3Add(first, last), 0.5)
		b.addBox(center, rl.Vector3{X: float32(run) * m.tileSize, Y: m.tileSize, Z: m.depth})
	}
}
