package level

import (
	"encoding/json"
	"fmt"
	"io"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

// --- JSON types ---

type layoutFile struct {
	Name        string      `json:"name"`
	Spawn       *[3]float32 `json:"spawn"`
	Goal        *regionDef  `json:"goal,omitempty"`
	KillHeight  *float32    `json:"killHeight,omitempty"`
	Boxes       []boxDef    `json:"boxes"`
	Checkpoints []regionDef `json:"checkpoints,omitempty"`
	Hazards     []regionDef `json:"hazards,omitempty"`
}

// boxDef is either an explicit box or a model whose bounds give the size.
// For models, center is where the model's origin is placed.
type boxDef struct {
	Center [3]float32 `json:"center"`
	Size   [3]float32 `json:"size,omitempty"`
	Model  string     `json:"model,omitempty"`
}

type regionDef struct {
	Name   string     `json:"name,omitempty"`
	Center [3]float32 `json:"center"`
	Size   [3]float32 `json:"size"`
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func (d regionDef) region() Region {
	return Region{Name: d.Name, Center: vec3(d.Center), Size: vec3(d.Size)}
}

// --- Loading ---

// LoadLayout builds a level from a JSON layout:
//
//	{"name": "...", "spawn": [x,y,z], "killHeight": -10,
//	 "goal": {"center": [...], "size": [...]},
//	 "boxes": [{"center": [...], "size": [...]}, {"center": [...], "model": "rock.glb"}],
//	 "checkpoints": [...], "hazards": [...]}
//
// Boxes with a model need opts.Bounds.
func LoadLayout(r io.Reader, opts Options) (*Level, error) {
	opts = opts.withDefaults()

	var lf layoutFile
	if err := json.NewDecoder(r).Decode(&lf); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if lf.Spawn == nil {
		return nil, fmt.Errorf("layout %q: %w", lf.Name, ErrNoSpawn)
	}

	b := newBuilder(lf.Name, opts.MaxSlopeAngleDegrees)
	for i, def := range lf.Boxes {
		center, size := vec3(def.Center), vec3(def.Size)

		if def.Model != "" {
			if opts.Bounds == nil {
				return nil, fmt.Errorf("layout %q box %d: model %s needs a bounds cache", lf.Name, i, def.Model)
			}
			mb, err := opts.Bounds.Get(def.Model)
			if err != nil {
				return nil, fmt.Errorf("layout %q box %d: %w", lf.Name, i, err)
			}
			center = rl.Vector3Add(center, mb.Center())
			size = mb.Size()
		}

		if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
			opts.Logger.WithFields(logrus.Fields{"layout": lf.Name, "box": i}).Warn("skipping box with empty size")
			continue
		}
		b.addBox(center, size)
	}

	b.lvl.Spawn = vec3(*lf.Spawn)
	if lf.Goal != nil {
		goal := lf.Goal.region()
		b.lvl.Goal = &goal
	}
	for _, d := range lf.Checkpoints {
		b.lvl.Checkpoints = append(b.lvl.Checkpoints, d.region())
	}
	for _, d := range lf.Hazards {
		b.lvl.Hazards = append(b.lvl.Hazards, d.region())
	}

	lvl := b.finish(lf.KillHeight)
	opts.Logger.WithFields(logrus.Fields{
		"level":  lvl.Name,
		"bodies": len(lvl.Bodies),
	}).Debug("loaded layout")
	return lvl, nil
}
