// Command platformer runs a level headless with scripted input and reports
// where the player ends up.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"platformer3d/internal/game"
	"platformer3d/internal/level"
	"platformer3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

const appName = "platformer3d"

type options struct {
	levelPath  string
	levelIndex int
	configPath string
	ticks      int
	dt         float64
	script     string
	retries    int
	save       bool
}

func main() {
	var opts options
	flag.StringVar(&opts.levelPath, "level", "", "level file (.tmx or .json)")
	flag.IntVar(&opts.levelIndex, "index", 0, "level number recorded in the save data")
	flag.StringVar(&opts.configPath, "config", "", "physics config JSON overrides")
	flag.IntVar(&opts.ticks, "ticks", 600, "ticks to simulate")
	flag.Float64Var(&opts.dt, "dt", 1.0/60, "seconds per tick")
	flag.StringVar(&opts.script, "input", "", "input script, e.g. R60,J,R30,N20")
	flag.IntVar(&opts.retries, "retries", 0, "restarts (with a level reload) allowed after game over")
	flag.BoolVar(&opts.save, "save", false, "record the run in the save data")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}
	if *verbose {
		log.Level = logrus.DebugLevel
	}

	if err := run(opts, log); err != nil {
		log.WithError(err).Error("platformer failed")
		os.Exit(1)
	}
}

func run(opts options, log *logrus.Logger) error {
	cfg := physics.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = physics.LoadConfig(opts.configPath); err != nil {
			return err
		}
	}

	inputs, err := parseScript(opts.script)
	if err != nil {
		return err
	}

	loader, closeWindow := modelBoundsLoader()
	defer closeWindow()
	bounds := level.NewBoundsCache(loader, cfg.MaxSlopeAngleDegrees)

	lvl := loadLevel(opts.levelPath, cfg, bounds, log)
	session := game.NewSession(lvl, cfg, game.SessionOptions{
		Bounds: bounds,
		Reload: func() (*level.Level, error) { return reloadLevel(opts.levelPath, cfg, bounds, log) },
		Logger: log,
	})

	session.Landed.AddListener(func(pos rl.Vector3) {
		log.WithField("position", pos).Debug("landed")
	})
	session.Died.AddListener(func(d game.Death) {
		log.WithFields(logrus.Fields{"cause": d.Cause, "lives": d.LivesLeft}).Debug("died")
	})

	dt := float32(opts.dt)
	ctrl := session.Controller()
	for tick := 0; tick < opts.ticks; tick++ {
		var in physics.Input
		if tick < len(inputs) {
			in = inputs[tick]
		}

		wasGrounded := ctrl.IsGrounded()
		session.Update(in, dt)
		if wasGrounded && !ctrl.IsGrounded() && session.State() == game.Playing {
			log.WithFields(logrus.Fields{"tick": tick, "y": physics.UpComponent(ctrl.Position())}).Debug("airborne")
		}

		if session.State() == game.GameOver && opts.retries > 0 {
			opts.retries--
			if err := session.Restart(); err != nil {
				log.WithError(err).Warn("restarted without reloading")
			}
			continue
		}
		if s := session.State(); s == game.Won || s == game.GameOver {
			break
		}
	}

	p := ctrl.State()
	fmt.Printf("level=%s state=%s\n", session.Level().Name, session.State())
	fmt.Printf("position=(%.3f, %.3f, %.3f) velocity=(%.3f, %.3f, %.3f) grounded=%v\n",
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Velocity.X, p.Velocity.Y, p.Velocity.Z, p.IsGrounded)
	fmt.Printf("lives=%d deaths=%d\n", session.Lives(), session.Deaths())

	if opts.save {
		return saveRun(opts.levelIndex, session, log)
	}
	return nil
}

// loadLevel falls back to an empty level when the file cannot be used.
func loadLevel(path string, cfg physics.PhysicsConfig, bounds *level.BoundsCache, log logrus.FieldLogger) *level.Level {
	if path == "" {
		log.Info("no level given, running an empty one")
		return level.Empty()
	}

	lvl, err := reloadLevel(path, cfg, bounds, log)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("level failed to load, running an empty one")
		return level.Empty()
	}
	log.WithFields(logrus.Fields{
		"level":  lvl.Name,
		"bodies": len(lvl.Bodies),
	}).Info("level loaded")
	return lvl
}

// reloadLevel reads the level file again. Unlike loadLevel it reports
// errors instead of falling back.
func reloadLevel(path string, cfg physics.PhysicsConfig, bounds *level.BoundsCache, log logrus.FieldLogger) (*level.Level, error) {
	if path == "" {
		return level.Empty(), nil
	}

	opts := level.DefaultOptions()
	opts.MaxSlopeAngleDegrees = cfg.MaxSlopeAngleDegrees
	opts.Bounds = bounds
	opts.Logger = log
	return level.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path), opts)
}

func saveRun(levelIndex int, session *game.Session, log logrus.FieldLogger) error {
	store, err := game.OpenGDataStore(appName)
	if err != nil {
		return err
	}
	p, err := game.RecordRun(store, levelIndex, session.Result(), session.State() == game.Won)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"best":   p.BestLevel,
		"wins":   p.Wins,
		"deaths": p.Deaths,
	}).Info("progress saved")
	return nil
}

// modelBoundsLoader opens a hidden raylib window the first time a model
// is referenced. The returned func closes it again.
func modelBoundsLoader() (level.BoundsLoader, func()) {
	var once sync.Once
	opened := false

	load := func(path string) (rl.BoundingBox, error) {
		once.Do(func() {
			rl.SetTraceLogLevel(rl.LogWarning)
			rl.SetConfigFlags(rl.FlagWindowHidden)
			rl.InitWindow(1, 1, appName)
			opened = true
		})
		return level.LoadModelBounds(path)
	}
	closeWindow := func() {
		if opened {
			rl.CloseWindow()
		}
	}
	return load, closeWindow
}
