package game

import (
	"fmt"

	"platformer3d/internal/level"
	"platformer3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

const (
	StartingLives = 3
	// RespawnDelay is how long the player stays dead, in seconds.
	RespawnDelay = float32(1.0)
)

type State int

const (
	Playing State = iota
	Respawning
	Won
	GameOver
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Respawning:
		return "respawning"
	case Won:
		return "won"
	case GameOver:
		return "game over"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// DeathCause says what killed the player.
type DeathCause string

const (
	CauseHazard DeathCause = "hazard"
	CauseFell   DeathCause = "fell"
)

type Death struct {
	Cause     DeathCause
	Position  rl.Vector3
	LivesLeft int
}

// Result summarizes a finished run.
type Result struct {
	Level  string
	Deaths int
	Ticks  int
	Time   float32
}

// SessionOptions are the optional collaborators of a Session.
type SessionOptions struct {
	// Bounds is cleared on every Restart, before Reload runs.
	Bounds *level.BoundsCache
	// Reload rebuilds the level on Restart. Without it the current level
	// is reused as is.
	Reload func() (*level.Level, error)
	Logger logrus.FieldLogger
}

// Session runs one level: lives, checkpoints, respawns and the goal.
type Session struct {
	lvl    *level.Level
	ctrl   *Controller
	bounds *level.BoundsCache
	reload func() (*level.Level, error)
	base   logrus.FieldLogger
	log    logrus.FieldLogger

	state        State
	lives        int
	deaths       int
	checkpoint   int
	respawnAt    rl.Vector3
	respawnTimer float32
	ticks        int
	elapsed      float32

	Died       Event[Death]
	Respawned  Event[rl.Vector3]
	Checkpoint Event[level.Region]
	Won        Event[Result]
	GameOver   Event[Result]
	Landed     Event[rl.Vector3]
}

// NewSession starts lvl with the player at its spawn point.
func NewSession(lvl *level.Level, cfg physics.PhysicsConfig, opts SessionOptions) *Session {
	if lvl == nil {
		lvl = level.Empty()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Session{
		lvl:    lvl,
		ctrl:   NewController(cfg, lvl.Spawn),
		bounds: opts.Bounds,
		reload: opts.Reload,
		base:   log,
		log:    log.WithField("level", lvl.Name),
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.state = Playing
	s.lives = StartingLives
	s.deaths = 0
	s.checkpoint = -1
	s.respawnAt = s.lvl.Spawn
	s.respawnTimer = 0
	s.ticks = 0
	s.elapsed = 0
	s.ctrl.Teleport(s.lvl.Spawn)
}

// Restart puts the level back to its initial state. Cached model bounds are
// dropped and the level is rebuilt through Reload, so edited files are
// picked up. If the reload fails the old level is restarted and the error
// returned.
func (s *Session) Restart() error {
	if s.bounds != nil {
		s.bounds.Clear()
	}

	var err error
	if s.reload != nil {
		var lvl *level.Level
		if lvl, err = s.reload(); err == nil && lvl != nil {
			s.lvl = lvl
			s.log = s.base.WithField("level", lvl.Name)
		} else if err != nil {
			s.log.WithError(err).Warn("level reload failed, restarting the loaded level")
			err = fmt.Errorf("reload level: %w", err)
		}
	}

	s.reset()
	s.log.Info("level restarted")
	return err
}

// Update advances the session by one tick.
func (s *Session) Update(in physics.Input, dt float32) {
	if dt < 0 {
		dt = 0
	}

	switch s.state {
	case Playing:
		s.ticks++
		s.elapsed += dt
		s.play(in, dt)
	case Respawning:
		s.ticks++
		s.elapsed += dt
		s.respawnTimer -= dt
		if s.respawnTimer <= 0 {
			s.respawn()
		}
	}
}

func (s *Session) play(in physics.Input, dt float32) {
	s.ctrl.Update(in, dt, s.lvl.Bodies)
	pos := s.ctrl.Position()
	radius := s.ctrl.Config().PlayerRadius

	if s.ctrl.JustLanded() {
		s.Landed.Invoke(pos)
	}

	if physics.UpComponent(pos) < s.lvl.KillHeight {
		s.die(CauseFell, pos)
		return
	}
	for _, h := range s.lvl.Hazards {
		if h.Touches(pos, radius) {
			s.die(CauseHazard, pos)
			return
		}
	}

	for i, cp := range s.lvl.Checkpoints {
		if i == s.checkpoint || !cp.Touches(pos, radius) {
			continue
		}
		s.checkpoint = i
		s.respawnAt = cp.Center
		s.log.WithField("checkpoint", cp.Name).Info("checkpoint reached")
		s.Checkpoint.Invoke(cp)
	}

	if s.lvl.Goal != nil && s.lvl.Goal.Touches(pos, radius) {
		s.state = Won
		res := s.result()
		s.log.WithFields(logrus.Fields{
			"deaths": res.Deaths,
			"time":   res.Time,
		}).Info("level complete")
		s.Won.Invoke(res)
	}
}

func (s *Session) die(cause DeathCause, pos rl.Vector3) {
	s.lives--
	s.deaths++

	d := Death{Cause: cause, Position: pos, LivesLeft: s.lives}
	s.log.WithFields(logrus.Fields{
		"cause": cause,
		"lives": s.lives,
	}).Info("player died")
	s.Died.Invoke(d)

	if s.lives <= 0 {
		s.state = GameOver
		s.log.WithField("deaths", s.deaths).Info("game over")
		s.GameOver.Invoke(s.result())
		return
	}

	s.state = Respawning
	s.respawnTimer = RespawnDelay
}

func (s *Session) respawn() {
	s.ctrl.Teleport(s.respawnAt)
	s.state = Playing
	s.log.WithField("position", s.respawnAt).Debug("respawned")
	s.Respawned.Invoke(s.respawnAt)
}

func (s *Session) result() Result {
	return Result{
		Level:  s.lvl.Name,
		Deaths: s.deaths,
		Ticks:  s.ticks,
		Time:   s.elapsed,
	}
}

func (s *Session) State() State             { return s.state }
func (s *Session) Lives() int               { return s.lives }
func (s *Session) Deaths() int              { return s.deaths }
func (s *Session) Level() *level.Level      { return s.lvl }
func (s *Session) Controller() *Controller  { return s.ctrl }
func (s *Session) RespawnPoint() rl.Vector3 { return s.respawnAt }
func (s *Session) Result() Result           { return s.result() }
