package game

import (
	"io"
	"os"
	"strings"
	"testing"

	"platformer3d/internal/level"
	"platformer3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = float32(1.0 / 60)

var right = physics.Input{Horizontal: 1}

func vec(x, y, z float32) rl.Vector3 {
	return rl.Vector3{X: x, Y: y, Z: z}
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// runway is a long floor with its top at y=0 and the player standing at x=0.
func runway() *level.Level {
	return &level.Level{
		Name:       "runway",
		Bodies:     []physics.Body{physics.NewStaticBox(vec(10, -0.5, 0), vec(30, 1, 4), 1)},
		Spawn:      vec(0, physics.DefaultConfig().PlayerRadius, 0),
		KillHeight: -5,
	}
}

func newSession(lvl *level.Level) *Session {
	return NewSession(lvl, physics.DefaultConfig(), SessionOptions{Logger: quietLogger()})
}

// runUntil updates s until done returns true or the tick limit is hit.
func runUntil(s *Session, in physics.Input, limit int, done func() bool) int {
	for i := 1; i <= limit; i++ {
		s.Update(in, dt)
		if done() {
			return i
		}
	}
	return -1
}

func TestEvent(t *testing.T) {
	var e Event[int]
	var got []int
	e.AddListener(func(v int) { got = append(got, v) })
	e.AddListener(nil)
	e.AddListener(func(v int) { got = append(got, v*10) })

	assert.Equal(t, 2, e.ListenerCount())
	e.Invoke(3)
	assert.Equal(t, []int{3, 30}, got)

	e.RemoveAllListeners()
	e.Invoke(4)
	assert.Len(t, got, 2)
}

func TestControllerLandsAndTeleports(t *testing.T) {
	lvl := runway()
	c := NewController(physics.DefaultConfig(), vec(0, 2, 0))

	landings := 0
	for range 120 {
		c.Update(physics.Input{}, dt, lvl.Bodies)
		if c.JustLanded() {
			landings++
		}
	}
	assert.Positive(t, landings)
	assert.True(t, c.IsGrounded())
	assert.InDelta(t, 0, c.Velocity().Y, 1e-4)

	// Resting on the floor is not a new landing.
	c.Update(physics.Input{}, dt, lvl.Bodies)
	assert.False(t, c.JustLanded())

	c.Teleport(vec(3, 5, 0))
	assert.Equal(t, vec(3, 5, 0), c.Position())
	assert.Equal(t, rl.Vector3{}, c.Velocity())
	assert.False(t, c.IsGrounded())
	assert.False(t, c.JustLanded())
}

func TestSessionReachesGoal(t *testing.T) {
	lvl := runway()
	lvl.Goal = &level.Region{Name: "flag", Center: vec(3, 1, 0), Size: vec(1, 2, 4)}
	s := newSession(lvl)

	var results []Result
	s.Won.AddListener(func(r Result) { results = append(results, r) })

	n := runUntil(s, right, 300, func() bool { return s.State() == Won })
	require.Positive(t, n)
	require.Len(t, results, 1)
	assert.Equal(t, "runway", results[0].Level)
	assert.Equal(t, n, results[0].Ticks)
	assert.Zero(t, results[0].Deaths)

	pos := s.Controller().Position()
	s.Update(right, dt)
	assert.Equal(t, Won, s.State())
	assert.Equal(t, pos, s.Controller().Position())
	assert.Len(t, results, 1)
}

func TestSessionFallRespawn(t *testing.T) {
	lvl := &level.Level{Name: "void", Spawn: vec(0, 0, 0), KillHeight: -5}
	s := newSession(lvl)

	var deaths []Death
	var respawns []rl.Vector3
	s.Died.AddListener(func(d Death) { deaths = append(deaths, d) })
	s.Respawned.AddListener(func(p rl.Vector3) { respawns = append(respawns, p) })

	require.Positive(t, runUntil(s, physics.Input{}, 120, func() bool { return s.State() == Respawning }))
	require.Len(t, deaths, 1)
	assert.Equal(t, CauseFell, deaths[0].Cause)
	assert.Equal(t, StartingLives-1, deaths[0].LivesLeft)
	assert.Less(t, deaths[0].Position.Y, float32(-5))

	n := runUntil(s, physics.Input{}, 120, func() bool { return s.State() == Playing })
	require.Positive(t, n)
	assert.GreaterOrEqual(t, float32(n)*dt, RespawnDelay-dt)
	assert.Equal(t, []rl.Vector3{lvl.Spawn}, respawns)
	assert.Equal(t, lvl.Spawn, s.Controller().Position())
}

func TestSessionGameOver(t *testing.T) {
	lvl := &level.Level{Name: "void", KillHeight: -5}
	s := newSession(lvl)

	overs := 0
	s.GameOver.AddListener(func(Result) { overs++ })

	require.Positive(t, runUntil(s, physics.Input{}, 1000, func() bool { return s.State() == GameOver }))
	assert.Equal(t, 1, overs)
	assert.Zero(t, s.Lives())
	assert.Equal(t, StartingLives, s.Deaths())

	s.Update(physics.Input{}, dt)
	assert.Equal(t, GameOver, s.State())
	assert.Equal(t, 1, overs)
}

func TestSessionHazard(t *testing.T) {
	lvl := runway()
	lvl.Hazards = []level.Region{{Name: "spikes", Center: vec(2, 0.5, 0), Size: vec(1, 1, 4)}}
	s := newSession(lvl)

	var deaths []Death
	s.Died.AddListener(func(d Death) { deaths = append(deaths, d) })

	require.Positive(t, runUntil(s, right, 300, func() bool { return s.State() == Respawning }))
	require.Len(t, deaths, 1)
	assert.Equal(t, CauseHazard, deaths[0].Cause)
	assert.Equal(t, StartingLives-1, s.Lives())
}

func TestSessionCheckpoint(t *testing.T) {
	lvl := runway()
	cp := level.Region{Name: "mid", Center: vec(2, 1, 0), Size: vec(1, 2, 4)}
	lvl.Checkpoints = []level.Region{cp}
	lvl.Hazards = []level.Region{{Center: vec(5, 0.5, 0), Size: vec(1, 1, 4)}}
	s := newSession(lvl)

	var reached []level.Region
	s.Checkpoint.AddListener(func(r level.Region) { reached = append(reached, r) })

	require.Positive(t, runUntil(s, right, 300, func() bool { return s.State() == Respawning }))
	require.Equal(t, []level.Region{cp}, reached)
	assert.Equal(t, cp.Center, s.RespawnPoint())

	require.Positive(t, runUntil(s, physics.Input{}, 120, func() bool { return s.State() == Playing }))
	assert.Equal(t, cp.Center, s.Controller().Position())

	// Standing in the checkpoint again does not re-trigger it.
	s.Update(physics.Input{}, dt)
	assert.Len(t, reached, 1)
}

func TestSessionLandedEvent(t *testing.T) {
	lvl := runway()
	lvl.Spawn = vec(0, 3, 0)
	s := newSession(lvl)

	landed := 0
	s.Landed.AddListener(func(rl.Vector3) { landed++ })

	for range 120 {
		s.Update(physics.Input{}, dt)
	}
	assert.Positive(t, landed)
	assert.Equal(t, Playing, s.State())
	assert.True(t, s.Controller().IsGrounded())
}

func TestSessionRestart(t *testing.T) {
	bounds := level.NewBoundsCache(func(string) (rl.BoundingBox, error) {
		return rl.BoundingBox{Max: vec(1, 1, 1)}, nil
	}, 45)
	_, err := bounds.Get("crate.glb")
	require.NoError(t, err)

	lvl := &level.Level{Name: "void", KillHeight: -5}
	s := NewSession(lvl, physics.DefaultConfig(), SessionOptions{Bounds: bounds, Logger: quietLogger()})
	require.Positive(t, runUntil(s, physics.Input{}, 120, func() bool { return s.State() == Respawning }))

	require.NoError(t, s.Restart())
	assert.Equal(t, Playing, s.State())
	assert.Equal(t, StartingLives, s.Lives())
	assert.Zero(t, s.Deaths())
	assert.Equal(t, lvl.Spawn, s.Controller().Position())
	assert.Zero(t, bounds.Len())
}

func TestSessionRestartReloadsLevel(t *testing.T) {
	// The crate model grows between loads, as if it was edited on disk.
	height := float32(1)
	loads := 0
	bounds := level.NewBoundsCache(func(string) (rl.BoundingBox, error) {
		loads++
		return rl.BoundingBox{Min: vec(-0.5, 0, -0.5), Max: vec(0.5, height, 0.5)}, nil
	}, 45)

	const layout = `{"name": "crates", "spawn": [0, 3, 0], "killHeight": -5,
		"boxes": [{"center": [0, 0, 0], "model": "crate.glb"}]}`
	load := func() (*level.Level, error) {
		opts := level.DefaultOptions()
		opts.Bounds = bounds
		opts.Logger = quietLogger()
		return level.LoadLayout(strings.NewReader(layout), opts)
	}

	lvl, err := load()
	require.NoError(t, err)
	s := NewSession(lvl, physics.DefaultConfig(), SessionOptions{Bounds: bounds, Reload: load, Logger: quietLogger()})
	assert.Equal(t, vec(1, 1, 1), s.Level().Pieces[0].Size)

	height = 2
	require.NoError(t, s.Restart())
	assert.Equal(t, 2, loads)
	assert.NotSame(t, lvl, s.Level())
	assert.Equal(t, vec(1, 2, 1), s.Level().Pieces[0].Size)
	assert.Equal(t, vec(0, 3, 0), s.Controller().Position())
}

func TestSessionRestartKeepsLevelWhenReloadFails(t *testing.T) {
	lvl := runway()
	s := NewSession(lvl, physics.DefaultConfig(), SessionOptions{
		Reload: func() (*level.Level, error) { return nil, os.ErrNotExist },
		Logger: quietLogger(),
	})
	for range 30 {
		s.Update(right, dt)
	}

	err := s.Restart()
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Same(t, lvl, s.Level())
	assert.Equal(t, Playing, s.State())
	assert.Equal(t, lvl.Spawn, s.Controller().Position())
}

func TestSessionNilLevel(t *testing.T) {
	s := NewSession(nil, physics.DefaultConfig(), SessionOptions{Logger: quietLogger()})
	for range 60 {
		s.Update(physics.Input{}, dt)
	}
	assert.Equal(t, Playing, s.State())
	assert.Less(t, s.Controller().Position().Y, float32(0))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "game over", GameOver.String())
	assert.Equal(t, "State(9)", State(9).String())
}
