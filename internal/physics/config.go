package physics

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid physics config")

// PhysicsConfig holds the movement tuning shared by every step.
type PhysicsConfig struct {
	Gravity              rl.Vector3
	MoveSpeed            float32
	JumpVelocity         float32
	MinJumpVelocity      float32
	MaxSlopeAngleDegrees float32
	GroundCheckDistance  float32
	Friction             float32 // horizontal damping per step without input, [0,1)
	PlayerRadius         float32
	PlayerHeight         float32
}

// DefaultConfig returns the tuning the game ships with.
func DefaultConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:              rl.Vector3Scale(Up, -20.0),
		MoveSpeed:            8.0,
		JumpVelocity:         10.0,
		MinJumpVelocity:      4.0,
		MaxSlopeAngleDegrees: 45.0,
		GroundCheckDistance:  0.1,
		Friction:             0.8,
		PlayerRadius:         0.4,
		PlayerHeight:         1.8,
	}
}

// Validate checks the assumptions the geometry code makes about a config.
// The step functions themselves never call it.
func (c PhysicsConfig) Validate() error {
	switch {
	case c.PlayerRadius <= 0 || c.PlayerHeight <= 0:
		return fmt.Errorf("%w: player radius and height must be positive", ErrInvalidConfig)
	case c.PlayerRadius > c.PlayerHeight/2:
		return fmt.Errorf("%w: player radius %.3f exceeds half height %.3f", ErrInvalidConfig, c.PlayerRadius, c.PlayerHeight/2)
	case c.Friction < 0 || c.Friction >= 1:
		return fmt.Errorf("%w: friction %.3f outside [0,1)", ErrInvalidConfig, c.Friction)
	case c.GroundCheckDistance < 0:
		return fmt.Errorf("%w: negative ground check distance", ErrInvalidConfig)
	case c.MaxSlopeAngleDegrees <= 0 || c.MaxSlopeAngleDegrees >= 90:
		return fmt.Errorf("%w: max slope angle %.1f outside (0,90)", ErrInvalidConfig, c.MaxSlopeAngleDegrees)
	case c.MinJumpVelocity > c.JumpVelocity:
		return fmt.Errorf("%w: min jump velocity above jump velocity", ErrInvalidConfig)
	}
	return nil
}

// configFile is the JSON format for physics config overrides.
// Absent keys keep their default.
type configFile struct {
	Gravity              *[3]float32 `json:"gravity,omitempty"`
	MoveSpeed            *float32    `json:"moveSpeed,omitempty"`
	JumpVelocity         *float32    `json:"jumpVelocity,omitempty"`
	MinJumpVelocity      *float32    `json:"minJumpVelocity,omitempty"`
	MaxSlopeAngleDegrees *float32    `json:"maxSlopeAngleDegrees,omitempty"`
	GroundCheckDistance  *float32    `json:"groundCheckDistance,omitempty"`
	Friction             *float32    `json:"friction,omitempty"`
	PlayerRadius         *float32    `json:"playerRadius,omitempty"`
	PlayerHeight         *float32    `json:"playerHeight,omitempty"`
}

// LoadConfig reads a JSON override file on top of DefaultConfig.
func LoadConfig(path string) (PhysicsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PhysicsConfig{}, fmt.Errorf("read physics config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes JSON overrides on top of DefaultConfig and validates
// the result.
func ParseConfig(data []byte) (PhysicsConfig, error) {
	var f configFile
	if err := json.Unmarshal(data, &f); err != nil {
		return PhysicsConfig{}, fmt.Errorf("parse physics config: %w", err)
	}

	cfg := DefaultConfig()
	if f.Gravity != nil {
		cfg.Gravity = rl.Vector3{X: f.Gravity[0], Y: f.Gravity[1], Z: f.Gravity[2]}
	}
	overlay(&cfg.MoveSpeed, f.MoveSpeed)
	overlay(&cfg.JumpVelocity, f.JumpVelocity)
	overlay(&cfg.MinJumpVelocity, f.MinJumpVelocity)
	overlay(&cfg.MaxSlopeAngleDegrees, f.MaxSlopeAngleDegrees)
	overlay(&cfg.GroundCheckDistance, f.GroundCheckDistance)
	overlay(&cfg.Friction, f.Friction)
	overlay(&cfg.PlayerRadius, f.PlayerRadius)
	overlay(&cfg.PlayerHeight, f.PlayerHeight)

	if err := cfg.Validate(); err != nil {
		return PhysicsConfig{}, err
	}
	return cfg, nil
}

func overlay(dst, src *float32) {
	if src != nil {
		*dst = *src
	}
}
