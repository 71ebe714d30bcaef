// Package config loads and saves the engine configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
	DefaultWindowTitle  = "caldera"
	DefaultTargetFPS    = 60
	DefaultFixedDt      = float32(1.0 / 120.0)
	DefaultMaxContacts  = 4096
	DefaultLogLevel     = "info"
	DefaultScenePreset  = "arena"
)

// Body type names accepted by BodySpec.Type.
const (
	BodyStatic    = "static"
	BodyDynamic   = "dynamic"
	BodyKinematic = "kinematic"
)

// Shape names accepted by BodySpec.Shape.
const (
	ShapeSphere = "sphere"
	ShapeBox    = "box"
	ShapeHull   = "hull"
	ShapeMesh   = "mesh"
)

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Physics PhysicsConfig `yaml:"physics"`
	Scene   SceneConfig   `yaml:"scene"`
	Log     LogConfig     `yaml:"log"`
	Overlay OverlayConfig `yaml:"overlay"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
}

type PhysicsConfig struct {
	Gravity     [3]float32 `yaml:"gravity"`
	FixedDt     float32    `yaml:"fixed_dt"`
	MaxContacts int        `yaml:"max_contacts"`
}

type SceneConfig struct {
	Preset string     `yaml:"preset"`
	Seed   int64      `yaml:"seed"`
	Bodies []BodySpec `yaml:"bodies"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type OverlayConfig struct {
	ShowFPS       bool `yaml:"show_fps"`
	ShowStepStats bool `yaml:"show_step_stats"`
	GridVisible   bool `yaml:"grid_visible"`
}

// BodySpec is one declarative body. Zero-valued Scale means unit scale and
// Mass <= 0 falls back to the engine default; everything else is used
// verbatim.
type BodySpec struct {
	Name        string       `yaml:"name,omitempty"`
	Type        string       `yaml:"type"`
	Shape       string       `yaml:"shape"`
	Radius      float32      `yaml:"radius,omitempty"`
	HalfExtents [3]float32   `yaml:"half_extents,omitempty"`
	Scale       [3]float32   `yaml:"scale,omitempty"`
	Points      [][3]float32 `yaml:"points,omitempty"`
	Vertices    [][3]float32 `yaml:"vertices,omitempty"`
	Indices     []uint32     `yaml:"indices,omitempty"`
	Position    [3]float32   `yaml:"position"`
	RotationDeg [3]float32   `yaml:"rotation_deg,omitempty"`
	Mass        float32      `yaml:"mass,omitempty"`
	Friction    float32      `yaml:"friction"`
	Restitution float32      `yaml:"restitution,omitempty"`
	NoGravity   bool         `yaml:"no_gravity,omitempty"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     DefaultWindowWidth,
			Height:    DefaultWindowHeight,
			Title:     DefaultWindowTitle,
			TargetFPS: DefaultTargetFPS,
		},
		Physics: PhysicsConfig{
			Gravity:     [3]float32{0, -9.81, 0},
			FixedDt:     DefaultFixedDt,
			MaxContacts: DefaultMaxContacts,
		},
		Scene: SceneConfig{
			Preset: DefaultScenePreset,
			Seed:   1,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Overlay: OverlayConfig{
			ShowFPS:     true,
			GridVisible: true,
		},
	}
}

// Load reads path over Default. A missing file yields the defaults; a file
// that fails to parse or validate is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Physics.FixedDt <= 0 {
		return fmt.Errorf("physics fixed_dt %v must be positive", c.Physics.FixedDt)
	}
	if c.Physics.MaxContacts < 0 {
		return fmt.Errorf("physics max_contacts %d must not be negative", c.Physics.MaxContacts)
	}
	for i := range c.Scene.Bodies {
		if err := c.Scene.Bodies[i].Validate(); err != nil {
			return fmt.Errorf("scene body %d: %w", i, err)
		}
	}
	return nil
}

func (s *BodySpec) Validate() error {
	switch s.Type {
	case BodyStatic, BodyDynamic, BodyKinematic:
	default:
		return fmt.Errorf("unknown body type %q", s.Type)
	}
	switch s.Shape {
	case ShapeSphere:
		if s.Radius <= 0 {
			return fmt.Errorf("sphere radius %v must be positive", s.Radius)
		}
	case ShapeBox:
		for _, h := range s.HalfExtents {
			if h <= 0 {
				return fmt.Errorf("box half extents %v must be positive", s.HalfExtents)
			}
		}
	case ShapeHull:
		if len(s.Points) < 3 {
			return fmt.Errorf("hull needs at least 3 points, got %d", len(s.Points))
		}
	case ShapeMesh:
		if len(s.Vertices) == 0 || len(s.Indices) == 0 {
			return fmt.Errorf("mesh needs vertices and indices")
		}
		if len(s.Indices)%3 != 0 {
			return fmt.Errorf("mesh index count %d must be a multiple of 3", len(s.Indices))
		}
	default:
		return fmt.Errorf("unknown shape %q", s.Shape)
	}
	if s.Mass < 0 {
		return fmt.Errorf("mass %v must not be negative", s.Mass)
	}
	if s.Friction < 0 {
		return fmt.Errorf("friction %v must not be negative", s.Friction)
	}
	if s.Restitution < 0 || s.Restitution > 1 {
		return fmt.Errorf("restitution %v must be in [0, 1]", s.Restitution)
	}
	return nil
}
