package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caldera.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 800
  height: 600
physics:
  gravity: [0, -3.7, 0]
scene:
  preset: rain
  seed: 99
log:
  level: debug
  development: true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, DefaultWindowTitle, cfg.Window.Title, "unset fields keep defaults")
	assert.Equal(t, [3]float32{0, -3.7, 0}, cfg.Physics.Gravity)
	assert.Equal(t, DefaultFixedDt, cfg.Physics.FixedDt)
	assert.Equal(t, "rain", cfg.Scene.Preset)
	assert.Equal(t, int64(99), cfg.Scene.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [not: a: map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidBodySpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bodies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scene:
  bodies:
    - type: dynamic
      shape: sphere
      radius: 1
    - type: dynamic
      shape: wedge
`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body 1")
	assert.Contains(t, err.Error(), "wedge")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Window.Title = "roundtrip"
	cfg.Scene.Bodies = []BodySpec{
		{
			Name:     "ball",
			Type:     BodyDynamic,
			Shape:    ShapeSphere,
			Radius:   0.5,
			Position: [3]float32{0, 10, 0},
			Mass:     2,
			Friction: 0.4,
		},
	}

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestBodySpecValidate(t *testing.T) {
	valid := BodySpec{Type: BodyDynamic, Shape: ShapeSphere, Radius: 1, Friction: 0.5}

	tests := []struct {
		name    string
		mutate  func(*BodySpec)
		wantErr string
	}{
		{"valid sphere", func(s *BodySpec) {}, ""},
		{"unknown type", func(s *BodySpec) { s.Type = "squishy" }, "body type"},
		{"unknown shape", func(s *BodySpec) { s.Shape = "torus" }, "shape"},
		{"zero radius", func(s *BodySpec) { s.Radius = 0 }, "radius"},
		{"flat box", func(s *BodySpec) {
			s.Shape = ShapeBox
			s.HalfExtents = [3]float32{1, 0, 1}
		}, "half extents"},
		{"valid box", func(s *BodySpec) {
			s.Shape = ShapeBox
			s.HalfExtents = [3]float32{1, 1, 1}
		}, ""},
		{"hull too small", func(s *BodySpec) {
			s.Shape = ShapeHull
			s.Points = [][3]float32{{0, 0, 0}, {1, 0, 0}}
		}, "hull"},
		{"mesh ragged indices", func(s *BodySpec) {
			s.Shape = ShapeMesh
			s.Vertices = [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}}
			s.Indices = []uint32{0, 1, 2, 0}
		}, "multiple of 3"},
		{"negative mass", func(s *BodySpec) { s.Mass = -1 }, "mass"},
		{"negative friction", func(s *BodySpec) { s.Friction = -0.1 }, "friction"},
		{"restitution above one", func(s *BodySpec) { s.Restitution = 1.5 }, "restitution"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := valid
			tt.mutate(&spec)
			err := spec.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
