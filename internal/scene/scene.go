// Package scene tracks physics bodies for rendering, drives the free camera,
// and produces the render constants the GPU contract consumes.
package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/caldera3d/caldera/internal/physics"
	"github.com/caldera3d/caldera/internal/primitives"
	"github.com/caldera3d/caldera/internal/shadertypes"
	"github.com/caldera3d/caldera/internal/worldgen"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Tracked is one body the scene draws. Untracked bodies still simulate; they
// are just invisible.
type Tracked struct {
	Body  physics.Body
	Shape *physics.Shape
	Name  string
	Color rl.Color
}

// Scene holds a free camera and the bodies to draw. Update runs camera logic;
// Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool

	// Lights feeds the light buffer; entries beyond the buffer limit are
	// ignored by Frame.
	Lights []shadertypes.PBRLight

	log        *zap.Logger
	world      *physics.World
	tracked    []Tracked
	cursorDone bool

	rayFrom   mgl32.Vec3
	rayTo     mgl32.Vec3
	rayActive bool
	lastHits  []physics.Hit
}

// New returns a scene over the given world with a perspective camera looking
// at the origin. Grid is visible by default.
func New(log *zap.Logger, world *physics.World) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scene{log: log, world: world, Lights: DefaultLights()}
	s.Camera.Position = rl.NewVector3(14, 12, 14)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	s.GridVisible = true
	return s
}

// World returns the world this scene draws.
func (s *Scene) World() *physics.World { return s.world }

// Track registers a body for drawing. The color is derived from the shape
// kind.
func (s *Scene) Track(b physics.Body, shape *physics.Shape, name string) {
	if b.IsZero() || shape == nil {
		return
	}
	s.tracked = append(s.tracked, Tracked{Body: b, Shape: shape, Name: name, Color: colorFor(shape.Kind())})
}

// Populate applies spawns to the world and tracks every body that was
// created. Returns the handles, aligned with spawns.
func (s *Scene) Populate(spawns []worldgen.Spawn) []physics.Body {
	bodies := worldgen.Apply(s.world, spawns)
	for i, b := range bodies {
		if b.IsZero() {
			continue
		}
		s.Track(b, spawns[i].Shape, spawns[i].Name)
	}
	return bodies
}

// Sync drops tracked entries whose bodies were removed from the world. Call
// after removing bodies and before Draw.
func (s *Scene) Sync() {
	kept := s.tracked[:0]
	for _, tr := range s.tracked {
		if s.world.Alive(tr.Body) {
			kept = append(kept, tr)
		}
	}
	if dropped := len(s.tracked) - len(kept); dropped > 0 {
		s.log.Debug("dropped stale tracked bodies", zap.Int("count", dropped))
	}
	s.tracked = kept
}

// TrackedCount returns the number of bodies the scene draws.
func (s *Scene) TrackedCount() int { return len(s.tracked) }

// TrackedBodies returns the tracked entries. The slice is owned by the scene.
func (s *Scene) TrackedBodies() []Tracked { return s.tracked }

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) { s.GridVisible = visible }

// Update runs once per frame: captures the cursor and applies raylib free
// camera controls (mouse look, keyboard move).
func (s *Scene) Update() {
	if !s.cursorDone {
		rl.DisableCursor()
		s.cursorDone = true
	}
	rl.UpdateCamera(&s.Camera, rl.CameraFree)
}

// sunDir is the direction-to-light used for the immediate-mode lit shading.
var sunDir = [3]float32{0.4, 1, 0.3}

// Draw renders the grid, every tracked body, and the last pick ray. Call
// after ClearBackground and before any 2D overlay.
func (s *Scene) Draw(reg *primitives.Registry) {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}

	reg.SetView([3]float32{s.Camera.Position.X, s.Camera.Position.Y, s.Camera.Position.Z}, sunDir)
	for _, tr := range s.tracked {
		t, ok := s.world.Transform(tr.Body)
		if !ok {
			continue
		}
		reg.Draw(tr.Shape, t.Position, t.Orientation, tr.Color)
	}

	s.drawPickRay()
	rl.EndMode3D()
}

func colorFor(kind physics.ShapeKind) rl.Color {
	switch kind {
	case physics.ShapeSphere:
		return rl.NewColor(235, 122, 52, 255)
	case physics.ShapeBox:
		return rl.NewColor(108, 160, 220, 255)
	case physics.ShapeConvexHull:
		return rl.NewColor(150, 220, 140, 255)
	case physics.ShapeConcaveMesh:
		return rl.NewColor(200, 200, 190, 255)
	}
	return rl.Gray
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and axis
// lines.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}

func vecFromRl(v rl.Vector3) mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

func rlVec(v mgl32.Vec3) rl.Vector3 { return rl.NewVector3(v.X(), v.Y(), v.Z()) }
