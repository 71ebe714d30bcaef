package worldgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/caldera3d/caldera/internal/config"
	"github.com/caldera3d/caldera/internal/physics"
)

func TestFromSpecsConvertsShapes(t *testing.T) {
	specs := []config.BodySpec{
		{
			Name: "ball", Type: config.BodyDynamic, Shape: config.ShapeSphere,
			Radius: 0.5, Position: [3]float32{0, 10, 0},
			Mass: 2, Friction: 0.4, Restitution: 0.3,
		},
		{
			Name: "crate", Type: config.BodyStatic, Shape: config.ShapeBox,
			HalfExtents: [3]float32{1, 2, 3}, Scale: [3]float32{2, 1, 1},
		},
		{
			Name: "rock", Type: config.BodyDynamic, Shape: config.ShapeHull,
			Points: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		},
		{
			Name: "floor", Type: config.BodyStatic, Shape: config.ShapeMesh,
			Vertices: [][3]float32{{-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1}},
			Indices:  []uint32{0, 1, 2, 0, 2, 3},
		},
	}

	spawns, err := FromSpecs(specs)
	if err != nil {
		t.Fatalf("FromSpecs: %v", err)
	}
	if len(spawns) != 4 {
		t.Fatalf("spawns = %d, want 4", len(spawns))
	}

	ball := spawns[0]
	if ball.Shape.Kind() != physics.ShapeSphere || ball.Shape.Radius() != 0.5 {
		t.Errorf("ball shape = %v r=%v", ball.Shape.Kind(), ball.Shape.Radius())
	}
	if ball.Type != physics.Dynamic {
		t.Errorf("ball type = %v", ball.Type)
	}
	if ball.Properties.Mass != 2 || ball.Properties.Friction != 0.4 || !ball.Properties.GravityEnabled {
		t.Errorf("ball properties = %+v", ball.Properties)
	}
	if ball.Transform.Position != (mgl32.Vec3{0, 10, 0}) {
		t.Errorf("ball position = %v", ball.Transform.Position)
	}

	crate := spawns[1]
	if crate.Shape.Kind() != physics.ShapeBox {
		t.Errorf("crate shape = %v", crate.Shape.Kind())
	}
	if crate.Shape.Scale() != (mgl32.Vec3{2, 1, 1}) {
		t.Errorf("crate scale = %v, want spec scale", crate.Shape.Scale())
	}

	if spawns[2].Shape.Kind() != physics.ShapeConvexHull {
		t.Errorf("rock shape = %v", spawns[2].Shape.Kind())
	}
	if spawns[3].Shape.Kind() != physics.ShapeConcaveMesh {
		t.Errorf("floor shape = %v", spawns[3].Shape.Kind())
	}
}

func TestFromSpecsZeroScaleMeansUnit(t *testing.T) {
	spawns, err := FromSpecs([]config.BodySpec{{
		Type: config.BodyStatic, Shape: config.ShapeBox,
		HalfExtents: [3]float32{1, 1, 1},
	}})
	if err != nil {
		t.Fatalf("FromSpecs: %v", err)
	}
	if got := spawns[0].Shape.Scale(); got != (mgl32.Vec3{1, 1, 1}) {
		t.Fatalf("scale = %v, want unit", got)
	}
}

func TestFromSpecsEulerRotation(t *testing.T) {
	spawns, err := FromSpecs([]config.BodySpec{{
		Type: config.BodyKinematic, Shape: config.ShapeSphere, Radius: 1,
		RotationDeg: [3]float32{0, 90, 0},
	}})
	if err != nil {
		t.Fatalf("FromSpecs: %v", err)
	}

	rotated := spawns[0].Transform.Orientation.Rotate(mgl32.Vec3{1, 0, 0})
	want := mgl32.Vec3{0, 0, -1}
	if rotated.Sub(want).Len() > 1e-5 {
		t.Fatalf("rotated +X = %v, want %v", rotated, want)
	}
}

func TestFromSpecsDegenerateHull(t *testing.T) {
	_, err := FromSpecs([]config.BodySpec{{
		Name: "pancake", Type: config.BodyDynamic, Shape: config.ShapeHull,
		Points: [][3]float32{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
	}})
	if err == nil {
		t.Fatal("collinear hull should fail")
	}
	if !errors.Is(err, physics.ErrDegenerateHull) {
		t.Fatalf("err = %v, want ErrDegenerateHull", err)
	}
	if !strings.Contains(err.Error(), "pancake") {
		t.Fatalf("err %q does not name the body", err)
	}
}

func TestFromSpecsUnknownType(t *testing.T) {
	_, err := FromSpecs([]config.BodySpec{{
		Type: "gelatinous", Shape: config.ShapeSphere, Radius: 1,
	}})
	if err == nil || !strings.Contains(err.Error(), "gelatinous") {
		t.Fatalf("err = %v, want unknown type error", err)
	}
}

func TestFromSpecsNoGravity(t *testing.T) {
	spawns, err := FromSpecs([]config.BodySpec{{
		Type: config.BodyDynamic, Shape: config.ShapeSphere, Radius: 1,
		NoGravity: true,
	}})
	if err != nil {
		t.Fatalf("FromSpecs: %v", err)
	}
	if spawns[0].Properties.GravityEnabled {
		t.Fatal("NoGravity spec still has gravity enabled")
	}
}
