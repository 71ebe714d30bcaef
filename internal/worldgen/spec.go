package worldgen

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/caldera3d/caldera/internal/config"
	"github.com/caldera3d/caldera/internal/physics"
)

// FromSpecs converts declarative body specs into spawns. Specs should already
// pass config validation; shape construction can still fail (degenerate hull
// point sets, malformed meshes) and aborts the whole batch.
func FromSpecs(specs []config.BodySpec) ([]Spawn, error) {
	spawns := make([]Spawn, 0, len(specs))
	for i := range specs {
		spawn, err := fromSpec(&specs[i])
		if err != nil {
			if specs[i].Name != "" {
				return nil, fmt.Errorf("body %q: %w", specs[i].Name, err)
			}
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		spawns = append(spawns, spawn)
	}
	return spawns, nil
}

func fromSpec(spec *config.BodySpec) (Spawn, error) {
	scale := vec3(spec.Scale)
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}

	var shape *physics.Shape
	var err error
	switch spec.Shape {
	case config.ShapeSphere:
		shape = physics.NewSphereShape(spec.Radius, scale)
	case config.ShapeBox:
		shape = physics.NewBoxShape(vec3(spec.HalfExtents), scale)
	case config.ShapeHull:
		shape, err = physics.NewConvexHullShape(vec3s(spec.Points), scale)
	case config.ShapeMesh:
		shape, err = physics.NewConcaveMeshShape(vec3s(spec.Vertices), spec.Indices, scale)
	default:
		err = fmt.Errorf("unknown shape %q", spec.Shape)
	}
	if err != nil {
		return Spawn{}, err
	}

	typ, err := bodyType(spec.Type)
	if err != nil {
		return Spawn{}, err
	}

	orientation := mgl32.AnglesToQuat(
		mgl32.DegToRad(spec.RotationDeg[0]),
		mgl32.DegToRad(spec.RotationDeg[1]),
		mgl32.DegToRad(spec.RotationDeg[2]),
		mgl32.XYZ,
	)

	return Spawn{
		Name:  spec.Name,
		Shape: shape,
		Type:  typ,
		Transform: physics.Transform{
			Position:    vec3(spec.Position),
			Orientation: orientation,
		},
		Properties: physics.Properties{
			Mass:           spec.Mass,
			Friction:       spec.Friction,
			Restitution:    spec.Restitution,
			GravityEnabled: !spec.NoGravity,
		},
	}, nil
}

func bodyType(name string) (physics.BodyType, error) {
	switch name {
	case config.BodyStatic:
		return physics.Static, nil
	case config.BodyDynamic:
		return physics.Dynamic, nil
	case config.BodyKinematic:
		return physics.Kinematic, nil
	}
	return 0, fmt.Errorf("unknown body type %q", name)
}

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func vec3s(vs [][3]float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(vs))
	for i, v := range vs {
		out[i] = vec3(v)
	}
	return out
}
