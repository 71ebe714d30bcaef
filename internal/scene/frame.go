package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/caldera3d/caldera/internal/shadertypes"
)

const (
	nearPlane = 0.1
	farPlane  = 1000.0
)

// DefaultLights returns the rig new scenes start with: a directional sun and
// a warm point fill above the origin.
func DefaultLights() []shadertypes.PBRLight {
	sun := mgl32.Vec3{sunDir[0], sunDir[1], sunDir[2]}.Normalize()
	return []shadertypes.PBRLight{
		{
			Direction: sun.Mul(-1),
			Color:     mgl32.Vec3{1, 0.96, 0.9},
			Intensity: 3,
			Type:      shadertypes.LightDirectional,
		},
		{
			Position:  mgl32.Vec3{0, 6, 0},
			Color:     mgl32.Vec3{1, 0.8, 0.6},
			Range:     25,
			Intensity: 40,
			Type:      shadertypes.LightPoint,
		},
	}
}

// Frame builds the per-pass constant block for the current camera. Both view
// slots carry the same mono view.
func (s *Scene) Frame(aspect float32) shadertypes.PassConstants {
	eye := vecFromRl(s.Camera.Position)
	view := mgl32.LookAtV(eye, vecFromRl(s.Camera.Target), vecFromRl(s.Camera.Up))
	proj := mgl32.Perspective(mgl32.DegToRad(s.Camera.Fovy), aspect, nearPlane, farPlane)

	var pc shadertypes.PassConstants
	for i := 0; i < shadertypes.MaxViewCount; i++ {
		pc.ViewMatrices[i] = view
		pc.ProjectionMatrices[i] = proj
		pc.CameraPositions[i] = shadertypes.PackVec3(eye)
	}
	pc.EnvironmentLightMatrix = mgl32.Ident4()

	n := len(s.Lights)
	if n > shadertypes.MaxLightCount {
		n = shadertypes.MaxLightCount
	}
	pc.ActiveLightCount = uint32(n)
	return pc
}

// ViewFrustum returns the clip planes of the current camera at the given
// aspect ratio.
func (s *Scene) ViewFrustum(aspect float32) shadertypes.Frustum {
	eye := vecFromRl(s.Camera.Position)
	view := mgl32.LookAtV(eye, vecFromRl(s.Camera.Target), vecFromRl(s.Camera.Up))
	proj := mgl32.Perspective(mgl32.DegToRad(s.Camera.Fovy), aspect, nearPlane, farPlane)
	return FrustumFor(proj.Mul4(view))
}

// FrustumFor extracts the six clip planes of a view-projection matrix in the
// order left, right, bottom, top, near, far. Plane normals point inward and
// are unit length, so a point p is inside when dot(n, p) + d >= 0 for every
// plane.
func FrustumFor(viewProj mgl32.Mat4) shadertypes.Frustum {
	r0 := viewProj.Row(0)
	r1 := viewProj.Row(1)
	r2 := viewProj.Row(2)
	r3 := viewProj.Row(3)

	planes := [6]mgl32.Vec4{
		r3.Add(r0),
		r3.Sub(r0),
		r3.Add(r1),
		r3.Sub(r1),
		r3.Add(r2),
		r3.Sub(r2),
	}

	var f shadertypes.Frustum
	for i, p := range planes {
		if l := p.Vec3().Len(); l > 0 {
			p = p.Mul(1 / l)
		}
		f.Planes[i] = p
	}
	return f
}

// InstanceFor builds the per-draw constant block for a tracked body, scaling
// a unit primitive to the shape bounds. Reports false for stale handles.
func (s *Scene) InstanceFor(tr Tracked) (shadertypes.InstanceConstants, bool) {
	t, ok := s.world.Transform(tr.Body)
	if !ok {
		return shadertypes.InstanceConstants{}, false
	}

	center, half := tr.Shape.Bounds()
	model := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Orientation.Mat4()).
		Mul4(mgl32.Translate3D(center.X(), center.Y(), center.Z())).
		Mul4(mgl32.Scale3D(sizeOrUnit(half.X()*2), sizeOrUnit(half.Y()*2), sizeOrUnit(half.Z()*2)))

	return shadertypes.InstanceConstants{
		ModelMatrix:  model,
		NormalMatrix: shadertypes.PackMat3(model.Mat3().Inv().Transpose()),
	}, true
}

func sizeOrUnit(v float32) float32 {
	if v == 0 {
		return 1
	}
	return v
}
