package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/caldera3d/caldera/internal/physics"
	"github.com/caldera3d/caldera/internal/shadertypes"
	"github.com/caldera3d/caldera/internal/worldgen"
)

func newTestWorld(t *testing.T) *physics.World {
	t.Helper()
	rt, err := physics.NewRuntime()
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	t.Cleanup(func() { rt.Close() })
	return physics.NewWorld(rt)
}

func TestNewDefaults(t *testing.T) {
	s := New(nil, newTestWorld(t))

	if s.Camera.Fovy != 45 {
		t.Fatalf("fovy = %v, want 45", s.Camera.Fovy)
	}
	if !s.GridVisible {
		t.Fatal("grid should start visible")
	}
	if len(s.Lights) != len(DefaultLights()) {
		t.Fatalf("lights = %d, want %d", len(s.Lights), len(DefaultLights()))
	}
	if got := vecFromRl(s.Camera.Position); got != (mgl32.Vec3{14, 12, 14}) {
		t.Fatalf("camera position = %v", got)
	}
}

func TestTrackSkipsZeroAndNil(t *testing.T) {
	w := newTestWorld(t)
	s := New(nil, w)
	shape := physics.NewSphereShape(1, mgl32.Vec3{1, 1, 1})

	s.Track(physics.Body{}, shape, "ghost")
	s.Track(addSphere(t, w, mgl32.Vec3{}), nil, "shapeless")
	if s.TrackedCount() != 0 {
		t.Fatalf("tracked = %d, want 0", s.TrackedCount())
	}

	s.Track(addSphere(t, w, mgl32.Vec3{2, 0, 0}), shape, "ball")
	if s.TrackedCount() != 1 {
		t.Fatalf("tracked = %d, want 1", s.TrackedCount())
	}
	if s.TrackedBodies()[0].Name != "ball" {
		t.Fatalf("name = %q", s.TrackedBodies()[0].Name)
	}
}

func TestPopulateTracksEverySpawn(t *testing.T) {
	s := New(nil, newTestWorld(t))

	spawns := worldgen.Stack(4, mgl32.Vec3{0, 0, 0})
	bodies := s.Populate(spawns)

	if len(bodies) != len(spawns) {
		t.Fatalf("bodies = %d, want %d", len(bodies), len(spawns))
	}
	if s.TrackedCount() != len(spawns) {
		t.Fatalf("tracked = %d, want %d", s.TrackedCount(), len(spawns))
	}
	for i, b := range bodies {
		if !s.World().Alive(b) {
			t.Fatalf("body %d not alive", i)
		}
	}
}

func TestSyncDropsRemovedBodies(t *testing.T) {
	s := New(nil, newTestWorld(t))
	bodies := s.Populate(worldgen.Stack(3, mgl32.Vec3{0, 0, 0}))

	s.World().RemoveBody(bodies[1])
	s.Sync()

	if s.TrackedCount() != 2 {
		t.Fatalf("tracked = %d, want 2", s.TrackedCount())
	}
	for _, tr := range s.TrackedBodies() {
		if !s.World().Alive(tr.Body) {
			t.Fatal("stale body survived Sync")
		}
	}
}

func TestFrameDuplicatesViewsAndCapsLights(t *testing.T) {
	s := New(nil, newTestWorld(t))

	pc := s.Frame(16.0 / 9.0)
	if pc.ViewMatrices[0] != pc.ViewMatrices[1] {
		t.Fatal("mono view should fill both slots")
	}
	if pc.ProjectionMatrices[0] != pc.ProjectionMatrices[1] {
		t.Fatal("mono projection should fill both slots")
	}
	eye := shadertypes.PackVec3(vecFromRl(s.Camera.Position))
	if pc.CameraPositions[0] != eye || pc.CameraPositions[1] != eye {
		t.Fatal("camera positions should match the camera")
	}
	if pc.ActiveLightCount != uint32(len(s.Lights)) {
		t.Fatalf("light count = %d, want %d", pc.ActiveLightCount, len(s.Lights))
	}

	// The view matrix maps the eye to the view-space origin.
	viewEye := pc.ViewMatrices[0].Mul4x1(vecFromRl(s.Camera.Position).Vec4(1))
	if viewEye.Vec3().Len() > 1e-4 {
		t.Fatalf("view matrix does not center on the eye: %v", viewEye)
	}

	s.Lights = make([]shadertypes.PBRLight, shadertypes.MaxLightCount+3)
	if got := s.Frame(1).ActiveLightCount; got != shadertypes.MaxLightCount {
		t.Fatalf("light count = %d, want cap %d", got, shadertypes.MaxLightCount)
	}
}

func frustumContains(f shadertypes.Frustum, p mgl32.Vec3) bool {
	for _, plane := range f.Planes {
		if plane.Vec3().Dot(p)+plane.W() < 0 {
			return false
		}
	}
	return true
}

func TestFrustumForSeparatesInsideFromOutside(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
	f := FrustumFor(proj.Mul4(view))

	if !frustumContains(f, mgl32.Vec3{0, 0, 0}) {
		t.Fatal("look-at target should be inside")
	}
	if frustumContains(f, mgl32.Vec3{0, 0, -200}) {
		t.Fatal("point beyond the far plane should be outside")
	}
	if frustumContains(f, mgl32.Vec3{0, 0, 20}) {
		t.Fatal("point behind the camera should be outside")
	}
	if frustumContains(f, mgl32.Vec3{500, 0, 0}) {
		t.Fatal("point far off to the side should be outside")
	}

	for i, plane := range f.Planes {
		if l := plane.Vec3().Len(); l < 0.999 || l > 1.001 {
			t.Fatalf("plane %d normal not unit length: %v", i, l)
		}
	}
}

func TestInstanceForScalesAndPlaces(t *testing.T) {
	w := newTestWorld(t)
	s := New(nil, w)

	half := mgl32.Vec3{1, 2, 0.5}
	shape := physics.NewBoxShape(half, mgl32.Vec3{1, 1, 1})
	pos := mgl32.Vec3{3, 4, 5}
	b := w.AddBody(physics.Static, physics.DefaultProperties(), shape, physics.TransformAt(pos))
	s.Track(b, shape, "crate")

	ic, ok := s.InstanceFor(s.TrackedBodies()[0])
	if !ok {
		t.Fatal("InstanceFor reported stale for a live body")
	}

	m := ic.ModelMatrix
	if m[12] != pos.X() || m[13] != pos.Y() || m[14] != pos.Z() {
		t.Fatalf("translation = (%v, %v, %v), want %v", m[12], m[13], m[14], pos)
	}
	// Identity orientation: the basis diagonal is the full box size.
	if m[0] != half.X()*2 || m[5] != half.Y()*2 || m[10] != half.Z()*2 {
		t.Fatalf("scale diagonal = (%v, %v, %v)", m[0], m[5], m[10])
	}
	// Inverse-transpose of a pure scale is the reciprocal scale.
	if got := ic.NormalMatrix.Cols[0].V[0]; mgl32.Abs(got-1/(half.X()*2)) > 1e-6 {
		t.Fatalf("normal matrix x = %v", got)
	}

	w.RemoveBody(b)
	if _, ok := s.InstanceFor(s.TrackedBodies()[0]); ok {
		t.Fatal("InstanceFor should report stale after removal")
	}
}

func TestPickSegmentRemembersHits(t *testing.T) {
	w := newTestWorld(t)
	s := New(nil, w)

	shape := physics.NewSphereShape(1, mgl32.Vec3{1, 1, 1})
	b := w.AddBody(physics.Static, physics.DefaultProperties(), shape, physics.TransformAt(mgl32.Vec3{}))

	hits := s.PickSegment(mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 0, 5})
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if hits[0].Body != b {
		t.Fatal("hit body mismatch")
	}
	if got := s.LastHits(); len(got) != 1 || got[0] != hits[0] {
		t.Fatal("LastHits should return the remembered pick")
	}

	s.ClearPick()
	if s.LastHits() != nil {
		t.Fatal("ClearPick should forget hits")
	}
}

func addSphere(t *testing.T, w *physics.World, at mgl32.Vec3) physics.Body {
	t.Helper()
	shape := physics.NewSphereShape(0.5, mgl32.Vec3{1, 1, 1})
	b := w.AddBody(physics.Dynamic, physics.DefaultProperties(), shape, physics.TransformAt(at))
	if b.IsZero() {
		t.Fatal("AddBody failed")
	}
	return b
}
