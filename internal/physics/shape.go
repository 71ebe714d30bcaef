package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/caldera3d/caldera/internal/dynamics"
)

// ShapeKind identifies the geometric form of a Shape.
type ShapeKind uint8

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
	ShapeConvexHull
	ShapeConcaveMesh
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapeConvexHull:
		return "convex-hull"
	case ShapeConcaveMesh:
		return "concave-mesh"
	}
	return "unknown"
}

// Shape is an immutable collision geometry descriptor. The scale passed at
// construction is baked into the shape; it is not part of the body transform.
// Shapes may be shared between any number of bodies across worlds of the same
// Runtime.
type Shape struct {
	kind        ShapeKind
	radius      float32
	halfExtents mgl32.Vec3
	scale       mgl32.Vec3
	col         *dynamics.Collider
}

// NewSphereShape returns a sphere of the given radius under the given scale.
// Construction never fails. A non-uniform scale is realized as the
// maximum-axis radius.
func NewSphereShape(radius float32, scale mgl32.Vec3) *Shape {
	return &Shape{
		kind:   ShapeSphere,
		radius: radius,
		scale:  scale,
		col:    dynamics.NewSphereCollider(radius, scale),
	}
}

// NewBoxShape returns a box with the given half extents under the given
// scale. Construction never fails.
func NewBoxShape(halfExtents, scale mgl32.Vec3) *Shape {
	return &Shape{
		kind:        ShapeBox,
		halfExtents: halfExtents,
		scale:       scale,
		col:         dynamics.NewBoxCollider(halfExtents, scale),
	}
}

// NewConvexHullShape returns the convex hull of the given vertices under the
// given scale. This is the one shape whose construction can fail: vertex sets
// with fewer than three distinct points, or with all points on a line, report
// ErrDegenerateHull.
func NewConvexHullShape(vertices []mgl32.Vec3, scale mgl32.Vec3) (*Shape, error) {
	col, err := dynamics.NewHullCollider(vertices, scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateHull, err)
	}
	return &Shape{kind: ShapeConvexHull, scale: scale, col: col}, nil
}

// NewConcaveMeshShape returns a triangle-mesh shape from a vertex list and a
// flat triangle index list under the given scale. Only malformed input fails
// (ErrMalformedMesh); the geometry itself is never rejected. Mesh shapes are
// intended for static scenery.
func NewConcaveMeshShape(vertices []mgl32.Vec3, indices []uint32, scale mgl32.Vec3) (*Shape, error) {
	col, err := dynamics.NewMeshCollider(vertices, indices, scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMesh, err)
	}
	return &Shape{kind: ShapeConcaveMesh, scale: scale, col: col}, nil
}

// Kind returns the geometric form of the shape.
func (s *Shape) Kind() ShapeKind { return s.kind }

// Radius returns the unscaled radius for sphere shapes, 0 otherwise.
func (s *Shape) Radius() float32 { return s.radius }

// HalfExtents returns the unscaled half extents for box shapes, zero
// otherwise.
func (s *Shape) HalfExtents() mgl32.Vec3 { return s.halfExtents }

// Scale returns the scale baked into the shape at construction.
func (s *Shape) Scale() mgl32.Vec3 { return s.scale }

// Bounds returns the shape's local-space bounds center and half extents with
// scale applied.
func (s *Shape) Bounds() (center, half mgl32.Vec3) {
	return s.col.Bounds()
}

func (s *Shape) collider() *dynamics.Collider { return s.col }
