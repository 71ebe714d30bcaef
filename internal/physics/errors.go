package physics

import "errors"

var (
	// ErrDegenerateHull reports convex hull vertices that cannot form a hull.
	ErrDegenerateHull = errors.New("physics: degenerate convex hull")

	// ErrMalformedMesh reports a triangle index list that does not describe
	// triangles over the given vertices.
	ErrMalformedMesh = errors.New("physics: malformed mesh")

	// ErrRuntimeClosed reports use of a Runtime after Close.
	ErrRuntimeClosed = errors.New("physics: runtime closed")
)
