package dynamics

import "errors"

var (
	// ErrDegenerate reports a point set that cannot form a volume: fewer than
	// three distinct points after welding, or all points on one line.
	ErrDegenerate = errors.New("degenerate point set")

	// ErrMalformedMesh reports triangle indices that do not describe a
	// triangle list: count not a multiple of three, or an index out of range.
	ErrMalformedMesh = errors.New("malformed triangle mesh")
)
