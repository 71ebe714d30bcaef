package dynamics

import "github.com/go-gl/mathgl/mgl32"

// Solver tuning. Units are meters, kilograms, seconds.
const (
	// penetrationSlop is the overlap, in meters, that contact resolution
	// tolerates before pushing bodies apart. A small slop keeps resting
	// contacts from jittering.
	penetrationSlop = 0.005

	// correctionPercent is the fraction of remaining penetration removed per
	// step.
	correctionPercent = 0.8

	// restitutionThreshold is the approach speed, in m/s, below which a
	// collision is treated as perfectly inelastic.
	restitutionThreshold = 0.5

	// weldEpsilon is the distance under which two hull points are considered
	// the same point and merged.
	weldEpsilon = 1e-4

	// directionEpsilon guards normalization of near-zero vectors.
	directionEpsilon = 1e-6

	// DefaultMaxContacts caps contact pairs gathered per step. Pairs beyond
	// the cap are dropped for that step.
	DefaultMaxContacts = 4096
)

// DefaultGravity is standard Earth gravity along -Y.
var DefaultGravity = mgl32.Vec3{0, -9.81, 0}
