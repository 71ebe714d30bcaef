package physics

import "github.com/go-gl/mathgl/mgl32"

// BodyType selects how a body participates in simulation.
type BodyType uint8

const (
	// Static bodies never move. Use them for level geometry.
	Static BodyType = iota
	// Dynamic bodies are fully simulated: gravity, velocity, contacts.
	Dynamic
	// Kinematic bodies are driven by SetTransform/SetVelocity. They ignore
	// gravity and contact response but push dynamic bodies out of their way.
	Kinematic
)

func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	}
	return "unknown"
}

// Properties are the simulation parameters of one body. Mass <= 0 is treated
// as 1 for dynamic bodies; mass is ignored for static and kinematic bodies.
type Properties struct {
	Mass           float32
	Friction       float32
	Restitution    float32
	GravityEnabled bool
}

// DefaultProperties returns 1 kg, moderate friction, no bounce, gravity on.
func DefaultProperties() Properties {
	return Properties{Mass: 1, Friction: 0.5, GravityEnabled: true}
}

// Transform is a rigid placement: position plus orientation. No scale; scale
// belongs to the Shape.
type Transform struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// IdentityTransform returns the origin with identity orientation.
func IdentityTransform() Transform {
	return Transform{Orientation: mgl32.QuatIdent()}
}

// TransformAt returns an identity-oriented transform at the given position.
func TransformAt(pos mgl32.Vec3) Transform {
	return Transform{Position: pos, Orientation: mgl32.QuatIdent()}
}

// Body is a weak handle to a body owned by a World. The zero Body is invalid.
// After RemoveBody the handle goes stale: every World accessor rejects it,
// even when the underlying slot has been reused for a new body.
type Body struct {
	index uint32
	gen   uint32
}

// IsZero reports whether b is the zero handle, which never names a body.
func (b Body) IsZero() bool { return b.gen == 0 }
