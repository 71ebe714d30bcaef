package dynamics

import "github.com/go-gl/mathgl/mgl32"

// Motion classifies how a body participates in simulation.
type Motion uint8

const (
	// MotionStatic bodies never move and never receive correction.
	MotionStatic Motion = iota
	// MotionDynamic bodies integrate gravity and velocity and receive
	// contact response.
	MotionDynamic
	// MotionKinematic bodies integrate velocity but ignore gravity and
	// contact response; they push dynamic bodies one-sidedly.
	MotionKinematic
)

// Body is the simulation state for one slot. Position and Orientation are the
// body origin in world space; the collider hangs off that origin.
type Body struct {
	Position        mgl32.Vec3
	Orientation     mgl32.Quat
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3

	InverseMass float32 // 0 for static and kinematic
	Friction    float32
	Restitution float32
	UseGravity  bool

	Motion   Motion
	Collider *Collider

	active bool
}

// Active reports whether the slot holds a live body.
func (b *Body) Active() bool { return b.active }

// effInvMass is the inverse mass the solver sees: only dynamic bodies yield.
func (b *Body) effInvMass() float32 {
	if b.Motion != MotionDynamic {
		return 0
	}
	return b.InverseMass
}
