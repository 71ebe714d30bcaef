// Package physics is the simulation gateway the rest of the engine talks to:
// shape descriptors, weak body handles, world stepping, and segment hit
// tests. It adapts everything to and from the dynamics engine so callers
// never touch engine types. A World is not safe for concurrent use; confine
// it to one goroutine at a time.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/caldera3d/caldera/internal/dynamics"
)

// World owns a set of bodies and advances them in caller-driven time steps.
// Bodies are stored in a slot arena; the handles given out carry the slot's
// generation so stale handles can never reach a recycled slot.
type World struct {
	log   *zap.Logger
	sys   *dynamics.System
	slots []slot
	free  []uint32
	count int
}

type slot struct {
	gen   uint32
	alive bool
}

// WorldOption configures NewWorld.
type WorldOption func(*worldConfig)

type worldConfig struct {
	gravity mgl32.Vec3
}

// WithGravity overrides the default gravity of (0, -9.81, 0).
func WithGravity(g mgl32.Vec3) WorldOption {
	return func(c *worldConfig) { c.gravity = g }
}

// NewWorld creates an empty world on the given runtime. Returns nil when the
// runtime is already closed. Worlds must not outlive their runtime.
func NewWorld(rt *Runtime, opts ...WorldOption) *World {
	if rt == nil || rt.isClosed() {
		if rt != nil {
			rt.log.Warn("new world rejected", zap.Error(ErrRuntimeClosed))
		}
		return nil
	}
	cfg := worldConfig{gravity: dynamics.DefaultGravity}
	for _, opt := range opts {
		opt(&cfg)
	}
	w := &World{
		log: rt.log,
		sys: dynamics.NewSystem(cfg.gravity, rt.pool, rt.maxContacts),
	}
	w.log.Debug("world created", zap.Any("gravity", cfg.gravity))
	return w
}

// Gravity returns the world gravity vector.
func (w *World) Gravity() mgl32.Vec3 { return w.sys.Gravity() }

// AddBody creates a body and returns its handle. A nil shape returns the
// zero handle. The body's transform reads back exactly as given until the
// first Step.
func (w *World) AddBody(typ BodyType, props Properties, shape *Shape, at Transform) Body {
	if shape == nil {
		w.log.Warn("add body: nil shape")
		return Body{}
	}

	mass := props.Mass
	if mass <= 0 {
		mass = 1
	}
	var motion dynamics.Motion
	invMass := float32(0)
	switch typ {
	case Dynamic:
		motion = dynamics.MotionDynamic
		invMass = 1 / mass
	case Kinematic:
		motion = dynamics.MotionKinematic
	default:
		motion = dynamics.MotionStatic
	}

	idx := w.takeSlot()
	w.sys.SetBody(int(idx), dynamics.Body{
		Position:    at.Position,
		Orientation: at.Orientation,
		InverseMass: invMass,
		Friction:    props.Friction,
		Restitution: props.Restitution,
		UseGravity:  props.GravityEnabled,
		Motion:      motion,
		Collider:    shape.collider(),
	})
	w.count++
	h := Body{index: idx, gen: w.slots[idx].gen}
	w.log.Debug("body added",
		zap.Uint32("slot", idx),
		zap.Stringer("type", typ),
		zap.Stringer("shape", shape.Kind()))
	return h
}

// RemoveBody removes the body named by the handle. Stale and zero handles
// are a no-op. The handle (and any copy of it) is stale afterwards.
func (w *World) RemoveBody(b Body) {
	i := w.resolve(b)
	if i < 0 {
		return
	}
	w.sys.ClearBody(i)
	w.slots[i].gen++
	w.slots[i].alive = false
	w.free = append(w.free, uint32(i))
	w.count--
	w.log.Debug("body removed", zap.Uint32("slot", uint32(i)))
}

// Alive reports whether the handle still names a body in this world.
func (w *World) Alive(b Body) bool { return w.resolve(b) >= 0 }

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int { return w.count }

// Transform returns the body's current transform. ok is false for stale
// handles.
func (w *World) Transform(b Body) (Transform, bool) {
	i := w.resolve(b)
	if i < 0 {
		return Transform{}, false
	}
	db := w.sys.At(i)
	return Transform{Position: db.Position, Orientation: db.Orientation}, true
}

// SetTransform teleports the body. This is the driving mechanism for
// kinematic bodies and works on any body type. Returns false for stale
// handles.
func (w *World) SetTransform(b Body, t Transform) bool {
	i := w.resolve(b)
	if i < 0 {
		return false
	}
	db := w.sys.At(i)
	db.Position = t.Position
	db.Orientation = orientationOrIdentity(t.Orientation)
	return true
}

// Velocity returns the body's linear velocity. ok is false for stale handles.
func (w *World) Velocity(b Body) (mgl32.Vec3, bool) {
	i := w.resolve(b)
	if i < 0 {
		return mgl32.Vec3{}, false
	}
	return w.sys.At(i).Velocity, true
}

// SetVelocity sets the body's linear velocity. Static bodies ignore it.
// Returns false for stale handles.
func (w *World) SetVelocity(b Body, v mgl32.Vec3) bool {
	i := w.resolve(b)
	if i < 0 {
		return false
	}
	db := w.sys.At(i)
	if db.Motion == dynamics.MotionStatic {
		return true
	}
	db.Velocity = v
	return true
}

// AngularVelocity returns the body's angular velocity in radians per second.
func (w *World) AngularVelocity(b Body) (mgl32.Vec3, bool) {
	i := w.resolve(b)
	if i < 0 {
		return mgl32.Vec3{}, false
	}
	return w.sys.At(i).AngularVelocity, true
}

// SetAngularVelocity sets the body's angular velocity in radians per second.
// Static bodies ignore it. Returns false for stale handles.
func (w *World) SetAngularVelocity(b Body, v mgl32.Vec3) bool {
	i := w.resolve(b)
	if i < 0 {
		return false
	}
	db := w.sys.At(i)
	if db.Motion == dynamics.MotionStatic {
		return true
	}
	db.AngularVelocity = v
	return true
}

// Step advances the world by dt seconds. dt <= 0 is a no-op. Fixed-step
// accumulation is the caller's concern.
func (w *World) Step(dt float32) {
	w.sys.Step(dt)
}

// Hit is one body intersected by a hit-test segment. Position lies on the
// segment; Distance is measured from the segment start in world units.
type Hit struct {
	Body     Body
	Position mgl32.Vec3
	Distance float32
}

// HitTestSegment returns every body the segment from..to passes through,
// nearest first, one entry per body. A miss or a degenerate segment returns
// an empty result.
func (w *World) HitTestSegment(from, to mgl32.Vec3) []Hit {
	raw := w.sys.CastSegment(from, to)
	if len(raw) == 0 {
		return nil
	}
	segLen := to.Sub(from).Len()
	hits := make([]Hit, len(raw))
	for i, h := range raw {
		hits[i] = Hit{
			Body:     Body{index: uint32(h.Slot), gen: w.slots[h.Slot].gen},
			Position: h.Point,
			Distance: h.T * segLen,
		}
	}
	return hits
}

// takeSlot pops a free slot or grows the arena. New slots start at
// generation 1 so the zero handle stays invalid forever.
func (w *World) takeSlot() uint32 {
	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		w.slots[idx].alive = true
		return idx
	}
	w.slots = append(w.slots, slot{gen: 1, alive: true})
	return uint32(len(w.slots) - 1)
}

// resolve maps a handle to its slot index, or -1 when the handle is zero,
// stale, or from another world.
func (w *World) resolve(b Body) int {
	if b.gen == 0 || int(b.index) >= len(w.slots) {
		return -1
	}
	s := w.slots[b.index]
	if !s.alive || s.gen != b.gen {
		return -1
	}
	return int(b.index)
}

func orientationOrIdentity(q mgl32.Quat) mgl32.Quat {
	if q.Len() < 1e-6 {
		return mgl32.QuatIdent()
	}
	return q
}
