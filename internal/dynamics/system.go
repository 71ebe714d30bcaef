// Package dynamics is the rigid-body engine behind the physics facade:
// slot-addressed bodies, semi-implicit integration, a pairwise contact pass,
// and segment casting. It runs no goroutines of its own; a System must be
// confined to one goroutine at a time.
package dynamics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// System simulates a set of bodies addressed by dense slot index. Slot
// assignment and reuse is the caller's concern; the System only distinguishes
// active from inactive slots.
type System struct {
	gravity     mgl32.Vec3
	bodies      []Body
	pool        *ContactPool
	maxContacts int
}

// NewSystem returns an empty system. A nil pool allocates contact scratch per
// step instead of reusing it. maxContacts <= 0 uses DefaultMaxContacts.
func NewSystem(gravity mgl32.Vec3, pool *ContactPool, maxContacts int) *System {
	if maxContacts <= 0 {
		maxContacts = DefaultMaxContacts
	}
	return &System{gravity: gravity, pool: pool, maxContacts: maxContacts}
}

// Gravity returns the world gravity vector.
func (s *System) Gravity() mgl32.Vec3 { return s.gravity }

// SetGravity replaces the world gravity vector.
func (s *System) SetGravity(g mgl32.Vec3) { s.gravity = g }

// SetBody installs b at the given slot, growing the slot table as needed.
// Any previous occupant is replaced. A zero-value orientation is taken as
// identity.
func (s *System) SetBody(slot int, b Body) {
	for slot >= len(s.bodies) {
		s.bodies = append(s.bodies, Body{})
	}
	if b.Orientation.Len() < directionEpsilon {
		b.Orientation = mgl32.QuatIdent()
	}
	b.active = true
	s.bodies[slot] = b
}

// ClearBody deactivates the given slot. Out-of-range slots are a no-op.
func (s *System) ClearBody(slot int) {
	if slot >= 0 && slot < len(s.bodies) {
		s.bodies[slot] = Body{}
	}
}

// At returns the body at the slot, or nil when the slot is empty. The pointer
// stays valid only until the next SetBody that grows the table.
func (s *System) At(slot int) *Body {
	if slot < 0 || slot >= len(s.bodies) || !s.bodies[slot].active {
		return nil
	}
	return &s.bodies[slot]
}

// ActiveCount returns the number of live bodies.
func (s *System) ActiveCount() int {
	n := 0
	for i := range s.bodies {
		if s.bodies[i].active {
			n++
		}
	}
	return n
}

// Step advances the simulation by dt seconds: integrate, then one contact
// pass. dt <= 0 is a no-op.
func (s *System) Step(dt float32) {
	if dt <= 0 {
		return
	}
	s.integrate(dt)

	var contacts []contact
	if s.pool != nil {
		contacts = s.pool.get()
		defer func() { s.pool.put(contacts) }()
	}
	contacts = s.gatherContacts(contacts)
	for i := range contacts {
		s.respond(&contacts[i])
	}
}

func (s *System) integrate(dt float32) {
	for i := range s.bodies {
		b := &s.bodies[i]
		if !b.active || b.Motion == MotionStatic {
			continue
		}
		if b.Motion == MotionDynamic && b.UseGravity {
			b.Velocity = b.Velocity.Add(s.gravity.Mul(dt))
		}
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
		if b.AngularVelocity.LenSqr() > 0 {
			spin := mgl32.Quat{W: 0, V: b.AngularVelocity.Mul(0.5 * dt)}
			b.Orientation = b.Orientation.Add(spin.Mul(b.Orientation)).Normalize()
		}
	}
}

// contact is one overlapping pair. normal points from body a toward body b.
type contact struct {
	a, b   int
	normal mgl32.Vec3
	depth  float32
}

func (s *System) gatherContacts(out []contact) []contact {
	for i := 0; i < len(s.bodies); i++ {
		a := &s.bodies[i]
		if !a.active {
			continue
		}
		for j := i + 1; j < len(s.bodies); j++ {
			b := &s.bodies[j]
			if !b.active {
				continue
			}
			if a.Motion != MotionDynamic && b.Motion != MotionDynamic {
				continue
			}
			if len(out) >= s.maxContacts {
				return out
			}
			minA, maxA := a.Collider.WorldBounds(a.Position, a.Orientation)
			minB, maxB := b.Collider.WorldBounds(b.Position, b.Orientation)
			if !boundsOverlap(minA, maxA, minB, maxB) {
				continue
			}
			if n, depth, ok := collide(a, b, minA, maxA, minB, maxB); ok {
				out = append(out, contact{a: i, b: j, normal: n, depth: depth})
			}
		}
	}
	return out
}

func boundsOverlap(minA, maxA, minB, maxB mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if maxA[i] < minB[i] || maxB[i] < minA[i] {
			return false
		}
	}
	return true
}

// collide dispatches narrowphase by collider kind pair. The returned normal
// points from a toward b.
func collide(a, b *Body, minA, maxA, minB, maxB mgl32.Vec3) (mgl32.Vec3, float32, bool) {
	ka, kb := a.Collider.kind, b.Collider.kind
	if ka > kb {
		n, d, ok := collide(b, a, minB, maxB, minA, maxA)
		return n.Mul(-1), d, ok
	}
	switch {
	case ka == colliderSphere && kb == colliderSphere:
		return sphereSphere(a, b)
	case ka == colliderSphere && (kb == colliderBox || kb == colliderHull):
		return sphereBoxLike(a, b)
	case ka == colliderSphere && kb == colliderMesh:
		return sphereMesh(a, b)
	case kb == colliderMesh:
		// Box and hull bodies do not collide with meshes.
		return mgl32.Vec3{}, 0, false
	default:
		// Box/hull pairs resolve on their world bounds, the minimum-overlap
		// axis picking the push direction.
		return aabbContact(minA, maxA, minB, maxB)
	}
}

func sphereSphere(a, b *Body) (mgl32.Vec3, float32, bool) {
	ra := a.Collider.radius
	rb := b.Collider.radius
	d := b.Position.Sub(a.Position)
	dist2 := d.LenSqr()
	sum := ra + rb
	if dist2 >= sum*sum {
		return mgl32.Vec3{}, 0, false
	}
	dist := math32.Sqrt(dist2)
	if dist < directionEpsilon {
		return mgl32.Vec3{0, 1, 0}, sum, true
	}
	return d.Mul(1 / dist), sum - dist, true
}

// sphereBoxLike handles a sphere against a box or hull (hulls resolve on
// their local bounds). a is the sphere.
func sphereBoxLike(a, b *Body) (mgl32.Vec3, float32, bool) {
	col := b.Collider
	r := a.Collider.radius
	inv := b.Orientation.Inverse()
	local := inv.Rotate(a.Position.Sub(b.Position)).Sub(col.center)

	clamped := local
	inside := true
	for i := 0; i < 3; i++ {
		if clamped[i] < -col.half[i] {
			clamped[i] = -col.half[i]
			inside = false
		} else if clamped[i] > col.half[i] {
			clamped[i] = col.half[i]
			inside = false
		}
	}

	if !inside {
		delta := local.Sub(clamped)
		d2 := delta.LenSqr()
		if d2 >= r*r {
			return mgl32.Vec3{}, 0, false
		}
		dist := math32.Sqrt(d2)
		var nLocal mgl32.Vec3
		if dist < directionEpsilon {
			nLocal = mgl32.Vec3{0, 1, 0}
		} else {
			nLocal = delta.Mul(1 / dist)
		}
		// nLocal points from the box surface toward the sphere center, so
		// the a->b normal is its negation.
		return b.Orientation.Rotate(nLocal).Mul(-1), r - dist, true
	}

	// Sphere center inside the box: push out along the thinnest face.
	axis := 0
	depth := col.half[0] - math32.Abs(local[0])
	for i := 1; i < 3; i++ {
		if d := col.half[i] - math32.Abs(local[i]); d < depth {
			depth = d
			axis = i
		}
	}
	var nLocal mgl32.Vec3
	if local[axis] >= 0 {
		nLocal[axis] = 1
	} else {
		nLocal[axis] = -1
	}
	return b.Orientation.Rotate(nLocal).Mul(-1), depth + r, true
}

// sphereMesh tests the sphere a against every triangle of mesh body b and
// keeps the deepest contact. Meshes are expected to be static scenery.
func sphereMesh(a, b *Body) (mgl32.Vec3, float32, bool) {
	col := b.Collider
	r := a.Collider.radius
	inv := b.Orientation.Inverse()
	local := inv.Rotate(a.Position.Sub(b.Position))

	best := float32(0)
	var bestN mgl32.Vec3
	found := false
	for i := 0; i+2 < len(col.tris); i += 3 {
		ta := col.verts[col.tris[i]]
		tb := col.verts[col.tris[i+1]]
		tc := col.verts[col.tris[i+2]]
		cp := closestPointTriangle(local, ta, tb, tc)
		delta := local.Sub(cp)
		d2 := delta.LenSqr()
		if d2 >= r*r {
			continue
		}
		dist := math32.Sqrt(d2)
		depth := r - dist
		if !found || depth > best {
			var n mgl32.Vec3
			if dist < directionEpsilon {
				n = tb.Sub(ta).Cross(tc.Sub(ta))
				if l := n.Len(); l > directionEpsilon {
					n = n.Mul(1 / l)
				} else {
					n = mgl32.Vec3{0, 1, 0}
				}
			} else {
				n = delta.Mul(1 / dist)
			}
			best = depth
			bestN = n
			found = true
		}
	}
	if !found {
		return mgl32.Vec3{}, 0, false
	}
	// bestN points from the mesh toward the sphere center in mesh space.
	return b.Orientation.Rotate(bestN).Mul(-1), best, true
}

func aabbContact(minA, maxA, minB, maxB mgl32.Vec3) (mgl32.Vec3, float32, bool) {
	axis := -1
	depth := float32(math32.MaxFloat32)
	sign := float32(1)
	for i := 0; i < 3; i++ {
		overlap := minf(maxA[i], maxB[i]) - maxf(minA[i], minB[i])
		if overlap <= 0 {
			return mgl32.Vec3{}, 0, false
		}
		if overlap < depth {
			depth = overlap
			axis = i
			if (minB[i]+maxB[i])*0.5 >= (minA[i]+maxA[i])*0.5 {
				sign = 1
			} else {
				sign = -1
			}
		}
	}
	var n mgl32.Vec3
	n[axis] = sign
	return n, depth, true
}

// respond applies positional correction and a restitution/friction impulse
// for one contact. Static and kinematic bodies never move here.
func (s *System) respond(c *contact) {
	a := &s.bodies[c.a]
	b := &s.bodies[c.b]
	invA := a.effInvMass()
	invB := b.effInvMass()
	total := invA + invB
	if total == 0 {
		return
	}

	if push := c.depth - penetrationSlop; push > 0 {
		corr := c.normal.Mul(push * correctionPercent / total)
		a.Position = a.Position.Sub(corr.Mul(invA))
		b.Position = b.Position.Add(corr.Mul(invB))
	}

	rv := b.Velocity.Sub(a.Velocity)
	vn := rv.Dot(c.normal)
	if vn >= 0 {
		return
	}
	e := minf(a.Restitution, b.Restitution)
	if -vn < restitutionThreshold {
		e = 0
	}
	j := -(1 + e) * vn / total
	imp := c.normal.Mul(j)
	a.Velocity = a.Velocity.Sub(imp.Mul(invA))
	b.Velocity = b.Velocity.Add(imp.Mul(invB))

	tangent := rv.Sub(c.normal.Mul(vn))
	tl := tangent.Len()
	if tl < directionEpsilon {
		return
	}
	tdir := tangent.Mul(1 / tl)
	jt := -rv.Dot(tdir) / total
	mu := math32.Sqrt(a.Friction * b.Friction)
	if limit := mu * j; jt > limit {
		jt = limit
	} else if jt < -limit {
		jt = -limit
	}
	fimp := tdir.Mul(jt)
	a.Velocity = a.Velocity.Sub(fimp.Mul(invA))
	b.Velocity = b.Velocity.Add(fimp.Mul(invB))
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
