package dynamics

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type colliderKind uint8

const (
	colliderSphere colliderKind = iota
	colliderBox
	colliderHull
	colliderMesh
)

// Collider is the engine-side realization of a shape. Scale is baked in at
// construction; a Collider is immutable afterwards and may be shared between
// any number of bodies.
//
// Spheres are centered on the body origin. Non-uniform sphere scale is
// realized conservatively as the maximum-axis radius. Hulls collide and
// raycast as their local-space bounding box; meshes raycast exactly per
// triangle and generate contacts against spheres only.
type Collider struct {
	kind colliderKind

	radius float32 // sphere

	// Local-space bounds. For boxes, center is the origin and half the box
	// half extents; for hulls and meshes, the bounds of the point set.
	half   mgl32.Vec3
	center mgl32.Vec3

	points []mgl32.Vec3 // hull: welded, scaled
	verts  []mgl32.Vec3 // mesh: scaled
	tris   []uint32     // mesh: triangle index list, len%3 == 0
}

// NewSphereCollider builds a sphere of the given radius under the given
// non-uniform scale. Never fails.
func NewSphereCollider(radius float32, scale mgl32.Vec3) *Collider {
	r := math32.Abs(radius) * maxAxis(scale)
	return &Collider{
		kind:   colliderSphere,
		radius: r,
		half:   mgl32.Vec3{r, r, r},
	}
}

// NewBoxCollider builds a box from half extents under the given scale.
// Never fails.
func NewBoxCollider(halfExtents, scale mgl32.Vec3) *Collider {
	return &Collider{
		kind: colliderBox,
		half: mgl32.Vec3{
			math32.Abs(halfExtents[0] * scale[0]),
			math32.Abs(halfExtents[1] * scale[1]),
			math32.Abs(halfExtents[2] * scale[2]),
		},
	}
}

// NewHullCollider builds a convex hull from a point cloud under the given
// scale. Points closer than the weld epsilon are merged first. Fails with
// ErrDegenerate when fewer than three distinct points remain or all points
// are collinear; a planar point set is accepted as a zero-thickness hull.
func NewHullCollider(points []mgl32.Vec3, scale mgl32.Vec3) (*Collider, error) {
	scaled := make([]mgl32.Vec3, 0, len(points))
	for _, p := range points {
		scaled = append(scaled, mgl32.Vec3{p[0] * scale[0], p[1] * scale[1], p[2] * scale[2]})
	}
	welded := weldPoints(scaled)
	if len(welded) < 3 {
		return nil, fmt.Errorf("%w: %d distinct points, need at least 3", ErrDegenerate, len(welded))
	}
	if collinear(welded) {
		return nil, fmt.Errorf("%w: all points collinear", ErrDegenerate)
	}
	c := &Collider{kind: colliderHull, points: welded}
	c.center, c.half = boundsOf(welded)
	return c, nil
}

// NewMeshCollider builds a triangle mesh from a vertex list and a flat
// triangle index list under the given scale. Fails with ErrMalformedMesh on
// an empty or non-triangle index list or an index past the vertex count;
// the geometry itself is never rejected.
func NewMeshCollider(verts []mgl32.Vec3, indices []uint32, scale mgl32.Vec3) (*Collider, error) {
	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices, need a positive multiple of 3", ErrMalformedMesh, len(indices))
	}
	for _, ix := range indices {
		if int(ix) >= len(verts) {
			return nil, fmt.Errorf("%w: index %d out of range (%d vertices)", ErrMalformedMesh, ix, len(verts))
		}
	}
	scaled := make([]mgl32.Vec3, len(verts))
	for i, v := range verts {
		scaled[i] = mgl32.Vec3{v[0] * scale[0], v[1] * scale[1], v[2] * scale[2]}
	}
	tris := make([]uint32, len(indices))
	copy(tris, indices)
	c := &Collider{kind: colliderMesh, verts: scaled, tris: tris}
	c.center, c.half = boundsOf(scaled)
	return c, nil
}

// Bounds returns the local-space bounds center and half extents.
func (c *Collider) Bounds() (center, half mgl32.Vec3) {
	return c.center, c.half
}

// WorldBounds returns the collider's world-space AABB for a body at the given
// position and orientation.
func (c *Collider) WorldBounds(pos mgl32.Vec3, rot mgl32.Quat) (bmin, bmax mgl32.Vec3) {
	if c.kind == colliderSphere {
		r := mgl32.Vec3{c.radius, c.radius, c.radius}
		return pos.Sub(r), pos.Add(r)
	}
	wc := pos.Add(rot.Rotate(c.center))
	he := rotatedExtent(rot, c.half)
	return wc.Sub(he), wc.Add(he)
}

// castSegment returns the earliest intersection parameter t in [0,1] of the
// segment from..to against the collider placed at pos with orientation rot.
// A segment starting inside the collider hits at t = 0.
func (c *Collider) castSegment(pos mgl32.Vec3, rot mgl32.Quat, from, to mgl32.Vec3) (float32, bool) {
	dir := to.Sub(from)
	switch c.kind {
	case colliderSphere:
		return segmentSphere(from, dir, pos, c.radius)
	case colliderBox, colliderHull:
		inv := rot.Inverse()
		lo := inv.Rotate(from.Sub(pos))
		ld := inv.Rotate(dir)
		return segmentSlab(lo, ld, c.center.Sub(c.half), c.center.Add(c.half))
	case colliderMesh:
		inv := rot.Inverse()
		lo := inv.Rotate(from.Sub(pos))
		ld := inv.Rotate(dir)
		if _, ok := segmentSlab(lo, ld, c.center.Sub(c.half), c.center.Add(c.half)); !ok {
			return 0, false
		}
		best := float32(2)
		for i := 0; i+2 < len(c.tris); i += 3 {
			a := c.verts[c.tris[i]]
			b := c.verts[c.tris[i+1]]
			cc := c.verts[c.tris[i+2]]
			if t, ok := segmentTriangle(lo, ld, a, b, cc); ok && t < best {
				best = t
			}
		}
		if best > 1 {
			return 0, false
		}
		return best, true
	}
	return 0, false
}

// weldPoints removes duplicates closer than weldEpsilon. Order of first
// occurrence is preserved.
func weldPoints(pts []mgl32.Vec3) []mgl32.Vec3 {
	const eps2 = weldEpsilon * weldEpsilon
	out := make([]mgl32.Vec3, 0, len(pts))
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if p.Sub(q).LenSqr() < eps2 {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// collinear reports whether every point lies on one line.
func collinear(pts []mgl32.Vec3) bool {
	const eps2 = weldEpsilon * weldEpsilon
	origin := pts[0]
	var axis mgl32.Vec3
	for _, p := range pts[1:] {
		d := p.Sub(origin)
		if d.LenSqr() >= eps2 {
			axis = d
			break
		}
	}
	if axis.LenSqr() < eps2 {
		return true
	}
	for _, p := range pts[1:] {
		if p.Sub(origin).Cross(axis).LenSqr() >= eps2 {
			return false
		}
	}
	return true
}

func boundsOf(pts []mgl32.Vec3) (center, half mgl32.Vec3) {
	lo := pts[0]
	hi := pts[0]
	for _, p := range pts[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < lo[i] {
				lo[i] = p[i]
			}
			if p[i] > hi[i] {
				hi[i] = p[i]
			}
		}
	}
	return lo.Add(hi).Mul(0.5), hi.Sub(lo).Mul(0.5)
}

// rotatedExtent returns the world-space half extents of a box with the given
// local half extents under rotation q: extent_r = sum_c |R_rc| * half_c.
func rotatedExtent(q mgl32.Quat, half mgl32.Vec3) mgl32.Vec3 {
	m := q.Mat4()
	var e mgl32.Vec3
	for r := 0; r < 3; r++ {
		e[r] = math32.Abs(m.At(r, 0))*half[0] +
			math32.Abs(m.At(r, 1))*half[1] +
			math32.Abs(m.At(r, 2))*half[2]
	}
	return e
}

func maxAxis(v mgl32.Vec3) float32 {
	m := math32.Abs(v[0])
	if a := math32.Abs(v[1]); a > m {
		m = a
	}
	if a := math32.Abs(v[2]); a > m {
		m = a
	}
	return m
}

// segmentSphere intersects the segment o + t*d, t in [0,1], with a sphere.
// Starting inside reports t = 0.
func segmentSphere(o, d, center mgl32.Vec3, r float32) (float32, bool) {
	m := o.Sub(center)
	c := m.LenSqr() - r*r
	if c <= 0 {
		return 0, true
	}
	a := d.LenSqr()
	if a < directionEpsilon*directionEpsilon {
		return 0, false
	}
	b := m.Dot(d)
	if b > 0 {
		return 0, false
	}
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	t := (-b - math32.Sqrt(disc)) / a
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// segmentSlab clips the segment o + t*d, t in [0,1], against an AABB.
// Starting inside reports t = 0.
func segmentSlab(o, d, lo, hi mgl32.Vec3) (float32, bool) {
	tmin, tmax := float32(0), float32(1)
	for i := 0; i < 3; i++ {
		if math32.Abs(d[i]) < directionEpsilon {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d[i]
		t1 := (lo[i] - o[i]) * inv
		t2 := (hi[i] - o[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// segmentTriangle is the Moller-Trumbore test against the segment
// o + t*d, t in [0,1]. Both triangle faces hit.
func segmentTriangle(o, d, a, b, c mgl32.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := d.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < 1e-9 {
		return 0, false
	}
	inv := 1 / det
	s := o.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := d.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// closestPointTriangle returns the point of triangle abc closest to p.
func closestPointTriangle(p, a, b, c mgl32.Vec3) mgl32.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}
