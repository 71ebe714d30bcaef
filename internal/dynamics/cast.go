package dynamics

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// SegmentHit is one body intersected by a segment cast. T is the fraction
// along the segment, Point the world-space intersection at that fraction.
type SegmentHit struct {
	Slot  int
	Point mgl32.Vec3
	T     float32
}

// CastSegment intersects the segment from..to against every active body and
// returns the nearest intersection per body, sorted by ascending fraction.
// A degenerate segment returns nil.
func (s *System) CastSegment(from, to mgl32.Vec3) []SegmentHit {
	dir := to.Sub(from)
	if dir.LenSqr() < directionEpsilon*directionEpsilon {
		return nil
	}
	var hits []SegmentHit
	for i := range s.bodies {
		b := &s.bodies[i]
		if !b.active {
			continue
		}
		t, ok := b.Collider.castSegment(b.Position, b.Orientation, from, to)
		if !ok {
			continue
		}
		hits = append(hits, SegmentHit{
			Slot:  i,
			Point: from.Add(dir.Mul(t)),
			T:     t,
		})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].T < hits[j].T })
	return hits
}
