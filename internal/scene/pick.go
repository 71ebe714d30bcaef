package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/caldera3d/caldera/internal/physics"
)

// pickReach is how far the pick segment extends from the camera.
const pickReach = 100

// Pick casts a segment from the mouse cursor into the world when the right
// button is pressed and remembers the result for Draw. Returns the hits of
// the most recent pick, nearest first.
func (s *Scene) Pick() []physics.Hit {
	if !rl.IsMouseButtonPressed(rl.MouseRightButton) {
		return s.lastHits
	}

	ray := rl.GetMouseRay(rl.GetMousePosition(), s.Camera)
	from := vecFromRl(ray.Position)
	to := from.Add(vecFromRl(ray.Direction).Mul(pickReach))

	s.rayFrom = from
	s.rayTo = to
	s.rayActive = true
	s.lastHits = s.world.HitTestSegment(from, to)

	if len(s.lastHits) > 0 {
		s.log.Info("pick hit",
			zap.Int("bodies", len(s.lastHits)),
			zap.Float32("nearest", s.lastHits[0].Distance))
	} else {
		s.log.Debug("pick missed")
	}
	return s.lastHits
}

// PickSegment runs the same hit test as Pick against an explicit segment,
// without touching input state. The result is remembered for Draw.
func (s *Scene) PickSegment(from, to mgl32.Vec3) []physics.Hit {
	s.rayFrom = from
	s.rayTo = to
	s.rayActive = true
	s.lastHits = s.world.HitTestSegment(from, to)
	return s.lastHits
}

// LastHits returns the hits of the most recent pick.
func (s *Scene) LastHits() []physics.Hit { return s.lastHits }

// ClearPick forgets the last pick ray and its hits.
func (s *Scene) ClearPick() {
	s.rayActive = false
	s.lastHits = nil
}

func (s *Scene) drawPickRay() {
	if !s.rayActive {
		return
	}
	rl.DrawLine3D(rlVec(s.rayFrom), rlVec(s.rayTo), rl.Gold)
	for _, h := range s.lastHits {
		rl.DrawSphere(rlVec(h.Position), 0.08, rl.Red)
	}
}
