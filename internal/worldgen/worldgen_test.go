package worldgen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/caldera3d/caldera/internal/physics"
)

func TestTerrainTileLayout(t *testing.T) {
	opts := Options{
		Width: 4, Depth: 4, TileSize: 1, HeightScale: 3,
		Seed: 7, Octaves: 4, Frequency: 0.08, Lacunarity: 2, Gain: 0.5,
	}
	spawns := Terrain(opts)
	if len(spawns) != 16 {
		t.Fatalf("tiles = %d, want 16", len(spawns))
	}

	for i, s := range spawns {
		if s.Type != physics.Static {
			t.Fatalf("tile %d type = %v, want static", i, s.Type)
		}
		half := s.Shape.HalfExtents()
		pos := s.Transform.Position
		if pos.Y() != half.Y() {
			t.Errorf("tile %d bottom at %v, want 0", i, pos.Y()-half.Y())
		}
		height := half.Y() * 2
		if height < minTileHeight || height > opts.HeightScale {
			t.Errorf("tile %d height %v outside [%v, %v]", i, height, minTileHeight, opts.HeightScale)
		}
	}

	first := spawns[0].Transform.Position
	last := spawns[len(spawns)-1].Transform.Position
	if first.X() != -1.5 || first.Z() != -1.5 {
		t.Errorf("first tile at (%v, %v), want (-1.5, -1.5)", first.X(), first.Z())
	}
	if last.X() != 1.5 || last.Z() != 1.5 {
		t.Errorf("last tile at (%v, %v), want (1.5, 1.5)", last.X(), last.Z())
	}
}

func TestTerrainDeterministicPerSeed(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 42
	a := Terrain(opts)
	b := Terrain(opts)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Transform.Position != b[i].Transform.Position {
			t.Fatalf("tile %d position %v vs %v", i, a[i].Transform.Position, b[i].Transform.Position)
		}
		if a[i].Shape.HalfExtents() != b[i].Shape.HalfExtents() {
			t.Fatalf("tile %d extents differ", i)
		}
	}
}

func TestTerrainEmptyGrid(t *testing.T) {
	if spawns := Terrain(Options{Width: 0, Depth: 4}); spawns != nil {
		t.Fatalf("got %d spawns for empty grid", len(spawns))
	}
}

func TestStackPlacesBoxesAscending(t *testing.T) {
	base := mgl32.Vec3{1, 0, 2}
	spawns := Stack(4, base)
	if len(spawns) != 4 {
		t.Fatalf("spawns = %d, want 4", len(spawns))
	}
	for i, s := range spawns {
		if s.Type != physics.Dynamic {
			t.Fatalf("box %d type = %v, want dynamic", i, s.Type)
		}
		if s.Shape != spawns[0].Shape {
			t.Errorf("box %d does not share the stack shape", i)
		}
		pos := s.Transform.Position
		if pos.X() != 1 || pos.Z() != 2 {
			t.Errorf("box %d drifted to (%v, %v)", i, pos.X(), pos.Z())
		}
		wantY := 0.5 + float32(i)*1.01
		if pos.Y() != wantY {
			t.Errorf("box %d y = %v, want %v", i, pos.Y(), wantY)
		}
	}

	if Stack(0, base) != nil {
		t.Fatal("empty stack should be nil")
	}
}

func TestRainDeterministicAndBounded(t *testing.T) {
	const area = 8
	a := Rain(10, 5, area)
	b := Rain(10, 5, area)
	c := Rain(10, 6, area)

	if len(a) != 10 {
		t.Fatalf("spawns = %d, want 10", len(a))
	}
	for i, s := range a {
		pos := s.Transform.Position
		if pos.X() < -area/2 || pos.X() > area/2 || pos.Z() < -area/2 || pos.Z() > area/2 {
			t.Errorf("sphere %d at (%v, %v) outside area", i, pos.X(), pos.Z())
		}
		r := s.Shape.Radius()
		if r < 0.2 || r > 0.5 {
			t.Errorf("sphere %d radius %v outside [0.2, 0.5]", i, r)
		}
		if pos != b[i].Transform.Position {
			t.Errorf("sphere %d not deterministic", i)
		}
	}

	same := true
	for i := range a {
		if a[i].Transform.Position != c[i].Transform.Position {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical rain")
	}
}

func TestArenaComposition(t *testing.T) {
	spawns := Arena(3)
	if len(spawns) != 22 {
		t.Fatalf("spawns = %d, want 22", len(spawns))
	}
	if spawns[0].Name != "ground" || spawns[0].Type != physics.Static {
		t.Fatalf("first spawn = %q %v, want static ground", spawns[0].Name, spawns[0].Type)
	}

	var static, dynamic int
	for _, s := range spawns {
		switch s.Type {
		case physics.Static:
			static++
		case physics.Dynamic:
			dynamic++
		}
	}
	if static != 5 {
		t.Errorf("static spawns = %d, want 5", static)
	}
	if dynamic != 17 {
		t.Errorf("dynamic spawns = %d, want 17", dynamic)
	}
}

func TestApplyCreatesBodies(t *testing.T) {
	rt, err := physics.NewRuntime()
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	t.Cleanup(func() { rt.Close() })
	w := physics.NewWorld(rt)

	spawns := Arena(1)
	bodies := Apply(w, spawns)

	if len(bodies) != len(spawns) {
		t.Fatalf("bodies = %d, want %d", len(bodies), len(spawns))
	}
	if w.BodyCount() != len(spawns) {
		t.Fatalf("world count = %d, want %d", w.BodyCount(), len(spawns))
	}
	for i, b := range bodies {
		if !w.Alive(b) {
			t.Fatalf("body %d not alive", i)
		}
	}
}
