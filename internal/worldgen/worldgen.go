// Package worldgen populates physics worlds with procedural content.
// Presets emit Spawn lists; Apply turns them into live bodies.
package worldgen

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/caldera3d/caldera/internal/physics"
)

// Spawn is one body to create: shape, placement, and surface properties.
type Spawn struct {
	Name       string
	Shape      *physics.Shape
	Type       physics.BodyType
	Transform  physics.Transform
	Properties physics.Properties
}

// Options controls terrain generation. Width/Depth are in tiles; TileSize is
// the world size of one tile on X/Z. HeightScale is the maximum terrain
// height. Seed == 0 uses a time-based seed. Octaves, Frequency, Lacunarity,
// and Gain control the fractal noise shape.
type Options struct {
	Width       int
	Depth       int
	TileSize    float32
	HeightScale float32

	Seed       int64
	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32
}

// DefaultOptions returns a sane default configuration.
func DefaultOptions() Options {
	return Options{
		Width:       32,
		Depth:       32,
		TileSize:    1.0,
		HeightScale: 3.0,
		Seed:        0,
		Octaves:     4,
		Frequency:   0.08,
		Lacunarity:  2.0,
		Gain:        0.5,
	}
}

const minTileHeight = 0.15

// Terrain builds a height field as a grid of static box columns sitting on
// Y=0, centered around the world origin on XZ. Each tile's height comes from
// fractal noise.
func Terrain(opts Options) []Spawn {
	if opts.Width <= 0 || opts.Depth <= 0 {
		return nil
	}
	if opts.TileSize <= 0 {
		opts.TileSize = 1
	}
	if opts.HeightScale <= 0 {
		opts.HeightScale = 1
	}
	if opts.Octaves <= 0 {
		opts.Octaves = 1
	}
	if opts.Frequency <= 0 {
		opts.Frequency = 0.05
	}
	if opts.Lacunarity <= 0 {
		opts.Lacunarity = 2.0
	}
	if opts.Gain <= 0 {
		opts.Gain = 0.5
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	halfTile := opts.TileSize * 0.5
	extentX := float32(opts.Width) * opts.TileSize * 0.5
	extentZ := float32(opts.Depth) * opts.TileSize * 0.5
	startX := -extentX + halfTile
	startZ := -extentZ + halfTile

	props := physics.DefaultProperties()
	props.Friction = 0.8

	spawns := make([]Spawn, 0, opts.Width*opts.Depth)
	for z := 0; z < opts.Depth; z++ {
		for x := 0; x < opts.Width; x++ {
			h := fractalNoise2D(float32(x)*opts.Frequency, float32(z)*opts.Frequency,
				seed, opts.Octaves, opts.Lacunarity, opts.Gain)
			height := minTileHeight + h*(opts.HeightScale-minTileHeight)
			if !isFinite(height) || height <= 0 {
				height = minTileHeight
			}

			half := mgl32.Vec3{halfTile, height * 0.5, halfTile}
			pos := mgl32.Vec3{
				startX + float32(x)*opts.TileSize,
				height * 0.5,
				startZ + float32(z)*opts.TileSize,
			}
			spawns = append(spawns, Spawn{
				Shape:      physics.NewBoxShape(half, mgl32.Vec3{1, 1, 1}),
				Type:       physics.Static,
				Transform:  physics.TransformAt(pos),
				Properties: props,
			})
		}
	}
	return spawns
}

// Stack builds a vertical tower of n dynamic unit boxes whose lowest box
// rests just above base.
func Stack(n int, base mgl32.Vec3) []Spawn {
	if n <= 0 {
		return nil
	}
	shape := physics.NewBoxShape(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 1, 1})
	props := physics.DefaultProperties()
	props.Friction = 0.6

	spawns := make([]Spawn, 0, n)
	for i := 0; i < n; i++ {
		pos := mgl32.Vec3{base.X(), base.Y() + 0.5 + float32(i)*1.01, base.Z()}
		spawns = append(spawns, Spawn{
			Shape:      shape,
			Type:       physics.Dynamic,
			Transform:  physics.TransformAt(pos),
			Properties: props,
		})
	}
	return spawns
}

// Rain builds n dynamic spheres dropping over a square area centered on the
// origin. Positions, radii, and drop heights are derived from the seed, so
// equal seeds yield equal spawns.
func Rain(n int, seed int64, area float32) []Spawn {
	if n <= 0 {
		return nil
	}
	if area <= 0 {
		area = 10
	}

	spawns := make([]Spawn, 0, n)
	for i := 0; i < n; i++ {
		ix := int32(i)
		x := (hash2D(ix, 0, int32(seed)) - 0.5) * area
		z := (hash2D(ix, 1, int32(seed)) - 0.5) * area
		radius := 0.2 + 0.3*hash2D(ix, 2, int32(seed))
		y := 6 + float32(i)*1.5

		props := physics.DefaultProperties()
		props.Restitution = 0.4

		spawns = append(spawns, Spawn{
			Shape:      physics.NewSphereShape(radius, mgl32.Vec3{1, 1, 1}),
			Type:       physics.Dynamic,
			Transform:  physics.TransformAt(mgl32.Vec3{x, y, z}),
			Properties: props,
		})
	}
	return spawns
}

// Arena builds the demo scene: a ground slab, four walls, a box tower, and a
// shower of spheres.
func Arena(seed int64) []Spawn {
	ground := physics.DefaultProperties()
	ground.Friction = 0.8

	spawns := []Spawn{
		{
			Name:       "ground",
			Shape:      physics.NewBoxShape(mgl32.Vec3{10, 0.5, 10}, mgl32.Vec3{1, 1, 1}),
			Type:       physics.Static,
			Transform:  physics.TransformAt(mgl32.Vec3{0, -0.5, 0}),
			Properties: ground,
		},
	}

	wallHalf := []mgl32.Vec3{
		{10, 1, 0.5},
		{10, 1, 0.5},
		{0.5, 1, 10},
		{0.5, 1, 10},
	}
	wallPos := []mgl32.Vec3{
		{0, 1, -10.5},
		{0, 1, 10.5},
		{-10.5, 1, 0},
		{10.5, 1, 0},
	}
	for i := range wallHalf {
		spawns = append(spawns, Spawn{
			Shape:      physics.NewBoxShape(wallHalf[i], mgl32.Vec3{1, 1, 1}),
			Type:       physics.Static,
			Transform:  physics.TransformAt(wallPos[i]),
			Properties: physics.DefaultProperties(),
		})
	}

	spawns = append(spawns, Stack(5, mgl32.Vec3{-3, 0, -3})...)
	spawns = append(spawns, Rain(12, seed, 8)...)
	return spawns
}

// Apply creates every spawn in w. The result has one handle per spawn, in
// order; a spawn the world rejected leaves a zero handle in its place.
func Apply(w *physics.World, spawns []Spawn) []physics.Body {
	bodies := make([]physics.Body, len(spawns))
	for i := range spawns {
		s := &spawns[i]
		bodies[i] = w.AddBody(s.Type, s.Properties, s.Shape, s.Transform)
	}
	return bodies
}
