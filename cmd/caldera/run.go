package main

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caldera3d/caldera/internal/config"
	"github.com/caldera3d/caldera/internal/debug"
	"github.com/caldera3d/caldera/internal/graphics"
	"github.com/caldera3d/caldera/internal/physics"
	"github.com/caldera3d/caldera/internal/primitives"
	"github.com/caldera3d/caldera/internal/scene"
	"github.com/caldera3d/caldera/internal/worldgen"
)

func runWindowed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	rt, err := physics.NewRuntime(
		physics.WithLogger(log),
		physics.WithMaxContacts(cfg.Physics.MaxContacts),
	)
	if err != nil {
		return fmt.Errorf("init physics: %w", err)
	}
	defer rt.Close()

	world := physics.NewWorld(rt, physics.WithGravity(mgl32.Vec3(cfg.Physics.Gravity)))
	scn := scene.New(log, world)
	scn.GridVisible = cfg.Overlay.GridVisible

	spawns, err := spawnsFor(cfg)
	if err != nil {
		return err
	}
	scn.Populate(spawns)
	log.Info("scene ready",
		zap.String("preset", cfg.Scene.Preset),
		zap.Int("bodies", world.BodyCount()))

	reg := primitives.NewRegistry()
	overlay := debug.New()
	overlay.ShowFPS = cfg.Overlay.ShowFPS
	overlay.ShowStats = cfg.Overlay.ShowStepStats

	stepper := graphics.NewFixedStepper(cfg.Physics.FixedDt)
	var stepMillis float64
	rainBursts := int64(0)

	update := func() {
		scn.Update()

		start := time.Now()
		ran := stepper.Advance(rl.GetFrameTime(), world.Step)
		if ran > 0 {
			stepMillis = float64(time.Since(start).Microseconds()) / 1000
		}

		scn.Pick()
		if rl.IsKeyPressed(rl.KeyX) {
			if hits := scn.LastHits(); len(hits) > 0 {
				world.RemoveBody(hits[0].Body)
				scn.Sync()
				scn.ClearPick()
			}
		}
		if rl.IsKeyPressed(rl.KeyR) {
			rainBursts++
			burst := worldgen.Rain(6, cfg.Scene.Seed+rainBursts*977, 8)
			scn.Populate(burst)
			log.Info("spawned rain burst", zap.Int("spheres", len(burst)))
		}
		if rl.IsKeyPressed(rl.KeyG) {
			scn.GridVisible = !scn.GridVisible
		}
	}

	draw := func() {
		scn.Draw(reg)
		overlay.Draw(debug.Stats{
			Bodies:     world.BodyCount(),
			Tracked:    scn.TrackedCount(),
			StepMillis: stepMillis,
			Hits:       len(scn.LastHits()),
		})
	}

	graphics.Run(cfg.Window, update, draw)
	return nil
}

// spawnsFor builds the spawn list: explicit bodies from config win, otherwise
// the named preset.
func spawnsFor(cfg *config.Config) ([]worldgen.Spawn, error) {
	return spawnsForSeed(cfg, cfg.Scene.Seed)
}

func spawnsForSeed(cfg *config.Config, seed int64) ([]worldgen.Spawn, error) {
	if len(cfg.Scene.Bodies) > 0 {
		spawns, err := worldgen.FromSpecs(cfg.Scene.Bodies)
		if err != nil {
			return nil, fmt.Errorf("scene bodies: %w", err)
		}
		return spawns, nil
	}

	switch cfg.Scene.Preset {
	case "", "arena":
		return worldgen.Arena(seed), nil
	case "terrain":
		opts := worldgen.DefaultOptions()
		opts.Seed = seed
		return worldgen.Terrain(opts), nil
	case "stack":
		return worldgen.Stack(8, mgl32.Vec3{0, 0, 0}), nil
	case "rain":
		return worldgen.Rain(24, seed, 10), nil
	default:
		return nil, fmt.Errorf("unknown scene preset %q", cfg.Scene.Preset)
	}
}
