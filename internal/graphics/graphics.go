// Package graphics owns the window and the frame loop, keeping raylib setup
// out of the scene and simulation code.
package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/caldera3d/caldera/internal/config"
)

// Run opens a window per cfg and loops until it is closed. Each frame it
// calls update (input, simulation), then clears the screen and calls draw.
// ESC closes the window.
func Run(cfg config.WindowConfig, update, draw func()) {
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.TargetFPS))

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 26, 30, 255))
		draw()
		rl.EndDrawing()
	}
}

// Aspect returns the current window aspect ratio, or 1 before the window
// opens.
func Aspect() float32 {
	h := rl.GetScreenHeight()
	if h == 0 {
		return 1
	}
	return float32(rl.GetScreenWidth()) / float32(h)
}
