// Package debug draws the runtime overlay: frame rate, heap use, and
// simulation counters.
package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	overlayFontSize   = 20
	overlayPadding    = 12
	overlayLineHeight = overlayFontSize + 4
	// updateInterval is the overlay text refresh cadence, in frames.
	updateInterval = 30
)

// Stats carries the per-frame counters the overlay prints. The caller fills
// it; zero values draw as zeros.
type Stats struct {
	Bodies     int
	Tracked    int
	StepMillis float64
	Hits       int
}

// Overlay renders debug text in the top-right corner. All lines are off by
// default.
type Overlay struct {
	ShowFPS   bool
	ShowStats bool

	frameCount uint32
	lastFps    string
	lastMem    string
	lastStats  string
	memStats   runtime.MemStats
}

// New returns an overlay with every line hidden.
func New() *Overlay {
	return &Overlay{}
}

// Draw renders the enabled overlay lines. Call after EndMode3D, inside the
// draw phase. Text is recomputed every updateInterval frames.
func (o *Overlay) Draw(stats Stats) {
	o.frameCount++
	update := o.frameCount%updateInterval == 0
	if o.lastFps == "" {
		update = true
	}

	y := int32(overlayPadding)

	if o.ShowFPS {
		if update {
			o.lastFps = fmt.Sprintf("FPS: %d", rl.GetFPS())
			runtime.ReadMemStats(&o.memStats)
			o.lastMem = fmt.Sprintf("Heap: %.1f MiB", float64(o.memStats.Alloc)/(1024*1024))
		}
		y = o.line(o.lastFps, y)
		y = o.line(o.lastMem, y)
	}

	if o.ShowStats {
		if update || o.lastStats == "" {
			o.lastStats = fmt.Sprintf("Bodies: %d (%d drawn)  Step: %.2f ms  Hits: %d",
				stats.Bodies, stats.Tracked, stats.StepMillis, stats.Hits)
		}
		o.line(o.lastStats, y)
	}
}

// line draws one right-aligned text line and returns the y of the next.
func (o *Overlay) line(text string, y int32) int32 {
	if text == "" {
		return y
	}
	w := rl.MeasureText(text, overlayFontSize)
	x := int32(rl.GetScreenWidth()) - w - overlayPadding
	rl.DrawText(text, x, y, overlayFontSize, rl.Green)
	return y + overlayLineHeight
}
