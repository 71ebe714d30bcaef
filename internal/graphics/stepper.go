package graphics

// defaultMaxSubSteps bounds how many fixed steps one frame may run. Frames
// slower than MaxSubSteps*Dt drop the overflow instead of spiraling.
const defaultMaxSubSteps = 8

// FixedStepper advances a simulation in fixed-size steps, carrying the
// unconsumed remainder between frames. Variable frame times in, deterministic
// step sizes out.
type FixedStepper struct {
	Dt          float32
	MaxSubSteps int
	accum       float32
}

// NewFixedStepper returns a stepper with the given step size and the default
// sub-step cap.
func NewFixedStepper(dt float32) *FixedStepper {
	return &FixedStepper{Dt: dt, MaxSubSteps: defaultMaxSubSteps}
}

// Advance adds frameDt to the accumulator and calls step once per whole
// fixed step, at most MaxSubSteps times. Returns how many steps ran.
func (f *FixedStepper) Advance(frameDt float32, step func(dt float32)) int {
	if frameDt < 0 || f.Dt <= 0 {
		return 0
	}
	f.accum += frameDt

	steps := 0
	for f.accum >= f.Dt && steps < f.MaxSubSteps {
		step(f.Dt)
		f.accum -= f.Dt
		steps++
	}
	if f.accum >= f.Dt {
		f.accum = 0
	}
	return steps
}

// Alpha returns the fraction of a step left in the accumulator, for
// interpolating render state between fixed steps.
func (f *FixedStepper) Alpha() float32 {
	if f.Dt <= 0 {
		return 0
	}
	return f.accum / f.Dt
}
