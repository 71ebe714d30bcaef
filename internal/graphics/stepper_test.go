package graphics

import "testing"

func TestStepperRunsWholeSteps(t *testing.T) {
	s := NewFixedStepper(0.25)

	var dts []float32
	ran := s.Advance(0.6, func(dt float32) { dts = append(dts, dt) })

	if ran != 2 || len(dts) != 2 {
		t.Fatalf("ran %d steps, want 2", ran)
	}
	for _, dt := range dts {
		if dt != 0.25 {
			t.Fatalf("step dt = %v, want 0.25", dt)
		}
	}
	if a := s.Alpha(); a < 0.39 || a > 0.41 {
		t.Fatalf("alpha = %v, want ~0.4", a)
	}
}

func TestStepperCarriesRemainder(t *testing.T) {
	s := NewFixedStepper(0.5)

	if ran := s.Advance(0.3, func(float32) {}); ran != 0 {
		t.Fatalf("ran %d steps on a partial frame, want 0", ran)
	}
	if ran := s.Advance(0.3, func(float32) {}); ran != 1 {
		t.Fatal("remainder from the previous frame should complete a step")
	}
}

func TestStepperCapsSubSteps(t *testing.T) {
	s := NewFixedStepper(0.01)
	s.MaxSubSteps = 4

	ran := s.Advance(1.0, func(float32) {})
	if ran != 4 {
		t.Fatalf("ran %d steps, want cap of 4", ran)
	}
	// Overflow beyond the cap is dropped, not replayed next frame.
	if ran := s.Advance(0, func(float32) {}); ran != 0 {
		t.Fatalf("dropped overflow replayed %d steps", ran)
	}
}

func TestStepperRejectsBadInput(t *testing.T) {
	s := NewFixedStepper(0.1)
	if ran := s.Advance(-1, func(float32) {}); ran != 0 {
		t.Fatal("negative frame time should not step")
	}

	s = &FixedStepper{Dt: 0}
	if ran := s.Advance(1, func(float32) {}); ran != 0 {
		t.Fatal("zero step size should not step")
	}
	if s.Alpha() != 0 {
		t.Fatal("zero step size should report zero alpha")
	}
}
