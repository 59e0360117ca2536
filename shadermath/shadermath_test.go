package shadermath

import "testing"

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := Smoothstep(0, 1, tt.x); got != tt.want {
			t.Errorf("Smoothstep(0, 1, %v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestFractNegative(t *testing.T) {
	if got := Fract(-0.25); got != 0.75 {
		t.Errorf("Fract(-0.25) = %v, want 0.75", got)
	}
}

func TestMixAndClamp(t *testing.T) {
	if got := Mix(2, 4, 0.25); got != 2.5 {
		t.Errorf("Mix = %v, want 2.5", got)
	}
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Clamp = %v, want 1", got)
	}
	if Step(0.3, 0.3) != 1 || Step(0.3, 0.29) != 0 {
		t.Error("Step edge handling differs from GLSL")
	}
}
