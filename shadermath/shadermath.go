// Package shadermath mirrors the GLSL built-ins the shaders rely on, so CPU
// code evaluates the same curves the GPU does.
package shadermath

import "math"

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// Mix linearly interpolates between a and b.
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Step returns 0 when x < edge, otherwise 1.
func Step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}

// Smoothstep is the Hermite ramp from 0 at e0 to 1 at e1.
func Smoothstep(e0, e1, x float64) float64 {
	t := Clamp((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}

// Fract returns the fractional part of x, always in [0, 1).
func Fract(x float64) float64 {
	return x - math.Floor(x)
}
