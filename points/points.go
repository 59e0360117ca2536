// Package points holds the per-particle shading of the point pass: depth of
// field, reveal mask, sparkle and the hover transition blend.
//
// The GPU evaluates these in points.vs/points.fs; this is the CPU reference
// used by the software backend. Every path is branch-free over the particle:
// particles that should vanish get a vanishing alpha rather than being skipped.
package points

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/field"
	sm "github.com/pthm-cable/drift/shadermath"
)

// MinPointSize is the smallest point diameter in pixels.
const MinPointSize = 3.0

// ConvergeSpread is how far outward (relative to the base radius) particles
// start before the reveal pulls them in.
const ConvergeSpread = 0.5

// Uniforms is the per-frame input to the point pass.
type Uniforms struct {
	Time           float64
	Focus          float64
	Aperture       float64
	PointSize      float64
	Opacity        float64
	RevealFactor   float64 // radius of the revealed disc
	RevealProgress float64 // eased reveal progress, fades points in
	Transition     float64 // 0 = normal field, 1 = introspective
}

// Converge pushes a simulated position outward along its base direction by
// the part of the reveal still to come. Once the reveal is complete the
// offset is zero.
func Converge(base, pos r3.Vec, revealProgress float64) r3.Vec {
	spread := (1 - sm.Clamp(revealProgress, 0, 1)) * ConvergeSpread
	return r3.Add(pos, r3.Vec{X: base.X * spread, Z: base.Z * spread})
}

// Blur is the distance between a particle's view depth and the focal plane.
func Blur(viewDepth, focus float64) float64 {
	return math.Abs(focus - viewDepth)
}

// Size returns the point diameter in pixels.
func Size(blur, aperture, pointSize float64) float64 {
	return math.Max(blur*aperture*pointSize, MinPointSize)
}

// RevealMask is 1 inside the revealed disc and fades to 0 past its edge. The
// edge is roughened by the field noise sampled at the particle's base.
func RevealMask(pos, base r3.Vec, revealFactor float64) float64 {
	radius := math.Hypot(pos.X, pos.Z)
	threshold := revealFactor + field.PeriodicNoise(r3.Scale(4, base), 0)*0.3
	return 1 - sm.Smoothstep(threshold-0.2, threshold+0.1, radius)
}

// Sparkle returns a per-particle flicker in [0.7, 2.0].
func Sparkle(seed r3.Vec, t float64) float64 {
	h := sm.Fract(math.Sin(seed.X*127.1+seed.Y*311.7+seed.Z*74.7) * 43758.5453)
	s := math.Sin(t+h*2*math.Pi) * 0.5
	s += math.Sin(t*1.7+h*4*math.Pi) * 0.3
	s += math.Sin(t*0.8+h*6*math.Pi) * 0.2

	h2 := sm.Fract(math.Sin(seed.X*269.5+seed.Y*183.3+seed.Z*246.1) * 43758.5453)
	m := math.Sin(h2*2*math.Pi)*0.7 + math.Sin(h2*4*math.Pi)*0.3
	// Most particles barely flicker
	s *= sm.Mix(0.05, 1, sm.Step(0.3, m))

	n := (s + 1) * 0.5
	curve := n * n * n * n
	f := sm.Mix(n, curve, n*n)
	return 0.7 + f*1.3
}

// Alpha is the normal-state opacity of a particle.
func Alpha(blur, posY, mask, sparkle float64, u Uniforms) float64 {
	focusFade := 1.04 - sm.Clamp(blur, 0, 1)
	heightFade := sm.Smoothstep(-0.5, 0.25, posY)
	return focusFade * heightFade * u.Opacity * mask * u.RevealProgress * sparkle
}

// Blend mixes the normal alpha toward the introspective sparkle-only state.
func Blend(alpha, sparkle, transition float64) float64 {
	return sm.Clamp(sm.Mix(alpha, sparkle-1.1, transition), 0, 1)
}

// Tint returns the point colour. Introspection cools it slightly.
func Tint(transition float64) [3]float64 {
	k := transition * 0.25
	return [3]float64{sm.Mix(1, 0.55, k), sm.Mix(1, 0.75, k), 1}
}

// Coverage is the soft disc profile of a point sprite; c is the offset from
// the sprite centre in units of its radius.
func Coverage(cx, cy float64) float64 {
	return 1 - sm.Smoothstep(0.8, 1.0, cx*cx+cy*cy)
}

// Viewer reports how far in front of the camera a world position lies.
type Viewer interface {
	ViewDepth(p r3.Vec) float64
}

// Point is a shaded particle.
type Point struct {
	World r3.Vec // converged world position
	Depth float64
	Size  float64 // diameter in pixels
	Alpha float64
	Color [3]float64
}

// Shade evaluates the whole point pass for one particle. base is its static
// plane position, simulated the position read from the simulation texture.
func Shade(base, simulated r3.Vec, view Viewer, u Uniforms) Point {
	world := Converge(base, simulated, u.RevealProgress)
	depth := view.ViewDepth(world)
	blur := Blur(depth, u.Focus)
	sparkle := Sparkle(base, u.Time)
	mask := RevealMask(world, base, u.RevealFactor)
	alpha := Alpha(blur, world.Y, mask, sparkle, u)

	return Point{
		World: world,
		Depth: depth,
		Size:  Size(blur, u.Aperture, u.PointSize),
		Alpha: Blend(alpha, sparkle, u.Transition),
		Color: Tint(u.Transition),
	}
}
