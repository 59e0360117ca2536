// Package field evaluates the procedural particle field: a periodic noise
// function and the per-texel positions the simulation pass writes each frame.
//
// Everything here is pure. The GPU simulation shader evaluates the same
// formulas; these functions are the reference the software backend and the
// tests use.
package field

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// NoiseGain scales the summed noise terms.
const NoiseGain = 0.3

// Phase offsets decorrelating the three displacement axes.
const (
	phaseY = 2.094
	phaseZ = 4.188
)

// Domain offsets for the Y and Z displacement lookups.
var (
	offsetY = r3.Vec{X: 50}
	offsetZ = r3.Vec{Y: 50}
)

// PeriodicNoise returns the layered sine/cosine noise at p and time t.
// Only the X and Z components of p contribute. The result lies in [-0.69, 0.69].
func PeriodicNoise(p r3.Vec, t float64) float64 {
	n := math.Sin(p.X*2.0+t) * math.Cos(p.Z*1.5+t)
	n += math.Sin(p.X*3.2+t*2.0) * math.Cos(p.Z*2.1+t) * 0.6
	n += math.Sin(p.X*1.7+t) * math.Cos(p.Z*2.8+t*3.0) * 0.4
	n += math.Sin(p.X*p.Z*0.5+t*2.0) * 0.3
	return n * NoiseGain
}

// Displacement returns the unscaled three-axis offset for a base position.
func Displacement(base r3.Vec, noiseScale, t float64) r3.Vec {
	q := r3.Scale(noiseScale, base)
	return r3.Vec{
		X: PeriodicNoise(q, t),
		Y: PeriodicNoise(r3.Add(q, offsetY), t+phaseY),
		Z: PeriodicNoise(r3.Add(q, offsetZ), t+phaseZ),
	}
}
