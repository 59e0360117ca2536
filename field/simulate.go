package field

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Params are the simulation inputs for one frame.
type Params struct {
	Time           float64
	NoiseScale     float64
	NoiseIntensity float64
	TimeScale      float64 // already multiplied by speed
	PlaneScale     float64
}

// Position returns a particle's position for the given frame parameters.
// It depends only on its arguments.
func Position(s Seed, p Params) r3.Vec {
	base := BasePosition(s, p.PlaneScale)
	d := Displacement(base, p.NoiseScale, p.Time*p.TimeScale)
	return r3.Add(base, r3.Scale(p.NoiseIntensity, d))
}

// Texture is the CPU form of the simulation texture: one position per texel,
// row-major, Size×Size.
type Texture struct {
	Size   int
	Texels []r3.Vec
}

// NewTexture allocates a size×size texture.
func NewTexture(size int) (*Texture, error) {
	if size < 1 {
		return nil, fmt.Errorf("texture size %d must be positive", size)
	}
	return &Texture{Size: size, Texels: make([]r3.Vec, size*size)}, nil
}

// At returns the texel at (col, row).
func (t *Texture) At(col, row int) r3.Vec {
	return t.Texels[row*t.Size+col]
}

// Len returns the particle count.
func (t *Texture) Len() int {
	return len(t.Texels)
}

// SimulateRows regenerates rows [start, end) of dst. Nothing is read from the
// previous contents.
func SimulateRows(dst *Texture, p Params, start, end int) {
	size := dst.Size
	for row := start; row < end; row++ {
		for col := 0; col < size; col++ {
			dst.Texels[row*size+col] = Position(SeedAt(col, row, size), p)
		}
	}
}

// Simulate regenerates every texel of dst on the calling goroutine.
func Simulate(dst *Texture, p Params) {
	SimulateRows(dst, p, 0, dst.Size)
}
