package field

import "gonum.org/v1/gonum/spatial/r3"

// Seed is a particle's only persistent state: the UV of its texel centre.
type Seed struct {
	U, V float64
}

// SeedAt returns the seed for grid cell (col, row).
func SeedAt(col, row, size int) Seed {
	return Seed{
		U: (float64(col) + 0.5) / float64(size),
		V: (float64(row) + 0.5) / float64(size),
	}
}

// Seeds returns all size² seeds in row-major order.
func Seeds(size int) []Seed {
	seeds := make([]Seed, 0, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			seeds = append(seeds, SeedAt(col, row, size))
		}
	}
	return seeds
}

// BasePosition maps a seed onto the XZ plane, centred on the origin and
// planeScale units across.
func BasePosition(s Seed, planeScale float64) r3.Vec {
	return r3.Vec{
		X: (s.U - 0.5) * planeScale,
		Y: 0,
		Z: (s.V - 0.5) * planeScale,
	}
}
