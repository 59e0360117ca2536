package field

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func defaultParams(t float64) Params {
	return Params{
		Time:           t,
		NoiseScale:     0.6,
		NoiseIntensity: 0.52,
		TimeScale:      1.0,
		PlaneScale:     10.0,
	}
}

func TestPeriodicNoiseBounded(t *testing.T) {
	bound := (1.0 + 0.6 + 0.4 + 0.3) * NoiseGain
	for x := -10.0; x <= 10.0; x += 0.37 {
		for z := -10.0; z <= 10.0; z += 0.41 {
			for _, tm := range []float64{0, 1.3, 17.9} {
				n := PeriodicNoise(r3.Vec{X: x, Z: z}, tm)
				if math.Abs(n) > bound+1e-12 {
					t.Fatalf("noise %f at (%f, %f, t=%f) exceeds bound %f", n, x, z, tm, bound)
				}
			}
		}
	}
}

func TestPeriodicNoiseIgnoresY(t *testing.T) {
	a := PeriodicNoise(r3.Vec{X: 1.2, Y: 0, Z: -0.7}, 2.5)
	b := PeriodicNoise(r3.Vec{X: 1.2, Y: 99, Z: -0.7}, 2.5)
	if a != b {
		t.Errorf("expected Y to be ignored, got %f vs %f", a, b)
	}
}

func TestPositionIsPure(t *testing.T) {
	seeds := []Seed{{0.1, 0.9}, {0.5, 0.5}, {0.77, 0.03}}
	for _, s := range seeds {
		p := defaultParams(4.2)
		first := Position(s, p)
		// Interleave other evaluations to catch hidden state
		Position(Seed{0.3, 0.3}, defaultParams(100))
		second := Position(s, p)
		if first != second {
			t.Errorf("seed %+v: %v != %v", s, first, second)
		}
	}
}

func TestPositionChangesWithTime(t *testing.T) {
	s := Seed{0.3, 0.6}
	a := Position(s, defaultParams(0))
	b := Position(s, defaultParams(1))
	if a == b {
		t.Error("expected animated positions to differ across time")
	}
}

func TestZeroIntensityYieldsBasePositions(t *testing.T) {
	tex, err := NewTexture(4)
	if err != nil {
		t.Fatal(err)
	}
	p := Params{Time: 12.5, NoiseScale: 0, NoiseIntensity: 0, TimeScale: 1, PlaneScale: 10}
	Simulate(tex, p)

	if tex.Len() != 16 {
		t.Fatalf("expected 16 particles, got %d", tex.Len())
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := BasePosition(SeedAt(col, row, 4), 10)
			if got := tex.At(col, row); got != want {
				t.Errorf("(%d,%d): expected %v, got %v", col, row, want, got)
			}
		}
	}
}

func TestBasePositionSpansPlane(t *testing.T) {
	size := 8
	scale := 10.0
	first := BasePosition(SeedAt(0, 0, size), scale)
	last := BasePosition(SeedAt(size-1, size-1, size), scale)

	// Texel centres sit half a cell inside the plane edge
	half := scale / 2
	cell := scale / float64(size)
	if math.Abs(first.X-(-half+cell/2)) > 1e-12 || math.Abs(last.Z-(half-cell/2)) > 1e-12 {
		t.Errorf("unexpected plane extents: first=%v last=%v", first, last)
	}
	if first.Y != 0 || last.Y != 0 {
		t.Error("expected base plane at y=0")
	}
}

func TestTextureDimensions(t *testing.T) {
	for _, size := range []int{1, 2, 7, 64} {
		tex, err := NewTexture(size)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if tex.Len() != size*size {
			t.Errorf("size %d: expected %d texels, got %d", size, size*size, tex.Len())
		}
		if len(Seeds(size)) != size*size {
			t.Errorf("size %d: expected %d seeds", size, size*size)
		}
	}

	if _, err := NewTexture(-1); err == nil {
		t.Error("expected error for negative size")
	}
}

func TestSimulatorMatchesSerial(t *testing.T) {
	size := 96
	serial, _ := NewTexture(size)
	parallel, _ := NewTexture(size)
	p := defaultParams(3.3)

	Simulate(serial, p)

	sim := NewSimulator(4)
	defer sim.Stop()
	// Two frames through the same pool
	sim.Run(parallel, defaultParams(0))
	sim.Run(parallel, p)

	for i := range serial.Texels {
		if serial.Texels[i] != parallel.Texels[i] {
			t.Fatalf("texel %d: serial %v != parallel %v", i, serial.Texels[i], parallel.Texels[i])
		}
	}
}

func TestSimulatorStopIdempotent(t *testing.T) {
	sim := NewSimulator(2)
	sim.Stop()
	tex, _ := NewTexture(64)
	sim.Run(tex, defaultParams(1))
	sim.Stop()
	sim.Stop()
}
