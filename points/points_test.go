package points

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// fixedDepth reports the same view depth for every position.
type fixedDepth float64

func (d fixedDepth) ViewDepth(r3.Vec) float64 { return float64(d) }

func revealed() Uniforms {
	return Uniforms{
		Time:           1.5,
		Focus:          3.8,
		Aperture:       1.79,
		PointSize:      10,
		Opacity:        0.3,
		RevealFactor:   4,
		RevealProgress: 1,
	}
}

func TestSizeGrowsWithApertureAndBlur(t *testing.T) {
	if got := Size(0, 1.79, 10); got != MinPointSize {
		t.Errorf("in-focus size should clamp to %v, got %v", MinPointSize, got)
	}

	narrow := Size(1, 0.5, 10)
	wide := Size(1, 2.0, 10)
	if wide <= narrow {
		t.Errorf("expected wider aperture to enlarge points: %v <= %v", wide, narrow)
	}
	if Size(2, 1, 10) <= Size(1, 1, 10) {
		t.Error("expected more blur to enlarge points")
	}
}

func TestBlurIsSymmetric(t *testing.T) {
	if Blur(3, 4) != Blur(5, 4) {
		t.Error("blur should depend only on the distance to focus")
	}
}

func TestRevealMask(t *testing.T) {
	base := r3.Vec{X: 0.1, Z: 0.1}

	if m := RevealMask(base, base, 4); m != 1 {
		t.Errorf("expected particle near centre fully revealed, got %v", m)
	}
	far := r3.Vec{X: 6, Z: 6}
	if m := RevealMask(far, far, 4); m != 0 {
		t.Errorf("expected particle outside the disc hidden, got %v", m)
	}
	mid := r3.Vec{X: 2}
	if m := RevealMask(mid, mid, 0); m != 0 {
		t.Errorf("expected nothing revealed at factor 0, got %v", m)
	}
}

func TestAlphaZeroBeforeReveal(t *testing.T) {
	u := revealed()
	u.RevealProgress = 0
	if a := Alpha(0.5, 0, 1, 1.5, u); a != 0 {
		t.Errorf("expected zero alpha before reveal, got %v", a)
	}
}

func TestAlphaFadesBelowPlane(t *testing.T) {
	u := revealed()
	if a := Alpha(0, -1, 1, 1, u); a != 0 {
		t.Errorf("expected particles well below the plane to vanish, got %v", a)
	}
	if a := Alpha(0, 0.5, 1, 1, u); a <= 0 {
		t.Errorf("expected visible particle above the plane, got %v", a)
	}
}

func TestSparkleRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		seed := r3.Vec{X: float64(i) * 0.37, Z: float64(i%17) * -0.21}
		for _, tm := range []float64{0, 0.9, 13.1} {
			s := Sparkle(seed, tm)
			if s < 0.7-1e-9 || s > 2.0+1e-9 {
				t.Fatalf("sparkle %v outside [0.7, 2.0] for seed %v", s, seed)
			}
		}
	}
}

func TestBlendEndpoints(t *testing.T) {
	if got := Blend(0.4, 1.8, 0); got != 0.4 {
		t.Errorf("transition 0 should keep normal alpha, got %v", got)
	}
	if got := Blend(0.4, 1.8, 1); math.Abs(got-0.7) > 1e-12 {
		t.Errorf("transition 1 should use sparkle-1.1, got %v", got)
	}
	// Dim sparkles fall to zero rather than going negative
	if got := Blend(0.4, 0.8, 1); got != 0 {
		t.Errorf("expected clamp to 0, got %v", got)
	}
	for tr := 0.0; tr <= 1.0; tr += 0.05 {
		if got := Blend(0.9, 2.0, tr); got < 0 || got > 1 {
			t.Fatalf("blend %v out of range at transition %v", got, tr)
		}
	}
}

func TestConvergeSettlesAtFullReveal(t *testing.T) {
	base := r3.Vec{X: 2, Z: -3}
	pos := r3.Vec{X: 2.1, Y: 0.2, Z: -2.9}

	if got := Converge(base, pos, 1); got != pos {
		t.Errorf("expected no offset after reveal, got %v", got)
	}
	start := Converge(base, pos, 0)
	if math.Hypot(start.X, start.Z) <= math.Hypot(pos.X, pos.Z) {
		t.Error("expected particles to start outside their final radius")
	}
	if start.Y != pos.Y {
		t.Error("convergence should not move particles vertically")
	}
}

func TestCoverageProfile(t *testing.T) {
	if Coverage(0, 0) != 1 {
		t.Error("expected full coverage at sprite centre")
	}
	if Coverage(1, 0) != 0 || Coverage(0.8, 0.8) != 0 {
		t.Error("expected zero coverage at and beyond the sprite edge")
	}
}

func TestTintTransition(t *testing.T) {
	if c := Tint(0); c != [3]float64{1, 1, 1} {
		t.Errorf("expected white at rest, got %v", c)
	}
	c := Tint(1)
	if c[0] >= 1 || c[2] != 1 {
		t.Errorf("expected cooler tint when introspecting, got %v", c)
	}
}

func TestShadeInFocus(t *testing.T) {
	base := r3.Vec{X: 0.2, Z: 0.3}
	pos := r3.Vec{X: 0.2, Y: 0.3, Z: 0.3}

	p := Shade(base, pos, fixedDepth(3.8), revealed())
	if p.Size != MinPointSize {
		t.Errorf("expected minimum size in focus, got %v", p.Size)
	}
	if p.Alpha <= 0 || p.Alpha > 1 {
		t.Errorf("expected visible alpha in (0,1], got %v", p.Alpha)
	}
	if p.World != pos {
		t.Errorf("expected world position unchanged after reveal, got %v", p.World)
	}
}
