package postfx

import (
	"image"
	"image/color"
	"testing"
)

func defaultVignette() Vignette {
	return Vignette{Offset: DefaultOffset, Darkness: DefaultDarkness}
}

func TestFactorCenterUnmodified(t *testing.T) {
	if f := defaultVignette().Factor(0.5, 0.5); f != 1 {
		t.Errorf("expected factor 1 at centre, got %v", f)
	}
}

func TestFactorCornerAttenuated(t *testing.T) {
	vg := defaultVignette()
	corner := vg.Factor(0, 0)
	// Squared distance at a corner is 2, past the outer edge at 1.9
	if corner != 0 {
		t.Errorf("expected corner fully dark, got %v", corner)
	}

	edge := vg.Factor(1, 0.5) // squared distance 1
	if edge <= 0 || edge >= 1 {
		t.Errorf("expected partial attenuation at edge midpoint, got %v", edge)
	}
}

func TestFactorMonotonicAlongDiagonal(t *testing.T) {
	vg := defaultVignette()
	prev := 1.0
	for i := 0; i <= 50; i++ {
		u := 0.5 - float64(i)*0.01
		f := vg.Factor(u, u)
		if f > prev {
			t.Fatalf("factor increased toward corner at u=%v: %v > %v", u, f, prev)
		}
		prev = f
	}
}

func TestApply(t *testing.T) {
	const size = 33
	src := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	dst := image.NewRGBA(src.Bounds())
	defaultVignette().Apply(dst, src)

	if dst.Bounds() != src.Bounds() {
		t.Fatalf("bounds changed: %v", dst.Bounds())
	}
	if c := dst.RGBAAt(size/2, size/2); c != (color.RGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("expected centre pixel unchanged, got %+v", c)
	}
	corner := dst.RGBAAt(0, 0)
	if corner.R >= 20 || corner.A != 255 {
		t.Errorf("expected dark corner with alpha kept, got %+v", corner)
	}
}
