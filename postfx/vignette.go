// Package postfx implements the final screen-space pass: a radial vignette.
package postfx

import (
	"image"

	sm "github.com/pthm-cable/drift/shadermath"
)

// Defaults used by the hero background.
const (
	DefaultOffset   = 0.4
	DefaultDarkness = 1.5
)

// Vignette darkens the frame toward its corners. Brightness is untouched
// while the squared distance from the centre (in [-1,1] coordinates) stays
// below Offset and reaches zero at Offset+Darkness.
type Vignette struct {
	Offset   float64
	Darkness float64
}

// Factor returns the brightness multiplier at texture coordinate (u, v).
func (vg Vignette) Factor(u, v float64) float64 {
	x := (u - 0.5) * 2
	y := (v - 0.5) * 2
	dist := x*x + y*y
	return 1 - sm.Smoothstep(vg.Offset, vg.Offset+vg.Darkness, dist)
}

// Apply writes the vignetted src into dst. Both must have the same bounds.
// Each pixel depends only on its own input; alpha is preserved.
func (vg Vignette) Apply(dst, src *image.RGBA) {
	b := src.Bounds()
	w := float64(b.Dx())
	h := float64(b.Dy())

	for y := b.Min.Y; y < b.Max.Y; y++ {
		v := (float64(y-b.Min.Y) + 0.5) / h
		for x := b.Min.X; x < b.Max.X; x++ {
			u := (float64(x-b.Min.X) + 0.5) / w
			f := vg.Factor(u, v)

			si := src.PixOffset(x, y)
			di := dst.PixOffset(x, y)
			dst.Pix[di+0] = scale(src.Pix[si+0], f)
			dst.Pix[di+1] = scale(src.Pix[si+1], f)
			dst.Pix[di+2] = scale(src.Pix[si+2], f)
			dst.Pix[di+3] = src.Pix[si+3]
		}
	}
}

func scale(c uint8, f float64) uint8 {
	return uint8(float64(c)*f + 0.5)
}
