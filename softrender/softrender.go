// Package softrender is the CPU backend. It runs the same three stages as the
// GPU renderer using the reference math in field, points and postfx, which
// makes it usable without a window: headless capture, CI and tests.
package softrender

import (
	"image"
	"image/color"
	"math"

	"github.com/pthm-cable/drift/camera"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/field"
	"github.com/pthm-cable/drift/pipeline"
	"github.com/pthm-cable/drift/points"
	"github.com/pthm-cable/drift/postfx"
)

// Backend builds software stages and exposes their outputs.
type Backend struct {
	sim  *Simulation
	pts  *Points
	post *Post
}

// NewBackend creates a software backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Name implements pipeline.Backend.
func (b *Backend) Name() string { return "software" }

// Build implements pipeline.Backend.
func (b *Backend) Build(cfg *config.Config) (pipeline.Stages, error) {
	tex, err := field.NewTexture(cfg.Particles.Size)
	if err != nil {
		return pipeline.Stages{}, err
	}

	b.sim = &Simulation{
		tex:       tex,
		simulator: field.NewSimulator(cfg.Render.Workers),
	}
	b.pts = newPoints(tex, cfg)
	b.post = &Post{
		vignette: postfx.Vignette{Offset: cfg.Vignette.Offset, Darkness: cfg.Vignette.Darkness},
		scene:    b.pts.scene,
		out:      image.NewRGBA(b.pts.scene.Bounds()),
	}
	return pipeline.Stages{Simulation: b.sim, Points: b.pts, Post: b.post}, nil
}

// Texture returns the simulation texture, or nil before Build.
func (b *Backend) Texture() *field.Texture {
	if b.sim == nil {
		return nil
	}
	return b.sim.tex
}

// Frame returns the last post-processed frame, or nil before Build. The
// image is reused on the next frame.
func (b *Backend) Frame() *image.RGBA {
	if b.post == nil {
		return nil
	}
	return b.post.out
}

// Simulation regenerates the position texture with a worker pool.
type Simulation struct {
	tex       *field.Texture
	simulator *field.Simulator
}

// Name implements pipeline.Stage.
func (s *Simulation) Name() string { return "simulation" }

// Run implements pipeline.Stage.
func (s *Simulation) Run(p pipeline.Params) {
	s.simulator.Run(s.tex, p.Field())
}

// Close stops the workers.
func (s *Simulation) Close() error {
	s.simulator.Stop()
	return nil
}

// Points splats every particle into the scene with additive blending.
type Points struct {
	tex        *field.Texture
	cam        *camera.Camera
	scene      *image.RGBA
	accum      []float64 // linear RGB, 3 per pixel
	background [3]float64
	maxRadius  float64 // 0 = unlimited
}

func newPoints(tex *field.Texture, cfg *config.Config) *Points {
	w, h := cfg.Screen.Width, cfg.Screen.Height
	bg := cfg.Derived.Background
	return &Points{
		tex:   tex,
		cam:   camera.FromConfig(cfg.Camera),
		scene: image.NewRGBA(image.Rect(0, 0, w, h)),
		accum: make([]float64, w*h*3),
		background: [3]float64{
			float64(bg.R) / 255,
			float64(bg.G) / 255,
			float64(bg.B) / 255,
		},
		maxRadius: float64(cfg.Render.MaxSplatRadius),
	}
}

// Name implements pipeline.Stage.
func (pt *Points) Name() string { return "points" }

// Run implements pipeline.Stage. Additive blending is order independent, so
// particles are splatted in texel order.
func (pt *Points) Run(p pipeline.Params) {
	for i := 0; i < len(pt.accum); i += 3 {
		pt.accum[i] = pt.background[0]
		pt.accum[i+1] = pt.background[1]
		pt.accum[i+2] = pt.background[2]
	}

	u := p.Points()
	size := pt.tex.Size
	w := float64(pt.scene.Rect.Dx())
	h := float64(pt.scene.Rect.Dy())

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			base := field.BasePosition(field.SeedAt(col, row, size), p.PlaneScale)
			pt.splat(points.Shade(base, pt.tex.At(col, row), pt.cam, u), w, h)
		}
	}

	pt.resolve()
}

// splat adds one point sprite. A zero-alpha point contributes nothing, so
// skipping it leaves the image unchanged.
func (pt *Points) splat(sp points.Point, w, h float64) {
	if sp.Alpha <= 0 {
		return
	}
	proj := pt.cam.Project(sp.World, w, h)
	if !proj.Visible {
		return
	}

	r := sp.Size / 2
	if pt.maxRadius > 0 {
		r = math.Min(r, pt.maxRadius)
	}

	x0 := max(int(math.Floor(proj.X-r)), 0)
	x1 := min(int(math.Ceil(proj.X+r)), int(w)-1)
	y0 := max(int(math.Floor(proj.Y-r)), 0)
	y1 := min(int(math.Ceil(proj.Y+r)), int(h)-1)

	stride := int(w)
	for y := y0; y <= y1; y++ {
		cy := (float64(y) + 0.5 - proj.Y) / r
		for x := x0; x <= x1; x++ {
			cx := (float64(x) + 0.5 - proj.X) / r
			a := sp.Alpha * points.Coverage(cx, cy)
			if a <= 0 {
				continue
			}
			i := (y*stride + x) * 3
			pt.accum[i] += sp.Color[0] * a
			pt.accum[i+1] += sp.Color[1] * a
			pt.accum[i+2] += sp.Color[2] * a
		}
	}
}

// resolve clamps the accumulation buffer into the scene image.
func (pt *Points) resolve() {
	pix := pt.scene.Pix
	for i, j := 0, 0; i < len(pt.accum); i, j = i+3, j+4 {
		pix[j] = toByte(pt.accum[i])
		pix[j+1] = toByte(pt.accum[i+1])
		pix[j+2] = toByte(pt.accum[i+2])
		pix[j+3] = 255
	}
}

func toByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(v, 1)) * 255))
}

// Scene returns the frame before post-processing.
func (pt *Points) Scene() *image.RGBA {
	return pt.scene
}

// Close implements pipeline.Stage.
func (pt *Points) Close() error { return nil }

// Post applies the vignette to the scene.
type Post struct {
	vignette postfx.Vignette
	scene    *image.RGBA
	out      *image.RGBA
}

// Name implements pipeline.Stage.
func (ps *Post) Name() string { return "post" }

// Run implements pipeline.Stage.
func (ps *Post) Run(pipeline.Params) {
	ps.vignette.Apply(ps.out, ps.scene)
}

// Close implements pipeline.Stage.
func (ps *Post) Close() error { return nil }

// Luminance returns the mean brightness of img in [0, 1].
func Luminance(img *image.RGBA) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			sum += lum(c)
		}
	}
	return sum / float64(b.Dx()*b.Dy())
}

func lum(c color.RGBA) float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}
