// Package renderer is the GPU backend: the three frame stages as raylib
// shader passes.
package renderer

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/pipeline"
)

// Options configure the GPU backend.
type Options struct {
	Title     string
	HUD       bool
	Offscreen bool // render the final pass to a texture instead of the back buffer
}

// Backend builds GPU stages. The host must have opened a window (and thus a
// GL context) before Build.
type Backend struct {
	opts Options
	sim  *Simulation
	pts  *Points
	post *Vignette
	hud  *HUD
}

// NewBackend creates a GPU backend.
func NewBackend(opts Options) *Backend {
	return &Backend{opts: opts}
}

// Name implements pipeline.Backend.
func (b *Backend) Name() string { return "gpu" }

// Build implements pipeline.Backend. Stages built before a failure are
// released before returning.
func (b *Backend) Build(cfg *config.Config) (pipeline.Stages, error) {
	if !rl.IsWindowReady() {
		return pipeline.Stages{}, fmt.Errorf("%w: no window", ErrRenderTarget)
	}

	sim, err := NewSimulation(cfg.Particles.Size)
	if err != nil {
		return pipeline.Stages{}, fmt.Errorf("simulation stage: %w", err)
	}

	pts, err := NewPoints(sim, cfg)
	if err != nil {
		return pipeline.Stages{}, errors.Join(fmt.Errorf("points stage: %w", err), pipeline.Release(sim))
	}

	post, err := NewVignette(pts, cfg, b.opts.Offscreen)
	if err != nil {
		return pipeline.Stages{}, errors.Join(fmt.Errorf("post stage: %w", err), pipeline.Release(sim, pts))
	}

	b.sim, b.pts, b.post = sim, pts, post
	b.hud = NewHUD(HUDData{
		Title:     b.opts.Title,
		Particles: cfg.Derived.Particles,
		Backend:   b.Name(),
	}, cfg.Derived.ScreenW32, cfg.Derived.ScreenH32)
	b.SetHUD(b.opts.HUD)

	return pipeline.Stages{Simulation: sim, Points: pts, Post: post}, nil
}

// SetHUD shows or hides the overlay.
func (b *Backend) SetHUD(on bool) {
	b.opts.HUD = on
	if b.post == nil {
		return
	}
	if on {
		b.post.hud = b.hud
	} else {
		b.post.hud = nil
	}
}

// HUDVisible reports whether the overlay is drawn.
func (b *Backend) HUDVisible() bool {
	return b.opts.HUD
}

// SimulationTexture returns the position texture, for inspection tools.
func (b *Backend) SimulationTexture() rl.Texture2D {
	if b.sim == nil {
		return rl.Texture2D{}
	}
	return b.sim.Texture()
}

// Capture returns the last offscreen frame, or nil when rendering to the
// back buffer. The caller unloads the image.
func (b *Backend) Capture() *rl.Image {
	if b.post == nil {
		return nil
	}
	return b.post.Capture()
}
