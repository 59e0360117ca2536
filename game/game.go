// Package game hosts the particle field: it owns the pipeline, feeds it the
// render clock and hover state, and handles telemetry and recording around it.
package game

import (
	"errors"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/animation"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/pipeline"
	"github.com/pthm-cable/drift/recording"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/softrender"
	"github.com/pthm-cable/drift/telemetry"
)

// Title is the window title.
const Title = "Drift"

// Options configure a Game.
type Options struct {
	LogStats   bool
	OutputDir  string // CSV logs and config snapshot; empty disables
	Headless   bool   // software backend, fixed time step, no window
	RecordPath string // headless only: AVI output; empty disables

	// Headless hover schedule in render-clock seconds. Hovering while
	// HoverFrom <= t < HoverUntil.
	HoverFrom  float64
	HoverUntil float64
}

// Game holds the host state.
type Game struct {
	cfg   *config.Config
	pipe  *pipeline.Pipeline
	hover *animation.Signal

	// Exactly one backend is set
	gpu  *renderer.Backend
	soft *softrender.Backend

	perf          *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	recorder      *recording.Recorder

	logStats    bool
	lastPerfLog float64

	// Headless clock
	headless   bool
	clock      float64
	step       float64
	hoverFrom  float64
	hoverUntil float64
}

// NewGame builds the pipeline for cfg. Windowed games require an open window.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	g := &Game{
		cfg:        cfg,
		hover:      &animation.Signal{},
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:   opts.LogStats,
		headless:   opts.Headless,
		step:       1 / float64(max(cfg.Screen.TargetFPS, 1)),
		hoverFrom:  opts.HoverFrom,
		hoverUntil: opts.HoverUntil,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	var backend pipeline.Backend
	if opts.Headless {
		g.soft = softrender.NewBackend()
		backend = g.soft
	} else {
		g.gpu = renderer.NewBackend(renderer.Options{Title: Title, HUD: cfg.Render.HUD})
		backend = g.gpu
	}

	g.pipe, err = pipeline.New(cfg, backend, g.hover, pipeline.Options{
		Perf:   g.perf,
		Output: om,
	})
	if err != nil {
		return nil, errors.Join(err, om.Close())
	}

	if opts.RecordPath != "" {
		if !opts.Headless {
			slog.Warn("recording is only available headless; ignoring", "path", opts.RecordPath)
		} else {
			g.recorder, err = recording.New(opts.RecordPath, cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.TargetFPS, 0)
			if err != nil {
				return nil, errors.Join(err, g.pipe.Close(), om.Close())
			}
			slog.Info("recording", "path", opts.RecordPath)
		}
	}

	return g, nil
}

// Update handles input for the next frame.
func (g *Game) Update() {
	g.handleInput()
}

// Draw renders one windowed frame on the render clock.
func (g *Game) Draw() {
	now := rl.GetTime()

	rl.BeginDrawing()
	g.pipe.Frame(now, float64(rl.GetFrameTime()))
	rl.EndDrawing()

	g.perf.RecordPresent()
	g.flushTelemetry(now)
}

// UpdateHeadless renders one frame on the fixed-step clock and records it.
func (g *Game) UpdateHeadless() error {
	g.hover.Set(g.clock >= g.hoverFrom && g.clock < g.hoverUntil)

	delta := g.step
	if g.pipe.Frames() == 0 {
		delta = 0
	}
	params := g.pipe.Frame(g.clock, delta)
	g.perf.RecordPresent()

	if g.recorder != nil {
		if err := g.recorder.AddFrame(g.soft.Frame(), recording.Caption(params)); err != nil {
			return fmt.Errorf("recording frame %d: %w", params.Frame, err)
		}
	}

	g.flushTelemetry(g.clock)
	g.clock += g.step
	return nil
}

// Frames returns how many frames have been rendered.
func (g *Game) Frames() int64 {
	return g.pipe.Frames()
}

// Snapshot returns the last frame's parameters.
func (g *Game) Snapshot() pipeline.Params {
	return g.pipe.Snapshot()
}

// Unload releases the pipeline, then the recorder and output files.
func (g *Game) Unload() error {
	var errs []error
	if err := g.pipe.Close(); err != nil {
		errs = append(errs, err)
	}
	if g.recorder != nil {
		if err := g.recorder.Close(); err != nil {
			errs = append(errs, err)
		}
		slog.Info("recording finished", "path", g.recorder.Path(), "frames", g.recorder.Frames())
		g.recorder = nil
	}
	if err := g.outputManager.Close(); err != nil {
		errs = append(errs, err)
	}
	g.outputManager = nil
	return errors.Join(errs...)
}
