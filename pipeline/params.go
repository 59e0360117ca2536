// Package pipeline drives a frame of the particle field: it advances the
// animation controller, snapshots every uniform into Params, and runs the
// simulation, point and post-process stages in that order.
package pipeline

import (
	"github.com/pthm-cable/drift/animation"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/field"
	"github.com/pthm-cable/drift/points"
	"github.com/pthm-cable/drift/telemetry"
)

// Params is the uniform snapshot for one frame. It is built fresh every frame
// and handed to each stage by value; stages must not keep it across frames.
type Params struct {
	Frame int64
	Time  float64 // render clock, seconds
	Delta float64 // seconds since the previous frame

	// Simulation
	NoiseScale     float64
	NoiseIntensity float64
	TimeScale      float64 // time_scale * speed
	PlaneScale     float64

	// Point renderer
	Focus          float64
	Aperture       float64
	PointSize      float64
	Opacity        float64
	RevealFactor   float64
	RevealProgress float64 // eased
	Transition     float64

	Hovering    bool
	RevealPhase animation.RevealPhase
}

// newParams combines static configuration with this frame's animation sample.
func newParams(cfg *config.Config, frame int64, now, delta float64, s animation.Sample) Params {
	p := cfg.Particles
	return Params{
		Frame:          frame,
		Time:           now,
		Delta:          delta,
		NoiseScale:     p.NoiseScale,
		NoiseIntensity: p.NoiseIntensity,
		TimeScale:      p.TimeScale * p.Speed,
		PlaneScale:     p.PlaneScale,
		Focus:          p.Focus,
		Aperture:       p.Aperture,
		PointSize:      p.PointSize,
		Opacity:        p.Opacity,
		RevealFactor:   s.Reveal.Factor,
		RevealProgress: s.Reveal.Eased,
		Transition:     s.Transition,
		Hovering:       s.Hovering,
		RevealPhase:    s.Reveal.Phase,
	}
}

// Field returns the simulation stage inputs.
func (p Params) Field() field.Params {
	return field.Params{
		Time:           p.Time,
		NoiseScale:     p.NoiseScale,
		NoiseIntensity: p.NoiseIntensity,
		TimeScale:      p.TimeScale,
		PlaneScale:     p.PlaneScale,
	}
}

// Points returns the point stage inputs.
func (p Params) Points() points.Uniforms {
	return points.Uniforms{
		Time:           p.Time,
		Focus:          p.Focus,
		Aperture:       p.Aperture,
		PointSize:      p.PointSize,
		Opacity:        p.Opacity,
		RevealFactor:   p.RevealFactor,
		RevealProgress: p.RevealProgress,
		Transition:     p.Transition,
	}
}

// Record returns the timeline row for this frame.
func (p Params) Record() telemetry.FrameRecord {
	return telemetry.FrameRecord{
		Frame:          p.Frame,
		Time:           p.Time,
		Delta:          p.Delta,
		Hovering:       p.Hovering,
		RevealProgress: p.RevealProgress,
		RevealFactor:   p.RevealFactor,
		Transition:     p.Transition,
	}
}
