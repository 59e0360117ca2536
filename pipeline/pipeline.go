package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/drift/animation"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/telemetry"
)

// Stage is one pass of the frame. Run has no error path: a stage that was
// built successfully must be able to render every frame.
type Stage interface {
	Name() string
	Run(p Params)
	Close() error
}

// Stages are the three passes a backend provides. The backend wires their
// data flow (simulation texture into the point pass, scene into the
// post-process); the pipeline fixes their order.
type Stages struct {
	Simulation Stage
	Points     Stage
	Post       Stage
}

// Backend allocates the stages for a validated configuration. On error it
// must release anything it already acquired (see Release).
type Backend interface {
	Name() string
	Build(cfg *config.Config) (Stages, error)
}

// Release closes the non-nil stages in reverse order and joins the errors.
func Release(stages ...Stage) error {
	var errs []error
	for i := len(stages) - 1; i >= 0; i-- {
		if stages[i] == nil {
			continue
		}
		if err := stages[i].Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", stages[i].Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Options are optional collaborators.
type Options struct {
	Perf   *telemetry.PerfCollector // nil disables stage timing
	Output *telemetry.OutputManager // nil disables frames.csv
	Logger *slog.Logger             // nil uses slog.Default()
}

// Pipeline owns every GPU resource of an instance and the animation state.
type Pipeline struct {
	cfg        *config.Config
	backend    string
	stages     [3]Stage // simulation, points, post
	phases     [3]string
	controller *animation.Controller
	hover      *animation.Signal
	perf       *telemetry.PerfCollector
	output     *telemetry.OutputManager
	log        *slog.Logger

	frame  int64
	last   Params
	closed bool
}

// New validates cfg, then builds the backend's stages. Nothing is allocated
// when validation fails. hover is the host's signal; nil creates one that
// the caller can reach through Hover().
func New(cfg *config.Config, backend Backend, hover *animation.Signal, opts Options) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	stages, err := backend.Build(cfg)
	if err != nil {
		return nil, fmt.Errorf("pipeline: building %s backend: %w", backend.Name(), err)
	}
	if stages.Simulation == nil || stages.Points == nil || stages.Post == nil {
		relErr := Release(stages.Simulation, stages.Points, stages.Post)
		return nil, errors.Join(fmt.Errorf("pipeline: %s backend returned an incomplete stage set", backend.Name()), relErr)
	}

	if hover == nil {
		hover = &animation.Signal{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		cfg:     cfg,
		backend: backend.Name(),
		stages:  [3]Stage{stages.Simulation, stages.Points, stages.Post},
		phases:  [3]string{telemetry.PhaseSimulation, telemetry.PhasePoints, telemetry.PhasePost},
		controller: animation.NewController(
			cfg.Reveal.Duration,
			cfg.Transition.Enter,
			cfg.Transition.Leave,
		),
		hover:  hover,
		perf:   opts.Perf,
		output: opts.Output,
		log:    logger,
	}

	p.log.Info("pipeline built",
		"backend", p.backend,
		"size", cfg.Particles.Size,
		"particles", cfg.Derived.Particles,
	)
	return p, nil
}

// Hover returns the signal the host writes the hover state to.
func (p *Pipeline) Hover() *animation.Signal {
	return p.hover
}

// Frame renders one frame at render clock now, delta seconds after the
// previous one. The hover signal is read exactly once. After Close it does
// nothing and returns the last snapshot.
func (p *Pipeline) Frame(now, delta float64) Params {
	if p.closed {
		return p.last
	}

	if p.perf != nil {
		p.perf.StartFrame()
		p.perf.StartPhase(telemetry.PhaseAnimation)
	}

	hovering := p.hover.Load()
	sample := p.controller.Advance(now, delta, hovering)
	if sample.Reveal.Completed {
		p.log.Info("reveal complete", "elapsed", sample.Reveal.Elapsed, "frame", p.frame)
	}
	params := newParams(p.cfg, p.frame, now, delta, sample)

	for i, st := range p.stages {
		if p.perf != nil {
			p.perf.StartPhase(p.phases[i])
		}
		st.Run(params)
	}

	if p.perf != nil {
		p.perf.EndFrame()
	}
	if err := p.output.WriteFrame(params.Record()); err != nil {
		p.log.Warn("frame record dropped", "frame", p.frame, "error", err)
	}

	p.frame++
	p.last = params
	return params
}

// Snapshot returns the parameters of the most recent frame.
func (p *Pipeline) Snapshot() Params {
	return p.last
}

// Frames returns how many frames have been rendered.
func (p *Pipeline) Frames() int64 {
	return p.frame
}

// Close releases every stage in reverse order. It is safe to call more than once.
func (p *Pipeline) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	err := Release(p.stages[:]...)
	p.log.Info("pipeline closed", "backend", p.backend, "frames", p.frame)
	return err
}
