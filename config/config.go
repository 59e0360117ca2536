// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/mazznoer/csscolorparser"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// MaxSize bounds the particle grid edge. 4096² texels of RGBA32F is already 256 MiB.
const MaxSize = 4096

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Particles  ParticlesConfig  `yaml:"particles"`
	Camera     CameraConfig     `yaml:"camera"`
	Vignette   VignetteConfig   `yaml:"vignette"`
	Reveal     RevealConfig     `yaml:"reveal"`
	Transition TransitionConfig `yaml:"transition"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Background string `yaml:"background"` // any CSS colour, e.g. "#000" or "rgb(4,4,8)"
}

// ParticlesConfig holds the field and point parameters.
type ParticlesConfig struct {
	Speed          float64 `yaml:"speed"`           // multiplies TimeScale
	Aperture       float64 `yaml:"aperture"`        // depth-of-field spread
	Focus          float64 `yaml:"focus"`           // focal depth in view space
	Size           int     `yaml:"size"`            // grid edge; particle count is Size²
	NoiseScale     float64 `yaml:"noise_scale"`     // spatial frequency of the displacement
	NoiseIntensity float64 `yaml:"noise_intensity"` // displacement amplitude (0 disables it)
	TimeScale      float64 `yaml:"time_scale"`
	PointSize      float64 `yaml:"point_size"`
	Opacity        float64 `yaml:"opacity"`
	PlaneScale     float64 `yaml:"plane_scale"` // world extent of the base plane
}

// CameraConfig holds the fixed perspective camera.
type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	FOV      float64    `yaml:"fov"` // vertical, degrees
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
}

// VignetteConfig holds the post-process falloff thresholds.
type VignetteConfig struct {
	Offset   float64 `yaml:"offset"`   // inner edge (squared radius)
	Darkness float64 `yaml:"darkness"` // width of the falloff band
}

// RevealConfig holds the entrance animation parameters.
type RevealConfig struct {
	Duration float64 `yaml:"duration"` // seconds
}

// TransitionConfig holds the hover damper smooth times.
type TransitionConfig struct {
	Enter float64 `yaml:"enter"` // smooth time toward 1
	Leave float64 `yaml:"leave"` // smooth time toward 0
}

// RenderConfig holds backend options.
type RenderConfig struct {
	HUD            bool `yaml:"hud"`
	MaxSplatRadius int  `yaml:"max_splat_radius"` // software backend only
	Workers        int  `yaml:"workers"`          // software simulation workers (0 = GOMAXPROCS)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`  // frames
	LogInterval float64 `yaml:"log_interval"` // seconds between perf logs
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Particles  int        // Size²
	Background color.RGBA // parsed Screen.Background
	ScreenW32  float32
	ScreenH32  float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every parameter range and recomputes derived values.
// Failures wrap ErrInvalid and name the offending key.
func (c *Config) Validate() error {
	p := c.Particles
	switch {
	case p.Size < 1 || p.Size > MaxSize:
		return invalid("particles.size", p.Size, fmt.Sprintf("must be in [1, %d]", MaxSize))
	case p.PlaneScale <= 0:
		return invalid("particles.plane_scale", p.PlaneScale, "must be positive")
	case p.PointSize < 0:
		return invalid("particles.point_size", p.PointSize, "must not be negative")
	case p.Aperture < 0:
		return invalid("particles.aperture", p.Aperture, "must not be negative")
	case p.Opacity < 0 || p.Opacity > 1:
		return invalid("particles.opacity", p.Opacity, "must be in [0, 1]")
	case p.NoiseIntensity < 0:
		return invalid("particles.noise_intensity", p.NoiseIntensity, "must not be negative")
	case p.NoiseScale < 0:
		return invalid("particles.noise_scale", p.NoiseScale, "must not be negative")
	case p.TimeScale < 0:
		return invalid("particles.time_scale", p.TimeScale, "must not be negative")
	case p.Speed < 0:
		return invalid("particles.speed", p.Speed, "must not be negative")
	}

	cam := c.Camera
	switch {
	case cam.FOV <= 0 || cam.FOV >= 180:
		return invalid("camera.fov", cam.FOV, "must be in (0, 180)")
	case cam.Near <= 0:
		return invalid("camera.near", cam.Near, "must be positive")
	case cam.Far <= cam.Near:
		return invalid("camera.far", cam.Far, "must be greater than camera.near")
	case cam.Position == cam.Target:
		return invalid("camera.position", cam.Position, "must differ from camera.target")
	case verticalView(cam):
		return invalid("camera.position", cam.Position, "must not be directly above or below camera.target")
	}

	switch {
	case c.Vignette.Darkness <= 0:
		return invalid("vignette.darkness", c.Vignette.Darkness, "must be positive")
	case c.Reveal.Duration <= 0:
		return invalid("reveal.duration", c.Reveal.Duration, "must be positive")
	case c.Transition.Enter <= 0:
		return invalid("transition.enter", c.Transition.Enter, "must be positive")
	case c.Transition.Leave <= 0:
		return invalid("transition.leave", c.Transition.Leave, "must be positive")
	case c.Screen.Width < 1 || c.Screen.Height < 1:
		return invalid("screen", fmt.Sprintf("%dx%d", c.Screen.Width, c.Screen.Height), "must be at least 1x1")
	case c.Screen.TargetFPS < 1:
		return invalid("screen.target_fps", c.Screen.TargetFPS, "must be at least 1")
	case c.Render.MaxSplatRadius < 0:
		return invalid("render.max_splat_radius", c.Render.MaxSplatRadius, "must not be negative")
	case c.Render.Workers < 0:
		return invalid("render.workers", c.Render.Workers, "must not be negative")
	}

	bg := c.Screen.Background
	if bg == "" {
		bg = "#000"
	}
	parsed, err := csscolorparser.Parse(bg)
	if err != nil {
		return fmt.Errorf("%w: screen.background %q: %v", ErrInvalid, c.Screen.Background, err)
	}

	c.Derived = DerivedConfig{
		Particles:  p.Size * p.Size,
		Background: color.RGBA{
			R: uint8(math.Round(255 * parsed.R)),
			G: uint8(math.Round(255 * parsed.G)),
			B: uint8(math.Round(255 * parsed.B)),
			A: uint8(math.Round(255 * parsed.A)),
		},
		ScreenW32:  float32(c.Screen.Width),
		ScreenH32:  float32(c.Screen.Height),
	}
	return nil
}

func invalid(key string, value any, reason string) error {
	return fmt.Errorf("%w: %s = %v %s", ErrInvalid, key, value, reason)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// verticalView reports whether the camera looks along the world up axis,
// where the look-at basis is undefined.
func verticalView(cam CameraConfig) bool {
	dx := cam.Target[0] - cam.Position[0]
	dy := cam.Target[1] - cam.Position[1]
	dz := cam.Target[2] - cam.Position[2]
	length := math.Sqrt(dx*dx + dy*dy + dz*dz)
	// |dir × (0,1,0)| is the horizontal extent of the unit direction
	return math.Hypot(dx, dz)/length < 1e-6
}
