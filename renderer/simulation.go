package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/pipeline"
)

var simulationUniforms = []string{"resolution", "time", "noiseScale", "noiseIntensity", "planeScale"}

// Simulation regenerates every particle position into a float texture each
// frame. Each texel depends only on its UV and the frame's uniforms.
type Simulation struct {
	prog   *program
	target rl.RenderTexture2D
	size   int
}

// NewSimulation compiles the simulation shader and allocates its target.
func NewSimulation(size int) (*Simulation, error) {
	prog, err := loadProgram("", "simulation.fs", simulationUniforms...)
	if err != nil {
		return nil, err
	}

	target, err := loadFloatTarget(size)
	if err != nil {
		prog.unload()
		return nil, err
	}

	prog.setVec2("resolution", float32(size), float32(size))
	return &Simulation{prog: prog, target: target, size: size}, nil
}

// Name implements pipeline.Stage.
func (s *Simulation) Name() string { return "simulation" }

// Run renders the positions for p.
func (s *Simulation) Run(p pipeline.Params) {
	s.prog.setFloat("time", p.Time*p.TimeScale)
	s.prog.setFloat("noiseScale", p.NoiseScale)
	s.prog.setFloat("noiseIntensity", p.NoiseIntensity)
	s.prog.setFloat("planeScale", p.PlaneScale)

	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.Blank)
	rl.BeginShaderMode(s.prog.shader)
	rl.DrawRectangle(0, 0, int32(s.size), int32(s.size), rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()
}

// Texture returns the position texture. It stays valid until Close.
func (s *Simulation) Texture() rl.Texture2D {
	return s.target.Texture
}

// Size returns the texture edge length.
func (s *Simulation) Size() int {
	return s.size
}

// Close releases the target and shader.
func (s *Simulation) Close() error {
	rl.UnloadRenderTexture(s.target)
	s.prog.unload()
	return nil
}
