package renderer

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed shaders/*.fs shaders/*.vs shaders/*.glsl
var shaderFS embed.FS

var (
	// ErrShaderCompile is returned when a shader fails to compile or link,
	// or when a uniform the stage drives is missing from the program.
	ErrShaderCompile = errors.New("shader compile failed")
	// ErrRenderTarget is returned when a render target cannot be created.
	ErrRenderTarget = errors.New("render target unavailable")
)

// ShaderSource returns an embedded shader with its includes resolved.
func ShaderSource(name string) (string, error) {
	data, err := shaderFS.ReadFile("shaders/" + name)
	if err != nil {
		return "", fmt.Errorf("reading shader %s: %w", name, err)
	}
	src := string(data)

	lines := strings.Split(src, "\n")
	for i, line := range lines {
		inc, ok := strings.CutPrefix(strings.TrimSpace(line), "#include ")
		if !ok {
			continue
		}
		body, err := shaderFS.ReadFile("shaders/" + strings.Trim(inc, `"`))
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		lines[i] = string(body)
	}
	return strings.Join(lines, "\n"), nil
}

// program is a loaded shader and the locations of the uniforms a stage sets.
type program struct {
	shader rl.Shader
	locs   map[string]int32
}

// loadProgram compiles vs/fs (empty vs uses raylib's default) and resolves
// every named uniform. Any missing uniform is a compile failure: the driver
// strips unused ones, so a miss means the source and the stage disagree.
func loadProgram(vs, fs string, uniforms ...string) (*program, error) {
	var vsCode, fsCode string
	var err error
	if vs != "" {
		if vsCode, err = ShaderSource(vs); err != nil {
			return nil, err
		}
	}
	if fsCode, err = ShaderSource(fs); err != nil {
		return nil, err
	}

	shader := rl.LoadShaderFromMemory(vsCode, fsCode)
	if shader.ID == 0 || shader.ID == rl.GetShaderIdDefault() {
		return nil, fmt.Errorf("%w: %s", ErrShaderCompile, fs)
	}

	p := &program{shader: shader, locs: make(map[string]int32, len(uniforms))}
	for _, name := range uniforms {
		loc := rl.GetShaderLocation(shader, name)
		if loc < 0 {
			rl.UnloadShader(shader)
			return nil, fmt.Errorf("%w: %s has no uniform %q", ErrShaderCompile, fs, name)
		}
		p.locs[name] = loc
	}
	return p, nil
}

func (p *program) setFloat(name string, v float64) {
	rl.SetShaderValue(p.shader, p.locs[name], []float32{float32(v)}, rl.ShaderUniformFloat)
}

func (p *program) setVec2(name string, x, y float32) {
	rl.SetShaderValue(p.shader, p.locs[name], []float32{x, y}, rl.ShaderUniformVec2)
}

func (p *program) unload() {
	rl.UnloadShader(p.shader)
}
