package renderer

import (
	"math"
	"regexp"
	"strings"
	"testing"
)

func TestShaderSourcesResolveIncludes(t *testing.T) {
	for _, name := range []string{"simulation.fs", "points.vs", "points.fs", "vignette.fs"} {
		src, err := ShaderSource(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if strings.Contains(src, "#include") {
			t.Errorf("%s: unresolved include", name)
		}
		if !strings.HasPrefix(src, "#version 330") {
			t.Errorf("%s: version directive must come first", name)
		}
	}

	for _, name := range []string{"simulation.fs", "points.fs"} {
		src, _ := ShaderSource(name)
		if !strings.Contains(src, "float periodicNoise(") {
			t.Errorf("%s: noise function not inlined", name)
		}
	}
}

func TestShaderSourceMissing(t *testing.T) {
	if _, err := ShaderSource("nope.fs"); err == nil {
		t.Error("expected error for unknown shader")
	}
}

// Each stage resolves its uniforms by name; a uniform missing from the
// source would only surface as ErrShaderCompile at runtime.
func TestStageUniformsDeclared(t *testing.T) {
	tests := []struct {
		sources  []string
		uniforms []string
	}{
		{[]string{"simulation.fs"}, simulationUniforms},
		{[]string{"points.vs", "points.fs"}, pointUniforms},
		{[]string{"vignette.fs"}, vignetteUniforms},
	}

	for _, tt := range tests {
		var all strings.Builder
		for _, name := range tt.sources {
			src, err := ShaderSource(name)
			if err != nil {
				t.Fatal(err)
			}
			all.WriteString(src)
		}
		for _, u := range tt.uniforms {
			re := regexp.MustCompile(`uniform\s+\w+\s+` + u + `\s*;`)
			if !re.MatchString(all.String()) {
				t.Errorf("%v: uniform %q not declared", tt.sources, u)
			}
		}
	}
}

func TestHoverZoneCentred(t *testing.T) {
	z := HoverZone(1000, 500)
	cx, cy := z.X+z.Width/2, z.Y+z.Height/2
	if math.Abs(float64(cx-500)) > 1e-3 || math.Abs(float64(cy-250)) > 1e-3 {
		t.Errorf("zone not centred: %+v", z)
	}
	if z.Width >= 1000 || z.Height >= 500 {
		t.Errorf("zone should be smaller than the screen: %+v", z)
	}
}
