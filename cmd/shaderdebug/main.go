// Shader debug tool - renders one frame of the GPU pipeline with a hidden
// window and writes it to PNG. With -sim it writes the simulation texture
// instead and reports how far it is from the CPU reference.
//
// Usage: go run ./cmd/shaderdebug -time 4 -out frame.png
//
//	go run ./cmd/shaderdebug -sim -size 128 -out positions.png
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"os"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/field"
	"github.com/pthm-cable/drift/pipeline"
	"github.com/pthm-cable/drift/renderer"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: use embedded defaults)")
	outPath := flag.String("out", "debug.png", "Output PNG path")
	at := flag.Float64("time", 4.0, "Render clock time of the captured frame")
	hover := flag.Bool("hover", false, "Hold hover for the whole run")
	size := flag.Int("size", 0, "Override particles.size (0 = config)")
	simOnly := flag.Bool("sim", false, "Dump the simulation texture instead of the final frame")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(*configPath, *outPath, *at, *hover, *size, *simOnly); err != nil {
		slog.Error("shader debug failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outPath string, at float64, hover bool, size int, simOnly bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if size > 0 {
		cfg.Particles.Size = size
	}

	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Shader Debug")
	defer rl.CloseWindow()

	backend := renderer.NewBackend(renderer.Options{Offscreen: true})
	p, err := pipeline.New(cfg, backend, nil, pipeline.Options{})
	if err != nil {
		return err
	}
	defer p.Close()
	p.Hover().Set(hover)

	// Step from zero so the reveal and transition have their real history
	dt := 1 / float64(cfg.Screen.TargetFPS)
	var params pipeline.Params
	for now := 0.0; now <= at; now += dt {
		rl.BeginDrawing()
		params = p.Frame(now, dt)
		rl.EndDrawing()
	}

	if simOnly {
		return dumpSimulation(backend.SimulationTexture(), params, outPath)
	}

	img := backend.Capture()
	if img == nil {
		return fmt.Errorf("no offscreen frame")
	}
	defer rl.UnloadImage(img)
	if !rl.ExportImage(*img, outPath) {
		return fmt.Errorf("exporting %s failed", outPath)
	}
	slog.Info("frame rendered", "path", outPath, "time", params.Time,
		"reveal", params.RevealProgress, "transition", params.Transition)
	return nil
}

// dumpSimulation maps texel positions to colours (x, y, z normalised over the
// texture) and compares every texel with field.Position.
func dumpSimulation(tex rl.Texture2D, params pipeline.Params, outPath string) error {
	img := rl.LoadImageFromTexture(tex)
	defer rl.UnloadImage(img)

	w, h := int(img.Width), int(img.Height)
	if img.Format != rl.UncompressedR32g32b32a32 {
		return fmt.Errorf("simulation texture has format %v, want RGBA32F", img.Format)
	}
	texels := unsafe.Slice((*float32)(img.Data), w*h*4)

	lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i < w*h; i++ {
		for c := 0; c < 3; c++ {
			v := float64(texels[i*4+c])
			lo[c] = math.Min(lo[c], v)
			hi[c] = math.Max(hi[c], v)
		}
	}

	fp := params.Field()
	var maxErr float64
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			i := (row*w + col) * 4
			want := field.Position(field.SeedAt(col, row, w), fp)
			dx := float64(texels[i]) - want.X
			dy := float64(texels[i+1]) - want.Y
			dz := float64(texels[i+2]) - want.Z
			maxErr = math.Max(maxErr, math.Sqrt(dx*dx+dy*dy+dz*dz))

			var px [3]uint8
			for c := 0; c < 3; c++ {
				if hi[c] > lo[c] {
					px[c] = uint8((float64(texels[i+c]) - lo[c]) / (hi[c] - lo[c]) * 255)
				}
			}
			// Row 0 is the bottom of a GL texture
			out.SetRGBA(col, h-1-row, color.RGBA{R: px[0], G: px[1], B: px[2], A: 255})
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, out); err != nil {
		return err
	}

	slog.Info("simulation texture dumped",
		"path", outPath,
		"size", w,
		"max_error", maxErr,
		"min", lo,
		"max", hi,
	)
	return nil
}
