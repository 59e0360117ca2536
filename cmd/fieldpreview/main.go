// Noise field preview tool - interactive top-down view of the particle field
// with sliders for the simulation parameters.
//
// Usage: go run ./cmd/fieldpreview [-config config.yaml]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/field"
	"github.com/pthm-cable/drift/points"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	gridSize     = 192
	panelWidth   = windowWidth - previewSize - 30
)

// viewMode selects what the preview shows.
type viewMode int

const (
	viewHeight viewMode = iota // vertical displacement
	viewReveal                 // reveal mask at the chosen factor
)

// previewParams holds the tweakable values.
type previewParams struct {
	NoiseScale     float32
	NoiseIntensity float32
	TimeScale      float32
	PlaneScale     float32
	RevealFactor   float32
}

func defaults(cfg *config.Config) previewParams {
	p := cfg.Particles
	return previewParams{
		NoiseScale:     float32(p.NoiseScale),
		NoiseIntensity: float32(p.NoiseIntensity),
		TimeScale:      float32(p.TimeScale * p.Speed),
		PlaneScale:     float32(p.PlaneScale),
		RevealFactor:   4,
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config file (default: use embedded defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Noise Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaults(cfg)

	tex, err := field.NewTexture(gridSize)
	if err != nil {
		slog.Error("failed to allocate field", "error", err)
		os.Exit(1)
	}
	sim := field.NewSimulator(0)
	defer sim.Stop()

	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)
	pixels := make([]color.RGBA, gridSize*gridSize)

	var time float32
	animating := true
	mode := viewHeight

	for !rl.WindowShouldClose() {
		if animating {
			time += rl.GetFrameTime()
		}

		fp := field.Params{
			Time:           float64(time),
			NoiseScale:     float64(params.NoiseScale),
			NoiseIntensity: float64(params.NoiseIntensity),
			TimeScale:      float64(params.TimeScale),
			PlaneScale:     float64(params.PlaneScale),
		}
		sim.Run(tex, fp)
		minY, maxY := colorize(pixels, tex, mode, params)
		rl.UpdateTexture(texture, pixels)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Height  min: %.3f  max: %.3f", minY, maxY), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.1f  Particles at full size: %d", time, cfg.Derived.Particles), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Noise Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		panelY = slider(&params.NoiseScale, "Noise scale (spatial frequency)", 0, 3, "%.2f", panelX, panelY)
		panelY = slider(&params.NoiseIntensity, "Noise intensity (displacement)", 0, 2, "%.2f", panelX, panelY)
		panelY = slider(&params.TimeScale, "Time scale (x speed)", 0, 4, "%.2f", panelX, panelY)
		panelY = slider(&params.PlaneScale, "Plane scale (world extent)", 1, 30, "%.1f", panelX, panelY)

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		panelY = slider(&params.RevealFactor, "Reveal radius", 0, 6, "%.2f", panelX, panelY)
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			time = 0
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(mode == viewHeight, "Show Reveal", "Show Height")) {
			if mode == viewHeight {
				mode = viewReveal
			} else {
				mode = viewHeight
			}
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults(cfg)
			time = 0
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			var yaml string
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bound to v and returns the next row's Y.
func slider(v *float32, label string, lo, hi float32, format string, x, y float32) float32 {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	*v = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
		*v, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, *v), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
	return y + 35
}

func yamlLines(p previewParams) []string {
	return []string{
		"particles:",
		fmt.Sprintf("  noise_scale: %.2f", p.NoiseScale),
		fmt.Sprintf("  noise_intensity: %.2f", p.NoiseIntensity),
		fmt.Sprintf("  time_scale: %.2f", p.TimeScale),
		"  speed: 1.0",
		fmt.Sprintf("  plane_scale: %.1f", p.PlaneScale),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// colorize maps the texture to preview pixels and returns the height range.
func colorize(pixels []color.RGBA, tex *field.Texture, mode viewMode, p previewParams) (float64, float64) {
	minY, maxY := 0.0, 0.0
	for i, pos := range tex.Texels {
		if i == 0 || pos.Y < minY {
			minY = pos.Y
		}
		if i == 0 || pos.Y > maxY {
			maxY = pos.Y
		}
	}

	size := tex.Size
	for i, pos := range tex.Texels {
		var v float64
		switch mode {
		case viewHeight:
			if maxY > minY {
				v = (pos.Y - minY) / (maxY - minY)
			}
		case viewReveal:
			base := field.BasePosition(field.SeedAt(i%size, i/size, size), float64(p.PlaneScale))
			v = points.RevealMask(pos, base, float64(p.RevealFactor))
		}
		pixels[i] = gradient(float32(v))
	}
	return minY, maxY
}

// gradient maps [0,1] to dark blue -> cyan -> yellow -> white.
func gradient(v float32) color.RGBA {
	var r, g, b uint8
	if v < 0.25 {
		t := v / 0.25
		r = uint8(10 + t*30)
		g = uint8(20 + t*60)
		b = uint8(60 + t*100)
	} else if v < 0.5 {
		t := (v - 0.25) / 0.25
		r = uint8(40 + t*20)
		g = uint8(80 + t*120)
		b = uint8(160 + t*40)
	} else if v < 0.75 {
		t := (v - 0.5) / 0.25
		r = uint8(60 + t*140)
		g = uint8(200 - t*40)
		b = uint8(200 - t*150)
	} else {
		t := min((v-0.75)/0.25, 1)
		r = uint8(200 + t*55)
		g = uint8(160 + t*95)
		b = uint8(50 + t*205)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
