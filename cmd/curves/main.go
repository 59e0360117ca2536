// Animation curve plotter - steps the reveal and hover transition at a fixed
// frame rate and writes the resulting curves to a PNG.
//
// Usage: go run ./cmd/curves -hover-from 1 -hover-until 2.5 -out curves.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pthm-cable/drift/animation"
	"github.com/pthm-cable/drift/config"
)

// series holds one sampled run.
type series struct {
	t          []float64
	progress   []float64 // eased reveal progress
	factor     []float64 // reveal radius / RevealFactorScale
	transition []float64
	hover      []float64
}

func sample(cfg *config.Config, duration, fps, hoverFrom, hoverUntil float64) series {
	ctrl := animation.NewController(cfg.Reveal.Duration, cfg.Transition.Enter, cfg.Transition.Leave)
	dt := 1 / fps
	frames := int(duration*fps) + 1

	var s series
	for i := 0; i < frames; i++ {
		now := float64(i) * dt
		hovering := now >= hoverFrom && now < hoverUntil
		delta := dt
		if i == 0 {
			delta = 0
		}
		out := ctrl.Advance(now, delta, hovering)

		s.t = append(s.t, now)
		s.progress = append(s.progress, out.Reveal.Eased)
		s.factor = append(s.factor, out.Reveal.Factor/animation.RevealFactorScale)
		s.transition = append(s.transition, out.Transition)
		h := 0.0
		if hovering {
			h = 1
		}
		s.hover = append(s.hover, h)
	}
	return s
}

func main() {
	configPath := flag.String("config", "", "Path to config file (default: use embedded defaults)")
	duration := flag.Float64("duration", 6, "Seconds to simulate")
	fps := flag.Float64("fps", 60, "Frame rate")
	hoverFrom := flag.Float64("hover-from", 1.0, "Hover start (seconds)")
	hoverUntil := flag.Float64("hover-until", 2.5, "Hover end (seconds)")
	outPath := flag.String("out", "curves.png", "Output PNG path")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *fps <= 0 || *duration <= 0 {
		slog.Error("duration and fps must be positive", "duration", *duration, "fps", *fps)
		os.Exit(1)
	}

	s := sample(cfg, *duration, *fps, *hoverFrom, *hoverUntil)

	graph := chart.Chart{
		Width:  1024,
		Height: 400,
		XAxis: chart.XAxis{
			Name:  "time (s)",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: *duration},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.1f", v.(float64))
			},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: 1.05},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "reveal progress (eased)",
				XValues: s.t,
				YValues: s.progress,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 3.0},
			},
			chart.ContinuousSeries{
				Name:    "reveal radius / 4",
				XValues: s.t,
				YValues: s.factor,
				Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2.0, StrokeDashArray: []float64{5, 3}},
			},
			chart.ContinuousSeries{
				Name:    "transition",
				XValues: s.t,
				YValues: s.transition,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 255, G: 165, B: 0, A: 255}, StrokeWidth: 3.0},
			},
			chart.ContinuousSeries{
				Name:    "hover",
				XValues: s.t,
				YValues: s.hover,
				Style:   chart.Style{StrokeColor: chart.ColorLightGray, StrokeWidth: 1.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(*outPath)
	if err != nil {
		slog.Error("failed to create output", "path", *outPath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		slog.Error("failed to render chart", "error", err)
		os.Exit(1)
	}
	slog.Info("curves written", "path", *outPath, "frames", len(s.t))
}
