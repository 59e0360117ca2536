package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Render on the CPU without a window")
	frames := flag.Int("frames", 0, "Stop after N frames (0 = unlimited; headless defaults to 600)")
	record := flag.String("record", "", "Headless: write frames to this AVI file")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	hoverFrom := flag.Float64("hover-from", -1, "Headless: start hovering at this render time (seconds)")
	hoverUntil := flag.Float64("hover-until", -1, "Headless: stop hovering at this render time (seconds)")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		LogStats:   *logStats,
		OutputDir:  *outputDir,
		Headless:   *headless,
		RecordPath: *record,
		HoverFrom:  *hoverFrom,
		HoverUntil: *hoverUntil,
	}

	if *headless {
		os.Exit(runHeadless(cfg, opts, *frames))
	}
	os.Exit(runWindowed(cfg, opts, *frames))
}

// runHeadless renders a fixed number of frames on the software backend.
func runHeadless(cfg *config.Config, opts game.Options, frames int) int {
	if frames <= 0 {
		frames = 600
	}

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer func() {
		if err := g.Unload(); err != nil {
			slog.Error("teardown failed", "error", err)
		}
	}()

	slog.Info("starting headless render",
		"frames", frames,
		"size", cfg.Particles.Size,
		"hover_from", opts.HoverFrom,
		"hover_until", opts.HoverUntil,
	)

	for int(g.Frames()) < frames {
		if err := g.UpdateHeadless(); err != nil {
			slog.Error("frame failed", "error", err)
			return 1
		}
	}
	slog.Info("max frames reached", "frames", g.Frames())
	return 0
}

// runWindowed opens a window and renders on the GPU until it is closed.
func runWindowed(cfg *config.Config, opts game.Options, frames int) int {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), game.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer func() {
		if err := g.Unload(); err != nil {
			slog.Error("teardown failed", "error", err)
		}
	}()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if frames > 0 && int(g.Frames()) >= frames {
			break
		}
	}
	return 0
}
