package game

import "log/slog"

// flushTelemetry logs and writes perf stats once per log interval of render
// clock time.
func (g *Game) flushTelemetry(now float64) {
	interval := g.cfg.Telemetry.LogInterval
	if interval <= 0 || now-g.lastPerfLog < interval {
		return
	}
	g.lastPerfLog = now

	perfStats := g.perf.Stats()

	if g.logStats {
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WritePerf(perfStats, g.pipe.Frames()); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
