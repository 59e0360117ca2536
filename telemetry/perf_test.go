package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseSimulation)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhasePoints)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration")
	}
	if stats.Frames != 5 {
		t.Errorf("expected 5 frames, got %d", stats.Frames)
	}
	if _, ok := stats.PhaseAvg[PhaseSimulation]; !ok {
		t.Error("expected simulation phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhasePoints]; !ok {
		t.Error("expected points phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhasePost)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.Frames != 5 {
		t.Errorf("expected window capped at 5 frames, got %d", stats.Frames)
	}
}

func TestPerfCollector_Quantiles(t *testing.T) {
	pc := NewPerfCollector(20)

	for i := 0; i < 20; i++ {
		pc.StartFrame()
		pc.StartPhase(PhasePoints)
		if i == 19 {
			time.Sleep(2 * time.Millisecond)
		}
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.P50FrameDuration > stats.P95FrameDuration {
		t.Errorf("p50 %v above p95 %v", stats.P50FrameDuration, stats.P95FrameDuration)
	}
	if stats.P95FrameDuration > stats.MaxFrameDuration {
		t.Errorf("p95 %v above max %v", stats.P95FrameDuration, stats.MaxFrameDuration)
	}
	if stats.MaxFrameDuration < 2*time.Millisecond {
		t.Errorf("expected slow frame in max, got %v", stats.MaxFrameDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseAnimation)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhasePoints)
		time.Sleep(500 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhasePoints] <= stats.PhasePct[PhaseAnimation] {
		t.Errorf("expected points (%v%%) > animation (%v%%)",
			stats.PhasePct[PhasePoints], stats.PhasePct[PhaseAnimation])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgFrameDuration != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_PresentInterval(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordPresent()
	time.Sleep(16 * time.Millisecond)
	pc.RecordPresent()

	stats := pc.Stats()
	if stats.PresentInterval < 15*time.Millisecond {
		t.Errorf("expected interval >= 15ms, got %v", stats.PresentInterval)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms interval, got %v", stats.FPS)
	}
}
