package renderer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/pipeline"
)

// HoverZone is the centred screen region that counts as hovering the field.
func HoverZone(screenW, screenH float32) rl.Rectangle {
	w := screenW * 0.4
	h := screenH * 0.4
	return rl.NewRectangle((screenW-w)/2, (screenH-h)/2, w, h)
}

// HUDData is what the HUD shows besides the frame parameters.
type HUDData struct {
	Title     string
	Particles int
	Backend   string
}

// HUD draws the debug overlay on top of the vignetted frame.
type HUD struct {
	data    HUDData
	screenW float32
	screenH float32
}

// NewHUD creates a HUD for a screen of the given size.
func NewHUD(data HUDData, screenW, screenH float32) *HUD {
	return &HUD{data: data, screenW: screenW, screenH: screenH}
}

// Draw renders the overlay for one frame.
func (h *HUD) Draw(p pipeline.Params) {
	rl.DrawText(h.data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Backend: %s | FPS: %d", h.data.Particles, h.data.Backend, rl.GetFPS()),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Reveal: %s %3.0f%% | Factor: %.2f | Transition: %.3f",
			p.RevealPhase, p.RevealProgress*100, p.RevealFactor, p.Transition),
		10, 55, 16, rl.LightGray,
	)

	zoneColor := rl.Fade(rl.Gray, 0.4)
	if p.Hovering {
		zoneColor = rl.Fade(rl.SkyBlue, 0.6)
	}
	rl.DrawRectangleLinesEx(HoverZone(h.screenW, h.screenH), 1, zoneColor)

	gui.StatusBar(
		rl.NewRectangle(0, h.screenH-24, h.screenW, 24),
		fmt.Sprintf("frame %d | t=%.2fs | hover zone or [H] to introspect | [F1] HUD", p.Frame, p.Time),
	)
}
