package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/renderer"
)

// handleInput processes keyboard and mouse input and publishes the hover state.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF1) {
		g.gpu.SetHUD(!g.gpu.HUDVisible())
	}

	zone := renderer.HoverZone(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	over := rl.CheckCollisionPointRec(rl.GetMousePosition(), zone) && rl.IsCursorOnScreen()
	g.hover.Set(over || rl.IsKeyDown(rl.KeyH))
}
