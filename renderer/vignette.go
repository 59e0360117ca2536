package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/pipeline"
)

var vignetteUniforms = []string{"offset", "darkness"}

// Vignette draws the scene to the current framebuffer through the vignette
// shader. By default that is the back buffer; with an offscreen target the
// result stays on the GPU until Capture.
type Vignette struct {
	prog      *program
	points    *Points
	offscreen *rl.RenderTexture2D
	width     float32
	height    float32
	hud       *HUD
}

// NewVignette compiles the vignette shader for the scene produced by pts.
func NewVignette(pts *Points, cfg *config.Config, offscreen bool) (*Vignette, error) {
	prog, err := loadProgram("", "vignette.fs", vignetteUniforms...)
	if err != nil {
		return nil, err
	}

	vg := &Vignette{
		prog:   prog,
		points: pts,
		width:  cfg.Derived.ScreenW32,
		height: cfg.Derived.ScreenH32,
	}
	if offscreen {
		rt, err := loadSceneTarget(cfg.Screen.Width, cfg.Screen.Height)
		if err != nil {
			prog.unload()
			return nil, err
		}
		vg.offscreen = &rt
	}

	prog.setFloat("offset", cfg.Vignette.Offset)
	prog.setFloat("darkness", cfg.Vignette.Darkness)
	return vg, nil
}

// Name implements pipeline.Stage.
func (vg *Vignette) Name() string { return "post" }

// Run composites the scene. Render textures are stored bottom-up, so the
// source rectangle is flipped.
func (vg *Vignette) Run(p pipeline.Params) {
	if vg.offscreen != nil {
		rl.BeginTextureMode(*vg.offscreen)
	}
	rl.ClearBackground(rl.Black)

	src := rl.NewRectangle(0, 0, vg.width, -vg.height)
	rl.BeginShaderMode(vg.prog.shader)
	rl.DrawTextureRec(vg.points.Scene(), src, rl.Vector2{}, rl.White)
	rl.EndShaderMode()

	if vg.hud != nil {
		vg.hud.Draw(p)
	}

	if vg.offscreen != nil {
		rl.EndTextureMode()
	}
}

// Capture reads the offscreen result back as an image. It returns nil when
// the stage draws to the back buffer.
func (vg *Vignette) Capture() *rl.Image {
	if vg.offscreen == nil {
		return nil
	}
	img := rl.LoadImageFromTexture(vg.offscreen.Texture)
	rl.ImageFlipVertical(img)
	return img
}

// Close releases the shader and any offscreen target.
func (vg *Vignette) Close() error {
	if vg.offscreen != nil {
		rl.UnloadRenderTexture(*vg.offscreen)
		vg.offscreen = nil
	}
	vg.prog.unload()
	return nil
}
