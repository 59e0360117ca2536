package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// texelBytes is the size of one RGBA32F texel.
const texelBytes = 16

// loadFloatTarget creates a size×size render target whose colour attachment
// is RGBA32F, so positions survive without quantisation. raylib's
// LoadRenderTexture only makes RGBA8 targets, hence the manual framebuffer.
func loadFloatTarget(size int) (rl.RenderTexture2D, error) {
	if size < 1 {
		return rl.RenderTexture2D{}, fmt.Errorf("%w: size %d", ErrRenderTarget, size)
	}

	fbo := rl.LoadFramebuffer()
	if fbo == 0 {
		return rl.RenderTexture2D{}, fmt.Errorf("%w: framebuffer allocation failed", ErrRenderTarget)
	}

	img := rl.NewImage(make([]byte, size*size*texelBytes), int32(size), int32(size), 1, rl.UncompressedR32g32b32a32)
	tex := rl.LoadTextureFromImage(img)
	if tex.ID == 0 {
		rl.UnloadFramebuffer(fbo)
		return rl.RenderTexture2D{}, fmt.Errorf("%w: float texture %dx%d rejected", ErrRenderTarget, size, size)
	}
	// Positions are fetched per texel; interpolating between particles is wrong
	rl.SetTextureFilter(tex, rl.FilterPoint)

	rl.EnableFramebuffer(fbo)
	rl.FramebufferAttach(fbo, tex.ID, rl.AttachmentColorChannel0, rl.AttachmentTexture2d, 0)
	complete := rl.FramebufferComplete(fbo)
	rl.DisableFramebuffer()

	if !complete {
		rl.UnloadTexture(tex)
		rl.UnloadFramebuffer(fbo)
		return rl.RenderTexture2D{}, fmt.Errorf("%w: float framebuffer incomplete", ErrRenderTarget)
	}

	return rl.RenderTexture2D{ID: fbo, Texture: tex}, nil
}

// loadSceneTarget creates an RGBA8 target of the given size.
func loadSceneTarget(w, h int) (rl.RenderTexture2D, error) {
	rt := rl.LoadRenderTexture(int32(w), int32(h))
	if rt.ID == 0 || rt.Texture.ID == 0 {
		return rl.RenderTexture2D{}, fmt.Errorf("%w: scene target %dx%d", ErrRenderTarget, w, h)
	}
	return rt, nil
}
