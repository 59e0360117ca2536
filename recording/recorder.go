// Package recording writes rendered frames to an MJPEG AVI file with a
// caption burned into each frame.
package recording

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"github.com/icza/mjpeg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pthm-cable/drift/pipeline"
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 90

// captionHeight is the height of the caption strip in pixels.
const captionHeight = 18

// Recorder appends frames to an AVI file.
type Recorder struct {
	writer  mjpeg.AviWriter
	path    string
	bounds  image.Rectangle
	scratch *image.RGBA
	buf     bytes.Buffer
	opts    jpeg.Options
	frames  int
}

// New creates path and prepares a width×height video at fps frames per second.
// quality <= 0 selects DefaultQuality.
func New(path string, width, height, fps, quality int) (*Recorder, error) {
	if width < 1 || height < 1 || fps < 1 {
		return nil, fmt.Errorf("recording: invalid video %dx%d @ %d fps", width, height, fps)
	}
	if quality <= 0 {
		quality = DefaultQuality
	}

	w, err := mjpeg.New(path, int32(width), int32(height), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("recording: creating %s: %w", path, err)
	}

	bounds := image.Rect(0, 0, width, height)
	return &Recorder{
		writer:  w,
		path:    path,
		bounds:  bounds,
		scratch: image.NewRGBA(bounds),
		opts:    jpeg.Options{Quality: quality},
	}, nil
}

// AddFrame encodes img with caption drawn along its top edge. img must match
// the video size; it is not modified.
func (r *Recorder) AddFrame(img *image.RGBA, caption string) error {
	if img.Bounds().Size() != r.bounds.Size() {
		return fmt.Errorf("recording: frame %v does not match video %v", img.Bounds().Size(), r.bounds.Size())
	}

	draw.Draw(r.scratch, r.bounds, img, img.Bounds().Min, draw.Src)
	if caption != "" {
		drawCaption(r.scratch, caption)
	}

	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, r.scratch, &r.opts); err != nil {
		return fmt.Errorf("recording: encoding frame %d: %w", r.frames, err)
	}
	if err := r.writer.AddFrame(r.buf.Bytes()); err != nil {
		return fmt.Errorf("recording: writing frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// drawCaption shades a strip at the top of img and writes label on it.
func drawCaption(img *image.RGBA, label string) {
	strip := image.Rect(0, 0, img.Bounds().Dx(), captionHeight).Intersect(img.Bounds())
	draw.Draw(img, strip, image.NewUniform(color.RGBA{A: 160}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 220, G: 220, B: 220, A: 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(6), Y: fixed.I(13)},
	}
	d.DrawString(label)
}

// Caption formats the frame parameters for the overlay.
func Caption(p pipeline.Params) string {
	return fmt.Sprintf("t=%6.2fs  reveal %3.0f%%  transition %.2f  hover %v",
		p.Time, p.RevealProgress*100, p.Transition, p.Hovering)
}

// Frames returns how many frames were written.
func (r *Recorder) Frames() int {
	return r.frames
}

// Path returns the output file.
func (r *Recorder) Path() string {
	return r.path
}

// Close finalises the AVI index.
func (r *Recorder) Close() error {
	if err := r.writer.Close(); err != nil {
		return fmt.Errorf("recording: closing %s: %w", r.path, err)
	}
	return nil
}
