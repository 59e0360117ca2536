package recording

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/drift/pipeline"
)

func TestRecorderWritesAVI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.avi")
	rec, err := New(path, 64, 48, 30, 0)
	if err != nil {
		t.Fatalf("creating recorder: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for i := 0; i < 3; i++ {
		img.SetRGBA(i, i, color.RGBA{R: 255, A: 255})
		if err := rec.AddFrame(img, "frame"); err != nil {
			t.Fatalf("adding frame %d: %v", i, err)
		}
	}
	if rec.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", rec.Frames())
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "AVI " {
		t.Error("expected a RIFF AVI header")
	}
}

func TestAddFrameLeavesSourceUntouched(t *testing.T) {
	rec, err := New(filepath.Join(t.TempDir(), "out.avi"), 32, 32, 30, 75)
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	if err := rec.AddFrame(img, "caption"); err != nil {
		t.Fatal(err)
	}
	for _, v := range img.Pix {
		if v != 0 {
			t.Fatal("caption was drawn into the caller's image")
		}
	}
}

func TestAddFrameRejectsWrongSize(t *testing.T) {
	rec, err := New(filepath.Join(t.TempDir(), "out.avi"), 32, 32, 30, 75)
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()

	if err := rec.AddFrame(image.NewRGBA(image.Rect(0, 0, 16, 16)), ""); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestNewRejectsBadDimensions(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "x.avi"), 0, 10, 30, 0); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestCaption(t *testing.T) {
	c := Caption(pipeline.Params{Time: 1.5, RevealProgress: 0.5, Transition: 0.25, Hovering: true})
	for _, want := range []string{"1.50s", "50%", "0.25", "hover true"} {
		if !strings.Contains(c, want) {
			t.Errorf("caption %q missing %q", c, want)
		}
	}
}
