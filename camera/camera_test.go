package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/config"
)

func defaultCamera() *Camera {
	return FromConfig(config.Default().Camera)
}

func TestTargetProjectsToCenter(t *testing.T) {
	cam := defaultCamera()

	p := cam.Project(cam.Target, 1280, 720)
	if !p.Visible {
		t.Fatal("expected target to be visible")
	}
	if math.Abs(p.X-640) > 1e-6 || math.Abs(p.Y-360) > 1e-6 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", p.X, p.Y)
	}

	dist := r3.Norm(r3.Sub(cam.Target, cam.Position))
	if math.Abs(p.Depth-dist) > 1e-9 {
		t.Errorf("expected depth %f, got %f", dist, p.Depth)
	}
}

func TestViewDepthMatchesToView(t *testing.T) {
	cam := defaultCamera()
	points := []r3.Vec{{X: 1, Y: 0, Z: 2}, {X: -3, Y: 0.5, Z: 0}, {X: 0, Y: -1, Z: -4}}
	for _, pt := range points {
		if d, v := cam.ViewDepth(pt), cam.ToView(pt); math.Abs(d+v.Z) > 1e-9 {
			t.Errorf("%v: ViewDepth %f != -view.z %f", pt, d, -v.Z)
		}
	}
}

func TestBasisIsOrthonormal(t *testing.T) {
	cam := defaultCamera()
	for name, v := range map[string]r3.Vec{"right": cam.right, "up": cam.up, "forward": cam.forward} {
		if math.Abs(r3.Norm(v)-1) > 1e-9 {
			t.Errorf("%s not unit length: %f", name, r3.Norm(v))
		}
	}
	if math.Abs(r3.Dot(cam.right, cam.up)) > 1e-9 || math.Abs(r3.Dot(cam.up, cam.forward)) > 1e-9 {
		t.Error("basis vectors not orthogonal")
	}
	// Camera sits above the plane, so its up vector leans toward +Y
	if cam.up.Y <= 0 {
		t.Errorf("expected up to point toward +Y, got %v", cam.up)
	}
}

func TestRightOfViewProjectsRight(t *testing.T) {
	cam := defaultCamera()
	p := r3.Add(cam.Target, cam.right)
	proj := cam.Project(p, 800, 600)
	if !proj.Visible || proj.X <= 400 {
		t.Errorf("expected point right of center, got %+v", proj)
	}

	q := r3.Add(cam.Target, r3.Scale(0.5, cam.up))
	proj = cam.Project(q, 800, 600)
	if !proj.Visible || proj.Y >= 300 {
		t.Errorf("expected point above center, got %+v", proj)
	}
}

func TestBehindCameraNotVisible(t *testing.T) {
	cam := defaultCamera()
	behind := r3.Sub(cam.Position, cam.forward)
	proj := cam.Project(behind, 800, 600)
	if proj.Visible {
		t.Error("expected point behind camera to be invisible")
	}
	if proj.Depth >= 0 {
		t.Errorf("expected negative depth, got %f", proj.Depth)
	}

	far := r3.Add(cam.Position, r3.Scale(cam.Far+1, cam.forward))
	if cam.Project(far, 800, 600).Visible {
		t.Error("expected point beyond far plane to be invisible")
	}
}
