// Package camera provides the fixed perspective camera the particle field is
// viewed through.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/config"
)

// Camera is a right-handed perspective camera looking from Position at Target.
// It never moves after construction.
type Camera struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec

	// Vertical field of view in degrees
	FOVY float64

	// Clip planes
	Near, Far float64

	// Orthonormal view basis, derived once
	right, up, forward r3.Vec
}

// New creates a camera. Up is world +Y.
func New(position, target r3.Vec, fovy, near, far float64) *Camera {
	c := &Camera{
		Position: position,
		Target:   target,
		Up:       r3.Vec{Y: 1},
		FOVY:     fovy,
		Near:     near,
		Far:      far,
	}
	c.forward = r3.Unit(r3.Sub(target, position))
	c.right = r3.Unit(r3.Cross(c.forward, c.Up))
	c.up = r3.Cross(c.right, c.forward)
	return c
}

// FromConfig creates the camera described by cfg.
func FromConfig(cfg config.CameraConfig) *Camera {
	return New(
		r3.Vec{X: cfg.Position[0], Y: cfg.Position[1], Z: cfg.Position[2]},
		r3.Vec{X: cfg.Target[0], Y: cfg.Target[1], Z: cfg.Target[2]},
		cfg.FOV, cfg.Near, cfg.Far,
	)
}

// ToView converts a world position to view space (x right, y up, -z forward).
func (c *Camera) ToView(p r3.Vec) r3.Vec {
	d := r3.Sub(p, c.Position)
	return r3.Vec{
		X: r3.Dot(d, c.right),
		Y: r3.Dot(d, c.up),
		Z: -r3.Dot(d, c.forward),
	}
}

// ViewDepth returns the distance in front of the camera along its view axis.
// Points behind the camera have negative depth.
func (c *Camera) ViewDepth(p r3.Vec) float64 {
	return r3.Dot(r3.Sub(p, c.Position), c.forward)
}

// Projection holds a projected point.
type Projection struct {
	X, Y  float64 // screen pixels, origin top-left
	Depth float64 // view depth
	// Visible is false when the point lies outside the near/far range.
	Visible bool
}

// Project maps a world position onto a width×height viewport.
func (c *Camera) Project(p r3.Vec, width, height float64) Projection {
	v := c.ToView(p)
	depth := -v.Z
	if depth < c.Near || depth > c.Far {
		return Projection{Depth: depth}
	}

	f := 1 / math.Tan(c.FOVY*math.Pi/360)
	aspect := width / height
	ndcX := v.X / depth * f / aspect
	ndcY := v.Y / depth * f

	return Projection{
		X:       (ndcX + 1) / 2 * width,
		Y:       (1 - ndcY) / 2 * height,
		Depth:   depth,
		Visible: true,
	}
}
