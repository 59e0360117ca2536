package animation

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// SnapEpsilon is the distance at which a damper lands exactly on its target.
const SnapEpsilon = 0.001

// minSmoothTime keeps the angular frequency finite.
const minSmoothTime = 0.0001

// Damper moves a value toward a target on a critically damped spring.
// Changing the target resets the internal velocity, so the value always
// approaches the current target monotonically and never passes it.
type Damper struct {
	value     float64
	velocity  float64
	target    float64
	hasTarget bool
}

// NewDamper creates a damper resting at value.
func NewDamper(value float64) *Damper {
	return &Damper{value: value}
}

// Value returns the current value.
func (d *Damper) Value() float64 {
	return d.value
}

// Update advances the damper by delta seconds toward target. smoothTime is
// roughly the time to cover most of the distance.
func (d *Damper) Update(target, smoothTime, delta float64) float64 {
	if !d.hasTarget || target != d.target {
		d.target = target
		d.hasTarget = true
		d.velocity = 0
	}

	if math.Abs(d.value-target) <= SnapEpsilon {
		d.value = target
		d.velocity = 0
		return d.value
	}
	if delta <= 0 {
		return d.value
	}

	// Frame deltas vary, so the spring is rebuilt for each step.
	omega := 2 / math.Max(minSmoothTime, smoothTime)
	spring := harmonica.NewSpring(delta, omega, 1.0)
	out, velocity := spring.Update(d.value, d.velocity, target)

	change := d.value - target
	// Never cross the target
	if (change < 0) == (out > target) {
		out = target
		velocity = 0
	}
	// Never move away from it
	if math.Abs(out-target) > math.Abs(change) {
		out = d.value
		velocity = 0
	}

	d.value = out
	d.velocity = velocity
	return d.value
}
