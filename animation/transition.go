package animation

import "sync/atomic"

// Default smooth times for the hover transition.
const (
	DefaultEnterTime = 0.35 // toward 1 (hover)
	DefaultLeaveTime = 0.20 // toward 0
)

// Transition tracks the hover blend value in [0, 1]. It has no terminal
// state: every Step re-targets it from the current hover flag.
type Transition struct {
	damper *Damper
	enter  float64
	leave  float64
}

// NewTransition creates a transition resting at 0.
func NewTransition(enter, leave float64) *Transition {
	if enter <= 0 {
		enter = DefaultEnterTime
	}
	if leave <= 0 {
		leave = DefaultLeaveTime
	}
	return &Transition{damper: NewDamper(0), enter: enter, leave: leave}
}

// Step advances the blend by delta seconds.
func (t *Transition) Step(hovering bool, delta float64) float64 {
	if hovering {
		return t.damper.Update(1, t.enter, delta)
	}
	return t.damper.Update(0, t.leave, delta)
}

// Value returns the current blend value.
func (t *Transition) Value() float64 {
	return t.damper.Value()
}

// Signal is the hover flag shared between the host's input handling and the
// frame loop. The host Sets it whenever it likes; the loop Loads it once per
// frame.
type Signal struct {
	v atomic.Bool
}

// Set publishes a new hover state.
func (s *Signal) Set(hovering bool) {
	s.v.Store(hovering)
}

// Load reads the current hover state.
func (s *Signal) Load() bool {
	return s.v.Load()
}
