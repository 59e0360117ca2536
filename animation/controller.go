package animation

// Sample is everything the animation controller contributes to one frame.
type Sample struct {
	Reveal     RevealSample
	Transition float64
	Hovering   bool
}

// Controller owns the reveal and transition state machines.
type Controller struct {
	reveal     *Reveal
	transition *Transition
}

// NewController creates a controller with the given reveal duration and
// transition smooth times.
func NewController(revealDuration, enter, leave float64) *Controller {
	return &Controller{
		reveal:     NewReveal(revealDuration),
		transition: NewTransition(enter, leave),
	}
}

// Advance steps both machines. now is the render clock, delta the time since
// the previous frame, hovering the flag sampled for this frame.
func (c *Controller) Advance(now, delta float64, hovering bool) Sample {
	return Sample{
		Reveal:     c.reveal.Advance(now),
		Transition: c.transition.Step(hovering, delta),
		Hovering:   hovering,
	}
}

// RevealPhase returns the reveal state.
func (c *Controller) RevealPhase() RevealPhase {
	return c.reveal.Phase()
}
