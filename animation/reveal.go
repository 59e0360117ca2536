// Package animation holds the two time-driven state machines that feed the
// point renderer: the one-shot reveal and the hover transition damper.
package animation

import "math"

// DefaultRevealDuration is the reveal length in seconds.
const DefaultRevealDuration = 3.5

// RevealFactorScale maps eased progress onto the reveal radius.
const RevealFactorScale = 4.0

// RevealPhase is the reveal state.
type RevealPhase uint8

const (
	RevealNotStarted RevealPhase = iota
	Revealing
	Revealed // terminal
)

func (p RevealPhase) String() string {
	switch p {
	case RevealNotStarted:
		return "not_started"
	case Revealing:
		return "revealing"
	case Revealed:
		return "revealed"
	}
	return "unknown"
}

// RevealSample is the reveal output for one frame.
type RevealSample struct {
	Phase    RevealPhase
	Elapsed  float64
	Progress float64 // linear, [0, 1]
	Eased    float64 // cubic ease-out of Progress
	Factor   float64 // Eased * RevealFactorScale

	// Completed is true only for the frame that entered Revealed.
	Completed bool
}

// Reveal is the entrance sequence. It starts on the first Advance and
// reaches Revealed exactly once; after that it never changes.
type Reveal struct {
	duration  float64
	startTime float64
	phase     RevealPhase
	last      RevealSample
}

// NewReveal creates a reveal lasting duration seconds. Non-positive
// durations fall back to DefaultRevealDuration.
func NewReveal(duration float64) *Reveal {
	if duration <= 0 {
		duration = DefaultRevealDuration
	}
	return &Reveal{duration: duration}
}

// Duration returns the reveal length.
func (r *Reveal) Duration() float64 {
	return r.duration
}

// Phase returns the current state.
func (r *Reveal) Phase() RevealPhase {
	return r.phase
}

// Advance moves the reveal to the render clock time now.
func (r *Reveal) Advance(now float64) RevealSample {
	switch r.phase {
	case Revealed:
		s := r.last
		s.Completed = false
		return s
	case RevealNotStarted:
		r.startTime = now
		r.phase = Revealing
	}

	// A clock that steps back holds the reveal where it was.
	elapsed := math.Max(now-r.startTime, r.last.Elapsed)
	progress := math.Min(elapsed/r.duration, 1.0)
	eased := EaseOutCubic(progress)

	s := RevealSample{
		Phase:    Revealing,
		Elapsed:  elapsed,
		Progress: progress,
		Eased:    eased,
		Factor:   eased * RevealFactorScale,
	}
	if progress >= 1.0 {
		r.phase = Revealed
		s.Phase = Revealed
		s.Completed = true
	}
	r.last = s
	return s
}

// EaseOutCubic returns 1 - (1-p)³.
func EaseOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}
