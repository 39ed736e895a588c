package sequencer

import "math"

// StepInterval returns the unswung step length in output frames:
// sampleRate * 60 / (tempo * StepsPerBeat). Fractional intervals are
// kept as float64 so the clock never drifts.
func StepInterval(sampleRate, tempo int) float64 {
	return float64(sampleRate) * 60.0 / (float64(tempo) * StepsPerBeat)
}

// swingDelay returns the extra delay applied to a step's deadline. Odd
// steps (1, 3, 5, ...) are pushed late by swing percent of the base
// interval; even steps stay on the grid. Swing 0 yields even steps.
func swingDelay(step, swing int, interval float64) float64 {
	if step%2 == 1 {
		return float64(swing) / 100.0 * interval
	}
	return 0
}

// Gap returns the frames between the deadline of step `from` and the
// deadline of the step after it, under the given tempo and swing. The
// step index is cyclic within a part, so 15 -> 0 works out the same as
// any other odd -> even transition.
func Gap(sampleRate, tempo, swing, from int) float64 {
	interval := StepInterval(sampleRate, tempo)
	next := (from + 1) % StepsPerPart
	return interval + swingDelay(next, swing, interval) - swingDelay(from, swing, interval)
}

// Clock tracks the single armed step deadline in sample frames. A
// deadline, once armed, is frozen: tempo or swing changes apply when the
// next deadline is computed, never to one already pending.
type Clock struct {
	armed     bool
	remaining float64 // frames until the armed deadline; may go negative
}

// ArmImmediate arms a deadline at the current frame, discarding any
// fractional carry. Used when transport starts: the armed step fires on
// the first frame rendered.
func (c *Clock) ArmImmediate() {
	c.armed = true
	c.remaining = 0
}

// Rearm schedules the next deadline gap frames after the one that just
// fired. The fractional remainder of the previous deadline carries over,
// so long runs stay sample-accurate even for non-integer intervals.
func (c *Clock) Rearm(gap float64) {
	c.armed = true
	c.remaining += gap
}

// Disarm clears the pending deadline (transport stop).
func (c *Clock) Disarm() {
	c.armed = false
	c.remaining = 0
}

// Armed reports whether a deadline is pending.
func (c *Clock) Armed() bool { return c.armed }

// FramesToDeadline returns how many whole frames may be rendered before
// the armed deadline is due. 0 means the deadline is due now. Calling
// this with no armed deadline is a programming error; it returns 0.
func (c *Clock) FramesToDeadline() int {
	if !c.armed || c.remaining <= 0 {
		return 0
	}
	return int(math.Ceil(c.remaining))
}

// Advance consumes n rendered frames.
func (c *Clock) Advance(n int) {
	if c.armed {
		c.remaining -= float64(n)
	}
}
