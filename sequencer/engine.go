package sequencer

import "samplepad/sample"

// Engine is the render-context half of the sequencer. The audio backend
// calls Render once per callback; everything the engine touches is
// either owned by the render context or immutable, so the hot path
// never allocates, locks or blocks.
type Engine struct {
	sampleRate int
	cmds       *ControlChannel
	mailbox    *Mailbox

	// Render snapshot: the engine's own copy of the pattern and pad
	// bindings, updated only by drained commands.
	pattern Pattern
	pads    [NumPads]*sample.Buffer

	// Playhead and transport.
	playing bool
	part    int
	step    int

	// Last fired position: what is sounding right now. This is what
	// the mailbox reports; the playhead proper always points at the
	// next step to fire.
	lastPart int
	lastStep int

	clock Clock
	mixer Mixer
	fired uint32
}

func newEngine(sampleRate int, cmds *ControlChannel, mailbox *Mailbox) *Engine {
	return &Engine{
		sampleRate: sampleRate,
		cmds:       cmds,
		mailbox:    mailbox,
		pattern:    NewPattern(),
		mixer:      NewMixer(),
	}
}

// SampleRate returns the output rate the engine renders at.
func (e *Engine) SampleRate() int { return e.sampleRate }

// Render produces len(out) mono frames. It first drains all pending
// commands in arrival order, then fires every step deadline that falls
// inside the window -- in order, segment by segment, so a callback
// spanning several steps triggers each one at its exact frame -- and
// mixes live voices into the gaps. Tempo and swing are read from the
// snapshot taken here, so one callback never mixes two values when
// computing a deadline.
func (e *Engine) Render(out []float32) {
	for i := range out {
		out[i] = 0
	}

	for {
		c, ok := e.cmds.TryRecv()
		if !ok {
			break
		}
		e.apply(c)
	}

	off := 0
	for off < len(out) {
		if !e.playing {
			e.mixer.Render(out[off:])
			break
		}
		wait := e.clock.FramesToDeadline()
		if wait == 0 {
			e.fireStep()
			continue
		}
		n := len(out) - off
		if wait < n {
			n = wait
		}
		e.mixer.Render(out[off : off+n])
		e.clock.Advance(n)
		off += n
	}

	e.mailbox.Publish(e.playing, e.lastPart, e.lastStep, e.mixer.ActiveMask(),
		e.fired, uint8(e.mixer.DroppedTriggers()))
}

// fireStep triggers every bound pad with a hit at the playhead, then
// advances the playhead and arms the next deadline. An unbound pad with
// a hit is simply a silent step. The new deadline uses the tempo and
// swing in effect now; the one just consumed was frozen when it was
// armed.
func (e *Engine) fireStep() {
	grid := &e.pattern.Parts[e.part]
	for pad := 0; pad < NumPads; pad++ {
		st := grid.Steps[pad][e.step]
		if !st.Hit || e.pads[pad] == nil {
			continue
		}
		e.mixer.Trigger(pad, e.pads[pad], float32(st.Velocity)/127.0)
	}
	e.fired++
	e.lastPart, e.lastStep = e.part, e.step

	from := e.step
	e.step++
	if e.step >= StepsPerPart {
		e.step = 0
		e.part++
		if e.part >= e.pattern.PartCount {
			e.part = 0
		}
	}
	e.clock.Rearm(Gap(e.sampleRate, e.pattern.Tempo, e.pattern.Swing, from))
}

func (e *Engine) apply(c Command) {
	switch c.Kind {
	case CmdPlay:
		if !e.playing {
			e.playing = true
			// Arm the current playhead step; it fires on the first
			// frame rendered.
			e.clock.ArmImmediate()
		}
	case CmdStop:
		// Triggered voices keep ringing; only step firing stops.
		e.playing = false
		e.clock.Disarm()
	case CmdBack:
		// Reset the step index only. A pending deadline stays where it
		// is and simply fires step 0 instead.
		e.step = 0
		if !e.playing {
			e.lastPart, e.lastStep = e.part, 0
		}
	case CmdSetTempo:
		e.pattern.Tempo = c.A
	case CmdSetSwing:
		e.pattern.Swing = c.A
	case CmdSetStep:
		e.pattern.SetStep(c.A, c.B, c.C, c.Hit, c.Velocity)
	case CmdSetPartCount:
		e.pattern.PartCount = ClampPartCount(c.A)
		e.clampPlayhead()
	case CmdBindPad:
		if c.A >= 0 && c.A < NumPads {
			e.pads[c.A] = c.Buf
		}
	case CmdTriggerPad:
		if c.A >= 0 && c.A < NumPads && e.pads[c.A] != nil {
			e.mixer.Trigger(c.A, e.pads[c.A], float32(DefaultVelocity)/127.0)
		}
	case CmdCutVoices:
		e.mixer.CutAll()
	case CmdLoadPattern:
		if c.Pat != nil {
			e.pattern = *c.Pat
			e.clampPlayhead()
		}
	}
}

func (e *Engine) clampPlayhead() {
	if e.part >= e.pattern.PartCount {
		e.part = e.pattern.PartCount - 1
	}
	if e.lastPart >= e.pattern.PartCount {
		e.lastPart = e.pattern.PartCount - 1
	}
}
