package sequencer

import "samplepad/sample"

// Machine is the control-surface half of the sequencer. It owns the
// canonical pattern and pad bindings, validates and clamps every command
// at the boundary, and forwards them over the ControlChannel. All
// methods are non-blocking; the render context picks changes up at the
// start of its next callback, never retroactively.
type Machine struct {
	cmds    *ControlChannel
	mailbox *Mailbox

	pattern Pattern
	pads    [NumPads]*sample.Buffer
	playing bool
}

// New builds a control-side Machine and a render-side Engine wired
// together by one command channel and one playhead mailbox. These are
// the only two synchronization points between the contexts.
func New(sampleRate int) (*Machine, *Engine) {
	cc := NewControlChannel()
	mb := &Mailbox{}
	m := &Machine{cmds: cc, mailbox: mb, pattern: NewPattern()}
	e := newEngine(sampleRate, cc, mb)
	return m, e
}

// Play starts the transport. The playhead is not reset; the current
// step is armed and fires immediately.
func (m *Machine) Play() {
	if m.playing {
		return
	}
	m.playing = true
	m.cmds.Send(Command{Kind: CmdPlay})
}

// Stop halts step firing. Voices already triggered ring out.
func (m *Machine) Stop() {
	if !m.playing {
		return
	}
	m.playing = false
	m.cmds.Send(Command{Kind: CmdStop})
}

// Back resets the step index to 0 of the current part. Transport state
// and part index are unchanged.
func (m *Machine) Back() {
	m.cmds.Send(Command{Kind: CmdBack})
}

// Playing returns the control-side transport state.
func (m *Machine) Playing() bool { return m.playing }

// SetTempo clamps bpm into [MinTempo, MaxTempo], stores it and forwards
// it. Returns the value actually applied.
func (m *Machine) SetTempo(bpm int) int {
	bpm = ClampTempo(bpm)
	if bpm != m.pattern.Tempo {
		m.pattern.Tempo = bpm
		m.cmds.Send(Command{Kind: CmdSetTempo, A: bpm})
	}
	return bpm
}

// SetSwing clamps pct into [0, MaxSwing], stores it and forwards it.
func (m *Machine) SetSwing(pct int) int {
	pct = ClampSwing(pct)
	if pct != m.pattern.Swing {
		m.pattern.Swing = pct
		m.cmds.Send(Command{Kind: CmdSetSwing, A: pct})
	}
	return pct
}

// Tempo returns the canonical tempo.
func (m *Machine) Tempo() int { return m.pattern.Tempo }

// Swing returns the canonical swing percentage.
func (m *Machine) Swing() int { return m.pattern.Swing }

// PartCount returns the number of active parts.
func (m *Machine) PartCount() int { return m.pattern.PartCount }

// SetPartCount resizes the part list (clamped to [1, MaxParts]). The
// render context clamps its playhead if the list shrank.
func (m *Machine) SetPartCount(n int) int {
	n = ClampPartCount(n)
	if n != m.pattern.PartCount {
		m.pattern.PartCount = n
		m.cmds.Send(Command{Kind: CmdSetPartCount, A: n})
	}
	return n
}

// ToggleStep flips the hit flag of one cell and reports the new state.
// The command carries the absolute result, keeping both grid copies in
// lockstep even if an earlier edit was shed under overflow.
func (m *Machine) ToggleStep(part, pad, step int) bool {
	if !m.pattern.ValidCell(part, pad, step) {
		return false
	}
	cur := m.pattern.Parts[part].Steps[pad][step]
	hit := !cur.Hit
	m.pattern.SetStep(part, pad, step, hit, cur.Velocity)
	m.cmds.Send(Command{Kind: CmdSetStep, A: part, B: pad, C: step, Hit: hit, Velocity: cur.Velocity})
	return hit
}

// SetVelocity rewrites one cell's velocity, preserving its hit flag.
func (m *Machine) SetVelocity(part, pad, step int, velocity uint8) {
	if !m.pattern.ValidCell(part, pad, step) {
		return
	}
	cur := m.pattern.Parts[part].Steps[pad][step]
	if cur.Velocity == velocity {
		return
	}
	m.pattern.SetStep(part, pad, step, cur.Hit, velocity)
	m.cmds.Send(Command{Kind: CmdSetStep, A: part, B: pad, C: step, Hit: cur.Hit, Velocity: velocity})
}

// BindPad binds a sample buffer to a pad (nil unbinds). Buffers are
// immutable, so sharing the pointer with the render context is safe.
func (m *Machine) BindPad(pad int, buf *sample.Buffer) {
	if pad < 0 || pad >= NumPads {
		return
	}
	m.pads[pad] = buf
	m.cmds.Send(Command{Kind: CmdBindPad, A: pad, Buf: buf})
}

// PadSample returns the buffer bound to a pad, or nil.
func (m *Machine) PadSample(pad int) *sample.Buffer {
	if pad < 0 || pad >= NumPads {
		return nil
	}
	return m.pads[pad]
}

// TriggerPad fires a pad's sample immediately, outside the step grid
// (pad preview). Silent if the pad is unbound.
func (m *Machine) TriggerPad(pad int) {
	if pad < 0 || pad >= NumPads {
		return
	}
	m.cmds.Send(Command{Kind: CmdTriggerPad, A: pad})
}

// CutAllVoices hard-stops every live voice.
func (m *Machine) CutAllVoices() {
	m.cmds.Send(Command{Kind: CmdCutVoices})
}

// LoadPattern replaces the whole canonical pattern (tempo, swing, grid)
// and ships an immutable copy to the render context.
func (m *Machine) LoadPattern(p Pattern) {
	p.Tempo = ClampTempo(p.Tempo)
	p.Swing = ClampSwing(p.Swing)
	p.PartCount = ClampPartCount(p.PartCount)
	m.pattern = p
	snap := p
	m.cmds.Send(Command{Kind: CmdLoadPattern, Pat: &snap})
}

// ClearPattern removes every hit from the grid, keeping tempo, swing,
// per-cell velocities and the part layout.
func (m *Machine) ClearPattern() {
	p := m.pattern
	for i := range p.Parts {
		for pad := 0; pad < NumPads; pad++ {
			for s := 0; s < StepsPerPart; s++ {
				p.Parts[i].Steps[pad][s].Hit = false
			}
		}
	}
	m.LoadPattern(p)
}

// Pattern returns a copy of the canonical pattern for display or
// persistence.
func (m *Machine) Pattern() Pattern { return m.pattern }

// Playhead returns the latest render-side snapshot: transport, playhead
// position and per-pad voice activity. May lag by up to one callback.
func (m *Machine) Playhead() PlayheadState {
	return m.mailbox.Load()
}

// DroppedCommands returns how many commands were shed on channel
// overflow (diagnostic).
func (m *Machine) DroppedCommands() uint64 {
	return m.cmds.Dropped()
}
