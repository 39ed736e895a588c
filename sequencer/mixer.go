package sequencer

import "samplepad/sample"

// Mixer sums live voices into the output buffer. All state is
// preallocated; nothing here allocates, locks or blocks. The mixer is
// owned by the render context and must only be touched from there.
type Mixer struct {
	voices [MaxVoices]Voice
	byPad  [NumPads]int // pool index of the pad's live voice, -1 if none
	nextID uint64
	live   int

	droppedTriggers uint64
}

// NewMixer returns a mixer with an empty voice pool.
func NewMixer() Mixer {
	m := Mixer{}
	for i := range m.byPad {
		m.byPad[i] = -1
	}
	return m
}

// Trigger starts a voice for pad at cursor 0. Last trigger wins: a live
// voice already on the pad is cut first, so a pad never stacks voices.
// Returns false if the pool is full (the trigger is dropped and counted).
func (m *Mixer) Trigger(pad int, buf *sample.Buffer, gain float32) bool {
	if pad < 0 || pad >= NumPads || buf == nil || buf.Frames() == 0 {
		return false
	}
	m.CutPad(pad)

	slot := -1
	for i := range m.voices {
		if !m.voices[i].live {
			slot = i
			break
		}
	}
	if slot < 0 {
		m.droppedTriggers++
		return false
	}

	m.nextID++
	m.voices[slot] = Voice{buf: buf, gain: gain, pad: pad, id: m.nextID, live: true}
	m.byPad[pad] = slot
	m.live++
	return true
}

// CutPad silences the live voice on pad, if any. Its remaining frames
// contribute nothing further.
func (m *Mixer) CutPad(pad int) {
	if pad < 0 || pad >= NumPads {
		return
	}
	if i := m.byPad[pad]; i >= 0 {
		m.retire(i)
	}
}

// CutAll silences every live voice (hard stop).
func (m *Mixer) CutAll() {
	for i := range m.voices {
		if m.voices[i].live {
			m.retire(i)
		}
	}
}

func (m *Mixer) retire(i int) {
	v := &m.voices[i]
	if m.byPad[v.pad] == i {
		m.byPad[v.pad] = -1
	}
	v.live = false
	v.buf = nil
	m.live--
}

// Render adds every live voice's current samples into out and advances
// cursors one frame per output frame. A voice that exhausts its buffer
// inside the window is retired and contributes exactly nothing at or
// after its buffer's end. Callers zero the buffer; mixing is additive
// with no limiting.
func (m *Mixer) Render(out []float32) {
	for i := range m.voices {
		v := &m.voices[i]
		if !v.live {
			continue
		}
		n := v.buf.Frames() - v.cursor
		if n > len(out) {
			n = len(out)
		}
		for f := 0; f < n; f++ {
			out[f] += v.buf.Frame(v.cursor+f) * v.gain
		}
		v.cursor += n
		if v.done() {
			m.retire(i)
		}
	}
}

// Live returns the number of live voices.
func (m *Mixer) Live() int { return m.live }

// ActiveMask returns a bitmask of pads that currently have a live voice,
// for level-meter style display.
func (m *Mixer) ActiveMask() uint16 {
	var mask uint16
	for pad, i := range m.byPad {
		if i >= 0 {
			mask |= 1 << uint(pad)
		}
	}
	return mask
}

// DroppedTriggers returns how many triggers were dropped because the
// pool was full.
func (m *Mixer) DroppedTriggers() uint64 { return m.droppedTriggers }
