package sequencer

import (
	"sync/atomic"

	"samplepad/sample"
)

// CommandKind discriminates ControlChannel commands.
type CommandKind uint8

const (
	CmdPlay CommandKind = iota + 1
	CmdStop
	CmdBack
	CmdSetTempo     // A = bpm (pre-clamped)
	CmdSetSwing     // A = percent (pre-clamped)
	CmdSetStep      // A = part, B = pad, C = step, Hit + Velocity
	CmdSetPartCount // A = count (pre-clamped)
	CmdBindPad      // A = pad, Buf (nil unbinds)
	CmdTriggerPad   // A = pad; immediate preview fire outside the grid
	CmdCutVoices
	CmdLoadPattern // Pat, immutable once sent
)

// Command is one control-surface intent. A plain value: the render
// context receives it from the channel without allocating. Pattern-cell
// commands carry absolute state (hit + velocity) rather than a toggle,
// so coalescing under overflow can never leave the two grid copies
// logically inverted from one another.
type Command struct {
	Kind     CommandKind
	A, B, C  int
	Hit      bool
	Velocity uint8
	Buf      *sample.Buffer
	Pat      *Pattern
}

const controlChannelCap = 256

// ControlChannel carries commands from the control context to the
// render context. Single producer, single consumer, FIFO. Neither side
// ever blocks: the render side drains with TryRecv, and a Send into a
// full channel sheds one queued command the new one can stand in for.
// Every shed or outright drop is counted.
type ControlChannel struct {
	ch      chan Command
	scratch []Command // producer-side staging for overflow shedding
	dropped atomic.Uint64
}

// NewControlChannel returns a channel with the default capacity.
func NewControlChannel() *ControlChannel {
	return &ControlChannel{
		ch:      make(chan Command, controlChannelCap),
		scratch: make([]Command, 0, controlChannelCap),
	}
}

// Send enqueues a command without blocking. A send into a full channel
// coalesces: the oldest queued command of the same kind (for pattern
// edits, preferring the same cell) is shed to make room. Commands of a
// different kind -- transport, tempo, bindings -- are never sacrificed
// for an edit storm. Returns false if the command had to be dropped
// outright.
func (cc *ControlChannel) Send(c Command) bool {
	select {
	case cc.ch <- c:
		return true
	default:
	}

	// Full: the render side fell behind. Drain into the staging slice,
	// shed one victim, requeue in order. Only the single producer
	// mutates the queue, so this cannot race another Send; the consumer
	// pulling concurrently just shortens the backlog.
	backlog := cc.scratch[:0]
	for {
		q, ok := cc.TryRecv()
		if !ok {
			break
		}
		backlog = append(backlog, q)
	}

	if v := shedVictim(backlog, c); v >= 0 {
		cc.dropped.Add(1)
		backlog = append(backlog[:v], backlog[v+1:]...)
	}
	for _, q := range backlog {
		cc.ch <- q
	}

	select {
	case cc.ch <- c:
		return true
	default:
		cc.dropped.Add(1)
		return false
	}
}

// shedVictim picks which queued command to sacrifice for c: a pattern
// edit for the same cell, else the oldest command of the same kind,
// else the oldest pattern edit. Pattern edits carry absolute state, so
// shedding a stale one in favor of a newer edit for the cell keeps the
// two grid copies in lockstep. Returns -1 when nothing may be shed.
func shedVictim(backlog []Command, c Command) int {
	sameKind, sameCell, edit := -1, -1, -1
	for i, q := range backlog {
		if sameKind < 0 && q.Kind == c.Kind {
			sameKind = i
		}
		if q.Kind != CmdSetStep {
			continue
		}
		if edit < 0 {
			edit = i
		}
		if sameCell < 0 && c.Kind == CmdSetStep && q.A == c.A && q.B == c.B && q.C == c.C {
			sameCell = i
		}
	}
	if sameCell >= 0 {
		return sameCell
	}
	if sameKind >= 0 {
		return sameKind
	}
	return edit
}

// TryRecv dequeues the next pending command without blocking.
func (cc *ControlChannel) TryRecv() (Command, bool) {
	select {
	case c := <-cc.ch:
		return c, true
	default:
		return Command{}, false
	}
}

// Dropped returns how many commands were dropped on overflow.
func (cc *ControlChannel) Dropped() uint64 {
	return cc.dropped.Load()
}

// PlayheadState is one snapshot of the render context as reported back
// to the control surface: transport, playhead, per-pad voice activity
// and diagnostic counters.
type PlayheadState struct {
	Playing         bool
	Part            int
	Step            int
	ActivePads      uint16 // bit n set = pad n has a live voice
	Fired           uint32 // steps fired since start, wraps at 24 bits
	DroppedTriggers uint8  // pool-full triggers dropped, wraps at 8 bits
}

// Mailbox is the reverse, latest-value-wins report from the render
// context. The whole state packs into one atomic word so publishing
// never allocates; the control surface reads it opportunistically and
// staleness of up to one render callback is fine.
//
// Layout: bit 0 playing | bits 1-7 part | bits 8-15 step |
// bits 16-31 active pad mask | bits 32-55 fire counter |
// bits 56-63 dropped-trigger counter.
type Mailbox struct {
	word atomic.Uint64
}

// Publish stores the latest render-side state. Render context only.
func (mb *Mailbox) Publish(playing bool, part, step int, pads uint16, fired uint32, dropped uint8) {
	var w uint64
	if playing {
		w |= 1
	}
	w |= uint64(part&0x7f) << 1
	w |= uint64(step&0xff) << 8
	w |= uint64(pads) << 16
	w |= uint64(fired&0xffffff) << 32
	w |= uint64(dropped) << 56
	mb.word.Store(w)
}

// Load returns the most recently published state.
func (mb *Mailbox) Load() PlayheadState {
	w := mb.word.Load()
	return PlayheadState{
		Playing:         w&1 != 0,
		Part:            int(w>>1) & 0x7f,
		Step:            int(w>>8) & 0xff,
		ActivePads:      uint16(w >> 16),
		Fired:           uint32(w>>32) & 0xffffff,
		DroppedTriggers: uint8(w >> 56),
	}
}
