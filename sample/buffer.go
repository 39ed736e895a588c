package sample

import (
	"fmt"
	"sync"
	"time"
)

// Buffer is an immutable, decoded audio clip: interleaved float32 frames
// in [-1, 1] plus metadata. Buffers are shared read-only between the
// loader, pad bindings and live voices; nothing mutates one after New.
type Buffer struct {
	data     []float32
	channels int
	rate     int
	name     string
}

// New wraps decoded audio data in a Buffer. The data slice is retained;
// the caller must not modify it afterwards.
func New(data []float32, channels, rate int, name string) (*Buffer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("sample %q: invalid channel count %d", name, channels)
	}
	if rate < 1 {
		return nil, fmt.Errorf("sample %q: invalid sample rate %d", name, rate)
	}
	if len(data)%channels != 0 {
		return nil, fmt.Errorf("sample %q: %d samples not divisible by %d channels", name, len(data), channels)
	}
	return &Buffer{data: data, channels: channels, rate: rate, name: name}, nil
}

// Frames returns the number of audio frames (samples per channel).
func (b *Buffer) Frames() int { return len(b.data) / b.channels }

// Channels returns the channel count of the decoded data.
func (b *Buffer) Channels() int { return b.channels }

// Rate returns the sample rate the data was decoded at.
func (b *Buffer) Rate() int { return b.rate }

// Name returns the display name (usually the file stem).
func (b *Buffer) Name() string { return b.name }

// Duration returns the clip length at its native rate.
func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.rate)
}

// Frame returns frame i mixed down to mono (channels averaged).
func (b *Buffer) Frame(i int) float32 {
	if b.channels == 1 {
		return b.data[i]
	}
	var sum float32
	for c := 0; c < b.channels; c++ {
		sum += b.Sample(i, c)
	}
	return sum / float32(b.channels)
}

// Sample returns channel c of frame i without downmixing.
func (b *Buffer) Sample(i, c int) float32 {
	return b.data[i*b.channels+c]
}

// NumSlots is the number of pad slots a Bank serves.
const NumSlots = 16

// Bank is the loader-side pad -> sample lookup. The sequencer core never
// reads it directly; bindings are pushed into the core one pad at a time.
type Bank struct {
	mu    sync.RWMutex
	slots [NumSlots]*Buffer
}

// NewBank returns an empty bank.
func NewBank() *Bank {
	return &Bank{}
}

// Bind assigns a buffer to a pad slot. nil unbinds. Out-of-range pads
// are ignored.
func (bk *Bank) Bind(pad int, buf *Buffer) {
	if pad < 0 || pad >= NumSlots {
		return
	}
	bk.mu.Lock()
	bk.slots[pad] = buf
	bk.mu.Unlock()
}

// Lookup returns the buffer bound to a pad, or nil.
func (bk *Bank) Lookup(pad int) *Buffer {
	if pad < 0 || pad >= NumSlots {
		return nil
	}
	bk.mu.RLock()
	defer bk.mu.RUnlock()
	return bk.slots[pad]
}

// Names returns the display name per slot ("" for unbound pads).
func (bk *Bank) Names() [NumSlots]string {
	bk.mu.RLock()
	defer bk.mu.RUnlock()
	var names [NumSlots]string
	for i, buf := range bk.slots {
		if buf != nil {
			names[i] = buf.name
		}
	}
	return names
}
