package sequencer

import "samplepad/sample"

// MaxVoices bounds concurrent polyphony. The pool is preallocated; a
// trigger that finds no free slot is dropped rather than blocking.
const MaxVoices = 64

// Voice is one in-flight playback of a sample buffer: a shared read-only
// buffer reference, a read cursor in frames, and a gain. Voices live in
// the Mixer's fixed pool and are owned by the render context.
type Voice struct {
	buf    *sample.Buffer
	cursor int // frames consumed so far
	gain   float32
	pad    int
	id     uint64 // monotonically increasing trigger id
	live   bool
}

// done reports whether the voice has consumed its whole buffer.
func (v *Voice) done() bool {
	return v.cursor >= v.buf.Frames()
}
