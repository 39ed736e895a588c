//go:build !headless

// backend_oto.go - oto v3 audio output

package audio

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

// Output streams a Source to the system audio device via oto v3. The
// mutex guards setup/control only; the Read hot path takes no locks and
// reuses a pre-allocated sample buffer.
type Output struct {
	ctx     *oto.Context
	player  *oto.Player
	source  Source
	buf     []float32
	started bool
	mutex   sync.Mutex
}

// NewOutput opens the audio device at the given rate, mono float32.
func NewOutput(sampleRate int, src Source) (*Output, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	o := &Output{
		ctx:    ctx,
		source: src,
		buf:    make([]float32, 4096),
	}
	o.player = ctx.NewPlayer(o)
	return o, nil
}

// Read renders the next chunk of audio. oto calls this from its output
// goroutine; this is the render callback boundary.
func (o *Output) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}

	// Growing should only ever happen on the first oversized request.
	if len(o.buf) < frames {
		o.buf = make([]float32, frames)
	}
	buf := o.buf[:frames]

	o.source.Render(buf)

	copy(p[:frames*4], (*[1 << 30]byte)(unsafe.Pointer(&buf[0]))[:frames*4])
	return frames * 4, nil
}

// Start begins playback.
func (o *Output) Start() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if !o.started && o.player != nil {
		o.player.Play()
		o.started = true
	}
}

// Stop pauses playback.
func (o *Output) Stop() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.started && o.player != nil {
		o.player.Pause()
		o.started = false
	}
}

// Close stops playback and releases the player.
func (o *Output) Close() error {
	o.Stop()
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.player != nil {
		err := o.player.Close()
		o.player = nil
		return err
	}
	return nil
}

// IsStarted reports whether the stream is running.
func (o *Output) IsStarted() bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.started
}
