//go:build headless

package audio

// Headless build: no audio device. The Source is held so a harness can
// pump it manually with Pump.
type Output struct {
	source  Source
	started bool
}

func NewOutput(sampleRate int, src Source) (*Output, error) {
	return &Output{source: src}, nil
}

// Pump renders frames into a caller-supplied buffer, standing in for
// the device callback.
func (o *Output) Pump(buf []float32) {
	if o.started {
		o.source.Render(buf)
	}
}

func (o *Output) Start() {
	o.started = true
}

func (o *Output) Stop() {
	o.started = false
}

func (o *Output) Close() error {
	o.started = false
	return nil
}

func (o *Output) IsStarted() bool {
	return o.started
}
