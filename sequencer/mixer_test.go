package sequencer

import (
	"testing"

	"samplepad/sample"
)

func mustBuf(t *testing.T, data ...float32) *sample.Buffer {
	t.Helper()
	buf, err := sample.New(data, 1, 44100, "test")
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestMixerSumsVoices(t *testing.T) {
	m := NewMixer()
	m.Trigger(0, mustBuf(t, 0.5, 0.5, 0.5), 1.0)
	m.Trigger(1, mustBuf(t, 0.25, 0.25), 1.0)

	out := make([]float32, 4)
	m.Render(out)

	want := []float32{0.75, 0.75, 0.5, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestMixerAppliesGain(t *testing.T) {
	m := NewMixer()
	m.Trigger(0, mustBuf(t, 1.0), 0.5)
	out := make([]float32, 1)
	m.Render(out)
	if out[0] != 0.5 {
		t.Errorf("out[0] = %v, want 0.5", out[0])
	}
}

func TestVoiceRetirement(t *testing.T) {
	m := NewMixer()
	m.Trigger(0, mustBuf(t, 1, 1, 1), 1.0)

	out := make([]float32, 8)
	m.Render(out)

	for f := 3; f < 8; f++ {
		if out[f] != 0 {
			t.Errorf("frame %d after buffer end = %v, want exactly 0", f, out[f])
		}
	}
	if m.Live() != 0 {
		t.Errorf("live = %d after exhaustion, want 0", m.Live())
	}
	if m.ActiveMask() != 0 {
		t.Errorf("active mask = %#x after exhaustion, want 0", m.ActiveMask())
	}
}

func TestVoiceRetiresAcrossCallbacks(t *testing.T) {
	m := NewMixer()
	m.Trigger(0, mustBuf(t, 1, 1, 1), 1.0)

	out := make([]float32, 2)
	m.Render(out)
	if m.Live() != 1 {
		t.Fatalf("live = %d mid-buffer, want 1", m.Live())
	}

	out[0], out[1] = 0, 0
	m.Render(out)
	if out[0] != 1 || out[1] != 0 {
		t.Errorf("second callback = %v, want [1 0]", out)
	}
	if m.Live() != 0 {
		t.Errorf("live = %d after tail, want 0", m.Live())
	}
}

func TestRetriggerLastWins(t *testing.T) {
	m := NewMixer()
	buf := mustBuf(t, 1, 2, 3, 4)

	m.Trigger(0, buf, 1.0)
	out := make([]float32, 2)
	m.Render(out) // cursor now at 2

	m.Trigger(0, buf, 1.0)
	if m.Live() != 1 {
		t.Fatalf("live = %d after retrigger, want exactly 1", m.Live())
	}

	out[0], out[1] = 0, 0
	m.Render(out)
	// The new voice restarts from cursor 0; the old one is cut.
	if out[0] != 1 || out[1] != 2 {
		t.Errorf("retriggered output = %v, want [1 2]", out)
	}
}

func TestTriggerPoolFullDrops(t *testing.T) {
	m := NewMixer()
	buf := mustBuf(t, 1)
	// Occupy every slot directly; Trigger itself can never stack this
	// deep because of the per-pad cut.
	for i := range m.voices {
		m.voices[i] = Voice{buf: buf, live: true, pad: 0}
	}
	m.live = MaxVoices
	m.byPad[0] = -1 // no pad association, so nothing gets cut

	if m.Trigger(1, buf, 1.0) {
		t.Error("trigger succeeded with a full pool")
	}
	if m.DroppedTriggers() != 1 {
		t.Errorf("dropped triggers = %d, want 1", m.DroppedTriggers())
	}
}

func TestCutPadAndCutAll(t *testing.T) {
	m := NewMixer()
	long := mustBuf(t, 1, 1, 1, 1, 1, 1, 1, 1)
	m.Trigger(2, long, 1.0)
	m.Trigger(5, long, 1.0)

	m.CutPad(2)
	if m.Live() != 1 {
		t.Fatalf("live = %d after CutPad, want 1", m.Live())
	}
	if m.ActiveMask() != 1<<5 {
		t.Errorf("active mask = %#x, want pad 5 only", m.ActiveMask())
	}

	m.CutAll()
	if m.Live() != 0 {
		t.Errorf("live = %d after CutAll, want 0", m.Live())
	}

	out := make([]float32, 4)
	m.Render(out)
	for i, v := range out {
		if v != 0 {
			t.Errorf("out[%d] = %v after CutAll, want 0", i, v)
		}
	}
}

func TestTriggerRejectsBadInput(t *testing.T) {
	m := NewMixer()
	if m.Trigger(-1, mustBuf(t, 1), 1.0) {
		t.Error("trigger accepted negative pad")
	}
	if m.Trigger(0, nil, 1.0) {
		t.Error("trigger accepted nil buffer")
	}
	empty, err := sample.New(nil, 1, 44100, "empty")
	if err != nil {
		t.Fatal(err)
	}
	if m.Trigger(0, empty, 1.0) {
		t.Error("trigger accepted empty buffer")
	}
}

func TestTriggerIDsIncrease(t *testing.T) {
	m := NewMixer()
	buf := mustBuf(t, 1, 1)
	m.Trigger(0, buf, 1.0)
	m.Trigger(1, buf, 1.0)
	var ids []uint64
	for i := range m.voices {
		if m.voices[i].live {
			ids = append(ids, m.voices[i].id)
		}
	}
	if len(ids) != 2 || ids[0] >= ids[1] {
		t.Errorf("trigger ids = %v, want two strictly increasing", ids)
	}
}
