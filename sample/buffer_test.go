package sample

import (
	"testing"
	"time"
)

func TestNewValidates(t *testing.T) {
	if _, err := New([]float32{0}, 0, 44100, "x"); err == nil {
		t.Error("accepted zero channels")
	}
	if _, err := New([]float32{0}, 1, 0, "x"); err == nil {
		t.Error("accepted zero sample rate")
	}
	if _, err := New([]float32{0, 0, 0}, 2, 44100, "x"); err == nil {
		t.Error("accepted odd sample count for stereo")
	}
}

func TestFrameMono(t *testing.T) {
	b, err := New([]float32{0.1, 0.2, 0.3}, 1, 44100, "mono")
	if err != nil {
		t.Fatal(err)
	}
	if b.Frames() != 3 {
		t.Errorf("frames = %d, want 3", b.Frames())
	}
	if b.Frame(1) != 0.2 {
		t.Errorf("frame 1 = %v, want 0.2", b.Frame(1))
	}
}

func TestFrameDownmixesStereo(t *testing.T) {
	b, err := New([]float32{1, 0, 0.5, 0.5}, 2, 44100, "stereo")
	if err != nil {
		t.Fatal(err)
	}
	if b.Frames() != 2 {
		t.Errorf("frames = %d, want 2", b.Frames())
	}
	if got := b.Frame(0); got != 0.5 {
		t.Errorf("downmixed frame 0 = %v, want 0.5", got)
	}
	if got := b.Sample(1, 1); got != 0.5 {
		t.Errorf("sample(1,1) = %v, want 0.5", got)
	}
}

func TestDuration(t *testing.T) {
	b, err := New(make([]float32, 22050), 1, 44100, "half")
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Duration(); got != 500*time.Millisecond {
		t.Errorf("duration = %v, want 500ms", got)
	}
}

func TestBankBindLookup(t *testing.T) {
	bk := NewBank()
	b, err := New([]float32{1}, 1, 44100, "kick")
	if err != nil {
		t.Fatal(err)
	}

	bk.Bind(3, b)
	if bk.Lookup(3) != b {
		t.Error("lookup missed bound buffer")
	}
	if bk.Lookup(0) != nil {
		t.Error("lookup on empty slot returned a buffer")
	}

	names := bk.Names()
	if names[3] != "kick" {
		t.Errorf("names[3] = %q, want kick", names[3])
	}
	if names[0] != "" {
		t.Errorf("names[0] = %q, want empty", names[0])
	}

	bk.Bind(3, nil)
	if bk.Lookup(3) != nil {
		t.Error("nil bind did not clear the slot")
	}
}

func TestBankIgnoresOutOfRange(t *testing.T) {
	bk := NewBank()
	b, err := New([]float32{1}, 1, 44100, "x")
	if err != nil {
		t.Fatal(err)
	}
	bk.Bind(-1, b)
	bk.Bind(NumSlots, b)
	if bk.Lookup(-1) != nil || bk.Lookup(NumSlots) != nil {
		t.Error("out-of-range lookup returned a buffer")
	}
}
