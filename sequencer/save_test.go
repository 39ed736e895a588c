package sequencer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPatternFileRoundTrip(t *testing.T) {
	p := NewPattern()
	p.Tempo = 174
	p.Swing = 25
	p.PartCount = 2
	p.SetStep(0, 0, 0, true, 127)
	p.SetStep(1, 15, 15, true, 64)

	f := p.File()
	if len(f.Parts) != 2 {
		t.Fatalf("file has %d parts, want only the 2 active ones", len(f.Parts))
	}

	back := f.Pattern()
	if back != p {
		t.Error("file round trip altered the pattern")
	}
}

func TestSequenceFileClampsOnLoad(t *testing.T) {
	f := SequenceFile{Tempo: 9999, Swing: -5}
	p := f.Pattern()
	if p.Tempo != MaxTempo {
		t.Errorf("tempo = %d, want clamped %d", p.Tempo, MaxTempo)
	}
	if p.Swing != 0 {
		t.Errorf("swing = %d, want clamped 0", p.Swing)
	}
	if p.PartCount != 1 {
		t.Errorf("part count = %d for empty part list, want 1", p.PartCount)
	}
}

func TestSequenceFileDropsExtraParts(t *testing.T) {
	f := SequenceFile{Tempo: 120, Parts: make([]Part, MaxParts+3)}
	if got := f.Pattern().PartCount; got != MaxParts {
		t.Errorf("part count = %d, want %d", got, MaxParts)
	}
}

func TestSaveListLoad(t *testing.T) {
	dir := t.TempDir()

	p := NewPattern()
	p.Tempo = 140
	p.SetStep(0, 2, 4, true, 90)

	filename, err := SaveSequenceTo(dir, "groove", p.File())
	if err != nil {
		t.Fatal(err)
	}

	saves, err := ListSequencesIn(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(saves) != 1 {
		t.Fatalf("listed %d saves, want 1", len(saves))
	}
	if saves[0].Filename != filename {
		t.Errorf("listed %q, want %q", saves[0].Filename, filename)
	}
	if saves[0].Name != "groove" {
		t.Errorf("parsed name = %q, want groove", saves[0].Name)
	}

	f, err := LoadSequenceFrom(dir, filename)
	if err != nil {
		t.Fatal(err)
	}
	got := f.Pattern()
	if got.Tempo != 140 {
		t.Errorf("loaded tempo = %d, want 140", got.Tempo)
	}
	if st := got.StepAt(0, 2, 4); !st.Hit || st.Velocity != 90 {
		t.Errorf("loaded cell = %+v, want hit with velocity 90", st)
	}
}

func TestListSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"notes.txt", "short.json", "not-a-date_thing.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "2026-01-02_03-04-05.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	saves, err := ListSequencesIn(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(saves) != 1 {
		t.Fatalf("listed %d saves, want 1 valid entry", len(saves))
	}
	if saves[0].Name != "" {
		t.Errorf("unnamed save parsed name %q", saves[0].Name)
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	saves, err := ListSequencesIn(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatal(err)
	}
	if len(saves) != 0 {
		t.Errorf("missing dir listed %d saves", len(saves))
	}
}
