package sequencer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SequenceFile is the serializable form of a pattern: tempo, swing and
// the ordered part list. The core converts to and from this form; where
// the files live is the caller's concern, with the config-dir helpers
// below as the default.
type SequenceFile struct {
	Tempo int    `json:"tempo"`
	Swing int    `json:"swing"`
	Parts []Part `json:"parts"`
}

// File converts a pattern to its serializable form. Only active parts
// are written.
func (p Pattern) File() SequenceFile {
	f := SequenceFile{Tempo: p.Tempo, Swing: p.Swing}
	f.Parts = make([]Part, p.PartCount)
	copy(f.Parts, p.Parts[:p.PartCount])
	return f
}

// Pattern converts back, clamping anything a hand-edited file may have
// broken. Extra parts beyond MaxParts are dropped; an empty part list
// yields one empty part.
func (f SequenceFile) Pattern() Pattern {
	p := NewPattern()
	p.Tempo = ClampTempo(f.Tempo)
	p.Swing = ClampSwing(f.Swing)
	n := ClampPartCount(len(f.Parts))
	p.PartCount = n
	copy(p.Parts[:n], f.Parts)
	return p
}

// SaveInfo describes one saved sequence file, for listing.
type SaveInfo struct {
	Filename  string
	Name      string // parsed from filename (empty if unnamed)
	Timestamp time.Time
}

// SequencesDir returns the default directory for saved sequences.
func SequencesDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "samplepad", "sequences"), nil
}

// SaveSequenceTo writes a timestamped JSON save into dir and returns the
// filename. Filenames follow 2006-01-02_15-04-05[_name].json.
func SaveSequenceTo(dir, name string, f SequenceFile) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create sequences dir: %w", err)
	}

	filename := time.Now().Format("2006-01-02_15-04-05")
	if name != "" {
		filename += "_" + name
	}
	filename += ".json"

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("write sequence: %w", err)
	}
	return filename, nil
}

// SaveSequence writes into the default directory.
func SaveSequence(name string, f SequenceFile) (string, error) {
	dir, err := SequencesDir()
	if err != nil {
		return "", err
	}
	return SaveSequenceTo(dir, name, f)
}

// ListSequencesIn returns the saves in dir, newest first. A missing
// directory is an empty list, not an error.
func ListSequencesIn(dir string) ([]SaveInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SaveInfo{}, nil
		}
		return nil, err
	}

	var saves []SaveInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		base := strings.TrimSuffix(name, ".json")

		// Timestamp is the first 19 chars: 2006-01-02_15-04-05
		if len(base) < 19 {
			continue
		}
		ts, err := time.Parse("2006-01-02_15-04-05", base[:19])
		if err != nil {
			continue
		}

		saveName := ""
		if len(base) > 20 && base[19] == '_' {
			saveName = base[20:]
		}

		saves = append(saves, SaveInfo{Filename: name, Name: saveName, Timestamp: ts})
	}

	sort.Slice(saves, func(i, j int) bool {
		return saves[i].Timestamp.After(saves[j].Timestamp)
	})
	return saves, nil
}

// ListSequences lists saves in the default directory, newest first.
func ListSequences() ([]SaveInfo, error) {
	dir, err := SequencesDir()
	if err != nil {
		return nil, err
	}
	return ListSequencesIn(dir)
}

// LoadSequenceFrom reads one save from dir.
func LoadSequenceFrom(dir, filename string) (SequenceFile, error) {
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return SequenceFile{}, fmt.Errorf("read sequence: %w", err)
	}
	var f SequenceFile
	if err := json.Unmarshal(data, &f); err != nil {
		return SequenceFile{}, fmt.Errorf("parse sequence %s: %w", filename, err)
	}
	return f, nil
}

// LoadSequence reads one save from the default directory.
func LoadSequence(filename string) (SequenceFile, error) {
	dir, err := SequencesDir()
	if err != nil {
		return SequenceFile{}, err
	}
	return LoadSequenceFrom(dir, filename)
}
