package sample

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// LoadWAV decodes a WAV file into an immutable Buffer. Samples are
// normalized to [-1, 1] from the file's bit depth. No resampling is
// done; callers that care should compare Rate() against the engine rate.
func LoadWAV(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sample: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	ibuf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if ibuf.Format == nil || ibuf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("decode %s: missing format chunk", path)
	}

	bits := int(dec.BitDepth)
	if bits == 0 {
		bits = 16
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(normalize(ibuf, bits), ibuf.Format.NumChannels, ibuf.Format.SampleRate, name)
}

// normalize converts integer PCM to float32 in [-1, 1]. AsFloat32Buffer
// converts without rescaling, so the division is done here.
func normalize(ibuf *audio.IntBuffer, bits int) []float32 {
	scale := float32(int64(1) << (bits - 1))
	data := make([]float32, len(ibuf.Data))
	for i, v := range ibuf.Data {
		data[i] = float32(v) / scale
	}
	return data
}
