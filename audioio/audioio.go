// Package audioio loads the raw little-endian float32 PCM files the CLI and
// test fixtures use as input, sidestepping any audio-container decoding:
// the pipeline's own sample-rate contract (constants.AudioSampleRate) is
// the only thing callers need to satisfy upstream of this package.
package audioio

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// LoadF32 reads a file of consecutive little-endian float32 samples.
func LoadF32(path string) ([]float32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("audioio: reading %s: %w", path, err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("audioio: %s length %d is not a multiple of 4 bytes", path, len(raw))
	}

	samples := make([]float32, len(raw)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
		samples[i] = math.Float32frombits(bits)
	}
	return samples, nil
}

// SaveF32 writes samples back out in the same little-endian float32 layout
// LoadF32 expects, used by tests to build fixture files.
func SaveF32(path string, samples []float32) error {
	raw := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(raw[i*4:i*4+4], math.Float32bits(s))
	}
	if err := os.WriteFile(path, raw, 0666); err != nil {
		return fmt.Errorf("audioio: writing %s: %w", path, err)
	}
	return nil
}
