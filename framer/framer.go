// Package framer slices a mono 22050 Hz sample buffer into the fixed-length
// overlapping analysis windows the inference engine expects, the way
// cvoalex-webcodectest's ExtractMelWindows slices a mel-spectrogram into
// sliding windows for its encoder: validate shape up front, then fill one
// window at a time with explicit padding at the edges.
package framer

import (
	"fmt"

	"github.com/spotify/basic-pitch-go/constants"
)

// Windows holds the framed audio windows and the original sample count
// downstream trimming needs. Each window has length constants.AudioNSamples;
// the model's single input channel is implicit.
type Windows struct {
	Windows   [][]float32
	NumSamples int
}

// Frame validates the audio input contract and slices samples into
// overlapping windows, left-padding by half the overlap length and
// zero-padding the final window to full length.
func Frame(samples []float32, sampleRate, channels int) (Windows, error) {
	if sampleRate != constants.AudioSampleRate {
		return Windows{}, fmt.Errorf("framer: unsupported sample rate %d, want %d", sampleRate, constants.AudioSampleRate)
	}
	if channels != 1 {
		return Windows{}, fmt.Errorf("framer: unsupported channel count %d, want mono", channels)
	}

	numSamples := len(samples)

	padded := make([]float32, constants.OverlapLengthFrames/2+numSamples)
	copy(padded[constants.OverlapLengthFrames/2:], samples)

	numWindows := (len(padded)-1)/constants.HopSize + 1
	windows := make([][]float32, numWindows)
	for w := 0; w < numWindows; w++ {
		start := w * constants.HopSize
		window := make([]float32, constants.AudioNSamples)
		end := start + constants.AudioNSamples
		if end > len(padded) {
			end = len(padded)
		}
		copy(window, padded[start:end])
		windows[w] = window
	}

	return Windows{Windows: windows, NumSamples: numSamples}, nil
}
