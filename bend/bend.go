// Package bend refines each decoded note's nominal pitch into a per-frame
// pitch-bend curve by reading a Gaussian-weighted window of the contour
// matrix centered on the note's nominal contour bin.
package bend

import (
	"math"

	"github.com/spotify/basic-pitch-go/constants"
	"github.com/spotify/basic-pitch-go/model"
	"github.com/spotify/basic-pitch-go/numeric"
	"github.com/spotify/basic-pitch-go/tensor"
)

const (
	nBinsTolerance = 25
	windowLength   = nBinsTolerance*2 + 1
	gaussianStd    = 5
)

// MidiPitchToContourBin maps a MIDI pitch to its nominal contour-bin index.
func MidiPitchToContourBin(pitchMIDI int) int {
	hz := numeric.MidiToHz(float64(pitchMIDI))
	return int(math.Round(float64(constants.ContoursBinsPerSemitone*12) * math.Log2(hz/constants.AnnotationsBaseFrequency)))
}

// Refine computes the pitch-bend sequence for one note, reading
// contours[note.StartFrame:note.StartFrame+note.DurationFrames]. The
// returned slice always has length note.DurationFrames.
func Refine(contours *tensor.Matrix, note model.NoteEventFrames) []int {
	freqIdx := MidiPitchToContourBin(note.PitchMIDI)

	freqStartIdx := freqIdx - nBinsTolerance
	if freqStartIdx < 0 {
		freqStartIdx = 0
	}
	freqEndIdx := freqIdx + nBinsTolerance + 1
	if freqEndIdx > constants.NFreqBinsContours {
		freqEndIdx = constants.NFreqBinsContours
	}

	gaussian := numeric.Gaussian(windowLength, gaussianStd)
	leftClip := maxInt(0, nBinsTolerance-freqIdx)
	rightClip := len(gaussian) - maxInt(0, freqIdx-(constants.NFreqBinsContours-nBinsTolerance-1))
	gaussianSlice := gaussian[leftClip:rightClip]

	pbShift := nBinsTolerance - maxInt(0, nBinsTolerance-freqIdx)

	bends := make([]int, note.DurationFrames)
	for i := 0; i < note.DurationFrames; i++ {
		frame := note.StartFrame + i
		row := contours.Row(frame)[freqStartIdx:freqEndIdx]
		weighted := make([]float64, len(row))
		for j, v := range row {
			weighted[j] = v * gaussianSlice[j]
		}
		idx, _ := numeric.ArgMax(weighted)
		bends[i] = idx - pbShift
	}
	return bends
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
