// Package decoder turns the aligned frames/onsets matrices into discrete
// note events: frequency constraint, onset inference, peak picking,
// per-onset note extension, and the melodia-trick continuation pass. This
// is the algorithmic core of the pipeline; every step reproduces the
// reference Python decoder frame-for-frame, including its tie-breaking
// and tolerance-counting rules.
package decoder

import (
	"fmt"
	"math"

	"github.com/spotify/basic-pitch-go/constants"
	"github.com/spotify/basic-pitch-go/model"
	"github.com/spotify/basic-pitch-go/numeric"
	"github.com/spotify/basic-pitch-go/tensor"
)

// ConstrainFrequency zeroes, in place, every frame/onset column at or above
// maxFreq's bin index and every column below minFreq's bin index (bounds
// given in Hz, rounded to the nearest MIDI pitch). Either
// bound may be nil to leave that side unconstrained. Applying it twice
// with the same bounds is idempotent: the columns it zeroes are already
// zero the second time through.
func ConstrainFrequency(onsets, frames *tensor.Matrix, maxFreq, minFreq *float64) {
	if maxFreq != nil {
		maxFreqIdx := int(math.Round(numeric.HzToMidi(*maxFreq))) - constants.MidiOffset
		onsets.ZeroColumnsFrom(maxFreqIdx)
		frames.ZeroColumnsFrom(maxFreqIdx)
	}
	if minFreq != nil {
		minFreqIdx := int(math.Round(numeric.HzToMidi(*minFreq))) - constants.MidiOffset
		onsets.ZeroColumnsUpTo(minFreqIdx)
		frames.ZeroColumnsUpTo(minFreqIdx)
	}
}

// inferOnsets augments the onset matrix with onsets implied by sharp rises
// in frame energy, rescaled onto the original onset matrix's dynamic range
// and combined by taking the per-cell maximum.
func inferOnsets(onsets, frames *tensor.Matrix) *tensor.Matrix {
	const nDiff = 2

	var diffs []*tensor.Matrix
	for n := 1; n <= nDiff; n++ {
		shifted := tensor.ShiftRowsDown(frames, n)
		diffs = append(diffs, tensor.Sub(frames, shifted))
	}

	frameDiff := diffs[0]
	for _, d := range diffs[1:] {
		frameDiff = tensor.ElementwiseMin(frameDiff, d)
	}
	frameDiff = tensor.MapNew(frameDiff, func(v float64) float64 {
		if v < 0 {
			return 0
		}
		return v
	})
	frameDiff.ZeroRows(nDiff)

	onsetsMax, _ := onsets.GlobalMax()
	diffMax, ok := frameDiff.GlobalMax()
	if ok && diffMax > 0 {
		frameDiff = tensor.MapNew(frameDiff, func(v float64) float64 {
			return onsetsMax * v / diffMax
		})
	}

	return tensor.ElementwiseMax(onsets, frameDiff)
}

// peakPick returns onset peaks (row, freqIdx), with later (higher-row)
// onsets ordered first so note extension processes them before earlier
// onsets at the same frequency.
func peakPick(inferredOnsets *tensor.Matrix, onsetThresh float64) (rows, cols []int) {
	rows1D := inferredOnsets.AsRows()
	peakRows, peakCols := numeric.ArgRelMax(rows1D, 1)

	sparse := tensor.New(inferredOnsets.Rows(), inferredOnsets.Cols())
	for i := range peakRows {
		sparse.Set(peakRows[i], peakCols[i], inferredOnsets.At(peakRows[i], peakCols[i]))
	}

	sparseRows := sparse.AsRows()
	rows, cols = numeric.WhereGreaterThanAxis1(sparseRows, onsetThresh)

	for l, r := 0, len(rows)-1; l < r; l, r = l+1, r-1 {
		rows[l], rows[r] = rows[r], rows[l]
		cols[l], cols[r] = cols[r], cols[l]
	}
	return rows, cols
}

// zeroNeighbourhood zeroes remainingEnergy[row][freqIdx] and its
// immediate pitch neighbours, clipped to the valid frequency-bin range.
func zeroNeighbourhood(remainingEnergy *tensor.Matrix, row, freqIdx int) {
	remainingEnergy.Set(row, freqIdx, 0)
	if freqIdx < constants.MaxFreqIdx {
		remainingEnergy.Set(row, freqIdx+1, 0)
	}
	if freqIdx > 0 {
		remainingEnergy.Set(row, freqIdx-1, 0)
	}
}

// scanForward advances from start, counting consecutive below-threshold
// frames (reset by any above-threshold frame) until either the tolerance
// is exhausted or the matrix ends. It returns the raw post-loop index and
// the run length of trailing below-threshold frames; callers apply their
// own retreat formula. When zero is true, every visited cell (and its
// pitch neighbours) is cleared from remainingEnergy as it is visited.
func scanForward(remainingEnergy *tensor.Matrix, start, freqIdx, tolerance int, frameThresh float64, zero bool) (i, k int) {
	t := remainingEnergy.Rows()
	i = start
	for i < t-1 && k < tolerance {
		if remainingEnergy.At(i, freqIdx) < frameThresh {
			k++
		} else {
			k = 0
		}
		if zero {
			zeroNeighbourhood(remainingEnergy, i, freqIdx)
		}
		i++
	}
	return i, k
}

// scanBackward is scanForward's mirror image, walking toward frame 0,
// always clearing remainingEnergy as it visits cells.
func scanBackward(remainingEnergy *tensor.Matrix, start, freqIdx, tolerance int, frameThresh float64) (i, k int) {
	i = start
	for i > 0 && k < tolerance {
		if remainingEnergy.At(i, freqIdx) < frameThresh {
			k++
		} else {
			k = 0
		}
		zeroNeighbourhood(remainingEnergy, i, freqIdx)
		i--
	}
	return i, k
}

func meanColumn(m *tensor.Matrix, startRow, endRow, col int) float64 {
	vals := make([]float64, 0, endRow-startRow)
	for r := startRow; r < endRow; r++ {
		vals = append(vals, m.At(r, col))
	}
	return numeric.Mean(vals)
}

// OutputToNotesPoly runs the full note decoder over frames/onsets, both of
// which it mutates in place during frequency constraint (the caller must
// clone beforehand if it still needs the unconstrained matrices).
func OutputToNotesPoly(frames, onsets *tensor.Matrix, opts model.DecodeOptions) ([]model.NoteEventFrames, error) {
	ConstrainFrequency(onsets, frames, opts.MaxFreq, opts.MinFreq)

	effectiveOnsets := onsets
	if opts.InferOnsets {
		effectiveOnsets = inferOnsets(onsets, frames)
	}

	onsetRows, onsetCols := peakPick(effectiveOnsets, opts.OnsetThresh)

	t := frames.Rows()
	remainingEnergy := frames.Clone()

	var notes []model.NoteEventFrames
	for n := range onsetRows {
		startRow, freqIdx := onsetRows[n], onsetCols[n]
		if startRow >= t-1 {
			continue
		}

		i, k := scanForward(remainingEnergy, startRow+1, freqIdx, opts.EnergyTolerance, opts.FrameThresh, false)
		end := i - k
		if end-startRow <= opts.MinNoteLen {
			continue
		}

		for r := startRow; r < end; r++ {
			zeroNeighbourhood(remainingEnergy, r, freqIdx)
		}

		notes = append(notes, model.NoteEventFrames{
			StartFrame:     startRow,
			DurationFrames: end - startRow,
			PitchMIDI:      freqIdx + constants.MidiOffset,
			Amplitude:      meanColumn(frames, startRow, end, freqIdx),
		})
	}

	if opts.MelodiaTrick {
		melodiaNotes, err := melodiaTrick(frames, remainingEnergy, opts)
		if err != nil {
			return nil, err
		}
		notes = append(notes, melodiaNotes...)
	}

	return notes, nil
}

func melodiaTrick(frames, remainingEnergy *tensor.Matrix, opts model.DecodeOptions) ([]model.NoteEventFrames, error) {
	t := frames.Rows()
	var notes []model.NoteEventFrames

	for {
		max, ok := remainingEnergy.GlobalMax()
		if !ok || max <= opts.FrameThresh {
			break
		}

		iMid, freqIdx := argmax2D(remainingEnergy)
		remainingEnergy.Set(iMid, freqIdx, 0)

		iForward, kForward := scanForward(remainingEnergy, iMid+1, freqIdx, opts.EnergyTolerance, opts.FrameThresh, true)
		iEnd := iForward - 1 - kForward

		iBackward, kBackward := scanBackward(remainingEnergy, iMid-1, freqIdx, opts.EnergyTolerance, opts.FrameThresh)
		iStart := iBackward + 1 + kBackward

		if iStart < 0 {
			return nil, fmt.Errorf("decoder: melodia pass produced iStart=%d < 0", iStart)
		}
		if iEnd >= t {
			return nil, fmt.Errorf("decoder: melodia pass produced iEnd=%d >= %d", iEnd, t)
		}

		if iEnd-iStart <= opts.MinNoteLen {
			continue
		}

		notes = append(notes, model.NoteEventFrames{
			StartFrame:     iStart,
			DurationFrames: iEnd - iStart,
			PitchMIDI:      freqIdx + constants.MidiOffset,
			Amplitude:      meanColumn(frames, iStart, iEnd, freqIdx),
		})
	}

	return notes, nil
}

// argmax2D returns the (row, col) of the matrix's global maximum,
// breaking ties by lowest flattened index (row-major).
func argmax2D(m *tensor.Matrix) (row, col int) {
	idx, _ := numeric.ArgMax(m.Flatten())
	return idx / m.Cols(), idx % m.Cols()
}
