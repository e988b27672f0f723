// Package inference walks the framer's windows through an InferenceEngine
// one at a time, strips the per-window overlap guard rows, and hands the
// caller a trimmed stream of (frames, onsets, contours) row-chunks — the
// un-overlapping and re-alignment step that makes the rest of the pipeline
// see one continuous timeline instead of a sequence of overlapping windows.
//
// The loop shape mirrors the teacher's bucket.ProcessAllMidiFiles: a plain
// sequential for-loop over inputs, a progress line printed per item, and a
// strict abort-on-first-error policy with no retries.
package inference

import (
	"fmt"
	"math"

	"github.com/spotify/basic-pitch-go/constants"
)

// Engine is the model collaborator: given one windowed input of length
// constants.AudioNSamples, it returns the three named output tensors as
// row-major (constants.AnnotNFrames x cols) matrices. The fixed tensor
// names from the upstream model graph — Identity (contours), Identity_1
// (frames), Identity_2 (onsets) — are the caller's concern; this interface
// only cares about the already-disambiguated outputs.
type Engine interface {
	Execute(window []float32) (frames, onsets, contours [][]float64, err error)
}

// Chunk is one window's contribution to the aligned output stream, already
// unwrapped and trimmed to fit the original audio length.
type Chunk struct {
	Frames, Onsets, Contours [][]float64
}

// Sink receives chunks strictly in window order, never concurrently.
type Sink func(Chunk) error

// ProgressFunc receives i/len(windows) just before window i is handled, and a
// final call with exactly 1.0 once every window has been processed (or
// skipped because the original-length cap was already reached).
type ProgressFunc func(fraction float64)

// Run drives engine over every window, emitting unwrapped, length-trimmed
// chunks to sink in order. numSamples is the original (unpadded) sample
// count, used to compute how many output frames the un-windowed audio is
// allowed to contribute.
func Run(windows [][]float32, numSamples int, engine Engine, sink Sink, progress ProgressFunc) error {
	if progress == nil {
		progress = func(float64) {}
	}
	if sink == nil {
		sink = func(Chunk) error { return nil }
	}

	nOutputFramesOriginal := int(math.Floor(float64(numSamples) * float64(constants.AnnotationsFPS) / float64(constants.AudioSampleRate)))
	calculatedFrames := 0

	total := len(windows)
	for i, window := range windows {
		progress(float64(i) / float64(total))

		if calculatedFrames >= nOutputFramesOriginal {
			continue
		}

		frames, onsets, contours, err := engine.Execute(window)
		if err != nil {
			return fmt.Errorf("inference: model execution failed on window %d: %w", i, err)
		}
		if err := validateShapes(frames, onsets, contours); err != nil {
			return fmt.Errorf("inference: window %d: %w", i, err)
		}

		uFrames := unwrap(frames)
		uOnsets := unwrap(onsets)
		uContours := unwrap(contours)

		n := len(uFrames)
		if calculatedFrames+n > nOutputFramesOriginal {
			n = nOutputFramesOriginal - calculatedFrames
			uFrames = uFrames[:n]
			uOnsets = uOnsets[:n]
			uContours = uContours[:n]
		}
		calculatedFrames += n

		if n == 0 {
			continue
		}
		if err := sink(Chunk{Frames: uFrames, Onsets: uOnsets, Contours: uContours}); err != nil {
			return fmt.Errorf("inference: sink rejected window %d: %w", i, err)
		}
	}

	progress(1.0)
	return nil
}

// unwrap drops the first and last NOverlapOver2 rows of a model output.
func unwrap(rows [][]float64) [][]float64 {
	lo := constants.NOverlapOver2
	hi := len(rows) - constants.NOverlapOver2
	if hi < lo {
		return nil
	}
	out := make([][]float64, hi-lo)
	copy(out, rows[lo:hi])
	return out
}

func validateShapes(frames, onsets, contours [][]float64) error {
	if len(frames) != constants.AnnotNFrames || len(onsets) != constants.AnnotNFrames || len(contours) != constants.AnnotNFrames {
		return fmt.Errorf("expected %d rows per output, got frames=%d onsets=%d contours=%d",
			constants.AnnotNFrames, len(frames), len(onsets), len(contours))
	}
	if len(frames) > 0 && len(frames[0]) != constants.NFreqBins {
		return fmt.Errorf("expected frames width %d, got %d", constants.NFreqBins, len(frames[0]))
	}
	if len(onsets) > 0 && len(onsets[0]) != constants.NFreqBins {
		return fmt.Errorf("expected onsets width %d, got %d", constants.NFreqBins, len(onsets[0]))
	}
	if len(contours) > 0 && len(contours[0]) != constants.NFreqBinsContours {
		return fmt.Errorf("expected contours width %d, got %d", constants.NFreqBinsContours, len(contours[0]))
	}
	return nil
}
