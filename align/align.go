// Package align assembles the inference driver's per-window row-chunks
// into the three full-length matrices the decoder operates on. The driver
// has already trimmed each chunk to the original audio length, so aligning
// is pure concatenation — the plumbing step the specification calls out as
// mechanical rather than algorithmic.
package align

import (
	"github.com/spotify/basic-pitch-go/inference"
	"github.com/spotify/basic-pitch-go/tensor"
)

// Collector accumulates chunks in arrival order. Use Sink as an
// inference.Sink, then call Finalize once the driver has finished.
type Collector struct {
	frames, onsets, contours [][]float64
}

// Sink appends one chunk's rows. Satisfies inference.Sink.
func (c *Collector) Sink(chunk inference.Chunk) error {
	c.frames = append(c.frames, chunk.Frames...)
	c.onsets = append(c.onsets, chunk.Onsets...)
	c.contours = append(c.contours, chunk.Contours...)
	return nil
}

// Finalize returns the concatenated frames, onsets, and contours matrices.
func (c *Collector) Finalize() (frames, onsets, contours *tensor.Matrix) {
	return tensor.FromRows(c.frames), tensor.FromRows(c.onsets), tensor.FromRows(c.contours)
}
