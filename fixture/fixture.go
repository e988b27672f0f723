// Package fixture supplies an inference.Engine backed by precomputed
// model output instead of a live neural-network runtime. The actual
// model is an external collaborator the specification explicitly puts
// out of scope; this package is how the CLI and the HTTP service get
// window output without binding to any one inference runtime.
package fixture

import (
	"fmt"

	"github.com/spotify/basic-pitch-go/util"
)

// WindowOutput is one window's worth of precomputed model output, in the
// same row-major [][]float64 shape inference.Engine.Execute returns.
type WindowOutput struct {
	Frames, Onsets, Contours [][]float64
}

// Engine replays a fixed sequence of precomputed window outputs, one per
// call to Execute, in order. It implements inference.Engine.
type Engine struct {
	windows []WindowOutput
	next    int
}

// NewEngine returns an Engine that replays windows in order.
func NewEngine(windows []WindowOutput) *Engine {
	return &Engine{windows: windows}
}

// LoadEngine gob-decodes a []WindowOutput from path (the file named by the
// `transcribe --dump` and `serve --dump` flags) and wraps it in an Engine.
// Nothing in this module writes such a file.
func LoadEngine(path string) (*Engine, error) {
	windows, err := util.ReadBinary[[]WindowOutput](path)
	if err != nil {
		return nil, fmt.Errorf("fixture: loading %s: %w", path, err)
	}
	return NewEngine(windows), nil
}

// Execute returns the next precomputed window output, ignoring window,
// and errors once every precomputed window has been consumed.
func (e *Engine) Execute(window []float32) (frames, onsets, contours [][]float64, err error) {
	if e.next >= len(e.windows) {
		return nil, nil, nil, fmt.Errorf("fixture: no precomputed output left for window %d", e.next)
	}
	out := e.windows[e.next]
	e.next++
	return out.Frames, out.Onsets, out.Contours, nil
}
