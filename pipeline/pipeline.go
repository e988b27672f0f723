// Package pipeline wires the framer, inference driver, aligner, decoder,
// and time mapper into the single Transcribe entry point every caller
// (CLI, HTTP service, tests) goes through.
package pipeline

import (
	"fmt"

	"github.com/spotify/basic-pitch-go/align"
	"github.com/spotify/basic-pitch-go/constants"
	"github.com/spotify/basic-pitch-go/decoder"
	"github.com/spotify/basic-pitch-go/framer"
	"github.com/spotify/basic-pitch-go/inference"
	"github.com/spotify/basic-pitch-go/model"
	"github.com/spotify/basic-pitch-go/timemap"
)

// Transcribe runs the full pipeline over one channel of audio sampled at
// constants.AudioSampleRate, returning decoded, time-indexed notes.
func Transcribe(samples []float32, sampleRate int, engine inference.Engine, opts model.DecodeOptions, progress inference.ProgressFunc) ([]model.NoteEventTime, error) {
	if sampleRate != constants.AudioSampleRate {
		return nil, fmt.Errorf("pipeline: sample rate %d unsupported, only %d is accepted", sampleRate, constants.AudioSampleRate)
	}

	windows, err := framer.Frame(samples, sampleRate, 1)
	if err != nil {
		return nil, fmt.Errorf("pipeline: framing: %w", err)
	}

	var collector align.Collector
	if err := inference.Run(windows.Windows, windows.NumSamples, engine, collector.Sink, progress); err != nil {
		return nil, fmt.Errorf("pipeline: inference: %w", err)
	}

	frames, onsets, contours := collector.Finalize()
	if frames.Rows() == 0 {
		return nil, nil
	}

	notesFrames, err := decoder.OutputToNotesPoly(frames, onsets, opts)
	if err != nil {
		return nil, fmt.Errorf("pipeline: decoding: %w", err)
	}

	return timemap.ToNoteEventsTime(contours, notesFrames), nil
}
