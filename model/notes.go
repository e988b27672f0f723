// Package model holds the plain data types shared across the pipeline:
// note events in both frame- and time-indexed form, decode options, and
// the request/response/cache shapes the ambient services build on top of
// them. Nothing in here has behaviour beyond small value-level helpers.
package model

// NoteEventFrames is a decoded note expressed in the decoder's native
// frame-index coordinate system, before time-mapping.
type NoteEventFrames struct {
	StartFrame      int
	DurationFrames  int
	PitchMIDI       int
	Amplitude       float64
	PitchBends      []int // contour-bin offsets, one per frame; nil if unrefined
}

// NoteEventTime is a decoded note in seconds, ready for MIDI emission or
// for handing back to a caller.
type NoteEventTime struct {
	StartTimeSeconds float64
	DurationSeconds  float64
	PitchMIDI        int
	Amplitude        float64
	PitchBends       []int
}

// DecodeOptions is the fixed set of tunables accepted by the note decoder,
// mirroring the recognized options table in the specification rather than
// a dynamic key-value bag.
type DecodeOptions struct {
	OnsetThresh     float64
	FrameThresh     float64
	MinNoteLen      int
	InferOnsets     bool
	MaxFreq         *float64 // Hz; nil means unconstrained
	MinFreq         *float64 // Hz; nil means unconstrained
	MelodiaTrick    bool
	EnergyTolerance int
}

// DefaultDecodeOptions returns the specification's default tunables.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		OnsetThresh:     0.5,
		FrameThresh:     0.3,
		MinNoteLen:      5,
		InferOnsets:     true,
		MaxFreq:         nil,
		MinFreq:         nil,
		MelodiaTrick:    true,
		EnergyTolerance: 11,
	}
}
