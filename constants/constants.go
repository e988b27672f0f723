// Package constants holds the normative signal-processing constants the
// whole pipeline is built around, plus the small set of environment-driven
// knobs (output directory, cache endpoint) a deployment needs to override.
package constants

import "os"

const (
	// AudioSampleRate is the only sample rate the pipeline accepts.
	AudioSampleRate = 22050
	// FFTHop is the model's native hop size in samples.
	FFTHop = 256
	// AnnotationsFPS is floor(AudioSampleRate/FFTHop).
	AnnotationsFPS = AudioSampleRate / FFTHop
	// AudioWindowLengthSeconds is the duration of one analysis window.
	AudioWindowLengthSeconds = 2
	// AudioNSamples is the sample count of one analysis window.
	AudioNSamples = AudioSampleRate*AudioWindowLengthSeconds - FFTHop
	// NOverlappingFrames is how many model output rows overlap between windows.
	NOverlappingFrames = 30
	// OverlapLengthFrames is NOverlappingFrames expressed in samples. Must be even.
	OverlapLengthFrames = NOverlappingFrames * FFTHop
	// NOverlapOver2 is how many rows are trimmed from each side of a window's output.
	NOverlapOver2 = NOverlappingFrames / 2
	// HopSize is the sample stride between successive analysis windows.
	HopSize = AudioNSamples - OverlapLengthFrames
	// AnnotNFrames is the number of output rows the model produces per window.
	AnnotNFrames = AnnotationsFPS * AudioWindowLengthSeconds

	// MidiOffset is the MIDI pitch of frequency bin 0 (A0).
	MidiOffset = 21
	// MaxFreqIdx is the highest valid frame/onset frequency bin index.
	MaxFreqIdx = 87
	// NFreqBins is the number of frame/onset frequency bins (88-key piano).
	NFreqBins = MaxFreqIdx + 1

	// ContoursBinsPerSemitone is the contour matrix's fractional-pitch resolution.
	ContoursBinsPerSemitone = 3
	// NFreqBinsContours is the contour matrix's column count.
	NFreqBinsContours = NFreqBins * ContoursBinsPerSemitone

	// AnnotationsBaseFrequency is the frequency, in Hz, of contour bin 0.
	AnnotationsBaseFrequency = 27.5

	// MidiPPQ is the pulses-per-quarter-note used by every emitted MIDI file.
	MidiPPQ = 480

	// DefaultInstrument is the General MIDI program named by the emitter.
	DefaultInstrument = "Acoustic Grand Piano"
)

// WindowOffset is the per-window calibration correction folded into
// ModelFrameToTime. The trailing 0.0018 is a magic additive term carried
// over unchanged from the reference pipeline; see the Open Questions
// entry in DESIGN.md before touching it.
var WindowOffset = float64(FFTHop)/float64(AudioSampleRate)*
	(float64(AnnotNFrames)-float64(AudioNSamples)/float64(FFTHop)) + 0.0018

func init() {
	if OverlapLengthFrames%2 != 0 {
		panic("constants: OVERLAP_LENGTH_FRAMES must be even")
	}
}

// OutDir is where batch CLI runs and the disk-backed result cache write
// their files, overridable for deployments that don't want ./out.
func OutDir() string {
	if v := os.Getenv("BASIC_PITCH_OUT_DIR"); v != "" {
		return v
	}
	return "./out"
}

// DynamoEndpoint returns the DynamoDB endpoint the result cache should
// talk to. Empty means "use the default AWS endpoint resolution".
func DynamoEndpoint() string {
	return os.Getenv("BASIC_PITCH_DYNAMODB_ENDPOINT")
}

// DynamoRegion returns the AWS region for the result cache's DynamoDB
// session, falling back to a local-development placeholder the way the
// teacher's DynamoDB session hard-coded "localhost" for its local endpoint.
func DynamoRegion() string {
	if v := os.Getenv("BASIC_PITCH_DYNAMODB_REGION"); v != "" {
		return v
	}
	return "localhost"
}
