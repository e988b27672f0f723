// Package timemap converts model frame indices into audio-timeline seconds,
// the final step before MIDI emission. The conversion constant lives in
// constants.WindowOffset and is never re-derived here.
package timemap

import (
	"math"

	"github.com/spotify/basic-pitch-go/bend"
	"github.com/spotify/basic-pitch-go/constants"
	"github.com/spotify/basic-pitch-go/model"
	"github.com/spotify/basic-pitch-go/tensor"
)

// ModelFrameToTime converts a model frame index into seconds of audio time.
// The floor term corrects for the overlap trimming applied once per output
// window (every constants.AnnotNFrames rows).
func ModelFrameToTime(frame int) float64 {
	base := float64(frame) * constants.FFTHop / constants.AudioSampleRate
	correction := constants.WindowOffset * math.Floor(float64(frame)/float64(constants.AnnotNFrames))
	return base - correction
}

// ToNoteEventsTime converts frame-indexed notes into second-indexed notes,
// refining each note's pitch bend from contours along the way.
func ToNoteEventsTime(contours *tensor.Matrix, notes []model.NoteEventFrames) []model.NoteEventTime {
	out := make([]model.NoteEventTime, len(notes))
	for i, n := range notes {
		start := ModelFrameToTime(n.StartFrame)
		end := ModelFrameToTime(n.StartFrame + n.DurationFrames)

		var bends []int
		if contours != nil {
			bends = bend.Refine(contours, n)
		}

		out[i] = model.NoteEventTime{
			StartTimeSeconds: start,
			DurationSeconds:  end - start,
			PitchMIDI:        n.PitchMIDI,
			Amplitude:        n.Amplitude,
			PitchBends:       bends,
		}
	}
	return out
}
