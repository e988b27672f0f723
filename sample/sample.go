// Package sample trims an smf.SMF down to a small, deterministic prefix of
// its note events, for use as a test fixture. Grounded directly on the
// teacher's sample.Create, which did the same track-by-track trimming to
// build manageable sample MIDI files for its own tests.
package sample

import (
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Trim returns a copy of mf containing at most maxNoteEvents note-on/off
// events per track, with every other event delta clamped to at most one
// tick so the trimmed file stays well-formed.
func Trim(mf *smf.SMF, maxNoteEvents int) *smf.SMF {
	res := &smf.SMF{TimeFormat: mf.TimeFormat}

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var numNoteOnOff int

	trackEventLoop:
		for _, evt := range track {
			switch {
			case evt.Message.Is(midi.NoteOnMsg), evt.Message.Is(midi.NoteOffMsg):
				if numNoteOnOff >= maxNoteEvents {
					newTrack.Close(0)
					break trackEventLoop
				}
				newTrack = append(newTrack, evt)
				numNoteOnOff++
			default:
				evt.Delta = minUint32(evt.Delta, 1)
				newTrack = append(newTrack, evt)
			}
		}

		res.Tracks = append(res.Tracks, newTrack)
	}

	return res
}

func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
