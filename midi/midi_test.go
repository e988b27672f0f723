package midi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spotify/basic-pitch-go/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestWriteThenExtractRoundTrips(t *testing.T) {
	notes := []model.NoteEventTime{
		{StartTimeSeconds: 0.0, DurationSeconds: 0.5, PitchMIDI: 60, Amplitude: 0.9},
		{StartTimeSeconds: 0.5, DurationSeconds: 0.5, PitchMIDI: 64, Amplitude: 0.6},
		{StartTimeSeconds: 1.0, DurationSeconds: 1.0, PitchMIDI: 67, Amplitude: 0.3},
	}

	raw, err := Write(notes, 120)
	assert.NoError(t, err)
	assert.NotEmpty(t, raw)

	parsed, err := smf.ReadFrom(bytes.NewReader(raw))
	assert.NoError(t, err)

	got, err := ExtractNotes(parsed)
	assert.NoError(t, err)

	assert := assert.New(t)
	assert.Len(got, len(notes))
	for i, want := range notes {
		assert.Equal(want.PitchMIDI, got[i].PitchMIDI)
		assert.InDelta(want.StartTimeSeconds, got[i].StartTimeSeconds, 0.002)
		assert.InDelta(want.DurationSeconds, got[i].DurationSeconds, 0.002)
		assert.InDelta(want.Amplitude, got[i].Amplitude, 0.01)
	}
}

func TestWriteScalesAmplitudeToVelocityByte(t *testing.T) {
	notes := []model.NoteEventTime{
		{StartTimeSeconds: 0, DurationSeconds: 0.5, PitchMIDI: 60, Amplitude: 0.5},
		{StartTimeSeconds: 1, DurationSeconds: 0.5, PitchMIDI: 64, Amplitude: 0.25},
	}

	raw, err := Write(notes, 120)
	assert.NoError(t, err)

	parsed, err := smf.ReadFrom(bytes.NewReader(raw))
	assert.NoError(t, err)

	var velocities []uint8
	for _, events := range parsed.Tracks {
		for _, event := range events {
			var channel, key, velocity uint8
			if event.Message.GetNoteOn(&channel, &key, &velocity) {
				velocities = append(velocities, velocity)
			}
		}
	}

	assert.Equal(t, []uint8{63, 31}, velocities)
}

func TestWriteSpreadsPitchBendsAcrossNoteDuration(t *testing.T) {
	notes := []model.NoteEventTime{
		{StartTimeSeconds: 0, DurationSeconds: 1, PitchMIDI: 69, PitchBends: []int{0, 1, 2, 1, 0}},
	}

	raw, err := Write(notes, 120)
	assert.NoError(t, err)

	parsed, err := smf.ReadFrom(bytes.NewReader(raw))
	assert.NoError(t, err)

	var bendCount int
	for _, events := range parsed.Tracks {
		for _, event := range events {
			raw := []byte(event.Message)
			if len(raw) > 0 && raw[0]&0xF0 == 0xE0 {
				bendCount++
			}
		}
	}
	assert.Equal(t, 5, bendCount)
}

func TestExtractNotesRejectsUnmatchedNoteOff(t *testing.T) {
	s := smf.New()
	var track smf.Track
	track.Add(0, midi.NoteOff(0, 60))
	track.Close(0)
	_ = s.Add(track)

	_, err := ExtractNotes(s)
	assert.Error(t, err)
}
