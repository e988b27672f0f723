// Package midi turns decoded note events into MIDI bytes and back. Writing
// uses gitlab.com/gomidi/midi/v2/smf directly; reading reuses the teacher's
// ReadMidiFile panic-recovery pattern (the underlying smf parser panics on
// malformed input rather than returning an error) and its tick-walking
// event reduction, repurposed here to recover NoteEventTime values instead
// of chord keys.
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/spotify/basic-pitch-go/constants"
	"github.com/spotify/basic-pitch-go/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadFile parses a MIDI file from disk, recovering from the smf package's
// panics on malformed input.
// https://github.com/gomidi/midi/issues/20
func ReadFile(filepath string) (s *smf.SMF, e error) {
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}
	return res, nil
}

type tickEvent struct {
	tick      uint64
	isNoteOff bool
	pitch     uint8
	velocity  uint8
	isBend    bool
	bend      int16
}

// Write encodes notes as a single-track standard MIDI file at the given
// tempo and returns the raw bytes. Each note's pitch-bend curve is spread
// evenly across its own duration.
func Write(notes []model.NoteEventTime, bpm float64) ([]byte, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.MidiPPQ)

	var track smf.Track
	track.Add(0, smf.MetaTempo(bpm))
	track.Add(0, smf.MetaInstrument(constants.DefaultInstrument))

	ticksPerSecond := float64(constants.MidiPPQ) * bpm / 60

	var events []tickEvent
	for _, n := range notes {
		startTick := uint64(n.StartTimeSeconds * ticksPerSecond)
		endTick := uint64((n.StartTimeSeconds + n.DurationSeconds) * ticksPerSecond)
		if endTick <= startTick {
			endTick = startTick + 1
		}

		events = append(events, tickEvent{tick: startTick, pitch: uint8(n.PitchMIDI), velocity: amplitudeToVelocity(n.Amplitude)})
		for i, pb := range n.PitchBends {
			frac := float64(i) / float64(maxInt(1, len(n.PitchBends)))
			bendTick := startTick + uint64(float64(endTick-startTick)*frac)
			events = append(events, tickEvent{tick: bendTick, isBend: true, bend: pitchBendToUnits(pb)})
		}
		events = append(events, tickEvent{tick: endTick, isNoteOff: true, pitch: uint8(n.PitchMIDI)})
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].tick < events[j].tick })

	var lastTick uint64
	for _, evt := range events {
		delta := uint32(evt.tick - lastTick)
		lastTick = evt.tick
		switch {
		case evt.isBend:
			track.Add(delta, midi.Pitchbend(0, evt.bend))
		case evt.isNoteOff:
			track.Add(delta, midi.NoteOff(0, evt.pitch))
		default:
			track.Add(delta, midi.NoteOn(0, evt.pitch, evt.velocity))
		}
	}
	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("assembling midi track: %w", err)
	}

	buf := new(bytes.Buffer)
	if _, err := s.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("writing midi bytes: %w", err)
	}
	return buf.Bytes(), nil
}

// pitchBendToUnits converts a contour-bin offset in [-25, 25] into a 14-bit
// signed pitch-bend unit using a +-2-semitone bend range (4096 units per
// semitone, so 1365 units per contour bin at 3 bins/semitone).
func pitchBendToUnits(binOffset int) int16 {
	const unitsPerBin = 4096 / constants.ContoursBinsPerSemitone
	return int16(binOffset * unitsPerBin)
}

// amplitudeToVelocity scales a normalized [0,1] amplitude to a MIDI
// velocity byte, matching the reference pipeline's floor(amplitude*127).
func amplitudeToVelocity(amplitude float64) uint8 {
	v := int(math.Floor(amplitude * 127))
	switch {
	case v < 0:
		return 0
	case v > 127:
		return 127
	default:
		return uint8(v)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// reducedEvent is one note-on/note-off transition at an absolute time,
// used to reconstruct notes from a flat MIDI track. Grounded on the
// teacher's chord.GetChords tick-walking loop, adapted to emit whole notes
// instead of note-on-set snapshots.
type reducedEvent struct {
	offset    float64
	isNoteOff bool
	note      uint8
	velocity  uint8
}

// ExtractNotes reads every note-on/note-off pair out of s and returns them
// as NoteEventTime values, sorted by start time. Pitch-bend events are not
// reattached to individual notes.
func ExtractNotes(s *smf.SMF) ([]model.NoteEventTime, error) {
	var reduced []reducedEvent

	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			absTime := s.TimeAt(absTicks)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				reduced = append(reduced, reducedEvent{offset: float64(absTime) / 1e6, note: key, velocity: velocity})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				reduced = append(reduced, reducedEvent{offset: float64(absTime) / 1e6, isNoteOff: true, note: key})
			}
		}
	}

	sort.Slice(reduced, func(i, j int) bool {
		if reduced[i].offset != reduced[j].offset {
			return reduced[i].offset < reduced[j].offset
		}
		return reduced[i].isNoteOff
	})

	type startedNote struct {
		offset   float64
		velocity uint8
	}
	starts := make(map[uint8]startedNote)
	var notes []model.NoteEventTime
	for _, evt := range reduced {
		if evt.isNoteOff {
			start, ok := starts[evt.note]
			if !ok {
				return nil, fmt.Errorf("midi: note-off for pitch %d with no matching note-on", evt.note)
			}
			delete(starts, evt.note)
			notes = append(notes, model.NoteEventTime{
				StartTimeSeconds: start.offset,
				DurationSeconds:  evt.offset - start.offset,
				PitchMIDI:        int(evt.note),
				Amplitude:        float64(start.velocity) / 127,
			})
		} else {
			starts[evt.note] = startedNote{offset: evt.offset, velocity: evt.velocity}
		}
	}

	sort.Slice(notes, func(i, j int) bool { return notes[i].StartTimeSeconds < notes[j].StartTimeSeconds })
	return notes, nil
}
