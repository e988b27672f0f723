package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	gomidi "github.com/spotify/basic-pitch-go/midi"
)

func init() {
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play [midi-file]",
	Short: "Plays a decoded MIDI file out to a live MIDI device, for manual QA",
	Long:  `Plays a decoded MIDI file out to a live MIDI device, for manual QA`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPlay(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

type scheduledMsg struct {
	at  time.Duration
	msg midi.Message
}

func runPlay(path string) error {
	s, err := gomidi.ReadFile(path)
	if err != nil {
		return err
	}

	notes, err := gomidi.ExtractNotes(s)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Println("no notes to play")
		return nil
	}

	defer midi.CloseDriver()
	out, err := midi.OutPort(0)
	if err != nil {
		return fmt.Errorf("play: no MIDI output device available: %w", err)
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return fmt.Errorf("play: could not open output port: %w", err)
	}

	var events []scheduledMsg
	for _, n := range notes {
		start := time.Duration(n.StartTimeSeconds * float64(time.Second))
		end := time.Duration((n.StartTimeSeconds + n.DurationSeconds) * float64(time.Second))
		events = append(events,
			scheduledMsg{at: start, msg: midi.NoteOn(0, uint8(n.PitchMIDI), 100)},
			scheduledMsg{at: end, msg: midi.NoteOff(0, uint8(n.PitchMIDI))},
		)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].at < events[j].at })

	var elapsed time.Duration
	for _, evt := range events {
		if wait := evt.at - elapsed; wait > 0 {
			time.Sleep(wait)
			elapsed += wait
		}
		if err := send(evt.msg); err != nil {
			return fmt.Errorf("play: sending message: %w", err)
		}
	}

	return nil
}
