package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spotify/basic-pitch-go/chunk"
	"github.com/spotify/basic-pitch-go/midi"
	"github.com/spotify/basic-pitch-go/util"
)

var inspectAsMidi bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectAsMidi, "midi", false, "treat path as a standard MIDI file instead of a cache shard")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [path]",
	Short: "Prints the contents of a cache shard or MIDI file",
	Long:  `Prints the contents of a cache shard or MIDI file`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		if inspectAsMidi {
			err = inspectMidi(args[0])
		} else {
			err = inspectShard(args[0])
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func inspectShard(path string) error {
	f := util.OpenFileOrPanic(path)
	defer f.Close()

	index, _, err := chunk.ReadIndex(f)
	if err != nil {
		return err
	}

	keys := util.GetKeys(index)
	for _, key := range keys {
		val := index[key]
		fmt.Printf("key: %v\n", key)
		fmt.Printf("range: [%d, %d)\n", val.Start, val.End)
	}
	return nil
}

func inspectMidi(path string) error {
	s, err := midi.ReadFile(path)
	if err != nil {
		return err
	}

	notes, err := midi.ExtractNotes(s)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
