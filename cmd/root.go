package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "basic-pitch",
	Short: "Automatic music transcription",
	Long:  `basic-pitch decodes note events and pitch-bend curves out of raw audio, and can serve the same pipeline over HTTP.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
