package cmd

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/spotify/basic-pitch-go/audioio"
	"github.com/spotify/basic-pitch-go/bucket"
	"github.com/spotify/basic-pitch-go/constants"
	"github.com/spotify/basic-pitch-go/file"
	"github.com/spotify/basic-pitch-go/fixture"
	"github.com/spotify/basic-pitch-go/midi"
	"github.com/spotify/basic-pitch-go/model"
	"github.com/spotify/basic-pitch-go/pipeline"
	"github.com/spotify/basic-pitch-go/progress"
	"github.com/spotify/basic-pitch-go/util"
)

var (
	transcribeDump      string
	transcribeWatch     bool
	transcribeOnset     float64
	transcribeFrame     float64
	transcribeNoMelodia bool
)

func init() {
	transcribeCmd.Flags().StringVar(&transcribeDump, "dump", "", "path to a gob-encoded []fixture.WindowOutput standing in for the model")
	transcribeCmd.Flags().BoolVar(&transcribeWatch, "watch", false, "render a live TUI progress bar instead of printed lines")
	transcribeCmd.Flags().Float64Var(&transcribeOnset, "onset-thresh", model.DefaultDecodeOptions().OnsetThresh, "onset peak threshold")
	transcribeCmd.Flags().Float64Var(&transcribeFrame, "frame-thresh", model.DefaultDecodeOptions().FrameThresh, "frame energy threshold")
	transcribeCmd.Flags().BoolVar(&transcribeNoMelodia, "no-melodia", false, "disable the melodia-trick continuation pass")
	rootCmd.AddCommand(transcribeCmd)
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [path]",
	Short: "Decodes one or more raw-PCM audio files into MIDI",
	Long:  `Decodes one or more raw-PCM audio files into MIDI files written under the output directory`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTranscribe(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func decodeOptions() model.DecodeOptions {
	opts := model.DefaultDecodeOptions()
	opts.OnsetThresh = transcribeOnset
	opts.FrameThresh = transcribeFrame
	opts.MelodiaTrick = !transcribeNoMelodia
	return opts
}

func hashSamples(samples []float32, opts model.DecodeOptions) string {
	h := sha256.New()
	for _, s := range samples {
		fmt.Fprintf(h, "%f", s)
	}
	b, _ := json.Marshal(opts)
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil))
}

func runTranscribe(path string) error {
	util.RecreateOutputDir()

	var paths []string
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		paths = util.GatherAllAudioPaths(path, 0)
	} else {
		paths = []string{path}
	}
	jobs := file.CreateJobNumMap(paths)

	if transcribeDump == "" {
		return fmt.Errorf("transcribe: no --dump fixture supplied; the inference engine is an external collaborator this module does not ship")
	}
	engine, err := fixture.LoadEngine(transcribeDump)
	if err != nil {
		return err
	}

	opts := decodeOptions()
	keys := util.GetKeys(jobs)
	for _, num := range keys {
		audioPath := jobs[num]
		if err := transcribeOne(num, audioPath, engine, opts); err != nil {
			return fmt.Errorf("transcribe: %s: %w", audioPath, err)
		}
	}
	return nil
}

func transcribeOne(num uint32, audioPath string, engine *fixture.Engine, opts model.DecodeOptions) error {
	samples, err := audioio.LoadF32(audioPath)
	if err != nil {
		return err
	}

	key := hashSamples(samples, opts)

	var printer *progress.Printer
	var updates chan float64
	var program *tea.Program
	if transcribeWatch {
		updates = make(chan float64, 1)
		tuiModel := progress.NewModel(filepath.Base(audioPath), len(samples), updates)
		program = tea.NewProgram(tuiModel)
		go program.Run()
	} else {
		printer = progress.NewPrinter(100, 200*time.Millisecond)
	}

	reportFn := func(frac float64) {
		if transcribeWatch {
			select {
			case updates <- frac:
			default:
			}
		} else {
			printer.Fraction(frac)
		}
	}

	notes, err := pipeline.Transcribe(samples, constants.AudioSampleRate, engine, opts, reportFn)
	if transcribeWatch {
		close(updates)
	}
	if err != nil {
		return err
	}

	if err := bucket.Append(model.CacheEntry{Key: key, Notes: notes}); err != nil {
		return err
	}

	midiBytes, err := midi.Write(notes, 120)
	if err != nil {
		return err
	}

	outPath := filepath.Join(constants.OutDir(), strconv.Itoa(int(num))+".mid")
	if err := os.WriteFile(outPath, midiBytes, 0666); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Printf("wrote %s (%d notes)\n", outPath, len(notes))
	return nil
}
