package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters a live MIDI output driver for manual QA

	"github.com/spotify/basic-pitch-go/constants"
	"github.com/spotify/basic-pitch-go/fixture"
	"github.com/spotify/basic-pitch-go/midi"
	"github.com/spotify/basic-pitch-go/model"
	"github.com/spotify/basic-pitch-go/pipeline"
)

var servePort int
var serveDump string

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on")
	serveCmd.Flags().StringVar(&serveDump, "dump", "", "path to a gob-encoded []fixture.WindowOutput standing in for the model")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the transcription pipeline over HTTP",
	Long:  `Serves the transcription pipeline over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// handleTranscribe recovers from any panic raised inside the pipeline (an
// invariant violation, not a caller error) so one bad request never takes
// the whole server down, mirroring the teacher's midi.ReadMidiFile
// defer/recover at its one must-not-crash boundary.
func handleTranscribe(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", rec))
		}
	}()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	var input model.TranscribeRequestBody
	if err := json.Unmarshal(body, &input); err != nil {
		writeError(w, http.StatusBadRequest, "could not parse request body: "+err.Error())
		return
	}

	if input.SampleRate != constants.AudioSampleRate {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("sample_rate must be %d", constants.AudioSampleRate))
		return
	}

	opts := model.DefaultDecodeOptions()
	if input.Options != nil {
		opts = *input.Options
	}

	if serveDump == "" {
		writeError(w, http.StatusServiceUnavailable, "no inference engine configured")
		return
	}
	engine, err := fixture.LoadEngine(serveDump)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "could not load inference engine: "+err.Error())
		return
	}

	notes, err := pipeline.Transcribe(input.Samples, input.SampleRate, engine, opts, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	jobID := uuid.New().String()

	if r.Header.Get("Accept") == "audio/midi" {
		midiBytes, err := midi.Write(notes, 120)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "audio/midi")
		w.Header().Set("X-Job-Id", jobID)
		w.Write(midiBytes)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.TranscribeResponse{JobID: jobID, Notes: notes})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/transcribe", handleTranscribe).Methods("POST")

	handler := cors.AllowAll().Handler(router)

	addr := fmt.Sprintf(":%d", servePort)
	log.Printf("listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
