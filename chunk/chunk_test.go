package chunk

import (
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spotify/basic-pitch-go/bucket"
	"github.com/spotify/basic-pitch-go/constants"
	"github.com/spotify/basic-pitch-go/model"
)

func useTempOutDir(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("BASIC_PITCH_OUT_DIR", dir)
	return dir
}

func TestCreateAllProducesAReadableShard(t *testing.T) {
	useTempOutDir(t)

	entries := map[string]model.CacheEntry{
		"aaa0001": {Key: "aaa0001", Notes: []model.NoteEventTime{{StartTimeSeconds: 0, DurationSeconds: 1, PitchMIDI: 60}}},
		"bbb0002": {Key: "bbb0002", Notes: []model.NoteEventTime{{StartTimeSeconds: 1, DurationSeconds: 2, PitchMIDI: 64}}},
	}
	for _, e := range entries {
		assert.NoError(t, bucket.Append(e))
	}

	overviews, err := CreateAll()
	assert.NoError(t, err)
	assert.Len(t, overviews, 1)

	f, err := os.Open(constants.OutDir() + "/" + overviews[0].Filename)
	assert.NoError(t, err)
	defer f.Close()

	index, _, err := ReadIndex(f)
	assert.NoError(t, err)
	assert.Len(t, index, 2)

	dataBytes, err := io.ReadAll(f)
	assert.NoError(t, err)

	for key, want := range entries {
		br, ok := index[key]
		assert.True(t, ok, "missing index entry for %s", key)

		var got model.CacheEntry
		assert.NoError(t, json.Unmarshal(dataBytes[br.Start:br.End], &got))
		assert.Equal(t, want.Key, got.Key)
		assert.Equal(t, want.Notes, got.Notes)
	}
}
