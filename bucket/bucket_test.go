package bucket

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spotify/basic-pitch-go/model"
)

func useTempOutDir(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("BASIC_PITCH_OUT_DIR", dir)
	return dir
}

func TestAppendThenReadEntriesRoundTrips(t *testing.T) {
	useTempOutDir(t)

	entries := []model.CacheEntry{
		{Key: "abcdef0123", Notes: []model.NoteEventTime{{StartTimeSeconds: 0, DurationSeconds: 1, PitchMIDI: 60}}},
		{Key: "abc1110000", Notes: []model.NoteEventTime{{StartTimeSeconds: 1, DurationSeconds: 2, PitchMIDI: 64}}},
	}
	for _, e := range entries {
		assert.NoError(t, Append(e))
	}

	paths, err := Paths()
	assert.NoError(t, err)
	assert.Len(t, paths, 1, "both keys share the abc prefix, so they land in the same bucket file")

	got, err := ReadEntries(paths[0])
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, entries[0].Key, got[0].Key)
	assert.Equal(t, entries[1].Key, got[1].Key)
}

func TestAppendKeysWithDifferentPrefixesGoToDifferentBuckets(t *testing.T) {
	useTempOutDir(t)

	assert.NoError(t, Append(model.CacheEntry{Key: "aaa000"}))
	assert.NoError(t, Append(model.CacheEntry{Key: "bbb000"}))

	paths, err := Paths()
	assert.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestDeleteAllRemovesEveryBucketFile(t *testing.T) {
	dir := useTempOutDir(t)
	assert.NoError(t, os.MkdirAll(dir, 0777))
	assert.NoError(t, Append(model.CacheEntry{Key: "ccc000"}))

	assert.NoError(t, DeleteAll())

	paths, err := Paths()
	assert.NoError(t, err)
	assert.Empty(t, paths)

	_, err = os.Stat(filepath.Join(dir, "ccc.dat"))
	assert.True(t, os.IsNotExist(err))
}
