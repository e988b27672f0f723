package fixture

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spotify/basic-pitch-go/util"
)

func TestEngineReplaysWindowsInOrder(t *testing.T) {
	windows := []WindowOutput{
		{Frames: [][]float64{{1}}, Onsets: [][]float64{{0.1}}, Contours: [][]float64{{9}}},
		{Frames: [][]float64{{2}}, Onsets: [][]float64{{0.2}}, Contours: [][]float64{{8}}},
	}
	engine := NewEngine(windows)

	frames, onsets, contours, err := engine.Execute(nil)
	assert.NoError(t, err)
	assert.Equal(t, [][]float64{{1}}, frames)
	assert.Equal(t, [][]float64{{0.1}}, onsets)
	assert.Equal(t, [][]float64{{9}}, contours)

	frames, _, _, err = engine.Execute(nil)
	assert.NoError(t, err)
	assert.Equal(t, [][]float64{{2}}, frames)
}

func TestEngineErrorsOncePrecomputedOutputIsExhausted(t *testing.T) {
	engine := NewEngine([]WindowOutput{{Frames: [][]float64{{1}}}})
	_, _, _, err := engine.Execute(nil)
	assert.NoError(t, err)

	_, _, _, err = engine.Execute(nil)
	assert.Error(t, err)
}

func TestLoadEngineReadsGobEncodedWindows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "windows.gob")
	want := []WindowOutput{{Frames: [][]float64{{1, 2}}, Onsets: [][]float64{{0.5, 0.6}}, Contours: [][]float64{{3, 4}}}}
	assert.NoError(t, util.CreateBinary(path, want))

	engine, err := LoadEngine(path)
	assert.NoError(t, err)

	frames, onsets, contours, err := engine.Execute(nil)
	assert.NoError(t, err)
	assert.Equal(t, want[0].Frames, frames)
	assert.Equal(t, want[0].Onsets, onsets)
	assert.Equal(t, want[0].Contours, contours)
}

func TestLoadEngineMissingFile(t *testing.T) {
	_, err := LoadEngine(filepath.Join(t.TempDir(), "missing.gob"))
	assert.Error(t, err)
}
