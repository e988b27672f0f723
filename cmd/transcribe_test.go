package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spotify/basic-pitch-go/model"
)

func TestDecodeOptionsAppliesFlagsOverDefaults(t *testing.T) {
	origOnset, origFrame, origNoMelodia := transcribeOnset, transcribeFrame, transcribeNoMelodia
	defer func() {
		transcribeOnset, transcribeFrame, transcribeNoMelodia = origOnset, origFrame, origNoMelodia
	}()

	transcribeOnset = 0.7
	transcribeFrame = 0.4
	transcribeNoMelodia = true

	opts := decodeOptions()

	assert := assert.New(t)
	assert.Equal(0.7, opts.OnsetThresh)
	assert.Equal(0.4, opts.FrameThresh)
	assert.False(opts.MelodiaTrick)
	assert.Equal(model.DefaultDecodeOptions().MinNoteLen, opts.MinNoteLen)
}

func TestHashSamplesIsDeterministic(t *testing.T) {
	samples := []float32{0.1, 0.2, 0.3}
	opts := model.DefaultDecodeOptions()

	a := hashSamples(samples, opts)
	b := hashSamples(samples, opts)
	assert.Equal(t, a, b)
}

func TestHashSamplesDiffersOnOptionsOrSamples(t *testing.T) {
	samples := []float32{0.1, 0.2, 0.3}
	opts := model.DefaultDecodeOptions()

	base := hashSamples(samples, opts)

	otherOpts := opts
	otherOpts.OnsetThresh = 0.9
	assert.NotEqual(t, base, hashSamples(samples, otherOpts))

	assert.NotEqual(t, base, hashSamples([]float32{0.9, 0.2, 0.3}, opts))
}
