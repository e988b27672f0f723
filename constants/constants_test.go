package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutDirDefaultsWhenUnset(t *testing.T) {
	t.Setenv("BASIC_PITCH_OUT_DIR", "")
	assert.Equal(t, "./out", OutDir())
}

func TestOutDirHonorsEnvOverride(t *testing.T) {
	t.Setenv("BASIC_PITCH_OUT_DIR", "/tmp/custom-out")
	assert.Equal(t, "/tmp/custom-out", OutDir())
}

func TestDynamoRegionDefaultsToLocalhost(t *testing.T) {
	t.Setenv("BASIC_PITCH_DYNAMODB_REGION", "")
	assert.Equal(t, "localhost", DynamoRegion())
}

func TestDynamoEndpointEmptyByDefault(t *testing.T) {
	t.Setenv("BASIC_PITCH_DYNAMODB_ENDPOINT", "")
	assert.Equal(t, "", DynamoEndpoint())
}

func TestDerivedConstantsAreConsistent(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(86, AnnotationsFPS)
	assert.Equal(43844, AudioNSamples)
	assert.Equal(7680, OverlapLengthFrames)
	assert.Equal(36164, HopSize)
	assert.Equal(172, AnnotNFrames)
	assert.Equal(88, NFreqBins)
	assert.Equal(264, NFreqBinsContours)
}
