package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgMaxTiesBreakLowestIndex(t *testing.T) {
	assert := assert.New(t)

	idx, ok := ArgMax([]float64{0.1, 0.9, 0.9, 0.3})
	assert.True(ok)
	assert.Equal(1, idx)
}

func TestArgMaxEmpty(t *testing.T) {
	_, ok := ArgMax(nil)
	assert.False(t, ok)
}

func TestArgMaxAxis1(t *testing.T) {
	rows := [][]float64{{0.1, 0.5}, {0.9, 0.2}, {0.0, 0.0}}
	assert.Equal(t, []int{1, 0, 0}, ArgMaxAxis1(rows))
}

func TestWhereGreaterThanAxis1(t *testing.T) {
	rows := [][]float64{{0.1, 0.6}, {0.0, 0.0}, {0.7, 0.0}}
	rowIdx, colIdx := WhereGreaterThanAxis1(rows, 0.5)
	assert.Equal(t, []int{0, 2}, rowIdx)
	assert.Equal(t, []int{1, 0}, colIdx)
}

func TestMeanStdDev(t *testing.T) {
	mean, std := MeanStdDev([][]float64{{2, 4}, {4, 6}})
	assert.InDelta(t, 4, mean, 1e-9)
	assert.Greater(t, std, 0.0)
}

func TestMeanStdDevSingleSample(t *testing.T) {
	mean, std := MeanStdDev([][]float64{{2, 4}})
	assert.InDelta(t, 3, mean, 1e-9)
	assert.Equal(t, 0.0, std)
}

func TestArgRelMaxStrictAndEdgeClipped(t *testing.T) {
	rows := [][]float64{
		{0.1},
		{0.9},
		{0.2},
		{0.9},
		{0.9},
		{0.1},
	}
	rowIdx, colIdx := ArgRelMax(rows, 1)
	assert.Equal(t, []int{1}, rowIdx)
	assert.Equal(t, []int{0}, colIdx)
}

func TestGaussianSymmetricAndPeaked(t *testing.T) {
	g := Gaussian(5, 1)
	assert.Len(t, g, 5)
	assert.InDelta(t, g[0], g[4], 1e-9)
	assert.InDelta(t, g[1], g[3], 1e-9)
	for _, v := range g[:2] {
		assert.Less(t, v, g[2])
	}
}

func TestHzMidiRoundTrip(t *testing.T) {
	hz := MidiToHz(69)
	assert.InDelta(t, 440.0, hz, 1e-6)
	assert.InDelta(t, 69.0, HzToMidi(hz), 1e-9)
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-9)
}

func TestMeanEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
}
