package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRowsAndAt(t *testing.T) {
	m := FromRows([][]float64{{1, 2}, {3, 4}})
	assert.Equal(t, 1.0, m.At(0, 0))
	assert.Equal(t, 4.0, m.At(1, 1))
}

func TestZeroColumnsFromAndUpTo(t *testing.T) {
	m := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	m.ZeroColumnsFrom(2)
	assert.Equal(t, []float64{1, 2, 0, 4, 5, 0}, m.Flatten())

	m2 := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	m2.ZeroColumnsUpTo(1)
	assert.Equal(t, []float64{0, 2, 3, 0, 5, 6}, m2.Flatten())
}

func TestShiftRowsDownKeepsRowCount(t *testing.T) {
	m := FromRows([][]float64{{1}, {2}, {3}})
	shifted := ShiftRowsDown(m, 1)
	assert.Equal(t, 3, shifted.Rows())
	assert.Equal(t, []float64{0, 1, 2}, shifted.Flatten())
}

func TestElementwiseMinMax(t *testing.T) {
	a := FromRows([][]float64{{1, 5}})
	b := FromRows([][]float64{{3, 2}})
	assert.Equal(t, []float64{1, 2}, ElementwiseMin(a, b).Flatten())
	assert.Equal(t, []float64{3, 5}, ElementwiseMax(a, b).Flatten())
}

func TestCloneIsIndependent(t *testing.T) {
	m := FromRows([][]float64{{1, 2}})
	c := m.Clone()
	c.Set(0, 0, 99)
	assert.Equal(t, 1.0, m.At(0, 0))
	assert.Equal(t, 99.0, c.At(0, 0))
}

func TestGlobalMaxEmpty(t *testing.T) {
	_, ok := New(0, 0).GlobalMax()
	assert.False(t, ok)
}
