package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateJobNumMapAssignsSequentialNumbers(t *testing.T) {
	got := CreateJobNumMap([]string{"a.f32", "b.f32", "c.f32"})

	assert := assert.New(t)
	assert.Len(got, 3)
	assert.Equal("a.f32", got[0])
	assert.Equal("b.f32", got[1])
	assert.Equal("c.f32", got[2])
}

func TestCreateJobNumMapEmpty(t *testing.T) {
	got := CreateJobNumMap(nil)
	assert.Empty(t, got)
}
