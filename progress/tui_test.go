package progress

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestUpdateOnTickMsgSetsFraction(t *testing.T) {
	m := NewModel("transcribing", 10, nil)

	next, cmd := m.Update(TickMsg(0.4))

	got := next.(Model)
	assert := assert.New(t)
	assert.InDelta(0.4, got.fraction, 1e-9)
	assert.NotNil(cmd)
}

func TestUpdateOnDoneMsgQuits(t *testing.T) {
	m := NewModel("transcribing", 10, nil)

	next, cmd := m.Update(DoneMsg{Completed: 10, Total: 10})

	got := next.(Model)
	assert := assert.New(t)
	assert.True(got.done)
	assert.Equal(1.0, got.fraction)
	assert.NotNil(cmd)
}

func TestUpdateOnQuitKeyReturnsQuitCmd(t *testing.T) {
	m := NewModel("transcribing", 10, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd)
}

func TestViewRendersLabelAndPercentage(t *testing.T) {
	m := NewModel("transcribing", 10, nil)
	m.fraction = 0.5

	view := m.View()
	assert.True(t, strings.Contains(view, "transcribing"))
	assert.True(t, strings.Contains(view, "50%"))
}
