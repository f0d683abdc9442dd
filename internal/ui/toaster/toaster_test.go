package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()
	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m, cmd := New().Show("Hello", StyleSuccess, time.Millisecond)
	require.NotNil(t, cmd)
	assert.True(t, m.Visible())
	assert.Equal(t, "Hello", m.Message())
	assert.Contains(t, m.View(), "Hello")
}

func TestDismiss(t *testing.T) {
	m, cmd := New().Show("Hello", StyleInfo, time.Millisecond)
	m = m.Update(cmd())
	assert.False(t, m.Visible())
}

func TestDismiss_IgnoresStale(t *testing.T) {
	m, first := New().Show("First", StyleInfo, time.Millisecond)
	m, _ = m.Show("Second", StyleError, time.Millisecond)

	m = m.Update(first())
	assert.True(t, m.Visible())
	assert.Equal(t, "Second", m.Message())
}

func TestOverlay(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 30)+"\n", 9) + strings.Repeat(".", 30)

	assert.Equal(t, bg, New().Overlay(bg, 30, 10))

	m, _ := New().Show("saved", StyleSuccess, time.Second)
	out := m.Overlay(bg, 30, 10)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	assert.Contains(t, lines[7], "saved")
	assert.Equal(t, strings.Repeat(".", 30), lines[0])
}
