package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlace_Center(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	lines := strings.Split(Place(Config{Width: 5, Height: 3}, "X", bg), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "AAAAA", lines[0])
	assert.Equal(t, "AAXAA", lines[1])
	assert.Equal(t, "AAAAA", lines[2])
}

func TestPlace_Bottom(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA\nAAAAA"
	lines := strings.Split(Place(Config{Width: 5, Height: 4, Position: Bottom, PadY: 1}, "XXX", bg), "\n")

	assert.Equal(t, "AXXXA", lines[2])
	assert.Equal(t, "AAAAA", lines[3])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	lines := strings.Split(Place(Config{Width: 4, Height: 3}, "XX", "AB"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "AB", lines[0])
	assert.Equal(t, " XX ", lines[1])
}

func TestPlace_ForegroundWiderThanViewport(t *testing.T) {
	lines := strings.Split(Place(Config{Width: 3, Height: 1}, "XXXXX", "AAA"), "\n")
	assert.Equal(t, "XXXXX", lines[0])
}

func TestPlace_KeepsStyledBackground(t *testing.T) {
	style := lipgloss.NewStyle().Bold(true)
	bg := style.Render("AAAAA")
	out := Place(Config{Width: 5, Height: 1}, "X", bg)

	assert.Equal(t, "AAXAA", ansi.Strip(out))
}
