package styles

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/helixdojo/internal/challenge"
	"github.com/zjrosen/helixdojo/internal/engine"
)

func TestRenderPanel_Basic(t *testing.T) {
	result := RenderPanel("content", "Title", 20, 5, false)

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Title")
	assert.Contains(t, lines[0], "╭")
	assert.Contains(t, lines[4], "╯")
	assert.Contains(t, lines[1], "content")

	for i, line := range lines {
		assert.Equal(t, 20, lipgloss.Width(line), "line %d", i)
	}
}

func TestRenderPanel_FitsContent(t *testing.T) {
	result := RenderPanel("a\nb\nc", "", 10, 0, true)
	require.Len(t, strings.Split(result, "\n"), 5)
}

func TestRenderPanel_TruncatesLongLines(t *testing.T) {
	result := RenderPanel(strings.Repeat("x", 50), "A very long title indeed", 12, 3, false)
	for _, line := range strings.Split(result, "\n") {
		assert.Equal(t, 12, lipgloss.Width(line))
	}
	assert.Contains(t, result, "...")
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{in: "hello", max: 10, want: "hello"},
		{in: "hello world", max: 8, want: "hello..."},
		{in: "hello", max: 3, want: "..."},
		{in: "hello", max: 0, want: ""},
		{in: "日本語テキスト", max: 7, want: "日本..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateString(tt.in, tt.max), "%q/%d", tt.in, tt.max)
	}
}

func TestTruncateString_KeepsStyling(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("styled text here")
	got := TruncateString(styled, 9)
	assert.Equal(t, 9, ansi.StringWidth(got))
	assert.Equal(t, "styled...", ansi.Strip(got))
}

func TestFormatStars(t *testing.T) {
	assert.Equal(t, "★★☆", ansi.Strip(FormatStars(2)))
	assert.Equal(t, "★★★", ansi.Strip(FormatStars(5)))
	assert.Equal(t, "☆☆☆", ansi.Strip(FormatStars(-1)))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0:00", FormatElapsed(0))
	assert.Equal(t, "0:45", FormatElapsed(45*time.Second+900*time.Millisecond))
	assert.Equal(t, "2:05", FormatElapsed(125*time.Second))
	assert.Equal(t, "0:00", FormatElapsed(-time.Second))
}

func TestModeStyle_DistinctPerMode(t *testing.T) {
	kinds := []engine.ModeKind{engine.ModeNormal, engine.ModeInsert, engine.ModeSelect, engine.ModeMatch}
	seen := map[lipgloss.TerminalColor]bool{}
	for _, k := range kinds {
		seen[ModeStyle(k).GetBackground()] = true
	}
	assert.Len(t, seen, len(kinds))
}

func TestDifficultyColor(t *testing.T) {
	assert.Equal(t, StatusSuccessColor, DifficultyColor(challenge.Easy))
	assert.Equal(t, StatusWarningColor, DifficultyColor(challenge.Medium))
	assert.Equal(t, StatusErrorColor, DifficultyColor(challenge.Hard))
	assert.Equal(t, TextMutedColor, DifficultyColor(challenge.Difficulty("legendary")))
}
