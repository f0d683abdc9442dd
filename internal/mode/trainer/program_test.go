package trainer

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/helixdojo/internal/challenge"
	"github.com/zjrosen/helixdojo/internal/config"
	"github.com/zjrosen/helixdojo/internal/progress"
)

func waitForText(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte(text))
	}, teatest.WithDuration(3*time.Second), teatest.WithCheckInterval(20*time.Millisecond))
}

// TestProgram_SolveFromMenu drives the full program: pick a challenge from
// the menu, solve it and check the board picked up the result
func TestProgram_SolveFromMenu(t *testing.T) {
	catalog, err := challenge.Builtin()
	require.NoError(t, err)
	board := progress.NewBoard(0)

	tm := teatest.NewTestModel(t, New(Options{
		Catalog: catalog,
		Board:   board,
		Config:  config.Defaults(),
	}), teatest.WithInitialTermSize(120, 40))

	waitForText(t, tm, "Basic Movement")

	// third category is change, join-lines is its fourth entry
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	for range 3 {
		tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	}
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("J")
	// shown once the completion event reached the board
	waitForText(t, tm, "New best!")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	require.Equal(t, screenResult, final.screen)

	best, ok := board.Best("join-lines")
	require.True(t, ok)
	require.Equal(t, 3, best.Stars)
}
