// Package toaster shows short notices over the bottom of the screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/helixdojo/internal/ui/overlay"
	"github.com/zjrosen/helixdojo/internal/ui/styles"
)

// DefaultDuration is how long a notice stays up.
const DefaultDuration = 3 * time.Second

// Style determines the border color of the toast.
type Style int

const (
	StyleInfo Style = iota
	StyleSuccess
	StyleError
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	seq     int
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// DismissMsg hides the toast it was scheduled for. A newer toast ignores
// dismissals meant for older ones.
type DismissMsg struct {
	seq int
}

// Show displays message and schedules its dismissal after d.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.seq++
	m.message = message
	m.style = style
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{seq: seq} })
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		m.message = ""
	}
	return m
}

// Message returns the visible text, empty when hidden.
func (m Model) Message() string {
	return m.message
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.message != ""
}

// View renders the toast box.
func (m Model) View() string {
	if m.message == "" {
		return ""
	}
	border := styles.BorderFocusColor
	switch m.style {
	case StyleSuccess:
		border = styles.StatusSuccessColor
	case StyleError:
		border = styles.StatusErrorColor
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(m.message)
}

// Overlay draws the toast near the bottom of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}
