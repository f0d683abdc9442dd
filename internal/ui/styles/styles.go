// Package styles contains Lip Gloss style definitions.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/helixdojo/internal/challenge"
	"github.com/zjrosen/helixdojo/internal/engine"
)

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // hints, help text, footers
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#54A0FF"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#E5A50A", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Mode badge backgrounds (Catppuccin Mocha)
	ModeNormalColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // blue
	ModeInsertColor = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"} // green
	ModeSelectColor = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // mauve
	ModeMatchColor  = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FAB387"} // peach
	ModeTextColor   = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

	// Buffer highlighting
	SelectionBgColor = lipgloss.AdaptiveColor{Light: "#BCC0CC", Dark: "#45475A"}
	CursorBgColor    = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#F5E0DC"}
	CursorFgColor    = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
	LineNumberColor  = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(BorderFocusColor)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)

	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	DescriptionStyle = lipgloss.NewStyle().Foreground(TextDescriptionColor)

	SelectionStyle = lipgloss.NewStyle().Background(SelectionBgColor)

	CursorStyle = lipgloss.NewStyle().Background(CursorBgColor).Foreground(CursorFgColor)

	LineNumberStyle = lipgloss.NewStyle().Foreground(LineNumberColor)

	PendingStyle = lipgloss.NewStyle().Foreground(StatusWarningColor).Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor).Bold(true)

	// Diff segments
	DiffMissingStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor).Underline(true)
	DiffExtraStyle   = lipgloss.NewStyle().Foreground(StatusErrorColor).Strikethrough(true)

	StarStyle      = lipgloss.NewStyle().Foreground(StatusWarningColor)
	EmptyStarStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	baseModeStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(ModeTextColor)
)

// ModeStyle returns the badge style for a mode.
func ModeStyle(kind engine.ModeKind) lipgloss.Style {
	switch kind {
	case engine.ModeInsert:
		return baseModeStyle.Background(ModeInsertColor)
	case engine.ModeSelect:
		return baseModeStyle.Background(ModeSelectColor)
	case engine.ModeMatch:
		return baseModeStyle.Background(ModeMatchColor)
	default:
		return baseModeStyle.Background(ModeNormalColor)
	}
}

// DifficultyColor returns the color for a difficulty label.
func DifficultyColor(d challenge.Difficulty) lipgloss.TerminalColor {
	switch d {
	case challenge.Easy:
		return StatusSuccessColor
	case challenge.Medium:
		return StatusWarningColor
	case challenge.Hard:
		return StatusErrorColor
	default:
		return TextMutedColor
	}
}

// DifficultyStyle returns the style for a difficulty label.
func DifficultyStyle(d challenge.Difficulty) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(DifficultyColor(d))
}
