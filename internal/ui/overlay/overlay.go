// Package overlay draws one block of styled text on top of another.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position is where the foreground lands in the viewport.
type Position int

const (
	// Center places the foreground in the middle of the viewport.
	Center Position = iota
	// Bottom centers the foreground horizontally, PadY lines above the
	// bottom edge.
	Bottom
)

// Config describes the viewport.
type Config struct {
	Width    int
	Height   int
	Position Position
	PadY     int
}

// Place splices fg into bg. Both may contain ANSI styling; the background
// is padded to Height lines first.
func Place(cfg Config, fg, bg string) string {
	front := strings.Split(fg, "\n")
	back := strings.Split(bg, "\n")
	for len(back) < cfg.Height {
		back = append(back, strings.Repeat(" ", cfg.Width))
	}

	x, y := origin(cfg, lipgloss.Width(fg), len(front))
	for i, line := range front {
		row := y + i
		if row >= len(back) {
			break
		}
		back[row] = splice(back[row], line, x)
	}
	return strings.Join(back, "\n")
}

// splice replaces the cells of bg starting at column x with fg.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	var right string
	if end := x + ansi.StringWidth(fg); end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

func origin(cfg Config, w, h int) (int, int) {
	x := max((cfg.Width-w)/2, 0)
	switch cfg.Position {
	case Bottom:
		return x, max(cfg.Height-h-cfg.PadY, 0)
	default:
		return x, max((cfg.Height-h)/2, 0)
	}
}
