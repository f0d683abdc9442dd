package trainer

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/helixdojo/internal/engine"
	"github.com/zjrosen/helixdojo/internal/ui/styles"
)

// renderBuffer draws the buffer with a line number gutter, selections and
// the cursor. Tabs are drawn as single spaces so columns stay aligned with
// grapheme positions.
func renderBuffer(snap engine.Snapshot) string {
	gutter := len(fmt.Sprint(len(snap.Lines)))
	out := make([]string, len(snap.Lines))

	for li, line := range snap.Lines {
		var b strings.Builder
		b.WriteString(styles.LineNumberStyle.Render(fmt.Sprintf("%*d ", gutter, li+1)))

		col := 0
		g := uniseg.NewGraphemes(line)
		for g.Next() {
			cell := g.Str()
			if cell == "\t" {
				cell = " "
			}
			b.WriteString(styleCell(snap, engine.Position{Line: li, Column: col}).Render(cell))
			col++
		}

		// The cell after the last grapheme shows the cursor at line end and
		// a selected line break.
		end := engine.Position{Line: li, Column: col}
		if end == snap.Cursor || (li < len(snap.Lines)-1 && selected(snap.Selections, end)) {
			b.WriteString(styleCell(snap, end).Render(" "))
		}
		out[li] = b.String()
	}
	return strings.Join(out, "\n")
}

func styleCell(snap engine.Snapshot, p engine.Position) styleRenderer {
	switch {
	case p == snap.Cursor:
		return styles.CursorStyle
	case selected(snap.Selections, p):
		return styles.SelectionStyle
	default:
		return plain{}
	}
}

// styleRenderer is satisfied by lipgloss.Style.
type styleRenderer interface {
	Render(strs ...string) string
}

type plain struct{}

func (plain) Render(strs ...string) string { return strings.Join(strs, "") }

// selected reports whether p lies inside any half-open selection.
func selected(sels engine.Selections, p engine.Position) bool {
	for _, s := range sels {
		if s.Start.Compare(p) <= 0 && p.Compare(s.End) < 0 {
			return true
		}
	}
	return false
}

// padRight pads s with spaces to width terminal cells.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
