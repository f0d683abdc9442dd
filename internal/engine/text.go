package engine

import (
	"fmt"
	"strings"
)

// Position addresses a slot in a Text. Column is a grapheme index and may
// equal the line length, which is the slot after the last grapheme.
type Position struct {
	Line   int
	Column int
}

// Compare orders positions in document order.
func (p Position) Compare(o Position) int {
	switch {
	case p.Line < o.Line:
		return -1
	case p.Line > o.Line:
		return 1
	case p.Column < o.Column:
		return -1
	case p.Column > o.Column:
		return 1
	default:
		return 0
	}
}

// Less reports whether p comes before o.
func (p Position) Less(o Position) bool {
	return p.Compare(o) < 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Text is an immutable buffer of lines. Edits return a new Text.
// A Text always has at least one line.
type Text struct {
	lines []string
}

// NewText splits s on "\n". Carriage returns are kept as ordinary
// characters; normalization is the validator's job.
func NewText(s string) Text {
	return Text{lines: strings.Split(s, "\n")}
}

// String joins the lines back together.
func (t Text) String() string {
	if len(t.lines) == 0 {
		return ""
	}
	return strings.Join(t.lines, "\n")
}

// Lines returns a copy of the buffer's lines.
func (t Text) Lines() []string {
	if len(t.lines) == 0 {
		return []string{""}
	}
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// LineCount is never less than one.
func (t Text) LineCount() int {
	return max(len(t.lines), 1)
}

// LastLine is the index of the final line.
func (t Text) LastLine() int {
	return t.LineCount() - 1
}

// Line returns line i, or "" when i is out of range.
func (t Text) Line(i int) string {
	if i < 0 || i >= len(t.lines) {
		return ""
	}
	return t.lines[i]
}

// LineLen returns the grapheme length of line i.
func (t Text) LineLen(i int) int {
	return graphemeCount(t.Line(i))
}

// End is the slot after the last grapheme of the buffer.
func (t Text) End() Position {
	last := t.LastLine()
	return Position{Line: last, Column: t.LineLen(last)}
}

// Clamp pulls p inside the buffer.
func (t Text) Clamp(p Position) Position {
	p.Line = min(max(p.Line, 0), t.LastLine())
	p.Column = min(max(p.Column, 0), t.LineLen(p.Line))
	return p
}

// Len is the total grapheme count with one per line break.
func (t Text) Len() int {
	n := 0
	for i := range t.LineCount() {
		n += t.LineLen(i)
	}
	return n + t.LineCount() - 1
}

// Offset converts p to an absolute grapheme offset. Line breaks count
// as one grapheme.
func (t Text) Offset(p Position) int {
	p = t.Clamp(p)
	off := 0
	for i := 0; i < p.Line; i++ {
		off += t.LineLen(i) + 1
	}
	return off + p.Column
}

// PositionAt converts an absolute offset back to a Position, clamping to
// the buffer bounds.
func (t Text) PositionAt(off int) Position {
	if off <= 0 {
		return Position{}
	}
	for i := range t.LineCount() {
		n := t.LineLen(i)
		if off <= n {
			return Position{Line: i, Column: off}
		}
		off -= n + 1
	}
	return t.End()
}

// GraphemeAt returns the cluster at p: "\n" at the end of a non-final line
// and "" at the end of the buffer.
func (t Text) GraphemeAt(p Position) string {
	p = t.Clamp(p)
	if p.Column < t.LineLen(p.Line) {
		return sliceGraphemes(t.Line(p.Line), p.Column, p.Column+1)
	}
	if p.Line < t.LastLine() {
		return "\n"
	}
	return ""
}

// Slice returns the text in [start, end).
func (t Text) Slice(start, end Position) string {
	start, end = t.Clamp(start), t.Clamp(end)
	if end.Less(start) {
		start, end = end, start
	}
	if start.Line == end.Line {
		return sliceGraphemes(t.Line(start.Line), start.Column, end.Column)
	}

	var b strings.Builder
	b.WriteString(graphemeSuffix(t.Line(start.Line), start.Column))
	for i := start.Line + 1; i < end.Line; i++ {
		b.WriteString("\n")
		b.WriteString(t.Line(i))
	}
	b.WriteString("\n")
	b.WriteString(sliceGraphemes(t.Line(end.Line), 0, end.Column))
	return b.String()
}

// Replace swaps the range [start, end) for s and returns the new Text.
func (t Text) Replace(start, end Position, s string) Text {
	if len(t.lines) == 0 {
		t.lines = []string{""}
	}
	start, end = t.Clamp(start), t.Clamp(end)
	if end.Less(start) {
		start, end = end, start
	}

	head := sliceGraphemes(t.lines[start.Line], 0, start.Column)
	tail := graphemeSuffix(t.lines[end.Line], end.Column)
	mid := strings.Split(head+s+tail, "\n")

	lines := make([]string, 0, len(t.lines)-(end.Line-start.Line)+len(mid)-1)
	lines = append(lines, t.lines[:start.Line]...)
	lines = append(lines, mid...)
	lines = append(lines, t.lines[end.Line+1:]...)
	return Text{lines: lines}
}

// Index returns the offset of the first occurrence of the single grapheme
// g at or after offset from, or -1.
func (t Text) Index(g string, from int) int {
	off := 0
	for i := range t.LineCount() {
		for _, cluster := range graphemes(t.Line(i)) {
			if off >= from && cluster == g {
				return off
			}
			off++
		}
		if i < t.LastLine() {
			if off >= from && g == "\n" {
				return off
			}
			off++
		}
	}
	return -1
}
