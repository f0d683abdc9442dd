package engine

import (
	"sort"
	"strings"
)

// ============================================================================
// Change Commands
// ============================================================================
//
// With selections present, edits apply to every selection at once through
// the offset ledger. Without, they apply at the cursor.

// DeleteCommand deletes every selection and clears the list, or the
// grapheme under the cursor when nothing is selected (d). Line-wise
// selections take their line break with them.
type DeleteCommand struct {
	EditBase
}

// Execute deletes.
func (c *DeleteCommand) Execute(e *Editor) ExecuteResult {
	if len(e.selections) == 0 {
		return e.deleteAtCursor()
	}

	primary, _ := e.selections.Primary()
	edits, at := e.deletionEdits()
	spans := e.applyEdits(edits)
	e.selections = nil

	if s := spans[at]; s.ok {
		p := e.text.PositionAt(s.start)
		if primary.LineWise {
			p.Column = 0
		}
		e.cursor = p
	}
	return Executed
}

func (c *DeleteCommand) Keys() []string { return []string{"d"} }
func (c *DeleteCommand) Mode() ModeKind { return ModeNormal }
func (c *DeleteCommand) ID() string     { return "change.delete" }

// deleteAtCursor removes the grapheme under the cursor. At the end of a
// line that is the line break; at the end of the buffer nothing happens.
func (e *Editor) deleteAtCursor() ExecuteResult {
	off := e.text.Offset(e.cursor)
	if off >= e.text.Len() {
		return Skipped
	}
	e.applyEdits([]edit{{start: off, end: off + 1}})
	return Executed
}

// deletionEdits returns the edits d applies to the selection list and the
// index of the edit covering the primary. Line-wise selections on touching
// or overlapping lines merge into one run so each line break is removed
// once.
func (e *Editor) deletionEdits() ([]edit, int) {
	order := make([]int, len(e.selections))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return e.selections[order[a]].Start.Less(e.selections[order[b]].Start)
	})

	primary := len(e.selections) - 1
	edits := make([]edit, 0, len(e.selections))
	at := 0
	for k := 0; k < len(order); {
		sel := e.selections[order[k]]
		if order[k] == primary {
			at = len(edits)
		}
		k++
		if !sel.LineWise {
			start, end := e.deletionRange(sel)
			edits = append(edits, edit{start: start, end: end})
			continue
		}

		first, last := sel.Start.Line, sel.End.Line
		for ; k < len(order); k++ {
			next := e.selections[order[k]]
			if !next.LineWise || next.Start.Line > last+1 {
				break
			}
			last = max(last, next.End.Line)
			if order[k] == primary {
				at = len(edits)
			}
		}
		start, end := e.deletionRange(lineSelection(e.text, first, last))
		edits = append(edits, edit{start: start, end: end})
	}
	return edits, at
}

// deletionRange returns the offsets d removes for sel.
func (e *Editor) deletionRange(sel Selection) (int, int) {
	if !sel.LineWise {
		return e.text.Offset(sel.Start), e.text.Offset(sel.End)
	}
	start := e.text.Offset(Position{Line: sel.Start.Line})
	end := e.text.Offset(Position{Line: sel.End.Line, Column: e.text.LineLen(sel.End.Line)})
	switch {
	case sel.End.Line < e.text.LastLine():
		end++
	case sel.Start.Line > 0:
		start--
	}
	return start, end
}

// ChangeCommand deletes like d and enters Insert with an insertion point
// where each selection was (c). Line-wise selections are emptied rather
// than removed so the typed text lands on those lines.
type ChangeCommand struct {
	ChangeBase
}

// Execute deletes and leaves collapsed insertion points.
func (c *ChangeCommand) Execute(e *Editor) ExecuteResult {
	if len(e.selections) == 0 {
		e.deleteAtCursor()
		return Executed
	}

	edits := make([]edit, len(e.selections))
	for i, sel := range e.selections {
		start, end := sel.Start, sel.End
		if sel.LineWise {
			start = Position{Line: sel.Start.Line}
			end = Position{Line: sel.End.Line, Column: e.text.LineLen(sel.End.Line)}
		}
		edits[i] = edit{start: e.text.Offset(start), end: e.text.Offset(end)}
	}
	e.settleInsertion(e.applyEdits(edits), false)
	return Executed
}

func (c *ChangeCommand) Keys() []string { return []string{"c"} }
func (c *ChangeCommand) Mode() ModeKind { return ModeNormal }
func (c *ChangeCommand) ID() string     { return "change.change" }

// ReplaceCharCommand overwrites the grapheme under the cursor (r<char>).
type ReplaceCharCommand struct {
	EditBase
	char string
}

// Execute replaces one grapheme. The cursor stays put.
func (c *ReplaceCharCommand) Execute(e *Editor) ExecuteResult {
	g := e.text.GraphemeAt(e.cursor)
	if g == "" || g == "\n" {
		return Skipped
	}
	off := e.text.Offset(e.cursor)
	cursor := e.cursor
	e.applyEdits([]edit{{start: off, end: off + 1, text: c.char}})
	e.cursor = cursor
	return Executed
}

func (c *ReplaceCharCommand) Keys() []string { return []string{c.char} }
func (c *ReplaceCharCommand) Mode() ModeKind { return ModeNormal }
func (c *ReplaceCharCommand) ID() string     { return "change.replace_char" }

// YankCommand copies the primary selection into the default register (y).
type YankCommand struct {
	SelectionBase
}

// Execute copies; the buffer is untouched.
func (c *YankCommand) Execute(e *Editor) ExecuteResult {
	p, ok := e.selections.Primary()
	if !ok || (p.Empty() && !p.LineWise) {
		return Skipped
	}
	e.registers[DefaultRegister] = e.text.Slice(p.Start, p.End)
	return Executed
}

func (c *YankCommand) Keys() []string { return []string{"y"} }
func (c *YankCommand) Mode() ModeKind { return ModeNormal }
func (c *YankCommand) ID() string     { return "yank.selection" }

// PasteAfterCommand puts the default register on new line(s) below the
// cursor line (p).
type PasteAfterCommand struct {
	EditBase
}

// Execute pastes below and moves to the first pasted line.
func (c *PasteAfterCommand) Execute(e *Editor) ExecuteResult {
	reg := e.registers[DefaultRegister]
	if reg == "" {
		return Skipped
	}
	line := e.cursor.Line
	off := e.text.Offset(Position{Line: line, Column: e.text.LineLen(line)})
	e.applyEdits([]edit{{start: off, end: off, text: "\n" + reg}})
	e.cursor = Position{Line: line + 1}
	return Executed
}

func (c *PasteAfterCommand) Keys() []string { return []string{"p"} }
func (c *PasteAfterCommand) Mode() ModeKind { return ModeNormal }
func (c *PasteAfterCommand) ID() string     { return "paste.after" }

// PasteBeforeCommand puts the default register on new line(s) above the
// cursor line (P).
type PasteBeforeCommand struct {
	EditBase
}

// Execute pastes above and moves to the first pasted line.
func (c *PasteBeforeCommand) Execute(e *Editor) ExecuteResult {
	reg := e.registers[DefaultRegister]
	if reg == "" {
		return Skipped
	}
	line := e.cursor.Line
	off := e.text.Offset(Position{Line: line})
	e.applyEdits([]edit{{start: off, end: off, text: reg + "\n"}})
	e.cursor = Position{Line: line}
	return Executed
}

func (c *PasteBeforeCommand) Keys() []string { return []string{"P"} }
func (c *PasteBeforeCommand) Mode() ModeKind { return ModeNormal }
func (c *PasteBeforeCommand) ID() string     { return "paste.before" }

// ToggleCaseCommand swaps letter case in every selection, or of the
// grapheme under the cursor (~).
type ToggleCaseCommand struct {
	EditBase
}

// Execute toggles case in place.
func (c *ToggleCaseCommand) Execute(e *Editor) ExecuteResult {
	if len(e.selections) == 0 {
		g := e.text.GraphemeAt(e.cursor)
		if g == "" || g == "\n" {
			return Skipped
		}
		off := e.text.Offset(e.cursor)
		cursor := e.cursor
		e.applyEdits([]edit{{start: off, end: off + 1, text: toggleCase(g)}})
		e.cursor = cursor
		return Executed
	}

	edits := make([]edit, len(e.selections))
	for i, sel := range e.selections {
		edits[i] = edit{
			start: e.text.Offset(sel.Start),
			end:   e.text.Offset(sel.End),
			text:  toggleCase(e.text.Slice(sel.Start, sel.End)),
		}
	}
	e.applyEdits(edits)
	return Executed
}

func (c *ToggleCaseCommand) Keys() []string { return []string{"~"} }
func (c *ToggleCaseCommand) Mode() ModeKind { return ModeNormal }
func (c *ToggleCaseCommand) ID() string     { return "change.toggle_case" }

// touchedLines lists, in order, every line any selection covers, or the
// cursor line when nothing is selected.
func (e *Editor) touchedLines() []int {
	if len(e.selections) == 0 {
		return []int{e.cursor.Line}
	}
	seen := make(map[int]bool)
	var lines []int
	for _, sel := range e.selections {
		for l := sel.Start.Line; l <= sel.End.Line; l++ {
			if !seen[l] {
				seen[l] = true
				lines = append(lines, l)
			}
		}
	}
	sort.Ints(lines)
	return lines
}

// IndentCommand prefixes every touched line with one indentation unit (>).
type IndentCommand struct {
	EditBase
}

// Execute indents.
func (c *IndentCommand) Execute(e *Editor) ExecuteResult {
	lines := e.touchedLines()
	edits := make([]edit, len(lines))
	for i, l := range lines {
		off := e.text.Offset(Position{Line: l})
		edits[i] = edit{start: off, end: off, text: e.indentUnit}
	}
	e.applyEdits(edits)
	return Executed
}

func (c *IndentCommand) Keys() []string { return []string{">"} }
func (c *IndentCommand) Mode() ModeKind { return ModeNormal }
func (c *IndentCommand) ID() string     { return "change.indent" }

// DedentCommand strips one indentation unit from every touched line that
// starts with a full unit (<).
type DedentCommand struct {
	EditBase
}

// Execute dedents. Lines with a shorter indent are left alone.
func (c *DedentCommand) Execute(e *Editor) ExecuteResult {
	var edits []edit
	width := len(e.indentUnit)
	for _, l := range e.touchedLines() {
		if !strings.HasPrefix(e.text.Line(l), e.indentUnit) {
			continue
		}
		off := e.text.Offset(Position{Line: l})
		edits = append(edits, edit{start: off, end: off + width})
	}
	if len(edits) == 0 {
		return Skipped
	}
	e.applyEdits(edits)
	return Executed
}

func (c *DedentCommand) Keys() []string { return []string{"<"} }
func (c *DedentCommand) Mode() ModeKind { return ModeNormal }
func (c *DedentCommand) ID() string     { return "change.dedent" }

// JoinLinesCommand joins the cursor line and the next with one space (J).
type JoinLinesCommand struct {
	EditBase
}

// Execute joins. On the last line it does nothing.
func (c *JoinLinesCommand) Execute(e *Editor) ExecuteResult {
	line := e.cursor.Line
	if line >= e.text.LastLine() {
		return Skipped
	}
	off := e.text.Offset(Position{Line: line, Column: e.text.LineLen(line)})
	e.applyEdits([]edit{{start: off, end: off + 1, text: " "}})
	return Executed
}

func (c *JoinLinesCommand) Keys() []string { return []string{"J"} }
func (c *JoinLinesCommand) Mode() ModeKind { return ModeNormal }
func (c *JoinLinesCommand) ID() string     { return "change.join_lines" }

// ============================================================================
// Undo/Redo
// ============================================================================

// UndoCommand is bound to u. Edit history is not kept, so it does nothing.
type UndoCommand struct {
	MotionBase
}

// Execute is a no-op.
func (c *UndoCommand) Execute(e *Editor) ExecuteResult { return Skipped }

func (c *UndoCommand) Keys() []string { return []string{"u"} }
func (c *UndoCommand) Mode() ModeKind { return ModeNormal }
func (c *UndoCommand) ID() string     { return "history.undo" }

// RedoCommand is bound to U and, like UndoCommand, does nothing.
type RedoCommand struct {
	MotionBase
}

// Execute is a no-op.
func (c *RedoCommand) Execute(e *Editor) ExecuteResult { return Skipped }

func (c *RedoCommand) Keys() []string { return []string{"U"} }
func (c *RedoCommand) Mode() ModeKind { return ModeNormal }
func (c *RedoCommand) ID() string     { return "history.redo" }
