package engine

// ============================================================================
// Insert Mode Entry
// ============================================================================

// InsertBeforeCommand enters Insert at the start of every selection (i).
type InsertBeforeCommand struct {
	ModeEntryBase
}

// Execute collapses each selection to its start.
func (c *InsertBeforeCommand) Execute(e *Editor) ExecuteResult {
	for i, sel := range e.selections {
		e.selections[i] = Collapsed(sel.Start)
	}
	if p, ok := e.selections.Primary(); ok {
		e.cursor = p.Start
	}
	return Executed
}

func (c *InsertBeforeCommand) Keys() []string { return []string{"i"} }
func (c *InsertBeforeCommand) Mode() ModeKind { return ModeNormal }
func (c *InsertBeforeCommand) ID() string     { return "mode.insert" }

// AppendAfterCommand enters Insert at the end of every selection, or one
// column right of the cursor when nothing is selected (a).
type AppendAfterCommand struct {
	ModeEntryBase
}

// Execute collapses each selection to its end.
func (c *AppendAfterCommand) Execute(e *Editor) ExecuteResult {
	if len(e.selections) == 0 {
		e.cursor = e.text.Clamp(Position{Line: e.cursor.Line, Column: e.cursor.Column + 1})
		return Executed
	}
	for i, sel := range e.selections {
		e.selections[i] = Collapsed(sel.End)
	}
	p, _ := e.selections.Primary()
	e.cursor = p.Start
	return Executed
}

func (c *AppendAfterCommand) Keys() []string { return []string{"a"} }
func (c *AppendAfterCommand) Mode() ModeKind { return ModeNormal }
func (c *AppendAfterCommand) ID() string     { return "mode.append" }

// InsertLineStartCommand enters Insert before the first non-blank of the
// line (I).
type InsertLineStartCommand struct {
	ModeEntryBase
}

// Execute drops selections and moves to the first non-blank.
func (c *InsertLineStartCommand) Execute(e *Editor) ExecuteResult {
	gs := graphemes(e.text.Line(e.cursor.Line))
	col := 0
	for col < len(gs) && isSpace(gs[col]) {
		col++
	}
	e.selections = nil
	e.cursor = Position{Line: e.cursor.Line, Column: col}
	return Executed
}

func (c *InsertLineStartCommand) Keys() []string { return []string{"I"} }
func (c *InsertLineStartCommand) Mode() ModeKind { return ModeNormal }
func (c *InsertLineStartCommand) ID() string     { return "mode.insert_line_start" }

// AppendLineEndCommand enters Insert at the end of the line (A).
type AppendLineEndCommand struct {
	ModeEntryBase
}

// Execute drops selections and moves to the line end.
func (c *AppendLineEndCommand) Execute(e *Editor) ExecuteResult {
	e.selections = nil
	e.cursor = Position{Line: e.cursor.Line, Column: e.text.LineLen(e.cursor.Line)}
	return Executed
}

func (c *AppendLineEndCommand) Keys() []string { return []string{"A"} }
func (c *AppendLineEndCommand) Mode() ModeKind { return ModeNormal }
func (c *AppendLineEndCommand) ID() string     { return "mode.append_line_end" }

// OpenLineBelowCommand opens an empty line below and enters Insert on
// it (o).
type OpenLineBelowCommand struct {
	ChangeBase
}

// Execute inserts the line break and moves onto the new line.
func (c *OpenLineBelowCommand) Execute(e *Editor) ExecuteResult {
	line := e.cursor.Line
	off := e.text.Offset(Position{Line: line, Column: e.text.LineLen(line)})
	e.selections = nil
	e.applyEdits([]edit{{start: off, end: off, text: "\n"}})
	e.cursor = Position{Line: line + 1}
	return Executed
}

func (c *OpenLineBelowCommand) Keys() []string { return []string{"o"} }
func (c *OpenLineBelowCommand) Mode() ModeKind { return ModeNormal }
func (c *OpenLineBelowCommand) ID() string     { return "insert.open_below" }

// OpenLineAboveCommand opens an empty line above and enters Insert on
// it (O).
type OpenLineAboveCommand struct {
	ChangeBase
}

// Execute inserts the line break and stays on the new, now current, line.
func (c *OpenLineAboveCommand) Execute(e *Editor) ExecuteResult {
	line := e.cursor.Line
	off := e.text.Offset(Position{Line: line})
	e.selections = nil
	e.applyEdits([]edit{{start: off, end: off, text: "\n"}})
	e.cursor = Position{Line: line}
	return Executed
}

func (c *OpenLineAboveCommand) Keys() []string { return []string{"O"} }
func (c *OpenLineAboveCommand) Mode() ModeKind { return ModeNormal }
func (c *OpenLineAboveCommand) ID() string     { return "insert.open_above" }

// ============================================================================
// Insert Mode Editing
// ============================================================================
//
// Printable keys are typed by the editor directly. The commands below
// handle the named keys and, like typing, apply at every insertion point.

// InsertBackspaceCommand deletes the grapheme before each insertion
// point, joining lines at column 0.
type InsertBackspaceCommand struct {
	EditBase
}

// Execute deletes backward.
func (c *InsertBackspaceCommand) Execute(e *Editor) ExecuteResult {
	points := e.insertionPoints()
	edits := make([]edit, len(points))
	changed := false
	for i, p := range points {
		if p == 0 {
			edits[i] = edit{start: 0, end: 0}
			continue
		}
		edits[i] = edit{start: p - 1, end: p}
		changed = true
	}
	if !changed {
		return Skipped
	}
	e.settleInsertion(e.applyEdits(edits), false)
	return Executed
}

func (c *InsertBackspaceCommand) Keys() []string { return []string{KeyBackspace} }
func (c *InsertBackspaceCommand) Mode() ModeKind { return ModeInsert }
func (c *InsertBackspaceCommand) ID() string     { return "insert.backspace" }

// InsertDeleteCommand deletes the grapheme after each insertion point.
type InsertDeleteCommand struct {
	EditBase
}

// Execute deletes forward.
func (c *InsertDeleteCommand) Execute(e *Editor) ExecuteResult {
	points := e.insertionPoints()
	length := e.text.Len()
	edits := make([]edit, len(points))
	changed := false
	for i, p := range points {
		if p >= length {
			edits[i] = edit{start: p, end: p}
			continue
		}
		edits[i] = edit{start: p, end: p + 1}
		changed = true
	}
	if !changed {
		return Skipped
	}
	e.settleInsertion(e.applyEdits(edits), false)
	return Executed
}

func (c *InsertDeleteCommand) Keys() []string { return []string{KeyDelete} }
func (c *InsertDeleteCommand) Mode() ModeKind { return ModeInsert }
func (c *InsertDeleteCommand) ID() string     { return "insert.delete" }

// InsertNewlineCommand splits the line at each insertion point.
type InsertNewlineCommand struct {
	EditBase
}

// Execute types a line break.
func (c *InsertNewlineCommand) Execute(e *Editor) ExecuteResult {
	e.insertText("\n")
	return Executed
}

func (c *InsertNewlineCommand) Keys() []string { return []string{KeyEnter} }
func (c *InsertNewlineCommand) Mode() ModeKind { return ModeInsert }
func (c *InsertNewlineCommand) ID() string     { return "insert.newline" }

// InsertTabCommand types one indentation unit.
type InsertTabCommand struct {
	EditBase
}

// Execute types the indentation unit.
func (c *InsertTabCommand) Execute(e *Editor) ExecuteResult {
	e.insertText(e.indentUnit)
	return Executed
}

func (c *InsertTabCommand) Keys() []string { return []string{KeyTab} }
func (c *InsertTabCommand) Mode() ModeKind { return ModeInsert }
func (c *InsertTabCommand) ID() string     { return "insert.tab" }

// InsertMoveCommand moves the cursor with the arrow keys in Insert. Moving
// drops extra insertion points.
type InsertMoveCommand struct {
	MotionBase
	key string
}

// Execute moves one step.
func (c *InsertMoveCommand) Execute(e *Editor) ExecuteResult {
	e.selections = nil
	p := e.cursor
	switch c.key {
	case KeyLeft:
		p.Column--
	case KeyRight:
		p.Column++
	case KeyUp:
		p.Line--
	case KeyDown:
		p.Line++
	}
	e.moveCursor(p)
	return Executed
}

func (c *InsertMoveCommand) Keys() []string { return []string{c.key} }
func (c *InsertMoveCommand) Mode() ModeKind { return ModeInsert }

func (c *InsertMoveCommand) ID() string {
	switch c.key {
	case KeyLeft:
		return "insert.move_left"
	case KeyRight:
		return "insert.move_right"
	case KeyUp:
		return "insert.move_up"
	default:
		return "insert.move_down"
	}
}
