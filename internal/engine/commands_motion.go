package engine

// ============================================================================
// Motion Commands
// ============================================================================
//
// Motions move the primary cursor and clamp at the buffer edges. Word
// motions stay on the current line. In Select mode the same commands
// stretch the primary selection.

// MoveLeftCommand moves the cursor one column left (h).
type MoveLeftCommand struct {
	MotionBase
}

// Execute moves the cursor one column left, stopping at column 0.
func (c *MoveLeftCommand) Execute(e *Editor) ExecuteResult {
	e.moveCursor(Position{Line: e.cursor.Line, Column: e.cursor.Column - 1})
	return Executed
}

func (c *MoveLeftCommand) Keys() []string { return []string{"h", KeyLeft} }
func (c *MoveLeftCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveLeftCommand) ID() string     { return "move.left" }

// MoveRightCommand moves the cursor one column right (l). The cursor may
// rest on the slot after the last grapheme.
type MoveRightCommand struct {
	MotionBase
}

// Execute moves the cursor one column right, stopping at the line end.
func (c *MoveRightCommand) Execute(e *Editor) ExecuteResult {
	e.moveCursor(Position{Line: e.cursor.Line, Column: e.cursor.Column + 1})
	return Executed
}

func (c *MoveRightCommand) Keys() []string { return []string{"l", KeyRight} }
func (c *MoveRightCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveRightCommand) ID() string     { return "move.right" }

// MoveDownCommand moves the cursor one line down (j). The column is
// clamped to the new line's length.
type MoveDownCommand struct {
	MotionBase
}

// Execute moves down one line.
func (c *MoveDownCommand) Execute(e *Editor) ExecuteResult {
	e.moveCursor(Position{Line: e.cursor.Line + 1, Column: e.cursor.Column})
	return Executed
}

func (c *MoveDownCommand) Keys() []string { return []string{"j", KeyDown} }
func (c *MoveDownCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveDownCommand) ID() string     { return "move.down" }

// MoveUpCommand moves the cursor one line up (k).
type MoveUpCommand struct {
	MotionBase
}

// Execute moves up one line.
func (c *MoveUpCommand) Execute(e *Editor) ExecuteResult {
	e.moveCursor(Position{Line: e.cursor.Line - 1, Column: e.cursor.Column})
	return Executed
}

func (c *MoveUpCommand) Keys() []string { return []string{"k", KeyUp} }
func (c *MoveUpCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveUpCommand) ID() string     { return "move.up" }

// MoveWordForwardCommand skips any whitespace and the following run of
// non-whitespace, landing just after it (w).
type MoveWordForwardCommand struct {
	MotionBase
}

// Execute moves past the next word on the line. With only whitespace left
// it does nothing.
func (c *MoveWordForwardCommand) Execute(e *Editor) ExecuteResult {
	gs := graphemes(e.text.Line(e.cursor.Line))
	col := e.cursor.Column
	for col < len(gs) && isSpace(gs[col]) {
		col++
	}
	if col >= len(gs) {
		return Skipped
	}
	for col < len(gs) && !isSpace(gs[col]) {
		col++
	}
	e.moveCursor(Position{Line: e.cursor.Line, Column: col})
	return Executed
}

func (c *MoveWordForwardCommand) Keys() []string { return []string{"w"} }
func (c *MoveWordForwardCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveWordForwardCommand) ID() string     { return "move.word_forward" }

// MoveWordBackwardCommand lands on the start of the last word that ends at
// or before the cursor, skipping trailing whitespace (b).
type MoveWordBackwardCommand struct {
	MotionBase
}

// Execute moves to the start of the previous word on the line.
func (c *MoveWordBackwardCommand) Execute(e *Editor) ExecuteResult {
	gs := graphemes(e.text.Line(e.cursor.Line))
	col := min(e.cursor.Column, len(gs))
	for col > 0 && isSpace(gs[col-1]) {
		col--
	}
	if col == 0 {
		return Skipped
	}
	for col > 0 && !isSpace(gs[col-1]) {
		col--
	}
	e.moveCursor(Position{Line: e.cursor.Line, Column: col})
	return Executed
}

func (c *MoveWordBackwardCommand) Keys() []string { return []string{"b"} }
func (c *MoveWordBackwardCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveWordBackwardCommand) ID() string     { return "move.word_backward" }

// MoveWordEndCommand lands on the last grapheme of the next word,
// scanning from the column after the cursor (e).
type MoveWordEndCommand struct {
	MotionBase
}

// Execute moves to the end of the next word on the line.
func (c *MoveWordEndCommand) Execute(e *Editor) ExecuteResult {
	gs := graphemes(e.text.Line(e.cursor.Line))
	col := e.cursor.Column + 1
	for col < len(gs) && isSpace(gs[col]) {
		col++
	}
	if col >= len(gs) {
		return Skipped
	}
	for col+1 < len(gs) && !isSpace(gs[col+1]) {
		col++
	}
	e.moveCursor(Position{Line: e.cursor.Line, Column: col})
	return Executed
}

func (c *MoveWordEndCommand) Keys() []string { return []string{"e"} }
func (c *MoveWordEndCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveWordEndCommand) ID() string     { return "move.word_end" }

// MoveToLineStartCommand moves to column 0 (0, gh).
type MoveToLineStartCommand struct {
	MotionBase
}

// Execute moves to the start of the line.
func (c *MoveToLineStartCommand) Execute(e *Editor) ExecuteResult {
	e.moveCursor(Position{Line: e.cursor.Line})
	return Executed
}

func (c *MoveToLineStartCommand) Keys() []string { return []string{"0"} }
func (c *MoveToLineStartCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveToLineStartCommand) ID() string     { return "move.line_start" }

// MoveToLineEndCommand moves past the last grapheme of the line ($, gl).
type MoveToLineEndCommand struct {
	MotionBase
}

// Execute moves to the end of the line.
func (c *MoveToLineEndCommand) Execute(e *Editor) ExecuteResult {
	e.moveCursor(Position{Line: e.cursor.Line, Column: e.text.LineLen(e.cursor.Line)})
	return Executed
}

func (c *MoveToLineEndCommand) Keys() []string { return []string{"$"} }
func (c *MoveToLineEndCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveToLineEndCommand) ID() string     { return "move.line_end" }

// MoveToFirstLineCommand moves to the start of the buffer (gg).
type MoveToFirstLineCommand struct {
	MotionBase
}

// Execute moves to {0, 0}.
func (c *MoveToFirstLineCommand) Execute(e *Editor) ExecuteResult {
	e.moveCursor(Position{})
	return Executed
}

func (c *MoveToFirstLineCommand) Keys() []string { return []string{"gg"} }
func (c *MoveToFirstLineCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveToFirstLineCommand) ID() string     { return "move.first_line" }

// MoveToLastLineCommand moves to the very end of the buffer (G).
type MoveToLastLineCommand struct {
	MotionBase
}

// Execute moves to the end of the last line.
func (c *MoveToLastLineCommand) Execute(e *Editor) ExecuteResult {
	e.moveCursor(e.text.End())
	return Executed
}

func (c *MoveToLastLineCommand) Keys() []string { return []string{"G"} }
func (c *MoveToLastLineCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveToLastLineCommand) ID() string     { return "move.last_line" }

// MoveToLastLineStartCommand moves to column 0 of the last line (ge).
type MoveToLastLineStartCommand struct {
	MotionBase
}

// Execute moves to the start of the last line.
func (c *MoveToLastLineStartCommand) Execute(e *Editor) ExecuteResult {
	e.moveCursor(Position{Line: e.text.LastLine()})
	return Executed
}

func (c *MoveToLastLineStartCommand) Keys() []string { return []string{"ge"} }
func (c *MoveToLastLineStartCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveToLastLineStartCommand) ID() string     { return "move.last_line_start" }

// FindCharCommand moves to the next occurrence of char on the line (f),
// or to the column before it (t).
type FindCharCommand struct {
	MotionBase
	char string
	till bool
}

// Execute searches the rest of the line. Not found is a no-op.
func (c *FindCharCommand) Execute(e *Editor) ExecuteResult {
	gs := graphemes(e.text.Line(e.cursor.Line))
	for col := e.cursor.Column + 1; col < len(gs); col++ {
		if gs[col] != c.char {
			continue
		}
		if c.till {
			col--
		}
		e.moveCursor(Position{Line: e.cursor.Line, Column: col})
		return Executed
	}
	return Skipped
}

func (c *FindCharCommand) Keys() []string { return []string{c.char} }
func (c *FindCharCommand) Mode() ModeKind { return ModeNormal }

func (c *FindCharCommand) ID() string {
	if c.till {
		return "move.till_char"
	}
	return "move.find_char"
}

// StartPendingCommand begins a multi-key sequence (g, r, f, t).
type StartPendingCommand struct {
	MotionBase
	operator rune
}

// Execute arms the pending builder.
func (c *StartPendingCommand) Execute(e *Editor) ExecuteResult {
	e.pending.SetOperator(c.operator)
	return Executed
}

func (c *StartPendingCommand) Keys() []string { return []string{string(c.operator)} }
func (c *StartPendingCommand) Mode() ModeKind { return ModeNormal }
func (c *StartPendingCommand) ID() string     { return "pending." + string(c.operator) }
