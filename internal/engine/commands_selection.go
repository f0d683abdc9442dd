package engine

// ============================================================================
// Selection Commands
// ============================================================================

// SelectLineCommand selects the current line (x). When the primary
// selection already covers whole lines ending just above the cursor, x
// grows it by one more line instead.
type SelectLineCommand struct {
	SelectionBase
}

// Execute selects or extends, then moves the cursor to the next line start.
func (c *SelectLineCommand) Execute(e *Editor) ExecuteResult {
	line := e.cursor.Line
	if p, ok := e.selections.Primary(); ok && p.LineWise && isFullLines(e.text, p) &&
		line >= p.Start.Line && line <= p.End.Line+1 {
		next := p.End.Line + 1
		if next > e.text.LastLine() {
			return Skipped
		}
		grown := lineSelection(e.text, p.Start.Line, next)
		e.selections = e.selections.WithPrimary(grown)
		e.cursor = e.lineStartAfter(next)
		return Executed
	}

	e.selections = Selections{lineSelection(e.text, line, line)}
	e.anchor = Position{Line: line}
	e.cursor = e.lineStartAfter(line)
	return Executed
}

// lineStartAfter is the start of the line below, or the end of line when
// it is the last one.
func (e *Editor) lineStartAfter(line int) Position {
	if line < e.text.LastLine() {
		return Position{Line: line + 1}
	}
	return Position{Line: line, Column: e.text.LineLen(line)}
}

func (c *SelectLineCommand) Keys() []string { return []string{"x"} }
func (c *SelectLineCommand) Mode() ModeKind { return ModeNormal }
func (c *SelectLineCommand) ID() string     { return "select.line" }

// ExtendToLinesCommand widens every selection to whole lines (X). With no
// selection it selects the current line.
type ExtendToLinesCommand struct {
	SelectionBase
}

// Execute extends each selection's ends to line boundaries.
func (c *ExtendToLinesCommand) Execute(e *Editor) ExecuteResult {
	if len(e.selections) == 0 {
		e.selections = Selections{lineSelection(e.text, e.cursor.Line, e.cursor.Line)}
		return Executed
	}
	for i, sel := range e.selections {
		ls := lineSelection(e.text, sel.Start.Line, sel.End.Line)
		ls.Anchor = sel.Anchor
		e.selections[i] = ls
	}
	return Executed
}

func (c *ExtendToLinesCommand) Keys() []string { return []string{"X"} }
func (c *ExtendToLinesCommand) Mode() ModeKind { return ModeNormal }
func (c *ExtendToLinesCommand) ID() string     { return "select.extend_lines" }

// CollapseSelectionsCommand drops every selection, leaving the bare
// cursor (;).
type CollapseSelectionsCommand struct {
	SelectionBase
}

// Execute clears the selection list.
func (c *CollapseSelectionsCommand) Execute(e *Editor) ExecuteResult {
	if len(e.selections) == 0 {
		return Skipped
	}
	e.selections = nil
	return Executed
}

func (c *CollapseSelectionsCommand) Keys() []string { return []string{";"} }
func (c *CollapseSelectionsCommand) Mode() ModeKind { return ModeNormal }
func (c *CollapseSelectionsCommand) ID() string     { return "select.collapse" }

// KeepPrimaryCommand discards all selections except the primary (,).
type KeepPrimaryCommand struct {
	SelectionBase
}

// Execute keeps only the last selection.
func (c *KeepPrimaryCommand) Execute(e *Editor) ExecuteResult {
	p, ok := e.selections.Primary()
	if !ok || len(e.selections) == 1 {
		return Skipped
	}
	e.selections = Selections{p}
	return Executed
}

func (c *KeepPrimaryCommand) Keys() []string { return []string{","} }
func (c *KeepPrimaryCommand) Mode() ModeKind { return ModeNormal }
func (c *KeepPrimaryCommand) ID() string     { return "select.keep_primary" }

// CopySelectionDownCommand adds a copy of the primary selection on the
// line below the lowest selection (C). The copy becomes primary, so
// repeated C walks down the buffer. Columns are clamped to the target
// line. With no selection the cursor itself is duplicated.
type CopySelectionDownCommand struct {
	SelectionBase
}

// Execute appends the shifted copy.
func (c *CopySelectionDownCommand) Execute(e *Editor) ExecuteResult {
	sels := e.selections.Clone()
	if len(sels) == 0 {
		sels = Selections{Collapsed(e.cursor)}
	}
	base, _ := sels.Primary()

	lowest := 0
	for _, sel := range sels {
		lowest = max(lowest, sel.End.Line)
	}
	height := base.End.Line - base.Start.Line
	first := lowest + 1
	last := first + height
	if last > e.text.LastLine() {
		return Skipped
	}

	dup := Selection{
		Start:    Position{Line: first, Column: min(base.Start.Column, e.text.LineLen(first))},
		End:      Position{Line: last, Column: min(base.End.Column, e.text.LineLen(last))},
		Anchor:   base.Anchor,
		LineWise: base.LineWise,
	}
	if dup.LineWise {
		dup.End.Column = e.text.LineLen(last)
	}
	e.selections = append(sels, dup)
	e.cursor = dup.Start
	if e.mode.Kind == ModeSelect {
		e.anchor, e.cursor = e.selectEnds(dup)
	}
	return Executed
}

// selectEnds returns the anchor and cursor from which selectRange
// rebuilds sel, so Select keeps extending the copy rather than the
// selection it came from.
func (e *Editor) selectEnds(sel Selection) (anchor, head Position) {
	last := sel.End
	if !sel.Empty() && last.Column > 0 {
		last.Column--
	}
	if sel.Anchor == AnchorEnd {
		return last, sel.Start
	}
	return sel.Start, last
}

func (c *CopySelectionDownCommand) Keys() []string { return []string{"C"} }
func (c *CopySelectionDownCommand) Mode() ModeKind { return ModeNormal }
func (c *CopySelectionDownCommand) ID() string     { return "select.copy_down" }

// SplitSelectionCommand is the s key. Splitting by pattern is not
// supported; the key is consumed and nothing changes.
type SplitSelectionCommand struct {
	SelectionBase
}

// Execute is a no-op.
func (c *SplitSelectionCommand) Execute(e *Editor) ExecuteResult { return Skipped }

func (c *SplitSelectionCommand) Keys() []string { return []string{"s"} }
func (c *SplitSelectionCommand) Mode() ModeKind { return ModeNormal }
func (c *SplitSelectionCommand) ID() string     { return "select.split" }

// ============================================================================
// Select Mode Entry
// ============================================================================

// EnterSelectCommand starts a charwise selection at the cursor (v).
type EnterSelectCommand struct {
	ModeEntryBase
}

// Execute anchors at the cursor and selects the grapheme under it.
func (c *EnterSelectCommand) Execute(e *Editor) ExecuteResult {
	e.anchor = e.cursor
	e.selections = Selections{e.selectRange(e.cursor, e.cursor, false)}
	return Executed
}

func (c *EnterSelectCommand) Keys() []string { return []string{"v"} }
func (c *EnterSelectCommand) Mode() ModeKind { return ModeNormal }
func (c *EnterSelectCommand) ID() string     { return "mode.select" }

// EnterSelectLineCommand starts a line-wise selection on the current
// line (V).
type EnterSelectLineCommand struct {
	ModeEntryBase
}

// Execute anchors at the cursor and selects its line.
func (c *EnterSelectLineCommand) Execute(e *Editor) ExecuteResult {
	e.anchor = e.cursor
	e.selections = Selections{e.selectRange(e.cursor, e.cursor, true)}
	return Executed
}

func (c *EnterSelectLineCommand) Keys() []string { return []string{"V"} }
func (c *EnterSelectLineCommand) Mode() ModeKind { return ModeNormal }
func (c *EnterSelectLineCommand) ID() string     { return "mode.select_line" }

// SelectCharwiseCommand handles v inside Select: from line-wise it
// switches to charwise, otherwise it leaves Select.
type SelectCharwiseCommand struct {
	ModeEntryBase
}

// Execute reshapes the primary selection when switching to charwise.
func (c *SelectCharwiseCommand) Execute(e *Editor) ExecuteResult {
	if e.mode.LineWise {
		e.selections = e.selections.WithPrimary(e.selectRange(e.anchor, e.cursor, false))
	}
	return Executed
}

func (c *SelectCharwiseCommand) Keys() []string { return []string{"v"} }
func (c *SelectCharwiseCommand) Mode() ModeKind { return ModeSelect }
func (c *SelectCharwiseCommand) ID() string     { return "select.charwise" }

// SelectLinewiseCommand handles V inside Select: from charwise it switches
// to line-wise, otherwise it leaves Select.
type SelectLinewiseCommand struct {
	ModeEntryBase
}

// Execute reshapes the primary selection when switching to line-wise.
func (c *SelectLinewiseCommand) Execute(e *Editor) ExecuteResult {
	if !e.mode.LineWise {
		e.selections = e.selections.WithPrimary(e.selectRange(e.anchor, e.cursor, true))
	}
	return Executed
}

func (c *SelectLinewiseCommand) Keys() []string { return []string{"V"} }
func (c *SelectLinewiseCommand) Mode() ModeKind { return ModeSelect }
func (c *SelectLinewiseCommand) ID() string     { return "select.linewise" }
