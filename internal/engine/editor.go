// Package engine implements a selection-first modal editing engine. An
// Editor owns a text buffer, a cursor, an ordered selection list whose last
// element is primary, the active mode and a register map. Keys are applied
// one at a time through HandleKey; every key either changes state or is a
// silent no-op.
package engine

import (
	"strings"
)

// DefaultRegister is where y stores text and p/P read it.
const DefaultRegister = `"`

// DefaultIndentWidth is the number of spaces > and < add or remove.
const DefaultIndentWidth = 4

// Config configures an Editor.
type Config struct {
	// IndentWidth is the width of the indentation unit. Zero means
	// DefaultIndentWidth.
	IndentWidth int
}

// Editor is the engine state for one buffer. It is not safe for
// concurrent use; keys are applied strictly in order.
type Editor struct {
	text       Text
	cursor     Position
	selections Selections
	mode       Mode
	registers  map[string]string

	// anchor is where the current Select started.
	anchor     Position
	pending    *PendingCommandBuilder
	indentUnit string

	// version increments on every buffer change.
	version int

	registry        *CommandRegistry
	pendingRegistry *PendingCommandRegistry
}

// KeyResult describes what one key did.
type KeyResult struct {
	Key            string
	Consumed       bool
	Result         ExecuteResult
	CommandID      string
	ContentChanged bool
	ModeChanged    bool
	Mode           Mode
}

// Snapshot is the read-only view a presentation layer renders.
type Snapshot struct {
	Text       string
	Lines      []string
	Cursor     Position
	Selections Selections
	Mode       Mode
	ModeLabel  string
	Pending    string
	Register   string
}

// New creates an editor with an empty buffer.
func New(cfg Config) *Editor {
	width := cfg.IndentWidth
	if width <= 0 {
		width = DefaultIndentWidth
	}
	e := &Editor{
		indentUnit:      strings.Repeat(" ", width),
		pending:         NewPendingCommandBuilder(),
		registry:        DefaultRegistry,
		pendingRegistry: DefaultPendingRegistry,
	}
	e.Load("")
	return e
}

// Load replaces the buffer and resets cursor, selections, mode, pending
// keys and registers.
func (e *Editor) Load(content string) {
	e.text = NewText(content)
	e.cursor = Position{}
	e.anchor = Position{}
	e.selections = nil
	e.mode = normalMode()
	e.registers = make(map[string]string)
	e.pending.Clear()
	e.version++
}

// Value returns the buffer contents.
func (e *Editor) Value() string { return e.text.String() }

// Text returns the buffer.
func (e *Editor) Text() Text { return e.text }

// Cursor returns the primary cursor.
func (e *Editor) Cursor() Position { return e.cursor }

// Selections returns a copy of the selection list.
func (e *Editor) Selections() Selections { return e.selections.Clone() }

// Mode returns the active mode.
func (e *Editor) Mode() Mode { return e.mode }

// Register returns the contents of a register.
func (e *Editor) Register(name string) string { return e.registers[name] }

// Version increments whenever the buffer changes.
func (e *Editor) Version() int { return e.version }

// IndentUnit returns the literal indentation string.
func (e *Editor) IndentUnit() string { return e.indentUnit }

// Pending renders the partially typed sequence: "g", "r", "mi" and so on.
func (e *Editor) Pending() string {
	if !e.pending.IsEmpty() {
		return e.pending.String()
	}
	if e.mode.Kind == ModeMatch {
		return "m" + e.mode.Pending.key()
	}
	return ""
}

// Snapshot returns the current state for rendering.
func (e *Editor) Snapshot() Snapshot {
	return Snapshot{
		Text:       e.text.String(),
		Lines:      e.text.Lines(),
		Cursor:     e.cursor,
		Selections: e.selections.Clone(),
		Mode:       e.mode,
		ModeLabel:  e.mode.String(),
		Pending:    e.Pending(),
		Register:   e.registers[DefaultRegister],
	}
}

// HandleKey applies one key event.
func (e *Editor) HandleKey(key string) KeyResult {
	before := e.mode
	version := e.version
	res := e.dispatch(key)
	res.Key = key
	res.Mode = e.mode
	res.ModeChanged = e.mode != before
	res.ContentChanged = e.version != version
	return res
}

func (e *Editor) dispatch(key string) KeyResult {
	if key == KeyEscape {
		e.escape()
		return KeyResult{Consumed: true, Result: Executed, CommandID: "mode.escape"}
	}

	if !e.pending.IsEmpty() {
		return e.handlePending(key)
	}

	if e.mode.Kind == ModeMatch && e.mode.Pending != MatchNone {
		return e.handleMatchDelimiter(key)
	}

	next, consumed := Transition(e.mode, key)
	if !consumed {
		return KeyResult{Result: PassThrough}
	}

	res := KeyResult{Consumed: true, Result: Executed}
	if cmd, ok := e.registry.Get(e.mode.Kind, key); ok {
		res.Result = cmd.Execute(e)
		res.CommandID = cmd.ID()
	} else if ch, ok := CharKey(key); ok && e.mode.Kind == ModeInsert {
		e.insertText(ch)
		res.CommandID = "insert.text"
	}

	// A pending operator keeps the current mode until it resolves.
	if e.pending.IsEmpty() {
		e.mode = next
	}
	return res
}

// escape returns to Normal from anywhere and drops every pending sequence.
// Selections survive; insertion points left over from Insert do not.
func (e *Editor) escape() {
	if e.mode.Kind == ModeInsert {
		e.selections = e.selections.NonEmpty()
	}
	e.pending.Clear()
	e.mode = normalMode()
}

func (e *Editor) handlePending(key string) KeyResult {
	op := e.pending.Operator()
	e.pending.AppendKey(key)
	seq := e.pending.KeyBuffer()

	if cmd, ok := e.pendingRegistry.Get(op, seq); ok {
		e.pending.Clear()
		return KeyResult{Consumed: true, Result: cmd.Execute(e), CommandID: cmd.ID()}
	}
	if e.pendingRegistry.HasPrefix(op, seq) {
		return KeyResult{Consumed: true, Result: Executed, CommandID: "pending." + string(op)}
	}

	e.pending.Clear()
	if build, ok := e.pendingRegistry.GetChar(op); ok {
		if ch, ok := CharKey(key); ok {
			cmd := build(ch)
			return KeyResult{Consumed: true, Result: cmd.Execute(e), CommandID: cmd.ID()}
		}
	}
	// Unknown continuation: the sequence is abandoned.
	return KeyResult{Consumed: true, Result: Skipped, CommandID: "pending." + string(op)}
}

func (e *Editor) handleMatchDelimiter(key string) KeyResult {
	ch, ok := CharKey(key)
	if !ok {
		return KeyResult{Result: PassThrough}
	}
	pending := e.mode.Pending
	e.mode = normalMode()

	open, closing := DelimiterPair(ch)
	var (
		result ExecuteResult
		id     string
	)
	switch pending {
	case MatchInside:
		result, id = e.selectMatch(open, closing, false), "match.inside"
	case MatchAround:
		result, id = e.selectMatch(open, closing, true), "match.around"
	case MatchSurround:
		result, id = e.surroundAdd(open, closing), "surround.add"
	case MatchDelete:
		result, id = e.surroundDelete(open, closing), "surround.delete"
	default:
		result, id = Skipped, "match.none"
	}
	return KeyResult{Consumed: true, Result: result, CommandID: id}
}

// ============================================================================
// State helpers used by commands
// ============================================================================

// moveCursor places the cursor and, in Select, stretches the primary
// selection from the anchor to it.
func (e *Editor) moveCursor(p Position) {
	e.cursor = e.text.Clamp(p)
	if e.mode.Kind == ModeSelect {
		e.selections = e.selections.WithPrimary(e.selectRange(e.anchor, e.cursor, e.mode.LineWise))
	}
}

// selectRange builds the selection Select mode shows between anchor and
// head. Charwise ranges include the grapheme under the far end.
func (e *Editor) selectRange(anchor, head Position, lineWise bool) Selection {
	sel := NewSelection(anchor, head)
	if lineWise {
		ls := lineSelection(e.text, sel.Start.Line, sel.End.Line)
		ls.Anchor = sel.Anchor
		return ls
	}
	sel.End.Column = min(sel.End.Column+1, e.text.LineLen(sel.End.Line))
	return sel
}

// applyEdits rewrites the buffer and carries the cursor, the anchor and
// every selection through the offset ledger. Callers that want a specific
// result position set it afterwards.
func (e *Editor) applyEdits(edits []edit) []span {
	if len(edits) == 0 {
		return nil
	}
	old := e.text
	changed := false
	for _, ed := range edits {
		if old.Slice(old.PositionAt(ed.start), old.PositionAt(ed.end)) != ed.text {
			changed = true
			break
		}
	}
	text, spans, led := applyEdits(old, edits)

	mapPos := func(p Position) Position {
		return text.PositionAt(led.mapOffset(old.Offset(p)))
	}
	e.cursor = mapPos(e.cursor)
	e.anchor = mapPos(e.anchor)
	for i, sel := range e.selections {
		sel.Start = mapPos(sel.Start)
		sel.End = mapPos(sel.End)
		e.selections[i] = sel
	}

	e.text = text
	if changed {
		e.version++
	}
	e.clamp()
	return spans
}

// clamp restores the position invariants after an edit.
func (e *Editor) clamp() {
	e.cursor = e.text.Clamp(e.cursor)
	e.anchor = e.text.Clamp(e.anchor)
	for i, sel := range e.selections {
		sel.Start = e.text.Clamp(sel.Start)
		sel.End = e.text.Clamp(sel.End)
		if sel.LineWise {
			sel.Start.Column = 0
			sel.End.Column = e.text.LineLen(sel.End.Line)
		}
		e.selections[i] = sel
	}
}

// insertionPoints returns the offsets text is typed at: every selection's
// start, or the cursor when there are none.
func (e *Editor) insertionPoints() []int {
	if len(e.selections) == 0 {
		return []int{e.text.Offset(e.cursor)}
	}
	points := make([]int, len(e.selections))
	for i, sel := range e.selections {
		points[i] = e.text.Offset(sel.Start)
	}
	return points
}

// settleInsertion collapses every insertion point to where its edit ended
// and moves the cursor to the primary one.
func (e *Editor) settleInsertion(spans []span, atEnd bool) {
	pos := func(s span) Position {
		if atEnd {
			return e.text.PositionAt(s.end)
		}
		return e.text.PositionAt(s.start)
	}

	if len(e.selections) == 0 {
		if len(spans) > 0 && spans[0].ok {
			e.cursor = pos(spans[0])
		}
		return
	}

	var points Selections
	for i, s := range spans {
		if i >= len(e.selections) || !s.ok {
			continue
		}
		points = append(points, Collapsed(pos(s)))
	}
	e.selections = points
	if p, ok := e.selections.Primary(); ok {
		e.cursor = p.Start
	}
}

// insertText types s at every insertion point.
func (e *Editor) insertText(s string) {
	points := e.insertionPoints()
	edits := make([]edit, len(points))
	for i, p := range points {
		edits[i] = edit{start: p, end: p, text: s}
	}
	e.settleInsertion(e.applyEdits(edits), true)
}
