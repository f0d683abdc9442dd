package engine

// ============================================================================
// Match and Surround
// ============================================================================
//
// m enters Match mode; i, a, s or d picks the sub-command and the next
// printable character names the delimiter. Matching is a plain forward
// scan: the first open delimiter at or after the cursor, then the first
// close after it. Nesting is not tracked.

var delimiterPairs = map[string]string{
	"(": ")",
	"[": "]",
	"{": "}",
}

// DelimiterPair returns the open and close characters for ch. The three
// opening brackets map to their closing partner; any other character,
// quotes included, pairs with itself.
func DelimiterPair(ch string) (open, closing string) {
	if c, ok := delimiterPairs[ch]; ok {
		return ch, c
	}
	return ch, ch
}

// EnterMatchCommand enters Match mode (m).
type EnterMatchCommand struct {
	ModeEntryBase
}

// Execute does nothing; the mode switch comes from Transition.
func (c *EnterMatchCommand) Execute(e *Editor) ExecuteResult { return Executed }

func (c *EnterMatchCommand) Keys() []string { return []string{"m"} }
func (c *EnterMatchCommand) Mode() ModeKind { return ModeNormal }
func (c *EnterMatchCommand) ID() string     { return "mode.match" }

// MatchPendingCommand records which match sub-command is waiting for a
// delimiter (mi, ma, ms, md).
type MatchPendingCommand struct {
	ModeEntryBase
	pending MatchPending
}

// Execute does nothing; the pending flag lives in the mode.
func (c *MatchPendingCommand) Execute(e *Editor) ExecuteResult { return Executed }

func (c *MatchPendingCommand) Keys() []string { return []string{c.pending.key()} }
func (c *MatchPendingCommand) Mode() ModeKind { return ModeMatch }

func (c *MatchPendingCommand) ID() string {
	switch c.pending {
	case MatchInside:
		return "match.pending_inside"
	case MatchAround:
		return "match.pending_around"
	case MatchSurround:
		return "match.pending_surround"
	case MatchDelete:
		return "match.pending_delete"
	default:
		return "match.pending"
	}
}

// findPair locates the delimiters by forward scan from the cursor and
// returns their offsets.
func (e *Editor) findPair(open, closing string) (int, int, bool) {
	o := e.text.Index(open, e.text.Offset(e.cursor))
	if o < 0 {
		return 0, 0, false
	}
	c := e.text.Index(closing, o+1)
	if c < 0 {
		return 0, 0, false
	}
	return o, c, true
}

// selectMatch replaces the selections with the span between (mi) or
// including (ma) the next delimiter pair.
func (e *Editor) selectMatch(open, closing string, around bool) ExecuteResult {
	o, c, ok := e.findPair(open, closing)
	if !ok {
		return Skipped
	}
	start, end := o+1, c
	if around {
		start, end = o, c+1
	}
	sel := Selection{Start: e.text.PositionAt(start), End: e.text.PositionAt(end)}
	e.selections = Selections{sel}
	e.cursor = sel.Start
	return Executed
}

// surroundAdd wraps every selection in the pair. The selections grow to
// cover the delimiters.
func (e *Editor) surroundAdd(open, closing string) ExecuteResult {
	if len(e.selections) == 0 {
		return Skipped
	}
	edits := make([]edit, len(e.selections))
	for i, sel := range e.selections {
		edits[i] = edit{
			start: e.text.Offset(sel.Start),
			end:   e.text.Offset(sel.End),
			text:  open + e.text.Slice(sel.Start, sel.End) + closing,
		}
	}
	spans := e.applyEdits(edits)
	for i, s := range spans {
		if !s.ok {
			continue
		}
		e.selections[i].Start = e.text.PositionAt(s.start)
		e.selections[i].End = e.text.PositionAt(s.end)
		e.selections[i].LineWise = false
	}
	return Executed
}

// surroundDelete removes the next delimiter pair found the same way ma
// finds it, leaving the enclosed text selected.
func (e *Editor) surroundDelete(open, closing string) ExecuteResult {
	o, c, ok := e.findPair(open, closing)
	if !ok {
		return Skipped
	}
	e.applyEdits([]edit{
		{start: o, end: o + 1},
		{start: c, end: c + 1},
	})
	e.selections = Selections{{Start: e.text.PositionAt(o), End: e.text.PositionAt(c - 1)}}
	e.cursor = e.text.PositionAt(o)
	return Executed
}
