package engine

import "strings"

// newTestEditor creates an editor holding the given lines.
func newTestEditor(lines ...string) *Editor {
	e := New(Config{})
	e.Load(strings.Join(lines, "\n"))
	return e
}

// press feeds a key script to the editor.
func press(e *Editor, script string) {
	for _, key := range ParseKeys(script) {
		e.HandleKey(key)
	}
}

// sel builds a charwise selection between two positions on the same or
// different lines.
func sel(startLine, startCol, endLine, endCol int) Selection {
	return Selection{
		Start: Position{Line: startLine, Column: startCol},
		End:   Position{Line: endLine, Column: endCol},
	}
}
