package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNew_Defaults verifies a fresh editor is empty and in Normal
func TestNew_Defaults(t *testing.T) {
	e := New(Config{})

	require.Equal(t, "", e.Value())
	require.Equal(t, Position{}, e.Cursor())
	require.Empty(t, e.Selections())
	require.Equal(t, normalMode(), e.Mode())
	require.Equal(t, "    ", e.IndentUnit())
}

// TestLoad_ResetsState verifies Load clears cursor, selections, mode,
// pending keys and registers
func TestLoad_ResetsState(t *testing.T) {
	e := newTestEditor("one", "two")
	press(e, "xyjv")
	e.HandleKey("g")
	require.NotEmpty(t, e.Pending())

	before := e.Version()
	e.Load("fresh")
	require.Equal(t, "fresh", e.Value())
	require.Equal(t, Position{}, e.Cursor())
	require.Empty(t, e.Selections())
	require.Equal(t, normalMode(), e.Mode())
	require.Empty(t, e.Pending())
	require.Empty(t, e.Register(DefaultRegister))
	require.Greater(t, e.Version(), before)
}

// TestHandleKey_Result verifies the per-key report
func TestHandleKey_Result(t *testing.T) {
	e := newTestEditor("abc")

	res := e.HandleKey("i")
	require.Equal(t, "i", res.Key)
	require.True(t, res.Consumed)
	require.True(t, res.ModeChanged)
	require.False(t, res.ContentChanged)
	require.Equal(t, ModeInsert, res.Mode.Kind)
	require.Equal(t, "mode.insert", res.CommandID)

	res = e.HandleKey("z")
	require.True(t, res.ContentChanged)
	require.False(t, res.ModeChanged)
	require.Equal(t, "insert.text", res.CommandID)
	require.Equal(t, "zabc", e.Value())
}

// TestHandleKey_UnknownKeyIgnored verifies unbound keys pass through
// without touching state
func TestHandleKey_UnknownKeyIgnored(t *testing.T) {
	e := newTestEditor("abc")
	e.cursor = Position{0, 1}

	for _, key := range []string{"Q", "!", KeyEnter, KeyBackspace} {
		res := e.HandleKey(key)
		require.False(t, res.Consumed, key)
		require.Equal(t, PassThrough, res.Result, key)
	}
	require.Equal(t, "abc", e.Value())
	require.Equal(t, Position{0, 1}, e.Cursor())
}

// TestInsert_TypingAndEscape verifies typed text lands at the cursor and
// escape keeps it
func TestInsert_TypingAndEscape(t *testing.T) {
	e := newTestEditor("world")

	press(e, "ihello <Esc>")
	require.Equal(t, "hello world", e.Value())
	require.Equal(t, Position{0, 6}, e.Cursor())
	require.Equal(t, normalMode(), e.Mode())
}

// TestInsert_Append verifies a and A
func TestInsert_Append(t *testing.T) {
	e := newTestEditor("ac")
	press(e, "ab<Esc>")
	require.Equal(t, "abc", e.Value())

	press(e, "A!<Esc>")
	require.Equal(t, "abc!", e.Value())
}

// TestInsert_LineStart verifies I skips leading whitespace
func TestInsert_LineStart(t *testing.T) {
	e := newTestEditor("    body")
	e.cursor = Position{0, 6}

	press(e, "I// <Esc>")
	require.Equal(t, "    // body", e.Value())
}

// TestInsert_NamedKeys verifies Enter, Tab, Backspace and Delete in Insert
func TestInsert_NamedKeys(t *testing.T) {
	e := newTestEditor("ab")
	e.cursor = Position{0, 1}

	press(e, "i<Enter>")
	require.Equal(t, "a\nb", e.Value())
	require.Equal(t, Position{1, 0}, e.Cursor())

	press(e, "<BS>")
	require.Equal(t, "ab", e.Value())
	require.Equal(t, Position{0, 1}, e.Cursor())

	press(e, "<Del>")
	require.Equal(t, "a", e.Value())

	press(e, "<Tab>")
	require.Equal(t, "a    ", e.Value())

	res := e.HandleKey(KeyDelete)
	require.Equal(t, Skipped, res.Result)
}

// TestInsert_BackspaceAtStart verifies backspace at the buffer start does
// nothing
func TestInsert_BackspaceAtStart(t *testing.T) {
	e := newTestEditor("x")
	e.HandleKey("i")

	res := e.HandleKey(KeyBackspace)
	require.Equal(t, Skipped, res.Result)
	require.Equal(t, "x", e.Value())
}

// TestInsert_ArrowKeys verifies arrows move the cursor without leaving
// Insert
func TestInsert_ArrowKeys(t *testing.T) {
	e := newTestEditor("abc", "def")

	press(e, "i<Right><Down>X")
	require.Equal(t, "abc\ndXef", e.Value())
	require.Equal(t, ModeInsert, e.Mode().Kind)
}

// TestMultiCursor_ChangeEverySelection verifies typing after c applies at
// every insertion point
func TestMultiCursor_ChangeEverySelection(t *testing.T) {
	e := newTestEditor("foo = 1", "foo = 2", "foo = 3")

	press(e, "veCC")
	require.Len(t, e.Selections(), 3)

	press(e, "cbar<Esc>")
	require.Equal(t, "bar = 1\nbar = 2\nbar = 3", e.Value())
	require.Empty(t, e.Selections())
	require.Equal(t, normalMode(), e.Mode())
}

// TestMultiCursor_InsertBefore verifies i keeps one insertion point per
// selection
func TestMultiCursor_InsertBefore(t *testing.T) {
	e := newTestEditor("x", "y")
	e.selections = Selections{sel(0, 0, 0, 1), sel(1, 0, 1, 1)}

	press(e, "i- <Esc>")
	require.Equal(t, "- x\n- y", e.Value())
	require.Equal(t, Position{1, 2}, e.Cursor())
}

// TestEscape_ClearsPendingEverywhere verifies escape drops every partial
// sequence and returns to Normal
func TestEscape_ClearsPendingEverywhere(t *testing.T) {
	for _, script := range []string{"g", "r", "f", "t", "m", "mi", "ms", "v", "V", "i"} {
		e := newTestEditor("abc")
		press(e, script)
		e.HandleKey(KeyEscape)

		require.Equal(t, normalMode(), e.Mode(), script)
		require.Empty(t, e.Pending(), script)
	}
}

// TestSnapshot verifies the render view mirrors editor state
func TestSnapshot(t *testing.T) {
	e := newTestEditor("one", "two")
	press(e, "xy")

	s := e.Snapshot()
	require.Equal(t, "one\ntwo", s.Text)
	require.Equal(t, []string{"one", "two"}, s.Lines)
	require.Equal(t, Position{1, 0}, s.Cursor)
	require.Len(t, s.Selections, 1)
	require.Equal(t, "NORMAL", s.ModeLabel)
	require.Equal(t, "one", s.Register)

	s.Selections[0] = Selection{}
	require.NotEqual(t, Selection{}, e.Selections()[0], "snapshot selections are a copy")
}

// TestVersion_OnlyOnChange verifies motions leave the version alone
func TestVersion_OnlyOnChange(t *testing.T) {
	e := newTestEditor("abc")
	v := e.Version()

	press(e, "llhx")
	require.Equal(t, v, e.Version())

	e.HandleKey("d")
	require.Equal(t, v+1, e.Version())
}
