package challenge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChallenge(id string, cat Category) Challenge {
	return Challenge{ID: id, Name: id, Difficulty: Easy, Category: cat, Initial: "a", Target: "b"}
}

func TestBuiltin_Loads(t *testing.T) {
	cat, err := Builtin()
	require.NoError(t, err)
	require.Equal(t, 19, cat.Len())

	first := cat.All()[0]
	assert.Equal(t, "basic-hjkl", first.ID)
	assert.Equal(t, "Start here\nNavigate to\nthe X mark", first.Initial)
	assert.Equal(t, SourceBuiltin, first.Source)

	for _, ch := range cat.All() {
		assert.NoError(t, ch.validate(), ch.ID)
		assert.NotEmpty(t, ch.Hints, ch.ID)
	}
}

func TestBuiltin_KnownEntries(t *testing.T) {
	cat, err := Builtin()
	require.NoError(t, err)

	ch, err := cat.ByID("indent-code")
	require.NoError(t, err)
	assert.Equal(t, "if true:\nprint(\"indented\")", ch.Initial)
	assert.Equal(t, "if true:\n    print(\"indented\")", ch.Target)
	assert.Equal(t, 4, ch.OptimalKeystrokes)

	ch, err = cat.ByID("extend-selection")
	require.NoError(t, err)
	assert.Equal(t, "[these]", ch.Target)
	assert.Equal(t, Medium, ch.Difficulty)

	ch, err = cat.ByID("undo-redo")
	require.NoError(t, err)
	assert.Equal(t, 0, ch.OptimalKeystrokes)
}

func TestCatalog_ByIDNotFound(t *testing.T) {
	cat, err := NewCatalog([]Challenge{testChallenge("a", Movement)})
	require.NoError(t, err)

	_, err = cat.ByID("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNewCatalog_Duplicate(t *testing.T) {
	_, err := NewCatalog([]Challenge{testChallenge("a", Movement), testChallenge("a", Change)})
	require.True(t, errors.Is(err, ErrDuplicateID))
}

func TestCatalog_ByCategoryAndCategories(t *testing.T) {
	cat, err := Builtin()
	require.NoError(t, err)

	movement := cat.ByCategory(Movement)
	ids := make([]string, len(movement))
	for i, ch := range movement {
		ids[i] = ch.ID
	}
	assert.Equal(t, []string{"basic-hjkl", "word-navigation", "find-and-select"}, ids)
	assert.Equal(t, AllCategories, cat.Categories())

	small, err := NewCatalog([]Challenge{testChallenge("s", Surround), testChallenge("m", Movement)})
	require.NoError(t, err)
	assert.Equal(t, []Category{Movement, Surround}, small.Categories())
}

func TestCatalog_Next(t *testing.T) {
	cat, err := Builtin()
	require.NoError(t, err)

	next, ok := cat.Next("basic-hjkl")
	require.True(t, ok)
	require.Equal(t, "word-navigation", next.ID)

	_, ok = cat.Next("undo-redo")
	require.False(t, ok, "last challenge has no successor")

	_, ok = cat.Next("nope")
	require.False(t, ok)
}

func TestCatalog_MergeOverridesInPlace(t *testing.T) {
	base, err := NewCatalog([]Challenge{testChallenge("a", Movement), testChallenge("b", Change)})
	require.NoError(t, err)

	override := testChallenge("a", Movement)
	override.Name = "custom"
	override.Source = SourceUser
	merged := base.Merge([]Challenge{override, testChallenge("c", Surround)})

	require.Equal(t, 3, merged.Len())
	got, err := merged.ByID("a")
	require.NoError(t, err)
	require.Equal(t, "custom", got.Name)
	require.Equal(t, "a", merged.All()[0].ID, "override keeps its position")
	require.Equal(t, "c", merged.All()[2].ID)

	orig, err := base.ByID("a")
	require.NoError(t, err)
	require.Equal(t, "a", orig.Name, "base catalog is untouched")
	require.Equal(t, 2, base.Len())
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	cat, err := NewCatalog([]Challenge{testChallenge("a", Movement)})
	require.NoError(t, err)

	all := cat.All()
	all[0].ID = "mutated"
	got, err := cat.ByID("a")
	require.NoError(t, err)
	require.Equal(t, "a", got.ID)
}

func TestCategory_Label(t *testing.T) {
	assert.Equal(t, "Movement", Movement.Label())
	assert.Equal(t, "Multi-cursor", MultiCursor.Label())
	assert.Equal(t, "", Category("").Label())
}
