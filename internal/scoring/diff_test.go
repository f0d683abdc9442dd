package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// join rebuilds one side of a diff from the kinds it is made of.
func join(segments []Segment, keep SegmentKind) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Kind == SegmentEqual || s.Kind == keep {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// TestDiff_Equal verifies a solved buffer is a single equal segment
func TestDiff_Equal(t *testing.T) {
	got := Diff("abc\n", "abc\r\n")
	require.Equal(t, []Segment{{Kind: SegmentEqual, Text: "abc"}}, got)
	require.Nil(t, Diff("", "  "))
}

// TestDiff_MissingAndExtra verifies both sides can be rebuilt
func TestDiff_MissingAndExtra(t *testing.T) {
	got := Diff("hello world", "hello there")

	require.Equal(t, "hello world", join(got, SegmentMissing))
	require.Equal(t, "hello there", join(got, SegmentExtra))
	require.Equal(t, SegmentEqual, got[0].Kind)
}

// TestDiff_Reconstructs verifies the segments always rebuild both inputs
func TestDiff_Reconstructs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		alphabet := rapid.SampledFrom([]rune("ab \n("))
		target := string(rapid.SliceOfN(alphabet, 0, 20).Draw(t, "target"))
		current := string(rapid.SliceOfN(alphabet, 0, 20).Draw(t, "current"))

		segs := Diff(target, current)
		if got := join(segs, SegmentMissing); got != Normalize(target) {
			t.Fatalf("target rebuilt as %q, want %q", got, Normalize(target))
		}
		if got := join(segs, SegmentExtra); got != Normalize(current) {
			t.Fatalf("current rebuilt as %q, want %q", got, Normalize(current))
		}
	})
}

// TestDiff_NormalizesInputs verifies raw and pre-normalized inputs give
// the same segments
func TestDiff_NormalizesInputs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		alphabet := rapid.SampledFrom([]string{"a", " ", "\n", "\r\n"})
		target := strings.Join(rapid.SliceOfN(alphabet, 0, 12).Draw(t, "target"), "")
		current := strings.Join(rapid.SliceOfN(alphabet, 0, 12).Draw(t, "current"), "")

		require.Equal(t, Diff(Normalize(target), Normalize(current)), Diff(target, current))
	})
}

// TestDistance verifies the edit distance of normalized texts
func TestDistance(t *testing.T) {
	require.Equal(t, 0, Distance("abc", "abc\n"))
	require.Equal(t, 1, Distance("abc", "abd"))
	require.Equal(t, 3, Distance("abc", ""))
}
