package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Columns throughout the engine are grapheme indices, never byte offsets.
// "é" written as e + combining accent is one column, as is a flag emoji.

// graphemeCount returns the number of grapheme clusters in s.
func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// graphemes splits s into its grapheme clusters.
func graphemes(s string) []string {
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		out = append(out, cluster)
	}
	return out
}

// sliceGraphemes returns the clusters of s in [start, end). Out of range
// bounds are clamped.
func sliceGraphemes(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}

	var b strings.Builder
	idx := 0
	state := -1
	for len(s) > 0 && idx < end {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		if idx >= start {
			b.WriteString(cluster)
		}
		idx++
	}
	return b.String()
}

// graphemeSuffix returns s from grapheme index start to the end.
func graphemeSuffix(s string, start int) string {
	if start <= 0 {
		return s
	}
	idx := 0
	state := -1
	for len(s) > 0 {
		if idx == start {
			return s
		}
		_, s, _, state = uniseg.StepString(s, state)
		idx++
	}
	return ""
}

// isSpace reports whether the cluster starts with a whitespace rune.
func isSpace(g string) bool {
	r, _ := utf8.DecodeRuneInString(g)
	return unicode.IsSpace(r)
}

// toggleCase swaps upper and lower case letters, leaving everything else.
func toggleCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		default:
			return r
		}
	}, s)
}
