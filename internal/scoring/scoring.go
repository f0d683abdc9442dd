// Package scoring judges challenge attempts: whether the buffer matches
// the target, and how efficiently it got there.
package scoring

import (
	"math"
	"strings"
)

// Scoring constants.
const (
	// BaseScore is awarded for a solve with no penalties.
	BaseScore = 1000
	// KeystrokePenalty is deducted per keystroke over the optimal count.
	KeystrokePenalty = 10
	// HintPenalty is deducted per hint revealed.
	HintPenalty = 100
	// GraceSeconds is how long an attempt may take before the time penalty
	// starts at one point per second.
	GraceSeconds = 30
)

// Result is the record of a solved challenge. It is created once, the
// first time Validate reports a match, and never changes afterwards.
type Result struct {
	Completed         bool  `json:"completed"`
	Keystrokes        int   `json:"keystrokes"`
	OptimalKeystrokes int   `json:"optimal_keystrokes"`
	ElapsedMs         int64 `json:"elapsed_ms"`
	HintsUsed         int   `json:"hints_used"`
}

// Score returns the points the result earns.
func (r Result) Score() int {
	return CalculateScore(r.Keystrokes, r.OptimalKeystrokes, r.HintsUsed, r.ElapsedMs)
}

// Stars returns the 1 to 3 star rating of the result.
func (r Result) Stars() int {
	return StarRating(r.Keystrokes, r.OptimalKeystrokes, r.HintsUsed)
}

// Normalize converts CRLF line endings to LF and trims surrounding
// whitespace.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

// Validate reports whether current matches target once both are
// normalized. initial is accepted so callers can pass the whole challenge
// but does not take part in the comparison.
func Validate(initial, target, current string) bool {
	return Normalize(current) == Normalize(target)
}

// CalculateScore computes
//
//	max(0, round(1000 - 10*max(0, keystrokes-optimal) - 100*hints - max(0, elapsed/1000 - 30)))
//
// Halves round up.
func CalculateScore(keystrokes, optimal, hintsUsed int, elapsedMs int64) int {
	score := float64(BaseScore)
	score -= float64(max(0, keystrokes-optimal) * KeystrokePenalty)
	score -= float64(hintsUsed * HintPenalty)
	score -= math.Max(0, float64(elapsedMs)/1000-GraceSeconds)

	rounded := int(math.Floor(score + 0.5))
	return max(0, rounded)
}

// StarRating returns 3 for an optimal solve without hints, 2 for one
// within three extra keys, and 1 otherwise. Any hint caps the rating at 1.
func StarRating(keystrokes, optimal, hintsUsed int) int {
	switch {
	case hintsUsed > 0:
		return 1
	case keystrokes <= optimal:
		return 3
	case keystrokes <= optimal+3:
		return 2
	default:
		return 1
	}
}
