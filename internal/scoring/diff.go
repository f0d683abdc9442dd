package scoring

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// SegmentKind says how a diff segment relates the target to the buffer.
type SegmentKind int

const (
	// SegmentEqual is text present in both.
	SegmentEqual SegmentKind = iota
	// SegmentMissing is target text the buffer lacks.
	SegmentMissing
	// SegmentExtra is buffer text the target does not have.
	SegmentExtra
)

// String returns a short label for the kind.
func (k SegmentKind) String() string {
	switch k {
	case SegmentEqual:
		return "equal"
	case SegmentMissing:
		return "missing"
	case SegmentExtra:
		return "extra"
	default:
		return "unknown"
	}
}

// Segment is one run of a target/current diff.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Diff compares the normalized target with the normalized current buffer.
// Joining the Equal and Missing segments gives the target back; joining
// Equal and Extra gives the buffer.
func Diff(target, current string) []Segment {
	target, current = Normalize(target), Normalize(current)
	if target == current {
		if target == "" {
			return nil
		}
		return []Segment{{Kind: SegmentEqual, Text: target}}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(target, current, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	segments := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		var kind SegmentKind
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			kind = SegmentEqual
		case diffmatchpatch.DiffDelete:
			kind = SegmentMissing
		case diffmatchpatch.DiffInsert:
			kind = SegmentExtra
		}
		segments = append(segments, Segment{Kind: kind, Text: d.Text})
	}
	return segments
}

// Distance is the edit distance between the normalized target and buffer.
func Distance(target, current string) int {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(Normalize(target), Normalize(current), false)
	return dmp.DiffLevenshtein(diffs)
}
