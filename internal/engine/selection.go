package engine

// Anchor says which end of a selection stays put while the other end
// follows the cursor.
type Anchor int

const (
	// AnchorStart keeps Start fixed; the cursor side is End.
	AnchorStart Anchor = iota
	// AnchorEnd keeps End fixed; the cursor side is Start.
	AnchorEnd
)

// Selection is the half-open range [Start, End) in document order.
// LineWise selections always span whole lines and are removed together
// with their line break by delete.
type Selection struct {
	Start    Position
	End      Position
	Anchor   Anchor
	LineWise bool
}

// NewSelection builds a selection from an anchor point to a head point,
// ordering the ends.
func NewSelection(anchor, head Position) Selection {
	if head.Less(anchor) {
		return Selection{Start: head, End: anchor, Anchor: AnchorEnd}
	}
	return Selection{Start: anchor, End: head, Anchor: AnchorStart}
}

// Collapsed returns an empty selection at p. Insert mode uses these as
// insertion points.
func Collapsed(p Position) Selection {
	return Selection{Start: p, End: p}
}

// Empty reports whether the selection covers no text.
func (s Selection) Empty() bool {
	return s.Start == s.End
}

// Head is the end opposite the anchor.
func (s Selection) Head() Position {
	if s.Anchor == AnchorEnd {
		return s.Start
	}
	return s.End
}

// Selections is an ordered selection list. The last element is primary.
type Selections []Selection

// Primary returns the last selection.
func (s Selections) Primary() (Selection, bool) {
	if len(s) == 0 {
		return Selection{}, false
	}
	return s[len(s)-1], true
}

// WithPrimary returns a copy whose primary is replaced by sel, or a
// single-element list when s is empty.
func (s Selections) WithPrimary(sel Selection) Selections {
	if len(s) == 0 {
		return Selections{sel}
	}
	out := s.Clone()
	out[len(out)-1] = sel
	return out
}

// Clone copies the list.
func (s Selections) Clone() Selections {
	if s == nil {
		return nil
	}
	out := make(Selections, len(s))
	copy(out, s)
	return out
}

// NonEmpty drops collapsed selections, keeping order.
func (s Selections) NonEmpty() Selections {
	var out Selections
	for _, sel := range s {
		if !sel.Empty() {
			out = append(out, sel)
		}
	}
	return out
}

// lineSelection covers lines first..last from column 0 to the end of last.
func lineSelection(t Text, first, last int) Selection {
	return Selection{
		Start:    Position{Line: first},
		End:      Position{Line: last, Column: t.LineLen(last)},
		LineWise: true,
	}
}

// isFullLines reports whether sel covers whole lines.
func isFullLines(t Text, sel Selection) bool {
	return sel.Start.Column == 0 && sel.End.Column == t.LineLen(sel.End.Line)
}
