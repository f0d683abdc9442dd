package engine

import "sort"

// edit replaces the offset range [start, end) with text.
type edit struct {
	start int
	end   int
	text  string
}

// span is where an edit's text landed in the new buffer. ok is false for
// an edit dropped because it overlapped one to its left.
type span struct {
	start int
	end   int
	ok    bool
}

// ledgerEntry records one applied edit in old-buffer offsets.
type ledgerEntry struct {
	start  int
	end    int
	newLen int
}

// ledger maps offsets in the old buffer to offsets in the new one.
// Entries are sorted by start and never overlap.
type ledger []ledgerEntry

// mapOffset shifts off past every edit to its left. An offset inside a
// replaced range moves to the end of the replacement; an offset sitting
// exactly at an edit's start stays in front of the inserted text.
func (l ledger) mapOffset(off int) int {
	delta := 0
	for _, en := range l {
		if off <= en.start {
			break
		}
		if off < en.end {
			return en.start + delta + en.newLen
		}
		delta += en.newLen - (en.end - en.start)
	}
	return off + delta
}

// applyEdits applies every non-overlapping edit to t, right to left so
// earlier offsets stay valid, and returns the new text, the landing span
// of each edit (indexed like edits) and the offset ledger.
func applyEdits(t Text, edits []edit) (Text, []span, ledger) {
	order := make([]int, len(edits))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return edits[order[a]].start < edits[order[b]].start
	})

	spans := make([]span, len(edits))
	kept := make([]int, 0, len(edits))
	led := make(ledger, 0, len(edits))
	delta := 0
	lastEnd := -1
	for _, i := range order {
		e := edits[i]
		if e.start < lastEnd {
			continue
		}
		n := graphemeCount(e.text)
		spans[i] = span{start: e.start + delta, end: e.start + delta + n, ok: true}
		delta += n - (e.end - e.start)
		lastEnd = e.end
		kept = append(kept, i)
		led = append(led, ledgerEntry{start: e.start, end: e.end, newLen: n})
	}

	for k := len(kept) - 1; k >= 0; k-- {
		e := edits[kept[k]]
		t = t.Replace(t.PositionAt(e.start), t.PositionAt(e.end), e.text)
	}
	return t, spans, led
}
