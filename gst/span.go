package gst

import "math"

// openEnd marks a leaf edge's upper bound as "grows with the string
// that created it" instead of a fixed index. Resolved to the string's
// current length wherever a consumer needs concrete bytes.
const openEnd = math.MaxInt32

// span is a Mapped Substring: a (string id, left, right) triple,
// inclusive on both ends, referencing stored[refID][l..r] instead of
// copying characters.
type span struct {
	refID int
	l, r  int
}

func (s span) empty() bool {
	return s.l > s.r
}

func (s span) length() int {
	if s.empty() {
		return 0
	}
	return s.r - s.l + 1
}

// resolvedRight returns r, or the live length-1 of the referenced
// string when the span is open-ended.
func (s span) resolvedRight(reg *registry) int {
	if s.r != openEnd {
		return s.r
	}
	return reg.length(s.refID) - 1
}
