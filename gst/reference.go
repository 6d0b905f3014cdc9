package gst

// refPoint is a canonical reference pair: a position (node, on-edge
// offset) in the tree. When l > r the position is exactly at node;
// otherwise it is r-l+1 characters into the edge leaving node that
// begins with stored[refID][l].
type refPoint struct {
	node  *node
	refID int
	pos   int
}

// canonize shortens (n, span{refID,l,r}) to its canonical form: it
// walks down edges while the remaining span is at least as long as
// the edge leaving n, so the returned pair either sits exactly at a
// node or strictly inside a single edge. An empty input span is
// already canonical.
func canonize(reg *registry, n *node, refID, l, r int) (*node, int) {
	if r < l {
		return n, l
	}

	str := reg.view(refID)
	edge := n.findTransition(str[l])

	for {
		// Deliberately uses the raw (possibly open-ended) r, not the
		// resolved current length: an open edge always leads to a
		// leaf, and a leaf has no further transitions, so the
		// canonical position must never be reported as "past" one.
		// Open-ended spans compare as effectively infinite here,
		// which keeps canonize from ever stepping onto a leaf.
		edgeLen := edge.sub.r - edge.sub.l
		if n.kind == kindSink {
			// The sink's synthetic transition carries an empty span but
			// stands for exactly one character of input.
			edgeLen = 0
		}
		if edgeLen > r-l {
			break
		}
		l += edgeLen + 1
		n = edge.tgt
		if l > r {
			break
		}
		edge = n.findTransition(str[l])
	}

	return n, l
}

// testAndSplit answers: does the position (n, span{refID,l,r}) already
// have a continuation with byte t against source w? If the position
// lies strictly inside an edge and the continuation diverges, the
// edge is split and the newly materialized internal node is returned.
func testAndSplit(reg *registry, n *node, refID, l, r int, t byte, w []byte) (isEndpoint bool, rOut *node, split bool) {
	if r < l {
		trans := n.findTransition(t)
		if trans.valid() && refID > 0 {
			trans.tgt.markString(refID, MaxStrings)
		}
		return trans.valid(), n, false
	}

	delta := r - l
	edge := n.findTransition(w[l])
	kpPrime := edge.sub

	strPrime := reg.view(kpPrime.refID)
	if strPrime[kpPrime.l+delta+1] == t {
		return true, n, false
	}

	rNew := newNode(kindInternal)

	continuation := edge
	continuation.sub.l = kpPrime.l + delta + 1
	rNew.setTransition(reg.charAt(kpPrime.refID, continuation.sub.l), continuation)

	shortened := edge
	shortened.sub.r = kpPrime.l + delta
	shortened.tgt = rNew
	n.setTransition(w[l], shortened)

	return false, rNew, true
}
