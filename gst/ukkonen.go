package gst

// update extends the implicit tree by the character at position r of
// stored[refID]. The pair (n, refID, l, r-1) must already be
// canonical — the active position before this character was added.
//
// It walks the border path from the active point to the first
// existing endpoint, wiring a new leaf (or splitting an edge into a
// fresh internal node) at every implicit position along the way and
// chaining suffix links between them as it goes. This loop is what
// gives Ukkonen's algorithm its amortized linear time: each character
// does O(1) work across the whole run because the number of new
// nodes created over the life of the tree is bounded by its final
// size.
func update(reg *registry, g *graph, n *node, refID, l, r int) (*node, int) {
	w := reg.view(refID)
	oldr := g.root

	l1, r1 := l, r-1
	skNode, skPos := n, l

	isEndpoint, rOut, _ := testAndSplit(reg, n, refID, l1, r1, w[r], w)

	for !isEndpoint {
		leaf := g.createLeaf()
		rOut.setTransition(w[r], transition{sub: span{refID: refID, l: r, r: openEnd}, tgt: leaf})
		leaf.markString(refID, MaxStrings)

		if oldr != g.root {
			oldr.suffixLink = rOut
		}
		oldr = rOut

		skNode, skPos = canonize(reg, skNode.suffixLink, refID, l1, r1)
		l1 = skPos

		isEndpoint, rOut, _ = testAndSplit(reg, skNode, refID, l1, r1, w[r], w)
	}

	if oldr != g.root {
		oldr.suffixLink = skNode
	}

	return skNode, skPos
}
