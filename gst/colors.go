package gst

// ComputeColors recomputes every node's color bitmask if the tree has
// been mutated since the last computation. Idempotent: a second call
// against a clean tree is a no-op.
func (t *Tree) ComputeColors() {
	if t.colorsClean {
		return
	}

	for id := 1; id <= t.registry.count(); id++ {
		t.markLeavesForString(id)
	}
	computeColorsDFS(t.graph.root)

	t.colorsClean = true
}

// markLeavesForString walks every suffix of the given string from
// root to the leaf it must end at (guaranteed to exist by correctness
// of Ukkonen's algorithm with per-string sentinels) and marks that
// leaf with the string's id.
func (t *Tree) markLeavesForString(id int) {
	str := t.registry.view(id)

	for start := 0; start < len(str); start++ {
		current := t.graph.root
		pos := start

		for pos < len(str) {
			trans := current.findTransition(str[pos])
			if !trans.valid() {
				break
			}

			edgeStr := t.registry.view(trans.sub.refID)
			edgeLen := trans.sub.resolvedRight(t.registry) - trans.sub.l + 1

			matchLen := 0
			for i := 0; i < edgeLen && pos+i < len(str); i++ {
				if str[pos+i] != edgeStr[trans.sub.l+i] {
					break
				}
				matchLen++
			}

			pos += matchLen
			current = trans.tgt

			if current.isLeaf() {
				current.markString(id, MaxStrings)
				break
			}
		}
	}
}

// computeColorsDFS is the post-order propagation pass: a node's mask
// becomes the union of its own mask, its children's accumulated
// masks, and — belt and braces — the refID of each outgoing edge
// whose provenance is known even if the leaf-marking pass never
// reached it directly.
func computeColorsDFS(n *node) ColorSet {
	if n == nil {
		return 0
	}

	if n.isLeaf() {
		return n.colors
	}

	var accumulated ColorSet
	for _, trans := range n.transitions {
		if trans.sub.refID > 0 && trans.sub.refID <= MaxStrings {
			accumulated = accumulated.set(trans.sub.refID - 1)
		}
		accumulated = accumulated.union(computeColorsDFS(trans.tgt))
	}

	n.colors = accumulated
	return accumulated
}
