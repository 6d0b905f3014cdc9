package gst

// IsSubstring reports whether q occurs as a contiguous substring of
// some inserted string. Ill-formed queries (containing the sentinel)
// deterministically return false rather than failing.
func (t *Tree) IsSubstring(q []byte) bool {
	if t.registry.containsSentinel(q) {
		return false
	}

	r := refPoint{node: t.graph.root, refID: -1, pos: 0}
	return startingNode(t.registry, &r, q) == noDivergence
}

// IsSuffix reports whether q is a suffix of some inserted string.
func (t *Tree) IsSuffix(q []byte) bool {
	if t.registry.containsSentinel(q) {
		return false
	}

	s := make([]byte, len(q)+1)
	copy(s, q)
	s[len(q)] = t.registry.sentinel

	r := refPoint{node: t.graph.root, refID: -1, pos: 0}
	return startingNode(t.registry, &r, s) == noDivergence
}

// Node is the read-only traversal handle external consumers (a
// visualizer, a REPL, a distinguishing-substring analysis) use to
// walk the tree: enumerate a node's children, resolve an edge's
// label, and inspect a node's color set.
type Node struct {
	n   *node
	reg *registry
}

// Edge is one outgoing transition resolved to concrete label bytes.
type Edge struct {
	Label []byte
	Target *Node
}

// Root returns the traversal handle for the tree's root.
func (t *Tree) Root() *Node {
	return &Node{n: t.graph.root, reg: t.registry}
}

// Colors returns the node's color bitmask. Callers that need it
// up to date should call Tree.ComputeColors first.
func (n *Node) Colors() ColorSet {
	return n.n.colors
}

// IsLeaf reports whether the node has no outgoing transitions.
func (n *Node) IsLeaf() bool {
	return n.n.isLeaf()
}

// Children returns every outgoing edge, label resolved to bytes, in
// no particular order (the underlying transition map is unordered).
func (n *Node) Children() []Edge {
	out := make([]Edge, 0, len(n.n.transitions))
	for _, trans := range n.n.transitions {
		out = append(out, Edge{
			Label:  resolveLabel(n.reg, trans.sub),
			Target: &Node{n: trans.tgt, reg: n.reg},
		})
	}
	return out
}

func resolveLabel(reg *registry, s span) []byte {
	if s.empty() {
		return nil
	}
	str := reg.view(s.refID)
	right := s.resolvedRight(reg)
	if right >= len(str) {
		right = len(str) - 1
	}
	out := make([]byte, right-s.l+1)
	copy(out, str[s.l:right+1])
	return out
}

// EnumeratePaths walks from the given node, accumulating path bytes,
// and groups every visited node with a non-empty color set by that
// bitmask. A singleton bitmask emits just the first byte of the path
// (a compact "this subtree belongs to exactly one string" marker);
// a union emits the full path with any trailing sentinel trimmed.
func (t *Tree) EnumeratePaths(from *Node) map[ColorSet][]string {
	t.ComputeColors()

	result := make(map[ColorSet][]string)
	enumerateDFS(from.n, t.registry, nil, result)
	return result
}

func enumerateDFS(n *node, reg *registry, path []byte, result map[ColorSet][]string) {
	if n == nil {
		return
	}

	colors := n.colors
	if !colors.IsZero() {
		var toStore string
		if colors.Count() == 1 {
			if len(path) > 0 {
				toStore = string(path[0])
			}
		} else {
			trimmed := path
			if len(trimmed) > 0 && trimmed[len(trimmed)-1] == reg.sentinel {
				trimmed = trimmed[:len(trimmed)-1]
			}
			toStore = string(trimmed)
		}

		if toStore != "" || colors.Count() > 1 {
			result[colors] = append(result[colors], toStore)
		}
	}

	for _, trans := range n.transitions {
		label := resolveLabel(reg, trans.sub)
		enumerateDFS(trans.tgt, reg, append(path, label...), result)
	}
}
