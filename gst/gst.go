// Package gst implements a Generalized Suffix Tree built online by
// Ukkonen's algorithm, augmented with per-node color sets that record
// which inserted strings contribute to each subtree.
//
// The tree is not safe for concurrent use. Mutating calls (AddString,
// ComputeColors) must be serialized with each other and with any read
// (IsSubstring, IsSuffix, EnumeratePaths); concurrent reads are only
// safe once ComputeColors has already run and no mutation is in
// flight, since a read against a dirty tree triggers lazy
// recomputation and is itself a write.
package gst

// DefaultSentinel is the terminal byte appended to every inserted
// string when no sentinel is configured explicitly.
const DefaultSentinel = '$'

// Tree is a generalized suffix tree over up to MaxStrings strings.
type Tree struct {
	registry    *registry
	graph       *graph
	colorsClean bool
}

// New creates an empty tree using DefaultSentinel and MaxStrings as
// the capacity.
func New() *Tree {
	return NewWithSentinel(DefaultSentinel)
}

// NewWithSentinel creates an empty tree that rejects any input
// containing the given sentinel byte.
func NewWithSentinel(sentinel byte) *Tree {
	return &Tree{
		registry: newRegistry(sentinel, MaxStrings),
		graph:    newGraph(),
	}
}

// StringCount returns the number of string IDs issued so far.
func (t *Tree) StringCount() int {
	return t.registry.count()
}

// GetString returns the original bytes (sentinel stripped) stored
// under id, or nil if id was never issued.
func (t *Tree) GetString(id int) []byte {
	stored := t.registry.view(id)
	if stored == nil {
		return nil
	}
	return stored[:len(stored)-1]
}

// Sentinel returns the configured terminal byte.
func (t *Tree) Sentinel() byte {
	return t.registry.sentinel
}

// Close releases the tree's node graph. The tree must not be used
// afterward.
func (t *Tree) Close() {
	t.graph.destroy()
}
