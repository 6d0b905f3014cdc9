package gst

import (
	"math/rand"
	"testing"
)

func countNodes(n *node) int {
	total := 1
	for _, trans := range n.transitions {
		total += countNodes(trans.tgt)
	}
	return total
}

// TestLinearGrowthAndSuffixCompleteness is scenario S4: sixty random
// strings of length 100 over a tiny alphabet should produce a tree whose
// node count stays within the O(sum of lengths) bound, and every
// suffix of every inserted string must still be found.
func TestLinearGrowthAndSuffixCompleteness(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := []byte("abcd")

	const numStrings = 60 // stays under MaxStrings; the string length matches S4
	const strLen = 100

	tree := New()
	var inserted []string
	totalLen := 0

	for i := 0; i < numStrings; i++ {
		buf := make([]byte, strLen)
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}
		if _, err := tree.AddString(buf); err != nil {
			t.Fatalf("AddString #%d: %v", i, err)
		}
		inserted = append(inserted, string(buf))
		totalLen += strLen
	}

	nodeCount := countNodes(tree.graph.root)
	bound := 2 * (totalLen + numStrings)
	if nodeCount > bound {
		t.Errorf("node count %d exceeds O(sum lengths) bound %d", nodeCount, bound)
	}

	for _, s := range inserted {
		for start := 0; start < len(s); start++ {
			suffix := s[start:]
			if !tree.IsSubstring([]byte(suffix)) {
				t.Fatalf("suffix %q of %q not found as substring", suffix, s)
			}
		}
	}
}
