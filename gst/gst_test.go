package gst

import (
	"reflect"
	"sort"
	"testing"
)

func TestSingleStringSubstringAndSuffix(t *testing.T) {
	tree := New()

	if _, err := tree.AddString([]byte("aaaa")); err != nil {
		t.Fatalf("AddString: %v", err)
	}

	cases := []struct {
		q    string
		want bool
	}{
		{"aa", true},
		{"aaaa", true},
		{"aaaaa", false},
	}
	for _, c := range cases {
		if got := tree.IsSubstring([]byte(c.q)); got != c.want {
			t.Errorf("IsSubstring(%q) = %v, want %v", c.q, got, c.want)
		}
	}

	suffixCases := []struct {
		q    string
		want bool
	}{
		{"aaaa", true},
		{"aaa", true},
		{"aaab", false},
	}
	for _, c := range suffixCases {
		if got := tree.IsSuffix([]byte(c.q)); got != c.want {
			t.Errorf("IsSuffix(%q) = %v, want %v", c.q, got, c.want)
		}
	}
}

func TestTwoStringsColoring(t *testing.T) {
	tree := New()

	id1, err := tree.AddString([]byte("abc"))
	if err != nil {
		t.Fatalf("AddString abc: %v", err)
	}
	id2, err := tree.AddString([]byte("abd"))
	if err != nil {
		t.Fatalf("AddString abd: %v", err)
	}

	if !tree.IsSubstring([]byte("ab")) {
		t.Fatal("expected \"ab\" to be a substring")
	}

	tree.ComputeColors()

	node := walk(t, tree, "ab")
	want := ColorSet(0).set(id1 - 1).set(id2 - 1)
	if node.Colors() != want {
		t.Errorf("colors at \"ab\" = %v, want %v", node.Colors(), want)
	}

	cNode := walk(t, tree, "abc")
	if got := cNode.Colors().SingleID(); got != id1 {
		t.Errorf("colors at \"abc\" singleton = %d, want %d", got, id1)
	}
	dNode := walk(t, tree, "abd")
	if got := dNode.Colors().SingleID(); got != id2 {
		t.Errorf("colors at \"abd\" singleton = %d, want %d", got, id2)
	}
}

func TestBananaInternalNodeHasTwoLeaves(t *testing.T) {
	tree := New()
	if _, err := tree.AddString([]byte("banana")); err != nil {
		t.Fatalf("AddString: %v", err)
	}

	if !tree.IsSuffix([]byte("ana")) {
		t.Error("\"ana\" should be a suffix of \"banana\"")
	}
	if tree.IsSuffix([]byte("nan")) {
		t.Error("\"nan\" should not be a suffix of \"banana\"")
	}
}

func TestDuplicateInsertionGetsDistinctIDs(t *testing.T) {
	tree := New()

	id1, err := tree.AddString([]byte("xy"))
	if err != nil {
		t.Fatalf("AddString #1: %v", err)
	}
	id2, err := tree.AddString([]byte("xy"))
	if err != nil {
		t.Fatalf("AddString #2: %v", err)
	}
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d and %d", id1, id2)
	}

	tree.ComputeColors()
	node := walk(t, tree, "xy")
	want := ColorSet(0).set(id1 - 1).set(id2 - 1)
	if node.Colors() != want {
		t.Errorf("colors at \"xy\" = %v, want %v", node.Colors(), want)
	}
}

func TestRejectSentinelInInput(t *testing.T) {
	tree := New()

	if _, err := tree.AddString([]byte("a$b")); err == nil {
		t.Fatal("expected rejection of input containing sentinel")
	}
	if tree.StringCount() != 0 {
		t.Fatalf("tree state should be unchanged, count = %d", tree.StringCount())
	}

	id, err := tree.AddString([]byte("ab"))
	if err != nil {
		t.Fatalf("AddString ab: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected first successful id to be 1, got %d", id)
	}
}

func TestCapacityExhausted(t *testing.T) {
	tree := NewWithSentinel('$')
	for i := 0; i < MaxStrings; i++ {
		if _, err := tree.AddString([]byte{byte('a' + i%26), byte(128 + i)}); err != nil {
			t.Fatalf("AddString #%d: %v", i, err)
		}
	}
	if _, err := tree.AddString([]byte("one-too-many")); err == nil {
		t.Fatal("expected capacity exhausted error")
	}
}

func TestGetStringStripsSentinel(t *testing.T) {
	tree := New()
	id, _ := tree.AddString([]byte("hello"))
	if got := string(tree.GetString(id)); got != "hello" {
		t.Errorf("GetString = %q, want %q", got, "hello")
	}
}

func TestComputeColorsIdempotent(t *testing.T) {
	tree := New()
	tree.AddString([]byte("mississippi"))
	tree.AddString([]byte("ississippi"))

	tree.ComputeColors()
	first := snapshotColors(tree.Root())

	tree.ComputeColors()
	second := snapshotColors(tree.Root())

	if !reflect.DeepEqual(first, second) {
		t.Error("two consecutive ComputeColors calls produced different bitmasks")
	}
}

func TestOrderIndependenceOfSubstringQueries(t *testing.T) {
	words := []string{"banana", "bandana", "anana"}

	forward := New()
	for _, w := range words {
		forward.AddString([]byte(w))
	}

	reversed := New()
	for i := len(words) - 1; i >= 0; i-- {
		reversed.AddString([]byte(words[i]))
	}

	queries := []string{"an", "ana", "nana", "band", "xyz", "banana"}
	for _, q := range queries {
		fwd := forward.IsSubstring([]byte(q))
		rev := reversed.IsSubstring([]byte(q))
		if fwd != rev {
			t.Errorf("IsSubstring(%q) order-dependent: forward=%v reversed=%v", q, fwd, rev)
		}
	}
}

func TestEnumeratePathsSingleString(t *testing.T) {
	tree := New()
	id, err := tree.AddString([]byte("aa"))
	if err != nil {
		t.Fatalf("AddString: %v", err)
	}

	groups := tree.EnumeratePaths(tree.Root())
	if len(groups) != 1 {
		t.Fatalf("EnumeratePaths with one string: got %d color groups, want 1: %v", len(groups), groups)
	}

	for colors, labels := range groups {
		if got := colors.SingleID(); got != id {
			t.Errorf("group color = %v, want singleton %d", colors, id)
		}
		if len(labels) == 0 {
			t.Fatal("singleton group has no labels")
		}
		for _, l := range labels {
			if len(l) != 1 {
				t.Errorf("singleton label %q has length %d, want 1", l, len(l))
			}
		}
		if containsString(labels, "") {
			t.Error("singleton group should not contain root's empty path")
		}
	}
}

func TestEnumeratePathsUnionGroup(t *testing.T) {
	tree := New()
	id1, err := tree.AddString([]byte("abc"))
	if err != nil {
		t.Fatalf("AddString abc: %v", err)
	}
	id2, err := tree.AddString([]byte("abd"))
	if err != nil {
		t.Fatalf("AddString abd: %v", err)
	}

	groups := tree.EnumeratePaths(tree.Root())

	union := ColorSet(0).set(id1 - 1).set(id2 - 1)
	labels, ok := groups[union]
	if !ok {
		t.Fatalf("no group for union color set %v: %v", union, groups)
	}
	if !containsString(labels, "ab") {
		t.Errorf("union group %v missing shared path \"ab\"", labels)
	}

	singleton1, ok := groups[ColorSet(0).set(id1-1)]
	if !ok || !containsString(singleton1, "a") {
		t.Errorf("singleton group for %d missing first-byte marker \"a\": %v", id1, singleton1)
	}
	singleton2, ok := groups[ColorSet(0).set(id2-1)]
	if !ok || !containsString(singleton2, "a") {
		t.Errorf("singleton group for %d missing first-byte marker \"a\": %v", id2, singleton2)
	}
}

func TestEnumeratePathsRootEmptyPathQuirk(t *testing.T) {
	tree := New()
	id1, _ := tree.AddString([]byte("abc"))
	id2, _ := tree.AddString([]byte("abd"))

	groups := tree.EnumeratePaths(tree.Root())

	union := ColorSet(0).set(id1 - 1).set(id2 - 1)
	labels, ok := groups[union]
	if !ok {
		t.Fatalf("no union group: %v", groups)
	}
	if !containsString(labels, "") {
		t.Errorf("root carries every string's color once >1 string is present, so its empty path should surface in the union group: %v", labels)
	}

	single := New()
	single.AddString([]byte("aa"))
	for colors, labels := range single.EnumeratePaths(single.Root()) {
		if colors.Count() == 1 && containsString(labels, "") {
			t.Error("root's empty path should not surface for a single-string tree")
		}
	}
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func walk(t *testing.T, tree *Tree, path string) *Node {
	t.Helper()
	n := tree.Root()
	remaining := []byte(path)
	for len(remaining) > 0 {
		found := false
		for _, e := range n.Children() {
			if len(e.Label) == 0 {
				continue
			}
			m := min(len(e.Label), len(remaining))
			if !hasPrefixBytes(remaining, e.Label, m) {
				continue
			}
			n = e.Target
			remaining = remaining[m:]
			found = true
			break
		}
		if !found {
			t.Fatalf("no path for %q (stuck with remaining %q)", path, remaining)
		}
	}
	return n
}

func hasPrefixBytes(a, b []byte, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func snapshotColors(n *Node) map[string]ColorSet {
	out := make(map[string]ColorSet)
	var walkAll func(n *Node, path string)
	walkAll = func(n *Node, path string) {
		out[path] = n.Colors()
		children := n.Children()
		sort.Slice(children, func(i, j int) bool {
			return string(children[i].Label) < string(children[j].Label)
		})
		for _, e := range children {
			walkAll(e.Target, path+string(e.Label))
		}
	}
	walkAll(n, "")
	return out
}
