package main

import "strings"

// namespaceRouter is a label-keyed trie walked from the last label
// backward, structurally carried over from the teacher's reversed-
// domain matcher (sfx_tree.go's suffixTreeNode): there it decided
// which upstream nameserver a query's domain should be forwarded to;
// here it decides which GST namespace a request's namespace labels
// resolve to, so a router entry registered once for "acme" also
// matches "west.acme" and "eu.acme" the same way the teacher's router
// matched "com" against any "*.com" query. See DESIGN.md for why the
// trie-walk itself is a carry-over rather than a rewrite.
//
// One behavior does change for the new domain: every label is folded
// to lowercase before it touches the trie. The teacher's domain
// strings came pre-normalized out of a resolv.conf-style config file
// it fully controlled; here the labels come off an incoming DNS query
// name, which RFC 1035 §2.3.3 and resolvers in the wild treat as
// case-insensitive (including 0x20-randomized queries), while
// namespaces are configured lowercase in TOML. Without folding, a
// query whose namespace decodes to "WEST.acme" would silently fail to
// match a "west.acme" namespace.
type namespaceRouter struct {
	key      string
	value    string
	children map[string]*namespaceRouter
}

func newNamespaceRouterRoot() *namespaceRouter {
	return newNamespaceRouter("", "")
}

func newNamespaceRouter(key string, value string) *namespaceRouter {
	return &namespaceRouter{
		key:      key,
		value:    value,
		children: map[string]*namespaceRouter{},
	}
}

func (node *namespaceRouter) ensureSubTree(key string) {
	key = strings.ToLower(key)
	if _, ok := node.children[key]; !ok {
		node.children[key] = newNamespaceRouter(key, "")
	}
}

func (node *namespaceRouter) insert(key string, value string) {
	key = strings.ToLower(key)
	if c, ok := node.children[key]; ok {
		c.value = value
	} else {
		node.children[key] = newNamespaceRouter(key, value)
	}
}

// sinsert registers value under the label path given in keys, most
// significant label last (so "acme", "west" for "west.acme"). Every
// label is case-folded before insertion.
func (node *namespaceRouter) sinsert(keys []string, value string) {
	if len(keys) == 0 {
		return
	}

	key := strings.ToLower(keys[len(keys)-1])
	if len(keys) > 1 {
		node.ensureSubTree(key)
		node.children[key].sinsert(keys[:len(keys)-1], value)
		return
	}

	node.insert(key, value)
}

// search walks keys from the last label backward, returning the
// value registered at the deepest matching node that carries one —
// the same "most specific match wins, fall back toward the root"
// policy the teacher used for upstream resolver selection. Every
// label is case-folded before lookup, same reasoning as sinsert.
func (node *namespaceRouter) search(keys []string) (string, bool) {
	if len(keys) == 0 {
		return "", false
	}

	key := strings.ToLower(keys[len(keys)-1])
	if n, ok := node.children[key]; ok {
		if nextValue, found := n.search(keys[:len(keys)-1]); found {
			return nextValue, found
		}
		return n.value, n.value != ""
	}

	return "", false
}
