package gst

const noDivergence = openEnd

// startingNode fast-forwards from r along s as far as the tree
// already has a matching path, returning the offset where s diverges
// from the tree (or noDivergence if s is already a path from root in
// its entirety, as for a repeat insertion of a stored string or for a
// query that matches).
func startingNode(reg *registry, r *refPoint, s []byte) int {
	k := r.pos
	sLen := len(s)

	for {
		if k >= sLen {
			r.pos = noDivergence
			return noDivergence
		}

		t := r.node.findTransition(s[k])
		if !t.valid() {
			return k
		}

		edgeLen := t.sub.resolvedRight(reg) - t.sub.l
		refStr := reg.view(t.sub.refID)
		i := 1
		ranOut := false
		for ; i <= edgeLen; i++ {
			if k+i >= sLen {
				ranOut = true
				break
			}
			if s[k+i] != refStr[t.sub.l+i] {
				r.pos = k
				return k + i
			}
		}
		if ranOut {
			r.pos = noDivergence
			return noDivergence
		}

		r.node = t.tgt
		k += i
		r.pos = k
	}
}

// deploySuffixes drives update() across every remaining character of
// s after the fast-forward, the per-character heart of Ukkonen's
// algorithm applied to one newly-registered string. When the
// fast-forward reports noDivergence, the whole of s is already an
// implicit path from root (e.g. a repeat insertion of a string
// already present) — by the same show-stopper reasoning that lets a
// single phase of Ukkonen's algorithm end early, every extension this
// string would have triggered is already satisfied, so the j-loop
// below simply runs zero iterations and the string contributes no new
// structure. That is a normal, successful outcome, not a failure.
func (t *Tree) deploySuffixes(id int, s []byte) {
	active := refPoint{node: t.graph.root, refID: id, pos: 0}

	i := startingNode(t.registry, &active, s)

	for ; i < len(s); i++ {
		n, pos := update(t.registry, t.graph, active.node, id, active.pos, i)
		active.node, active.pos = n, pos
		active.node, active.pos = canonize(t.registry, active.node, id, active.pos, i)
	}
}

// AddString registers a new string and incrementally extends the
// tree to cover all of its suffixes. It rejects input containing the
// sentinel byte or insertion past MaxStrings; on rejection the tree
// is left exactly as it was.
func (t *Tree) AddString(input []byte) (int, error) {
	if t.registry.containsSentinel(input) {
		return 0, SentinelInInput{Sentinel: t.registry.sentinel}
	}
	if t.registry.atCapacity() {
		return 0, CapacityExhausted{Max: t.registry.max}
	}

	id := t.registry.append(input)
	stored := t.registry.view(id)

	if err := t.runDeploySuffixes(id, stored); err != nil {
		t.registry.rollback(id)
		return 0, err
	}

	t.colorsClean = false
	return id, nil
}

// runDeploySuffixes guards the step-4 per-character update loop: a
// genuine break of Ukkonen's invariants there (the tree found in a
// state the algorithm should never produce) surfaces as a runtime
// panic — an out-of-range edge, a nil transition target — rather than
// a silent wrong answer. That, and only that, is what InvariantViolation
// is for; the step-3 "whole string already present" outcome handled
// inside deploySuffixes itself never reaches this recover.
func (t *Tree) runDeploySuffixes(id int, s []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = InvariantViolation{Where: "deploySuffixes"}
		}
	}()
	t.deploySuffixes(id, s)
	return nil
}
