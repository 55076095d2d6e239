package compkey

import "sync"

// The interning trie is process-wide state rooted at origin. One mutex
// guards all of it: constructions mutate shared nodes, and reclamation
// callbacks arrive on a runtime goroutine, so every path through the
// trie (descent, purging, counting) runs inside trieMu.
var (
	trieMu sync.Mutex
	origin = newGCNode(nil, nil)
)

// intern walks the trie for the given component sequence and returns
// the identity token of its terminal node.
func intern(vs []interface{}) (*idToken, error) {
	trieMu.Lock()
	defer trieMu.Unlock()
	return origin.descend(vs, 0, false)
}

// descend consumes only identity-bearing components, so the weak edges
// carrying the reclamation signal are exactly those. Eternal components
// are skipped and replayed positionally on a second pass through the
// eternal sub-trie, entered by a dedicated transition edge once the
// sequence is exhausted.
func (n *gcNode) descend(vs []interface{}, index int, seenEternal bool) (*idToken, error) {
	if index == len(vs) {
		if seenEternal {
			if n.eternal == nil {
				n.eternal = newEternalNode(n, eternalMark{})
			}
			return n.eternal.descend(vs, 0)
		}
		return n.getToken(n), nil
	}
	h := vs[index]
	cat, err := classify(h)
	if err != nil {
		return nil, err
	}
	if cat == eternalValue {
		return n.descend(vs, index+1, true)
	}
	if k, ok := h.(*CompositeKey); ok {
		// a nested key participates as its identity token, which makes
		// structural equality transitive through nesting
		if k.token == nil {
			return nil, &MisuseError{Op: "intern", Reason: "zero composite key used as component"}
		}
		h = k.token
	}
	id := identOf(h)
	var child *gcNode
	if v, ok := n.children.get(id); ok {
		child = v.(*gcNode)
	} else {
		child = newGCNode(n, id.key)
		n.children.set(id, child)
	}
	return child.descend(vs, index+1, seenEternal)
}

// descend replays the full sequence on the eternal branch. Positions
// consumed by the gc pass are filled with refSlot so that length and
// position remain part of identity.
func (n *eternalNode) descend(vs []interface{}, index int) (*idToken, error) {
	if index == len(vs) {
		return n.getToken(n), nil
	}
	h := vs[index]
	cat, err := classify(h)
	if err != nil {
		// the gc pass already classified every component
		panic(&InternalInvariantError{Reason: "unclassifiable component on eternal pass"})
	}
	var label interface{}
	if cat == identityValue {
		label = refSlot{}
	} else {
		label = canonicalEternal(h)
	}
	child, ok := n.children[label]
	if !ok {
		child = newEternalNode(n, label)
		n.children[label] = child
	}
	return child.descend(vs, index+1)
}
