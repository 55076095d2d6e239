package compkey

import (
	"runtime"
	"weak"
)

// idToken is the identity for one equivalence class of composite keys.
// Tokens are compared by allocation only; the id exists for logging.
type idToken struct {
	id uint64
}

// eternalMark labels the edge from a gc node into its eternal sub-trie.
type eternalMark struct{}

// refSlot stands, on the eternal pass, for an identity-bearing component
// that was already consumed on the gc pass. It preserves length and
// position so no two sequences can collapse onto one path.
type refSlot struct{}

type trieNode interface {
	// examineSelf purges this node out of its parent once nothing below
	// it (child edges) or above it (a live token) needs it. Requires
	// trieMu.
	examineSelf()
	// purgeChild removes child at the given edge label and re-examines
	// this node. The child argument guards against stale requests: a
	// purged node's pending cleanups may fire after a new node has
	// taken its edge, and must not remove the newcomer. Requires trieMu.
	purgeChild(edge interface{}, child trieNode)
}

// nodeBase carries what both node variants share: the upward link used
// for purging, and the weakly-held identity token.
type nodeBase struct {
	parent   trieNode
	edge     interface{}
	tokenRef weak.Pointer[idToken]
	hasToken bool
}

func (b *nodeBase) liveToken() *idToken {
	if !b.hasToken {
		return nil
	}
	return b.tokenRef.Value()
}

// getToken returns this node's token, minting one if none is alive. The
// node holds the token only weakly; the sole strong references live in
// user-visible handles. A cleanup on the token re-examines the node once
// the last handle is gone.
func (b *nodeBase) getToken(self trieNode) *idToken {
	if t := b.liveToken(); t != nil {
		return t
	}
	t := &idToken{id: tokenSeq.Inc()}
	b.tokenRef = weak.Make(t)
	b.hasToken = true
	tokensMinted.Inc()
	logger.Log("msg", "minted token", "token", t.id)
	runtime.AddCleanup(t, func(n trieNode) {
		trieMu.Lock()
		tokensReclaimed.Inc()
		n.examineSelf()
		trieMu.Unlock()
	}, self)
	return t
}

// gcNode is the trie node for the first descent pass. Its child edges
// are keyed on identity-bearing components and held weakly, so the
// subtree hanging off a component disappears with the component. The
// transition into the eternal sub-trie is a dedicated edge.
type gcNode struct {
	nodeBase
	children *countingWeakMap // weakKey -> *gcNode
	eternal  *eternalNode
}

func newGCNode(parent trieNode, edge interface{}) *gcNode {
	n := &gcNode{nodeBase: nodeBase{parent: parent, edge: edge}}
	n.children = newCountingWeakMap(n.examineSelf)
	return n
}

func (n *gcNode) examineSelf() {
	if n.children.size() > 0 || n.eternal != nil {
		return
	}
	if n.liveToken() != nil {
		return
	}
	if n.parent == nil {
		// the origin is process-wide and never purged
		return
	}
	n.parent.purgeChild(n.edge, n)
}

func (n *gcNode) purgeChild(edge interface{}, child trieNode) {
	switch e := edge.(type) {
	case weakKey:
		if !n.children.remove(e, child) {
			return
		}
	case eternalMark:
		if cn, ok := child.(*eternalNode); !ok || n.eternal != cn {
			return
		}
		n.eternal = nil
	default:
		panic(&InternalInvariantError{Reason: "gc node asked to purge unknown edge kind"})
	}
	logger.Log("msg", "purged node")
	n.examineSelf()
}

// eternalNode is the trie node for the second descent pass. Its child
// edges are keyed on canonicalized eternal values and held strongly:
// the values themselves are permanent, and the nodes are reclaimed only
// by purge cascades from below.
type eternalNode struct {
	nodeBase
	children map[interface{}]*eternalNode
}

func newEternalNode(parent trieNode, edge interface{}) *eternalNode {
	return &eternalNode{
		nodeBase: nodeBase{parent: parent, edge: edge},
		children: map[interface{}]*eternalNode{},
	}
}

func (n *eternalNode) examineSelf() {
	if len(n.children) > 0 {
		return
	}
	if n.liveToken() != nil {
		return
	}
	if n.parent == nil {
		panic(&InternalInvariantError{Reason: "eternal node without parent"})
	}
	n.parent.purgeChild(n.edge, n)
}

func (n *eternalNode) purgeChild(edge interface{}, child trieNode) {
	if c, ok := n.children[edge]; !ok || trieNode(c) != child {
		return
	}
	delete(n.children, edge)
	logger.Log("msg", "purged node")
	n.examineSelf()
}
