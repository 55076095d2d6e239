package compkey

import (
	"fmt"
	"runtime"
)

// CompositeKey is the user-visible handle for one interned component
// sequence. It carries exactly one strong reference, to the terminal
// node's identity token, and exposes no other state. Handles themselves
// are not interned: every construction yields a distinct handle, so
// pointer equality on handles is not structural equality; use Equal.
type CompositeKey struct {
	token *idToken
}

// Of constructs a composite key over the given components. Two calls
// with equal component sequences yield keys that compare Equal for as
// long as any handle for the sequence is alive. Components may be
// pointers, nested composite keys, and any comparable value; funcs,
// maps, and slices are rejected.
func Of(components ...interface{}) (*CompositeKey, error) {
	token, err := intern(components)
	if err != nil {
		return nil, fmt.Errorf("intern: %w", err)
	}
	k := &CompositeKey{token: token}
	// components must outlive the descent that registered their weak
	// edges, even if the caller's last use was an earlier argument
	runtime.KeepAlive(components)
	return k, nil
}

// MustOf is Of for component sequences known to be well-formed.
func MustOf(components ...interface{}) *CompositeKey {
	k, err := Of(components...)
	if err != nil {
		panic(err)
	}
	return k
}

// Equal reports whether two handles denote the same component sequence,
// which is exactly whether they hold the same identity token. A nil or
// forged zero handle is equal to nothing, itself included.
func Equal(a, b *CompositeKey) bool {
	if a == nil || b == nil {
		return false
	}
	return a.token != nil && a.token == b.token
}

// IsKey reports whether v is a composite key produced by Of.
func IsKey(v interface{}) bool {
	k, ok := v.(*CompositeKey)
	return ok && k != nil && k.token != nil
}

// CanonicalKey lets a composite key act as its own projection.
func (k *CompositeKey) CanonicalKey() (*CompositeKey, error) {
	return k, nil
}

// String is a stable tag; handles have no observable state to print.
func (k *CompositeKey) String() string {
	return "CompositeKey"
}
