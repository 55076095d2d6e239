package compkey

import (
	"fmt"
	"math"
	"reflect"
)

// category partitions component values by how the trie must hold them.
type category int

const (
	// eternalValue values compare structurally and cannot be held
	// weakly; they are interned on the strong branch for the life of
	// the process, like any other interned primitive.
	eternalValue category = iota
	// identityValue values have stable referential identity and can be
	// held weakly, so the trie edges keyed on them are reclaimable.
	identityValue
)

// classify decides which branch of the trie consumes a component.
//
// Non-nil pointers are identity-bearing. Everything else comparable is
// eternal, including channels: they have identity but the runtime offers
// no weak references to them, so they take the strongly-interned path.
// Funcs, maps, and slices are neither weakly holdable nor usable as map
// keys and are rejected.
func classify(v interface{}) (category, error) {
	if v == nil {
		return eternalValue, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return eternalValue, nil
		}
		return identityValue, nil
	case reflect.Func, reflect.Map, reflect.Slice:
		return 0, &MisuseError{
			Op:     "classify",
			Reason: fmt.Sprintf("%T has no usable identity or structural equality", v),
		}
	}
	if !rv.Comparable() {
		return 0, &MisuseError{
			Op:     "classify",
			Reason: fmt.Sprintf("%T is not comparable", v),
		}
	}
	return eternalValue, nil
}

// Sentinels standing in for float values a Go map would mishandle: NaN
// keys are unequal to themselves (entries pile up and are unfindable),
// and -0 collides with +0. Width is kept so float32 and float64 forms
// stay distinct, as any two eternal values of different types do.
type nanValue struct{ width int }
type negZero struct{ width int }

// canonicalEternal maps an eternal value to the form used as a strong
// child-map key, giving SameValue-style equality for floats.
func canonicalEternal(v interface{}) interface{} {
	switch f := v.(type) {
	case float64:
		if f != f {
			return nanValue{64}
		}
		if f == 0 && math.Signbit(f) {
			return negZero{64}
		}
	case float32:
		if f != f {
			return nanValue{32}
		}
		if f == 0 && math.Signbit(float64(f)) {
			return negZero{32}
		}
	}
	return v
}
