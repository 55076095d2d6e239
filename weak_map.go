package compkey

import (
	"reflect"
	"runtime"
	"weak"
)

// weakKey names an identity-bearing referent without keeping it alive.
// The dynamic type disambiguates distinct objects that share an address,
// such as a struct and its first field.
type weakKey struct {
	typ  reflect.Type
	addr uintptr
}

// weakIdent is a weakKey still paired with its live referent, produced
// during descent while the caller's component is pinned on the stack.
type weakIdent struct {
	key weakKey
	obj *byte
}

func identOf(v interface{}) weakIdent {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		panic(&InternalInvariantError{Reason: "identOf on non-pointer component"})
	}
	p := rv.UnsafePointer()
	return weakIdent{
		key: weakKey{typ: rv.Type(), addr: uintptr(p)},
		obj: (*byte)(p),
	}
}

type weakEntry struct {
	ref     weak.Pointer[byte]
	value   interface{}
	cleanup runtime.Cleanup
}

// countingWeakMap maps identity-bearing keys to strongly-held values.
// Keys do not keep their referents alive; when the runtime reclaims a
// referent, its entry is dropped and, on the transition to empty,
// onEmpty fires exactly once. Mutating methods require trieMu; the
// reclamation path takes it itself because cleanups run on a runtime
// goroutine.
type countingWeakMap struct {
	entries map[weakKey]*weakEntry
	onEmpty func()
}

func newCountingWeakMap(onEmpty func()) *countingWeakMap {
	return &countingWeakMap{
		entries: map[weakKey]*weakEntry{},
		onEmpty: onEmpty,
	}
}

// size counts entries whose reclamation has not yet been observed.
func (m *countingWeakMap) size() int {
	return len(m.entries)
}

func (m *countingWeakMap) has(id weakIdent) bool {
	_, ok := m.get(id)
	return ok
}

func (m *countingWeakMap) get(id weakIdent) (interface{}, bool) {
	e, ok := m.entries[id.key]
	if !ok {
		return nil, false
	}
	if e.ref.Value() != id.obj {
		// The previous referent at this address was reclaimed and the
		// address reused before its cleanup ran. Not the same identity.
		return nil, false
	}
	return e.value, true
}

func (m *countingWeakMap) set(id weakIdent, value interface{}) {
	if old, ok := m.entries[id.key]; ok {
		old.cleanup.Stop()
	}
	e := &weakEntry{ref: weak.Make(id.obj), value: value}
	key := id.key
	e.cleanup = runtime.AddCleanup(id.obj, func(_ struct{}) {
		m.reclaimed(key, e)
	}, struct{}{})
	m.entries[key] = e
}

// delete removes an entry and cancels its pending reclamation
// notification. It never fires onEmpty: explicit removal is the
// caller's own doing, and purge cascades handle their own bookkeeping.
func (m *countingWeakMap) delete(key weakKey) bool {
	e, ok := m.entries[key]
	if !ok {
		return false
	}
	e.cleanup.Stop()
	delete(m.entries, key)
	return true
}

// remove is delete guarded by the stored value, for purge requests that
// may be stale: the entry goes only if it still holds the given value.
func (m *countingWeakMap) remove(key weakKey, value interface{}) bool {
	e, ok := m.entries[key]
	if !ok || e.value != value {
		return false
	}
	e.cleanup.Stop()
	delete(m.entries, key)
	return true
}

// each visits the value of every entry, stale or not.
func (m *countingWeakMap) each(f func(value interface{})) {
	for _, e := range m.entries {
		f(e.value)
	}
}

func (m *countingWeakMap) reclaimed(key weakKey, e *weakEntry) {
	trieMu.Lock()
	defer trieMu.Unlock()
	cur, ok := m.entries[key]
	if !ok || cur != e {
		// Removed by delete, or the slot was re-keyed to a new
		// referent. Either way this entry was already accounted for.
		return
	}
	delete(m.entries, key)
	if len(m.entries) == 0 && m.onEmpty != nil {
		m.onEmpty()
	}
}
