package compkey

import "reflect"

// Options configures a structural container.
type Options struct {
	// Projection derives the lookup key for each user key. Nil means
	// user keys are used as given: a composite key handle still stands
	// for its identity token, NaN and negative-zero floats are
	// canonicalized, and any other key compares by ordinary Go equality.
	Projection Projection
	// KeepAlive, if non-nil, pins the composite key of every touched
	// entry so hot tokens survive collection between lookups.
	KeepAlive *KeepAlive
}

type mapEntry struct {
	key   interface{} // the caller's key, preserved for iteration
	value interface{}
	pin   *CompositeKey // keeps the token matchable while the entry exists
}

// Map is a key-value container whose keys may compare structurally.
// When the configured projection yields a composite key, the key's
// identity token becomes the internal map key, so any structurally
// equal key finds the entry. Not safe for concurrent use, like the
// built-in map.
type Map struct {
	projection Projection
	keep       *KeepAlive
	entries    map[interface{}]mapEntry
}

// NewMap returns an empty map. options may be nil.
func NewMap(options *Options) *Map {
	m := &Map{entries: map[interface{}]mapEntry{}}
	if options != nil {
		m.projection = options.Projection
		m.keep = options.KeepAlive
	}
	return m
}

// internalKey applies the projection and substitutes the identity token
// when the projected key is a composite key handle.
func (m *Map) internalKey(k interface{}) (interface{}, *CompositeKey, error) {
	projected := k
	if m.projection != nil {
		var err error
		projected, err = m.projection(k)
		if err != nil {
			return nil, nil, err
		}
	}
	if ck, ok := projected.(*CompositeKey); ok {
		if ck == nil || ck.token == nil {
			return nil, nil, &MisuseError{Op: "map key", Reason: "projection yielded a zero composite key"}
		}
		return ck.token, ck, nil
	}
	if projected != nil && !reflect.ValueOf(projected).Comparable() {
		return nil, nil, &MisuseError{Op: "map key", Reason: "key is not comparable"}
	}
	return canonicalEternal(projected), nil, nil
}

// Set adds or replaces the value for the given key.
func (m *Map) Set(k, v interface{}) error {
	ik, pin, err := m.internalKey(k)
	if err != nil {
		return err
	}
	m.entries[ik] = mapEntry{key: k, value: v, pin: pin}
	if m.keep != nil && pin != nil {
		m.keep.Add(pin)
	}
	return nil
}

// Get returns the value stored under any key structurally equal to k.
func (m *Map) Get(k interface{}) (interface{}, bool, error) {
	ik, pin, err := m.internalKey(k)
	if err != nil {
		return nil, false, err
	}
	e, ok := m.entries[ik]
	if !ok {
		return nil, false, nil
	}
	if m.keep != nil && pin != nil {
		m.keep.Add(pin)
	}
	return e.value, true, nil
}

// Has reports whether an entry exists for a key structurally equal to k.
func (m *Map) Has(k interface{}) (bool, error) {
	_, ok, err := m.Get(k)
	return ok, err
}

// Delete removes the entry for k, reporting whether one was present.
func (m *Map) Delete(k interface{}) (bool, error) {
	ik, _, err := m.internalKey(k)
	if err != nil {
		return false, err
	}
	if _, ok := m.entries[ik]; !ok {
		return false, nil
	}
	delete(m.entries, ik)
	return true, nil
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// Iter invokes f for every entry with the key it was originally stored
// under, not the internal projected form. Iteration stops on error.
func (m *Map) Iter(f func(k, v interface{}) error) error {
	for _, e := range m.entries {
		if err := f(e.key, e.value); err != nil {
			return err
		}
	}
	return nil
}
