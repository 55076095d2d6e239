package compkey

// Set is a membership container over the same structural key rules as
// Map. Not safe for concurrent use.
type Set struct {
	m *Map
}

// NewSet returns an empty set. options may be nil.
func NewSet(options *Options) *Set {
	return &Set{m: NewMap(options)}
}

// Add inserts k, reporting whether it was newly added.
func (s *Set) Add(k interface{}) (bool, error) {
	present, err := s.m.Has(k)
	if err != nil {
		return false, err
	}
	if present {
		return false, nil
	}
	return true, s.m.Set(k, nil)
}

// Has reports whether a member structurally equal to k is present.
func (s *Set) Has(k interface{}) (bool, error) {
	return s.m.Has(k)
}

// Delete removes k, reporting whether it was present.
func (s *Set) Delete(k interface{}) (bool, error) {
	return s.m.Delete(k)
}

// Len returns the number of members.
func (s *Set) Len() int {
	return s.m.Len()
}

// Iter invokes f for every member as originally added.
func (s *Set) Iter(f func(k interface{}) error) error {
	return s.m.Iter(func(k, _ interface{}) error {
		return f(k)
	})
}
