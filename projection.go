package compkey

// Projection derives the lookup key a container should use for a user
// value. Map and Set apply it before every operation when configured.
type Projection func(v interface{}) (interface{}, error)

// Keyer is implemented by values that present a canonical composite key
// to structural containers. CompositeKey implements it by returning
// itself; Record and Tuple implement it by building (and caching) a key
// over their contents.
type Keyer interface {
	CanonicalKey() (*CompositeKey, error)
}

// Canonicalize replaces an identity-bearing value (a non-nil pointer)
// that implements Keyer with its canonical key and returns any other
// value unchanged. It has the Projection signature, so a container can
// be configured with it directly.
func Canonicalize(v interface{}) (interface{}, error) {
	k, ok := v.(Keyer)
	if !ok {
		return v, nil
	}
	if cat, err := classify(v); err != nil || cat != identityValue {
		return v, nil
	}
	ck, err := k.CanonicalKey()
	if err != nil {
		return nil, err
	}
	return ck, nil
}
