package compkey

import (
	"sort"
	"sync"
)

// brand namespaces the composite keys built by the aggregate builders,
// so a tuple can never collide with a record or with a key a caller
// built by hand over the same values. Brands are package-lived pointers
// and therefore identity-bearing.
type brand struct {
	name string
}

var tupleBrand, recordBrand *brand

// The brands are allocated at run time rather than as static data, since
// the weak pointers and cleanups on the trie edges keyed by them need
// heap objects.
func init() {
	tupleBrand = &brand{"tuple"}
	recordBrand = &brand{"record"}
}

// Tuple is a frozen ordered aggregate. Its canonical key is built over
// its brand followed by its canonicalized values, lazily, once.
type Tuple struct {
	values []interface{}

	once sync.Once
	key  *CompositeKey
	err  error
}

// NewTuple copies the given values into a frozen tuple.
func NewTuple(values ...interface{}) *Tuple {
	vs := make([]interface{}, len(values))
	copy(vs, values)
	return &Tuple{values: vs}
}

// Len returns the number of values.
func (t *Tuple) Len() int {
	return len(t.values)
}

// At returns the value at index i.
func (t *Tuple) At(i int) interface{} {
	return t.values[i]
}

// CanonicalKey builds the tuple's composite key on first use and caches
// it, so every lookup with the same tuple is one token comparison.
func (t *Tuple) CanonicalKey() (*CompositeKey, error) {
	t.once.Do(func() {
		components := make([]interface{}, 0, len(t.values)+1)
		components = append(components, tupleBrand)
		for _, v := range t.values {
			cv, err := Canonicalize(v)
			if err != nil {
				t.err = err
				return
			}
			components = append(components, cv)
		}
		t.key, t.err = Of(components...)
	})
	return t.key, t.err
}

// Record is a frozen named-field aggregate. Its canonical key flattens
// the fields in sorted name order, name then value, after its brand.
type Record struct {
	fields map[string]interface{}

	once sync.Once
	key  *CompositeKey
	err  error
}

// NewRecord copies the given fields into a frozen record.
func NewRecord(fields map[string]interface{}) *Record {
	fs := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		fs[k] = v
	}
	return &Record{fields: fs}
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// Get returns the value of the named field.
func (r *Record) Get(name string) (interface{}, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Fields returns the field names in the order the canonical key uses.
func (r *Record) Fields() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanonicalKey builds the record's composite key on first use and
// caches it. Field order in the source map is irrelevant: two records
// with equal fields get equal keys.
func (r *Record) CanonicalKey() (*CompositeKey, error) {
	r.once.Do(func() {
		names := r.Fields()
		components := make([]interface{}, 0, 2*len(names)+1)
		components = append(components, recordBrand)
		for _, name := range names {
			cv, err := Canonicalize(r.fields[name])
			if err != nil {
				r.err = err
				return
			}
			components = append(components, name, cv)
		}
		r.key, r.err = Of(components...)
	})
	return r.key, r.err
}
