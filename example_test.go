package compkey

import "fmt"

func ExampleOf() {
	k1 := MustOf("user", 42)
	k2 := MustOf("user", 42)
	k3 := MustOf("user", 43)
	fmt.Println(Equal(k1, k2))
	fmt.Println(Equal(k1, k3))
	// Output:
	// true
	// false
}

func ExampleMap() {
	type coord struct{ X, Y, Z int }
	m := NewMap(&Options{Projection: func(v interface{}) (interface{}, error) {
		c := v.(coord)
		k, err := Of(c.X, c.Y)
		if err != nil {
			return nil, err
		}
		return k, nil
	}})
	_ = m.Set(coord{0, 0, 1}, "A")
	v, ok, _ := m.Get(coord{0, 0, 99})
	fmt.Println(v, ok)
	// Output: A true
}

func ExampleNewRecord() {
	m := NewMap(&Options{Projection: Canonicalize})
	_ = m.Set(NewRecord(map[string]interface{}{"x": 1, "y": 1}), 42)
	v, ok, _ := m.Get(NewRecord(map[string]interface{}{"y": 1, "x": 1}))
	fmt.Println(v, ok)
	// Output: 42 true
}
