package compkey

import (
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/arbitrary"
	"github.com/leanovate/gopter/gen"
	"github.com/stretchr/testify/require"
)

var defaultGopterParameters = gopter.DefaultTestParameters()

func TestPrimitiveKeys(t *testing.T) {
	t.Parallel()
	k1 := MustOf(0, 0)
	k2 := MustOf(0, 0)
	k3 := MustOf(0, 1)
	require.False(t, k1 == k2, "constructions yield distinct handles")
	require.True(t, Equal(k1, k2))
	require.False(t, Equal(k1, k3))
}

func TestNestedKeys(t *testing.T) {
	t.Parallel()
	inner1 := MustOf(1)
	inner2 := MustOf(1)
	outer1 := MustOf(2, inner1)
	outer2 := MustOf(2, inner2)
	outer3 := MustOf(2, 1)
	require.True(t, Equal(outer1, outer2))
	require.False(t, Equal(outer1, outer3))
}

func TestNoPrefixCollapse(t *testing.T) {
	t.Parallel()
	a := MustOf(1, 2)
	b := MustOf(1, 2, 3)
	require.False(t, Equal(a, b))
	require.False(t, Equal(b, a))
}

func TestPositionMatters(t *testing.T) {
	t.Parallel()
	require.False(t, Equal(MustOf(1, 2), MustOf(2, 1)))

	x, y := new(int), new(int)
	require.False(t, Equal(MustOf(x, y), MustOf(y, x)))
}

func TestMixedCategories(t *testing.T) {
	t.Parallel()
	a, b := new(int), new(int)
	require.True(t, Equal(MustOf(a, 1, b, "s"), MustOf(a, 1, b, "s")))

	// same multiset, eternal and identity-bearing values permuted
	require.False(t, Equal(MustOf(a, 1), MustOf(1, a)))
	require.False(t, Equal(MustOf(a, 1, b), MustOf(a, b, 1)))
}

func TestEmptySequence(t *testing.T) {
	t.Parallel()
	require.True(t, Equal(MustOf(), MustOf()))
	require.False(t, Equal(MustOf(), MustOf(0)))
}

func TestAllEternalAndAllIdentity(t *testing.T) {
	t.Parallel()
	require.True(t, Equal(MustOf(1, "x", true), MustOf(1, "x", true)))
	require.False(t, Equal(MustOf(1, "x", true), MustOf(1, "x", false)))

	a, b := new(int), new(int)
	require.True(t, Equal(MustOf(a, b), MustOf(a, b)))
	require.False(t, Equal(MustOf(a, b), MustOf(a, a)))
}

func TestTypeIsPartOfIdentity(t *testing.T) {
	t.Parallel()
	require.False(t, Equal(MustOf(1), MustOf(uint(1))))
	require.False(t, Equal(MustOf(1), MustOf(int64(1))))
	require.False(t, Equal(MustOf(float64(1)), MustOf(float32(1))))
	require.False(t, Equal(MustOf("1"), MustOf(1)))
}

func TestFloatCanonicalization(t *testing.T) {
	t.Parallel()
	negZero := math.Copysign(0, -1)
	require.True(t, Equal(MustOf(math.NaN()), MustOf(math.NaN())))
	require.False(t, Equal(MustOf(math.NaN()), MustOf(float32(math.NaN()))))
	require.False(t, Equal(MustOf(negZero), MustOf(float64(0))))
	require.True(t, Equal(MustOf(negZero), MustOf(math.Copysign(0, -1))))
}

func TestNilComponents(t *testing.T) {
	t.Parallel()
	require.True(t, Equal(MustOf(nil), MustOf(nil)))
	require.False(t, Equal(MustOf(nil), MustOf()))

	var p *int
	require.True(t, Equal(MustOf(p), MustOf((*int)(nil))))
	require.False(t, Equal(MustOf(p), MustOf(nil)), "typed nil is not untyped nil")
}

func TestUnsupportedComponents(t *testing.T) {
	t.Parallel()
	for _, v := range []interface{}{
		func() {},
		map[string]int{},
		[]int{1},
		struct{ S []int }{},
	} {
		_, err := Of(v)
		require.Error(t, err)
		var misuse *MisuseError
		require.ErrorAs(t, err, &misuse)
	}
}

func TestIdentityStability(t *testing.T) {
	t.Parallel()
	a := new(int)
	k := MustOf(a, 7)
	for i := 0; i < 50; i++ {
		require.True(t, Equal(k, MustOf(a, 7)))
	}
}

func TestIsKey(t *testing.T) {
	t.Parallel()
	require.True(t, IsKey(MustOf(1)))
	require.False(t, IsKey(nil))
	require.False(t, IsKey(42))
	require.False(t, IsKey(&CompositeKey{}), "forged zero handle carries no brand")
	require.False(t, IsKey((*CompositeKey)(nil)))
}

func TestEqualRejectsForgedHandles(t *testing.T) {
	t.Parallel()
	forged := &CompositeKey{}
	require.False(t, Equal(forged, forged))
	require.False(t, Equal(nil, nil))
	require.False(t, Equal(MustOf(1), nil))
}

func TestForgedHandleAsComponent(t *testing.T) {
	t.Parallel()
	_, err := Of(1, &CompositeKey{})
	require.Error(t, err)
}

func TestHandleIsOpaque(t *testing.T) {
	t.Parallel()
	typ := reflect.TypeOf(CompositeKey{})
	for i := 0; i < typ.NumField(); i++ {
		require.False(t, typ.Field(i).IsExported(),
			"handle state must not be observable")
	}
	require.Equal(t, "CompositeKey", MustOf(1, 2).String())
}

func TestStructuralEqualityProperties(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	arbitraries := arbitrary.DefaultArbitraries()
	arbitraries.RegisterGen(gen.IntRange(0, 99))

	pool := make([]*int, 8)
	for i := range pool {
		pool[i] = new(int)
	}
	// odd draws become pool pointers, even draws stay eternal ints, so
	// generated sequences mix both categories
	components := func(xs []int) []interface{} {
		cs := make([]interface{}, len(xs))
		for i, x := range xs {
			if x%2 == 1 {
				cs[i] = pool[x%len(pool)]
			} else {
				cs[i] = x
			}
		}
		return cs
	}

	properties.Property("keys over equal sequences compare equal",
		arbitraries.ForAll(
			func(xs []int) bool {
				cs := components(xs)
				return Equal(MustOf(cs...), MustOf(cs...))
			}))
	properties.Property("appending a component changes identity",
		arbitraries.ForAll(
			func(xs []int) bool {
				cs := components(xs)
				longer := make([]interface{}, len(cs), len(cs)+1)
				copy(longer, cs)
				longer = append(longer, 7)
				return !Equal(MustOf(cs...), MustOf(longer...))
			}))
	properties.Property("changing one component changes identity",
		arbitraries.ForAll(
			func(xs []int) bool {
				if len(xs) == 0 {
					return true
				}
				cs := components(xs)
				changed := make([]interface{}, len(cs))
				copy(changed, cs)
				changed[len(changed)-1] = "elsewhere"
				return !Equal(MustOf(cs...), MustOf(changed...))
			}))
	properties.Property("nesting preserves equality",
		arbitraries.ForAll(
			func(xs []int) bool {
				cs := components(xs)
				inner1 := MustOf(cs...)
				inner2 := MustOf(cs...)
				return Equal(MustOf("outer", inner1), MustOf("outer", inner2))
			}))
	properties.TestingRun(t)
}
