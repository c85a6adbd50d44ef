package traits_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/slabkit/collections"
	"github.com/joshuapare/slabkit/traits"
)

func stacks() map[string]func() traits.Stack[int] {
	return map[string]func() traits.Stack[int]{
		"fixed":  func() traits.Stack[int] { return collections.NewFixedArray[int](8) },
		"array":  func() traits.Stack[int] { return collections.NewArray[int](0) },
		"list":   func() traits.Stack[int] { return collections.NewLinkedStack[int]() },
		"pooled": func() traits.Stack[int] { return collections.NewPooledStack[int](8) },
	}
}

// Test_PushAll_Drain verifies the helpers against every stack backend.
func Test_PushAll_Drain(t *testing.T) {
	for name, newStack := range stacks() {
		t.Run(name, func(t *testing.T) {
			s := newStack()
			traits.PushAll(s, 1, 2, 3, 4)

			var got []int
			traits.Drain(s, func(v int) { got = append(got, v) })
			require.Equal(t, []int{4, 3, 2, 1}, got)
			require.True(t, s.IsEmpty())

			traits.PushAll(s, 7)
			traits.Drain(s, nil)
			require.True(t, s.IsEmpty())
		})
	}
}

// sum reads a list through the List capability only.
func sum(l traits.List[int]) int {
	total := 0
	for i := 0; i < l.Len(); i++ {
		total += l.Get(i)
	}
	return total
}

// Test_List_Generic verifies both array kinds serve the same List consumer.
func Test_List_Generic(t *testing.T) {
	fixed := collections.NewFixedArray[int](3)
	growable := collections.NewArray[int](0)
	for _, s := range []traits.Stack[int]{fixed, growable} {
		traits.PushAll(s, 10, 20, 30)
	}
	require.Equal(t, 60, sum(fixed))
	require.Equal(t, 60, sum(growable))
}

// Test_Capabilities verifies which capability groups each backend exposes.
func Test_Capabilities(t *testing.T) {
	var fixed any = collections.NewFixedArray[int](1)
	_, unbounded := fixed.(traits.Unbounded)
	require.False(t, unbounded, "a fixed array must not offer Reserve")

	var list any = collections.NewLinkedStack[int]()
	_, isList := list.(traits.List[int])
	require.False(t, isList, "a linked stack has no positional access")
	_, isCollection := list.(traits.Collection)
	require.True(t, isCollection)
}
