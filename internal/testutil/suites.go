package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/slabkit/internal/contract"
	"github.com/joshuapare/slabkit/storage"
	"github.com/joshuapare/slabkit/traits"
)

// Releasable is a stack that can be destroyed as a whole.
type Releasable[T any] interface {
	traits.Stack[T]
	Release()
}

// BoundedStack is a stack with fixed capacity.
type BoundedStack[T any] interface {
	traits.Stack[T]
	traits.Bounded
}

// UnboundedStack is a stack whose capacity follows its contents.
type UnboundedStack[T any] interface {
	traits.Stack[T]
	traits.Collection
	traits.Unbounded
}

// RequireViolation asserts that fn panics with a contract violation.
func RequireViolation(t *testing.T, fn func(), msgAndArgs ...any) {
	t.Helper()
	err := contract.Recover(fn)
	require.Error(t, err, msgAndArgs...)
	require.ErrorIs(t, err, contract.ErrPrecondition, msgAndArgs...)
}

// RunStackOrder checks LIFO order on an empty stack s and that popping an
// empty stack is a violation.
func RunStackOrder(t *testing.T, s traits.Stack[int]) {
	t.Helper()
	require.True(t, s.IsEmpty())

	for i := 0; i < 5; i++ {
		s.Push(i)
	}
	require.False(t, s.IsEmpty())

	for i := 0; i < 5; i++ {
		require.Equal(t, 4-i, s.Pop())
	}
	require.True(t, s.IsEmpty())

	RequireViolation(t, func() { s.Pop() }, "pop on empty stack")
}

// RunStackDestruction pushes ten counters, pops and destroys five, then
// releases the stack. Every counter must be destroyed exactly once.
func RunStackDestruction(t *testing.T, newStack func() Releasable[Counter]) {
	t.Helper()
	var tally Tally
	s := newStack()

	for i := 0; i < 10; i++ {
		s.Push(tally.New())
	}
	require.Zero(t, tally.Released(), "push must not destroy")

	for i := 0; i < 5; i++ {
		storage.Destroy(s.Pop())
		require.Equal(t, i+1, tally.Released())
	}

	s.Release()
	require.Equal(t, 10, tally.Released())
	require.True(t, s.IsEmpty())
}

// RunBoundedOverflow fills an empty bounded stack of capacity 5 and checks
// that a sixth push is a violation.
func RunBoundedOverflow(t *testing.T, s BoundedStack[int]) {
	t.Helper()
	require.True(t, s.IsEmpty())
	require.Equal(t, 5, s.Cap())

	for i := 0; i < 5; i++ {
		s.Push(i)
	}
	RequireViolation(t, func() { s.Push(5) }, "push past capacity")
	require.Equal(t, 5, s.Cap())
}

// RunUnboundedGrow checks that ten pushes fit the initial capacity and the
// eleventh grows it.
func RunUnboundedGrow(t *testing.T, s UnboundedStack[int]) {
	t.Helper()
	require.True(t, s.IsEmpty())

	for i := 0; i < 10; i++ {
		s.Push(i)
	}
	require.Equal(t, 10, s.Cap())

	s.Push(10)
	require.Greater(t, s.Cap(), 10)
}

// RunUnboundedShrink checks that popping well below capacity gives memory back.
func RunUnboundedShrink(t *testing.T, s UnboundedStack[int]) {
	t.Helper()
	require.True(t, s.IsEmpty())

	for i := 0; i < 11; i++ {
		s.Push(i)
	}
	grown := s.Cap()

	for i := 0; i < 5; i++ {
		s.Pop()
	}
	require.Less(t, s.Cap(), grown)
}

// RunReserve checks that Reserve(20) yields exactly 20 slots.
func RunReserve(t *testing.T, u traits.Unbounded) {
	t.Helper()
	u.Reserve(20)
	require.Equal(t, 20, u.Cap())
}

// RunShrinkToFit checks that ShrinkToFit on a collection with slack trims
// capacity to its length.
func RunShrinkToFit(t *testing.T, u interface {
	traits.Unbounded
	traits.Collection
},
) {
	t.Helper()
	require.Greater(t, u.Cap(), u.Len())
	u.ShrinkToFit()
	require.Equal(t, u.Len(), u.Cap())
}

// RunAllocatorDestruction checks that neither Allocate nor Free destroys the
// value: ownership passes to the caller.
func RunAllocatorDestruction(t *testing.T, a traits.Allocator[Counter]) {
	t.Helper()
	var tally Tally

	p := a.Allocate(tally.New())
	require.NotNil(t, p)
	require.Zero(t, tally.Released())

	c := a.Free(p)
	require.Zero(t, tally.Released())

	storage.Destroy(c)
	require.Equal(t, 1, tally.Released())
}
