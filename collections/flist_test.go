package collections_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/slabkit/collections"
	"github.com/joshuapare/slabkit/internal/contract"
	"github.com/joshuapare/slabkit/internal/testutil"
	"github.com/joshuapare/slabkit/storage"
)

// Test_LinkedStack_Order verifies LIFO order on heap nodes.
func Test_LinkedStack_Order(t *testing.T) {
	testutil.RunStackOrder(t, collections.NewLinkedStack[int]())
}

// Test_LinkedStack_PooledOrder verifies LIFO order on pooled nodes.
func Test_LinkedStack_PooledOrder(t *testing.T) {
	testutil.RunStackOrder(t, collections.NewPooledStack[int](5))
}

// Test_LinkedStack_ItemDestruction verifies every element is destroyed exactly once.
func Test_LinkedStack_ItemDestruction(t *testing.T) {
	testutil.RunStackDestruction(t, func() testutil.Releasable[testutil.Counter] {
		return collections.NewLinkedStack[testutil.Counter]()
	})
}

// Test_LinkedStack_PooledItemDestruction verifies pooled nodes destroy their values exactly once.
func Test_LinkedStack_PooledItemDestruction(t *testing.T) {
	testutil.RunStackDestruction(t, func() testutil.Releasable[testutil.Counter] {
		return collections.NewPooledStack[testutil.Counter](10)
	})
}

// Test_LinkedStack_PoolExhausted verifies a full pool turns a push into a violation.
func Test_LinkedStack_PoolExhausted(t *testing.T) {
	s := collections.NewPooledStack[int](3)
	for i := 0; i < 3; i++ {
		s.Push(i)
	}
	testutil.RequireViolation(t, func() { s.Push(3) })
	require.Equal(t, 3, s.Len())
	require.Equal(t, 2, s.Peek(), "failed push must leave the chain intact")

	s.Pop()
	s.Push(9)
	require.Equal(t, 9, s.Peek())
}

// Test_LinkedStack_NodesReturnToPool verifies popped nodes are recycled and release frees the pool.
func Test_LinkedStack_NodesReturnToPool(t *testing.T) {
	pool := storage.NewPool[collections.Node[int]](4)
	s := collections.NewLinkedStackWith[int](pool)

	for i := 0; i < 4; i++ {
		s.Push(i)
	}
	require.Equal(t, 4, pool.Live())

	s.Pop()
	s.Pop()
	require.Equal(t, 2, pool.Live())
	require.Equal(t, storage.PoolStats{Capacity: 4, Live: 2, Free: 2}, pool.Stats())

	s.Release()
	require.True(t, s.IsEmpty())
	require.Equal(t, 0, pool.Cap())
}

// Test_LinkedStack_SystemAllocatorBalance verifies every node allocated is freed.
func Test_LinkedStack_SystemAllocatorBalance(t *testing.T) {
	alloc := storage.NewSystemAllocator[collections.Node[string]]()
	s := collections.NewLinkedStackWith[string](alloc)
	s.Push("a")
	s.Push("b")
	require.Equal(t, 2, alloc.Live())

	s.Release()
	require.Equal(t, 0, alloc.Live())
	testutil.RequireViolation(t, func() { collections.NewLinkedStackWith[string](nil) })
}

// Test_LinkedStack_LenPeekAll verifies the read-only accessors.
func Test_LinkedStack_LenPeekAll(t *testing.T) {
	s := collections.NewLinkedStack[int]()
	require.Equal(t, 0, s.Len())
	testutil.RequireViolation(t, func() { s.Peek() })

	for i := 1; i <= 4; i++ {
		s.Push(i)
	}
	require.Equal(t, 4, s.Len())
	require.Equal(t, 4, s.Peek())
	require.Equal(t, []int{4, 3, 2, 1}, slices.Collect(s.All()))
}

// Test_LinkedStack_TryPop verifies the non-panicking pop.
func Test_LinkedStack_TryPop(t *testing.T) {
	s := collections.NewLinkedStack[int]()
	_, err := s.TryPop()
	require.ErrorIs(t, err, collections.ErrEmpty)

	s.Push(5)
	v, err := s.TryPop()
	require.NoError(t, err)
	require.Equal(t, 5, v)
}

// Test_LinkedStack_Move verifies the chain and its pool move together.
func Test_LinkedStack_Move(t *testing.T) {
	s := collections.NewPooledStack[int](2)
	s.Push(1)
	s.Push(2)

	m := s.Move()
	require.True(t, s.IsEmpty())
	require.Equal(t, 0, s.Len())

	// The source now allocates from the heap and is not bounded by the old pool.
	for i := 0; i < 5; i++ {
		s.Push(i)
	}
	require.Equal(t, 5, s.Len())

	require.Equal(t, 2, m.Len())
	testutil.RequireViolation(t, func() { m.Push(3) })
	require.Equal(t, 2, m.Pop())
	require.Equal(t, 1, m.Pop())
}

// Test_LinkedStack_PooledPushAfterRelease verifies a released pooled stack reports the release on push.
func Test_LinkedStack_PooledPushAfterRelease(t *testing.T) {
	s := collections.NewPooledStack[int](2)
	s.Push(1)
	s.Release()

	err := contract.Recover(func() { s.Push(2) })
	require.ErrorIs(t, err, contract.ErrPrecondition)
	require.Contains(t, err.Error(), "released")
	require.True(t, s.IsEmpty())
}
