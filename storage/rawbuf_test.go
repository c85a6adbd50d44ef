package storage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/slabkit/internal/contract"
	"github.com/joshuapare/slabkit/internal/testutil"
	"github.com/joshuapare/slabkit/storage"
)

// Test_RawBuffer_ZeroCapacity verifies an empty buffer allocates nothing and rejects every index.
func Test_RawBuffer_ZeroCapacity(t *testing.T) {
	r := storage.NewRawBuffer[int](0)
	require.Equal(t, 0, r.Cap())
	testutil.RequireViolation(t, func() { r.Write(0, 1) })
	testutil.RequireViolation(t, func() { r.Ref(0) })
	r.Release()
	r.Release()
}

// Test_RawBuffer_WriteReadMovesOut verifies Read returns the value and zeroes the slot.
func Test_RawBuffer_WriteReadMovesOut(t *testing.T) {
	r := storage.NewRawBuffer[string](3)
	r.Write(0, "a")
	r.Write(2, "c")

	require.Equal(t, "a", r.At(0))
	require.Equal(t, "", r.At(1))
	require.Equal(t, "c", r.Read(2))
	require.Equal(t, "", r.At(2), "read must leave the slot zero")

	*r.Ref(1) = "b"
	require.Equal(t, "b", r.At(1))
}

// Test_RawBuffer_IndexChecks verifies out-of-range indices are violations, not silent corruption.
func Test_RawBuffer_IndexChecks(t *testing.T) {
	r := storage.NewRawBuffer[int](4)
	for _, i := range []int{-1, 4, 100} {
		testutil.RequireViolation(t, func() { r.Write(i, 1) }, "write %d", i)
		testutil.RequireViolation(t, func() { r.Read(i) }, "read %d", i)
		testutil.RequireViolation(t, func() { r.At(i) }, "at %d", i)
		testutil.RequireViolation(t, func() { r.Ref(i) }, "ref %d", i)
	}
	testutil.RequireViolation(t, func() { r.Resize(-1) })
	testutil.RequireViolation(t, func() { storage.NewRawBuffer[int](-1) })
}

// Test_RawBuffer_ResizePreservesPrefix verifies growth keeps every slot and shrink keeps the retained prefix.
func Test_RawBuffer_ResizePreservesPrefix(t *testing.T) {
	r := storage.NewRawBuffer[int](4)
	for i := 0; i < 4; i++ {
		r.Write(i, i*10)
	}

	r.Resize(10)
	require.Equal(t, 10, r.Cap())
	for i := 0; i < 4; i++ {
		require.Equal(t, i*10, r.At(i))
	}
	for i := 4; i < 10; i++ {
		require.Zero(t, r.At(i), "grown slot %d must be zero", i)
	}

	r.Resize(2)
	require.Equal(t, 2, r.Cap())
	require.Equal(t, 0, r.At(0))
	require.Equal(t, 10, r.At(1))

	r.Resize(0)
	require.Equal(t, 0, r.Cap())

	r.Resize(3)
	require.Equal(t, 3, r.Cap())
	require.Zero(t, r.At(0))
}

// Test_RawBuffer_Move verifies ownership transfer leaves the source empty and reusable.
func Test_RawBuffer_Move(t *testing.T) {
	r := storage.NewRawBuffer[int](5)
	r.Write(4, 42)

	m := r.Move()
	require.Equal(t, 0, r.Cap())
	require.Equal(t, 5, m.Cap())
	require.Equal(t, 42, m.At(4))

	r.Release()
	r.Resize(2)
	require.Equal(t, 2, r.Cap())
	require.Equal(t, 42, m.At(4), "source reuse must not touch moved slots")
}

// Test_RawBuffer_ReleaseDoesNotDestroy verifies the buffer leaves slot teardown to its owner.
func Test_RawBuffer_ReleaseDoesNotDestroy(t *testing.T) {
	var tally testutil.Tally
	r := storage.NewRawBuffer[testutil.Counter](2)
	r.Write(0, tally.New())
	r.Release()
	require.Zero(t, tally.Released())
	require.Equal(t, 0, r.Cap())
}

// failingBacking refuses every allocation.
type failingBacking[T any] struct{ err error }

func (f failingBacking[T]) Alloc(int) ([]T, error) { return nil, f.err }

func (f failingBacking[T]) Realloc([]T, int) ([]T, error) { return nil, f.err }

func (f failingBacking[T]) Free([]T) error { return nil }

// Test_RawBuffer_AllocationFailure verifies backing errors surface as allocation failures.
func Test_RawBuffer_AllocationFailure(t *testing.T) {
	cause := errors.New("no memory")

	err := contract.Recover(func() {
		storage.NewRawBufferWith[int](failingBacking[int]{err: cause}, 8)
	})
	require.ErrorIs(t, err, contract.ErrAllocation)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, contract.ErrPrecondition)

	r := storage.NewRawBufferWith[int](failingBacking[int]{err: cause}, 0)
	err = contract.Recover(func() { r.Resize(4) })
	require.ErrorIs(t, err, contract.ErrAllocation)
	require.Equal(t, 0, r.Cap(), "failed resize must leave the buffer unchanged")
}

// Test_RawBuffer_SizeOverflow verifies an impossible slot count is an allocation failure.
func Test_RawBuffer_SizeOverflow(t *testing.T) {
	r := storage.NewRawBuffer[[64]byte](0)
	err := contract.Recover(func() { r.Resize(int(^uint(0)>>1) / 8) })
	require.ErrorIs(t, err, contract.ErrAllocation)

	var af *contract.AllocFailure
	require.True(t, errors.As(err, &af))
	require.Equal(t, -1, af.Bytes)
}

// Test_RawBuffer_PagedBacking verifies mapped slots behave like heap slots across resizes.
func Test_RawBuffer_PagedBacking(t *testing.T) {
	r := storage.NewRawBufferWith[uint64](storage.NewPagedBacking[uint64](), 16)
	require.Equal(t, 16, r.Cap())
	for i := 0; i < 16; i++ {
		require.Zero(t, r.At(i))
		r.Write(i, uint64(i)*3)
	}

	r.Resize(5000)
	require.Equal(t, 5000, r.Cap())
	for i := 0; i < 16; i++ {
		require.Equal(t, uint64(i)*3, r.At(i))
	}
	require.Zero(t, r.At(4999))

	r.Resize(4)
	require.Equal(t, uint64(9), r.Read(3))
	r.Release()
	require.Equal(t, 0, r.Cap())
}
