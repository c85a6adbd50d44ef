package storage

import (
	"github.com/joshuapare/slabkit/internal/buf"
	"github.com/joshuapare/slabkit/internal/contract"
	"github.com/joshuapare/slabkit/internal/logger"
)

// RawBuffer is an owned run of capacity slots of T.
//
// The buffer does not track which slots are occupied. Slots that hold no
// value are zero. Every indexed operation requires 0 <= i < Cap() and panics
// with a contract violation otherwise.
type RawBuffer[T any] struct {
	data    []T // len(data) == capacity; nil iff capacity == 0
	backing Backing[T]
}

// NewRawBuffer returns a heap-backed buffer with the given capacity.
// A capacity of 0 allocates nothing.
func NewRawBuffer[T any](capacity int) *RawBuffer[T] {
	return NewRawBufferWith[T](HeapBacking[T]{}, capacity)
}

// NewRawBufferWith returns a buffer whose memory comes from b.
// A nil b selects HeapBacking.
func NewRawBufferWith[T any](b Backing[T], capacity int) *RawBuffer[T] {
	contract.Requiref(capacity >= 0, "NewRawBuffer", "capacity %d >= 0", capacity)
	if b == nil {
		b = HeapBacking[T]{}
	}
	r := &RawBuffer[T]{backing: b}
	if capacity > 0 {
		data, err := b.Alloc(capacity)
		if err != nil {
			contract.Fail("NewRawBuffer", bytesFor[T](capacity), err)
		}
		r.data = data
	}
	return r
}

// Cap returns the number of slots.
func (r *RawBuffer[T]) Cap() int { return len(r.data) }

// Resize changes the number of slots to n, preserving the first min(n, Cap())
// slots. New slots are zero. Values in slots cut off by a shrink are dropped
// without being destroyed; the owner must have moved them out first.
func (r *RawBuffer[T]) Resize(n int) {
	contract.Requiref(n >= 0, "RawBuffer.Resize", "capacity %d >= 0", n)
	old := len(r.data)
	if n == old {
		return
	}
	if r.backing == nil {
		r.backing = HeapBacking[T]{}
	}

	if n == 0 {
		r.Release()
	} else {
		var (
			data []T
			err  error
		)
		if old == 0 {
			data, err = r.backing.Alloc(n)
		} else {
			data, err = r.backing.Realloc(r.data, n)
		}
		if err != nil {
			contract.Fail("RawBuffer.Resize", bytesFor[T](n), err)
		}
		r.data = data
	}

	if logger.DebugEnabled() {
		logger.Debug("rawbuf resize", "from", old, "to", n)
	}
}

// Write stores v in slot i. The slot must not hold a live value.
func (r *RawBuffer[T]) Write(i int, v T) {
	r.check("RawBuffer.Write", i)
	r.data[i] = v
}

// Read moves the value out of slot i and leaves the slot zero.
func (r *RawBuffer[T]) Read(i int) T {
	r.check("RawBuffer.Read", i)
	v := r.data[i]
	var zero T
	r.data[i] = zero
	return v
}

// At returns a copy of the value in slot i.
func (r *RawBuffer[T]) At(i int) T {
	r.check("RawBuffer.At", i)
	return r.data[i]
}

// Ref borrows slot i. The pointer is invalidated by Resize, Release and Move.
func (r *RawBuffer[T]) Ref(i int) *T {
	r.check("RawBuffer.Ref", i)
	return &r.data[i]
}

// Release returns the memory to the backing. Values still in slots are not
// destroyed. The buffer is left with capacity 0 and may be resized again.
func (r *RawBuffer[T]) Release() {
	if r.data == nil {
		return
	}
	if err := r.backing.Free(r.data); err != nil {
		logger.Warn("rawbuf release failed", "slots", len(r.data), "err", err)
	}
	r.data = nil
}

// Move transfers the slots to a new buffer and leaves r empty.
func (r *RawBuffer[T]) Move() *RawBuffer[T] {
	out := &RawBuffer[T]{data: r.data, backing: r.backing}
	r.data = nil
	return out
}

func (r *RawBuffer[T]) check(op string, i int) {
	if !buf.InRange(i, len(r.data)) {
		contract.Requiref(false, op, "index %d < capacity %d", i, len(r.data))
	}
}

// bytesFor reports n slots in bytes for failure messages, -1 on overflow.
func bytesFor[T any](n int) int {
	size, err := slotBytes[T](n)
	if err != nil {
		return -1
	}
	return size
}
