package storage

import (
	"github.com/joshuapare/slabkit/internal/contract"
	"github.com/joshuapare/slabkit/traits"
)

// SystemAllocator gives every value its own heap object. It has no capacity
// limit and does no pooling.
//
// Unlike Pool it cannot tell a double free from a valid one; passing a
// pointer to Free twice is a caller error that goes undetected.
type SystemAllocator[T any] struct {
	live int
}

// NewSystemAllocator returns a ready allocator. The zero value is also ready.
func NewSystemAllocator[T any]() *SystemAllocator[T] {
	return &SystemAllocator[T]{}
}

// Allocate moves v into a fresh heap object.
func (a *SystemAllocator[T]) Allocate(v T) *T {
	p := new(T)
	*p = v
	a.live++
	return p
}

// Free moves the value out of p and drops the object.
func (a *SystemAllocator[T]) Free(p *T) T {
	contract.Require(p != nil, "SystemAllocator.Free", "pointer is not nil")
	contract.Require(a.live > 0, "SystemAllocator.Free", "allocator has live objects")
	v := *p
	var zero T
	*p = zero
	a.live--
	return v
}

// Live returns the number of objects allocated and not yet freed.
func (a *SystemAllocator[T]) Live() int { return a.live }

var _ traits.Allocator[int] = (*SystemAllocator[int])(nil)
