package storage

import (
	"unsafe"

	"github.com/joshuapare/slabkit/internal/buf"
	"github.com/joshuapare/slabkit/internal/logger"
	"github.com/joshuapare/slabkit/internal/pages"
)

// Backing supplies and releases the memory behind a RawBuffer.
//
// Alloc and Realloc return slices whose length equals the requested slot
// count, with every slot beyond the preserved prefix zeroed. Free is called
// exactly once per slice returned by Alloc or Realloc, and never for a slice
// that was passed to Realloc.
type Backing[T any] interface {
	Alloc(n int) ([]T, error)
	Realloc(old []T, n int) ([]T, error)
	Free(s []T) error
}

// HeapBacking allocates slots on the Go heap. It accepts any element type.
type HeapBacking[T any] struct{}

func (HeapBacking[T]) Alloc(n int) ([]T, error) {
	if _, err := slotBytes[T](n); err != nil {
		return nil, err
	}
	return make([]T, n), nil
}

func (h HeapBacking[T]) Realloc(old []T, n int) ([]T, error) {
	s, err := h.Alloc(n)
	if err != nil {
		return nil, err
	}
	copy(s, old)
	return s, nil
}

// Free drops the slice; the garbage collector reclaims it.
func (HeapBacking[T]) Free([]T) error { return nil }

// Plain lists the element types that may live in memory the garbage collector
// does not scan.
type Plain interface {
	~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~complex64 | ~complex128
}

// PagedBacking allocates slots from anonymous page mappings outside the Go
// heap. Large numeric buffers built on it put no pressure on the garbage
// collector. On platforms without mmap it falls back to the heap.
type PagedBacking[T Plain] struct{}

// NewPagedBacking returns a PagedBacking for T.
func NewPagedBacking[T Plain]() PagedBacking[T] { return PagedBacking[T]{} }

func (PagedBacking[T]) Alloc(n int) ([]T, error) {
	size, err := slotBytes[T](n)
	if err != nil {
		return nil, err
	}
	raw, err := pages.Alloc(size)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(raw))), n), nil
}

func (p PagedBacking[T]) Realloc(old []T, n int) ([]T, error) {
	s, err := p.Alloc(n)
	if err != nil {
		return nil, err
	}
	copy(s, old)
	if err := p.Free(old); err != nil {
		// The new mapping is already populated; a stuck old mapping only
		// leaks address space.
		logger.Warn("paged realloc: old mapping not released", "slots", cap(old), "err", err)
	}
	return s, nil
}

func (PagedBacking[T]) Free(s []T) error {
	if cap(s) == 0 {
		return nil
	}
	var zero T
	size := cap(s) * int(unsafe.Sizeof(zero))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), pages.RoundUp(size))
	return pages.Free(raw)
}

func slotBytes[T any](n int) (int, error) {
	var zero T
	return buf.SlotBytes(n, int(unsafe.Sizeof(zero)))
}
