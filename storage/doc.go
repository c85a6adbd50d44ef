// Package storage provides the raw building blocks slabkit's collections are
// made of: a resizable slot buffer, a fixed-capacity free-list pool and a
// pass-through heap allocator.
//
// # Overview
//
// RawBuffer[T] is a run of capacity slots of T. It does not know which slots
// hold live values; its owner tracks occupancy (an Array by its length, a Pool
// by its free list) and is responsible for destroying live values before the
// buffer itself is released.
//
// Pool[T] is a slab allocator over one RawBuffer. Allocation and free are
// O(1): freed slots are threaded into a LIFO free list through a link word
// kept with each slot, so the most recently freed slot is reused first.
//
// SystemAllocator[T] hands out one heap object per value with no capacity
// limit. It is the default node allocator for collections.LinkedStack.
//
// Both allocators satisfy traits.Allocator[T].
//
// # Backings
//
// A RawBuffer draws its memory from a Backing[T]:
//
//	HeapBacking[T]   make/copy on the Go heap (default, any T)
//	PagedBacking[T]  anonymous page mappings, pointer-free T only
//
// # Destruction
//
// Go has no destructors. Destroying a value means zeroing the slot that held
// it and, if the value implements Releaser, calling Release exactly once. Pop,
// Read and Free move a value out without destroying it; ownership passes to
// the caller.
//
// # Failures
//
// Broken preconditions (index out of range, pool exhausted, foreign or double
// free) panic with a *contract.Violation. Memory that cannot be obtained
// panics with a *contract.AllocFailure. TryAllocate offers a non-panicking
// path for pool exhaustion.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. Each buffer, pool and
// allocator has exactly one owner; callers must synchronize externally.
package storage
