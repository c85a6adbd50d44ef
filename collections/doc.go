// Package collections provides stack-shaped containers built on the storage
// package.
//
// # Containers
//
// Array[T] is a contiguous, growable stack over a storage.RawBuffer. Its
// capacity follows a ResizingPolicy: it grows when a push finds the buffer
// full and shrinks after a pop leaves it sparsely used.
//
// FixedArray[T] is the bounded variant. Its capacity is set once; pushing
// onto a full FixedArray is a contract violation (TryPush reports ErrFull
// instead).
//
// LinkedStack[T] is an intrusive singly-linked list. Nodes come from a
// traits.Allocator: storage.SystemAllocator by default, or a storage.Pool for
// a bounded, slab-backed stack.
//
// All three satisfy traits.Stack[T] and traits.Collection, so call sites can
// be written once against the capabilities and run over any backing.
//
// # Growth policies
//
//	FixedCapacity   Initial(n) = n, never resizes
//	DefaultGrowth   Initial(n) = max(10, n)
//	                Grow(s)    = s + s/2
//	                Shrink     to max(10, s*3/2) once s*9/4 < capacity
//
// The gap between the shrink trigger (s*9/4) and the shrink target (s*3/2)
// keeps a stack that alternates push and pop at a boundary from resizing on
// every call. Other presets and custom policies are expressed with
// GrowthConfig.
//
// # Destruction
//
// Release destroys every live element (top first) and frees the backing
// memory. Elements implementing storage.Releaser have Release called exactly
// once. Pop hands ownership to the caller and destroys nothing.
//
// # Thread Safety
//
// Containers are not thread-safe. Callers must synchronize access externally.
package collections
