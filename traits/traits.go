// Package traits defines the capability interfaces that slabkit's containers
// and allocators implement.
//
// Each interface is one capability group. A concrete type implements only the
// groups its semantics support: a FixedArray is Bounded but not Unbounded, a
// LinkedStack is a Stack but not a List. Callers should be written against
// the smallest set of capabilities they need:
//
//	func drain[T any](s interface {
//	    traits.Collection
//	    traits.Stack[T]
//	}) []T {
//	    out := make([]T, 0, s.Len())
//	    for !s.IsEmpty() {
//	        out = append(out, s.Pop())
//	    }
//	    return out
//	}
//
// Preconditions stated on these methods (non-empty pop, index bounds, capacity)
// are enforced by panicking with a contract violation; see the storage and
// collections packages.
package traits

// Collection is anything with a number of live elements.
type Collection interface {
	// Len returns the number of live elements.
	Len() int
}

// Bounded is a collection whose capacity is fixed at construction.
type Bounded interface {
	Cap() int
}

// Unbounded is a collection whose capacity follows its contents.
type Unbounded interface {
	Cap() int

	// Reserve grows capacity to at least n. It never shrinks.
	Reserve(n int)

	// ShrinkToFit reduces capacity to the smallest value the collection's
	// policy allows for its current length.
	ShrinkToFit()
}

// List provides read access by position. Index must be below Len().
type List[T any] interface {
	Collection
	Get(i int) T
}

// ListMut provides write access by position. Index must be below Len().
type ListMut[T any] interface {
	List[T]

	// GetMut borrows element i. The pointer is invalidated by any operation
	// that changes the collection's length or capacity.
	GetMut(i int) *T
	Set(i int, v T)
}

// Stack is a LIFO collection.
type Stack[T any] interface {
	IsEmpty() bool
	Push(v T)

	// Pop removes and returns the most recently pushed element. The stack
	// must not be empty.
	Pop() T
}

// Allocator hands out stable storage for single values.
type Allocator[T any] interface {
	// Allocate stores v and returns a pointer that stays valid until it is
	// passed to Free.
	Allocate(v T) *T

	// Free moves the value out of p, returns it, and releases p's storage.
	// p must have come from this allocator and not been freed since.
	Free(p *T) T
}

// PushAll pushes vs in order, so the last one ends up on top.
func PushAll[T any](s Stack[T], vs ...T) {
	for _, v := range vs {
		s.Push(v)
	}
}

// Drain pops every element, top first, and passes each to fn.
func Drain[T any](s Stack[T], fn func(T)) {
	for !s.IsEmpty() {
		v := s.Pop()
		if fn != nil {
			fn(v)
		}
	}
}
