package collections

import (
	"iter"

	"github.com/joshuapare/slabkit/internal/contract"
	"github.com/joshuapare/slabkit/internal/logger"
	"github.com/joshuapare/slabkit/storage"
	"github.com/joshuapare/slabkit/traits"
)

// Node is one link of a LinkedStack. Allocators for a LinkedStack[T] hand
// out *Node[T].
type Node[T any] struct {
	next *Node[T] // toward the bottom; nil at the tail
	Data T
}

// LinkedStack is a singly-linked stack whose nodes come from an allocator.
type LinkedStack[T any] struct {
	size  int
	top   *Node[T]
	alloc traits.Allocator[Node[T]]
}

// NewLinkedStack returns an empty stack that allocates each node on the heap.
func NewLinkedStack[T any]() *LinkedStack[T] {
	return NewLinkedStackWith[T](storage.NewSystemAllocator[Node[T]]())
}

// NewPooledStack returns an empty stack whose nodes live in a pool of the
// given capacity. Pushing onto a stack whose pool is exhausted is a
// contract violation.
func NewPooledStack[T any](capacity int) *LinkedStack[T] {
	return NewLinkedStackWith[T](storage.NewPool[Node[T]](capacity))
}

// NewLinkedStackWith returns an empty stack that takes ownership of alloc.
// If alloc implements storage.Releaser it is released with the stack.
func NewLinkedStackWith[T any](alloc traits.Allocator[Node[T]]) *LinkedStack[T] {
	contract.Require(alloc != nil, "NewLinkedStack", "allocator is not nil")
	return &LinkedStack[T]{alloc: alloc}
}

// Len returns the number of nodes in the chain.
func (s *LinkedStack[T]) Len() int { return s.size }

// IsEmpty reports whether the stack has no nodes.
func (s *LinkedStack[T]) IsEmpty() bool { return s.top == nil }

// Push links a new node holding v on top.
func (s *LinkedStack[T]) Push(v T) {
	s.top = s.alloc.Allocate(Node[T]{next: s.top, Data: v})
	s.size++
}

// Pop unlinks the top node, returns it to the allocator and returns its
// value. The stack must not be empty.
func (s *LinkedStack[T]) Pop() T {
	contract.Require(!s.IsEmpty(), "LinkedStack.Pop", "stack is not empty")
	n := s.top
	s.top = n.next
	s.size--
	return s.alloc.Free(n).Data
}

// TryPop is Pop returning ErrEmpty instead of panicking on an empty stack.
func (s *LinkedStack[T]) TryPop() (T, error) {
	if s.IsEmpty() {
		var zero T
		return zero, ErrEmpty
	}
	return s.Pop(), nil
}

// Peek returns the top value without removing it. The stack must not be
// empty.
func (s *LinkedStack[T]) Peek() T {
	contract.Require(!s.IsEmpty(), "LinkedStack.Peek", "stack is not empty")
	return s.top.Data
}

// All yields values from the top of the stack to the bottom.
func (s *LinkedStack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := s.top; n != nil; n = n.next {
			if !yield(n.Data) {
				return
			}
		}
	}
}

// Release pops and destroys every value, returning each node to the
// allocator, then releases the allocator if it can be released. A stack
// whose allocator was released, such as one from NewPooledStack, cannot be
// pushed onto again.
func (s *LinkedStack[T]) Release() {
	if logger.DebugEnabled() {
		logger.Debug("release", "op", "LinkedStack.Release", "len", s.size)
	}
	for !s.IsEmpty() {
		storage.Destroy(s.Pop())
	}
	storage.Destroy(s.alloc)
}

// Move transfers the chain and the allocator to a new stack. s is left empty
// with a fresh heap allocator.
func (s *LinkedStack[T]) Move() *LinkedStack[T] {
	out := &LinkedStack[T]{size: s.size, top: s.top, alloc: s.alloc}
	s.size, s.top = 0, nil
	s.alloc = storage.NewSystemAllocator[Node[T]]()
	return out
}

var _ traits.Stack[int] = (*LinkedStack[int])(nil)

var _ traits.Collection = (*LinkedStack[int])(nil)
