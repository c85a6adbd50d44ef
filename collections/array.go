package collections

import (
	"iter"

	"github.com/joshuapare/slabkit/internal/buf"
	"github.com/joshuapare/slabkit/internal/contract"
	"github.com/joshuapare/slabkit/internal/logger"
	"github.com/joshuapare/slabkit/storage"
	"github.com/joshuapare/slabkit/traits"
)

// arrayCore is the state shared by Array and FixedArray: slots [0,size) of
// buffer are live, the rest are zero.
type arrayCore[T any] struct {
	size   int
	buffer *storage.RawBuffer[T]
}

// Len returns the number of live elements.
func (a *arrayCore[T]) Len() int { return a.size }

// IsEmpty reports whether the array holds no elements.
func (a *arrayCore[T]) IsEmpty() bool { return a.size == 0 }

// Cap returns the number of slots in the backing buffer.
func (a *arrayCore[T]) Cap() int { return a.buffer.Cap() }

// Get returns element i, counting from the bottom of the stack.
func (a *arrayCore[T]) Get(i int) T {
	a.check("Array.Get", i)
	return a.buffer.At(i)
}

// GetMut borrows element i. The pointer is invalidated by Push, Pop,
// Reserve, ShrinkToFit, Release and Move.
func (a *arrayCore[T]) GetMut(i int) *T {
	a.check("Array.GetMut", i)
	return a.buffer.Ref(i)
}

// Set replaces element i, destroying the previous value.
func (a *arrayCore[T]) Set(i int, v T) {
	a.check("Array.Set", i)
	slot := a.buffer.Ref(i)
	storage.Destroy(*slot)
	*slot = v
}

// All yields index/element pairs from the bottom of the stack to the top.
func (a *arrayCore[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.size; i++ {
			if !yield(i, a.buffer.At(i)) {
				return
			}
		}
	}
}

func (a *arrayCore[T]) check(op string, i int) {
	if !buf.InRange(i, a.size) {
		contract.Requiref(false, op, "index %d < len %d", i, a.size)
	}
}

// take moves the top element out.
func (a *arrayCore[T]) take(op string) T {
	contract.Require(a.size > 0, op, "stack is not empty")
	a.size--
	return a.buffer.Read(a.size)
}

// release destroys the live elements top first and frees the buffer.
func (a *arrayCore[T]) release(op string) {
	if logger.DebugEnabled() {
		logger.Debug("release", "op", op, "len", a.size, "cap", a.buffer.Cap())
	}
	for a.size > 0 {
		a.size--
		storage.Destroy(a.buffer.Read(a.size))
	}
	a.buffer.Release()
}

func (a *arrayCore[T]) moveOut() arrayCore[T] {
	out := arrayCore[T]{size: a.size, buffer: a.buffer.Move()}
	a.size = 0
	return out
}

// ArrayOptions configures NewArrayWith.
type ArrayOptions[T any] struct {
	// Policy drives growth and shrink. Default: DefaultGrowth.
	Policy ResizingPolicy

	// Backing supplies slot memory. Default: storage.HeapBacking.
	Backing storage.Backing[T]
}

// Array is a growable contiguous stack.
type Array[T any] struct {
	arrayCore[T]
	policy ResizingPolicy
}

// NewArray returns an empty Array using DefaultGrowth. The initial capacity is
// DefaultGrowth.Initial(capacity).
func NewArray[T any](capacity int) *Array[T] {
	return NewArrayWith[T](capacity, ArrayOptions[T]{})
}

// NewArrayWith returns an empty Array with the given policy and backing.
// A policy with a Validate method, such as GrowthConfig, must pass it.
func NewArrayWith[T any](capacity int, opts ArrayOptions[T]) *Array[T] {
	contract.Requiref(capacity >= 0, "NewArray", "capacity %d >= 0", capacity)
	policy := opts.Policy
	if policy == nil {
		policy = DefaultGrowth
	}
	if v, ok := policy.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			contract.Requiref(false, "NewArray", "policy %v is valid: %v", policy, err)
		}
	}
	return &Array[T]{
		arrayCore: arrayCore[T]{
			buffer: storage.NewRawBufferWith(opts.Backing, policy.Initial(capacity)),
		},
		policy: policy,
	}
}

// Policy returns the resizing policy in use.
func (a *Array[T]) Policy() ResizingPolicy { return a.policy }

// Push appends v, growing the buffer first if it is full.
func (a *Array[T]) Push(v T) {
	if a.size == a.buffer.Cap() {
		a.buffer.Resize(a.grown())
	}
	a.buffer.Write(a.size, v)
	a.size++
}

// grown is the capacity for a full buffer: the policy's choice, but never
// less than one extra slot. A released array starts over at Initial(0).
func (a *Array[T]) grown() int {
	if a.size == 0 {
		return max(a.policy.Initial(0), 1)
	}
	return max(a.policy.Grow(a.size), buf.AddSaturating(a.size, 1))
}

// Pop removes and returns the top element, shrinking the buffer if the policy
// asks for it. The array must not be empty.
func (a *Array[T]) Pop() T {
	v := a.take("Array.Pop")
	capacity := a.buffer.Cap()
	if n := a.policy.Shrink(a.size, capacity); n < capacity {
		a.buffer.Resize(max(n, a.size))
	}
	return v
}

// TryPop is Pop returning ErrEmpty instead of panicking on an empty array.
func (a *Array[T]) TryPop() (T, error) {
	if a.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return a.Pop(), nil
}

// Reserve grows capacity to at least n. It never shrinks.
func (a *Array[T]) Reserve(n int) {
	if n > a.buffer.Cap() {
		a.buffer.Resize(n)
	}
}

// ShrinkToFit reduces capacity to the policy's initial capacity for the
// current length.
func (a *Array[T]) ShrinkToFit() {
	if n := a.policy.Initial(a.size); n < a.buffer.Cap() {
		a.buffer.Resize(max(n, a.size))
	}
}

// Release destroys every element and frees the buffer. The array stays
// usable and grows again from zero on the next push.
func (a *Array[T]) Release() { a.release("Array.Release") }

// Move transfers the elements and buffer to a new Array and leaves a empty,
// with capacity 0.
func (a *Array[T]) Move() *Array[T] {
	return &Array[T]{arrayCore: a.moveOut(), policy: a.policy}
}

// FixedArray is a bounded contiguous stack.
type FixedArray[T any] struct {
	arrayCore[T]
}

// NewFixedArray returns an empty FixedArray with room for exactly capacity
// elements.
func NewFixedArray[T any](capacity int) *FixedArray[T] {
	return NewFixedArrayWith[T](capacity, nil)
}

// NewFixedArrayWith is NewFixedArray with slots drawn from b.
func NewFixedArrayWith[T any](capacity int, b storage.Backing[T]) *FixedArray[T] {
	contract.Requiref(capacity >= 0, "NewFixedArray", "capacity %d >= 0", capacity)
	return &FixedArray[T]{
		arrayCore: arrayCore[T]{
			buffer: storage.NewRawBufferWith(b, FixedCapacity{}.Initial(capacity)),
		},
	}
}

// Push appends v. The array must not be full.
func (a *FixedArray[T]) Push(v T) {
	contract.Requiref(a.size < a.buffer.Cap(), "FixedArray.Push", "len %d < capacity %d", a.size, a.buffer.Cap())
	a.buffer.Write(a.size, v)
	a.size++
}

// TryPush is Push returning ErrFull instead of panicking on a full array.
func (a *FixedArray[T]) TryPush(v T) error {
	if a.size == a.buffer.Cap() {
		return ErrFull
	}
	a.Push(v)
	return nil
}

// Pop removes and returns the top element. The array must not be empty.
func (a *FixedArray[T]) Pop() T { return a.take("FixedArray.Pop") }

// TryPop is Pop returning ErrEmpty instead of panicking on an empty array.
func (a *FixedArray[T]) TryPop() (T, error) {
	if a.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return a.Pop(), nil
}

// Release destroys every element and frees the buffer, leaving capacity 0.
func (a *FixedArray[T]) Release() { a.release("FixedArray.Release") }

// Move transfers the elements and buffer to a new FixedArray and leaves a
// empty, with capacity 0.
func (a *FixedArray[T]) Move() *FixedArray[T] {
	return &FixedArray[T]{arrayCore: a.moveOut()}
}

var (
	_ traits.Stack[int]   = (*Array[int])(nil)
	_ traits.ListMut[int] = (*Array[int])(nil)
	_ traits.Unbounded    = (*Array[int])(nil)

	_ traits.Stack[int]   = (*FixedArray[int])(nil)
	_ traits.ListMut[int] = (*FixedArray[int])(nil)
	_ traits.Bounded      = (*FixedArray[int])(nil)
)
