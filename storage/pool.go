package storage

import (
	"unsafe"

	"github.com/joshuapare/slabkit/internal/contract"
	"github.com/joshuapare/slabkit/internal/logger"
	"github.com/joshuapare/slabkit/traits"
)

// Link word values. A free slot's link holds the index of the next free slot.
const (
	endOfList = -1 // last slot on the free list
	slotLive  = -2 // slot holds a value handed out by Allocate
)

// slot is one pool cell. item must stay the first field: a *T handed out by
// Allocate is the address of its slot.
type slot[T any] struct {
	item T
	link int
}

// Pool is a fixed-capacity slab allocator with O(1) Allocate and Free.
//
// Slots are claimed in order until the pool has been filled once; after that
// freed slots are reused most-recently-freed first. A pointer returned by
// Allocate stays valid until it is passed to Free or the pool is released.
//
// The link word of each slot doubles as a liveness marker, so Free detects
// double frees and pointers to never-allocated slots in addition to foreign
// pointers.
type Pool[T any] struct {
	buffer   *RawBuffer[slot[T]]
	next     int // first never-used slot
	free     int // head of the free list, or endOfList
	live     int
	released bool
}

// PoolStats describes slot usage. Live+Free+Unused == Capacity.
type PoolStats struct {
	Capacity int
	Live     int // slots holding a value
	Free     int // slots on the free list
	Unused   int // slots never handed out
}

// NewPool returns a pool with room for capacity values.
func NewPool[T any](capacity int) *Pool[T] {
	contract.Requiref(capacity >= 0, "NewPool", "capacity %d >= 0", capacity)
	p := &Pool[T]{
		buffer: NewRawBuffer[slot[T]](capacity),
		free:   endOfList,
	}
	if logger.DebugEnabled() {
		var zero slot[T]
		logger.Debug("pool created", "capacity", capacity, "slot_bytes", unsafe.Sizeof(zero))
	}
	return p
}

// Cap returns the number of slots.
func (p *Pool[T]) Cap() int { return p.buffer.Cap() }

// Live returns the number of values currently allocated.
func (p *Pool[T]) Live() int { return p.live }

// Stats returns a snapshot of slot usage.
func (p *Pool[T]) Stats() PoolStats {
	capacity := p.Cap()
	unused := capacity - p.next
	return PoolStats{
		Capacity: capacity,
		Live:     p.live,
		Free:     capacity - p.live - unused,
		Unused:   unused,
	}
}

// Allocate stores v in a free slot and returns its address. The pool must
// not be exhausted.
func (p *Pool[T]) Allocate(v T) *T {
	i, ok := p.claim()
	if !ok {
		contract.Require(!p.released, "Pool.Allocate", "pool has not been released or moved from")
		contract.Requiref(false, "Pool.Allocate", "live %d < capacity %d", p.live, p.Cap())
	}
	return p.fill(i, v)
}

// TryAllocate is Allocate returning ErrPoolExhausted instead of panicking
// when every slot is live.
func (p *Pool[T]) TryAllocate(v T) (*T, error) {
	i, ok := p.claim()
	if !ok {
		return nil, ErrPoolExhausted
	}
	return p.fill(i, v), nil
}

// Free moves the value out of ptr's slot, returns it, and puts the slot at
// the head of the free list. ptr must have been returned by Allocate on this
// pool and not freed since.
func (p *Pool[T]) Free(ptr *T) T {
	i, ok := p.index(ptr)
	if !ok {
		contract.Require(false, "Pool.Free", "pointer addresses a slot of this pool")
	}
	s := p.buffer.Ref(i)
	if s.link != slotLive {
		contract.Requiref(false, "Pool.Free", "slot %d is live (double free or never allocated)", i)
	}

	v := s.item
	var zero T
	s.item = zero
	s.link = p.free
	p.free = i
	p.live--
	return v
}

// Owns reports whether ptr addresses a slot of this pool, live or not.
func (p *Pool[T]) Owns(ptr *T) bool {
	_, ok := p.index(ptr)
	return ok
}

// Release destroys every live value and returns the slab to the heap.
// Pointers handed out by Allocate are invalid afterwards. The pool is left
// with capacity 0 and every later Allocate is a violation.
func (p *Pool[T]) Release() {
	if logger.DebugEnabled() {
		st := p.Stats()
		logger.Debug("pool release", "capacity", st.Capacity, "live", st.Live, "free", st.Free)
	}
	for i := 0; i < p.next; i++ {
		s := p.buffer.Ref(i)
		if s.link == slotLive {
			Destroy(s.item)
			var zero T
			s.item = zero
		}
	}
	p.buffer.Release()
	p.next, p.free, p.live = 0, endOfList, 0
	p.released = true
}

// Move transfers the slab and its bookkeeping to a new pool and leaves p with
// capacity 0. Pointers handed out before the move remain valid and must be
// freed through the returned pool.
func (p *Pool[T]) Move() *Pool[T] {
	out := &Pool[T]{
		buffer: p.buffer.Move(),
		next:   p.next,
		free:   p.free,
		live:   p.live,
	}
	p.next, p.free, p.live = 0, endOfList, 0
	p.released = true
	return out
}

// claim picks the slot for the next allocation.
func (p *Pool[T]) claim() (int, bool) {
	if p.free != endOfList {
		i := p.free
		p.free = p.buffer.Ref(i).link
		return i, true
	}
	if p.next < p.Cap() {
		i := p.next
		p.next++
		return i, true
	}
	return 0, false
}

func (p *Pool[T]) fill(i int, v T) *T {
	s := p.buffer.Ref(i)
	s.item = v
	s.link = slotLive
	p.live++
	return &s.item
}

// index maps ptr back to its slot.
func (p *Pool[T]) index(ptr *T) (int, bool) {
	n := p.Cap()
	if ptr == nil || n == 0 {
		return 0, false
	}
	var zero slot[T]
	size := unsafe.Sizeof(zero)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(p.buffer.data)))
	addr := uintptr(unsafe.Pointer(ptr))
	if addr < base || addr >= base+uintptr(n)*size {
		return 0, false
	}
	off := addr - base
	if off%size != 0 {
		return 0, false
	}
	return int(off / size), true
}

var _ traits.Allocator[int] = (*Pool[int])(nil)
