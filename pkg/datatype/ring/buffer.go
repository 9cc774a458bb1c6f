// Package ring provides a fixed capacity circular buffer addressed by logical
// position. Positions grow monotonically with every AddLast; once capacity
// elements are resident the oldest one is overwritten.
//
// The buffer never allocates after New, AddLast and Get are O(1).
package ring

// Buffer is a ring of capacity slots. It is not safe for concurrent use.
type Buffer[V any] struct {
	values []V

	// next is the logical position the next AddLast writes to
	next int64

	// low is the lowest position that may be resident, raised by Truncate and ResetAt
	low int64
}

// New creates a buffer holding at most capacity elements, capacity must be positive.
func New[V any](capacity int) *Buffer[V] {
	if capacity <= 0 {
		panic("ring: capacity must be positive")
	}

	return &Buffer[V]{
		values: make([]V, capacity),
	}
}

func (b *Buffer[V]) Capacity() int {
	return len(b.values)
}

// First returns the logical position of the oldest resident element.
func (b *Buffer[V]) First() int64 {
	first := b.next - int64(len(b.values))
	if first < b.low {
		first = b.low
	}
	return first
}

// Next returns the logical position that the next AddLast will use.
func (b *Buffer[V]) Next() int64 {
	return b.next
}

// Len returns the number of resident elements.
func (b *Buffer[V]) Len() int {
	return int(b.next - b.First())
}

func (b *Buffer[V]) slot(pos int64) int {
	return int(pos % int64(len(b.values)))
}

// AddLast appends v, overwriting the oldest element when the buffer is full,
// and returns the logical position of v.
func (b *Buffer[V]) AddLast(v V) int64 {
	pos := b.next
	b.values[b.slot(pos)] = v
	b.next++
	return pos
}

// Has reports whether pos is resident.
func (b *Buffer[V]) Has(pos int64) bool {
	return pos >= 0 && pos < b.next && pos >= b.First()
}

// Get returns the element at pos, or the zero value and false if pos is not resident.
func (b *Buffer[V]) Get(pos int64) (v V, ok bool) {
	if !b.Has(pos) {
		return v, false
	}
	return b.values[b.slot(pos)], true
}

// Last returns the most recently added element.
func (b *Buffer[V]) Last() (v V, ok bool) {
	return b.Get(b.next - 1)
}

// Set overwrites a resident element, it returns false if pos is not resident.
func (b *Buffer[V]) Set(pos int64, v V) bool {
	if !b.Has(pos) {
		return false
	}
	b.values[b.slot(pos)] = v
	return true
}

// Truncate drops every element at position pos and above, so the next AddLast writes pos.
func (b *Buffer[V]) Truncate(pos int64) {
	if pos >= b.next {
		return
	}

	first := b.First()
	if pos <= first {
		b.ResetAt(pos)
		return
	}

	// freeze the lower bound before moving next backwards, the slots below
	// first are stale and must not become visible again
	b.low = first
	b.next = pos
}

// ResetAt empties the buffer and continues numbering at pos.
func (b *Buffer[V]) ResetAt(pos int64) {
	if pos < 0 {
		pos = 0
	}

	var zero V
	for i := range b.values {
		b.values[i] = zero
	}

	b.next = pos
	b.low = pos
}
