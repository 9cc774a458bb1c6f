package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_AddLastWrapsAround(t *testing.T) {
	const capacity = 4
	b := New[int](capacity)
	assert.Equal(t, capacity, b.Capacity())
	assert.Equal(t, 0, b.Len())

	const n = 10
	for i := 0; i < n; i++ {
		pos := b.AddLast(i * 10)
		assert.Equal(t, int64(i), pos)
	}

	assert.Equal(t, capacity, b.Len())
	assert.Equal(t, int64(n-capacity), b.First())
	assert.Equal(t, int64(n), b.Next())

	// the last C positions return the last C values in insertion order
	for pos := int64(n - capacity); pos < n; pos++ {
		v, ok := b.Get(pos)
		assert.True(t, ok, "position %d should be resident", pos)
		assert.Equal(t, int(pos)*10, v)
	}

	// older positions are gone
	for pos := int64(0); pos < n-capacity; pos++ {
		v, ok := b.Get(pos)
		assert.False(t, ok, "position %d should be evicted", pos)
		assert.Equal(t, 0, v)
	}

	_, ok := b.Get(n)
	assert.False(t, ok)
	_, ok = b.Get(-1)
	assert.False(t, ok)

	last, ok := b.Last()
	assert.True(t, ok)
	assert.Equal(t, 90, last)
}

func TestBuffer_Set(t *testing.T) {
	b := New[string](2)
	b.AddLast("a")
	b.AddLast("b")
	b.AddLast("c")

	assert.True(t, b.Set(2, "C"))
	assert.False(t, b.Set(0, "A"))
	assert.False(t, b.Set(3, "D"))

	v, _ := b.Get(2)
	assert.Equal(t, "C", v)
}

func TestBuffer_Truncate(t *testing.T) {
	b := New[int](5)
	for i := 0; i < 10; i++ {
		b.AddLast(i)
	}

	// resident: 5..9
	b.Truncate(8)
	assert.Equal(t, int64(8), b.Next())
	assert.Equal(t, int64(5), b.First())
	assert.Equal(t, 3, b.Len())

	// positions 3 and 4 share slots with 8 and 9, they must not come back
	_, ok := b.Get(3)
	assert.False(t, ok)
	_, ok = b.Get(4)
	assert.False(t, ok)
	_, ok = b.Get(8)
	assert.False(t, ok)

	b.AddLast(80)
	v, ok := b.Get(8)
	assert.True(t, ok)
	assert.Equal(t, 80, v)

	v, ok = b.Get(7)
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	// truncating below the first resident position empties the buffer
	b.Truncate(2)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, int64(2), b.Next())

	// truncating past the end is a no-op
	b.AddLast(20)
	b.Truncate(100)
	assert.Equal(t, 1, b.Len())
}

func TestBuffer_ResetAt(t *testing.T) {
	b := New[int](3)
	b.AddLast(1)
	b.AddLast(2)

	b.ResetAt(100)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, int64(100), b.First())

	_, ok := b.Get(1)
	assert.False(t, ok)

	assert.Equal(t, int64(100), b.AddLast(7))
	v, ok := b.Get(100)
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestBuffer_NoAllocation(t *testing.T) {
	b := New[float64](16)
	allocs := testing.AllocsPerRun(1000, func() {
		pos := b.AddLast(1.5)
		_, _ = b.Get(pos)
	})
	assert.Equal(t, 0.0, allocs)
}

func TestNew_InvalidCapacity(t *testing.T) {
	assert.Panics(t, func() { New[int](0) })
}
