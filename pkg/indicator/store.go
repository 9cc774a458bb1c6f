package indicator

import (
	"github.com/c9s/tacore/pkg/datatype/ring"
	"github.com/c9s/tacore/pkg/fixedpoint"
)

type slot struct {
	value fixedpoint.Value
	ok    bool
}

// store maps series indices to computed values.
type store interface {
	get(index int) (fixedpoint.Value, bool)
	set(index int, v fixedpoint.Value)

	// truncate drops every slot at index and above
	truncate(index int)
	reset()
}

// denseStore backs caches of unbounded series, nothing is ever evicted.
type denseStore struct {
	slots []slot
}

func newDenseStore(capacity int) *denseStore {
	return &denseStore{slots: make([]slot, 0, capacity)}
}

func (s *denseStore) get(index int) (fixedpoint.Value, bool) {
	if index < 0 || index >= len(s.slots) {
		return fixedpoint.NaN, false
	}

	e := s.slots[index]
	return e.value, e.ok
}

func (s *denseStore) set(index int, v fixedpoint.Value) {
	if index < 0 {
		return
	}

	for len(s.slots) <= index {
		s.slots = append(s.slots, slot{})
	}
	s.slots[index] = slot{value: v, ok: true}
}

func (s *denseStore) truncate(index int) {
	if index < 0 {
		index = 0
	}

	if index < len(s.slots) {
		s.slots = s.slots[:index]
	}
}

func (s *denseStore) reset() {
	s.slots = s.slots[:0]
}

// ringStore backs caches of bounded series, it keeps the same window as the series.
type ringStore struct {
	buffer *ring.Buffer[slot]
}

func newRingStore(capacity int) *ringStore {
	return &ringStore{buffer: ring.New[slot](capacity)}
}

func (s *ringStore) get(index int) (fixedpoint.Value, bool) {
	e, ok := s.buffer.Get(int64(index))
	if !ok {
		return fixedpoint.NaN, false
	}
	return e.value, e.ok
}

func (s *ringStore) set(index int, v fixedpoint.Value) {
	pos := int64(index)
	next := s.buffer.Next()

	if pos < next {
		s.buffer.Set(pos, slot{value: v, ok: true})
		return
	}

	if pos-next >= int64(s.buffer.Capacity()) {
		s.buffer.ResetAt(pos)
	}

	for s.buffer.Next() < pos {
		s.buffer.AddLast(slot{})
	}
	s.buffer.AddLast(slot{value: v, ok: true})
}

func (s *ringStore) truncate(index int) {
	if index < 0 {
		index = 0
	}
	s.buffer.Truncate(int64(index))
}

func (s *ringStore) reset() {
	s.buffer.ResetAt(0)
}
