package hashtable

import "github.com/rogpeppe/chainmap/chain"

// Iterator walks the keys of a Table. It visits slots in index order
// and, within a slot, entries from the most recently inserted.
//
// An Iterator is either positioned on an entry or exhausted.
// Changing the table in any way invalidates all its iterators:
// subsequent calls on them, other than Close, panic.
type Iterator[V any] struct {
	t   *Table[V]
	gen uint64

	// slot holds the index of the current slot.
	// It is len(t.slots) when the iterator is exhausted.
	slot int

	// cur is positioned on the current entry,
	// and nil when the iterator is exhausted.
	cur *chain.Cursor[*entry[V]]

	closed bool
}

// Iter returns an iterator positioned on the first entry in
// the table, or an exhausted iterator if the table is empty.
func (t *Table[V]) Iter() *Iterator[V] {
	t.checkLive()
	it := &Iterator[V]{
		t:   t,
		gen: t.gen,
	}
	it.seek()
	return it
}

// seek moves forward from the current slot to the first non-empty
// one and positions the cursor on its first entry.
func (it *Iterator[V]) seek() {
	for ; it.slot < len(it.t.slots); it.slot++ {
		if l := it.t.slots[it.slot]; !l.Empty() {
			it.cur = l.Cursor()
			return
		}
	}
	it.cur = nil
}

// Next moves to the following entry. It returns false if the
// iterator was already exhausted or has just become exhausted.
func (it *Iterator[V]) Next() bool {
	it.check()
	if it.cur == nil {
		return false
	}
	it.cur.Next()
	if !it.cur.Done() {
		return true
	}
	it.slot++
	it.seek()
	return it.cur != nil
}

// Key returns the key of the current entry. It returns false
// if the iterator is exhausted.
func (it *Iterator[V]) Key() (string, bool) {
	it.check()
	if it.cur == nil {
		return "", false
	}
	return it.cur.Value().key, true
}

// Value returns the value of the current entry. It returns false
// if the iterator is exhausted.
func (it *Iterator[V]) Value() (V, bool) {
	it.check()
	if it.cur == nil {
		return *new(V), false
	}
	return it.cur.Value().val, true
}

// Done reports whether the iterator is exhausted.
func (it *Iterator[V]) Done() bool {
	it.check()
	return it.cur == nil
}

// Close releases the iterator. Calling Close more than once is OK;
// any other call after Close panics.
func (it *Iterator[V]) Close() {
	it.cur = nil
	it.closed = true
}

func (it *Iterator[V]) check() {
	if it.closed {
		panic("hashtable: use of closed Iterator")
	}
	it.t.checkLive()
	if it.gen != it.t.gen {
		panic("hashtable: Table modified during iteration")
	}
}
