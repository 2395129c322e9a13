// Package hashtable implements a hash table from string keys to values,
// using separate chaining. The table grows and shrinks automatically
// with its load, and provides both a cursor-style Iterator and
// range-over-func views of its contents.
package hashtable

import (
	"fmt"
	"iter"
	"strings"

	"go.uber.org/zap"

	"github.com/rogpeppe/chainmap/chain"
)

const (
	// initialSlots is the slot count of a new table
	// and the smallest a table ever shrinks to.
	initialSlots = 50

	// loadFactor is the number of entries per slot
	// at which a table grows.
	loadFactor = 5

	// resizeFactor is the factor by which the slot count
	// changes when a table grows or shrinks.
	resizeFactor = 2

	// shrinkDivisor determines the shrink threshold: a table
	// shrinks when it holds no more than capacity/shrinkDivisor entries.
	shrinkDivisor = 4
)

// Table is a hash table mapping string keys to values of type V.
//
// A Table must be created with New; the zero value is not usable.
// A Table is not safe for concurrent use. Callers that share a
// table between goroutines must serialize all access to it,
// including iteration.
type Table[V any] struct {
	slots []*chain.List[*entry[V]]

	// count holds the number of entries in the table.
	count int

	// capacity holds the entry count at which the table grows.
	// It is always len(slots)*loadFactor.
	capacity int

	destroy func(V)
	alloc   Allocator
	logger  *zap.Logger
	hash    HashFunc

	// gen is incremented on every change to the table,
	// so that iterators can detect modification.
	gen uint64

	destroyed bool
}

// entry is an association in a chain.
type entry[V any] struct {
	key string
	val V
}

// New returns a new empty Table.
//
// If destroy is non-nil, it is called on a value when the table
// discards it: when the value is overwritten by Insert, and for every
// value remaining in the table when Destroy is called. It is not called
// for values returned by Remove, which become the caller's.
//
// New returns an error wrapping the allocator's error if the table's
// initial slots cannot be allocated.
func New[V any](destroy func(V), opts ...Option) (*Table[V], error) {
	cfg := newConfig(opts)
	slots, err := newSlots[V](cfg.alloc, initialSlots)
	if err != nil {
		return nil, err
	}
	return &Table[V]{
		slots:    slots,
		capacity: initialSlots * loadFactor,
		destroy:  destroy,
		alloc:    cfg.alloc,
		logger:   cfg.logger,
		hash:     cfg.hash,
	}, nil
}

// newSlots allocates n empty chains. On failure, everything
// allocated so far is released.
func newSlots[V any](a Allocator, n int) ([]*chain.List[*entry[V]], error) {
	if err := a.Allocate(KindSlots, n); err != nil {
		return nil, fmt.Errorf("hashtable: cannot allocate %d slots: %w", n, err)
	}
	slots := make([]*chain.List[*entry[V]], n)
	for i := range slots {
		if err := a.Allocate(KindChain, 1); err != nil {
			if i > 0 {
				a.Free(KindChain, i)
			}
			a.Free(KindSlots, n)
			return nil, fmt.Errorf("hashtable: cannot allocate chain %d of %d: %w", i, n, err)
		}
		slots[i] = chain.New[*entry[V]]()
	}
	return slots, nil
}

// Len returns the number of entries in the table.
func (t *Table[V]) Len() int {
	t.checkLive()
	return t.count
}

// Slots returns the number of slots currently in the table.
func (t *Table[V]) Slots() int {
	t.checkLive()
	return len(t.slots)
}

// Capacity returns the number of entries at which
// the table will next grow.
func (t *Table[V]) Capacity() int {
	t.checkLive()
	return t.capacity
}

func (t *Table[V]) slot(key string) *chain.List[*entry[V]] {
	return t.slots[t.hash(key)%uint64(len(t.slots))]
}

// find returns the entry for key, or nil if there is none.
func (t *Table[V]) find(key string) *entry[V] {
	for e := range t.slot(key).All() {
		if e.key == key {
			return e
		}
	}
	return nil
}

// Insert sets the value for key to v. If key is already present,
// its old value is passed to the table's destroy function and replaced;
// otherwise a new entry is added holding a copy of key.
//
// Insert returns an error only when a new entry cannot be allocated,
// in which case the table is left as it was.
func (t *Table[V]) Insert(key string, v V) error {
	t.checkLive()
	if e := t.find(key); e != nil {
		if t.destroy != nil {
			t.destroy(e.val)
		}
		e.val = v
		t.gen++
		t.maybeGrow()
		return nil
	}
	if err := t.alloc.Allocate(KindEntry, 1); err != nil {
		return fmt.Errorf("hashtable: cannot allocate entry for %q: %w", key, err)
	}
	t.slot(key).PushFront(&entry[V]{
		key: strings.Clone(key),
		val: v,
	})
	t.count++
	t.gen++
	t.maybeGrow()
	return nil
}

// Remove removes the entry for key and returns its value, which
// then belongs to the caller: the destroy function is not called.
// It reports whether the key was present.
func (t *Table[V]) Remove(key string) (V, bool) {
	t.checkLive()
	for c := t.slot(key).Cursor(); !c.Done(); c.Next() {
		if c.Value().key != key {
			continue
		}
		e := c.Delete()
		t.alloc.Free(KindEntry, 1)
		t.count--
		t.gen++
		t.maybeShrink()
		return e.val, true
	}
	return *new(V), false
}

// Lookup returns the value for key and reports whether it was found.
// The value remains owned by the table.
func (t *Table[V]) Lookup(key string) (V, bool) {
	t.checkLive()
	if e := t.find(key); e != nil {
		return e.val, true
	}
	return *new(V), false
}

// Contains reports whether key is present in the table.
func (t *Table[V]) Contains(key string) bool {
	t.checkLive()
	return t.find(key) != nil
}

// Destroy removes every entry from the table, passing each value to
// the destroy function, and releases all the table's memory.
// Any further use of the table, including another call to Destroy,
// panics.
func (t *Table[V]) Destroy() {
	t.checkLive()
	for _, l := range t.slots {
		for !l.Empty() {
			e := l.PopFront()
			if t.destroy != nil {
				t.destroy(e.val)
			}
		}
	}
	if t.count > 0 {
		t.alloc.Free(KindEntry, t.count)
	}
	t.alloc.Free(KindChain, len(t.slots))
	t.alloc.Free(KindSlots, len(t.slots))
	t.slots = nil
	t.count = 0
	t.capacity = 0
	t.gen++
	t.destroyed = true
}

func (t *Table[V]) checkLive() {
	if t.destroyed {
		panic("hashtable: use of destroyed Table")
	}
	if t.hash == nil {
		panic("hashtable: Table not created with New")
	}
}

// maybeGrow doubles the slot count when the table has reached
// capacity. It reports whether the table was resized.
func (t *Table[V]) maybeGrow() bool {
	if t.count < t.capacity {
		return false
	}
	return t.tryResize(len(t.slots) * resizeFactor)
}

// maybeShrink halves the slot count when the table has fallen to
// a quarter of capacity, never going below the initial slot count.
// It reports whether the table was resized.
func (t *Table[V]) maybeShrink() bool {
	n := len(t.slots) / resizeFactor
	if t.count > t.capacity/shrinkDivisor || n < initialSlots {
		return false
	}
	return t.tryResize(n)
}

// tryResize resizes the table to n slots. A failure is logged and
// otherwise ignored: the table remains valid at its current size.
func (t *Table[V]) tryResize(n int) bool {
	if err := t.resize(n); err != nil {
		t.logger.Debug("resize failed",
			zap.Int("from", len(t.slots)),
			zap.Int("to", n),
			zap.Int("entries", t.count),
			zap.Error(err),
		)
		return false
	}
	return true
}

// resize moves every entry into a new set of n slots.
// If the new slots cannot be allocated, the table is unchanged.
func (t *Table[V]) resize(n int) error {
	slots, err := newSlots[V](t.alloc, n)
	if err != nil {
		return err
	}
	old := t.slots
	t.slots = slots
	t.count = 0
	for _, l := range old {
		for !l.Empty() {
			e := l.PopFront()
			t.slot(e.key).PushFront(e)
			t.count++
		}
	}
	t.alloc.Free(KindChain, len(old))
	t.alloc.Free(KindSlots, len(old))
	t.capacity = n * loadFactor
	t.gen++
	t.logger.Debug("resized",
		zap.Int("from", len(old)),
		zap.Int("to", n),
		zap.Int("entries", t.count),
	)
	return nil
}

// All returns an iterator over (key, value) pairs in the same
// order as Iter.
//
// The table must not be changed while the iteration is in progress;
// if it is, the iteration panics.
func (t *Table[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		it := t.Iter()
		defer it.Close()
		for ; !it.Done(); it.Next() {
			e := it.cur.Value()
			if !yield(e.key, e.val) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys in the table in the same
// order as Iter. The same restrictions apply as for All.
func (t *Table[V]) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}
