package hashtable

import (
	"errors"
	"fmt"
)

// ErrAllocation is returned, wrapped, when a table cannot obtain
// the memory it needs from its Allocator.
var ErrAllocation = errors.New("allocation failed")

// Kind identifies what an allocation is for.
type Kind int

const (
	// KindSlots is the slot array of a table. One unit per slot.
	KindSlots Kind = iota
	// KindChain is a single bucket chain.
	KindChain
	// KindEntry is a single key/value entry, including its key copy.
	KindEntry
)

func (k Kind) String() string {
	switch k {
	case KindSlots:
		return "slots"
	case KindChain:
		return "chain"
	case KindEntry:
		return "entry"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Allocator accounts for the memory used by a Table.
//
// Allocate reserves n units of the given kind, returning an error if
// that is not possible. Free releases units obtained from an earlier
// successful Allocate call. A table frees everything it has allocated
// when it is destroyed.
type Allocator interface {
	Allocate(kind Kind, n int) error
	Free(kind Kind, n int)
}

// DefaultAllocator returns an Allocator that never fails.
func DefaultAllocator() Allocator {
	return unlimitedAllocator{}
}

type unlimitedAllocator struct{}

func (unlimitedAllocator) Allocate(Kind, int) error { return nil }
func (unlimitedAllocator) Free(Kind, int)           {}

// LimitAllocator is an Allocator that fails any allocation
// that would take the total number of units in use above a limit.
// It is useful for bounding the size of a table and for
// exercising allocation failure.
type LimitAllocator struct {
	limit int
	inUse int
}

// NewLimitAllocator returns a LimitAllocator that allows
// at most limit units to be in use at once.
func NewLimitAllocator(limit int) *LimitAllocator {
	return &LimitAllocator{limit: limit}
}

// Allocate implements Allocator.
func (a *LimitAllocator) Allocate(kind Kind, n int) error {
	if a.inUse+n > a.limit {
		return fmt.Errorf("%w: %d %v units would exceed limit of %d (%d in use)", ErrAllocation, n, kind, a.limit, a.inUse)
	}
	a.inUse += n
	return nil
}

// Free implements Allocator. It panics if more units are
// freed than are in use.
func (a *LimitAllocator) Free(kind Kind, n int) {
	if n > a.inUse {
		panic(fmt.Sprintf("hashtable: freeing %d %v units with only %d in use", n, kind, a.inUse))
	}
	a.inUse -= n
}

// InUse returns the number of units currently allocated.
func (a *LimitAllocator) InUse() int {
	return a.inUse
}

// SetLimit changes the limit. Units already in use are unaffected.
func (a *LimitAllocator) SetLimit(limit int) {
	a.limit = limit
}
