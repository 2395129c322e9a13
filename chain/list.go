// Package chain implements a singly linked sequence with constant-time
// insertion and removal at the front and a positional cursor that can
// delete the element it is on.
package chain

import "iter"

// List holds a singly linked sequence of elements.
//
// The zero value is OK to use.
type List[T any] struct {
	head *node[T]
	len  int
}

type node[T any] struct {
	val  T
	next *node[T]
}

// New returns an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int {
	return l.len
}

// Empty reports whether the list holds no elements.
func (l *List[T]) Empty() bool {
	return l.len == 0
}

// PushFront inserts x at the start of the list.
func (l *List[T]) PushFront(x T) {
	l.head = &node[T]{val: x, next: l.head}
	l.len++
}

// Front returns the element at the start of the list
// without removing it. It panics if the list is empty.
func (l *List[T]) Front() T {
	if l.head == nil {
		panic("Front called on empty list")
	}
	return l.head.val
}

// PopFront removes and returns the element at the start of the list.
// It panics if the list is empty.
func (l *List[T]) PopFront() T {
	if l.head == nil {
		panic("PopFront called on empty list")
	}
	n := l.head
	l.head = n.next
	l.len--
	return n.val
}

// All returns an iterator over all the values in the list,
// from the front.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.val) {
				return
			}
		}
	}
}

// Cursor returns a cursor positioned on the first element of the list.
// If the list is empty, the cursor is already done.
func (l *List[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{
		list: l,
		link: &l.head,
	}
}

// Cursor walks a List from front to back. Unlike All, it
// allows the element under the cursor to be removed.
//
// Changing the list other than through the cursor invalidates it.
type Cursor[T any] struct {
	list *List[T]
	// link points to the pointer that refers to the current node:
	// either the list head or the previous node's next field.
	link **node[T]
}

// Done reports whether the cursor has moved past the last element.
func (c *Cursor[T]) Done() bool {
	return *c.link == nil
}

// Value returns the element under the cursor.
// It panics if the cursor is done.
func (c *Cursor[T]) Value() T {
	if c.Done() {
		panic("Value called on finished cursor")
	}
	return (*c.link).val
}

// Next moves the cursor to the following element.
// It is a no-op if the cursor is done.
func (c *Cursor[T]) Next() {
	if c.Done() {
		return
	}
	c.link = &(*c.link).next
}

// Delete removes the element under the cursor from the list and returns
// it. The cursor is left on the element that followed it.
// It panics if the cursor is done.
func (c *Cursor[T]) Delete() T {
	if c.Done() {
		panic("Delete called on finished cursor")
	}
	n := *c.link
	*c.link = n.next
	c.list.len--
	return n.val
}
