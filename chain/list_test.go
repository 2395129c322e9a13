package chain_test

import (
	"slices"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/rogpeppe/chainmap/chain"
)

func TestEmptyList(t *testing.T) {
	c := qt.New(t)
	var l chain.List[int]

	c.Assert(l.Len(), qt.Equals, 0)
	c.Assert(l.Empty(), qt.IsTrue)
	c.Assert(func() { l.PopFront() }, qt.PanicMatches, `PopFront called on empty list`)
	c.Assert(func() { l.Front() }, qt.PanicMatches, `Front called on empty list`)

	cur := l.Cursor()
	c.Assert(cur.Done(), qt.IsTrue)
	c.Assert(func() { cur.Value() }, qt.PanicMatches, `Value called on finished cursor`)
	c.Assert(func() { cur.Delete() }, qt.PanicMatches, `Delete called on finished cursor`)

	// Next on a finished cursor does nothing.
	cur.Next()
	c.Assert(cur.Done(), qt.IsTrue)
}

func TestPushPopFront(t *testing.T) {
	c := qt.New(t)
	l := chain.New[string]()

	l.PushFront("a")
	l.PushFront("b")
	l.PushFront("c")
	c.Assert(l.Len(), qt.Equals, 3)
	c.Assert(l.Empty(), qt.IsFalse)
	c.Assert(l.Front(), qt.Equals, "c")
	c.Assert(slices.Collect(l.All()), qt.DeepEquals, []string{"c", "b", "a"})

	c.Assert(l.PopFront(), qt.Equals, "c")
	c.Assert(l.PopFront(), qt.Equals, "b")
	c.Assert(l.Len(), qt.Equals, 1)
	c.Assert(l.PopFront(), qt.Equals, "a")
	c.Assert(l.Empty(), qt.IsTrue)
}

func TestAllEarlyExit(t *testing.T) {
	c := qt.New(t)
	l := chain.New[int]()
	for i := range 5 {
		l.PushFront(i)
	}
	n := 0
	for range l.All() {
		n++
		if n == 2 {
			break
		}
	}
	c.Assert(n, qt.Equals, 2)
}

func TestCursorWalk(t *testing.T) {
	c := qt.New(t)
	l := chain.New[int]()
	for i := range 4 {
		l.PushFront(i)
	}
	var got []int
	for cur := l.Cursor(); !cur.Done(); cur.Next() {
		got = append(got, cur.Value())
	}
	c.Assert(got, qt.DeepEquals, []int{3, 2, 1, 0})
}

var cursorDeleteTests = []struct {
	testName string
	del      func(int) bool
	want     []int
}{{
	testName: "first",
	del:      func(x int) bool { return x == 4 },
	want:     []int{3, 2, 1, 0},
}, {
	testName: "middle",
	del:      func(x int) bool { return x == 2 },
	want:     []int{4, 3, 1, 0},
}, {
	testName: "last",
	del:      func(x int) bool { return x == 0 },
	want:     []int{4, 3, 2, 1},
}, {
	testName: "alternate",
	del:      func(x int) bool { return x%2 == 0 },
	want:     []int{3, 1},
}, {
	testName: "all",
	del:      func(int) bool { return true },
	want:     nil,
}}

func TestCursorDelete(t *testing.T) {
	c := qt.New(t)
	for _, test := range cursorDeleteTests {
		c.Run(test.testName, func(c *qt.C) {
			l := chain.New[int]()
			for i := range 5 {
				l.PushFront(i)
			}
			deleted := 0
			for cur := l.Cursor(); !cur.Done(); {
				x := cur.Value()
				if test.del(x) {
					c.Assert(cur.Delete(), qt.Equals, x)
					deleted++
					continue
				}
				cur.Next()
			}
			c.Assert(slices.Collect(l.All()), qt.DeepEquals, test.want)
			c.Assert(l.Len(), qt.Equals, 5-deleted)
			c.Assert(l.Empty(), qt.Equals, len(test.want) == 0)
		})
	}
}

func TestCursorDeleteThenPush(t *testing.T) {
	c := qt.New(t)
	l := chain.New[string]()
	l.PushFront("x")

	cur := l.Cursor()
	c.Assert(cur.Delete(), qt.Equals, "x")
	c.Assert(cur.Done(), qt.IsTrue)
	c.Assert(l.Empty(), qt.IsTrue)

	l.PushFront("y")
	c.Assert(l.Front(), qt.Equals, "y")
	c.Assert(l.Len(), qt.Equals, 1)
}
