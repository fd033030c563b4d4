package strq

import (
	"fmt"
	"iter"
	"unsafe"

	"deedles.dev/strq/alloc"
	"deedles.dev/strq/internal/list"
)

const (
	headerSize = int(unsafe.Sizeof(Queue{}))
	nodeSize   = int(unsafe.Sizeof(element{}))
)

type element = list.SingleNode[cell]

// cell is the storage owned by a single element: the block that
// accounts for the node itself and the block holding the value.
type cell struct {
	node []byte
	val  []byte
}

// value returns the string held by c without its terminator.
func (c cell) value() []byte {
	return c.val[:len(c.val)-1]
}

// A Queue is a sequence of strings that can be added to at either end
// and removed from at the head. A Queue must be created with [New] and
// should be released with [Queue.Destroy] once it is no longer needed.
//
// Every method may be called on a nil *Queue. Methods that can fail
// return [ErrInvalidQueue] in that case and the rest do nothing.
type Queue struct {
	_ noCopy

	mem    alloc.Allocator
	header []byte
	elems  list.Single[cell]
}

// New returns a new, empty Queue. If the storage for the Queue itself
// can't be obtained, it returns an error wrapping [ErrAlloc].
func New(opts ...Option) (*Queue, error) {
	q := Queue{mem: alloc.Heap{}}
	for _, opt := range opts {
		opt(&q)
	}

	header, err := q.mem.Alloc(headerSize)
	if err != nil {
		return nil, fmt.Errorf("%w: queue: %w", ErrAlloc, err)
	}
	q.header = header

	return &q, nil
}

func (q *Queue) valid() bool {
	return q != nil && q.header != nil
}

// Destroy releases every element of q and then q itself. After it
// returns, every fallible method of q returns [ErrInvalidQueue].
// Calling Destroy on a nil or already destroyed Queue does nothing.
func (q *Queue) Destroy() {
	if !q.valid() {
		return
	}

	for n := q.elems.PopFront(); n != nil; n = q.elems.PopFront() {
		q.free(n)
	}

	q.mem.Free(q.header)
	q.header = nil
}

// newElement allocates an element holding a copy of s. Either both of
// the element's blocks are obtained or neither is.
func (q *Queue) newElement(s string) (*element, error) {
	node, err := q.mem.Alloc(nodeSize)
	if err != nil {
		return nil, fmt.Errorf("%w: element: %w", ErrAlloc, err)
	}

	val, err := q.mem.Alloc(len(s) + 1)
	if err != nil {
		q.mem.Free(node)
		return nil, fmt.Errorf("%w: value of %d bytes: %w", ErrAlloc, len(s), err)
	}
	copy(val, s)
	val[len(s)] = 0

	return &element{Val: cell{node: node, val: val}}, nil
}

func (q *Queue) free(n *element) {
	q.mem.Free(n.Val.val)
	q.mem.Free(n.Val.node)
	n.Val = cell{}
}

// InsertHead adds a copy of s to the head of q. If it fails, q is left
// unchanged.
func (q *Queue) InsertHead(s string) error {
	if !q.valid() {
		return ErrInvalidQueue
	}

	n, err := q.newElement(s)
	if err != nil {
		return err
	}
	q.elems.PushFront(n)
	return nil
}

// InsertTail adds a copy of s to the tail of q. If it fails, q is left
// unchanged.
func (q *Queue) InsertTail(s string) error {
	if !q.valid() {
		return ErrInvalidQueue
	}

	n, err := q.newElement(s)
	if err != nil {
		return err
	}
	q.elems.PushBack(n)
	return nil
}

// RemoveHead removes the string at the head of q and releases its
// storage. If buf is not empty, as much of the string as fits in
// len(buf)-1 bytes is copied into it first, followed by a zero byte.
// Strings that don't fit are truncated without error.
//
// It returns [ErrEmpty] if there is nothing to remove.
func (q *Queue) RemoveHead(buf []byte) error {
	n, err := q.pop()
	if err != nil {
		return err
	}

	if len(buf) > 0 {
		c := copy(buf[:len(buf)-1], n.Val.value())
		buf[c] = 0
	}

	q.free(n)
	return nil
}

// PopHead is like [Queue.RemoveHead] but returns the entire removed
// string.
func (q *Queue) PopHead() (string, error) {
	n, err := q.pop()
	if err != nil {
		return "", err
	}

	s := string(n.Val.value())
	q.free(n)
	return s, nil
}

func (q *Queue) pop() (*element, error) {
	if !q.valid() {
		return nil, ErrInvalidQueue
	}

	n := q.elems.PopFront()
	if n == nil {
		return nil, ErrEmpty
	}
	return n, nil
}

// Size returns the number of strings in q. It is zero for a nil or
// destroyed Queue.
func (q *Queue) Size() int {
	if !q.valid() {
		return 0
	}
	return q.elems.Len()
}

// Head returns the string at the head of q without removing it. It
// returns false if there is none.
func (q *Queue) Head() (string, bool) {
	if !q.valid() || q.elems.Len() == 0 {
		return "", false
	}
	return string(q.elems.Front().Val.value()), true
}

// Tail returns the string at the tail of q without removing it. It
// returns false if there is none.
func (q *Queue) Tail() (string, bool) {
	if !q.valid() || q.elems.Len() == 0 {
		return "", false
	}
	return string(q.elems.Back().Val.value()), true
}

// All returns an iterator over the strings in q from head to tail. q
// must not be modified during iteration.
func (q *Queue) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if !q.valid() {
			return
		}

		for c := range q.elems.All() {
			if !yield(string(c.value())) {
				return
			}
		}
	}
}
