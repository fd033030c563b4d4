package list

import "iter"

// Single is a singly-linked list that also contains a reference to
// the last node for quick inserts at the head and tail and removals
// at the head. It keeps a count of its nodes so that its length is
// known without walking it.
//
// Nodes are owned by the caller. A Single never allocates or frees
// nodes itself, it only links them, so a node must not be pushed
// into more than one list at a time.
type Single[T any] struct {
	head, tail *SingleNode[T]
	size       int
}

// Len returns the number of nodes in the list.
func (ls *Single[T]) Len() int {
	return ls.size
}

// Front returns the head node or nil if the list is empty.
func (ls *Single[T]) Front() *SingleNode[T] {
	return ls.head
}

// Back returns the tail node or nil if the list is empty.
func (ls *Single[T]) Back() *SingleNode[T] {
	return ls.tail
}

// PushFront links n in before the current head.
func (ls *Single[T]) PushFront(n *SingleNode[T]) {
	n.next = ls.head
	ls.head = n
	if ls.tail == nil {
		ls.tail = n
	}
	ls.size++
}

// PushBack links n in after the current tail.
func (ls *Single[T]) PushBack(n *SingleNode[T]) {
	n.next = nil
	ls.link(n)
	ls.size++
}

// PopFront unlinks the head node and returns it. It returns nil if
// the list was already empty.
func (ls *Single[T]) PopFront() *SingleNode[T] {
	n := ls.head
	if n == nil {
		return nil
	}

	ls.head = n.next
	if ls.head == nil {
		ls.tail = nil
	}
	ls.size--

	n.next = nil
	return n
}

// Reverse inverts the order of the list in place by flipping every
// link in a single pass.
func (ls *Single[T]) Reverse() {
	var prev *SingleNode[T]
	cur := ls.head
	for cur != nil {
		next := cur.next
		cur.next = prev
		prev = cur
		cur = next
	}

	ls.head, ls.tail = ls.tail, ls.head
}

// Sort sorts the list in ascending order as determined by less using
// a recursive merge sort. Nodes are relinked, never copied. When
// neither of two nodes is less than the other, the one from the
// later half of the list is placed first.
func (ls *Single[T]) Sort(less func(a, b T) bool) {
	if ls.size < 2 {
		return
	}

	left, right := ls.split()
	left.Sort(less)
	right.Sort(less)
	*ls = merge(&left, &right, less)
}

// split detaches the list into a left half of ceil(n/2) nodes and a
// right half of floor(n/2) nodes, leaving ls empty.
func (ls *Single[T]) split() (left, right Single[T]) {
	left.size = (ls.size + 1) / 2
	right.size = ls.size / 2

	mid := ls.head
	for range left.size - 1 {
		mid = mid.next
	}

	left.head, left.tail = ls.head, mid
	right.head, right.tail = mid.next, ls.tail
	mid.next = nil

	*ls = Single[T]{}
	return left, right
}

// merge combines two sorted, non-empty lists. Both inputs are left
// in an undefined state.
func merge[T any](left, right *Single[T], less func(a, b T) bool) (out Single[T]) {
	l, r := left.head, right.head
	for l != nil && r != nil {
		if less(l.Val, r.Val) {
			out.link(l)
			l = l.next
			continue
		}

		out.link(r)
		r = r.next
	}

	switch {
	case l != nil:
		out.tail.next = l
		out.tail = left.tail
	case r != nil:
		out.tail.next = r
		out.tail = right.tail
	}

	out.size = left.size + right.size
	return out
}

// link appends n at the tail without touching n's next or the size.
func (ls *Single[T]) link(n *SingleNode[T]) {
	if ls.tail == nil {
		ls.head = n
	} else {
		ls.tail.next = n
	}
	ls.tail = n
}

// All returns an iterator over the elements of the list.
func (ls *Single[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		cur := ls.head
		for cur != nil {
			if !yield(cur.Val) {
				return
			}
			cur = cur.next
		}
	}
}

// SingleNode is a node of a [Single].
type SingleNode[T any] struct {
	Val  T
	next *SingleNode[T]
}

// Next returns the node following n, or nil if n is the last node.
func (n *SingleNode[T]) Next() *SingleNode[T] {
	return n.next
}
