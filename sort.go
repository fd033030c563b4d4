package strq

import "bytes"

// Reverse reverses the order of the strings in q in place. No element
// is allocated or freed.
func (q *Queue) Reverse() {
	if !q.valid() {
		return
	}
	q.elems.Reverse()
}

// Sort sorts the strings in q into ascending byte-wise lexicographic
// order in place using a merge sort. No element is allocated or
// freed, and the size of q does not change.
func (q *Queue) Sort() {
	if !q.valid() {
		return
	}
	q.elems.Sort(lessThan)
}

// lessThan reports whether a's value sorts strictly before b's. A
// proper prefix sorts before every string that it is a prefix of.
func lessThan(a, b cell) bool {
	return bytes.Compare(a.value(), b.value()) < 0
}
