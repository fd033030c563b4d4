// Package strq implements a queue of strings on top of a singly
// linked list. Strings can be added at either end and removed from
// the head, so a Queue works as both a FIFO and a LIFO, and the whole
// queue can be reversed or sorted in place without copying any
// element.
//
// A Queue owns a private copy of every string it holds. The storage
// for those copies comes from an [alloc.Allocator], which makes it
// possible to account for every element and to observe what happens
// when storage runs out.
//
// A Queue is not safe for concurrent use.
package strq

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
