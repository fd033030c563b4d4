// Package alloc provides the storage that backs queue elements.
//
// Go manages memory itself, so an Allocator does not hand out memory
// that would otherwise be unavailable. It exists so that ownership of
// that memory can be accounted for: every block has exactly one owner
// between a call to Alloc and the matching call to Free, and an
// Allocator is free to refuse a request.
package alloc

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned by an Allocator that refuses to hand out
// any more storage.
var ErrExhausted = errors.New("allocator exhausted")

// Allocator hands out blocks of storage.
type Allocator interface {
	// Alloc returns a zeroed block of exactly n bytes. n must be
	// positive.
	Alloc(n int) ([]byte, error)

	// Free returns a block previously obtained from Alloc. Freeing a
	// nil block does nothing.
	Free(b []byte)
}

// Heap is an Allocator that allocates directly from the Go heap and
// never refuses a valid request. Free is a no-op.
type Heap struct{}

func (Heap) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid block size %d", n)
	}
	return make([]byte, n), nil
}

func (Heap) Free([]byte) {}
