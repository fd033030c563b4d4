package strq

import "errors"

var (
	// ErrInvalidQueue is returned by operations on a nil or destroyed
	// Queue.
	ErrInvalidQueue = errors.New("invalid queue")

	// ErrAlloc is returned when storage for a queue or an element
	// could not be obtained. It wraps the allocator's own error.
	ErrAlloc = errors.New("allocation failed")

	// ErrEmpty is returned when removing from an empty Queue.
	ErrEmpty = errors.New("queue is empty")
)
