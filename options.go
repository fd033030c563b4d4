package strq

import "deedles.dev/strq/alloc"

// An Option configures a Queue created by [New].
type Option func(*Queue)

// WithAllocator makes the Queue obtain all of its storage from a. A
// nil a leaves the default, an [alloc.Heap].
func WithAllocator(a alloc.Allocator) Option {
	return func(q *Queue) {
		if a != nil {
			q.mem = a
		}
	}
}
