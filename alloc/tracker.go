package alloc

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
)

// poison is written over every block a Tracker frees so that reads
// through a stale reference show up as garbage instead of as the old
// contents.
const poison = 0x55

// Tracker is an Allocator that records every live block. It detects
// leaks, double frees and frees of blocks it never handed out, and it
// can be told to refuse allocations in order to exercise failure
// paths.
//
// A zero value Tracker is ready to use and never refuses a request. A
// Tracker is not safe for concurrent use.
type Tracker struct {
	// Logger receives diagnostics. If it is nil, nothing is logged.
	Logger *slog.Logger

	live      map[*byte]int
	liveBytes int
	allocs    int
	badFrees  int

	limited bool
	budget  int

	rate float64
	rng  *rand.Rand
}

func (t *Tracker) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return t.Logger
}

// FailAfter makes t grant n more allocations and refuse every one
// after that. A negative n removes the limit.
func (t *Tracker) FailAfter(n int) {
	t.limited = n >= 0
	t.budget = n
}

// FailRate makes t refuse each allocation independently with
// probability p, drawing from a generator seeded with seed. A p of
// zero or less disables random failures.
func (t *Tracker) FailRate(p float64, seed uint64) {
	t.rate = p
	t.rng = rand.New(rand.NewPCG(seed, seed))
}

func (t *Tracker) refuse() bool {
	if t.limited {
		if t.budget == 0 {
			return true
		}
		t.budget--
	}

	return t.rate > 0 && t.rng.Float64() < t.rate
}

func (t *Tracker) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid block size %d", n)
	}
	if t.refuse() {
		t.logger().Debug("refusing allocation", "size", n, "live", len(t.live))
		return nil, ErrExhausted
	}

	if t.live == nil {
		t.live = make(map[*byte]int)
	}

	b := make([]byte, n)
	t.live[&b[0]] = n
	t.liveBytes += n
	t.allocs++
	return b, nil
}

func (t *Tracker) Free(b []byte) {
	if b == nil {
		return
	}
	if len(b) == 0 {
		t.badFree(b)
		return
	}

	n, ok := t.live[&b[0]]
	if !ok || n != len(b) {
		t.badFree(b)
		return
	}

	delete(t.live, &b[0])
	t.liveBytes -= n
	for i := range b {
		b[i] = poison
	}
}

func (t *Tracker) badFree(b []byte) {
	t.badFrees++
	t.logger().Error("free of block that is not live", "size", len(b))
}

// Live returns the number of blocks that have been allocated but not
// yet freed.
func (t *Tracker) Live() int {
	return len(t.live)
}

// LiveBytes returns the total size of all live blocks.
func (t *Tracker) LiveBytes() int {
	return t.liveBytes
}

// Allocs returns the number of allocations that have succeeded.
func (t *Tracker) Allocs() int {
	return t.allocs
}

// BadFrees returns the number of calls to Free that were given a
// block that was not live, such as one that had already been freed.
func (t *Tracker) BadFrees() int {
	return t.badFrees
}

// Check returns an error describing any leaked blocks and any bad
// frees seen so far, or nil if there are neither.
func (t *Tracker) Check() error {
	var errs []error
	if len(t.live) > 0 {
		t.logger().Warn("blocks still allocated", "blocks", len(t.live), "bytes", t.liveBytes)
		errs = append(errs, fmt.Errorf("%d blocks (%d bytes) still allocated", len(t.live), t.liveBytes))
	}
	if t.badFrees > 0 {
		errs = append(errs, fmt.Errorf("%d bad frees", t.badFrees))
	}
	return errors.Join(errs...)
}
