package strq_test

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"

	"deedles.dev/strq"
	"deedles.dev/strq/alloc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueue(t *testing.T, tr *alloc.Tracker) *strq.Queue {
	t.Helper()

	q, err := strq.New(strq.WithAllocator(tr))
	require.NoError(t, err)
	return q
}

func values(q *strq.Queue) []string {
	return slices.Collect(q.All())
}

func TestNew(t *testing.T) {
	q, err := strq.New()
	require.NoError(t, err)
	require.Zero(t, q.Size())
	require.Empty(t, values(q))
	q.Destroy()

	var tr alloc.Tracker
	tr.FailAfter(0)
	q, err = strq.New(strq.WithAllocator(&tr))
	require.ErrorIs(t, err, strq.ErrAlloc)
	require.ErrorIs(t, err, alloc.ErrExhausted)
	require.Nil(t, q)
	require.NoError(t, tr.Check())
}

func TestNilQueue(t *testing.T) {
	var q *strq.Queue
	require.Zero(t, q.Size())
	require.ErrorIs(t, q.InsertHead("a"), strq.ErrInvalidQueue)
	require.ErrorIs(t, q.InsertTail("a"), strq.ErrInvalidQueue)
	require.ErrorIs(t, q.RemoveHead(nil), strq.ErrInvalidQueue)
	_, err := q.PopHead()
	require.ErrorIs(t, err, strq.ErrInvalidQueue)
	_, ok := q.Head()
	require.False(t, ok)
	require.Empty(t, values(q))

	require.NotPanics(t, func() {
		q.Reverse()
		q.Sort()
		q.Destroy()
	})
}

func TestInsertRemove(t *testing.T) {
	var tr alloc.Tracker
	q := newQueue(t, &tr)
	defer q.Destroy()

	require.NoError(t, q.InsertTail("b"))
	require.NoError(t, q.InsertHead("a"))
	require.NoError(t, q.InsertTail("c"))
	require.Equal(t, 3, q.Size())
	require.Equal(t, []string{"a", "b", "c"}, values(q))

	head, ok := q.Head()
	require.True(t, ok)
	require.Equal(t, "a", head)
	tail, ok := q.Tail()
	require.True(t, ok)
	require.Equal(t, "c", tail)

	buf := make([]byte, 8)
	require.NoError(t, q.RemoveHead(buf))
	require.Equal(t, "a\x00", string(buf[:2]))

	s, err := q.PopHead()
	require.NoError(t, err)
	require.Equal(t, "b", s)

	require.NoError(t, q.RemoveHead(nil))
	require.Zero(t, q.Size())
	_, ok = q.Tail()
	require.False(t, ok)

	require.NoError(t, q.InsertTail("d"))
	require.Equal(t, []string{"d"}, values(q))
}

func TestRemoveHeadEmpty(t *testing.T) {
	q := newQueue(t, new(alloc.Tracker))
	defer q.Destroy()

	require.ErrorIs(t, q.RemoveHead(make([]byte, 4)), strq.ErrEmpty)
	require.Zero(t, q.Size())

	_, err := q.PopHead()
	require.ErrorIs(t, err, strq.ErrEmpty)
}

func TestRemoveHeadTruncates(t *testing.T) {
	var tr alloc.Tracker
	q := newQueue(t, &tr)
	defer q.Destroy()

	require.NoError(t, q.InsertHead("hello"))
	buf := []byte{'x', 'x', 'x'}
	require.NoError(t, q.RemoveHead(buf))
	require.Equal(t, []byte("he\x00"), buf)
	require.Zero(t, q.Size())

	require.NoError(t, q.InsertHead("hello"))
	buf = []byte{'x'}
	require.NoError(t, q.RemoveHead(buf))
	require.Equal(t, []byte{0}, buf)

	require.NoError(t, q.InsertHead("hello"))
	require.NoError(t, q.RemoveHead([]byte{}))

	require.NoError(t, q.InsertHead(""))
	buf = []byte{'x', 'x'}
	require.NoError(t, q.RemoveHead(buf))
	require.Equal(t, []byte{0, 'x'}, buf)

	require.Equal(t, 1, tr.Live())
}

func TestInsertCopies(t *testing.T) {
	q := newQueue(t, new(alloc.Tracker))
	defer q.Destroy()

	b := []byte("abc")
	require.NoError(t, q.InsertTail(string(b)))
	b[0] = 'z'

	s, err := q.PopHead()
	require.NoError(t, err)
	require.Equal(t, "abc", s)
}

func TestInsertFailure(t *testing.T) {
	for budget := range 2 {
		t.Run(strconv.Itoa(budget), func(t *testing.T) {
			var tr alloc.Tracker
			q := newQueue(t, &tr)
			require.NoError(t, q.InsertTail("keep"))
			live := tr.Live()

			tr.FailAfter(budget)
			err := q.InsertHead("new")
			require.ErrorIs(t, err, strq.ErrAlloc)
			require.ErrorIs(t, err, alloc.ErrExhausted)

			tr.FailAfter(budget)
			require.ErrorIs(t, q.InsertTail("new"), strq.ErrAlloc)

			require.Equal(t, 1, q.Size())
			require.Equal(t, []string{"keep"}, values(q))
			require.Equal(t, live, tr.Live())

			tr.FailAfter(-1)
			q.Destroy()
			require.NoError(t, tr.Check())
		})
	}
}

func TestRandomOps(t *testing.T) {
	var tr alloc.Tracker
	q := newQueue(t, &tr)
	tr.FailRate(0.1, 42)

	r := rand.New(rand.NewPCG(5, 6))
	var model []string
	for i := range 2000 {
		s := strconv.Itoa(r.IntN(1000))
		switch r.IntN(3) {
		case 0:
			if q.InsertHead(s) == nil {
				model = slices.Insert(model, 0, s)
			}
		case 1:
			if q.InsertTail(s) == nil {
				model = append(model, s)
			}
		case 2:
			got, err := q.PopHead()
			if len(model) == 0 {
				require.ErrorIs(t, err, strq.ErrEmpty, "op %v", i)
				break
			}
			require.NoError(t, err)
			require.Equal(t, model[0], got)
			model = model[1:]
		}

		require.Equal(t, len(model), q.Size(), "op %v", i)
	}
	require.True(t, slices.Equal(model, values(q)))

	q.Destroy()
	require.NoError(t, tr.Check())
}

func TestDestroy(t *testing.T) {
	var tr alloc.Tracker
	q := newQueue(t, &tr)
	for i := range 10_000 {
		require.NoError(t, q.InsertTail(strconv.Itoa(i)))
	}
	require.Equal(t, 10_000, q.Size())
	require.Equal(t, 2*10_000+1, tr.Live())

	q.Destroy()
	require.NoError(t, tr.Check())
	require.Zero(t, tr.BadFrees())

	q.Destroy()
	require.Zero(t, tr.BadFrees())
	require.Zero(t, q.Size())
	require.ErrorIs(t, q.InsertHead("a"), strq.ErrInvalidQueue)
	require.ErrorIs(t, q.RemoveHead(nil), strq.ErrInvalidQueue)
	assert.Empty(t, values(q))
}
