package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// A recordingSource counts subscribes and cancels and hands its delivery
// handlers back to the test, so deliveries can be driven by hand.
type recordingSource[T any] struct {
	subscribes int
	cancels    int
	onValue    func(T)
	onError    func(error)
}

func (r *recordingSource[T]) subscribe(lp *Loop, p string, onValue func(T), onError func(error)) func() {
	r.subscribes++
	r.onValue = onValue
	r.onError = onError
	return func() { r.cancels++ }
}

// A tracingSource appends its subscribe and cancel calls to a shared trace.
type tracingSource[T any] struct {
	name  string
	trace *[]string
}

func (s *tracingSource[T]) subscribe(lp *Loop, p string, onValue func(T), onError func(error)) func() {
	*s.trace = append(*s.trace, "subscribe "+s.name)
	return func() { *s.trace = append(*s.trace, "cancel "+s.name) }
}

func TestController(t *testing.T) {
	t.Run("IdentityNoOp", func(t *testing.T) {
		src := new(recordingSource[int])

		c := &controller[int]{loop: new(Loop), path: "/x"}
		c.attach(src)
		c.attach(src)
		c.attach(src)

		require.Equal(t, 1, src.subscribes)
		require.Zero(t, src.cancels)
	})

	t.Run("CancelBeforeSubscribe", func(t *testing.T) {
		var trace []string
		a := &tracingSource[int]{name: "A", trace: &trace}
		b := &tracingSource[int]{name: "B", trace: &trace}

		c := &controller[int]{loop: new(Loop), path: "/x"}
		c.attach(a)
		c.attach(b)

		require.Equal(t, []string{"subscribe A", "cancel A", "subscribe B"}, trace)
	})

	t.Run("StaleDiscard", func(t *testing.T) {
		var got []int
		a := new(recordingSource[int])
		b := new(recordingSource[int])

		c := &controller[int]{
			loop:    new(Loop),
			path:    "/x",
			onValue: func(v int) { got = append(got, v) },
		}
		c.attach(a)

		late := a.onValue
		c.attach(b)

		late(99)
		b.onValue(2)

		require.Equal(t, []int{2}, got)
	})

	t.Run("StaleErrorDiscard", func(t *testing.T) {
		var errs []error
		a := new(recordingSource[int])

		c := &controller[int]{
			loop:    new(Loop),
			path:    "/x",
			onError: func(_ any, err error) { errs = append(errs, err) },
		}
		c.attach(a)

		late := a.onError
		c.attach(nil)

		late(errors.New("stale"))

		require.Empty(t, errs)
	})

	t.Run("ErrorsCarrySource", func(t *testing.T) {
		var gotSrc any
		var gotErr error
		a := new(recordingSource[int])

		c := &controller[int]{
			loop:    new(Loop),
			path:    "/x",
			onError: func(src any, err error) { gotSrc, gotErr = src, err },
		}
		c.attach(a)

		boom := errors.New("boom")
		a.onError(boom)

		require.Same(t, a, gotSrc)
		require.ErrorIs(t, gotErr, boom)
	})

	t.Run("NilSource", func(t *testing.T) {
		a := new(recordingSource[int])

		c := &controller[int]{loop: new(Loop), path: "/x"}
		c.attach(nil)
		c.attach(a)
		c.attach(nil)
		c.attach(nil)

		require.Equal(t, 1, a.subscribes)
		require.Equal(t, 1, a.cancels)
	})

	t.Run("DetachCancelsOnce", func(t *testing.T) {
		var got []int
		a := new(recordingSource[int])

		c := &controller[int]{
			loop:    new(Loop),
			path:    "/x",
			onValue: func(v int) { got = append(got, v) },
		}
		c.attach(a)

		late := a.onValue
		c.detach()

		require.Equal(t, 1, a.cancels)

		late(1)

		require.Empty(t, got)
	})

	t.Run("AdoptIsCurrent", func(t *testing.T) {
		a := new(recordingSource[int])

		c := &controller[int]{loop: new(Loop), path: "/x"}
		c.adopt(a)
		c.attach(a)

		require.Zero(t, a.subscribes)
		require.Nil(t, c.tok)
	})
}
