package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMountMisuse(t *testing.T) {
	t.Run("NilLoop", func(t *testing.T) {
		require.PanicsWithValue(t, "provider: mount with nil loop", func() {
			Mount[int](nil, "/x", nil, StreamProvider[int]{})
		})
	})

	t.Run("NilProvider", func(t *testing.T) {
		var lp Loop
		require.PanicsWithValue(t, "provider: mount with nil provider", func() {
			Mount[int](&lp, "/x", nil, nil)
		})
	})

	t.Run("BothCreateAndValue", func(t *testing.T) {
		var lp Loop
		require.PanicsWithValue(t, "provider: both Create and Value set", func() {
			Mount(&lp, "/x", nil, StreamProvider[int]{
				Create: func(Scope) *Stream[int] { return NewStream[int]() },
				Value:  NewStream[int](),
			})
		})
		require.PanicsWithValue(t, "provider: both Create and Value set", func() {
			Mount(&lp, "/x", nil, FutureProvider[int]{
				Create: func(Scope) *Future[int] { return NewFuture[int]() },
				Value:  NewFuture[int](),
			})
		})
	})
}

func TestUpdateMisuse(t *testing.T) {
	newElement := func() *Element[int] {
		var lp Loop
		lp.Autorun(lp.Run)
		return Mount(&lp, "/x", nil, StreamProvider[int]{Value: NewStream[int]()})
	}

	t.Run("NilProvider", func(t *testing.T) {
		el := newElement()
		require.PanicsWithValue(t, "provider: update with nil provider", func() { el.Update(nil) })
	})

	t.Run("KindChange", func(t *testing.T) {
		el := newElement()
		require.PanicsWithValue(t, "provider: provider kind changed across update", func() {
			el.Update(FutureProvider[int]{Value: NewFuture[int]()})
		})
	})

	t.Run("CreateValueSwitch", func(t *testing.T) {
		el := newElement()
		require.PanicsWithValue(t, "provider: cannot switch a provider between Create and Value", func() {
			el.Update(StreamProvider[int]{Create: func(Scope) *Stream[int] { return NewStream[int]() }})
		})
	})

	t.Run("AfterDispose", func(t *testing.T) {
		el := newElement()
		el.Dispose()
		require.PanicsWithValue(t, "provider: use of disposed element", func() {
			el.Update(StreamProvider[int]{Value: NewStream[int]()})
		})
	})

	t.Run("DisposeTwice", func(t *testing.T) {
		el := newElement()
		el.Dispose()
		require.PanicsWithValue(t, "provider: element disposed twice", el.Dispose)
	})
}

// A value future that settled before mounting publishes synchronously and
// never subscribes.
func TestSettledFutureMount(t *testing.T) {
	t.Run("Resolved", func(t *testing.T) {
		var lp Loop
		lp.Autorun(lp.Run)

		f := Resolved(7)
		el := Mount(&lp, "/x", nil, FutureProvider[int]{InitialData: -1, Value: f})

		require.Equal(t, 7, el.Value())
		require.Nil(t, el.ctrl.tok)
		require.Empty(t, f.subs)

		el.Update(FutureProvider[int]{InitialData: -1, Value: f})
		require.Nil(t, el.ctrl.tok)
		require.Equal(t, 7, el.Value())
	})

	t.Run("FailedWithCatch", func(t *testing.T) {
		var lp Loop
		lp.Autorun(lp.Run)

		el := Mount(&lp, "/x", nil, FutureProvider[int]{
			InitialData: -1,
			Value:       Failed[int](errors.New("boom")),
			CatchError:  func(Scope, error) int { return -100 },
		})

		require.Equal(t, -100, el.Value())
		require.Nil(t, el.ctrl.tok)
	})

	t.Run("SwapAfterAdopt", func(t *testing.T) {
		var lp Loop
		lp.Autorun(lp.Run)

		el := Mount(&lp, "/x", nil, FutureProvider[int]{InitialData: -1, Value: Resolved(7)})
		require.Equal(t, 7, el.Value())

		f2 := NewFuture[int]()
		el.Update(FutureProvider[int]{InitialData: -1, Value: f2})
		require.Equal(t, 7, el.Value())

		f2.Complete(8)
		require.Equal(t, 8, el.Value())
	})
}

func TestDisposeDetaches(t *testing.T) {
	var lp Loop
	lp.Autorun(lp.Run)

	s := NewStream[int]()
	el := Mount(&lp, "/x", nil, StreamProvider[int]{InitialData: -1, Value: s})

	s.Emit(1)
	require.Equal(t, 1, el.Value())

	el.Dispose()
	require.Nil(t, s.sub)

	s.Emit(2)
	require.Equal(t, 1, el.Value())
}

func TestElementPath(t *testing.T) {
	var lp Loop
	el := Mount(&lp, "/a/./b//c", nil, StreamProvider[int]{})
	require.Equal(t, "/a/b/c", el.Path())
}
