package provider

import (
	"sync"
	"time"
)

// A Future is a single-shot [Source]: it either completes with one value or
// fails with one error, exactly once.
//
// A Future starts out unsettled. The Complete and Fail methods settle it;
// they are safe for concurrent use and may be called from any goroutine.
// Settling a Future twice is a programming error.
//
// Delivery to subscribers is always asynchronous. Even a Future that has
// already settled hands its result to a subscriber in a separate [Task] on
// the subscriber's [Loop], never from inside the subscribe call.
type Future[T any] struct {
	mu      sync.Mutex
	settled bool
	value   T
	err     error
	subs    []*futureSub[T]
}

type futureSub[T any] struct {
	loop     *Loop
	path     string
	onValue  func(T)
	onError  func(error)
	canceled bool
}

// NewFuture creates a new, unsettled [Future].
func NewFuture[T any]() *Future[T] {
	return new(Future[T])
}

// Resolved creates a [Future] that has already completed with v.
func Resolved[T any](v T) *Future[T] {
	return &Future[T]{settled: true, value: v}
}

// Failed creates a [Future] that has already failed with err.
func Failed[T any](err error) *Future[T] {
	if err == nil {
		panic("provider: future failed with nil error")
	}
	return &Future[T]{settled: true, err: err}
}

// Go creates a [Future] settled by running f in its own goroutine:
// it completes with the value f returns, or fails with the error.
func Go[T any](f func() (T, error)) *Future[T] {
	fu := NewFuture[T]()
	go func() {
		v, err := f()
		if err != nil {
			fu.Fail(err)
			return
		}
		fu.Complete(v)
	}()
	return fu
}

// After creates a [Future] that completes with v once d has elapsed.
func After[T any](d time.Duration, v T) *Future[T] {
	f := NewFuture[T]()
	time.AfterFunc(d, func() { f.Complete(v) })
	return f
}

// Complete settles f with v.
//
// Complete is safe for concurrent use.
// It panics if f has already been settled.
func (f *Future[T]) Complete(v T) {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		panic("provider: future settled twice")
	}
	f.settled = true
	f.value = v
	subs := f.subs
	f.subs = nil
	f.mu.Unlock()

	for _, sub := range subs {
		f.dispatch(sub)
	}
}

// Fail settles f with err.
//
// Fail is safe for concurrent use.
// It panics if err is nil, or if f has already been settled.
func (f *Future[T]) Fail(err error) {
	if err == nil {
		panic("provider: future failed with nil error")
	}
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		panic("provider: future settled twice")
	}
	f.settled = true
	f.err = err
	subs := f.subs
	f.subs = nil
	f.mu.Unlock()

	for _, sub := range subs {
		f.dispatch(sub)
	}
}

// poll reports whether f has settled, and with what.
func (f *Future[T]) poll() (v T, err error, settled bool) {
	f.mu.Lock()
	v, err, settled = f.value, f.err, f.settled
	f.mu.Unlock()
	return
}

func (f *Future[T]) subscribe(lp *Loop, p string, onValue func(T), onError func(error)) func() {
	sub := &futureSub[T]{loop: lp, path: p, onValue: onValue, onError: onError}

	f.mu.Lock()
	settled := f.settled
	if !settled {
		f.subs = append(f.subs, sub)
	}
	f.mu.Unlock()

	if settled {
		f.dispatch(sub)
	}

	return func() { f.unsubscribe(sub) }
}

// dispatch schedules delivery of the settled result to sub. Callers must
// not hold f.mu; the delivery closure takes it.
// Cancellation is advisory for futures: the delivery task still runs, checks
// the flag, and does nothing if sub has been canceled in the meantime.
func (f *Future[T]) dispatch(sub *futureSub[T]) {
	sub.loop.Spawn(sub.path, Do(func() {
		f.mu.Lock()
		canceled := sub.canceled
		f.mu.Unlock()
		if canceled {
			return
		}
		if f.err != nil {
			sub.onError(f.err)
		} else {
			sub.onValue(f.value)
		}
	}))
}

func (f *Future[T]) unsubscribe(sub *futureSub[T]) {
	f.mu.Lock()
	sub.canceled = true
	for i, s := range f.subs {
		if s == sub {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			break
		}
	}
	f.mu.Unlock()
}

// futureSource converts a typed future pointer to a [Source], mapping nil
// pointers to nil interfaces so that "no source" compares equal to itself.
func futureSource[T any](f *Future[T]) Source[T] {
	if f == nil {
		return nil
	}
	return f
}
