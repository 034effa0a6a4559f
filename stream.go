package provider

import "sync"

// A Stream is a multi-emission [Source]: it produces any number of values
// and errors, in order, until it is closed.
//
// The Emit, Fail and Close methods are safe for concurrent use and may be
// called from any goroutine. An error is not terminal; a Stream may keep
// producing values and errors after one. Producing anything after Close is
// a programming error.
//
// Events produced before the stream is listened to are buffered and
// delivered, in order, once a subscriber appears. A Stream supports a single
// subscriber over its lifetime: canceling the subscription tears the
// listener down for good, and the stream cannot be listened to again.
type Stream[T any] struct {
	mu       sync.Mutex
	sub      *streamSub[T]
	buf      []streamEvent[T]
	flushing bool
	closed   bool
	used     bool
}

type streamSub[T any] struct {
	loop     *Loop
	path     string
	onValue  func(T)
	onError  func(error)
	canceled bool
}

type streamEvent[T any] struct {
	value T
	err   error
}

// NewStream creates a new, open [Stream].
func NewStream[T any]() *Stream[T] {
	return new(Stream[T])
}

// FromChannel creates a [Stream] fed from c: every value received on c is
// emitted on the stream, and the stream is closed when c is closed.
func FromChannel[T any](c <-chan T) *Stream[T] {
	s := NewStream[T]()
	go func() {
		for v := range c {
			s.Emit(v)
		}
		s.Close()
	}()
	return s
}

// Emit produces v on s.
//
// Emit is safe for concurrent use.
// It panics if s has been closed.
func (s *Stream[T]) Emit(v T) {
	s.push(streamEvent[T]{value: v})
}

// Fail produces err on s. The stream stays open; values and errors may
// follow.
//
// Fail is safe for concurrent use.
// It panics if err is nil, or if s has been closed.
func (s *Stream[T]) Fail(err error) {
	if err == nil {
		panic("provider: stream failed with nil error")
	}
	s.push(streamEvent[T]{err: err})
}

// Close closes s. Close is idempotent and safe for concurrent use.
func (s *Stream[T]) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Stream[T]) push(ev streamEvent[T]) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		panic("provider: emit on closed stream")
	}
	sub := s.sub
	if sub == nil {
		if !s.used {
			// No subscriber yet; hold the event for whoever listens.
			// A stream whose subscriber canceled can never get another,
			// so there is no one left to hold events for.
			s.buf = append(s.buf, ev)
		}
		s.mu.Unlock()
		return
	}
	if s.flushing {
		// The subscriber is still draining the backlog; line up behind it.
		s.buf = append(s.buf, ev)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.dispatch(sub, ev)
}

func (s *Stream[T]) subscribe(lp *Loop, p string, onValue func(T), onError func(error)) func() {
	sub := &streamSub[T]{loop: lp, path: p, onValue: onValue, onError: onError}

	s.mu.Lock()
	if s.used {
		s.mu.Unlock()
		panic("provider: stream already listened to")
	}
	s.used = true
	s.sub = sub

	// Drain the backlog with the lock released around each dispatch.
	// The flushing flag keeps concurrent pushes buffering behind the
	// backlog, so everything is delivered in arrival order.
	s.flushing = true
	for len(s.buf) > 0 {
		buf := s.buf
		s.buf = nil
		s.mu.Unlock()
		for _, ev := range buf {
			s.dispatch(sub, ev)
		}
		s.mu.Lock()
	}
	s.flushing = false
	s.mu.Unlock()

	return func() { s.unsubscribe(sub) }
}

// dispatch schedules delivery of ev to sub. Callers must not hold s.mu:
// under a synchronous autorun, Spawn runs the delivery closure on the
// calling goroutine, and that closure takes s.mu.
func (s *Stream[T]) dispatch(sub *streamSub[T], ev streamEvent[T]) {
	sub.loop.Spawn(sub.path, Do(func() {
		s.mu.Lock()
		canceled := sub.canceled
		s.mu.Unlock()
		if canceled {
			return
		}
		if ev.err != nil {
			sub.onError(ev.err)
		} else {
			sub.onValue(ev.value)
		}
	}))
}

// unsubscribe tears the listener down. Unlike a future subscription, this is
// authoritative: nothing dispatches through sub afterwards, including events
// already scheduled on the loop.
func (s *Stream[T]) unsubscribe(sub *streamSub[T]) {
	s.mu.Lock()
	sub.canceled = true
	if s.sub == sub {
		s.sub = nil
	}
	s.mu.Unlock()
}

// streamSource converts a typed stream pointer to a [Source], mapping nil
// pointers to nil interfaces so that "no source" compares equal to itself.
func streamSource[T any](s *Stream[T]) Source[T] {
	if s == nil {
		return nil
	}
	return s
}
