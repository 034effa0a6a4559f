package provider

// An ErrorBuilder converts an asynchronous error into a value to publish in
// its place. When a provider carries one, it is the sole channel through
// which source errors reach dependents, and nothing is reported.
type ErrorBuilder[T any] func(s Scope, err error) T

// A Provider describes what an [Element] hosts: which kind of source backs
// the exposed value, how that source comes to be, and how its errors are
// routed.
//
// The implementations are [StreamProvider] and [FutureProvider], plus their
// proxy variants whose source is recomputed from ancestor inputs on every
// update.
type Provider[T any] interface {
	label() string
	initial() T
	catchError() ErrorBuilder[T]
	reporter() Reporter
	valueStyle() bool

	// mount produces the element's first source. For create-style
	// providers this is the one place the factory runs.
	mount(s Scope) Source[T]

	// update produces the source for one host update, given the source
	// currently subscribed. Returning prev keeps the subscription
	// untouched.
	update(s Scope, prev Source[T]) Source[T]
}

// A StreamProvider describes an element backed by a [Stream].
//
// At most one of Create and Value may be set. Create is a factory that runs
// once, when the element mounts; updates never run it again, no matter what
// the updated description carries. Value is the stream itself: an update
// carrying a different Value resubscribes, an update carrying the same one
// does nothing. With neither set, the element never subscribes and exposes
// InitialData forever.
type StreamProvider[T any] struct {
	// Create builds the stream when the element mounts.
	Create func(s Scope) *Stream[T]

	// Value is the stream to subscribe to.
	Value *Stream[T]

	// InitialData is the exposed value until the stream delivers.
	InitialData T

	// CatchError, when set, converts stream errors into published values.
	CatchError ErrorBuilder[T]

	// Reporter receives unhandled stream errors.
	Reporter Reporter
}

func (p StreamProvider[T]) label() string { return "StreamProvider" }

func (p StreamProvider[T]) initial() T { return p.InitialData }

func (p StreamProvider[T]) catchError() ErrorBuilder[T] { return p.CatchError }

func (p StreamProvider[T]) reporter() Reporter { return p.Reporter }

func (p StreamProvider[T]) valueStyle() bool { return p.Create == nil }

func (p StreamProvider[T]) mount(s Scope) Source[T] {
	if p.Create != nil {
		if p.Value != nil {
			panic("provider: both Create and Value set")
		}
		return streamSource(p.Create(s))
	}
	return streamSource(p.Value)
}

func (p StreamProvider[T]) update(s Scope, prev Source[T]) Source[T] {
	if p.Create != nil {
		return prev
	}
	return streamSource(p.Value)
}

// A FutureProvider describes an element backed by a [Future].
//
// At most one of Create and Value may be set; see [StreamProvider] for how
// the two styles behave across updates. A Value future that has already
// settled when the element mounts publishes synchronously, without ever
// subscribing: the resolved value, or whatever the error routing makes of
// the failure.
type FutureProvider[T any] struct {
	// Create builds the future when the element mounts.
	Create func(s Scope) *Future[T]

	// Value is the future to subscribe to.
	Value *Future[T]

	// InitialData is the exposed value until the future settles.
	InitialData T

	// CatchError, when set, converts the future's error into a published
	// value.
	CatchError ErrorBuilder[T]

	// Reporter receives the unhandled error of a failed future.
	Reporter Reporter
}

func (p FutureProvider[T]) label() string { return "FutureProvider" }

func (p FutureProvider[T]) initial() T { return p.InitialData }

func (p FutureProvider[T]) catchError() ErrorBuilder[T] { return p.CatchError }

func (p FutureProvider[T]) reporter() Reporter { return p.Reporter }

func (p FutureProvider[T]) valueStyle() bool { return p.Create == nil }

func (p FutureProvider[T]) mount(s Scope) Source[T] {
	if p.Create != nil {
		if p.Value != nil {
			panic("provider: both Create and Value set")
		}
		return futureSource(p.Create(s))
	}
	return futureSource(p.Value)
}

func (p FutureProvider[T]) update(s Scope, prev Source[T]) Source[T] {
	if p.Create != nil {
		return prev
	}
	return futureSource(p.Value)
}
