package provider

// An Input reads one ancestor-provided value for a proxy provider.
// A proxy resolves its inputs left-to-right, in declared order, on every
// update; input functions with side effects can rely on that.
type Input func(s Scope) any

// Use returns an [Input] that reads the ancestor value of type K.
func Use[K any]() Input {
	return func(s Scope) any { return Read[K](s) }
}

func readInputs(s Scope, inputs []Input) []any {
	if len(inputs) == 0 {
		return nil
	}
	vals := make([]any, len(inputs))
	for i, in := range inputs {
		vals[i] = in(s)
	}
	return vals
}

// A StreamProxyProvider describes an element whose backing [Stream] is
// recomputed from ancestor-provided inputs on every host update.
//
// Each update resolves Inputs in order and hands their values to Update
// together with the previously computed stream. Update returns the stream
// to subscribe to; returning prev keeps the current subscription untouched.
//
// Create, when set, runs once at mount, before the first Update call, and
// its result is the first prev. Without it, the first Update call sees a
// nil prev.
//
// For one or two typed inputs, [StreamProxyProvider1] and
// [StreamProxyProvider2] save the positional bookkeeping.
type StreamProxyProvider[T any] struct {
	// Create builds the initial stream handed to the first Update call.
	Create func(s Scope) *Stream[T]

	// Inputs are the ancestor reads feeding Update, in positional order.
	Inputs []Input

	// Update computes the backing stream; inputs holds the resolved
	// Inputs values, positionally. Required.
	Update func(s Scope, inputs []any, prev *Stream[T]) *Stream[T]

	// InitialData is the exposed value until the stream delivers.
	InitialData T

	// CatchError, when set, converts stream errors into published values.
	CatchError ErrorBuilder[T]

	// Reporter receives unhandled stream errors.
	Reporter Reporter
}

func (p StreamProxyProvider[T]) label() string { return "StreamProxyProvider" }

func (p StreamProxyProvider[T]) initial() T { return p.InitialData }

func (p StreamProxyProvider[T]) catchError() ErrorBuilder[T] { return p.CatchError }

func (p StreamProxyProvider[T]) reporter() Reporter { return p.Reporter }

func (p StreamProxyProvider[T]) valueStyle() bool { return false }

func (p StreamProxyProvider[T]) mount(s Scope) Source[T] {
	if p.Update == nil {
		panic("provider: proxy without Update function")
	}
	var prev *Stream[T]
	if p.Create != nil {
		prev = p.Create(s)
	}
	return streamSource(p.Update(s, readInputs(s, p.Inputs), prev))
}

func (p StreamProxyProvider[T]) update(s Scope, prev Source[T]) Source[T] {
	if p.Update == nil {
		panic("provider: proxy without Update function")
	}
	var pv *Stream[T]
	if prev != nil {
		pv = prev.(*Stream[T])
	}
	return streamSource(p.Update(s, readInputs(s, p.Inputs), pv))
}

// A FutureProxyProvider describes an element whose backing [Future] is
// recomputed from ancestor-provided inputs on every host update; it is the
// [Future] counterpart of [StreamProxyProvider].
type FutureProxyProvider[T any] struct {
	// Create builds the initial future handed to the first Update call.
	Create func(s Scope) *Future[T]

	// Inputs are the ancestor reads feeding Update, in positional order.
	Inputs []Input

	// Update computes the backing future; inputs holds the resolved
	// Inputs values, positionally. Required.
	Update func(s Scope, inputs []any, prev *Future[T]) *Future[T]

	// InitialData is the exposed value until the future settles.
	InitialData T

	// CatchError, when set, converts the future's error into a published
	// value.
	CatchError ErrorBuilder[T]

	// Reporter receives the unhandled error of a failed future.
	Reporter Reporter
}

func (p FutureProxyProvider[T]) label() string { return "FutureProxyProvider" }

func (p FutureProxyProvider[T]) initial() T { return p.InitialData }

func (p FutureProxyProvider[T]) catchError() ErrorBuilder[T] { return p.CatchError }

func (p FutureProxyProvider[T]) reporter() Reporter { return p.Reporter }

func (p FutureProxyProvider[T]) valueStyle() bool { return false }

func (p FutureProxyProvider[T]) mount(s Scope) Source[T] {
	if p.Update == nil {
		panic("provider: proxy without Update function")
	}
	var prev *Future[T]
	if p.Create != nil {
		prev = p.Create(s)
	}
	return futureSource(p.Update(s, readInputs(s, p.Inputs), prev))
}

func (p FutureProxyProvider[T]) update(s Scope, prev Source[T]) Source[T] {
	if p.Update == nil {
		panic("provider: proxy without Update function")
	}
	var pv *Future[T]
	if prev != nil {
		pv = prev.(*Future[T])
	}
	return futureSource(p.Update(s, readInputs(s, p.Inputs), pv))
}

// A StreamProxyProvider1 is a [StreamProxyProvider] with one typed input.
type StreamProxyProvider1[A, T any] struct {
	Create      func(s Scope) *Stream[T]
	Update      func(s Scope, a A, prev *Stream[T]) *Stream[T]
	InitialData T
	CatchError  ErrorBuilder[T]
	Reporter    Reporter
}

func (p StreamProxyProvider1[A, T]) core() StreamProxyProvider[T] {
	c := StreamProxyProvider[T]{
		Create:      p.Create,
		Inputs:      []Input{Use[A]()},
		InitialData: p.InitialData,
		CatchError:  p.CatchError,
		Reporter:    p.Reporter,
	}
	if p.Update != nil {
		c.Update = func(s Scope, in []any, prev *Stream[T]) *Stream[T] {
			return p.Update(s, in[0].(A), prev)
		}
	}
	return c
}

func (p StreamProxyProvider1[A, T]) label() string { return "StreamProxyProvider" }

func (p StreamProxyProvider1[A, T]) initial() T { return p.InitialData }

func (p StreamProxyProvider1[A, T]) catchError() ErrorBuilder[T] { return p.CatchError }

func (p StreamProxyProvider1[A, T]) reporter() Reporter { return p.Reporter }

func (p StreamProxyProvider1[A, T]) valueStyle() bool { return false }

func (p StreamProxyProvider1[A, T]) mount(s Scope) Source[T] { return p.core().mount(s) }

func (p StreamProxyProvider1[A, T]) update(s Scope, prev Source[T]) Source[T] {
	return p.core().update(s, prev)
}

// A StreamProxyProvider2 is a [StreamProxyProvider] with two typed inputs,
// resolved in declared order: A first, then B.
type StreamProxyProvider2[A, B, T any] struct {
	Create      func(s Scope) *Stream[T]
	Update      func(s Scope, a A, b B, prev *Stream[T]) *Stream[T]
	InitialData T
	CatchError  ErrorBuilder[T]
	Reporter    Reporter
}

func (p StreamProxyProvider2[A, B, T]) core() StreamProxyProvider[T] {
	c := StreamProxyProvider[T]{
		Create:      p.Create,
		Inputs:      []Input{Use[A](), Use[B]()},
		InitialData: p.InitialData,
		CatchError:  p.CatchError,
		Reporter:    p.Reporter,
	}
	if p.Update != nil {
		c.Update = func(s Scope, in []any, prev *Stream[T]) *Stream[T] {
			return p.Update(s, in[0].(A), in[1].(B), prev)
		}
	}
	return c
}

func (p StreamProxyProvider2[A, B, T]) label() string { return "StreamProxyProvider" }

func (p StreamProxyProvider2[A, B, T]) initial() T { return p.InitialData }

func (p StreamProxyProvider2[A, B, T]) catchError() ErrorBuilder[T] { return p.CatchError }

func (p StreamProxyProvider2[A, B, T]) reporter() Reporter { return p.Reporter }

func (p StreamProxyProvider2[A, B, T]) valueStyle() bool { return false }

func (p StreamProxyProvider2[A, B, T]) mount(s Scope) Source[T] { return p.core().mount(s) }

func (p StreamProxyProvider2[A, B, T]) update(s Scope, prev Source[T]) Source[T] {
	return p.core().update(s, prev)
}

// A FutureProxyProvider1 is a [FutureProxyProvider] with one typed input.
type FutureProxyProvider1[A, T any] struct {
	Create      func(s Scope) *Future[T]
	Update      func(s Scope, a A, prev *Future[T]) *Future[T]
	InitialData T
	CatchError  ErrorBuilder[T]
	Reporter    Reporter
}

func (p FutureProxyProvider1[A, T]) core() FutureProxyProvider[T] {
	c := FutureProxyProvider[T]{
		Create:      p.Create,
		Inputs:      []Input{Use[A]()},
		InitialData: p.InitialData,
		CatchError:  p.CatchError,
		Reporter:    p.Reporter,
	}
	if p.Update != nil {
		c.Update = func(s Scope, in []any, prev *Future[T]) *Future[T] {
			return p.Update(s, in[0].(A), prev)
		}
	}
	return c
}

func (p FutureProxyProvider1[A, T]) label() string { return "FutureProxyProvider" }

func (p FutureProxyProvider1[A, T]) initial() T { return p.InitialData }

func (p FutureProxyProvider1[A, T]) catchError() ErrorBuilder[T] { return p.CatchError }

func (p FutureProxyProvider1[A, T]) reporter() Reporter { return p.Reporter }

func (p FutureProxyProvider1[A, T]) valueStyle() bool { return false }

func (p FutureProxyProvider1[A, T]) mount(s Scope) Source[T] { return p.core().mount(s) }

func (p FutureProxyProvider1[A, T]) update(s Scope, prev Source[T]) Source[T] {
	return p.core().update(s, prev)
}

// A FutureProxyProvider2 is a [FutureProxyProvider] with two typed inputs,
// resolved in declared order: A first, then B.
type FutureProxyProvider2[A, B, T any] struct {
	Create      func(s Scope) *Future[T]
	Update      func(s Scope, a A, b B, prev *Future[T]) *Future[T]
	InitialData T
	CatchError  ErrorBuilder[T]
	Reporter    Reporter
}

func (p FutureProxyProvider2[A, B, T]) core() FutureProxyProvider[T] {
	c := FutureProxyProvider[T]{
		Create:      p.Create,
		Inputs:      []Input{Use[A](), Use[B]()},
		InitialData: p.InitialData,
		CatchError:  p.CatchError,
		Reporter:    p.Reporter,
	}
	if p.Update != nil {
		c.Update = func(s Scope, in []any, prev *Future[T]) *Future[T] {
			return p.Update(s, in[0].(A), in[1].(B), prev)
		}
	}
	return c
}

func (p FutureProxyProvider2[A, B, T]) label() string { return "FutureProxyProvider" }

func (p FutureProxyProvider2[A, B, T]) initial() T { return p.InitialData }

func (p FutureProxyProvider2[A, B, T]) catchError() ErrorBuilder[T] { return p.CatchError }

func (p FutureProxyProvider2[A, B, T]) reporter() Reporter { return p.Reporter }

func (p FutureProxyProvider2[A, B, T]) valueStyle() bool { return false }

func (p FutureProxyProvider2[A, B, T]) mount(s Scope) Source[T] { return p.core().mount(s) }

func (p FutureProxyProvider2[A, B, T]) update(s Scope, prev Source[T]) Source[T] {
	return p.core().update(s, prev)
}
