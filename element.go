package provider

import (
	"path"
	"reflect"
)

// An Element hosts one mounted [Provider]: it owns the exposed value that
// dependents read and watch, and the subscription to whatever source the
// provider currently specifies.
//
// An Element implements [Event]. A [Task] that watches it resumes on every
// newly published value.
//
// The host drives an Element through exactly three entry points. [Mount]
// creates it, Update applies a new description of the same provider, and
// Dispose releases it for good. All three must run on the element's [Loop]:
// call them in an [Operation] function, or while nothing else feeds the
// Loop.
type Element[T any] struct {
	loop  *Loop
	path  string
	scope Scope

	cell cell[T]
	ctrl controller[T]

	kind    string
	isValue bool
	catch   ErrorBuilder[T]
	rep     Reporter

	disposed bool
}

// Mount creates an [Element] on lp at the path path.Clean(p), described by
// d, reading ancestor values from scope.
//
// Mount publishes the provider's initial data, then produces the provider's
// first source and subscribes to it. A nil scope is legal as long as
// nothing reads through it.
func Mount[T any](lp *Loop, p string, scope Scope, d Provider[T]) *Element[T] {
	if lp == nil {
		panic("provider: mount with nil loop")
	}
	if d == nil {
		panic("provider: mount with nil provider")
	}

	el := &Element[T]{
		loop:    lp,
		path:    path.Clean(p),
		scope:   scope,
		kind:    d.label(),
		isValue: d.valueStyle(),
		catch:   d.catchError(),
		rep:     d.reporter(),
	}

	el.cell.value = d.initial()

	el.ctrl = controller[T]{
		loop:    lp,
		path:    el.path,
		onValue: el.cell.set,
		onError: el.routeError,
	}

	src := d.mount(scope)

	// A value future that settled before mounting publishes synchronously
	// and never subscribes; no delivery can arrive anymore.
	if el.isValue {
		if f, ok := src.(*Future[T]); ok {
			if v, err, settled := f.poll(); settled {
				switch {
				case err == nil:
					el.cell.value = v
				case el.catch != nil:
					el.cell.value = el.catch(scope, err)
				default:
					el.report(src, err)
				}
				el.ctrl.adopt(src)
				return el
			}
		}
	}

	el.ctrl.attach(src)
	return el
}

// Update applies d, the same provider in a possibly new configuration, to
// el. Proxy providers resolve their inputs and recompute their source here.
// Value-style providers swap their source when it changed, and do nothing
// when it is the very source already subscribed. Create-style providers
// never produce a new source, whatever d carries.
//
// The provider kind must not change across updates, and neither must the
// choice between Create and Value.
func (el *Element[T]) Update(d Provider[T]) {
	if el.disposed {
		panic("provider: use of disposed element")
	}
	if d == nil {
		panic("provider: update with nil provider")
	}
	if d.label() != el.kind {
		panic("provider: provider kind changed across update")
	}
	if d.valueStyle() != el.isValue {
		panic("provider: cannot switch a provider between Create and Value")
	}

	el.catch = d.catchError()
	el.rep = d.reporter()

	el.ctrl.attach(d.update(el.scope, el.ctrl.src))
}

// Dispose permanently releases el, canceling the current subscription if
// there is one. The exposed value stays readable.
//
// Dispose panics if called twice.
func (el *Element[T]) Dispose() {
	if el.disposed {
		panic("provider: element disposed twice")
	}
	el.disposed = true
	el.ctrl.detach()
}

// Value returns the exposed value of el.
//
// Without proper synchronization, one should only call this method in
// an [Operation] function.
func (el *Element[T]) Value() T {
	return el.cell.get()
}

// Path returns the path of el on its [Loop].
func (el *Element[T]) Path() string {
	return el.path
}

func (el *Element[T]) addListener(t *Task) { el.cell.addListener(t) }

func (el *Element[T]) removeListener(t *Task) { el.cell.removeListener(t) }

func (el *Element[T]) routeError(src any, err error) {
	if el.catch != nil {
		el.cell.set(el.catch(el.scope, err))
		return
	}
	el.report(src, err)
}

func (el *Element[T]) report(src any, err error) {
	rep := el.rep
	if rep == nil {
		rep = defaultReporter()
	}
	rep.Report(ErrorEvent{
		Source: src,
		Kind:   el.kind,
		Type:   reflect.TypeOf((*T)(nil)).Elem().String(),
		Err:    err,
	})
}
