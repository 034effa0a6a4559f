package provider

// A Source is an asynchronous producer backing the exposed value of an
// [Element]: either a [Future] (single-shot) or a [Stream] (multi-emission).
//
// Sources compare by identity. Two sources that would produce identical
// values are still different sources; swapping one for the other on an
// element cancels the old subscription and starts a new one, while handing
// an element the very source it already subscribes to does nothing at all.
//
// A Source must not be shared by more than one [Loop].
type Source[T any] interface {
	// subscribe registers onValue and onError and returns a cancel
	// function. Nothing is delivered inside subscribe; every value and
	// error is dispatched as its own [Task] spawned on lp at path p.
	// The returned cancel function is idempotent.
	subscribe(lp *Loop, p string, onValue func(T), onError func(error)) (cancel func())
}
