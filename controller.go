package provider

// A token identifies one live subscription of a controller. Delivery
// handlers capture the token they were subscribed under; the controller
// discards any delivery whose token is no longer the current one.
type token struct {
	seq uint64
}

// A controller owns the subscription of one [Element] to its current
// [Source]. At most one subscription is live at a time. Replacing a source
// cancels the old subscription strictly before the new one starts, handing
// the controller the source it already holds does nothing, and a superseded
// subscription can never publish again, no matter when its deliveries land.
//
// A controller is confined to its [Loop]: attach and detach run only from
// the loop's single-threaded dispatch, as do the delivery handlers.
type controller[T any] struct {
	loop    *Loop
	path    string
	onValue func(v T)
	onError func(src any, err error)

	src    Source[T]
	tok    *token
	cancel func()
	seq    uint64
}

// attach replaces the controller's source with src.
//
// Identity-equal sources are a no-op: no cancel, no resubscribe, no
// republish. Otherwise the current subscription, if any, is canceled first,
// and only then is src subscribed. A nil src leaves the controller without
// a subscription.
func (c *controller[T]) attach(src Source[T]) {
	if src == c.src {
		return
	}

	c.drop()
	c.src = src

	if src == nil {
		return
	}

	c.seq++
	tok := &token{seq: c.seq}
	c.tok = tok

	c.cancel = src.subscribe(c.loop, c.path,
		func(v T) {
			if c.tok == tok {
				c.onValue(v)
			}
		},
		func(err error) {
			if c.tok == tok {
				c.onError(src, err)
			}
		},
	)
}

// adopt records src as current without subscribing. It serves the one case
// where the result was already published synchronously and no delivery can
// ever arrive: a future that had settled before its element mounted.
func (c *controller[T]) adopt(src Source[T]) {
	c.src = src
}

// drop cancels the current subscription, if any. Dropping first invalidates
// the token, so a delivery already scheduled on the loop is discarded even
// when the source's own cancel cannot stop it anymore.
func (c *controller[T]) drop() {
	c.tok = nil
	if cancel := c.cancel; cancel != nil {
		c.cancel = nil
		cancel()
	}
}

// detach releases the subscription for good.
func (c *controller[T]) detach() {
	c.drop()
	c.src = nil
}
