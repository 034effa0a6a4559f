package provider

// A cell is a [Signal] that carries the exposed value of an [Element].
// Nothing outside the element's subscription machinery writes it; dependents
// only ever read it through [Element.Value] and watch it for changes.
type cell[T any] struct {
	Signal
	value T
}

func (c *cell[T]) get() T {
	return c.value
}

func (c *cell[T]) set(v T) {
	c.value = v
	c.Notify()
}
