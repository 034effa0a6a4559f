package provider

import "reflect"

// A Scope provides ancestor values to providers: create factories, proxy
// inputs and error builders all read through one.
//
// This package does not implement lookup; hosts bring their own Scope.
// When a lookup comes from [Read] or [Use], key is the reflect.Type of the
// requested value, but hosts are free to support other key kinds of their
// own.
type Scope interface {
	// Value returns the value stored under key, and whether it is there.
	Value(key any) (any, bool)
}

// Read returns the ancestor value of type K in s.
//
// It panics with a [*NotFoundError] when there is none, including when s is
// nil; the panic propagates to whoever triggered the mount or update.
func Read[K any](s Scope) K {
	key := reflect.TypeOf((*K)(nil)).Elem()
	if s != nil {
		if v, ok := s.Value(key); ok {
			return v.(K)
		}
	}
	panic(&NotFoundError{Type: key})
}

// A NotFoundError reports a [Read] of a type the [Scope] holds no value for.
type NotFoundError struct {
	Type reflect.Type
}

func (e *NotFoundError) Error() string {
	return "provider: no value of type " + e.Type.String() + " in scope"
}
