package provider

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// An ErrorEvent carries one unhandled asynchronous error: a source produced
// an error and the provider listening to it had no CatchError to route it
// through.
type ErrorEvent struct {
	// Source is the source object that produced the error.
	Source any

	// Kind is the provider kind label, e.g. "StreamProvider".
	Kind string

	// Type is the declared element type, e.g. "int".
	Type string

	// Err is the error itself.
	Err error
}

// String renders the event, for example:
//
//	An exception was throw by *provider.Stream[int] listened by
//	StreamProvider<int>, but no `catchError` was provided.
//
//	Exception:
//	oops
func (e ErrorEvent) String() string {
	return fmt.Sprintf("An exception was throw by %T listened by\n%s<%s>, but no `catchError` was provided.\n\nException:\n%v",
		e.Source, e.Kind, e.Type, e.Err)
}

// A Reporter receives unhandled asynchronous errors. Elements never swallow
// such errors, and never throw them into the update pass either; they hand
// them to their Reporter, out of band.
//
// Providers pick their Reporter per description. Nil falls back to the
// package default, a zap development logger writing to standard error.
type Reporter interface {
	Report(e ErrorEvent)
}

// NewZapReporter creates a [Reporter] that logs every event to log at error
// level.
func NewZapReporter(log *zap.Logger) Reporter {
	return &zapReporter{log: log}
}

type zapReporter struct {
	log *zap.Logger
}

func (r *zapReporter) Report(e ErrorEvent) {
	r.log.Error(e.String(),
		zap.String("kind", e.Kind),
		zap.String("type", e.Type),
		zap.String("source", fmt.Sprintf("%T", e.Source)),
		zap.Error(e.Err),
	)
}

var (
	defaultRep     Reporter
	defaultRepOnce sync.Once
)

func defaultReporter() Reporter {
	defaultRepOnce.Do(func() {
		defaultRep = NewZapReporter(zap.Must(zap.NewDevelopment()))
	})
	return defaultRep
}
