// Package provider adapts asynchronous value sources into values that can
// be read and watched inside a single-threaded host.
//
// A [Source] is either a [Stream], which produces any number of values and
// errors, or a [Future], which settles exactly once. Producers feed sources
// from any goroutine; subscribers receive every delivery as a [Task] on a
// [Loop], one at a time, in path order.
//
// A [Provider] describes how an [Element] obtains its source: handed over
// ready-made (Value), built once by a factory (Create), or, for the proxy
// variants, recomputed on every host update from values that other elements
// supply. The Element owns the subscription to whatever source its
// description currently yields, and exposes the latest published value to
// any Task that watches it.
//
// # Swapping Sources
//
// When an update hands an Element a new source, the Element cancels its
// current subscription strictly before subscribing to the new one, and it
// tags every subscription with a token. A delivery that arrives under a
// superseded token is discarded, so a late callback from an old source can
// never overwrite the value of the source that replaced it, no matter how
// the deliveries were scheduled. Handing an Element the very source it
// already subscribes to does nothing at all: no cancel, no resubscribe, no
// republish.
//
// # Error Routing
//
// A source error reaches dependents only through the provider's CatchError
// function, which converts it into an ordinary value. Without one, the
// error is not swallowed: the Element hands it to its [Reporter], out of
// band, and the exposed value stays put. One failing source never unwinds
// the update pass of its siblings. The package default Reporter logs
// through zap.
//
// # The Loop
//
// A [Loop] is a single-threaded cooperative runner. Everything that touches
// an Element runs on it: mounts, updates, disposals and deliveries. If one
// Task blocks, no other Tasks can run. The best practice is not to block.
//
// Tasks are ordered by path. Mounting elements on paths that mirror their
// position in the host tree makes one update pass reach ancestors before
// descendants, and keeps deliveries to one element in the order they were
// produced.
//
// # Watching Elements
//
// An Element implements [Event]. A Task that watches one re-runs on every
// newly published value, re-reading whatever it needs. Dependencies are
// re-collected on each run, so a Task that stops watching an Element on one
// run stops resuming for it as well.
//
// # Goroutines
//
// The producer half of a source is the only concurrency-safe surface:
// Complete, Fail, Emit and Close may be called from anywhere, and only
// schedule work on the Loop. Everything else, reading an Element included,
// belongs on the Loop. If one keeps track of every goroutine that feeds
// the Loop and waits for them to finish, the exact moment the Loop goes
// quiet can be determined too.
package provider
