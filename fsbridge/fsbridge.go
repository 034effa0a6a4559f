// Package fsbridge adapts file system notifications into a
// [provider.Stream], so that file-backed state can be mounted behind a
// [provider.StreamProvider] like any other asynchronous source.
//
// Raw notifications are noisy; a single save in an editor can produce
// several events in a row. A [Watcher] therefore debounces: changes are
// collected until a quiet period elapses, then emitted as one batch.
package fsbridge

import (
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/FedeZara/provider"
)

// A Change describes one file system change.
type Change struct {
	// Path is the file the change happened to.
	Path string

	// Op describes what happened to it.
	Op fsnotify.Op
}

// A Watcher watches a set of paths and emits debounced batches of changes
// on a single [provider.Stream]. Chmod-only events are ignored.
type Watcher struct {
	fsw      *fsnotify.Watcher
	stream   *provider.Stream[[]Change]
	debounce time.Duration
	done     chan struct{}
}

// New creates a [Watcher] over the given paths. Changes are collected until
// debounce elapses with no further change, then emitted as one batch.
func New(debounce time.Duration, paths ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if err := fsw.Add(p); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fsw:      fsw,
		stream:   provider.NewStream[[]Change](),
		debounce: debounce,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Stream returns the stream the batches are emitted on. Use it as the Value
// of a [provider.StreamProvider], or return it from a proxy Update function.
func (w *Watcher) Stream() *provider.Stream[[]Change] { return w.stream }

// Add adds one more path to watch.
func (w *Watcher) Add(p string) error { return w.fsw.Add(p) }

// Close stops watching. A pending batch is emitted before the stream is
// closed. Close waits until both have happened.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	events := w.fsw.Events
	errs := w.fsw.Errors

	var batch []Change

	var timer *time.Timer
	var fire <-chan time.Time

	flush := func() {
		if len(batch) > 0 {
			w.stream.Emit(batch)
			batch = nil
		}
	}

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				flush()
				w.stream.Close()
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			batch = append(batch, Change{Path: ev.Name, Op: ev.Op})
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			flush()
			fire = nil
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.stream.Fail(err)
		}
	}
}
