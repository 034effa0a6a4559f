package provider

import (
	"path"
	"sync"
)

// A Loop is a [Task] spawner, and a Task runner.
// It is the single-threaded dispatch that providers live on: every lifecycle
// transition of an [Element] and every delivery from a [Source] runs as
// a Task on the Loop of the Element.
//
// When a Task is spawned or resumed, it is added into an internal queue.
// The Run method then pops and runs each of them from the queue until
// the queue is emptied.
// It is done in a single-threaded manner.
// If one Task blocks, no other Tasks can run.
// The best practice is not to block.
//
// The internal queue is a priority queue.
// Tasks added in the queue are sorted by their paths.
// Tasks with the same path are sorted by their arrival order (FIFO).
// Popping the queue removes the first Task with the least path.
// Mounting elements on paths that mirror their position in the host tree
// therefore makes one update pass reach ancestors before descendants, and
// makes deliveries to one element arrive in the order they were produced.
//
// Manually calling the Run method is usually not desired.
// One would instead use the Autorun method to set up an autorun function to
// calling the Run method automatically whenever a Task is spawned or resumed.
// The Loop never calls the autorun function twice at the same time.
type Loop struct {
	mu      sync.Mutex
	rq      runqueue
	running bool
	autorun func()
	pool    sync.Pool
}

// Autorun sets up an autorun function to calling the Run method automatically
// whenever a [Task] is spawned or resumed.
//
// One must pass a function that calls the Run method.
//
// If f blocks, the Spawn method may block too.
// The best practice is not to block.
func (l *Loop) Autorun(f func()) {
	l.autorun = f
}

// Run pops and runs every [Task] in the queue until the queue is emptied.
//
// Run must not be called twice at the same time.
func (l *Loop) Run() {
	l.mu.Lock()
	l.running = true

	for !l.rq.Empty() {
		t := l.rq.Pop()
		l.runTask(t)
	}

	l.running = false
	l.mu.Unlock()
}

// Spawn creates a [Task] to work on op, using the result of path.Clean(p) as
// its path.
//
// The Task is added in a queue. To run it, either call the Run method, or
// call the Autorun method to set up an autorun function beforehand.
//
// Spawn is safe for concurrent use.
func (l *Loop) Spawn(p string, op Operation) {
	t := l.newTask().init(l, path.Clean(p), op).recyclable()
	l.resumeTask(t)
}

func (l *Loop) resumeTask(t *Task) {
	var autorun func()

	l.mu.Lock()

	if !l.running && l.autorun != nil {
		l.running = true
		autorun = l.autorun
	}

	l.rq.Push(t)
	l.mu.Unlock()

	if autorun != nil {
		autorun()
	}
}
