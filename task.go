package provider

const (
	doEnd = iota
	doYield
	doSwitch
)

const (
	flagStale = 1 << iota
	flagWoken
	flagEnded
	flagRecyclable
	flagRecycled
)

// A Task is an execution of code, similar to a goroutine but cooperative and
// stackless.
//
// A Task is created with a function called [Operation].
// A Task's job is to complete it.
// When a [Loop] spawns a Task, it runs the Task by calling the Operation
// function with the Task as the argument.
// The return value determines whether to end the Task or to yield it so that
// it could resume later.
//
// In order for a Task to resume, the Task must watch at least one [Event],
// which must be a [Signal] or an [Element], when calling the Operation
// function.
// A notification of such an Event resumes the Task.
// When a Task is resumed, the Loop runs the Task again.
// This is how dependents of an Element react to newly published values:
// they watch the Element and re-read it every time they are resumed.
//
// A Task can also switch to work on another Operation function according to
// the return value of the Operation function.
// A Task can switch from one Operation to another until an Operation ends it.
type Task struct {
	loop *Loop
	path string
	op   Operation
	flag uint8
	deps map[Event]bool
}

func (l *Loop) newTask() *Task {
	if t := l.pool.Get(); t != nil {
		return t.(*Task)
	}
	return new(Task)
}

func (l *Loop) freeTask(t *Task) {
	if t.flag&(flagRecyclable|flagRecycled) == flagRecyclable {
		t.loop = nil
		t.op = nil
		t.flag |= flagRecycled
		l.pool.Put(t)
	}
}

func (t *Task) init(l *Loop, p string, op Operation) *Task {
	t.loop = l
	t.path = p
	t.op = op
	t.flag = flagStale
	return t
}

func (t *Task) recyclable() *Task {
	t.flag |= flagRecyclable
	return t
}

func (t *Task) wake() {
	flag := t.flag
	if flag&flagEnded != 0 {
		return
	}

	if flag&flagWoken != 0 {
		t.flag = flag | flagStale
		return
	}

	t.flag = flag | flagStale | flagWoken
	t.loop.resumeTask(t)
}

func (l *Loop) runTask(t *Task) {
	flag := t.flag
	flag &^= flagWoken
	t.flag = flag

	if flag&flagEnded != 0 {
		l.freeTask(t)
		return
	}

	if flag&flagStale == 0 {
		return
	}

	l.mu.Unlock()
	t.run()
	l.mu.Lock()
}

func (t *Task) run() {
	{
		deps := t.deps
		for d := range deps {
			deps[d] = false
		}
	}

	var res Result

	for {
		t.flag &^= flagStale | flagEnded

		res = t.op(t)

		if res.op != nil {
			t.op = res.op
		}

		if res.action != doSwitch {
			break
		}

		t.clearDeps()
	}

	if res.action != doEnd {
		deps := t.deps
		for d, inUse := range deps {
			if !inUse {
				delete(deps, d)
				d.removeListener(t)
			}
		}
	}

	if res.action == doEnd || len(t.deps) == 0 {
		t.end()
	}
}

func (t *Task) end() {
	if t.flag&flagEnded != 0 {
		return
	}

	t.flag |= flagEnded

	t.clearDeps()

	if t.flag&flagWoken == 0 {
		t.loop.freeTask(t)
	}
}

func (t *Task) clearDeps() {
	deps := t.deps
	for d := range deps {
		delete(deps, d)
		d.removeListener(t)
	}
}

// Loop returns the [Loop] that spawned t.
//
// Since t can be recycled by a Loop, it is recommended to save
// the return value in a variable first.
func (t *Task) Loop() *Loop {
	return t.loop
}

// Path returns the path of t.
//
// Since t can be recycled by a [Loop], it is recommended to save
// the return value in a variable first.
func (t *Task) Path() string {
	return t.path
}

// Watch watches some Events so that, when any of them notifies, t resumes.
func (t *Task) Watch(s ...Event) {
	deps := t.deps
	if deps == nil {
		deps = make(map[Event]bool)
		t.deps = deps
	}

	for _, d := range s {
		if _, ok := deps[d]; ok {
			deps[d] = true
			continue
		}

		deps[d] = true
		d.addListener(t)
	}
}

// Result is the type of the return value of an [Operation] function.
// A Result determines what next for a [Task] to do after calling an Operation
// function.
//
// A Result can be created by calling one of the following method of Task:
//   - [Task.End]: for ending a Task;
//   - [Task.Await]: for yielding a Task with additional Events to watch;
//   - [Task.Yield]: for yielding a Task with another Operation to which will
//     be switched later when resuming;
//   - [Task.Switch]: for switching to another Operation.
type Result struct {
	action int
	op     Operation
}

// End returns a [Result] that will cause t to end or switch to work on
// another [Operation] in a [Chain].
func (t *Task) End() Result {
	return Result{action: doEnd}
}

// Await returns a [Result] that will cause t to yield.
// Await also accepts additional Events to be awaited for.
func (t *Task) Await(s ...Event) Result {
	if len(s) != 0 {
		t.Watch(s...)
	}
	return Result{action: doYield}
}

// Yield returns a [Result] that will cause t to yield.
// op becomes the current Operation of t so that, when t is resumed, op is
// called instead.
func (t *Task) Yield(op Operation) Result {
	if op == nil {
		panic("Yield(nil): undefined behavior")
	}
	return Result{action: doYield, op: op}
}

// Switch returns a [Result] that will cause t to switch to work on op.
// t will be reset and op will be called immediately as the current Operation
// of t.
func (t *Task) Switch(op Operation) Result {
	if op == nil {
		panic("Switch(nil): undefined behavior")
	}
	return Result{action: doSwitch, op: op}
}

// An Operation is a piece of work that a [Task] is given to do when it is
// spawned.
// The return value of an Operation, a [Result], determines what next for
// a Task to do.
//
// The argument t must not escape, because t can be recycled by a [Loop]
// when t ends.
type Operation func(t *Task) Result

// Chain returns an [Operation] that will work on each of the provided
// Operations in sequence.
// When one Operation completes, Chain works on another.
func Chain(s ...Operation) Operation {
	var op Operation
	return func(t *Task) Result {
		if op == nil {
			if len(s) == 0 {
				return t.End()
			}
			op, s = s[0], s[1:]
		}
		switch res := op(t); res.action {
		case doEnd:
			op = nil
			return Result{action: doSwitch}
		case doYield, doSwitch:
			if res.op != nil {
				op = res.op
			}
			return Result{action: res.action}
		default:
			panic("internal error: unknown action")
		}
	}
}

// Do returns an [Operation] that calls f, and then completes.
func Do(f func()) Operation {
	return func(t *Task) Result {
		f()
		return t.End()
	}
}

// Then returns an [Operation] that first works on op, then switches to
// work on next after op completes.
//
// To chain multiple Operations, use [Chain] function.
func (op Operation) Then(next Operation) Operation {
	if next == nil {
		panic("Then(nil): undefined behavior")
	}
	return func(t *Task) Result {
		switch res := op(t); res.action {
		case doEnd:
			return Result{action: doSwitch, op: next}
		case doYield, doSwitch:
			if res.op != nil {
				op = res.op
			}
			return Result{action: res.action}
		default:
			panic("internal error: unknown action")
		}
	}
}
