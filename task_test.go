package provider_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/FedeZara/provider"
)

func TestTaskSwitch(t *testing.T) {
	var lp provider.Loop

	lp.Autorun(lp.Run)

	var sig provider.Signal

	n := 0

	var trace []string

	lp.Spawn("/t", func(tk *provider.Task) provider.Result {
		trace = append(trace, fmt.Sprintf("first %d", n))
		if n < 2 {
			return tk.Await(&sig)
		}
		return tk.Switch(func(tk *provider.Task) provider.Result {
			trace = append(trace, fmt.Sprintf("second %d", n))
			if n < 4 {
				return tk.Await(&sig)
			}
			return tk.End()
		})
	})

	for i := 0; i < 5; i++ {
		lp.Spawn("/bump", provider.Do(func() {
			n++
			sig.Notify()
		}))
	}

	want := "first 0,first 1,first 2,second 2,second 3,second 4"
	if got := strings.Join(trace, ","); got != want {
		t.Errorf("trace is %q; want %q.", got, want)
	}
}

func TestTaskYield(t *testing.T) {
	var lp provider.Loop

	lp.Autorun(lp.Run)

	var sig provider.Signal

	var trace []string

	lp.Spawn("/t", func(tk *provider.Task) provider.Result {
		trace = append(trace, "a")
		tk.Watch(&sig)
		return tk.Yield(func(tk *provider.Task) provider.Result {
			trace = append(trace, "b")
			return tk.End()
		})
	})

	lp.Spawn("/n", provider.Do(sig.Notify))

	if got := strings.Join(trace, ""); got != "ab" {
		t.Errorf("trace is %q; want %q.", got, "ab")
	}
}

func TestOperationChain(t *testing.T) {
	var lp provider.Loop

	lp.Autorun(lp.Run)

	var sig provider.Signal

	var trace []string

	awaitOnce := func() provider.Operation {
		woken := false
		return func(tk *provider.Task) provider.Result {
			if !woken {
				woken = true
				return tk.Await(&sig)
			}
			return tk.End()
		}
	}

	lp.Spawn("/t", provider.Chain(
		provider.Do(func() { trace = append(trace, "a") }),
		awaitOnce(),
		provider.Do(func() { trace = append(trace, "b") }),
	).Then(provider.Do(func() { trace = append(trace, "c") })))

	trace = append(trace, "|")

	lp.Spawn("/n", provider.Do(sig.Notify))

	if got := strings.Join(trace, ""); got != "a|bc" {
		t.Errorf("trace is %q; want %q.", got, "a|bc")
	}
}

func TestTaskPath(t *testing.T) {
	var lp provider.Loop

	var got string

	lp.Spawn("/a/./b//c", func(tk *provider.Task) provider.Result {
		got = tk.Path()
		return tk.End()
	})

	lp.Run()

	if got != "/a/b/c" {
		t.Errorf("Path() = %q; want %q.", got, "/a/b/c")
	}
}

func TestRunOrder(t *testing.T) {
	var lp provider.Loop

	var trace []string

	log := func(s string) provider.Operation {
		return provider.Do(func() { trace = append(trace, s) })
	}

	lp.Spawn("/b", log("b1"))
	lp.Spawn("/a", log("a1"))
	lp.Spawn("/c", log("c1"))
	lp.Spawn("/a", log("a2"))
	lp.Spawn("/b", log("b2"))

	lp.Run()

	want := "a1 a2 b1 b2 c1"
	if got := strings.Join(trace, " "); got != want {
		t.Errorf("tasks ran as %q; want %q.", got, want)
	}
}
