package fsbridge_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/FedeZara/provider"
	"github.com/FedeZara/provider/fsbridge"
)

func TestWatcher(t *testing.T) {
	dir := t.TempDir()

	var wg sync.WaitGroup // For keeping track of goroutines.
	defer wg.Wait()

	w, err := fsbridge.New(50*time.Millisecond, dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	var lp provider.Loop

	lp.Autorun(func() {
		wg.Add(1)
		go func() { defer wg.Done(); lp.Run() }()
	})

	el := provider.Mount(&lp, "/fs", nil, provider.StreamProvider[[]fsbridge.Change]{
		Value: w.Stream(),
	})

	var mu sync.Mutex
	var batches [][]fsbridge.Change

	lp.Spawn("/collect", func(tk *provider.Task) provider.Result {
		if b := el.Value(); b != nil {
			mu.Lock()
			batches = append(batches, b)
			mu.Unlock()
		}
		return tk.Await(el)
	})

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("world"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		mu.Lock()
		n := 0
		for _, b := range batches {
			n += len(b)
		}
		mu.Unlock()
		if n >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for changes.")
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()

	seen := make(map[string]bool)
	for _, b := range batches {
		for _, c := range b {
			seen[filepath.Base(c.Path)] = true
		}
	}

	if !seen["a.txt"] || !seen["b.txt"] {
		t.Errorf("saw changes to %v; want both a.txt and b.txt.", seen)
	}
}
