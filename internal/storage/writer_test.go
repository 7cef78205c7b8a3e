package storage

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

// gatedStore blocks each save until released so tests can control ordering.
type gatedStore struct {
	mu      sync.Mutex
	saved   []int
	started chan int
	release chan struct{}
	err     error
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		started: make(chan int, 16),
		release: make(chan struct{}, 16),
	}
}

func (g *gatedStore) LoadHighScore() (int, error) { return 7, nil }

func (g *gatedStore) SaveHighScore(v int) error {
	g.started <- v
	<-g.release
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saved = append(g.saved, v)
	return g.err
}

func (g *gatedStore) values() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int(nil), g.saved...)
}

func TestBackgroundWriterKeepsLatest(t *testing.T) {
	target := newGatedStore()
	w := NewBackgroundWriter(target, nil)

	if err := w.SaveHighScore(1); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	// Wait until the first write is in flight
	if v := <-target.started; v != 1 {
		t.Fatalf("expected first write of 1, got %d", v)
	}

	w.SaveHighScore(2)
	w.SaveHighScore(3)

	target.release <- struct{}{}
	target.release <- struct{}{}
	w.Close()

	got := target.values()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("expected writes [1 3], got %v", got)
	}
}

func TestBackgroundWriterClose(t *testing.T) {
	target := newGatedStore()
	target.err = errors.New("disk full")
	w := NewBackgroundWriter(target, nil)

	w.SaveHighScore(5)
	target.release <- struct{}{}
	w.Close()
	w.Close()

	if got := target.values(); len(got) != 1 || got[0] != 5 {
		t.Errorf("expected pending value flushed on Close, got %v", got)
	}
	if err := w.SaveHighScore(6); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("expected ErrWriterClosed, got %v", err)
	}
	if v, _ := w.LoadHighScore(); v != 7 {
		t.Errorf("LoadHighScore should pass through, got %d", v)
	}
}

func TestBackgroundWriterWithSQLite(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	w := NewBackgroundWriter(store.HighScoresFor("carrot"), nil)
	for i := 1; i <= 10; i++ {
		w.SaveHighScore(i)
	}
	w.Close()

	if high, _ := store.LoadHighScore("carrot"); high != 10 {
		t.Errorf("expected latest value 10 persisted, got %d", high)
	}
}
