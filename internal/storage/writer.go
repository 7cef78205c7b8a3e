package storage

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrWriterClosed is returned by SaveHighScore after Close.
var ErrWriterClosed = errors.New("storage: background writer closed")

// HighScoreStore is the scalar high-score persistence contract.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(int) error
}

// BackgroundWriter moves high-score writes off the caller's goroutine.
// Only the most recent pending value is kept; older ones are dropped.
// Write failures are logged, never returned.
type BackgroundWriter struct {
	target  HighScoreStore
	logger  *log.Logger
	pending chan int
	quit    chan struct{}
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewBackgroundWriter starts the writer goroutine. Call Close to flush it.
func NewBackgroundWriter(target HighScoreStore, logger *log.Logger) *BackgroundWriter {
	if logger == nil {
		logger = log.Default()
	}
	w := &BackgroundWriter{
		target:  target,
		logger:  logger,
		pending: make(chan int, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

// LoadHighScore reads synchronously from the target.
func (w *BackgroundWriter) LoadHighScore() (int, error) {
	return w.target.LoadHighScore()
}

// SaveHighScore queues value and returns without waiting for the write.
func (w *BackgroundWriter) SaveHighScore(value int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWriterClosed
	}

	for {
		select {
		case w.pending <- value:
			return nil
		default:
			// Replace the stale value
			select {
			case <-w.pending:
			default:
			}
		}
	}
}

// Close writes any pending value and stops the goroutine.
func (w *BackgroundWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.quit)
	w.mu.Unlock()

	<-w.done
}

func (w *BackgroundWriter) run() {
	defer close(w.done)
	for {
		select {
		case v := <-w.pending:
			w.write(v)
		case <-w.quit:
			select {
			case v := <-w.pending:
				w.write(v)
			default:
			}
			return
		}
	}
}

func (w *BackgroundWriter) write(value int) {
	if err := w.target.SaveHighScore(value); err != nil {
		w.logger.Warn("failed to persist high score", "value", value, "err", err)
		return
	}
	w.logger.Debug("high score persisted", "value", value)
}
