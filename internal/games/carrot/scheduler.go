package carrot

import (
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/carrot-jump/internal/core"
)

// TaskID identifies a scheduled task.
type TaskID uint64

type task struct {
	id  TaskID
	due time.Time
	fn  func()
}

// Scheduler holds one-shot tasks due at a wall-clock time. Tasks only run
// from RunDue, which the game calls at the start of each tick, so they
// never race with the simulation.
type Scheduler struct {
	mu     sync.Mutex
	clock  core.Clock
	nextID TaskID
	tasks  []task
}

// NewScheduler creates a scheduler reading time from clock.
func NewScheduler(clock core.Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// After schedules fn to run once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) TaskID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.tasks = append(s.tasks, task{id: s.nextID, due: s.clock.Now().Add(d), fn: fn})
	return s.nextID
}

// Cancel removes a pending task. Cancelling a task that already ran or
// was cancelled is a no-op and returns false.
func (s *Scheduler) Cancel(id TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending task.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
}

// Pending returns the number of scheduled tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// RunDue runs every task due at or before now, earliest first, and returns
// how many ran. Tasks scheduled by a running task wait for the next call.
func (s *Scheduler) RunDue(now time.Time) int {
	s.mu.Lock()
	var due []task
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.due.After(now) {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].due.Before(due[j].due)
	})

	for _, t := range due {
		t.fn()
	}
	return len(due)
}
