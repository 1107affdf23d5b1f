// Package memory coordinates the memory footprint of registered caches
// and pools: it aggregates their estimates, classifies pressure against a
// configured ceiling, and applies a graduated cleanup response either on
// demand or on a schedule it owns.
package memory

import (
	"sync"
	"time"
)

// Task is a cancelable repeating job. It decouples background maintenance
// from any particular timer API: the coordinator (or any other owner)
// holds the handle and stops it during teardown.
type Task struct {
	ticker *time.Ticker
	done   chan struct{}
	stop   sync.Once
}

// Repeat runs fn every interval on its own goroutine until Stop is
// called. fn must not block for long; it runs on the task's goroutine.
func Repeat(interval time.Duration, fn func()) *Task {
	t := &Task{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				fn()
			}
		}
	}()
	return t
}

// Stop cancels the task. It is idempotent: stopping twice is safe. A run
// of fn already in flight finishes, and a tick that fired before Stop may
// still deliver one final run.
func (t *Task) Stop() {
	t.stop.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
