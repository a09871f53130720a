package usecase

import (
	"context"
	"sync"
)

// Task tracks one asynchronous request issued by a widget. A task is
// superseded when a newer request was issued before it settled; its
// result is then discarded.
type Task struct {
	Generation uint64

	done       chan struct{}
	once       sync.Once
	superseded bool
}

func newTask(gen uint64) *Task {
	return &Task{Generation: gen, done: make(chan struct{})}
}

func (t *Task) finish(superseded bool) {
	t.once.Do(func() {
		t.superseded = superseded
		close(t.done)
	})
}

// Done is closed once the task's outcome has been applied or discarded.
func (t *Task) Done() <-chan struct{} { return t.done }

// Superseded reports whether the result was discarded. Valid after Done.
func (t *Task) Superseded() bool {
	<-t.done
	return t.superseded
}

// Wait blocks until the task finishes or ctx ends.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
