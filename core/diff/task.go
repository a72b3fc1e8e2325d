package diff

import "context"

// Task is a comparison running in the background. It is the handle a
// presentation layer awaits or polls instead of sharing a worker.
type Task struct {
	done   chan struct{}
	result *Result
	err    error
}

// Start runs c.Compare(ctx, req) on its own goroutine. The comparison is
// not cancellable once started; ctx only bounds source I/O.
func Start(ctx context.Context, c Comparer, req Request) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.result, t.err = c.Compare(ctx, req)
	}()
	return t
}

// Done is closed when the comparison has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Finished reports whether the comparison has completed, without blocking.
func (t *Task) Finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the comparison finishes and returns its outcome.
func (t *Task) Wait() (*Result, error) {
	<-t.done
	return t.result, t.err
}
