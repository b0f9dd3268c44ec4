package pipeline

import (
	"context"
	"sync"
)

// task is one generation attempt handed to the background workers.
type task struct {
	dreamID  string
	prompt   string
	photoURL string
}

// dispatcher runs generation attempts detached from the request that spawned
// them. A fixed worker pool drains a buffered queue; when the queue is full
// the task runs on its own goroutine instead, so the foreground path never
// blocks on generation latency.
type dispatcher struct {
	tasks chan task
	run   func(task)
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func newDispatcher(workers int, run func(task)) *dispatcher {
	if workers <= 0 {
		workers = 1
	}
	d := &dispatcher{
		tasks: make(chan task, 64),
		run:   run,
	}
	for i := 0; i < workers; i++ {
		go d.worker()
	}
	return d
}

func (d *dispatcher) worker() {
	for t := range d.tasks {
		d.run(t)
		d.wg.Done()
	}
}

// enqueue hands a task to the pool without waiting for it to start or finish.
func (d *dispatcher) enqueue(t task) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.wg.Add(1)
	select {
	case d.tasks <- t:
		d.mu.Unlock()
	default:
		d.mu.Unlock()
		go func() {
			defer d.wg.Done()
			d.run(t)
		}()
	}
}

// drain blocks until every enqueued task has finished or ctx expires.
func (d *dispatcher) drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close stops accepting tasks and releases the workers once the queue empties.
func (d *dispatcher) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	close(d.tasks)
}
