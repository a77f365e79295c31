// Package worker runs blocking calls on a fixed set of goroutines so request
// handlers only ever wait on a Future.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	ErrPoolStopped = errors.New("worker pool stopped")
	ErrTaskPanic   = errors.New("worker task panicked")
)

// Pool is a fixed-size set of workers fed from a bounded queue.
type Pool struct {
	tasks   chan func()
	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool
	size    int
	active  atomic.Int64
}

// NewPool starts size workers. queueSize is how many tasks may wait for a
// free worker before Submit blocks; zero means hand-off only.
func NewPool(size, queueSize int) *Pool {
	if size < 1 {
		size = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	p := &Pool{
		tasks: make(chan func(), queueSize),
		size:  size,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.run()
	}

	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.active.Add(1)
		task()
		p.active.Add(-1)
	}
}

func (p *Pool) enqueue(ctx context.Context, task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop refuses new work, lets queued tasks finish and waits for the workers.
// It is safe to call more than once.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) Size() int {
	return p.size
}

// Active is the number of tasks currently executing.
func (p *Pool) Active() int {
	return int(p.active.Load())
}

// Queued is the number of tasks waiting for a worker.
func (p *Pool) Queued() int {
	return len(p.tasks)
}

// Future is the pending result of a submitted task.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Await blocks until the task finishes or ctx is done, whichever is first.
// An abandoned task still runs to completion on its worker.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Submit queues fn on the pool. fn receives ctx and is skipped if ctx is
// already done by the time a worker picks it up. A panic inside fn is
// reported as ErrTaskPanic instead of killing the worker.
func Submit[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) (*Future[T], error) {
	f := &Future[T]{done: make(chan struct{})}

	task := func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("%w: %v", ErrTaskPanic, r)
			}
		}()

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.value, f.err = fn(ctx)
	}

	if err := p.enqueue(ctx, task); err != nil {
		return nil, err
	}
	return f, nil
}
