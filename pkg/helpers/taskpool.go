package helpers

import (
	"context"
	"errors"

	"golang.org/x/sync/semaphore"
)

// ErrPoolBusy is returned by TaskPool.Do when every slot is taken.
var ErrPoolBusy = errors.New("task pool busy")

// TaskPool runs tasks on background goroutines with a fixed concurrency limit.
// Submissions beyond the limit are rejected rather than queued.
type TaskPool struct {
	sem *semaphore.Weighted
}

func NewTaskPool(size int) *TaskPool {
	if size < 1 {
		size = 1
	}
	return &TaskPool{sem: semaphore.NewWeighted(int64(size))}
}

// Do runs task in its own goroutine and waits for it. If ctx ends first Do
// returns ctx.Err(); the task keeps its slot until it observes cancellation.
func (p *TaskPool) Do(ctx context.Context, task func(context.Context) error) error {
	if !p.sem.TryAcquire(1) {
		return ErrPoolBusy
	}
	done := make(chan error, 1)
	go func() {
		defer p.sem.Release(1)
		done <- task(ctx)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
