package imaging

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many CPU-heavy image jobs run at once across requests.
// Callers queue for a slot for at most the configured wait.
type Pool struct {
	sem     *semaphore.Weighted
	size    int
	maxWait time.Duration
}

// NewPool creates a pool with the given number of slots. A non-positive
// maxWait means callers wait until their context ends.
func NewPool(workers int, maxWait time.Duration) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		sem:     semaphore.NewWeighted(int64(workers)),
		size:    workers,
		maxWait: maxWait,
	}
}

// Size returns the number of slots.
func (p *Pool) Size() int { return p.size }

// Do runs fn once a slot is free. It returns ErrPoolBusy when the wait
// expires and ctx.Err() when ctx ends first.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	acquireCtx := ctx
	if p.maxWait > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, p.maxWait)
		defer cancel()
	}
	if err := p.sem.Acquire(acquireCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrPoolBusy
	}
	defer p.sem.Release(1)
	return fn()
}
