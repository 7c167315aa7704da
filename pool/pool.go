package pool

import (
	"context"
	"sync"

	"github.com/arunsworld/nursery"
)

const DefaultWidth = 4

type Job func(context.Context) error

// Pool bounds how many jobs run at once: the bound is shared
// by every Run call on the same pool
type Pool struct {
	slots chan struct{}
}

func New(width int) *Pool {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Pool{make(chan struct{}, width)}
}

func (pool *Pool) Width() int {
	return cap(pool.slots)
}

// Run blocks until every job has returned. The first failure cancels
// the context handed to the others and is the one returned; jobs still
// waiting for a slot at that point are not started at all.
func (pool *Pool) Run(ctx context.Context, jobs ...Job) error {
	var (
		once    sync.Once
		workers = make([]nursery.ConcurrentJob, 0, len(jobs))
	)
	for _, job := range jobs {
		workers = append(workers, func(job Job) nursery.ConcurrentJob {
			return func(ctx context.Context, ch chan error) {
				select {
				case pool.slots <- struct{}{}:
					defer func() { <-pool.slots }()
				case <-ctx.Done():
					return
				}

				if ctx.Err() != nil {
					return
				}
				if err := job(ctx); err != nil {
					once.Do(func() { ch <- err })
				}
			}
		}(job))
	}

	if err := nursery.RunConcurrentlyWithContext(ctx, workers...); err != nil {
		return err
	}
	return ctx.Err()
}
