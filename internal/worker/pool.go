// Package worker runs scrape jobs concurrently under a per-domain rate limit.
package worker

import (
	"context"
	"sync"
)

// Handler processes one job. Returning false drops the job without a result.
type Handler[J, R any] func(ctx context.Context, job J) (R, bool)

// Pool runs a fixed number of workers over submitted jobs and streams
// their results. The consumer must drain Results while submitting.
type Pool[J, R any] struct {
	workers int
	handle  Handler[J, R]
	jobs    chan J
	results chan R
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc

	closeJobs    sync.Once
	closeResults sync.Once
}

// NewPool creates a pool bound to ctx. Fewer than one worker means one.
func NewPool[J, R any](ctx context.Context, workers int, handle Handler[J, R]) *Pool[J, R] {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	return &Pool[J, R]{
		workers: workers,
		handle:  handle,
		jobs:    make(chan J, workers),
		results: make(chan R, workers),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers
func (p *Pool[J, R]) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	go func() {
		p.wg.Wait()
		p.closeResults.Do(func() { close(p.results) })
	}()
}

func (p *Pool[J, R]) run() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			res, keep := p.handle(p.ctx, job)
			if !keep {
				continue
			}
			select {
			case p.results <- res:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues job. It returns false once the pool is cancelled.
func (p *Pool[J, R]) Submit(job J) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.jobs <- job:
		return true
	}
}

// Close signals that no more jobs will be submitted. Results is closed once
// the queued jobs finish.
func (p *Pool[J, R]) Close() {
	p.closeJobs.Do(func() { close(p.jobs) })
}

// Results streams job results in completion order
func (p *Pool[J, R]) Results() <-chan R {
	return p.results
}

// Shutdown cancels outstanding work and waits for the workers to exit
func (p *Pool[J, R]) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
