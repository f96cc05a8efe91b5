package workerpool

import (
	"context"
	"sync"
	"time"
)

// Task is one unit of work. Key identifies it in the matching Result.
type Task struct {
	Key string
	Run func(ctx context.Context) error
}

type Result struct {
	Key string
	Err error
}

// Pool runs submitted tasks on a fixed number of goroutines, optionally
// spacing task starts to a requests-per-second limit.
type Pool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
	mu      sync.RWMutex
	rate    <-chan time.Time
	ticker  *time.Ticker
}

func New(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

func (p *Pool) SetRateLimit(rps int) {
	p.stopTicker()
	if rps <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ticker = time.NewTicker(time.Second / time.Duration(rps))
	p.rate = p.ticker.C
}

// Submit blocks when the buffer is full. It must not be called after Close.
func (p *Pool) Submit(t Task) {
	if t.Run == nil {
		return
	}
	p.tasks <- t
}

// Close stops accepting tasks. Queued tasks still run.
func (p *Pool) Close() {
	close(p.tasks)
}

func (p *Pool) stopTicker() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
}

// Run starts the workers. The returned channel is closed once every worker
// has exited, either because Close drained the queue or ctx was cancelled.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					p.mu.RLock()
					rate := p.rate
					p.mu.RUnlock()
					if rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}
					err := t.Run(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Key: t.Key, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		p.stopTicker()
		close(out)
	}()

	return out
}
