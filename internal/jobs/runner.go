// Package jobs runs opportunistic background work triggered by request
// handlers. The contract is strictly best effort: submission never blocks
// the caller, failures are logged and swallowed, and nothing is retried.
package jobs

import (
	"context"
	"time"

	"github.com/keyvez/vaan-backend/internal/logger"
)

type task struct {
	name string
	fn   func(ctx context.Context) error
}

type Runner struct {
	log     *logger.Logger
	queue   chan task
	workers int
	timeout time.Duration
}

func NewRunner(baseLog *logger.Logger, workers, queueSize int, timeout time.Duration) *Runner {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Runner{
		log:     baseLog.With("component", "JobRunner"),
		queue:   make(chan task, queueSize),
		workers: workers,
		timeout: timeout,
	}
}

// Submit enqueues fn for execution after the current request returns. When
// the queue is full the job is dropped; best effort means the triggering
// request must never wait.
func (r *Runner) Submit(name string, fn func(ctx context.Context) error) bool {
	select {
	case r.queue <- task{name: name, fn: fn}:
		return true
	default:
		r.log.Warn("Job queue full, dropping job", "job", name)
		return false
	}
}

func (r *Runner) Start(ctx context.Context) {
	r.log.Info("Starting background job workers", "workers", r.workers)
	for i := 0; i < r.workers; i++ {
		workerID := i + 1
		go r.runLoop(ctx, workerID)
	}
}

func (r *Runner) runLoop(ctx context.Context, workerID int) {
	for {
		select {
		case <-ctx.Done():
			r.log.Info("Job worker stopped", "worker_id", workerID)
			return
		case t := <-r.queue:
			r.runOne(ctx, t)
		}
	}
}

func (r *Runner) runOne(ctx context.Context, t task) {
	jobCtx := ctx
	var cancel context.CancelFunc
	if r.timeout > 0 {
		jobCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("Background job panicked", "job", t.name, "panic", rec)
		}
	}()

	start := time.Now()
	if err := t.fn(jobCtx); err != nil {
		r.log.Warn("Background job failed", "job", t.name, "error", err, "elapsed", time.Since(start))
		return
	}
	r.log.Debug("Background job finished", "job", t.name, "elapsed", time.Since(start))
}
