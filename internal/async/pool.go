package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"idextract/internal/common"
	"idextract/internal/extract"
	"idextract/internal/results"
)

// Pool dispatches extraction jobs onto a fixed number of workers. The batch
// is synchronous from the caller's point of view: Run returns only after
// every job has completed, success or failure. One job's failure never
// cancels or blocks another.
type Pool struct {
	extractor *extract.Extractor
	logger    *slog.Logger
	workers   int
	timeout   time.Duration
}

type Option func(*Pool)

func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithTaskTimeout bounds each inference task; expiry is indistinguishable
// from a failed inference call so a stalled request cannot hold a pool slot
// indefinitely.
func WithTaskTimeout(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func NewPool(extractor *extract.Extractor, logger *slog.Logger, opts ...Option) *Pool {
	p := &Pool{
		extractor: extractor,
		logger:    logger,
		workers:   4,
		timeout:   2 * time.Minute,
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run schedules every job under the concurrency budget and records each
// outcome on the aggregator. It validates the budget before starting any
// work; a non-positive worker count is a configuration error.
func (p *Pool) Run(ctx context.Context, jobs []extract.Job, agg *results.Aggregator) error {
	if p.workers < 1 {
		return common.NewAppError("CONFIG_ERROR", "worker count must be positive", common.ErrConfig)
	}

	ch := make(chan extract.Job)
	var wg sync.WaitGroup

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			p.logger.Info("worker started", "worker_id", workerID)

			for job := range ch {
				taskCtx, cancel := context.WithTimeout(ctx, p.timeout)
				rec, err := p.extractor.Extract(taskCtx, job)
				cancel()

				if err != nil {
					p.logger.Error("processing failed", "worker_id", workerID, "filename", job.Filename, "error", err)
				}
				agg.Record(job.Filename, rec, err)
			}

			p.logger.Info("worker stopped", "worker_id", workerID)
		}(i + 1)
	}

	for _, job := range jobs {
		ch <- job
	}
	close(ch)
	wg.Wait()
	return nil
}
