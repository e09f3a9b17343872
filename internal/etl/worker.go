package etl

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Runner is the bounded executor that drives import jobs. Each submitted
// job is processed by exactly one worker; files within a job stay strictly
// sequential inside the Processor. Multiple jobs may run concurrently up to
// the worker count; the pipeline performs no cross-job coordination, so
// overlapping jobs against the same stores can under-deduplicate.
type Runner struct {
	mu        sync.Mutex
	processor *Processor
	workers   int
	queue     chan string
	stopChan  chan struct{}
	wg        sync.WaitGroup
	isRunning bool
	log       *zap.Logger
}

// NewRunner creates a runner with the given worker count and queue capacity.
func NewRunner(processor *Processor, workers, queueSize int, log *zap.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		processor: processor,
		workers:   workers,
		queue:     make(chan string, queueSize),
		stopChan:  make(chan struct{}),
		log:       log,
	}
}

// Start launches the worker goroutines.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("job runner already running")
	}
	r.isRunning = true

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
	r.log.Info("🔄 Job runner started", zap.Int("workers", r.workers))
	return nil
}

// Stop signals the workers and waits for in-flight jobs to finish. A job
// already running is never interrupted; there is no cancellation once a job
// starts.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return
	}
	r.isRunning = false
	r.mu.Unlock()

	close(r.stopChan)
	r.wg.Wait()
	r.log.Info("🛑 Job runner stopped")
}

// Submit queues a job for processing. It never blocks: when the queue is
// full the submission is rejected and the caller decides what to surface.
func (r *Runner) Submit(jobID string) error {
	select {
	case r.queue <- jobID:
		return nil
	default:
		return fmt.Errorf("job queue is full")
	}
}

func (r *Runner) worker(id int) {
	defer r.wg.Done()
	for {
		select {
		case <-r.stopChan:
			return
		case jobID := <-r.queue:
			r.log.Info("worker picked up job", zap.Int("worker", id), zap.String("job", jobID))
			if err := r.processor.ProcessJob(context.Background(), jobID); err != nil {
				r.log.Error("job failed", zap.Int("worker", id), zap.String("job", jobID), zap.Error(err))
			}
		}
	}
}
