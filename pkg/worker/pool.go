// Package worker provides an asynchronous worker pool for publishing note and
// agent events using the provided eventstream.Publisher.
//
// The pool decouples event delivery from the HTTP hot path so that a slow or
// unavailable broker never delays an API response.
package worker

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/eventstream"
)

var (
	defaultNumWorkers     uint = 3
	defaultJobQueueSize   uint = 256
	defaultPublishTimeout      = 10 * time.Second
)

// Job is a unit of work for the worker pool to execute against. Exactly one
// of Note or Agent is set.
type Job struct {
	Note  *eventstream.NoteAddedEvent
	Agent *eventstream.AgentCompletedEvent
}

func (j Job) eventType() string {
	switch {
	case j.Note != nil:
		return j.Note.EventType
	case j.Agent != nil:
		return j.Agent.EventType
	}
	return ""
}

// Config is the configuration options for the worker pool.
type Config struct {
	// Publisher delivers events to the stream backend.
	Publisher eventstream.Publisher

	// NumWorkers is the number of background workers in the pool.
	NumWorkers uint

	// QueueSize is the capacity of the buffered job channel (defaults to 256).
	QueueSize uint

	// PublishTimeout bounds each publish call (defaults to 10s).
	PublishTimeout time.Duration

	// Logger is the provided zap logger
	Logger *zap.Logger
}

// Pool publishes events asynchronously via a worker pool.
type Pool struct {
	config *Config
	queue  chan Job
	wg     sync.WaitGroup
	logger *zap.Logger

	// mu guards closed so Enqueue never sends on a closed queue.
	mu     sync.RWMutex
	closed bool
}

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c *Config) (*Pool, error) {
	if c.Publisher == nil {
		return nil, fmt.Errorf("worker pool requires a publisher")
	}

	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultJobQueueSize
	}

	if c.PublishTimeout == 0 {
		c.PublishTimeout = defaultPublishTimeout
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	wp := &Pool{
		config: c,
		queue:  make(chan Job, c.QueueSize),
		logger: c.Logger,
	}

	wp.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go wp.worker(i)
	}

	return wp, nil
}

// Enqueue submits a job for processing by the worker pool.
// Returns true if enqueued, false if the queue is full, resulting in the job being dropped
func (p *Pool) Enqueue(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.logger.Debug("job not queued, pool closed", zap.String("event_type", job.eventType()))
		return false
	}

	select {
	case p.queue <- job:
		p.logger.Debug("job queued", zap.String("event_type", job.eventType()))
		return true
	default:
		p.logger.Error("job not queued, queue full, job dropped",
			zap.String("event_type", job.eventType()),
		)
		return false
	}
}

// Close signals workers to stop and waits for in-flight jobs to drain.
// Call this during graceful shutdown after the HTTP server has stopped.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
}

// worker is the inner worker thread that continuously pulls jobs off the jobs queue
func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("worker started", zap.Uint("worker_id", id))

	for job := range p.queue {
		p.processJob(job)
	}

	p.logger.Debug("event worker stopped", zap.Uint("worker_id", id))
}

// processJob publishes the job's event. Failures are logged, never retried.
func (p *Pool) processJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.config.PublishTimeout)
	defer cancel()

	var err error
	switch {
	case job.Note != nil:
		err = p.config.Publisher.PublishNote(ctx, job.Note)
	case job.Agent != nil:
		err = p.config.Publisher.PublishAgent(ctx, job.Agent)
	default:
		p.logger.Warn("skipping empty job")
		return
	}

	if err != nil {
		p.logger.Error("async event publish failed",
			zap.String("event_type", job.eventType()),
			zap.Error(err),
		)
		return
	}

	p.logger.Debug("event published", zap.String("event_type", job.eventType()))
}
