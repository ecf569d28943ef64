package chunker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sevigo/speechsplit/schema"
)

// Result carries one background chunking job's outcome.
type Result struct {
	JobID  string
	Chunks []schema.TextChunk
	Err    error
}

// Pool runs chunking jobs off the caller's goroutine with bounded
// concurrency. Input text and results cross the boundary by value, so no
// shared mutable state exists between jobs; a large book can be chunked
// without stalling whatever drives playback.
type Pool struct {
	chunker Chunker
	logger  *slog.Logger
	sem     chan struct{}
	wg      sync.WaitGroup
}

// NewPool creates a pool around the given chunker. maxConcurrent bounds the
// number of simultaneously running jobs; values below 1 fall back to the
// default.
func NewPool(c Chunker, logger *slog.Logger, maxConcurrent int) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	if maxConcurrent < 1 {
		maxConcurrent = defaultPoolConcurrency
	}
	return &Pool{
		chunker: c,
		logger:  logger.With("component", "chunker_pool"),
		sem:     make(chan struct{}, maxConcurrent),
	}
}

// Submit queues text for background chunking and returns the job ID with a
// buffered result channel that receives exactly one Result and is then
// closed. Cancelling the context abandons queued or running work.
func (p *Pool) Submit(ctx context.Context, text string) (string, <-chan Result) {
	jobID := uuid.NewString()
	out := make(chan Result, 1)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer close(out)

		select {
		case p.sem <- struct{}{}:
			defer func() { <-p.sem }()
		case <-ctx.Done():
			out <- Result{JobID: jobID, Err: ctx.Err()}
			return
		}

		started := time.Now()
		chunks, err := p.chunker.Chunk(ctx, text)
		if err != nil {
			p.logger.Warn("chunking job failed", "job_id", jobID, "error", err)
			out <- Result{JobID: jobID, Err: err}
			return
		}

		p.logger.Debug("chunking job completed", "job_id", jobID,
			"chunks", len(chunks), "duration", time.Since(started))
		out <- Result{JobID: jobID, Chunks: chunks}
	}()

	return jobID, out
}

// Wait blocks until every submitted job has finished.
func (p *Pool) Wait() {
	p.wg.Wait()
}
