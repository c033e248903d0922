package openvino

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrPoolClosed is returned by Run after the pool has been closed.
var ErrPoolClosed = errors.New("request pool is closed")

// RequestPool manages a fixed set of infer requests for safe concurrent use.
// Each goroutine borrows a request, uses it, and returns it automatically.
//
// Example:
//
//	pool, err := openvino.NewRequestPool(compiled, 4, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	// Safe to call from many goroutines:
//	err = pool.Run(ctx, func(req *openvino.InferRequest) error {
//	    in, err := req.InputTensor(0)
//	    ...
//	    return req.Infer(ctx)
//	})
type RequestPool struct {
	requests chan *InferRequest
	compiled *CompiledModel
	closed   atomic.Bool

	// mu orders returns against Close.
	mu sync.Mutex

	// metrics
	totalRuns    atomic.Int64
	totalErrors  atomic.Int64
	totalLatency atomic.Int64 // nanoseconds
}

// PoolConfig configures request pool behavior.
type PoolConfig struct {
	// MaxParallelCreate bounds how many requests are allocated at once.
	// Zero allocates all of them in parallel.
	MaxParallelCreate int
}

// NewRequestPool creates n requests from compiled. The requests are allocated
// concurrently; if any allocation fails the others are released.
func NewRequestPool(compiled *CompiledModel, n int, config *PoolConfig) (*RequestPool, error) {
	if n <= 0 {
		return nil, fmt.Errorf("pool size must be positive, got %d", n)
	}

	requests := make([]*InferRequest, n)
	var g errgroup.Group
	if config != nil && config.MaxParallelCreate > 0 {
		g.SetLimit(config.MaxParallelCreate)
	}
	for i := range n {
		g.Go(func() error {
			req, err := compiled.CreateInferRequest()
			if err != nil {
				return fmt.Errorf("failed to create request %d: %w", i, err)
			}
			requests[i] = req
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, req := range requests {
			if req != nil {
				req.Close()
			}
		}
		return nil, err
	}

	pool := &RequestPool{
		requests: make(chan *InferRequest, n),
		compiled: compiled,
	}
	for _, req := range requests {
		pool.requests <- req
	}
	return pool, nil
}

// Run borrows a request, calls fn with it, and returns the request.
// It blocks until a request is available or ctx is cancelled.
// This is safe to call from multiple goroutines concurrently.
func (p *RequestPool) Run(ctx context.Context, fn func(*InferRequest) error) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	var req *InferRequest
	select {
	case r, ok := <-p.requests:
		if !ok {
			return ErrPoolClosed
		}
		req = r
	case <-ctx.Done():
		return ctx.Err()
	}

	defer p.giveBack(req)

	start := time.Now()
	err := fn(req)
	elapsed := time.Since(start)

	p.totalRuns.Add(1)
	p.totalLatency.Add(int64(elapsed))
	if err != nil {
		p.totalErrors.Add(1)
	}
	return err
}

// giveBack returns req to the pool, or closes it if the pool closed meanwhile.
func (p *RequestPool) giveBack(req *InferRequest) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed.Load() {
		req.Close()
		return
	}
	p.requests <- req
}

// Size returns the total number of requests in the pool.
func (p *RequestPool) Size() int {
	return cap(p.requests)
}

// Available returns the number of idle requests.
func (p *RequestPool) Available() int {
	return len(p.requests)
}

// CompiledModel returns the compiled model the requests were created from.
func (p *RequestPool) CompiledModel() *CompiledModel {
	return p.compiled
}

// Stats returns pool usage statistics.
func (p *RequestPool) Stats() PoolStats {
	return PoolStats{
		TotalRuns:         p.totalRuns.Load(),
		TotalErrors:       p.totalErrors.Load(),
		TotalLatency:      time.Duration(p.totalLatency.Load()),
		PoolSize:          cap(p.requests),
		AvailableRequests: len(p.requests),
	}
}

// PoolStats contains pool usage statistics.
type PoolStats struct {
	TotalRuns         int64
	TotalErrors       int64
	TotalLatency      time.Duration
	PoolSize          int
	AvailableRequests int
}

// AvgLatency returns the average time a borrowed request was held, or 0 if
// nothing has run.
func (s PoolStats) AvgLatency() time.Duration {
	if s.TotalRuns == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(s.TotalRuns)
}

// Close closes the idle requests and every request still borrowed as it is
// returned. It is safe to call Close multiple times.
func (p *RequestPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed.CompareAndSwap(false, true) {
		return
	}

	close(p.requests)
	for req := range p.requests {
		req.Close()
	}
}
