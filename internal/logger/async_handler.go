package logger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	asyncDefaultQueueSize    = 1024
	asyncDefaultDrainTimeout = 5 * time.Second
)

// AsyncOptions tunes the buffering behind an AsyncHandler. Zero values pick
// sensible defaults.
type AsyncOptions struct {
	BufferSize   int
	FlushTimeout time.Duration
}

// AsyncHandler decouples log emission from log delivery. Chat handlers log on
// the request path, and shipping those records to Better Stack over HTTP must
// not add its round trip to reply latency, so Handle only enqueues and a
// single goroutine drains the queue. When the queue is full records are
// dropped rather than blocking the caller.
type AsyncHandler struct {
	queue   *asyncQueue
	wrapped slog.Handler
}

type queuedRecord struct {
	ctx     context.Context
	record  slog.Record
	handler slog.Handler
}

type asyncQueue struct {
	ch           chan queuedRecord
	drainTimeout time.Duration
	closed       atomic.Bool
	dropped      atomic.Uint64
	done         sync.WaitGroup
}

// NewAsyncHandler wraps handler so records are delivered on a background
// goroutine. Call Shutdown to drain before process exit.
func NewAsyncHandler(handler slog.Handler, opts AsyncOptions) *AsyncHandler {
	size := opts.BufferSize
	if size <= 0 {
		size = asyncDefaultQueueSize
	}
	timeout := opts.FlushTimeout
	if timeout <= 0 {
		timeout = asyncDefaultDrainTimeout
	}

	q := &asyncQueue{
		ch:           make(chan queuedRecord, size),
		drainTimeout: timeout,
	}
	q.done.Add(1)
	go q.drain()

	return &AsyncHandler{queue: q, wrapped: handler}
}

func (q *asyncQueue) drain() {
	defer q.done.Done()
	for item := range q.ch {
		_ = item.handler.Handle(item.ctx, item.record)
	}
}

func (q *asyncQueue) push(ctx context.Context, record slog.Record, handler slog.Handler) {
	if q.closed.Load() {
		return
	}
	select {
	case q.ch <- queuedRecord{ctx: ctx, record: record, handler: handler}:
	default:
		q.dropped.Add(1)
	}
}

func (q *asyncQueue) close(ctx context.Context) error {
	if q.closed.Swap(true) {
		return nil
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.drainTimeout)
		defer cancel()
	}
	close(q.ch)

	drained := make(chan struct{})
	go func() {
		q.done.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enabled defers to the wrapped handler.
func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.wrapped.Enabled(ctx, level)
}

// Handle enqueues a clone of the record and returns immediately.
func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.wrapped.Enabled(ctx, r.Level) {
		return nil
	}
	h.queue.push(ctx, r.Clone(), h.wrapped)
	return nil
}

// WithAttrs shares the queue so every derived handler drains through the same
// goroutine.
func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{queue: h.queue, wrapped: h.wrapped.WithAttrs(attrs)}
}

// WithGroup shares the queue, matching WithAttrs.
func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{queue: h.queue, wrapped: h.wrapped.WithGroup(name)}
}

// Shutdown stops accepting records and waits for the queue to empty, bounded
// by ctx or the configured flush timeout.
func (h *AsyncHandler) Shutdown(ctx context.Context) error {
	if h == nil || h.queue == nil {
		return nil
	}
	return h.queue.close(ctx)
}
