// Package batch fans a slice of independent render requests out across a
// worker pool, generalizing the errgroup.Group fan-out gioui-gio's
// cmd/gio/gio.go uses for parallel per-architecture builds into a
// per-item-timed, progress-reporting batch job runner (spec.md §4.8).
package batch

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Item is one independent unit of batch work. The function it wraps
// returns its job's output plus whether the result came from a cache hit
// (spec.md's "FromCache" flag, per original_source/crates/typf-render/src/
// batch.rs and typf-bench/src/main.rs).
type Item[T any] struct {
	Run func(ctx context.Context) (result T, fromCache bool, err error)
}

// Result is one batch item's outcome, tagged with its original index so
// input order survives parallel execution (spec.md §4.8 step 4).
type Result[T any] struct {
	Index     int
	Value     T
	FromCache bool
	Err       error
}

// Progress is delivered to the optional progress callback after every item
// completes: completed/total counts plus the current p50/p90/p99 latency
// percentiles (spec.md §4.8 step 3). The callback must not block for long;
// histogram contention across workers is expected and intentional.
type Progress struct {
	Completed, Total int
	P50, P90, P99    time.Duration
}

// Options configures a batch run.
type Options struct {
	// Concurrency bounds the worker pool size. Zero means unlimited (each
	// item gets its own goroutine, matching errgroup.Group's default).
	Concurrency int
	OnProgress  func(Progress)
}

// Run executes items across a worker pool, returning one Result per item in
// original input order. A failing item does not abort the batch (spec.md
// §4.8 "Failure of one item does not abort the batch"): its Result carries
// the error, and Run itself only returns a non-nil error if ctx is
// cancelled.
func Run[T any](ctx context.Context, items []Item[T], opts Options) ([]Result[T], error) {
	results := make([]Result[T], len(items))
	hist := newHistogram(len(items))
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			start := time.Now()
			value, fromCache, err := item.Run(gctx)
			hist.observe(time.Since(start))
			results[i] = Result[T]{Index: i, Value: value, FromCache: fromCache, Err: err}

			n := completed.Add(1)
			if opts.OnProgress != nil {
				p50, p90, p99 := hist.percentiles()
				opts.OnProgress(Progress{Completed: int(n), Total: len(items), P50: p50, P90: p90, P99: p99})
			}
			return nil // item errors are carried in Result, not propagated
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
