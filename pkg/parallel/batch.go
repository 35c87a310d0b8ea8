package parallel

import (
	"context"
	"errors"
	"fmt"
)

// ErrPoolClosed is reported for jobs that could not be queued
var ErrPoolClosed = errors.New("worker pool closed")

// Map runs fn for every index in [0, n) on the pool and returns the results
// in index order. Jobs not yet started when ctx is done report ctx.Err().
// The error slice is nil when every job succeeded. A job that panics reports
// an error instead of a result. Map does not close the pool.
func Map[T any](ctx context.Context, wp *WorkerPool, n int, fn func(ctx context.Context, i int) (T, error)) ([]T, []error) {
	results := make([]T, n)
	errs := make([]error, n)
	done := make(chan struct{}, n)

	for i := 0; i < n; i++ {
		i := i
		errs[i] = fmt.Errorf("job %d: task panicked", i)
		ok := wp.Submit(func() {
			defer func() { done <- struct{}{} }()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = fn(ctx, i)
		})
		if !ok {
			errs[i] = ErrPoolClosed
			done <- struct{}{}
		}
	}
	for i := 0; i < n; i++ {
		<-done
	}

	for _, err := range errs {
		if err != nil {
			return results, errs
		}
	}
	return results, nil
}
