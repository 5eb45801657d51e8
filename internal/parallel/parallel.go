// Package parallel runs indexed work across a bounded set of goroutines.
package parallel

import (
	"context"
	"runtime"
	"sync"
)

// Config configures parallel processing behavior.
type Config struct {
	// Workers is the number of worker goroutines. 0 means runtime.GOMAXPROCS(0).
	Workers int

	// Grain is the minimum work items per worker before parallelization.
	// If total work items <= Grain * Workers, work runs sequentially.
	Grain int
}

// DefaultConfig uses every CPU and parallelizes as soon as there is more
// than one item per worker.
func DefaultConfig() Config {
	return Config{Workers: 0, Grain: 1}
}

// Sequential runs all work on the calling goroutine.
func Sequential() Config {
	return Config{Workers: 1}
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

// chunks splits [0, n) into at most workers contiguous ranges and calls fn
// for each on its own goroutine.
func chunks(n, workers int, fn func(start, end int)) {
	var wg sync.WaitGroup
	size := (n + workers - 1) / workers
	for start := 0; start < n; start += size {
		start, end := start, min(start+size, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(start, end)
		}()
	}
	wg.Wait()
}

// For runs fn(i) for i in [0, n).
func For(c Config, n int, fn func(i int)) {
	workers := c.workers()
	if workers == 1 || n <= c.Grain*workers {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	chunks(n, workers, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}

// ForErr runs fn(i) for i in [0, n) and returns the first error
// encountered. After an error or cancellation of ctx no new items start.
func ForErr(ctx context.Context, c Config, n int, fn func(ctx context.Context, i int) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := c.workers()
	if workers == 1 || n <= c.Grain*workers {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	var (
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}
	chunks(n, workers, func(start, end int) {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}
			if err := fn(ctx, i); err != nil {
				fail(err)
				return
			}
		}
	})
	return firstErr
}

// Map runs fn(i) for i in [0, n) and collects the results in index order.
func Map[T any](ctx context.Context, c Config, n int, fn func(i int) (T, error)) ([]T, error) {
	results := make([]T, n)
	err := ForErr(ctx, c, n, func(_ context.Context, i int) error {
		v, err := fn(i)
		if err != nil {
			return err
		}
		results[i] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
