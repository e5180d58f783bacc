// Package parallel provides parallel execution utilities for the Born RL framework.
package parallel

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Workers int // Maximum number of goroutines; 1 or less runs sequentially.
	MinWork int // Loops shorter than this run sequentially.
}

// DefaultConfig returns defaults based on GOMAXPROCS.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.GOMAXPROCS(0),
		MinWork: 2,
	}
}

// Sequential returns a Config that never spawns goroutines.
func Sequential() Config {
	return Config{Workers: 1}
}

// For executes f(i) for i in [0, n), splitting the range into at most
// cfg.Workers contiguous chunks. Each iteration must be independent.
func For(n int, f func(i int), cfg Config) {
	if cfg.Workers <= 1 || n < max(cfg.MinWork, 2) {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (n + cfg.Workers - 1) / cfg.Workers
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Run calls every fn concurrently and waits for all of them.
// It returns the error of the lowest-indexed fn that failed, so the result
// does not depend on scheduling.
func Run(fns ...func() error) error {
	errs := make([]error, len(fns))
	var g errgroup.Group
	for i, fn := range fns {
		g.Go(func() error {
			errs[i] = fn()
			return errs[i]
		})
	}
	if g.Wait() == nil {
		return nil
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
