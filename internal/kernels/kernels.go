// Package kernels implements small elementwise float32 primitives and a
// data-parallel for-loop helper that concrete node implementations may use
// internally. The graph engine itself is single-threaded at the
// orchestration layer; any parallelism here is opaque to it.
package kernels

import (
	"runtime"
	"sync"
)

// Config controls whether For spreads work across goroutines.
type Config struct {
	Enabled       bool
	NumWorkers    int
	MinChunkSize  int
}

// DefaultConfig returns a Config that parallelises loops of reasonable size
// across GOMAXPROCS workers.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		NumWorkers:   runtime.GOMAXPROCS(0),
		MinChunkSize: 256,
	}
}

// For calls f(i) for every i in [0, n). When cfg.Enabled is false, n is
// smaller than cfg.MinChunkSize, or only one worker is configured, it runs
// sequentially; otherwise it splits [0, n) into contiguous chunks and runs
// them across goroutines, blocking until all have finished.
func For(n int, f func(i int), cfg Config) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	workers := cfg.NumWorkers
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// AddInto computes dst[i] += src[i] for every i.
func AddInto(dst, src []float32) {
	for i := range dst {
		dst[i] += src[i]
	}
}

// Scale computes dst[i] = s*src[i] for every i.
func Scale(dst, src []float32, s float32) {
	for i := range dst {
		dst[i] = s * src[i]
	}
}

// Zero sets every element of dst to zero.
func Zero(dst []float32) {
	for i := range dst {
		dst[i] = 0
	}
}

// Clip clamps every element of dst to [-bound, bound] in place.
func Clip(dst []float32, bound float32) {
	for i, v := range dst {
		if v > bound {
			dst[i] = bound
		} else if v < -bound {
			dst[i] = -bound
		}
	}
}
