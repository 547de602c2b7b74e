package dynamo

import (
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// LinearizeTrajectory linearizes a model along a whole trajectory, one
// discrete (A, B) pair per timestep. Each timestep depends only on its own
// state and control, so the work is chunked across goroutines.
func LinearizeTrajectory(m Model, xs []State, us []Control) ([]*mat.Dense, []*mat.Dense, error) {
	if len(xs) != len(us) {
		return nil, nil, fmt.Errorf("%w: %d states vs %d controls", ErrDimensionMismatch, len(xs), len(us))
	}

	n := len(xs)
	As := make([]*mat.Dense, n)
	Bs := make([]*mat.Dense, n)
	errs := make([]error, n)

	ParallelFor(n, 8, func(start, end int) {
		for t := start; t < end; t++ {
			As[t], Bs[t], errs[t] = Linearize(m, xs[t], us[t])
		}
	})

	for t, err := range errs {
		if err != nil {
			return nil, nil, fmt.Errorf("timestep %d: %w", t, err)
		}
	}
	return As, Bs, nil
}

// ParallelFor executes a function in parallel over a range [0, n).
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := runtime.GOMAXPROCS(0)
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
