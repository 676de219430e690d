package pipeline

import (
	"context"
	"sync"
)

// runPool calls fn for every index in [0, n) using at most workers
// goroutines. Indices not yet started when ctx is cancelled are skipped and
// reported back as false in the returned slice.
func runPool(ctx context.Context, workers, n int, fn func(ctx context.Context, i int)) []bool {
	started := make([]bool, n)
	if n == 0 {
		return started
	}
	workers = max(1, min(workers, n))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(ctx, i)
			}
		}()
	}

feed:
	for i := range n {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
			started[i] = true
		}
	}
	close(jobs)
	wg.Wait()
	return started
}
