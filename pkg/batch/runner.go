package batch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/LeandroLuccerini/similarity/pkg/similarity"
)

// Result is the score of one pair. Err is set when the strategy rejected the
// pair, in which case Score is meaningless.
type Result struct {
	Pair
	Score float64 `json:"score"`
	Err   string  `json:"error,omitempty"`
}

// Runner scores pairs concurrently with one strategy.
type Runner struct {
	sim     similarity.Similarity
	workers int
	logger  *slog.Logger
}

// NewRunner returns a Runner using workers goroutines (at least one).
func NewRunner(sim similarity.Similarity, workers int, logger *slog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{sim: sim, workers: workers, logger: logger}
}

// Run scores every pair. Results keep the order of pairs. When ctx is
// cancelled the pairs not yet scored are returned with ctx's error.
func (r *Runner) Run(ctx context.Context, pairs []Pair) []Result {
	results := make([]Result, len(pairs))
	idx := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				results[i] = r.score(pairs[i])
			}
		}()
	}

feed:
	for i := range pairs {
		select {
		case <-ctx.Done():
			for j := i; j < len(pairs); j++ {
				results[j] = Result{Pair: pairs[j], Err: ctx.Err().Error()}
			}
			break feed
		case idx <- i:
		}
	}
	close(idx)
	wg.Wait()

	var failed int
	for _, res := range results {
		if res.Err != "" {
			failed++
		}
	}
	r.logger.Info("batch scored", "pairs", len(pairs), "failed", failed, "workers", r.workers)
	return results
}

func (r *Runner) score(p Pair) Result {
	s, err := r.sim.Similarity(p.A, p.B)
	if err != nil {
		return Result{Pair: p, Err: err.Error()}
	}
	return Result{Pair: p, Score: s}
}
