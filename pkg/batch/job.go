package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/LeandroLuccerini/similarity/pkg/similarity"
)

// ErrNoPairs is returned when the input holds no data rows.
var ErrNoPairs = errors.New("no pairs to score")

// Job describes one batch scoring run.
type Job struct {
	Kind        similarity.Kind
	Similarity  similarity.Similarity
	Format      Format
	Workers     int
	Description string
}

// ScoreFile reads pairs from r, scores them and records the run in st.
// The returned Run carries the final counters. When ctx is cancelled the run
// is still stored, with the unscored pairs marked, and ctx's error returned.
func ScoreFile(ctx context.Context, r io.Reader, job Job, st *Store, logger *slog.Logger) (Run, error) {
	pairs, err := ReadPairs(r, job.Format)
	if err != nil {
		return Run{}, err
	}
	if len(pairs) == 0 {
		return Run{}, ErrNoPairs
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("batch run started", "kind", job.Kind, "pairs", len(pairs))

	results := NewRunner(job.Similarity, job.Workers, logger).Run(ctx, pairs)
	run, err := st.SaveRun(string(job.Kind), job.Description, results)
	if err != nil {
		return Run{}, fmt.Errorf("store run: %w", err)
	}
	logger.Info("batch run stored", "run_id", run.ID, "pairs", run.Pairs, "failed", run.Failed)
	return run, ctx.Err()
}
