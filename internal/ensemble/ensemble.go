// Package ensemble runs independent integrations side by side. Each run
// stays sequential; only whole runs are spread across goroutines.
package ensemble

import (
	"context"
	"fmt"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/taylorsim/internal/tsm"
)

// Job is one integration. Jobs must not share a Model value: models keep
// scratch jets between steps.
type Job struct {
	Model  tsm.Model
	X0     []*big.Float
	Config tsm.Config
}

// Run integrates every job, at most limit at a time (limit < 1 means no
// limit). Results are in job order. The first failure cancels the jobs still
// running and is returned with the index of the job that caused it.
// Observers passed in opts are shared by all jobs and must be safe for
// concurrent use.
func Run(ctx context.Context, jobs []Job, limit int, opts ...tsm.Option) ([]*tsm.Result, error) {
	results := make([]*tsm.Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, job := range jobs {
		g.Go(func() error {
			res, err := tsm.Run(ctx, job.Model, job.X0, job.Config, opts...)
			results[i] = res
			if err != nil {
				return fmt.Errorf("job %d: %w", i, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
