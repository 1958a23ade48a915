package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage defines the minimal interface for enqueueing background jobs.
// The args parameter carries the job payload and opts customizes insertion
// behavior such as queue name or retry limits. The boolean result reports
// whether the insert was skipped because of a unique constraint.
type JobStorage interface {
	// AddJob enqueues a new job with the given arguments. It is atomic with
	// respect to any surrounding transaction when the backend supports it.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
