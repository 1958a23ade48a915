package scanner

import (
	"github.com/riverqueue/river"

	"linkshield/pkg/domain"
)

// HistoryJobArgs carries a completed scan to the background history writer.
type HistoryJobArgs struct {
	// Scan is the fully assembled scan to persist.
	Scan domain.Scan `json:"scan"`

	// maxAttempts configures the maximum number of times River retries the insert.
	maxAttempts int
}

// Kind returns the River job kind used to register and dispatch the history writer.
func (args HistoryJobArgs) Kind() string { return "RecordScanHistoryJob" }

// InsertOpts returns the River options controlling how the job is enqueued.
func (args HistoryJobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
	}
}
