package worker

import (
	"context"
	"fmt"

	"github.com/riverqueue/river"
	"go.uber.org/zap"

	"linkshield/internal/scanner"
	"linkshield/pkg/logger"
	"linkshield/pkg/storage"
)

// HistoryWriterWorker is a River worker that persists completed scans into
// the scan history table. Scans are assembled synchronously during the
// request; only the insert is deferred, so a transient database failure is
// retried here without affecting scan responses.
type HistoryWriterWorker struct {
	river.WorkerDefaults[scanner.HistoryJobArgs]

	storage storage.Storage
}

// NewHistoryWriterWorker constructs a HistoryWriterWorker backed by the given
// storage.
func NewHistoryWriterWorker(store storage.Storage) *HistoryWriterWorker {
	return &HistoryWriterWorker{
		storage: store,
	}
}

// Work inserts a single scan history record.
func (h *HistoryWriterWorker) Work(ctx context.Context, job *river.Job[scanner.HistoryJobArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.String("scanID", string(job.Args.Scan.ID)))

	if _, err := h.storage.StoreScans(ctx, job.Args.Scan); err != nil {
		logger.Error(ctx, "error storing scan history", zap.Error(err))

		return fmt.Errorf("could not store scan history: %w", err)
	}

	logger.Debug(ctx, "scan history recorded")

	return nil
}
