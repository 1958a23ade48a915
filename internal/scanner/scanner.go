package scanner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"linkshield/internal/analysis"
	"linkshield/internal/config"
	"linkshield/pkg/classifier"
	"linkshield/pkg/domain"
	"linkshield/pkg/intel"
	"linkshield/pkg/logger"
	"linkshield/pkg/metrics"
	"linkshield/pkg/serrors"
	"linkshield/pkg/storage"
)

// Options configure the scanning pipeline.
type Options struct {
	// HistoryMaxAttempts is the number of times the background writer retries
	// persisting a completed scan.
	HistoryMaxAttempts int
}

// NewOptions constructs an Options value from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		HistoryMaxAttempts: cfg.History.MaxAttempts,
	}
}

// scanner is the concrete implementation of the Scanner interface. It wires
// the analysis rules, the classifier client and the enrichment collector
// together and records results through the storage layer.
type scanner struct {
	options    Options
	rules      analysis.Rules
	classifier classifier.Client
	intel      intel.Collector
	storage    storage.Storage
}

// Scan runs the full pipeline for a URL. The classifier path is preferred;
// when the classifier errors the scan falls back to heuristics instead of
// failing. History persistence runs as a best-effort side effect and never
// fails the scan.
func (s *scanner) Scan(ctx context.Context, userID domain.UserID, URL string) (*domain.Scan, error) {
	if URL == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "url must not be empty")
	}

	start := time.Now()
	structural := s.rules.Analyzer.Analyze(URL)
	enrichment := s.intel.Collect(ctx, URL)

	var scan *domain.Scan
	path := metrics.PathClassifier
	if prediction, err := s.predict(ctx, URL); err != nil {
		logger.Get(ctx).Warn("classifier unavailable, using fallback heuristics",
			zap.String("url", URL),
			zap.Error(err))

		path = metrics.PathFallback
		scan = s.assembleFallback(userID, URL, structural, enrichment)
	} else {
		scan = s.assembleClassified(userID, URL, prediction, structural, enrichment)
	}
	metrics.ScanDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())

	s.recordHistory(ctx, *scan)

	return scan, nil
}

func (s *scanner) predict(ctx context.Context, URL string) (classifier.Prediction, error) {
	if s.classifier == nil {
		return classifier.Prediction{}, serrors.With(serrors.ErrUnavailable, "classifier disabled")
	}

	return s.classifier.Predict(ctx, URL)
}

// recordHistory enqueues the scan for background persistence. Failures are
// logged and swallowed so a storage outage never blocks a scan response.
func (s *scanner) recordHistory(ctx context.Context, scan domain.Scan) {
	if _, err := s.storage.AddJob(ctx, HistoryJobArgs{
		Scan:        scan,
		maxAttempts: s.options.HistoryMaxAttempts,
	}, nil); err != nil {
		logger.Get(ctx).Error("could not enqueue scan history record",
			zap.String("scanID", string(scan.ID)),
			zap.Error(err))
	}
}

// UserScans returns a page of scan history for the given user. It supports
// cursor-based pagination using an RFC3339 timestamp string and returns the
// next cursor when more results are available.
func (s *scanner) UserScans(ctx context.Context,
	userID domain.UserID,
	cursor string,
	limit uint) ([]domain.Scan, string, error) {
	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := s.storage.UserScans(ctx, userID, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get user scans: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339)
	}

	return page.Scans, next, nil
}

// Result fetches a single scan by ID for the given user. It returns a
// not-found error when no matching scan exists.
func (s *scanner) Result(ctx context.Context, userID domain.UserID, scanID domain.ScanID) (*domain.Scan, error) {
	res, err := s.storage.ScanByID(ctx, userID, scanID)
	if err != nil {
		return nil, fmt.Errorf("could not get scan results: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "scan not found")
	}

	return res, nil
}

// Delete removes a scan belonging to the given user. If the scan does not
// exist, a not-found error is returned.
func (s *scanner) Delete(ctx context.Context, userID domain.UserID, scanID domain.ScanID) error {
	res, err := s.storage.DeleteScan(ctx, userID, scanID)
	if err != nil {
		return fmt.Errorf("could not delete scan: %w", err)
	}
	if res == nil {
		return serrors.With(serrors.ErrNotFound, "scan not found")
	}

	return nil
}

// New creates a Scanner. A nil classifierClient forces every scan onto the
// fallback heuristic path.
func New(rules analysis.Rules,
	classifierClient classifier.Client,
	collector intel.Collector,
	store storage.Storage,
	options Options) Scanner {
	return &scanner{
		options:    options,
		rules:      rules,
		classifier: classifierClient,
		intel:      collector,
		storage:    store,
	}
}
