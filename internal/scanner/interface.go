// Package scanner orchestrates the URL scanning pipeline: structural
// analysis, domain enrichment, classifier inference with rule-based
// sensitivity adjustment, fallback heuristics when the classifier is
// unavailable, and best-effort persistence of scan history.
package scanner

import (
	"context"

	"linkshield/pkg/domain"
)

type Scanner interface {
	// Scan runs the full pipeline for the given URL and returns the completed
	// scan. The scan is also recorded in the user's history as a best-effort
	// side effect.
	Scan(ctx context.Context, userID domain.UserID, URL string) (*domain.Scan, error)
	// UserScans returns a page of the user's scan history. The cursor is an
	// RFC3339 timestamp; an empty cursor means the newest page.
	UserScans(ctx context.Context, userID domain.UserID, cursor string, limit uint) ([]domain.Scan, string, error)
	// Result fetches a single stored scan by ID.
	Result(ctx context.Context, userID domain.UserID, scanID domain.ScanID) (*domain.Scan, error)
	// Delete removes a scan from the user's history.
	Delete(ctx context.Context, userID domain.UserID, scanID domain.ScanID) error
}
