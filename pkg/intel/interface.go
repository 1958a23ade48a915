// Package intel gathers best-effort domain intelligence for a scanned URL:
// WHOIS registration data, DNS resolution, TLS certificate details and
// third-party reputation. Every lookup runs under its own timeout and any
// failure is converted into the absence of an observation, never into an
// error for the scan.
package intel

import (
	"context"

	"linkshield/pkg/domain"
)

// Collector produces free-text observations about a URL's domain.
//
// Implementations must never fail a scan: Collect returns whatever
// observations could be gathered within its time budget, possibly none.
type Collector interface {
	Collect(ctx context.Context, rawURL string) []domain.Observation
}
