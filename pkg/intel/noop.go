package intel

import (
	"context"

	"linkshield/pkg/domain"
)

// Noop is a Collector that gathers nothing. Used when enrichment is disabled.
type Noop struct{}

var _ Collector = Noop{}

func (Noop) Collect(context.Context, string) []domain.Observation {
	return nil
}
