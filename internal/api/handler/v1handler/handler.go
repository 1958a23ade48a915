// Package v1handler implements the v1 REST endpoints for submitting scans and
// browsing scan history.
package v1handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-faster/jx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"linkshield/internal/scanner"
	"linkshield/pkg/logger"
	"linkshield/pkg/serrors"
)

type Deps struct {
	Scanner scanner.Scanner
}

type Handler struct {
	deps       Deps
	sec        *SecHandler
	scansTotal metric.Int64Counter
}

// New constructs the v1 handler. The meter provider feeds the per-verdict
// scan counter exposed on the metrics endpoint.
func New(deps Deps, sec *SecHandler, mp metric.MeterProvider) (*Handler, error) {
	meter := mp.Meter("linkshield/api/v1")
	scansTotal, err := meter.Int64Counter("scans_total",
		metric.WithDescription("Completed URL scans by verdict"))
	if err != nil {
		return nil, fmt.Errorf("could not create scans counter: %w", err)
	}

	return &Handler{
		deps:       deps,
		sec:        sec,
		scansTotal: scansTotal,
	}, nil
}

// Register mounts all v1 routes on the given mux. Every route requires bearer
// authentication.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("POST /v1/scans", h.sec.RequireAuth(http.HandlerFunc(h.CreateScan)))
	mux.Handle("GET /v1/scans", h.sec.RequireAuth(http.HandlerFunc(h.ListScans)))
	mux.Handle("GET /v1/scans/{id}", h.sec.RequireAuth(http.HandlerFunc(h.GetScan)))
	mux.Handle("DELETE /v1/scans/{id}", h.sec.RequireAuth(http.HandlerFunc(h.DeleteScan)))
}

func (h *Handler) countScan(ctx context.Context, verdict string) {
	h.scansTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("verdict", verdict)))
}

// writeError maps semantic error kinds onto HTTP status codes and writes a
// JSON error body. Unrecognized errors become a 500 without leaking detail.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, serrors.ErrBadRequest):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, serrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "unauthorized"
	case errors.Is(err, serrors.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, serrors.ErrUnavailable):
		status = http.StatusServiceUnavailable
		message = "service unavailable"
	default:
		logger.Error(ctx, err.Error())
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("error", func(e *jx.Encoder) {
			e.Str(message)
		})
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}
