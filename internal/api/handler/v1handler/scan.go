package v1handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/jx"

	"linkshield/pkg/domain"
	"linkshield/pkg/serrors"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	maxRequestBody = 64 << 10
)

func encodeScan(e *jx.Encoder, scan *domain.Scan) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("scan_id", func(e *jx.Encoder) { e.Str(string(scan.ID)) })
		e.Field("user_id", func(e *jx.Encoder) { e.Str(scan.UserID.String()) })
		e.Field("url", func(e *jx.Encoder) { e.Str(scan.URL) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(scan.Verdict)) })
		e.Field("risk_level", func(e *jx.Encoder) { e.Str(string(scan.RiskLevel)) })
		e.Field("confidence", func(e *jx.Encoder) { e.Float64(scan.Confidence) })
		e.Field("message", func(e *jx.Encoder) { e.Str(scan.Message) })
		e.Field("model_version", func(e *jx.Encoder) { e.Str(scan.ModelVersion) })
		e.Field("details", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, observation := range scan.Observations {
					e.Str(observation)
				}
			})
		})
		e.Field("scan_timestamp", func(e *jx.Encoder) {
			e.Str(scan.CreatedAt.Format(time.RFC3339))
		})
	})
}

func decodeScanRequest(r *http.Request) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return "", serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body")
	}

	var URL string
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "url" {
			return d.Skip()
		}

		v, err := d.Str()
		if err != nil {
			return fmt.Errorf("could not decode url: %w", err)
		}
		URL = v

		return nil
	}); err != nil {
		return "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}
	if URL == "" {
		return "", serrors.With(serrors.ErrBadRequest, "url is required")
	}

	return URL, nil
}

// CreateScan runs a scan for the submitted URL and returns the completed
// result. Scans are synchronous; the response carries the final verdict.
func (h *Handler) CreateScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	URL, err := decodeScanRequest(r)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	scan, err := h.deps.Scanner.Scan(ctx, GetUserIDFromContext(ctx), URL)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	h.countScan(ctx, string(scan.Verdict))

	var e jx.Encoder
	encodeScan(&e, scan)
	writeJSON(w, http.StatusOK, &e)
}

// GetScan returns a stored scan by ID.
func (h *Handler) GetScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scan, err := h.deps.Scanner.Result(ctx, GetUserIDFromContext(ctx), domain.ScanID(r.PathValue("id")))
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	var e jx.Encoder
	encodeScan(&e, scan)
	writeJSON(w, http.StatusOK, &e)
}

// ListScans returns a page of the caller's scan history.
func (h *Handler) ListScans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := uint(DefaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 || parsed > MaxLimit {
			writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "invalid limit"))

			return
		}
		limit = uint(parsed)
	}

	scans, nextCursor, err := h.deps.Scanner.UserScans(ctx,
		GetUserIDFromContext(ctx),
		r.URL.Query().Get("cursor"),
		limit)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range scans {
					encodeScan(e, &scans[i])
				}
			})
		})
		e.Field("next_cursor", func(e *jx.Encoder) {
			if nextCursor == "" {
				e.Null()

				return
			}
			e.Str(nextCursor)
		})
	})
	writeJSON(w, http.StatusOK, &e)
}

// DeleteScan removes a scan from the caller's history.
func (h *Handler) DeleteScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.deps.Scanner.Delete(ctx, GetUserIDFromContext(ctx), domain.ScanID(r.PathValue("id"))); err != nil {
		writeError(ctx, w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
