package v1handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"linkshield/internal/api/handler/v1handler"
	"linkshield/pkg/domain"
	"linkshield/pkg/logger"
	"linkshield/pkg/serrors"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

type fakeScanner struct {
	scan      func(ctx context.Context, userID domain.UserID, URL string) (*domain.Scan, error)
	userScans func(ctx context.Context, userID domain.UserID, cursor string, limit uint) ([]domain.Scan, string, error)
	result    func(ctx context.Context, userID domain.UserID, scanID domain.ScanID) (*domain.Scan, error)
	delete    func(ctx context.Context, userID domain.UserID, scanID domain.ScanID) error
}

func (f *fakeScanner) Scan(ctx context.Context, userID domain.UserID, URL string) (*domain.Scan, error) {
	return f.scan(ctx, userID, URL)
}

func (f *fakeScanner) UserScans(ctx context.Context,
	userID domain.UserID,
	cursor string,
	limit uint) ([]domain.Scan, string, error) {
	return f.userScans(ctx, userID, cursor, limit)
}

func (f *fakeScanner) Result(ctx context.Context, userID domain.UserID, scanID domain.ScanID) (*domain.Scan, error) {
	return f.result(ctx, userID, scanID)
}

func (f *fakeScanner) Delete(ctx context.Context, userID domain.UserID, scanID domain.ScanID) error {
	return f.delete(ctx, userID, scanID)
}

// testAPI bundles a registered mux with a signed token for an authenticated user.
type testAPI struct {
	mux    *http.ServeMux
	token  string
	userID domain.UserID
}

func newTestAPI(t *testing.T, scn *fakeScanner) testAPI {
	t.Helper()

	priv, pubPEM := genRSAKeys(t)
	sec := newSecHandlerForTest(t, pubPEM)

	h, err := v1handler.New(v1handler.Deps{Scanner: scn}, sec, noop.NewMeterProvider())
	require.NoError(t, err)

	mux := http.NewServeMux()
	h.Register(mux)

	uid := uuid.New()
	now := time.Now()

	return testAPI{
		mux:    mux,
		token:  signJWTRS256(t, priv, uid.String(), now, now.Add(time.Hour)),
		userID: domain.UserID(uid),
	}
}

func (a testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+a.token)
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)

	return rec
}

func newStoredScan(userID domain.UserID) *domain.Scan {
	return &domain.Scan{
		ID:           "scn_0123456789ab",
		UserID:       userID,
		URL:          "http://192.168.1.1/login",
		Verdict:      domain.VerdictMalicious,
		RiskLevel:    domain.RiskLevelHigh,
		Confidence:   0.88,
		Message:      "URL classified as MALICIOUS using fallback detection.",
		ModelVersion: domain.ModelVersionFallback,
		Observations: []domain.Observation{"Uses insecure HTTP protocol instead of HTTPS."},
		CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateScan(t *testing.T) {
	var gotURL string
	var gotUserID domain.UserID
	scn := &fakeScanner{
		scan: func(_ context.Context, userID domain.UserID, URL string) (*domain.Scan, error) {
			gotURL = URL
			gotUserID = userID

			return newStoredScan(userID), nil
		},
	}
	api := newTestAPI(t, scn)

	rec := api.do(http.MethodPost, "/v1/scans", `{"url":"http://192.168.1.1/login"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "http://192.168.1.1/login", gotURL)
	require.Equal(t, api.userID, gotUserID)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "scn_0123456789ab", body["scan_id"])
	require.Equal(t, api.userID.String(), body["user_id"])
	require.Equal(t, "malicious", body["status"])
	require.Equal(t, "high", body["risk_level"])
	require.InDelta(t, 0.88, body["confidence"], 1e-9)
	require.Equal(t, "URL classified as MALICIOUS using fallback detection.", body["message"])
	require.Equal(t, domain.ModelVersionFallback, body["model_version"])
	require.Equal(t, []any{"Uses insecure HTTP protocol instead of HTTPS."}, body["details"])
	require.Equal(t, "2026-03-01T12:00:00Z", body["scan_timestamp"])
}

func TestCreateScan_MissingURL(t *testing.T) {
	api := newTestAPI(t, &fakeScanner{})

	rec := api.do(http.MethodPost, "/v1/scans", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"url is required"}`, rec.Body.String())
}

func TestCreateScan_InvalidBody(t *testing.T) {
	api := newTestAPI(t, &fakeScanner{})

	rec := api.do(http.MethodPost, "/v1/scans", `{"url":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateScan_Unavailable(t *testing.T) {
	scn := &fakeScanner{
		scan: func(context.Context, domain.UserID, string) (*domain.Scan, error) {
			return nil, serrors.With(serrors.ErrUnavailable, "scoring unavailable")
		},
	}
	api := newTestAPI(t, scn)

	rec := api.do(http.MethodPost, "/v1/scans", `{"url":"https://example.com"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.JSONEq(t, `{"error":"service unavailable"}`, rec.Body.String())
}

func TestGetScan(t *testing.T) {
	var gotID domain.ScanID
	scn := &fakeScanner{
		result: func(_ context.Context, userID domain.UserID, scanID domain.ScanID) (*domain.Scan, error) {
			gotID = scanID

			return newStoredScan(userID), nil
		},
	}
	api := newTestAPI(t, scn)

	rec := api.do(http.MethodGet, "/v1/scans/scn_0123456789ab", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.ScanID("scn_0123456789ab"), gotID)
}

func TestGetScan_NotFound(t *testing.T) {
	scn := &fakeScanner{
		result: func(context.Context, domain.UserID, domain.ScanID) (*domain.Scan, error) {
			return nil, serrors.With(serrors.ErrNotFound, "scan not found")
		},
	}
	api := newTestAPI(t, scn)

	rec := api.do(http.MethodGet, "/v1/scans/scn_missing00000", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"scan not found"}`, rec.Body.String())
}

func TestListScans(t *testing.T) {
	var gotCursor string
	var gotLimit uint
	scn := &fakeScanner{
		userScans: func(_ context.Context, userID domain.UserID, cursor string, limit uint) ([]domain.Scan, string, error) {
			gotCursor = cursor
			gotLimit = limit

			return []domain.Scan{*newStoredScan(userID)}, "2026-03-01T12:00:00Z", nil
		},
	}
	api := newTestAPI(t, scn)

	rec := api.do(http.MethodGet, "/v1/scans?limit=2&cursor=2026-03-02T00:00:00Z", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2026-03-02T00:00:00Z", gotCursor)
	require.Equal(t, uint(2), gotLimit)

	var body struct {
		Items      []json.RawMessage `json:"items"`
		NextCursor *string           `json:"next_cursor"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	require.NotNil(t, body.NextCursor)
	require.Equal(t, "2026-03-01T12:00:00Z", *body.NextCursor)
}

func TestListScans_LastPage(t *testing.T) {
	scn := &fakeScanner{
		userScans: func(context.Context, domain.UserID, string, uint) ([]domain.Scan, string, error) {
			return nil, "", nil
		},
	}
	api := newTestAPI(t, scn)

	rec := api.do(http.MethodGet, "/v1/scans", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Nil(t, body["next_cursor"])
}

func TestListScans_InvalidLimit(t *testing.T) {
	api := newTestAPI(t, &fakeScanner{})

	for _, limit := range []string{"abc", "0", "101", "-1"} {
		rec := api.do(http.MethodGet, "/v1/scans?limit="+limit, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", limit)
	}
}

func TestListScans_DefaultLimit(t *testing.T) {
	var gotLimit uint
	scn := &fakeScanner{
		userScans: func(_ context.Context, _ domain.UserID, _ string, limit uint) ([]domain.Scan, string, error) {
			gotLimit = limit

			return nil, "", nil
		},
	}
	api := newTestAPI(t, scn)

	rec := api.do(http.MethodGet, "/v1/scans", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, uint(v1handler.DefaultLimit), gotLimit)
}

func TestDeleteScan(t *testing.T) {
	scn := &fakeScanner{
		delete: func(context.Context, domain.UserID, domain.ScanID) error {
			return nil
		},
	}
	api := newTestAPI(t, scn)

	rec := api.do(http.MethodDelete, "/v1/scans/scn_0123456789ab", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteScan_NotFound(t *testing.T) {
	scn := &fakeScanner{
		delete: func(context.Context, domain.UserID, domain.ScanID) error {
			return serrors.With(serrors.ErrNotFound, "scan not found")
		},
	}
	api := newTestAPI(t, scn)

	rec := api.do(http.MethodDelete, "/v1/scans/scn_missing00000", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
