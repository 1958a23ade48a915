package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"linkshield/pkg/controller"
)

func TestWithCORS_SetsHeaders(t *testing.T) {
	var called bool
	h := controller.WithCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/scans", nil))

	require.True(t, called)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestWithCORS_Preflight(t *testing.T) {
	h := controller.WithCORS(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/v1/scans", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
}
