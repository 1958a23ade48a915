// Package controller provides the HTTP middlewares and helper handlers shared
// by the API server: CORS handling, request-scoped access logging with request
// IDs, and a pprof mux for the debug endpoint.
package controller
