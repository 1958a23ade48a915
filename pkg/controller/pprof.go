package controller

import (
	"net/http"
	"net/http/pprof"
)

// PprofMux builds a mux serving the net/http/pprof handlers relative to its
// root, ready to be mounted under a stripped debug prefix.
func PprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)

	return mux
}
