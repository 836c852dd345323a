package httpserver

import (
	"net/http"

	"misinfo-checker/api/internal/handle"
)

// NewMux wires the service routes. healthz is nil-safe: without a checker
// the endpoint just reports ok.
func NewMux(h *handle.Handle, healthz func() error) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if healthz != nil {
			if err := healthz(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("not ok\n" + err.Error()))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/misinfo/check", h.Check)

	return mux
}
