// Package handle adapts HTTP requests into pipeline calls. Body parsing
// (JSON or multipart upload) lives here; the pipeline only ever sees a
// normalized misinfo.Request.
package handle

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"misinfo-checker/api/internal/misinfo"
)

type Handle struct {
	pipeline  *misinfo.Pipeline
	uploadDir string
	log       zerolog.Logger
}

func New(p *misinfo.Pipeline, uploadDir string, log zerolog.Logger) *Handle {
	return &Handle{
		pipeline:  p,
		uploadDir: uploadDir,
		log:       log.With().Str("component", "http").Logger(),
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
