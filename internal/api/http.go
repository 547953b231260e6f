// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/books-explorer/pkg/types"
)

// NewMux returns an http.Handler serving GET /books and its preflight. When
// static is non-nil it is served at the root for the display page.
func NewMux(s Searcher, static fs.FS, rec Recorder, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /books", func(w http.ResponseWriter, r *http.Request) {
		env := search(r.Context(), s, rec, logger, r.Method, r.URL.Query().Get("q"))
		writeEnvelope(w, env, logger)
	})
	mux.HandleFunc("OPTIONS /books", func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, preflight(s), logger)
	})
	if static != nil {
		mux.Handle("GET /", http.FileServerFS(static))
	}
	return mux
}

func writeEnvelope(w http.ResponseWriter, env types.Envelope, logger *zap.Logger) {
	for k, v := range env.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(env.StatusCode)
	if env.Body == "" {
		return
	}
	if _, err := w.Write([]byte(env.Body)); err != nil {
		logger.Debug("writing response body", zap.Error(err))
	}
}
