package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/banho/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// Readyz reports ready once the static dataset is loaded and the local store
// answers. The upstream API is not required: the site serves without it.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.MemoryIndex == nil || d.MemoryIndex.LastReload().IsZero() {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "dataset not loaded"})
			return
		}
		if d.Store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.Store.Ping(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "local store unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
