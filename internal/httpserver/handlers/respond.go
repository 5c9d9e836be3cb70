package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/banho/internal/content"
	"github.com/MrSnakeDoc/banho/internal/listing"
	"github.com/MrSnakeDoc/banho/internal/logger"
)

const maxBodyBytes = 1 << 20

// envelope is the body of every /api and /admin response.
type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// success writes {"status":"success", ...body}.
func success(w http.ResponseWriter, status int, body envelope) {
	if body == nil {
		body = envelope{}
	}
	body["status"] = "success"
	writeJSON(w, status, body)
}

// fail writes {"status":"error","message":...} plus field errors when any.
func fail(w http.ResponseWriter, status int, message string, fields map[string]string) {
	body := envelope{"status": "error", "message": message}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	writeJSON(w, status, body)
}

// pageBody lays out one page the way the SPA pager reads it.
func pageBody(key string, p listing.Page) envelope {
	return envelope{
		key:          p.Items,
		"pagination": p.Pagination,
		"hasNext":    p.Pagination.HasNext(),
		"hasPrev":    p.Pagination.HasPrev(),
	}
}

// writeError maps domain errors to status codes. Unknown errors are logged
// and never echoed to the client.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	var verr *content.ValidationError
	switch {
	case errors.As(err, &verr):
		fail(w, http.StatusUnprocessableEntity, content.UserMessage(err), verr.Fields)
	case errors.Is(err, content.ErrImmutableContent):
		fail(w, http.StatusConflict, content.UserMessage(err), nil)
	case errors.Is(err, content.ErrNotFound):
		fail(w, http.StatusNotFound, content.UserMessage(err), nil)
	case errors.Is(err, content.ErrSaveFailed):
		fail(w, http.StatusBadGateway, content.UserMessage(err), nil)
	default:
		log.Error("unhandled error", logger.Error(err))
		fail(w, http.StatusInternalServerError, content.UserMessage(err), nil)
	}
}

// decodeBody reads a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			fail(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
		case errors.Is(err, io.EOF):
			fail(w, http.StatusBadRequest, "request body is empty", nil)
		default:
			fail(w, http.StatusBadRequest, "request body is not valid JSON", nil)
		}
		return false
	}
	return true
}
