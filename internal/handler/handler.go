// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
)

const msgWrongParameter = "You provided a wrong parameter."

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

// decodeJSON reads a JSON body into dst. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	return json.NewDecoder(r.Body).Decode(dst)
}

// decodeBody decodes the request body and answers 422 itself when it cannot.
// The decoder's error names Go types, so it is logged, not returned.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("decode request body")
		writeError(w, http.StatusUnprocessableEntity, msgWrongParameter)
		return false
	}
	return true
}

// respond maps a service error to its status code. Anything that is not a
// *model.Error is an internal failure and is logged.
func respond(w http.ResponseWriter, r *http.Request, err error) {
	var me *model.Error
	if errors.As(err, &me) {
		switch {
		case errors.Is(err, model.ErrValidation):
			writeError(w, http.StatusUnprocessableEntity, me.Message)
		case errors.Is(err, model.ErrNotFound):
			writeError(w, http.StatusNotFound, me.Message)
		case errors.Is(err, model.ErrConflict):
			writeError(w, http.StatusConflict, me.Message)
		default:
			writeError(w, http.StatusBadRequest, me.Message)
		}
		return
	}

	zerolog.Ctx(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:   http.StatusText(http.StatusInternalServerError),
		Message: err.Error(),
	})
}

// deleteID returns the id query parameter of a delete request. Older clients
// send it as "ID".
func deleteID(r *http.Request) string {
	q := r.URL.Query()
	if q.Has("id") {
		return q.Get("id")
	}
	return q.Get("ID")
}

func deleted(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: what + " deleted successfully"})
}

// list writes items, or [] when there are none.
func list[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
