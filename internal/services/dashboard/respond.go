package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/graziososalvare/rescuehub/internal/services/registry/storage"
)

// statusClientClosedRequest is the nginx convention for a request the
// client abandoned; there is no stdlib constant for it.
const statusClientClosedRequest = 499

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		message = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: message})
}

// statusForError maps storage validation errors to 400s and context errors
// to their transport statuses; everything else is a server failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, storage.ErrEmptyDocument),
		errors.Is(err, storage.ErrEmptyQuery),
		errors.Is(err, storage.ErrEmptyUpdate):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
