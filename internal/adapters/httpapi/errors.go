package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.trai.ch/zerr"
)

// statusError carries the HTTP status chosen where the error was detected.
type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &statusError{status: http.StatusBadRequest, err: err}
}

func notFound(err error) error {
	return &statusError{status: http.StatusNotFound, err: err}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// boundary turns returned errors and panics into JSON error responses.
// Errors without a status become 500 and are logged; their text is not exposed.
func (h *handler) boundary(fn handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error(zerr.With(zerr.New(fmt.Sprintf("panic: %v", rec)), "path", r.URL.Path))
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)})
			}
		}()

		err := fn(w, r)
		if err == nil {
			return
		}

		var se *statusError
		if errors.As(err, &se) {
			writeJSON(w, se.status, ErrorResponse{Error: se.Error()})
			return
		}

		h.logger.Error(zerr.With(err, "path", r.URL.Path))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
