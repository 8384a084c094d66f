// Package httputil holds the JSON request/response helpers shared by HTTP
// handlers.
package httputil

import (
	"encoding/json"
	"io"
	"net/http"

	dErrors "idcheck/pkg/domainerrors"
)

// maxBodyBytes bounds request bodies; verification payloads are tiny.
const maxBodyBytes = 1 << 16

// Decode reads a JSON body into T, rejecting unknown fields and oversized
// payloads.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, dErrors.Wrap(err, dErrors.CodeInvalidInput, "corps de requête invalide")
	}
	return v, nil
}

// WriteJSON serializes v with the given status. Encoding failures are
// swallowed; the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps a domain error code to its HTTP status.
func StatusFor(err error) int {
	switch dErrors.CodeFor(err) {
	case dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict, dErrors.CodeAlreadyConfirmed:
		return http.StatusConflict
	case dErrors.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
