// Package httputil centralizes JSON encoding and domain-error translation for
// HTTP handlers, keeping transport concerns out of the services.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "evsops/pkg/domain-errors"
)

// WriteJSON encodes v with the standard content type.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error code to an HTTP status and writes the JSON
// error envelope. Internal errors omit the description so store details never
// leak to callers.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal {
		if msg := dErrors.MessageOf(err); msg != "" {
			body["error_description"] = msg
		}
	}
	WriteJSON(w, ToHTTPStatus(code), body)
}

// ToHTTPStatus maps domain error codes onto HTTP statuses.
func ToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeInvalidInput, dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict, dErrors.CodeInvariantViolation:
		return http.StatusConflict
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Decode parses a JSON request body into T, returning a bad_request domain
// error on malformed input.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return v, nil
}
