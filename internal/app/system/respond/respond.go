// Package respond writes JSON responses and the {"detail": "..."} error body
// every endpoint uses.
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// ErrorBody is the error envelope returned to clients.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// MaxBodyBytes bounds request bodies accepted by DecodeJSON.
const MaxBodyBytes = 1 << 20

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with 200.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Error writes {"detail": detail} with the given status code.
func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, ErrorBody{Detail: detail})
}

// BadRequest writes a 400 error.
func BadRequest(w http.ResponseWriter, detail string) {
	Error(w, http.StatusBadRequest, detail)
}

// NotFound writes a 404 error.
func NotFound(w http.ResponseWriter, detail string) {
	Error(w, http.StatusNotFound, detail)
}

// Forbidden writes a 403 error.
func Forbidden(w http.ResponseWriter, detail string) {
	Error(w, http.StatusForbidden, detail)
}

// Unauthorized writes a 401 error with a Bearer challenge.
func Unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	Error(w, http.StatusUnauthorized, detail)
}

// Internal writes a generic 500 error. Callers log the cause.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal server error")
}

// Message writes {"message": msg} with 200.
func Message(w http.ResponseWriter, msg string) {
	OK(w, map[string]string{"message": msg})
}

// DecodeJSON decodes the request body into dst. Unknown fields are ignored.
// It returns an error suitable for a 400 detail message.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("Request body is required")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("Request body is required")
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return errors.New("Invalid value for field " + typeErr.Field)
		}
		return errors.New("Invalid JSON body: " + strings.TrimPrefix(err.Error(), "json: "))
	}
	return nil
}
