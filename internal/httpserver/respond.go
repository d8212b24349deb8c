package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error codes carried in the "error" field of every error envelope.
const (
	CodeBadRequest   = "bad_request"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeValidation   = "validation_error"
	CodeRateLimited  = "rate_limited"
	CodeInternal     = "internal_error"
	CodeUnavailable  = "unavailable"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:          CodeBadRequest,
	http.StatusUnauthorized:        CodeUnauthorized,
	http.StatusForbidden:           CodeForbidden,
	http.StatusNotFound:            CodeNotFound,
	http.StatusUnprocessableEntity: CodeValidation,
	http.StatusTooManyRequests:     CodeRateLimited,
	http.StatusInternalServerError: CodeInternal,
	http.StatusServiceUnavailable:  CodeUnavailable,
}

// Respond writes data as JSON with the given status. A nil data writes only
// the status line and headers.
func Respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err, "status", status)
	}
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// RespondError writes an error envelope. An empty code falls back to the
// code registered for status, or "error" when there is none.
func RespondError(w http.ResponseWriter, status int, code string, message string) {
	if code == "" {
		code = statusCodes[status]
		if code == "" {
			code = "error"
		}
	}
	Respond(w, status, ErrorResponse{Error: code, Message: message})
}
