package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

// Decode reads exactly one JSON object from the request body into dst.
// Unknown fields are rejected. The returned error is safe to show clients.
func Decode(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
	case errors.As(err, &tooLarge):
		return errors.New("request body too large (max 1 MiB)")
	case errors.Is(err, io.EOF):
		return errors.New("request body is empty")
	default:
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// DecodeAndValidate decodes the body into dst and runs struct validation.
// On failure it has already answered 400 or 422 and returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := Decode(r, dst); err != nil {
		RespondError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return false
	}
	if errs := Validate(dst); len(errs) > 0 {
		RespondValidationError(w, errs)
		return false
	}
	return true
}
