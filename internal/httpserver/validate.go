package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate names fields after their JSON keys so error details match the
// request body the client sent.
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	return v
}()

// ValidationError is one failed field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned by services when input fails validation after
// decoding. Handlers answer it with RespondValidationError.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = v.Field + ": " + v.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidationErrorResponse is the 422 envelope.
type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details []ValidationError `json:"details"`
}

// RespondValidationError writes a 422 response with one detail per field.
func RespondValidationError(w http.ResponseWriter, errs []ValidationError) {
	Respond(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
		Error:   CodeValidation,
		Message: "one or more fields failed validation",
		Details: errs,
	})
}

// Validate runs the struct's validate tags. Fields are reported by their
// JSON path below the top-level struct, e.g. "sections.hero.title".
func Validate(v any) []ValidationError {
	return collect(validate.Struct(v), "")
}

// ValidateVar checks a single value against tag and reports failures under
// field.
func ValidateVar(field string, value any, tag string) []ValidationError {
	return collect(validate.Var(value, tag), field)
}

// collect converts validator output. An empty field reports each failure
// under its namespace with the struct name dropped.
func collect(err error, field string) []ValidationError {
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return []ValidationError{{Field: field, Message: err.Error()}}
	}

	out := make([]ValidationError, len(fes))
	for i, fe := range fes {
		name := field
		if name == "" {
			_, name, _ = strings.Cut(fe.Namespace(), ".")
		}
		out[i] = ValidationError{Field: name, Message: describe(fe)}
	}
	return out
}

// tagMessages maps validator tags to client-facing messages. A %s verb is
// filled with the tag parameter.
var tagMessages = map[string]string{
	"required": "this field is required",
	"email":    "must be a valid email address",
	"uuid":     "must be a valid UUID",
	"url":      "must be a valid URL",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"oneof":    "must be one of: %s",
	"datetime": "must match the format %s",
}

func describe(fe validator.FieldError) string {
	msg, ok := tagMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
	if strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, fe.Param())
	}
	return msg
}
