package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type testPayload struct {
	Name       string `json:"name" validate:"required,min=2"`
	Status     string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	Email      string `json:"email" validate:"omitempty,email"`
	AdminNotes string `json:"admin_notes" validate:"max=10"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid JSON",
			body:    `{"name":"test","status":"pending"}`,
			wantErr: false,
		},
		{
			name:    "empty body",
			body:    "",
			wantErr: true,
			errMsg:  "request body is empty",
		},
		{
			name:    "invalid JSON",
			body:    `{invalid}`,
			wantErr: true,
			errMsg:  "invalid JSON",
		},
		{
			name:    "unknown field",
			body:    `{"name":"test","unknown":"field"}`,
			wantErr: true,
			errMsg:  "invalid JSON",
		},
		{
			name:    "trailing data",
			body:    `{"name":"test"}{"extra":true}`,
			wantErr: true,
			errMsg:  "request body must contain a single JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p testPayload
			err := Decode(r, &p)
			if (err != nil) != tt.wantErr {
				t.Errorf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil && tt.errMsg != "" {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error = %q, want to contain %q", err.Error(), tt.errMsg)
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		payload    testPayload
		wantFields []string
	}{
		{
			name:       "valid payload",
			payload:    testPayload{Name: "Rahim", Status: "pending"},
			wantFields: nil,
		},
		{
			name:       "missing required fields",
			payload:    testPayload{},
			wantFields: []string{"name", "status"},
		},
		{
			name:       "invalid status and email",
			payload:    testPayload{Name: "Rahim", Status: "archived", Email: "nope"},
			wantFields: []string{"status", "email"},
		},
		{
			name:       "notes too long",
			payload:    testPayload{Name: "Rahim", Status: "pending", AdminNotes: "this is far too long"},
			wantFields: []string{"admin_notes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.payload)
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("Validate() returned %d errors, want %d: %+v", len(errs), len(tt.wantFields), errs)
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Errorf("errs[%d].Field = %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestDecodeAndValidate_ResponseShape(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","status":"bogus"}`))
	w := httptest.NewRecorder()

	var p testPayload
	if DecodeAndValidate(w, r, &p) {
		t.Fatal("DecodeAndValidate() = true, want false")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}

	var resp ValidationErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error != "validation_error" {
		t.Errorf("error = %q, want validation_error", resp.Error)
	}
	if len(resp.Details) != 2 {
		t.Errorf("details = %+v, want 2 entries", resp.Details)
	}
}

func TestValidateNestedJSONPath(t *testing.T) {
	type item struct {
		Label string `json:"label" validate:"required"`
	}
	type body struct {
		Items []item `json:"items" validate:"dive"`
	}

	errs := Validate(body{Items: []item{{Label: "ok"}, {}}})
	if len(errs) != 1 || errs[0].Field != "items[1].label" {
		t.Errorf("errs = %+v, want one error on items[1].label", errs)
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		tag     string
		wantMsg string
	}{
		{"valid email", "a@example.com", "omitempty,email", ""},
		{"empty allowed", "", "omitempty,email", ""},
		{"bad email", "nope", "omitempty,email", "must be a valid email address"},
		{"bad url", "not a url", "omitempty,url", "must be a valid URL"},
		{"too long", strings.Repeat("x", 6), "max=5", "must be at most 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateVar("field_x", tt.value, tt.tag)
			if tt.wantMsg == "" {
				if len(errs) != 0 {
					t.Fatalf("unexpected errors: %v", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1", len(errs))
			}
			if errs[0].Field != "field_x" || errs[0].Message != tt.wantMsg {
				t.Errorf("got %+v, want field_x: %s", errs[0], tt.wantMsg)
			}
		})
	}
}

func TestValidationErrorsError(t *testing.T) {
	err := ValidationErrors{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}
	if got := err.Error(); got != "validation failed: a: bad; b: worse" {
		t.Errorf("Error() = %q", got)
	}
}
