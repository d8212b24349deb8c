package adminclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

func TestDoSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if r.Method != http.MethodPut || r.URL.Path != "/api/v1/admin/meetings/1" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		httpserver.Respond(w, http.StatusOK, map[string]string{"status": "confirmed"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "tok", nil)
	var out map[string]string
	if err := c.Do(context.Background(), http.MethodPut, "/api/v1/admin/meetings/1", map[string]string{"status": "confirmed"}, &out); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if out["status"] != "confirmed" {
		t.Errorf("out = %v", out)
	}
}

func TestDoValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httpserver.RespondValidationError(w, []httpserver.ValidationError{
			{Field: "status", Message: "must be one of: pending confirmed"},
			{Field: "admin_notes", Message: "must be at most 2000"},
		})
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "", nil).Do(context.Background(), http.MethodPut, "/x", map[string]string{}, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || len(apiErr.Details) != 2 {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestDoServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "", nil).Do(context.Background(), http.MethodDelete, "/x", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadGateway {
		t.Fatalf("err = %v", err)
	}
	if apiErr.Error() != "api returned HTTP 502" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}
