package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers map[string]User

func (f fakeUsers) GetByEmail(_ context.Context, email string) (User, error) {
	u, ok := f[strings.ToLower(email)]
	if !ok {
		return User{}, errors.New("not found")
	}
	return u, nil
}

type fakeLimiter struct {
	blocked  bool
	failures int
	resets   int
}

func (l *fakeLimiter) Allow(context.Context, string) (bool, time.Time, error) {
	return !l.blocked, time.Now().Add(time.Minute), nil
}

func (l *fakeLimiter) RecordFailure(context.Context, string) error {
	l.failures++
	return nil
}

func (l *fakeLimiter) Reset(context.Context, string) error {
	l.resets++
	return nil
}

func newTestLogin(t *testing.T, limiter *fakeLimiter) (*LoginHandler, *SessionManager) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	sm, err := NewSessionManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	users := fakeUsers{
		"admin@example.com": {ID: uuid.New(), Email: "admin@example.com", DisplayName: "Admin", PasswordHash: string(hash), Role: RoleAdmin},
	}
	return NewLoginHandler(sm, users, limiter, slog.Default()), sm
}

func doLogin(h *LoginHandler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.HandleLogin(w, r)
	return w
}

func TestHandleLoginSuccess(t *testing.T) {
	lim := &fakeLimiter{}
	h, sm := newTestLogin(t, lim)

	w := doLogin(h, `{"email":"admin@example.com","password":"s3cret-pass"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", w.Code, w.Body.String())
	}

	var resp LoginResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp.User.Role != RoleAdmin {
		t.Errorf("role = %q, want admin", resp.User.Role)
	}
	claims, err := sm.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("email claim = %q", claims.Email)
	}
	if lim.resets != 1 {
		t.Errorf("resets = %d, want 1", lim.resets)
	}
}

func TestHandleLoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		blocked  bool
		wantCode int
		wantFail int
	}{
		{"wrong password", `{"email":"admin@example.com","password":"nope"}`, false, http.StatusUnauthorized, 1},
		{"unknown user", `{"email":"ghost@example.com","password":"nope"}`, false, http.StatusUnauthorized, 1},
		{"missing password", `{"email":"admin@example.com"}`, false, http.StatusUnprocessableEntity, 0},
		{"bad email", `{"email":"admin","password":"x"}`, false, http.StatusUnprocessableEntity, 0},
		{"rate limited", `{"email":"admin@example.com","password":"s3cret-pass"}`, true, http.StatusTooManyRequests, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lim := &fakeLimiter{blocked: tt.blocked}
			h, _ := newTestLogin(t, lim)

			w := doLogin(h, tt.body)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body=%s", w.Code, tt.wantCode, w.Body.String())
			}
			if lim.failures != tt.wantFail {
				t.Errorf("failures = %d, want %d", lim.failures, tt.wantFail)
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "pw") {
		t.Error("CheckPassword rejected correct password")
	}
	if CheckPassword(hash, "other") {
		t.Error("CheckPassword accepted wrong password")
	}
	if CheckPassword("", "pw") {
		t.Error("CheckPassword accepted empty hash")
	}
}
