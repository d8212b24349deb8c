package auth

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

// LoginRequest is the JSON body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the JSON response for a successful login.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// UserInfo is the public user information returned in auth responses.
type UserInfo struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// UserLookup finds admin users by email.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (User, error)
}

// AttemptLimiter throttles repeated failed logins from one address.
type AttemptLimiter interface {
	Allow(ctx context.Context, ip string) (bool, time.Time, error)
	RecordFailure(ctx context.Context, ip string) error
	Reset(ctx context.Context, ip string) error
}

// LoginHandler handles admin email/password login.
type LoginHandler struct {
	sessions *SessionManager
	users    UserLookup
	limiter  AttemptLimiter
	logger   *slog.Logger
}

// NewLoginHandler creates a login handler. limiter may be nil.
func NewLoginHandler(sessions *SessionManager, users UserLookup, limiter AttemptLimiter, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{sessions: sessions, users: users, limiter: limiter, logger: logger}
}

// HandleLogin authenticates an admin user and returns a session JWT.
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !httpserver.DecodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	ip := remoteIP(r)

	if h.limiter != nil {
		allowed, retryAt, err := h.limiter.Allow(ctx, ip)
		if err != nil {
			h.logger.Warn("login: rate limit check failed", "error", err)
		} else if !allowed {
			w.Header().Set("Retry-After", retryAt.UTC().Format(http.TimeFormat))
			httpserver.RespondError(w, http.StatusTooManyRequests, httpserver.CodeRateLimited, "too many failed login attempts")
			return
		}
	}

	user, err := h.users.GetByEmail(ctx, req.Email)
	if err != nil || !CheckPassword(user.PasswordHash, req.Password) {
		if err != nil {
			h.logger.Warn("login: user lookup failed", "email", req.Email, "error", err)
		}
		h.recordFailure(ctx, ip)
		httpserver.RespondError(w, http.StatusUnauthorized, httpserver.CodeUnauthorized, "invalid email or password")
		return
	}

	token, err := h.sessions.IssueToken(SessionClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Name:   user.DisplayName,
		Role:   user.Role,
	})
	if err != nil {
		h.logger.Error("login: issuing token", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, httpserver.CodeInternal, "failed to issue token")
		return
	}

	if h.limiter != nil {
		if err := h.limiter.Reset(ctx, ip); err != nil {
			h.logger.Warn("login: resetting rate limit", "error", err)
		}
	}

	httpserver.Respond(w, http.StatusOK, LoginResponse{
		Token: token,
		User: UserInfo{
			ID:          user.ID.String(),
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Role:        user.Role,
		},
	})
}

func (h *LoginHandler) recordFailure(ctx context.Context, ip string) {
	if h.limiter == nil {
		return
	}
	if err := h.limiter.RecordFailure(ctx, ip); err != nil {
		h.logger.Warn("login: recording failure", "error", err)
	}
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
