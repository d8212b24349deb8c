package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

// DevHeader grants an admin identity without credentials when dev mode is on.
const DevHeader = "X-Dev-Admin"

// Middleware authenticates the caller and stores the Identity in the request context.
//
// Authentication precedence:
//  1. Authorization: Bearer <session-jwt>
//  2. X-Dev-Admin: <email>   (only when devMode is true)
//
// Requests without valid credentials are rejected with 401.
func Middleware(sessions *SessionManager, devMode bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var identity *Identity

			if raw, ok := bearerToken(r); ok {
				if sessions == nil {
					httpserver.RespondError(w, http.StatusUnauthorized, httpserver.CodeUnauthorized, "sessions not configured")
					return
				}
				claims, err := sessions.ValidateToken(raw)
				if err != nil {
					logger.Warn("session authentication failed", "error", err)
					httpserver.RespondError(w, http.StatusUnauthorized, httpserver.CodeUnauthorized, "invalid token")
					return
				}
				uid, err := uuid.Parse(claims.UserID)
				if err != nil {
					httpserver.RespondError(w, http.StatusUnauthorized, httpserver.CodeUnauthorized, "invalid token subject")
					return
				}
				identity = &Identity{
					UserID: uid,
					Email:  claims.Email,
					Name:   claims.Name,
					Role:   claims.Role,
					Method: MethodSession,
				}
			}

			if identity == nil && devMode {
				if email := r.Header.Get(DevHeader); email != "" {
					identity = &Identity{
						UserID: uuid.Nil,
						Email:  email,
						Name:   "dev",
						Role:   RoleAdmin,
						Method: MethodDev,
					}
					logger.Debug("dev-mode authentication", "email", email)
				}
			}

			if identity == nil {
				httpserver.RespondError(w, http.StatusUnauthorized, httpserver.CodeUnauthorized, "no valid authentication provided")
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), identity)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return "", false
	}
	return strings.TrimSpace(h[7:]), true
}
