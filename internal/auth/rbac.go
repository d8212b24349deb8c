package auth

import (
	"net/http"
	"slices"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

// RequireAuth answers 401 unless Middleware attached an identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()) == nil {
			httpserver.RespondError(w, http.StatusUnauthorized, httpserver.CodeUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole answers 403 unless the identity holds one of roles. Roles are
// flat: an admin is not implicitly an editor, so list both where both apply.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := FromContext(r.Context())
			switch {
			case id == nil:
				httpserver.RespondError(w, http.StatusForbidden, httpserver.CodeForbidden, "authentication required")
			case !slices.Contains(roles, id.Role):
				httpserver.RespondError(w, http.StatusForbidden, httpserver.CodeForbidden, "insufficient permissions")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
