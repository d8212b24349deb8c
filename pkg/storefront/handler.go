package storefront

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

const (
	// SessionHeader carries the visitor session ID.
	SessionHeader = "X-Session-ID"
	// SessionCookie is read when the header is absent.
	SessionCookie = "session_id"
)

// Handler provides the storefront shell endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler creates a storefront Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// Routes returns the storefront routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/shell", h.handleShell)
	return r
}

// sessionID returns the visitor session, or "" when it is missing or
// malformed.
func sessionID(r *http.Request) string {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		if c, err := r.Cookie(SessionCookie); err == nil {
			id = c.Value
		}
	}
	if len(httpserver.ValidateVar("session", id, "omitempty,max=128,printascii,excludesall= :")) > 0 {
		return ""
	}
	return id
}

func (h *Handler) handleShell(w http.ResponseWriter, r *http.Request) {
	shell, err := h.service.Shell(r.Context(), sessionID(r))
	if err != nil {
		h.logger.Error("building storefront shell", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, httpserver.CodeInternal, "failed to load storefront")
		return
	}
	httpserver.Respond(w, http.StatusOK, shell)
}
