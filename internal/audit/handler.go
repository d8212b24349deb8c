package audit

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

// Lister reads audit log records.
type Lister interface {
	List(ctx context.Context, q Query) ([]Record, error)
}

// Handler provides HTTP handlers for the audit log API.
type Handler struct {
	logger *slog.Logger
	store  Lister
}

// NewHandler creates an audit log Handler.
func NewHandler(logger *slog.Logger, store Lister) *Handler {
	return &Handler{logger: logger, store: store}
}

// Routes returns a chi.Router with audit log routes mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleList)
	return r
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, httpserver.CodeBadRequest, err.Error())
		return
	}

	records, err := h.store.List(r.Context(), q)
	if err != nil {
		h.logger.Error("listing audit log", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, httpserver.CodeInternal, "failed to list audit log")
		return
	}

	httpserver.Respond(w, http.StatusOK, newPage(records, q.Limit))
}
