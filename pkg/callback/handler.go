package callback

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/audit"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

// Handler provides HTTP handlers for the callback requests API.
type Handler struct {
	logger  *slog.Logger
	audit   *audit.Writer
	service *Service
}

// NewHandler creates a callback Handler.
func NewHandler(logger *slog.Logger, audit *audit.Writer, service *Service) *Handler {
	return &Handler{logger: logger, audit: audit, service: service}
}

// PublicRoutes returns the storefront request route.
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.handleCreate)
	return r
}

// AdminRoutes returns the back-office callback routes.
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleList)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Put("/", h.handleUpdate)
		r.Delete("/", h.handleDelete)
	})
	return r
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !httpserver.DecodeAndValidate(w, r, &req) {
		return
	}

	cb, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("creating callback request", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, httpserver.CodeInternal, "failed to request callback")
		return
	}

	httpserver.Respond(w, http.StatusCreated, cb)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	params, err := httpserver.ParseOffsetParams(r)
	if err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, httpserver.CodeBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	page, err := h.service.List(r.Context(), q.Get("status"), q.Get("q"), params)
	if err != nil {
		h.respondErr(w, err, "failed to list callback requests")
		return
	}

	httpserver.Respond(w, http.StatusOK, page)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, httpserver.CodeBadRequest, "invalid callback request ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	cb, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondErr(w, err, "failed to get callback request")
		return
	}

	httpserver.Respond(w, http.StatusOK, cb)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if !httpserver.DecodeAndValidate(w, r, &req) {
		return
	}

	cb, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.respondErr(w, err, "failed to update callback request")
		return
	}

	h.audit.LogFromRequest(r, "update_status", resource, id.String(), map[string]any{"status": req.Status})
	httpserver.Respond(w, http.StatusOK, cb)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondErr(w, err, "failed to delete callback request")
		return
	}

	h.audit.LogFromRequest(r, "delete", resource, id.String(), nil)
	httpserver.Respond(w, http.StatusNoContent, nil)
}

func (h *Handler) respondErr(w http.ResponseWriter, err error, msg string) {
	var ve httpserver.ValidationErrors
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		httpserver.RespondError(w, http.StatusNotFound, httpserver.CodeNotFound, "callback request not found")
	case errors.As(err, &ve):
		httpserver.RespondValidationError(w, ve)
	default:
		h.logger.Error(msg, "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, httpserver.CodeInternal, msg)
	}
}
