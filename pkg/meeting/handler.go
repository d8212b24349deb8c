package meeting

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

// Handler provides HTTP handlers for the meetings API.
type Handler struct {
	logger  *slog.Logger
	audit   *audit.Writer
	service *Service
}

// NewHandler creates a meeting Handler.
func NewHandler(logger *slog.Logger, audit *audit.Writer, service *Service) *Handler {
	return &Handler{logger: logger, audit: audit, service: service}
}

// PublicRoutes returns the storefront booking route.
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.handleCreate)
	return r
}

// AdminRoutes returns the back-office meeting routes.
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleList)
	r.Get("/calendar", h.handleCalendar)
	r.Get("/calendar.ics", h.handleICS)
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

	m, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("creating meeting", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, httpserver.CodeInternal, "failed to book meeting")
		return
	}

	httpserver.Respond(w, http.StatusCreated, m)
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
		h.respondErr(w, err, "failed to list meetings")
		return
	}

	httpserver.Respond(w, http.StatusOK, page)
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	events, err := h.service.Calendar(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		h.respondErr(w, err, "failed to load calendar")
		return
	}

	httpserver.Respond(w, http.StatusOK, events)
}

func (h *Handler) handleICS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	feed, err := h.service.ICS(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		h.respondErr(w, err, "failed to export calendar")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="meetings.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(feed))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, httpserver.CodeBadRequest, "invalid meeting ID")
		return
	}

	m, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondErr(w, err, "failed to get meeting")
		return
	}

	httpserver.Respond(w, http.StatusOK, m)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, httpserver.CodeBadRequest, "invalid meeting ID")
		return
	}

	var req UpdateRequest
	if !httpserver.DecodeAndValidate(w, r, &req) {
		return
	}

	m, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.respondErr(w, err, "failed to update meeting")
		return
	}

	h.audit.LogFromRequest(r, "update_status", resource, id.String(), map[string]any{"status": req.Status})
	httpserver.Respond(w, http.StatusOK, m)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, httpserver.CodeBadRequest, "invalid meeting ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondErr(w, err, "failed to delete meeting")
		return
	}

	h.audit.LogFromRequest(r, "delete", resource, id.String(), nil)
	httpserver.Respond(w, http.StatusNoContent, nil)
}

func (h *Handler) respondErr(w http.ResponseWriter, err error, msg string) {
	var ve httpserver.ValidationErrors
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		httpserver.RespondError(w, http.StatusNotFound, httpserver.CodeNotFound, "meeting not found")
	case errors.As(err, &ve):
		httpserver.RespondValidationError(w, ve)
	default:
		h.logger.Error(msg, "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, httpserver.CodeInternal, msg)
	}
}
