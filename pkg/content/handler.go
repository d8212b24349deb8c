package content

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/audit"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

// Handler provides HTTP handlers for CMS pages.
type Handler struct {
	logger  *slog.Logger
	audit   *audit.Writer
	service *Service
}

// NewHandler creates a content Handler.
func NewHandler(logger *slog.Logger, audit *audit.Writer, service *Service) *Handler {
	return &Handler{logger: logger, audit: audit, service: service}
}

// PublicRoutes returns the storefront page routes.
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{slug}", h.handlePublic)
	return r
}

// AdminRoutes returns the back-office page routes.
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleList)
	r.Get("/{slug}", h.handleGet)
	r.Put("/{slug}", h.handleUpdate)
	r.Patch("/{slug}/sections/{key}", h.handleDisplay)
	return r
}

func (h *Handler) handlePublic(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Public(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.respondErr(w, err, "failed to load page")
		return
	}
	httpserver.Respond(w, http.StatusOK, page)
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	httpserver.Respond(w, http.StatusOK, Pages())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Page(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.respondErr(w, err, "failed to load page")
		return
	}
	httpserver.Respond(w, http.StatusOK, view)
}

// updateBody keeps each section as raw JSON so undeclared keys can be
// reported per field.
type updateBody struct {
	Sections map[string]map[string]json.RawMessage `json:"sections"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if _, ok := Lookup(slug); !ok {
		httpserver.RespondError(w, http.StatusNotFound, httpserver.CodeNotFound, "page not found")
		return
	}

	var body updateBody
	if err := httpserver.Decode(r, &body); err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, httpserver.CodeBadRequest, err.Error())
		return
	}
	if len(body.Sections) != 1 {
		httpserver.RespondError(w, http.StatusBadRequest, httpserver.CodeBadRequest, "exactly one section must be submitted per request")
		return
	}

	var (
		key string
		raw map[string]json.RawMessage
	)
	for k, v := range body.Sections {
		key, raw = k, v
	}

	sec, err := h.service.UpdateSection(r.Context(), slug, key, raw)
	if err != nil {
		h.respondErr(w, err, "failed to save section")
		return
	}

	h.audit.LogFromRequest(r, "update", "page_section", slug+"/"+key, nil)
	httpserver.Respond(w, http.StatusOK, sec)
}

type displayRequest struct {
	IsActive  *bool `json:"is_active" validate:"required"`
	SortOrder *int  `json:"sort_order" validate:"omitempty,gte=0,lte=1000"`
}

func (h *Handler) handleDisplay(w http.ResponseWriter, r *http.Request) {
	var req displayRequest
	if !httpserver.DecodeAndValidate(w, r, &req) {
		return
	}

	slug, key := chi.URLParam(r, "slug"), chi.URLParam(r, "key")
	sec, err := h.service.SetDisplay(r.Context(), slug, key, *req.IsActive, req.SortOrder)
	if err != nil {
		h.respondErr(w, err, "failed to update section")
		return
	}

	h.audit.LogFromRequest(r, "update_display", "page_section", slug+"/"+key,
		map[string]any{"is_active": *req.IsActive, "sort_order": req.SortOrder})
	httpserver.Respond(w, http.StatusOK, sec)
}

func (h *Handler) respondErr(w http.ResponseWriter, err error, msg string) {
	var ve httpserver.ValidationErrors
	switch {
	case errors.Is(err, ErrPageNotFound):
		httpserver.RespondError(w, http.StatusNotFound, httpserver.CodeNotFound, "page not found")
	case errors.As(err, &ve):
		httpserver.RespondValidationError(w, ve)
	default:
		h.logger.Error(msg, "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, httpserver.CodeInternal, msg)
	}
}
