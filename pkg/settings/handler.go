package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/audit"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

const maxMultipartMemory = 8 << 20

// Handler provides HTTP handlers for the settings API.
type Handler struct {
	logger  *slog.Logger
	audit   *audit.Writer
	service *Service
}

// NewHandler creates a settings Handler.
func NewHandler(logger *slog.Logger, audit *audit.Writer, service *Service) *Handler {
	return &Handler{logger: logger, audit: audit, service: service}
}

// PublicRoutes returns the storefront settings routes.
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/header", h.handleHeader)
	r.Get("/footer", h.handleFooter)
	return r
}

// AdminRoutes returns the back-office settings routes.
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleGet)
	r.Get("/sections", h.handleSections)
	r.Post("/", h.handleSave)
	return r
}

func (h *Handler) handleHeader(w http.ResponseWriter, r *http.Request) {
	header, err := h.service.Header(r.Context())
	if err != nil {
		h.logger.Error("resolving header", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, httpserver.CodeInternal, "failed to load header settings")
		return
	}
	httpserver.Respond(w, http.StatusOK, header)
}

func (h *Handler) handleFooter(w http.ResponseWriter, r *http.Request) {
	footer, err := h.service.Footer(r.Context())
	if err != nil {
		h.logger.Error("resolving footer", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, httpserver.CodeInternal, "failed to load footer settings")
		return
	}
	httpserver.Respond(w, http.StatusOK, footer)
}

// settingsResponse is the admin view: raw stored values plus what the
// storefront will render from them.
type settingsResponse struct {
	Settings Bag    `json:"settings"`
	Header   Header `json:"header"`
	Footer   Footer `json:"footer"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	bag, err := h.service.Bag(r.Context())
	if err != nil {
		h.logger.Error("loading settings", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, httpserver.CodeInternal, "failed to load settings")
		return
	}
	if bag == nil {
		bag = Bag{}
	}
	httpserver.Respond(w, http.StatusOK, settingsResponse{
		Settings: bag,
		Header:   ResolveHeader(bag),
		Footer:   ResolveFooter(bag),
	})
}

type sectionFieldResponse struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type sectionResponse struct {
	Name   string                 `json:"name"`
	Label  string                 `json:"label"`
	Fields []sectionFieldResponse `json:"fields"`
}

func (h *Handler) handleSections(w http.ResponseWriter, _ *http.Request) {
	var out []sectionResponse
	for _, s := range Sections() {
		sr := sectionResponse{Name: s.Name, Label: s.Label}
		for _, f := range s.Fields {
			sr.Fields = append(sr.Fields, sectionFieldResponse{Name: f.Name, Kind: f.Kind.String()})
		}
		out = append(out, sr)
	}
	httpserver.Respond(w, http.StatusOK, out)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSaveRequest(r)
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}
	if err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, httpserver.CodeBadRequest, err.Error())
		return
	}
	defer req.Close()

	values, err := h.service.SaveSection(r.Context(), req)
	if err != nil {
		var ve httpserver.ValidationErrors
		if errors.As(err, &ve) {
			httpserver.RespondValidationError(w, ve)
			return
		}
		h.logger.Error("saving settings section", "error", err, "section", req.Section)
		httpserver.RespondError(w, http.StatusInternalServerError, httpserver.CodeInternal, "failed to save settings")
		return
	}

	keys := make([]string, 0, len(values))
	for _, v := range values {
		keys = append(keys, v.Group+"."+v.Key)
	}
	h.audit.LogFromRequest(r, "update", "settings", req.Section, map[string]any{"keys": keys})

	httpserver.Respond(w, http.StatusOK, map[string]any{
		"section": req.Section,
		"saved":   keys,
	})
}

// decodeSaveRequest reads either a multipart form (when files are attached)
// or a flat JSON object. Both carry a "section" discriminator.
func decodeSaveRequest(r *http.Request) (SaveRequest, error) {
	req := SaveRequest{Fields: map[string]string{}}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return req, fmt.Errorf("invalid multipart form: %w", err)
		}
		for name, vals := range r.MultipartForm.Value {
			if len(vals) == 0 {
				continue
			}
			if name == "section" {
				req.Section = vals[0]
				continue
			}
			req.Fields[name] = vals[0]
		}
		for name, headers := range r.MultipartForm.File {
			if len(headers) == 0 {
				continue
			}
			f, err := headers[0].Open()
			if err != nil {
				req.Close()
				return req, fmt.Errorf("opening upload %s: %w", name, err)
			}
			if req.Files == nil {
				req.Files = map[string]Upload{}
			}
			req.Files[name] = Upload{Filename: headers[0].Filename, Reader: f}
		}
		return req, nil
	}

	var body map[string]json.RawMessage
	if err := httpserver.Decode(r, &body); err != nil {
		return req, err
	}
	for name, raw := range body {
		v, err := flattenJSON(raw)
		if err != nil {
			return req, fmt.Errorf("field %s: %w", name, err)
		}
		if name == "section" {
			req.Section = v
			continue
		}
		req.Fields[name] = v
	}
	return req, nil
}

// flattenJSON turns a JSON value into the string form settings are stored in:
// strings as is, booleans as "1"/"0", arrays and objects as compact JSON.
func flattenJSON(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case 't':
		return "1", nil
	case 'f':
		return "0", nil
	case '[', '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return string(raw), nil
	}
}
