package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/telemetry"
)

// ErrPageNotFound is returned for a slug with no page config.
var ErrPageNotFound = errors.New("page not found")

// SectionStore persists page sections.
type SectionStore interface {
	ListByPage(ctx context.Context, slug string) ([]Section, error)
	Upsert(ctx context.Context, slug, key string, sortOrder int, p Payload) (Section, error)
	SetDisplay(ctx context.Context, slug, key string, isActive bool, sortOrder *int, defaultOrder int) (Section, error)
}

// FormView is the seeded edit state of one section as the admin sees it.
type FormView struct {
	Config  SectionConfig `json:"config"`
	Values  Payload       `json:"values"`
	Saved   *Section      `json:"saved,omitempty"`
	Default bool          `json:"using_defaults"`
}

// PageView is the admin view of one page.
type PageView struct {
	Page      PageConfig `json:"page"`
	ActiveTab string     `json:"active_tab"`
	Forms     []FormView `json:"forms"`
}

// PublicSection is one rendered section of a public page.
type PublicSection struct {
	Key         string `json:"key"`
	Title       string `json:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Content     string `json:"content,omitempty"`
	ContentHTML string `json:"content_html,omitempty"`
	Items       []Item `json:"items,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

// PublicPage is a page as the storefront renders it.
type PublicPage struct {
	Slug     string          `json:"slug"`
	Title    string          `json:"title"`
	Sections []PublicSection `json:"sections"`
}

// Service implements the CMS page operations.
type Service struct {
	store  SectionStore
	logger *slog.Logger
}

// NewService creates a content Service.
func NewService(store SectionStore, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) saved(ctx context.Context, slug string) (map[string]Section, error) {
	list, err := s.store.ListByPage(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("loading sections of %s: %w", slug, err)
	}
	out := make(map[string]Section, len(list))
	for _, sec := range list {
		out[sec.SectionKey] = sec
	}
	return out, nil
}

// Page returns the admin edit view of a page.
func (s *Service) Page(ctx context.Context, slug string) (PageView, error) {
	cfg, ok := Lookup(slug)
	if !ok {
		return PageView{}, ErrPageNotFound
	}
	saved, err := s.saved(ctx, slug)
	if err != nil {
		return PageView{}, err
	}

	ed := NewEditor(cfg, saved)
	view := PageView{Page: cfg, ActiveTab: ed.ActiveTab()}
	for _, sc := range cfg.Sections {
		fv := FormView{Config: sc, Values: ed.Form(sc.Key).Payload()}
		if sec, ok := saved[sc.Key]; ok {
			fv.Saved = &sec
		} else {
			fv.Default = true
		}
		view.Forms = append(view.Forms, fv)
	}
	return view, nil
}

// UpdateSection validates and stores one section of a page.
func (s *Service) UpdateSection(ctx context.Context, slug, key string, raw map[string]json.RawMessage) (Section, error) {
	cfg, ok := Lookup(slug)
	if !ok {
		return Section{}, ErrPageNotFound
	}
	sc, ok := cfg.Section(key)
	if !ok {
		return Section{}, httpserver.ValidationErrors{{Field: "sections." + key, Message: "not a section of page " + slug}}
	}

	p, errs := ParsePayload(raw)
	errs = append(errs, ValidatePayload(sc, p)...)
	if len(errs) > 0 {
		for i := range errs {
			errs[i].Field = "sections." + key + "." + errs[i].Field
		}
		return Section{}, httpserver.ValidationErrors(errs)
	}

	sec, err := s.store.Upsert(ctx, slug, key, sectionIndex(cfg, key), p)
	if err != nil {
		return Section{}, fmt.Errorf("saving section %s/%s: %w", slug, key, err)
	}
	telemetry.PageSectionSavesTotal.WithLabelValues(slug).Inc()
	return sec, nil
}

// SetDisplay changes whether a section is shown publicly and its position.
func (s *Service) SetDisplay(ctx context.Context, slug, key string, isActive bool, sortOrder *int) (Section, error) {
	cfg, ok := Lookup(slug)
	if !ok {
		return Section{}, ErrPageNotFound
	}
	if _, ok := cfg.Section(key); !ok {
		return Section{}, httpserver.ValidationErrors{{Field: "section_key", Message: "not a section of page " + slug}}
	}
	sec, err := s.store.SetDisplay(ctx, slug, key, isActive, sortOrder, sectionIndex(cfg, key))
	if err != nil {
		return Section{}, fmt.Errorf("updating section %s/%s: %w", slug, key, err)
	}
	return sec, nil
}

// Public returns the active sections of a page in sort order with defaults
// filled in for sections never saved and content rendered to HTML.
func (s *Service) Public(ctx context.Context, slug string) (PublicPage, error) {
	cfg, ok := Lookup(slug)
	if !ok {
		return PublicPage{}, ErrPageNotFound
	}
	saved, err := s.saved(ctx, slug)
	if err != nil {
		return PublicPage{}, err
	}

	page := PublicPage{Slug: cfg.Slug, Title: cfg.Title, Sections: []PublicSection{}}
	for i, sc := range cfg.Sections {
		order := i
		var sp *Section
		if sec, ok := saved[sc.Key]; ok {
			if !sec.IsActive {
				continue
			}
			order = sec.SortOrder
			sp = &sec
		}

		p := NewForm(slug, sc, sp).Payload()
		ps := PublicSection{Key: sc.Key, SortOrder: order}
		if p.Title != nil {
			ps.Title = *p.Title
		}
		if p.Subtitle != nil {
			ps.Subtitle = *p.Subtitle
		}
		if p.Content != nil {
			ps.Content = *p.Content
			html, err := RenderMarkdown(ps.Content)
			if err != nil {
				s.logger.Warn("rendering section content", "error", err, "page", slug, "section", sc.Key)
			} else {
				ps.ContentHTML = html
			}
		}
		if p.Items != nil {
			ps.Items = *p.Items
		}
		page.Sections = append(page.Sections, ps)
	}

	sort.SliceStable(page.Sections, func(i, j int) bool {
		return page.Sections[i].SortOrder < page.Sections[j].SortOrder
	})
	return page, nil
}

// ParsePayload decodes a raw section object. Keys outside the generic field
// set and values of the wrong JSON type are reported as field errors.
func ParsePayload(raw map[string]json.RawMessage) (Payload, []httpserver.ValidationError) {
	var (
		p    Payload
		errs []httpserver.ValidationError
	)

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := raw[k]
		if isNull(v) {
			continue
		}
		switch k {
		case FieldTitle, FieldSubtitle, FieldContent:
			var str string
			if err := json.Unmarshal(v, &str); err != nil {
				errs = append(errs, httpserver.ValidationError{Field: k, Message: "must be a string"})
				continue
			}
			switch k {
			case FieldTitle:
				p.Title = &str
			case FieldSubtitle:
				p.Subtitle = &str
			case FieldContent:
				p.Content = &str
			}
		case FieldItems:
			var items []Item
			if err := json.Unmarshal(v, &items); err != nil {
				errs = append(errs, httpserver.ValidationError{Field: k, Message: "must be a list of objects with string values"})
				continue
			}
			if items == nil {
				items = []Item{}
			}
			p.Items = &items
		default:
			errs = append(errs, httpserver.ValidationError{Field: k, Message: "not a field of this section"})
		}
	}
	return p, errs
}

func isNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || string(bytes.TrimSpace(v)) == "null"
}

func sectionIndex(cfg PageConfig, key string) int {
	for i, s := range cfg.Sections {
		if s.Key == key {
			return i
		}
	}
	return len(cfg.Sections)
}
