package content

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

// ErrInFlight is returned when a section is submitted while its previous
// submit has not finished.
var ErrInFlight = errors.New("submission already in flight")

// ErrUnknownSection is returned for a section key the page does not declare.
var ErrUnknownSection = errors.New("unknown section")

// Submitter sends one section of a page to the server.
type Submitter interface {
	SubmitSection(ctx context.Context, slug, key string, p Payload) error
}

// Editor holds the section forms of the page being edited and the selected tab.
// It is safe for concurrent use.
type Editor struct {
	mu     sync.Mutex
	config PageConfig
	forms  map[string]*Form
	active string
}

// NewEditor builds one form per declared section of cfg, seeded from saved
// (keyed by section key), and selects the first section.
func NewEditor(cfg PageConfig, saved map[string]Section) *Editor {
	e := &Editor{}
	e.load(cfg, saved)
	return e
}

func (e *Editor) load(cfg PageConfig, saved map[string]Section) {
	forms := make(map[string]*Form, len(cfg.Sections))
	for _, sc := range cfg.Sections {
		var s *Section
		if v, ok := saved[sc.Key]; ok {
			s = &v
		}
		forms[sc.Key] = NewForm(cfg.Slug, sc, s)
	}
	e.config = cfg
	e.forms = forms
	e.active = cfg.FirstKey()
}

// SwitchPage replaces every form with ones for cfg and resets the selected
// tab to cfg's first section. The previous page's selection never carries over.
func (e *Editor) SwitchPage(cfg PageConfig, saved map[string]Section) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.load(cfg, saved)
}

// Config returns the page being edited.
func (e *Editor) Config() PageConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// ActiveTab returns the selected section key.
func (e *Editor) ActiveTab() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// SelectTab selects a section.
func (e *Editor) SelectTab(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.forms[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSection, key)
	}
	e.active = key
	return nil
}

// Form returns the form of a section, or nil.
func (e *Editor) Form(key string) *Form {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.forms[key]
}

// Submit validates and sends one section. Other sections' drafts are left as
// they are. Validation failures are returned as httpserver.ValidationErrors
// without calling s.
func (e *Editor) Submit(ctx context.Context, key string, s Submitter) error {
	e.mu.Lock()
	form, ok := e.forms[key]
	slug := e.config.Slug
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSection, key)
	}

	payload, ok := form.beginSubmit()
	if !ok {
		return ErrInFlight
	}
	if errs := ValidatePayload(form.Config(), payload); len(errs) > 0 {
		form.endSubmit(false)
		return httpserver.ValidationErrors(errs)
	}

	err := s.SubmitSection(ctx, slug, key, payload)
	form.endSubmit(err == nil)
	return err
}
