package content

import (
	"errors"
	"fmt"
	"sync"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

var (
	// ErrUndeclaredField is returned when a form is asked to edit a field its
	// section does not use.
	ErrUndeclaredField = errors.New("field not declared for this section")
	// ErrItemIndex is returned for an item index outside the list.
	ErrItemIndex = errors.New("item index out of range")
)

// Form is the edit state of one page section. Each section of a page has its
// own Form; they share nothing.
type Form struct {
	mu         sync.Mutex
	page       string
	config     SectionConfig
	text       map[string]string
	items      []Item
	dirty      bool
	submitting bool
}

// NewForm seeds a form from the saved section, then the built-in defaults for
// page, then empty values.
func NewForm(page string, cfg SectionConfig, saved *Section) *Form {
	def, _ := DefaultsFor(page, cfg.Key)
	f := &Form{page: page, config: cfg, text: map[string]string{}}

	for _, field := range cfg.Fields {
		switch field {
		case FieldTitle:
			f.text[field] = seed(savedText(saved, field), def.Title)
		case FieldSubtitle:
			f.text[field] = seed(savedText(saved, field), def.Subtitle)
		case FieldContent:
			f.text[field] = seed(savedText(saved, field), def.Content)
		case FieldItems:
			switch {
			case saved != nil && saved.Items != nil:
				f.items = cloneItems(saved.Items, cfg)
			case def.Items != nil:
				f.items = cloneItems(def.Items, cfg)
			default:
				f.items = []Item{}
			}
		}
	}
	return f
}

func savedText(s *Section, field string) *string {
	if s == nil {
		return nil
	}
	switch field {
	case FieldTitle:
		return s.Title
	case FieldSubtitle:
		return s.Subtitle
	case FieldContent:
		return s.Content
	}
	return nil
}

// seed prefers a saved non-empty value over the default.
func seed(saved *string, def string) string {
	if saved != nil && *saved != "" {
		return *saved
	}
	return def
}

// cloneItems copies items, keeping only declared item fields and filling
// missing ones with "".
func cloneItems(items []Item, cfg SectionConfig) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		c := make(Item, len(cfg.ItemFields))
		for _, name := range cfg.ItemFields {
			c[name] = it[name]
		}
		out = append(out, c)
	}
	return out
}

// Config returns the section config the form was built from.
func (f *Form) Config() SectionConfig { return f.config }

// Get returns the current value of a text field.
func (f *Form) Get(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text[field]
}

// Items returns a copy of the current items.
func (f *Form) Items() []Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneItems(f.items, f.config)
}

// Set updates a title, subtitle or content field.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if field == FieldItems || !f.config.Uses(field) {
		return fmt.Errorf("%w: %s", ErrUndeclaredField, field)
	}
	f.text[field] = value
	f.dirty = true
	return nil
}

// AddItem appends an item with every declared item field set to "".
func (f *Form) AddItem() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.config.Uses(FieldItems) {
		return fmt.Errorf("%w: %s", ErrUndeclaredField, FieldItems)
	}
	item := make(Item, len(f.config.ItemFields))
	for _, name := range f.config.ItemFields {
		item[name] = ""
	}
	f.items = append(f.items, item)
	f.dirty = true
	return nil
}

// RemoveItem deletes the item at i, keeping the order of the rest.
func (f *Form) RemoveItem(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.items) {
		return ErrItemIndex
	}
	f.items = append(f.items[:i:i], f.items[i+1:]...)
	f.dirty = true
	return nil
}

// SetItem updates one sub-field of item i.
func (f *Form) SetItem(i int, field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.items) {
		return ErrItemIndex
	}
	if !f.config.HasItemField(field) {
		return fmt.Errorf("%w: item field %s", ErrUndeclaredField, field)
	}
	f.items[i][field] = value
	f.dirty = true
	return nil
}

// Dirty reports whether the form changed since it was built or last submitted.
func (f *Form) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty
}

// Submitting reports whether a submit is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Payload returns the declared fields of the form and nothing else.
func (f *Form) Payload() Payload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payloadLocked()
}

func (f *Form) payloadLocked() Payload {
	var p Payload
	for _, field := range f.config.Fields {
		v := f.text[field]
		switch field {
		case FieldTitle:
			p.Title = &v
		case FieldSubtitle:
			p.Subtitle = &v
		case FieldContent:
			p.Content = &v
		case FieldItems:
			items := cloneItems(f.items, f.config)
			p.Items = &items
		}
	}
	return p
}

// Validate checks the current values against the section's field kinds.
func (f *Form) Validate() []httpserver.ValidationError {
	return ValidatePayload(f.config, f.Payload())
}

// beginSubmit marks the form in flight and returns its payload. It fails when
// a submit is already running.
func (f *Form) beginSubmit() (Payload, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return Payload{}, false
	}
	f.submitting = true
	return f.payloadLocked(), true
}

func (f *Form) endSubmit(ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if ok {
		f.dirty = false
	}
}
