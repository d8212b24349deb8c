package content

import (
	"time"

	"github.com/google/uuid"
)

// Item is one entry of a repeatable group, keyed by item field name.
type Item map[string]string

// Section is a stored page section.
type Section struct {
	ID         uuid.UUID `json:"id"`
	PageSlug   string    `json:"page_slug"`
	SectionKey string    `json:"section_key"`
	Title      *string   `json:"title,omitempty"`
	Subtitle   *string   `json:"subtitle,omitempty"`
	Content    *string   `json:"content,omitempty"`
	Items      []Item    `json:"items,omitempty"`
	IsActive   bool      `json:"is_active"`
	SortOrder  int       `json:"sort_order"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Payload is what one section form submits. Only declared fields are set.
type Payload struct {
	Title    *string `json:"title,omitempty"`
	Subtitle *string `json:"subtitle,omitempty"`
	Content  *string `json:"content,omitempty"`
	Items    *[]Item `json:"items,omitempty"`
}

// UpdateRequest is the body of PUT /admin/pages/{slug}.
type UpdateRequest struct {
	Sections map[string]Payload `json:"sections"`
}
