// Package callback manages phone call-back requests left by storefront
// customers.
package callback

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a callback request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCalled    Status = "called"
	StatusNoAnswer  Status = "no_answer"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every callback status.
var Statuses = []Status{StatusPending, StatusCalled, StatusNoAnswer, StatusCompleted, StatusCancelled}

// Transitions documents the intended lifecycle; staff may set any status.
var Transitions = map[Status][]Status{
	StatusPending:  {StatusCalled, StatusNoAnswer, StatusCancelled},
	StatusCalled:   {StatusCompleted, StatusNoAnswer, StatusCancelled},
	StatusNoAnswer: {StatusCalled, StatusCancelled},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Request is a customer's call-back request.
type Request struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	PreferredTime string     `json:"preferred_time"`
	Reason        string     `json:"reason"`
	Notes         *string    `json:"notes,omitempty"`
	Status        Status     `json:"status"`
	AdminNotes    *string    `json:"admin_notes,omitempty"`
	CalledAt      *time.Time `json:"called_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// RecordID returns the request ID.
func (r Request) RecordID() uuid.UUID { return r.ID }

// CreateRequest is the JSON body for POST /api/v1/callbacks.
type CreateRequest struct {
	Name          string  `json:"name" validate:"required,max=255"`
	Phone         string  `json:"phone" validate:"required,min=6,max=32"`
	PreferredTime string  `json:"preferred_time" validate:"required,max=64"`
	Reason        string  `json:"reason" validate:"required,max=255"`
	Notes         *string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateRequest is the JSON body for PUT /api/v1/admin/callbacks/{id}.
type UpdateRequest struct {
	Status     string  `json:"status" validate:"required,oneof=pending called no_answer completed cancelled"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=2000"`
}

// Filter returns the requests matching status and query. status "" or "all"
// matches every status; query is a case-insensitive substring of name or
// phone.
func Filter(requests []Request, status, query string) []Request {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Request, 0, len(requests))
	for _, r := range requests {
		if status != "" && status != "all" && string(r.Status) != status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Name), q) &&
			!strings.Contains(strings.ToLower(r.Phone), q) {
			continue
		}
		out = append(out, r)
	}
	return out
}
