// Package meeting manages showroom and video meetings booked from the
// storefront and scheduled by staff in the back office.
package meeting

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type is how the meeting takes place.
type Type string

const (
	TypeShowroom Type = "showroom"
	TypeVideo    Type = "video"
)

// Status is the lifecycle state of a meeting.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every meeting status in lifecycle order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// Transitions documents the intended lifecycle. Updates are not checked
// against it: staff may set any status.
var Transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

var statusColors = map[Status]string{
	StatusPending:   "#f59e0b",
	StatusConfirmed: "#3b82f6",
	StatusCompleted: "#22c55e",
	StatusCancelled: "#ef4444",
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusColors[s]
	return ok
}

// Color is the calendar colour of the status.
func (s Status) Color() string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return "#6b7280"
}

// Terminal reports whether no further transition is expected.
func (s Status) Terminal() bool {
	return len(Transitions[s]) == 0
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Meeting is a booked meeting.
type Meeting struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	MeetingType Type       `json:"meeting_type"`
	Purpose     string     `json:"purpose"`
	Notes       *string    `json:"notes,omitempty"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Status      Status     `json:"status"`
	AdminNotes  *string    `json:"admin_notes,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RecordID returns the meeting ID.
func (m Meeting) RecordID() uuid.UUID { return m.ID }

// StartsAt combines Date and Time as a wall-clock time in UTC.
func (m Meeting) StartsAt() (time.Time, error) {
	t, err := time.Parse(dateLayout+" "+timeLayout, m.Date+" "+m.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing meeting start %q %q: %w", m.Date, m.Time, err)
	}
	return t, nil
}

// CreateRequest is the JSON body for POST /api/v1/meetings.
type CreateRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	Phone       string  `json:"phone" validate:"required,min=6,max=32"`
	MeetingType string  `json:"meeting_type" validate:"required,oneof=showroom video"`
	Purpose     string  `json:"purpose" validate:"required,max=255"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string  `json:"time" validate:"required,datetime=15:04"`
}

// UpdateRequest is the JSON body for PUT /api/v1/admin/meetings/{id}.
type UpdateRequest struct {
	Status     string  `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=2000"`
}

// Filter returns the meetings matching status and query. status "" or "all"
// matches every status; query is a case-insensitive substring of name, email
// or phone. The input slice is not modified.
func Filter(meetings []Meeting, status, query string) []Meeting {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Meeting, 0, len(meetings))
	for _, m := range meetings {
		if status != "" && status != "all" && string(m.Status) != status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(m.Name), q) &&
			!strings.Contains(strings.ToLower(m.Email), q) &&
			!strings.Contains(strings.ToLower(m.Phone), q) {
			continue
		}
		out = append(out, m)
	}
	return out
}
