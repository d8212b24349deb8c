// Package console is the headless back-office controller for status-driven
// records (meetings, callback requests). It holds one snapshot of records,
// filters it locally and sends status updates and deletes through a Bridge.
// It never edits its own snapshot; fresh records arrive through Load.
package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

var (
	// ErrInFlight is returned when a mutation is started while another one
	// is still running.
	ErrInFlight = errors.New("request already in flight")
	// ErrNotFound is returned for an ID that is not in the snapshot.
	ErrNotFound = errors.New("record not in snapshot")
	// ErrNoSelection is returned when a dialog action runs with nothing open.
	ErrNoSelection = errors.New("no record selected")
)

// FieldErrors is a rejected mutation, one entry per offending field.
type FieldErrors = httpserver.ValidationErrors

// Record is anything the console can list.
type Record interface {
	RecordID() uuid.UUID
}

// Bridge sends mutations to the server.
type Bridge interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, adminNotes *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FilterFunc selects the visible records for a status filter and query.
type FilterFunc[T Record] func(records []T, status, query string) []T

// Level is the kind of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a toast shown to the operator.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Console is the state of one record console.
type Console[T Record] struct {
	noun   string
	bridge Bridge
	filter FilterFunc[T]

	mu            sync.Mutex
	records       []T
	selected      *T
	detailOpen    bool
	editOpen      bool
	confirmOpen   bool
	submitting    bool
	notifications []Notification
}

// New creates a console. noun names the record in notifications, for
// example "Meeting".
func New[T Record](noun string, bridge Bridge, filter FilterFunc[T]) *Console[T] {
	return &Console[T]{noun: noun, bridge: bridge, filter: filter}
}

// Load replaces the snapshot. An open selection is refreshed from the new
// snapshot, or dropped if the record is gone.
func (c *Console[T]) Load(snapshot []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append([]T(nil), snapshot...)
	if c.selected == nil {
		return
	}
	if rec, ok := c.findLocked((*c.selected).RecordID()); ok {
		c.selected = &rec
		return
	}
	c.clearLocked()
}

// Records returns the current snapshot.
func (c *Console[T]) Records() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.records...)
}

// Visible returns the records matching status and query.
func (c *Console[T]) Visible(status, query string) []T {
	c.mu.Lock()
	records := c.records
	c.mu.Unlock()
	return c.filter(records, status, query)
}

func (c *Console[T]) findLocked(id uuid.UUID) (T, bool) {
	for _, r := range c.records {
		if r.RecordID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

func (c *Console[T]) clearLocked() {
	c.selected = nil
	c.detailOpen = false
	c.editOpen = false
	c.confirmOpen = false
}

func (c *Console[T]) selectLocked(id uuid.UUID) error {
	rec, ok := c.findLocked(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	c.selected = &rec
	return nil
}

// OpenDetail selects a record and opens its detail dialog. Table rows and
// calendar events both open records through here.
func (c *Console[T]) OpenDetail(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.selectLocked(id); err != nil {
		return err
	}
	c.detailOpen = true
	return nil
}

// CloseDetail closes the detail dialog and clears the selection.
func (c *Console[T]) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

// OpenEdit selects a record and opens the status edit dialog.
func (c *Console[T]) OpenEdit(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.selectLocked(id); err != nil {
		return err
	}
	c.editOpen = true
	return nil
}

// CloseEdit closes the edit dialog and clears the selection.
func (c *Console[T]) CloseEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

// Selected returns the selected record.
func (c *Console[T]) Selected() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		var zero T
		return zero, false
	}
	return *c.selected, true
}

// DetailOpen reports whether the detail dialog is shown.
func (c *Console[T]) DetailOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detailOpen
}

// EditOpen reports whether the status edit dialog is shown.
func (c *Console[T]) EditOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editOpen
}

// ConfirmOpen reports whether the delete confirmation is shown.
func (c *Console[T]) ConfirmOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmOpen
}

// Submitting reports whether a mutation is in flight. Submit controls are
// disabled while it is true.
func (c *Console[T]) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Notifications returns and clears the pending notifications.
func (c *Console[T]) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.notifications
	c.notifications = nil
	return out
}

func (c *Console[T]) notifyLocked(level Level, msg string) {
	c.notifications = append(c.notifications, Notification{Level: level, Message: msg})
}

// failLocked turns a bridge error into notifications: one per field error,
// or one generic message.
func (c *Console[T]) failLocked(err error, generic string) {
	var fe FieldErrors
	if errors.As(err, &fe) && len(fe) > 0 {
		for _, e := range fe {
			c.notifyLocked(LevelError, e.Message)
		}
		return
	}
	c.notifyLocked(LevelError, generic)
}

// begin marks a mutation in flight and returns the selected record ID.
func (c *Console[T]) begin(open func() bool) (uuid.UUID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return uuid.Nil, ErrInFlight
	}
	if c.selected == nil || !open() {
		return uuid.Nil, ErrNoSelection
	}
	c.submitting = true
	return (*c.selected).RecordID(), nil
}

// UpdateStatus sends the new status of the record in the edit dialog. On
// success the dialog closes and the selection is cleared; on failure both
// stay so the operator can retry.
func (c *Console[T]) UpdateStatus(ctx context.Context, status string, adminNotes *string) error {
	id, err := c.begin(func() bool { return c.editOpen })
	if err != nil {
		return err
	}

	err = c.bridge.UpdateStatus(ctx, id, status, adminNotes)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		c.failLocked(err, fmt.Sprintf("Failed to update %s status.", c.noun))
		return err
	}
	c.notifyLocked(LevelSuccess, fmt.Sprintf("%s status updated.", c.noun))
	c.clearLocked()
	return nil
}

// RequestDelete selects a record and asks for confirmation. The detail
// dialog, if open, stays open behind the confirmation.
func (c *Console[T]) RequestDelete(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.selectLocked(id); err != nil {
		return err
	}
	c.confirmOpen = true
	return nil
}

// CancelDelete closes the confirmation. The selection is kept while another
// dialog still shows it.
func (c *Console[T]) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirmOpen = false
	if !c.detailOpen && !c.editOpen {
		c.selected = nil
	}
}

// ConfirmDelete deletes the record awaiting confirmation. On success the
// selection is cleared and every dialog closes; on failure the confirmation
// stays open.
func (c *Console[T]) ConfirmDelete(ctx context.Context) error {
	id, err := c.begin(func() bool { return c.confirmOpen })
	if err != nil {
		return err
	}

	err = c.bridge.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		c.failLocked(err, fmt.Sprintf("Failed to delete %s.", c.noun))
		return err
	}
	c.notifyLocked(LevelSuccess, fmt.Sprintf("%s deleted.", c.noun))
	c.clearLocked()
	return nil
}
