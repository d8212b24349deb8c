package console

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/callback"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/meeting"
)

type fakeBridge struct {
	mu        sync.Mutex
	updateErr error
	deleteErr error
	block     chan struct{}
	updates   []string
	deletes   []uuid.UUID
}

func (f *fakeBridge) UpdateStatus(_ context.Context, id uuid.UUID, status string, _ *string) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, id.String()+"="+status)
	return f.updateErr
}

func (f *fakeBridge) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	return f.deleteErr
}

func meetings(n int) []meeting.Meeting {
	out := make([]meeting.Meeting, n)
	for i := range out {
		out[i] = meeting.Meeting{
			ID:          uuid.New(),
			Name:        fmt.Sprintf("Guest %d", i),
			Email:       fmt.Sprintf("guest%d@example.com", i),
			Phone:       fmt.Sprintf("0171%07d", i),
			MeetingType: meeting.TypeShowroom,
			Date:        "2026-11-10",
			Time:        fmt.Sprintf("%02d:00", 9+i),
			Status:      meeting.StatusPending,
		}
	}
	return out
}

func TestCalendarAndTableShareDetail(t *testing.T) {
	snapshot := meetings(3)

	fromTable := New("Meeting", &fakeBridge{}, meeting.Filter)
	fromTable.Load(snapshot)
	if err := fromTable.OpenDetail(snapshot[1].ID); err != nil {
		t.Fatal(err)
	}

	fromCalendar := New("Meeting", &fakeBridge{}, meeting.Filter)
	fromCalendar.Load(snapshot)
	event := meeting.Events(snapshot)[1]
	if err := fromCalendar.OpenDetail(uuid.MustParse(event.ID)); err != nil {
		t.Fatal(err)
	}

	a, _ := fromTable.Selected()
	b, _ := fromCalendar.Selected()
	if a.ID != b.ID || fromTable.DetailOpen() != fromCalendar.DetailOpen() {
		t.Errorf("table selected %s, calendar selected %s", a.ID, b.ID)
	}

	if err := fromTable.OpenDetail(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id = %v", err)
	}
}

func TestVisibleUsesFullSnapshot(t *testing.T) {
	c := New("Meeting", &fakeBridge{}, meeting.Filter)
	snapshot := meetings(10)
	c.Load(snapshot)

	if got := c.Visible("all", "GUEST4@"); len(got) != 1 || got[0].ID != snapshot[4].ID {
		t.Errorf("search = %v", got)
	}
	if got := c.Visible("all", ""); len(got) != 10 {
		t.Errorf("cleared search = %d, want 10", len(got))
	}
}

func TestUpdateStatusRejected(t *testing.T) {
	bridge := &fakeBridge{updateErr: FieldErrors{
		{Field: "status", Message: "status must be one of: pending confirmed completed cancelled"},
		{Field: "admin_notes", Message: "admin_notes must be at most 2000 characters"},
	}}
	c := New("Meeting", bridge, meeting.Filter)
	snapshot := meetings(2)
	c.Load(snapshot)
	_ = c.OpenEdit(snapshot[0].ID)

	err := c.UpdateStatus(context.Background(), "archived", nil)
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want FieldErrors", err)
	}

	if !c.EditOpen() {
		t.Error("edit dialog closed after rejection")
	}
	if sel, ok := c.Selected(); !ok || sel.ID != snapshot[0].ID {
		t.Error("selection cleared after rejection")
	}
	if c.Submitting() {
		t.Error("still submitting")
	}
	notes := c.Notifications()
	if len(notes) != 2 || notes[0].Level != LevelError || notes[1].Level != LevelError {
		t.Errorf("notifications = %+v, want two errors", notes)
	}
}

func TestUpdateStatusGenericFailure(t *testing.T) {
	c := New("Meeting", &fakeBridge{updateErr: errors.New("connection refused")}, meeting.Filter)
	snapshot := meetings(1)
	c.Load(snapshot)
	_ = c.OpenEdit(snapshot[0].ID)

	if err := c.UpdateStatus(context.Background(), "confirmed", nil); err == nil {
		t.Fatal("expected error")
	}
	if notes := c.Notifications(); len(notes) != 1 || notes[0].Message != "Failed to update Meeting status." {
		t.Errorf("notifications = %+v", notes)
	}
}

func TestUpdateStatusSuccess(t *testing.T) {
	bridge := &fakeBridge{}
	c := New("Meeting", bridge, meeting.Filter)
	snapshot := meetings(2)
	c.Load(snapshot)
	_ = c.OpenDetail(snapshot[1].ID)
	_ = c.OpenEdit(snapshot[1].ID)

	notes := "Bring catalogue"
	if err := c.UpdateStatus(context.Background(), "confirmed", &notes); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if c.EditOpen() || c.DetailOpen() {
		t.Error("dialogs still open")
	}
	if _, ok := c.Selected(); ok {
		t.Error("selection not cleared")
	}
	if got := c.Notifications(); len(got) != 1 || got[0].Level != LevelSuccess {
		t.Errorf("notifications = %+v", got)
	}
	if rec := c.Records()[1]; rec.Status != meeting.StatusPending {
		t.Error("console edited its own snapshot")
	}
	if len(bridge.updates) != 1 || bridge.updates[0] != snapshot[1].ID.String()+"=confirmed" {
		t.Errorf("updates = %v", bridge.updates)
	}
}

func TestUpdateStatusInFlight(t *testing.T) {
	bridge := &fakeBridge{block: make(chan struct{})}
	c := New("Meeting", bridge, meeting.Filter)
	snapshot := meetings(1)
	c.Load(snapshot)
	_ = c.OpenEdit(snapshot[0].ID)

	done := make(chan error, 1)
	go func() { done <- c.UpdateStatus(context.Background(), "confirmed", nil) }()

	deadline := time.Now().Add(2 * time.Second)
	for !c.Submitting() {
		if time.Now().After(deadline) {
			t.Fatal("update never started")
		}
		time.Sleep(time.Millisecond)
	}
	if err := c.UpdateStatus(context.Background(), "cancelled", nil); !errors.Is(err, ErrInFlight) {
		t.Errorf("second update = %v, want ErrInFlight", err)
	}
	if err := c.ConfirmDelete(context.Background()); !errors.Is(err, ErrInFlight) {
		t.Errorf("delete during update = %v, want ErrInFlight", err)
	}

	close(bridge.block)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if len(bridge.updates) != 1 {
		t.Errorf("updates = %d, want 1", len(bridge.updates))
	}
}

func TestUpdateStatusWithoutDialog(t *testing.T) {
	c := New("Meeting", &fakeBridge{}, meeting.Filter)
	c.Load(meetings(1))
	if err := c.UpdateStatus(context.Background(), "confirmed", nil); !errors.Is(err, ErrNoSelection) {
		t.Errorf("err = %v, want ErrNoSelection", err)
	}
}

func callbacks(n int) []callback.Request {
	out := make([]callback.Request, n)
	for i := range out {
		out[i] = callback.Request{ID: uuid.New(), Name: fmt.Sprintf("Caller %d", i), Phone: "01800000000", Status: callback.StatusPending}
	}
	return out
}

func TestDeleteCallbackSuccess(t *testing.T) {
	bridge := &fakeBridge{}
	c := New("Callback request", bridge, callback.Filter)
	snapshot := callbacks(3)
	c.Load(snapshot)

	_ = c.OpenDetail(snapshot[2].ID)
	if err := c.RequestDelete(snapshot[2].ID); err != nil {
		t.Fatal(err)
	}
	if !c.ConfirmOpen() || !c.DetailOpen() {
		t.Fatal("confirmation should open over the detail dialog")
	}

	if err := c.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	if c.ConfirmOpen() || c.DetailOpen() {
		t.Error("dialogs still open after delete")
	}
	if _, ok := c.Selected(); ok {
		t.Error("selection kept after delete")
	}
	if len(c.Records()) != 3 {
		t.Error("console removed the record itself")
	}

	c.Load(snapshot[:2])
	if len(c.Records()) != 2 {
		t.Errorf("records after reload = %d, want 2", len(c.Records()))
	}
	if len(bridge.deletes) != 1 || bridge.deletes[0] != snapshot[2].ID {
		t.Errorf("deletes = %v", bridge.deletes)
	}
}

func TestDeleteFailureKeepsConfirmation(t *testing.T) {
	c := New("Callback request", &fakeBridge{deleteErr: errors.New("boom")}, callback.Filter)
	snapshot := callbacks(1)
	c.Load(snapshot)
	_ = c.RequestDelete(snapshot[0].ID)

	if err := c.ConfirmDelete(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if !c.ConfirmOpen() {
		t.Error("confirmation closed after failure")
	}
	if notes := c.Notifications(); len(notes) != 1 || notes[0].Level != LevelError {
		t.Errorf("notifications = %+v", notes)
	}

	c.CancelDelete()
	if _, ok := c.Selected(); ok || c.ConfirmOpen() {
		t.Error("cancel should close and clear")
	}
}

func TestLoadRefreshesSelection(t *testing.T) {
	c := New("Meeting", &fakeBridge{}, meeting.Filter)
	snapshot := meetings(2)
	c.Load(snapshot)
	_ = c.OpenDetail(snapshot[0].ID)

	fresh := append([]meeting.Meeting(nil), snapshot...)
	fresh[0].Status = meeting.StatusConfirmed
	c.Load(fresh)
	if sel, _ := c.Selected(); sel.Status != meeting.StatusConfirmed {
		t.Errorf("selected status = %s", sel.Status)
	}

	c.Load(snapshot[1:])
	if _, ok := c.Selected(); ok || c.DetailOpen() {
		t.Error("selection of a removed record survived reload")
	}
}

func TestFieldErrorsIsValidationErrors(t *testing.T) {
	var err error = httpserver.ValidationErrors{{Field: "status", Message: "bad"}}
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Error("ValidationErrors should satisfy FieldErrors")
	}
}
