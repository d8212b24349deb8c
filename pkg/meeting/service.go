package meeting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/telemetry"
)

const resource = "meeting"

// RecordStore persists meetings.
type RecordStore interface {
	Create(ctx context.Context, req CreateRequest) (Meeting, error)
	Get(ctx context.Context, id uuid.UUID) (Meeting, error)
	List(ctx context.Context) ([]Meeting, error)
	ListBetween(ctx context.Context, from, to string) ([]Meeting, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, adminNotes *string) (Meeting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Notifier tells staff about a new booking.
type Notifier interface {
	MeetingBooked(ctx context.Context, m Meeting) error
}

// Service encapsulates meeting business logic.
type Service struct {
	store    RecordStore
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a meeting Service. notifier may be nil.
func NewService(store RecordStore, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{store: store, notifier: notifier, logger: logger, now: time.Now}
}

// Create books a meeting and notifies staff. Notification failures are
// logged and do not fail the booking.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Meeting, error) {
	m, err := s.store.Create(ctx, req)
	if err != nil {
		return Meeting{}, fmt.Errorf("creating meeting: %w", err)
	}
	telemetry.RequestsCreatedTotal.WithLabelValues(resource).Inc()

	if s.notifier != nil {
		if err := s.notifier.MeetingBooked(ctx, m); err != nil {
			s.logger.Warn("notifying staff of meeting", "error", err, "meeting_id", m.ID)
		}
	}
	return m, nil
}

// Get returns one meeting.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Meeting, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return Meeting{}, fmt.Errorf("getting meeting: %w", err)
	}
	return m, nil
}

// List filters all meetings by status and search query and returns one page.
func (s *Service) List(ctx context.Context, status, query string, params httpserver.OffsetParams) (httpserver.OffsetPage[Meeting], error) {
	if status != "" && status != "all" && !Status(status).Valid() {
		return httpserver.OffsetPage[Meeting]{}, httpserver.ValidationErrors{{Field: "status", Message: "must be all or a meeting status"}}
	}
	all, err := s.store.List(ctx)
	if err != nil {
		return httpserver.OffsetPage[Meeting]{}, err
	}
	return httpserver.PageSlice(Filter(all, status, query), params), nil
}

// Update sets the status and admin notes of a meeting.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (Meeting, error) {
	status := Status(req.Status)
	if !status.Valid() {
		return Meeting{}, httpserver.ValidationErrors{{Field: "status", Message: "must be one of: pending confirmed completed cancelled"}}
	}
	m, err := s.store.UpdateStatus(ctx, id, status, req.AdminNotes)
	if err != nil {
		return Meeting{}, fmt.Errorf("updating meeting: %w", err)
	}
	telemetry.StatusUpdatesTotal.WithLabelValues(resource, string(status)).Inc()
	return m, nil
}

// Delete removes a meeting.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting meeting: %w", err)
	}
	return nil
}

func validateRange(from, to string) error {
	var errs httpserver.ValidationErrors
	errs = append(errs, httpserver.ValidateVar("from", from, "omitempty,datetime=2006-01-02")...)
	errs = append(errs, httpserver.ValidateVar("to", to, "omitempty,datetime=2006-01-02")...)
	if len(errs) == 0 && from != "" && to != "" && to < from {
		errs = append(errs, httpserver.ValidationError{Field: "to", Message: "must not be before from"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Calendar returns the calendar events of meetings dated within [from, to].
func (s *Service) Calendar(ctx context.Context, from, to string) ([]Event, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	meetings, err := s.store.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return Events(meetings), nil
}

// ICS returns the meetings dated within [from, to] as an iCalendar feed.
func (s *Service) ICS(ctx context.Context, from, to string) (string, error) {
	if err := validateRange(from, to); err != nil {
		return "", err
	}
	meetings, err := s.store.ListBetween(ctx, from, to)
	if err != nil {
		return "", err
	}
	return generateICS(meetings, s.now()), nil
}
