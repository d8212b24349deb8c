package callback

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/telemetry"
)

const resource = "callback_request"

// RecordStore persists callback requests.
type RecordStore interface {
	Create(ctx context.Context, req CreateRequest) (Request, error)
	Get(ctx context.Context, id uuid.UUID) (Request, error)
	List(ctx context.Context) ([]Request, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, adminNotes *string) (Request, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Notifier tells staff about a new request.
type Notifier interface {
	CallbackRequested(ctx context.Context, r Request) error
}

// Service encapsulates callback request business logic.
type Service struct {
	store    RecordStore
	notifier Notifier
	logger   *slog.Logger
}

// NewService creates a callback Service. notifier may be nil.
func NewService(store RecordStore, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{store: store, notifier: notifier, logger: logger}
}

// Create stores a request and notifies staff.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Request, error) {
	r, err := s.store.Create(ctx, req)
	if err != nil {
		return Request{}, fmt.Errorf("creating callback request: %w", err)
	}
	telemetry.RequestsCreatedTotal.WithLabelValues(resource).Inc()

	if s.notifier != nil {
		if err := s.notifier.CallbackRequested(ctx, r); err != nil {
			s.logger.Warn("notifying staff of callback request", "error", err, "callback_id", r.ID)
		}
	}
	return r, nil
}

// Get returns one request.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Request, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return Request{}, fmt.Errorf("getting callback request: %w", err)
	}
	return r, nil
}

// List filters all requests by status and search query and returns one page.
func (s *Service) List(ctx context.Context, status, query string, params httpserver.OffsetParams) (httpserver.OffsetPage[Request], error) {
	if status != "" && status != "all" && !Status(status).Valid() {
		return httpserver.OffsetPage[Request]{}, httpserver.ValidationErrors{{Field: "status", Message: "must be all or a callback status"}}
	}
	all, err := s.store.List(ctx)
	if err != nil {
		return httpserver.OffsetPage[Request]{}, err
	}
	return httpserver.PageSlice(Filter(all, status, query), params), nil
}

// Update sets the status and admin notes of a request.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (Request, error) {
	status := Status(req.Status)
	if !status.Valid() {
		return Request{}, httpserver.ValidationErrors{{Field: "status", Message: "must be one of: pending called no_answer completed cancelled"}}
	}
	r, err := s.store.UpdateStatus(ctx, id, status, req.AdminNotes)
	if err != nil {
		return Request{}, fmt.Errorf("updating callback request: %w", err)
	}
	telemetry.StatusUpdatesTotal.WithLabelValues(resource, string(status)).Inc()
	return r, nil
}

// Delete removes a request.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting callback request: %w", err)
	}
	return nil
}
